// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/content-workflow/internal/creative"
	"github.com/pdiddy/content-workflow/internal/genai"
	"github.com/pdiddy/content-workflow/internal/research"
	"github.com/pdiddy/content-workflow/internal/review"
	"github.com/pdiddy/content-workflow/internal/writing"
)

// ErrorMarker prefixes every tool report that describes a failure.
const ErrorMarker = "❌ Error:"

// Tool names as exposed to an orchestrator.
const (
	ToolResearch = "conduct_research"
	ToolWrite    = "write_content"
	ToolReview   = "review_and_polish"
	ToolCreative = "generate_ai_creative"
)

// Failed reports whether a tool report is an error report.
func Failed(report string) bool {
	return strings.HasPrefix(report, ErrorMarker)
}

func errorReport(err error) string {
	return ErrorMarker + " " + err.Error()
}

// Toolset runs the content tools against a session. Each method returns a
// human-readable report; failures are reported as text starting with
// ErrorMarker and never as a Go error. State is persisted after every
// successful call.
type Toolset struct {
	Session  *Session
	Text     genai.TextGenerator
	Creative *creative.Generator
}

// ConductResearch runs the research tool.
func (t *Toolset) ConductResearch(ctx context.Context, req research.Request) string {
	return t.finish(ToolResearch, func() (string, error) {
		return research.Conduct(ctx, t.Session.Store, t.Text, req)
	})
}

// WriteContent runs the writing tool.
func (t *Toolset) WriteContent(ctx context.Context, req writing.Request) string {
	return t.finish(ToolWrite, func() (string, error) {
		return writing.Write(ctx, t.Session.Store, t.Text, req)
	})
}

// ReviewAndPolish runs the review tool.
func (t *Toolset) ReviewAndPolish(ctx context.Context, req review.Request) string {
	return t.finish(ToolReview, func() (string, error) {
		return review.Polish(ctx, t.Session.Store, t.Text, req)
	})
}

// GenerateCreative runs the creative tool.
func (t *Toolset) GenerateCreative(ctx context.Context, req creative.Request) string {
	return t.finish(ToolCreative, func() (string, error) {
		g := t.Creative
		if g == nil {
			g = &creative.Generator{}
		}
		return g.Generate(ctx, t.Session.Store, req)
	})
}

func (t *Toolset) finish(tool string, run func() (string, error)) string {
	report, err := run()
	if err != nil {
		t.Session.Logger.Warn("tool failed", "tool", tool, "err", err)
		return errorReport(err)
	}
	t.Session.Persist()
	return report
}

// Param describes one tool argument.
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required" yaml:"required"`
	Description string `json:"description" yaml:"description"`
}

// Spec describes a tool for an orchestrator.
type Spec struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Params      []Param `json:"params" yaml:"params"`
}

// Specs lists the tools in workflow order.
func Specs() []Spec {
	return []Spec{
		{
			Name:        ToolResearch,
			Description: "Conduct research on a topic and produce a structured research report.",
			Params: []Param{
				{Name: "topic", Type: "string", Required: true, Description: "Subject to research"},
				{Name: "keywords", Type: "array", Description: "Keywords to cover"},
				{Name: "target_audience", Type: "string", Description: "Intended readers (default general)"},
			},
		},
		{
			Name:        ToolWrite,
			Description: "Write a Markdown draft from a research report.",
			Params: []Param{
				{Name: "topic", Type: "string", Required: true, Description: "Title of the content"},
				{Name: "research_data", Type: "string", Required: true, Description: "Research report text"},
				{Name: "content_type", Type: "string", Description: "Kind of content (default blog post)"},
				{Name: "word_count", Type: "integer", Description: "Target length in words (default 1500)"},
				{Name: "tone", Type: "string", Description: "Writing tone (default professional)"},
			},
		},
		{
			Name:        ToolReview,
			Description: "Review and polish a draft for quality, SEO, and readability.",
			Params: []Param{
				{Name: "content", Type: "string", Required: true, Description: "Draft to review"},
				{Name: "focus_areas", Type: "array", Description: "Areas to focus on (default clarity, SEO, engagement, readability)"},
				{Name: "seo_optimization", Type: "boolean", Description: "Add SEO status and meta description (default true)"},
				{Name: "grammar_check", Type: "boolean", Description: "Mark the content grammar-checked (default true)"},
			},
		},
		{
			Name:        ToolCreative,
			Description: "Generate images for finished content and save them to the creatives directory.",
			Params: []Param{
				{Name: "content", Type: "string", Required: true, Description: "Content to illustrate"},
				{Name: "creative_type", Type: "string", Description: "Kind of creative (default featured image)"},
				{Name: "style", Type: "string", Description: "Visual style (default professional)"},
				{Name: "count", Type: "integer", Description: "Number of creatives (default 1)"},
			},
		},
	}
}

// Invoke runs the named tool with arguments decoded from args.
func (t *Toolset) Invoke(ctx context.Context, name string, args map[string]any) string {
	switch name {
	case ToolResearch:
		var req research.Request
		if err := decodeArgs(args, &req); err != nil {
			return invalidArgs(name, err)
		}
		return t.ConductResearch(ctx, req)
	case ToolWrite:
		var req writing.Request
		if err := decodeArgs(args, &req); err != nil {
			return invalidArgs(name, err)
		}
		return t.WriteContent(ctx, req)
	case ToolReview:
		var req review.Request
		if err := decodeArgs(args, &req); err != nil {
			return invalidArgs(name, err)
		}
		return t.ReviewAndPolish(ctx, req)
	case ToolCreative:
		var req creative.Request
		if err := decodeArgs(args, &req); err != nil {
			return invalidArgs(name, err)
		}
		return t.GenerateCreative(ctx, req)
	}
	return fmt.Sprintf("%s unknown tool %q", ErrorMarker, name)
}

func decodeArgs(args map[string]any, v any) error {
	data, err := json.Marshal(args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func invalidArgs(tool string, err error) string {
	return fmt.Sprintf("%s invalid arguments for %s: %v", ErrorMarker, tool, err)
}
