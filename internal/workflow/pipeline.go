// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/pdiddy/content-workflow/internal/creative"
	"github.com/pdiddy/content-workflow/internal/research"
	"github.com/pdiddy/content-workflow/internal/review"
	"github.com/pdiddy/content-workflow/internal/writing"
	"github.com/pdiddy/content-workflow/pkg/types"
)

// Archiver stores a finished session.
type Archiver interface {
	Archive(ctx context.Context, sessionID, topic string, rec types.WorkflowRecord) error
}

// StepError reports the step at which a pipeline run stopped.
type StepError struct {
	Tool   string
	Report string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: %s", e.Tool, e.Report)
}

// Pipeline runs research, writing, review, and optionally creative
// generation in order, feeding each step the previous step's stored output.
type Pipeline struct {
	Tools *Toolset

	// Archiver, when set, receives the session after a successful run.
	Archiver Archiver
}

type step struct {
	tool string
	run  func(context.Context) (string, error)
}

// Run executes the brief and writes each step's report to w. It stops at the
// first failing step and returns a *StepError carrying that step's report.
func (p *Pipeline) Run(ctx context.Context, b Brief, w io.Writer) (types.WorkflowRecord, error) {
	tools := p.Tools
	store := tools.Session.Store

	steps := []step{
		{ToolResearch, func(ctx context.Context) (string, error) {
			return tools.ConductResearch(ctx, research.Request{
				Topic:          b.Topic,
				Keywords:       b.Keywords,
				TargetAudience: b.TargetAudience,
			}), nil
		}},
		{ToolWrite, func(ctx context.Context) (string, error) {
			rd := store.ResearchData()
			if rd == nil {
				return "", errors.New("research data missing from state")
			}
			return tools.WriteContent(ctx, writing.Request{
				Topic:        b.Topic,
				ResearchData: rd.Report,
				ContentType:  b.ContentType,
				WordCount:    b.WordCount,
				Tone:         b.Tone,
			}), nil
		}},
		{ToolReview, func(ctx context.Context) (string, error) {
			dc := store.DraftContent()
			if dc == nil {
				return "", errors.New("draft missing from state")
			}
			return tools.ReviewAndPolish(ctx, review.Request{
				Content:    dc.Content,
				FocusAreas: b.FocusAreas,
			}), nil
		}},
	}
	if b.Creatives > 0 {
		steps = append(steps, step{ToolCreative, func(ctx context.Context) (string, error) {
			fc := store.FinalContent()
			if fc == nil {
				return "", errors.New("final content missing from state")
			}
			return tools.GenerateCreative(ctx, creative.Request{
				Content:      fc.Content,
				CreativeType: b.CreativeType,
				Style:        b.Style,
				Count:        b.Creatives,
			}), nil
		}})
	}

	for i, s := range steps {
		if err := ctx.Err(); err != nil {
			return store.Snapshot(), err
		}
		fmt.Fprintf(w, "==> [%d/%d] %s\n", i+1, len(steps), s.tool)
		report, err := s.run(ctx)
		if err != nil {
			return store.Snapshot(), fmt.Errorf("%s: %w", s.tool, err)
		}
		fmt.Fprintln(w, report)
		if Failed(report) {
			return store.Snapshot(), &StepError{Tool: s.tool, Report: report}
		}
	}

	rec := store.Snapshot()
	if p.Archiver != nil {
		if err := p.Archiver.Archive(ctx, tools.Session.ID, b.Topic, rec); err != nil {
			tools.Session.Logger.Warn("archiving session", "err", err)
		} else {
			fmt.Fprintf(w, "archived session %s\n", tools.Session.ID)
		}
	}
	return rec, nil
}
