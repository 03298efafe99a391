// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-workflow/internal/creative"
	"github.com/pdiddy/content-workflow/internal/research"
	"github.com/pdiddy/content-workflow/internal/review"
	"github.com/pdiddy/content-workflow/internal/workflow"
	"github.com/pdiddy/content-workflow/internal/writing"
)

// --- research ---

var researchCmd = &cobra.Command{
	Use:   "research [topic]",
	Short: "Research a topic and store the report",
	Long: `Research produces a structured research report for a topic: key
findings, SEO considerations, and structure recommendations. With a text
provider configured the report gains an AI insights section.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	tools, _, err := openToolset()
	if err != nil {
		return err
	}
	keywords, _ := cmd.Flags().GetStringSlice("keywords")
	audience, _ := cmd.Flags().GetString("audience")

	return printReport(workflow.ToolResearch, tools.ConductResearch(context.Background(), research.Request{
		Topic:          topicArg(cmd, args),
		Keywords:       keywords,
		TargetAudience: audience,
	}))
}

// --- write ---

var writeCmd = &cobra.Command{
	Use:   "write [topic]",
	Short: "Write a draft from the stored research report",
	Long: `Write drafts Markdown content from research. The research report is
taken from the workflow state unless --research-file is given. The topic
defaults to the researched topic.`,
	RunE: runWrite,
}

func runWrite(cmd *cobra.Command, args []string) error {
	tools, _, err := openToolset()
	if err != nil {
		return err
	}

	req := writing.Request{Topic: topicArg(cmd, args)}
	req.ContentType, _ = cmd.Flags().GetString("content-type")
	req.WordCount, _ = cmd.Flags().GetInt("word-count")
	req.Tone, _ = cmd.Flags().GetString("tone")

	if path, _ := cmd.Flags().GetString("research-file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading research file: %w", err)
		}
		req.ResearchData = string(data)
	} else if rd := tools.Session.Store.ResearchData(); rd != nil {
		req.ResearchData = rd.Report
		if req.Topic == "" {
			req.Topic = rd.Topic
		}
	}

	return printReport(workflow.ToolWrite, tools.WriteContent(context.Background(), req))
}

// --- review ---

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Review and polish the stored draft",
	Long: `Review analyzes a draft, updates its status line, adds a meta
description suggestion, and stores the polished result with review notes.
The draft is taken from the workflow state unless --file is given.`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	tools, _, err := openToolset()
	if err != nil {
		return err
	}

	content, err := inputContent(cmd, func() string {
		if dc := tools.Session.Store.DraftContent(); dc != nil {
			return dc.Content
		}
		return ""
	})
	if err != nil {
		return err
	}

	req := review.Request{Content: content}
	req.FocusAreas, _ = cmd.Flags().GetStringSlice("focus")
	if cmd.Flags().Changed("seo") {
		seo, _ := cmd.Flags().GetBool("seo")
		req.SEOOptimization = &seo
	}
	if cmd.Flags().Changed("grammar") {
		grammar, _ := cmd.Flags().GetBool("grammar")
		req.GrammarCheck = &grammar
	}

	return printReport(workflow.ToolReview, tools.ReviewAndPolish(context.Background(), req))
}

// --- creative ---

var creativeCmd = &cobra.Command{
	Use:   "creative",
	Short: "Generate images for the stored final content",
	Long: `Creative builds an image prompt from the content title and section
headings and generates images with the configured provider. When images
cannot be generated the prompts are saved as text files instead. Content is
taken from the final content in the workflow state, falling back to the
draft, unless --file is given.`,
	RunE: runCreative,
}

func runCreative(cmd *cobra.Command, args []string) error {
	tools, _, err := openToolset()
	if err != nil {
		return err
	}

	content, err := inputContent(cmd, func() string {
		if fc := tools.Session.Store.FinalContent(); fc != nil {
			return fc.Content
		}
		if dc := tools.Session.Store.DraftContent(); dc != nil {
			return dc.Content
		}
		return ""
	})
	if err != nil {
		return err
	}

	req := creative.Request{Content: content}
	req.CreativeType, _ = cmd.Flags().GetString("type")
	req.Style, _ = cmd.Flags().GetString("style")
	req.Count, _ = cmd.Flags().GetInt("count")

	return printReport(workflow.ToolCreative, tools.GenerateCreative(context.Background(), req))
}

// --- helpers ---

func topicArg(cmd *cobra.Command, args []string) string {
	if topic, _ := cmd.Flags().GetString("topic"); topic != "" {
		return topic
	}
	return strings.Join(args, " ")
}

// inputContent returns the contents of --file, or fromState when the flag
// is not set.
func inputContent(cmd *cobra.Command, fromState func() string) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	if path == "" {
		return fromState(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

var errToolFailed = errors.New("tool failed")

func printReport(tool, report string) error {
	fmt.Println(report)
	if workflow.Failed(report) {
		return fmt.Errorf("%s: %w", tool, errToolFailed)
	}
	return nil
}

func init() {
	researchCmd.Flags().String("topic", "", "topic to research (or pass as arguments)")
	researchCmd.Flags().StringSlice("keywords", nil, "comma-separated keywords")
	researchCmd.Flags().String("audience", "", "target audience (default general)")

	writeCmd.Flags().String("topic", "", "content title (default: researched topic)")
	writeCmd.Flags().String("research-file", "", "read research from a file instead of the workflow state")
	writeCmd.Flags().String("content-type", "", "kind of content (default blog post)")
	writeCmd.Flags().Int("word-count", 0, "target word count (default 1500)")
	writeCmd.Flags().String("tone", "", "writing tone (default professional)")

	reviewCmd.Flags().String("file", "", "review a Markdown file instead of the stored draft")
	reviewCmd.Flags().StringSlice("focus", nil, "focus areas (default clarity,SEO,engagement,readability)")
	reviewCmd.Flags().Bool("seo", true, "add SEO status and meta description")
	reviewCmd.Flags().Bool("grammar", true, "mark the content grammar-checked")

	creativeCmd.Flags().String("file", "", "illustrate a Markdown file instead of the stored content")
	creativeCmd.Flags().String("type", "", "creative type (default featured image)")
	creativeCmd.Flags().String("style", "", "visual style (default professional)")
	creativeCmd.Flags().Int("count", 1, "number of creatives")

	rootCmd.AddCommand(researchCmd, writeCmd, reviewCmd, creativeCmd)
}
