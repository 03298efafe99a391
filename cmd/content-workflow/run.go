// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-workflow/internal/history"
	"github.com/pdiddy/content-workflow/internal/workflow"
)

var runCmd = &cobra.Command{
	Use:   "run [topic]",
	Short: "Run research, write, review, and creatives end to end",
	Long: `Run executes the whole workflow for one topic. Each step is fed the
previous step's stored output and the state file is saved after every step.
Creatives are generated only when --creatives is positive.

The request can come from flags or from a YAML brief:

  topic: Container gardening
  keywords: [pots, soil]
  target_audience: apartment dwellers
  word_count: 1200
  creatives: 2

A finished run is archived in the history database unless --no-archive is
set.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	brief, err := briefFromFlags(cmd, args)
	if err != nil {
		return err
	}

	tools, cfg, err := openToolset()
	if err != nil {
		return err
	}
	// A run starts from a clean record.
	tools.Session.Store.Clear()

	p := &workflow.Pipeline{Tools: tools}
	if noArchive, _ := cmd.Flags().GetBool("no-archive"); !noArchive {
		hist, err := history.NewStore(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer hist.Close()
		p.Archiver = hist
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if _, err := p.Run(ctx, brief, os.Stdout); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "state saved to %s\n", cfg.StateFile)
	return nil
}

func briefFromFlags(cmd *cobra.Command, args []string) (workflow.Brief, error) {
	var b workflow.Brief
	if path, _ := cmd.Flags().GetString("brief"); path != "" {
		loaded, err := workflow.LoadBrief(path)
		if err != nil {
			return b, err
		}
		b = loaded
	}

	f := cmd.Flags()
	if t := topicArg(cmd, args); t != "" {
		b.Topic = t
	}
	if f.Changed("keywords") {
		b.Keywords, _ = f.GetStringSlice("keywords")
	}
	if f.Changed("audience") {
		b.TargetAudience, _ = f.GetString("audience")
	}
	if f.Changed("content-type") {
		b.ContentType, _ = f.GetString("content-type")
	}
	if f.Changed("word-count") {
		b.WordCount, _ = f.GetInt("word-count")
	}
	if f.Changed("tone") {
		b.Tone, _ = f.GetString("tone")
	}
	if f.Changed("focus") {
		b.FocusAreas, _ = f.GetStringSlice("focus")
	}
	if f.Changed("creatives") {
		b.Creatives, _ = f.GetInt("creatives")
	}
	if f.Changed("type") {
		b.CreativeType, _ = f.GetString("type")
	}
	if f.Changed("style") {
		b.Style, _ = f.GetString("style")
	}

	if b.Topic == "" {
		return b, fmt.Errorf("topic required: pass it as an argument, with --topic, or in a --brief file")
	}
	return b, nil
}

func init() {
	f := runCmd.Flags()
	f.String("brief", "", "YAML brief describing the request")
	f.String("topic", "", "topic (or pass as arguments)")
	f.StringSlice("keywords", nil, "comma-separated keywords")
	f.String("audience", "", "target audience")
	f.String("content-type", "", "kind of content")
	f.Int("word-count", 0, "target word count")
	f.String("tone", "", "writing tone")
	f.StringSlice("focus", nil, "review focus areas")
	f.Int("creatives", 0, "number of creatives to generate after review")
	f.String("type", "", "creative type")
	f.String("style", "", "creative style")
	f.Bool("no-archive", false, "do not archive the finished session")

	rootCmd.AddCommand(runCmd)
}
