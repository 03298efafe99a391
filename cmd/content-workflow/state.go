// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/pdiddy/content-workflow/internal/render"
	"github.com/pdiddy/content-workflow/internal/state"
	"github.com/pdiddy/content-workflow/pkg/types"
)

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect, clear, or export the workflow state",
}

var stateShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Summarize the workflow state",
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, path, err := loadState()
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rec)
		}
		printStateSummary(os.Stdout, path, rec)
		return nil
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset all workflow slots and save the empty state",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := workflowConfig().StateFile
		store := state.New(afero.NewOsFs())
		if err := store.Save(path); err != nil {
			return err
		}
		fmt.Printf("cleared %s\n", path)
		return nil
	},
}

var stateExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the content as Markdown or HTML, or the whole state as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(formatName)
		if err != nil {
			return err
		}
		rec, _, err := loadState()
		if err != nil {
			return err
		}
		return exportTo(cmd, rec, format)
	},
}

func loadState() (types.WorkflowRecord, string, error) {
	path := workflowConfig().StateFile
	store := state.New(afero.NewOsFs())
	found, err := store.Load(path)
	if err != nil {
		return types.WorkflowRecord{}, path, err
	}
	if !found {
		return types.WorkflowRecord{}, path, fmt.Errorf("no workflow state at %s", path)
	}
	return store.Snapshot(), path, nil
}

// exportTo writes rec to --output, or stdout when unset.
func exportTo(cmd *cobra.Command, rec types.WorkflowRecord, format render.Format) error {
	out, _ := cmd.Flags().GetString("output")
	if out == "" {
		return render.Export(os.Stdout, rec, format)
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := render.Export(f, rec, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s\n", out)
	return nil
}

func printStateSummary(w io.Writer, path string, rec types.WorkflowRecord) {
	fmt.Fprintf(w, "State file: %s\n\n", path)

	if rd := rec.ResearchData; rd != nil {
		fmt.Fprintf(w, "%-10s  %s (audience: %s)\n", "research", rd.Topic, rd.TargetAudience)
	} else {
		fmt.Fprintf(w, "%-10s  -\n", "research")
	}
	if dc := rec.DraftContent; dc != nil {
		fmt.Fprintf(w, "%-10s  %s, %s, %d words target\n", "draft", dc.ContentType, dc.Tone, dc.WordCount)
	} else {
		fmt.Fprintf(w, "%-10s  -\n", "draft")
	}
	if fc := rec.FinalContent; fc != nil {
		fmt.Fprintf(w, "%-10s  seo=%t grammar=%t focus=%v\n", "final", fc.SEOOptimized, fc.GrammarChecked, fc.FocusAreas)
	} else {
		fmt.Fprintf(w, "%-10s  -\n", "final")
	}
	fmt.Fprintf(w, "%-10s  %d call(s)\n", "creatives", len(rec.CreativeSuggestions))
	for i, c := range rec.CreativeSuggestions {
		images := 0
		for _, img := range c.GeneratedImages {
			if img.IsImage() {
				images++
			}
		}
		fmt.Fprintf(w, "  %d. %s, %s: %d image(s), %d prompt file(s) in %s\n",
			i+1, c.CreativeType, c.Style, images, len(c.GeneratedImages)-images, c.ImagesDirectory)
	}
}

func init() {
	stateShowCmd.Flags().Bool("json", false, "print the full state as JSON")
	stateExportCmd.Flags().String("format", "md", "export format: md, html, or yaml")
	stateExportCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	stateCmd.AddCommand(stateShowCmd, stateClearCmd, stateExportCmd)
	rootCmd.AddCommand(stateCmd)
}
