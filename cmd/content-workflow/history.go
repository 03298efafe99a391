// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/content-workflow/internal/history"
	"github.com/pdiddy/content-workflow/internal/render"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived workflow sessions",
	Long: `History lists sessions archived by run and exports their content. The
archive lives in a SQLite database (default .content-workflow/history.db).`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived sessions, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := history.NewStore(workflowConfig().HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	topic, _ := cmd.Flags().GetString("topic")
	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), history.ListOptions{Topic: topic, Limit: limit})
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No archived sessions.")
		return nil
	}
	fmt.Fprintf(os.Stdout, "%-26s  %-20s  %-5s  %-9s  %s\n", "ID", "Archived", "Final", "Creatives", "Topic")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, e := range entries {
		final := "no"
		if e.HasFinal {
			final = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-26s  %-20s  %-5s  %-9d  %s\n",
			e.ID, e.ArchivedAt.Local().Format(time.DateTime), final, e.Creatives, e.Topic)
	}
	return nil
}

var historyShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Export an archived session's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(formatName)
		if err != nil {
			return err
		}

		store, err := history.NewStore(workflowConfig().HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		sess, err := store.Get(context.Background(), args[0])
		if err != nil {
			return err
		}
		return exportTo(cmd, sess.Record, format)
	},
}

func init() {
	historyListCmd.Flags().String("topic", "", "only sessions whose topic contains this text")
	historyListCmd.Flags().Int("limit", 20, "maximum number of sessions")
	historyListCmd.Flags().Bool("json", false, "output as JSON")

	historyShowCmd.Flags().String("format", "md", "export format: md, html, or yaml")
	historyShowCmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	historyCmd.AddCommand(historyListCmd, historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
