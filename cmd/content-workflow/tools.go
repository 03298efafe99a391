// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-workflow/internal/workflow"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the workflow tools an orchestrator can call",
	Long: `Tools prints the tool names, descriptions, and parameters in YAML. An
orchestrating agent uses these specs to call tools through tools call.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		if err := enc.Encode(workflow.Specs()); err != nil {
			return err
		}
		return enc.Close()
	},
}

var toolsCallCmd = &cobra.Command{
	Use:   "call <tool> [json-args]",
	Short: "Call a tool by name with JSON arguments",
	Long: `Call invokes one tool by name. Arguments are a JSON object using the
parameter names listed by tools, for example:

  content-workflow tools call conduct_research '{"topic":"Tide pools"}'

The tool report is printed as is. Failures are reported as text starting
with "❌ Error:" and exit non-zero.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var callArgs map[string]any
		if len(args) == 2 {
			if err := json.Unmarshal([]byte(args[1]), &callArgs); err != nil {
				return fmt.Errorf("parsing tool arguments: %w", err)
			}
		}
		tools, _, err := openToolset()
		if err != nil {
			return err
		}
		return printReport(args[0], tools.Invoke(context.Background(), args[0], callArgs))
	},
}

func init() {
	toolsCmd.AddCommand(toolsCallCmd)
	rootCmd.AddCommand(toolsCmd)
}
