// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the content-workflow CLI.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-workflow/internal/creative"
	"github.com/pdiddy/content-workflow/internal/genai"
	"github.com/pdiddy/content-workflow/internal/secrets"
	"github.com/pdiddy/content-workflow/internal/state"
	"github.com/pdiddy/content-workflow/internal/workflow"
	"github.com/pdiddy/content-workflow/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the content-workflow CLI.
var rootCmd = &cobra.Command{
	Use:   "content-workflow",
	Short: "Research, write, review, and illustrate SEO content",
	Long: `content-workflow turns a topic into polished, SEO-ready content in four
steps: research, write, review, and creative generation. Each step is a
subcommand that reads its input from the shared workflow state file and
stores its result there, so steps can be run one at a time or all together
with run.

Text and images come from the configured provider (openai, deepseek,
anthropic, mock). The default template provider works offline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelInfo
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

		s, err := secrets.Load(afero.NewOsFs(), secrets.DefaultDir)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			slog.Debug("loaded secrets", "keys", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./content-workflow.yaml or ~/.config/content-workflow/content-workflow.yaml)")
	pf.BoolP("verbose", "v", false, "enable debug logging")
	pf.String("provider", string(types.ProviderTemplate), "generation provider: template, openai, deepseek, anthropic, mock")
	pf.String("model", "", "text model identifier")
	pf.String("image-model", "", "image model identifier (openai only)")
	pf.String("base-url", "", "API endpoint override (required for deepseek)")
	pf.String("state-file", types.DefaultStateFile, "workflow state file")
	pf.String("creatives-dir", types.DefaultCreativesDir, "directory for generated creatives")
	pf.String("history-db", types.DefaultHistoryDB, "session archive database")
	pf.Int("max-retries", types.DefaultMaxRetries, "image generation attempts per creative")
	pf.Duration("retry-delay", types.DefaultRetryDelay, "delay between image generation attempts")

	for key, flag := range map[string]string{
		"provider":      "provider",
		"model":         "model",
		"image_model":   "image-model",
		"base_url":      "base-url",
		"state_file":    "state-file",
		"creatives_dir": "creatives-dir",
		"history_db":    "history-db",
		"max_retries":   "max-retries",
		"retry_delay":   "retry-delay",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("content-workflow")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "content-workflow"))
		}
	}

	viper.SetEnvPrefix("CONTENT_WORKFLOW")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// workflowConfig assembles the runtime configuration from flags, config
// file, environment, and secrets, in that order of precedence.
func workflowConfig() types.WorkflowConfig {
	cfg := types.WorkflowConfig{
		AI: types.AIConfig{
			Provider:   types.Provider(viper.GetString("provider")),
			Model:      viper.GetString("model"),
			ImageModel: viper.GetString("image_model"),
			BaseURL:    viper.GetString("base_url"),
			APIKey:     viper.GetString("api_key"),
		},
		Creative: types.CreativeConfig{
			OutputDir:  viper.GetString("creatives_dir"),
			MaxRetries: viper.GetInt("max_retries"),
			RetryDelay: viper.GetDuration("retry_delay"),
		},
		StateFile: viper.GetString("state_file"),
		HistoryDB: viper.GetString("history_db"),
	}.WithDefaults()

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = loadedSecrets[secrets.KeyName(cfg.AI.Provider)]
	}
	return cfg
}

// openToolset builds a toolset for a new session whose state is restored
// from the configured state file.
func openToolset() (*workflow.Toolset, types.WorkflowConfig, error) {
	cfg := workflowConfig()
	backends, err := genai.New(cfg.AI)
	if err != nil {
		return nil, cfg, err
	}

	fs := afero.NewOsFs()
	sess := workflow.NewSession(state.New(fs), cfg.StateFile, slog.Default())
	sess.Restore()

	return &workflow.Toolset{
		Session: sess,
		Text:    backends.Text,
		Creative: &creative.Generator{
			Images: backends.Image,
			Fs:     fs,
			Config: cfg.Creative,
		},
	}, cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
