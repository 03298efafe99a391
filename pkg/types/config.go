// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Defaults applied when a request or configuration leaves a field empty.
const (
	DefaultWordCount      = 1500
	DefaultTone           = "professional"
	DefaultContentType    = "blog post"
	DefaultTargetAudience = "general"
	DefaultCreativeType   = "featured image"
	DefaultImageStyle     = "professional"
	DefaultImageCount     = 1
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 2 * time.Second
	DefaultStateFile      = "workflow_state.json"
	DefaultCreativesDir   = "generated_creatives"
	DefaultHistoryDB      = ".content-workflow/history.db"
)

// Provider identifies the generation API backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderDeepSeek  Provider = "deepseek"
	ProviderAnthropic Provider = "anthropic"
	ProviderMock      Provider = "mock"

	// ProviderTemplate uses no generation API; every tool renders its
	// built-in templates.
	ProviderTemplate Provider = "template"
)

// AIConfig holds settings for the external generation API.
type AIConfig struct {
	// Provider selects the backend: template, openai, deepseek, anthropic,
	// or mock.
	Provider Provider `json:"provider" yaml:"provider"`

	// Model is the text model identifier.
	Model string `json:"model" yaml:"model"`

	// ImageModel is the image model identifier. Only the openai provider
	// generates images.
	ImageModel string `json:"image_model" yaml:"image_model"`

	// APIKey is the authentication key for the API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint (required for deepseek).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
}

// CreativeConfig holds settings for the creative generation tool.
type CreativeConfig struct {
	// OutputDir is where images and prompt files are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// MaxRetries is the number of attempts per image (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// RetryDelay is the fixed delay between attempts (default 2s).
	RetryDelay time.Duration `json:"retry_delay" yaml:"retry_delay"`
}

// WorkflowConfig is the complete runtime configuration.
type WorkflowConfig struct {
	AI       AIConfig       `json:"ai" yaml:"ai"`
	Creative CreativeConfig `json:"creative" yaml:"creative"`

	// StateFile is the JSON file the workflow record is persisted to.
	StateFile string `json:"state_file" yaml:"state_file"`

	// HistoryDB is the SQLite database that archives finished sessions.
	HistoryDB string `json:"history_db" yaml:"history_db"`
}

// WithDefaults returns a copy of cfg with empty fields set to defaults.
func (cfg WorkflowConfig) WithDefaults() WorkflowConfig {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = ProviderTemplate
	}
	if cfg.Creative.OutputDir == "" {
		cfg.Creative.OutputDir = DefaultCreativesDir
	}
	if cfg.Creative.MaxRetries <= 0 {
		cfg.Creative.MaxRetries = DefaultMaxRetries
	}
	if cfg.Creative.RetryDelay <= 0 {
		cfg.Creative.RetryDelay = DefaultRetryDelay
	}
	if cfg.StateFile == "" {
		cfg.StateFile = DefaultStateFile
	}
	if cfg.HistoryDB == "" {
		cfg.HistoryDB = DefaultHistoryDB
	}
	return cfg
}
