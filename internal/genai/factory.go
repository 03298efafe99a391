// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"fmt"

	"github.com/pdiddy/content-workflow/pkg/types"
)

// Backends is the pair of generators selected for a provider. Image is nil
// for providers that cannot generate images; both are nil for the template
// provider.
type Backends struct {
	Text  TextGenerator
	Image ImageGenerator
}

// New builds the backends for cfg.Provider.
func New(cfg types.AIConfig) (Backends, error) {
	switch cfg.Provider {
	case types.ProviderOpenAI:
		b, err := NewOpenAIBackend(cfg)
		if err != nil {
			return Backends{}, err
		}
		return Backends{Text: b, Image: b}, nil
	case types.ProviderDeepSeek:
		// DeepSeek exposes an OpenAI-compatible chat API but no image API.
		if cfg.BaseURL == "" {
			return Backends{}, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		b, err := NewOpenAIBackend(cfg)
		if err != nil {
			return Backends{}, err
		}
		return Backends{Text: b}, nil
	case types.ProviderAnthropic:
		b, err := NewAnthropicBackend(cfg)
		if err != nil {
			return Backends{}, err
		}
		return Backends{Text: b}, nil
	case types.ProviderMock:
		return Backends{Text: MockBackend{}}, nil
	case types.ProviderTemplate, "":
		return Backends{}, nil
	default:
		return Backends{}, fmt.Errorf("llm provider %s not supported", cfg.Provider)
	}
}
