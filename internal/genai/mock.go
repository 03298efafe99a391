// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"context"
	"fmt"
	"strings"
)

// MockBackend is an offline TextGenerator for local runs and tests. It echoes
// the first line of the user prompt so output is deterministic.
type MockBackend struct{}

// GenerateText returns a short Markdown paragraph derived from the prompt.
func (MockBackend) GenerateText(_ context.Context, prompt Prompt) (string, error) {
	first := strings.TrimSpace(strings.SplitN(prompt.User, "\n", 2)[0])
	return fmt.Sprintf("Generated offline for: %s", first), nil
}
