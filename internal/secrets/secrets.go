// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files. Each
// file in the directory is one secret: the filename is the key name and the
// trimmed file contents are the value.
//
// Recognized key files: openai-api-key, anthropic-api-key, deepseek-api-key.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/pdiddy/content-workflow/pkg/types"
)

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets/"

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(fsys afero.Fs, dir string) (map[string]string, error) {
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := afero.ReadFile(fsys, filepath.Join(dir, name))
		if err != nil {
			slog.Warn("could not read secret", "name", name, "err", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// KeyName returns the secret file name holding the API key for p, or "" for
// providers that need no key.
func KeyName(p types.Provider) string {
	switch p {
	case types.ProviderOpenAI:
		return "openai-api-key"
	case types.ProviderAnthropic:
		return "anthropic-api-key"
	case types.ProviderDeepSeek:
		return "deepseek-api-key"
	}
	return ""
}
