// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fileutil provides path creation and filename sanitization helpers.
package fileutil

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/text/unicode/norm"
)

// DefaultFilenameLength is the maximum length, in runes, of a cleaned filename.
const DefaultFilenameLength = 50

// disallowedChars matches everything except letters, digits, underscores,
// whitespace, and hyphens.
var disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)

// EnsureDir creates dir (and parents) on fs if needed and returns its
// absolute path. An existing directory is left untouched.
func EnsureDir(fs afero.Fs, dir string) (string, error) {
	if ok, _ := afero.DirExists(fs, dir); !ok {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}

// CleanFilename turns arbitrary text into a filename-safe string. The text is
// NFKC-normalized, stripped of special characters, trimmed, has spaces
// replaced by underscores, and is cut to maxLength runes. A maxLength of zero
// or less uses DefaultFilenameLength.
func CleanFilename(text string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultFilenameLength
	}
	cleaned := norm.NFKC.String(text)
	cleaned = disallowedChars.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(strings.TrimSpace(cleaned), " ", "_")

	runes := []rune(cleaned)
	if len(runes) > maxLength {
		runes = runes[:maxLength]
	}
	return string(runes)
}
