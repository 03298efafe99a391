// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fileutil

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanFilename(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{name: "plain title", input: "Go Concurrency Patterns", want: "Go_Concurrency_Patterns"},
		{name: "strips punctuation", input: "What's new in Go 1.25?", want: "Whats_new_in_Go_125"},
		{name: "keeps hyphens and underscores", input: "state-of_the art", want: "state-of_the_art"},
		{name: "trims surrounding whitespace", input: "  padded  ", want: "padded"},
		{name: "normalizes fullwidth letters", input: "ＧＯ", want: "GO"},
		{name: "keeps non-latin letters", input: "café résumé", want: "café_résumé"},
		{name: "truncates", input: "abcdefghij", maxLength: 4, want: "abcd"},
		{name: "empty input", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanFilename(tt.input, tt.maxLength))
		})
	}
}

func TestCleanFilename_DefaultLength(t *testing.T) {
	got := CleanFilename(strings.Repeat("x", 80), 0)
	assert.Len(t, got, DefaultFilenameLength)
}

func TestEnsureDir(t *testing.T) {
	fs := afero.NewMemMapFs()
	dir := filepath.Join("out", "nested", "creatives")

	abs, err := EnsureDir(fs, dir)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(abs))
	assert.True(t, strings.HasSuffix(abs, dir))

	ok, err := afero.DirExists(fs, dir)
	require.NoError(t, err)
	assert.True(t, ok)

	// Calling again on an existing directory is not an error.
	_, err = EnsureDir(fs, dir)
	assert.NoError(t, err)
}

func TestEnsureDir_ReadOnly(t *testing.T) {
	base := afero.NewMemMapFs()
	require.NoError(t, base.MkdirAll("/existing", 0o755))
	ro := afero.NewReadOnlyFs(base)

	_, err := EnsureDir(ro, "/existing")
	assert.NoError(t, err)

	_, err = EnsureDir(ro, "/missing")
	assert.Error(t, err)
}
