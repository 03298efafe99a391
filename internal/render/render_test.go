// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-workflow/pkg/types"
)

func TestHTML(t *testing.T) {
	out, err := HTML("# Title\n\nSome **bold** text.\n\n- one\n- two\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<li>one</li>")
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "md", want: FormatMarkdown},
		{in: "Markdown", want: FormatMarkdown},
		{in: "HTML", want: FormatHTML},
		{in: "yaml", want: FormatYAML},
		{in: "pdf", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContent(t *testing.T) {
	_, err := Content(types.WorkflowRecord{})
	assert.ErrorIs(t, err, ErrNothingToExport)

	rec := types.WorkflowRecord{DraftContent: &types.DraftRecord{Content: "draft"}}
	got, err := Content(rec)
	require.NoError(t, err)
	assert.Equal(t, "draft", got)

	rec.FinalContent = &types.FinalRecord{Content: "final"}
	got, err = Content(rec)
	require.NoError(t, err)
	assert.Equal(t, "final", got)
}

func TestExport(t *testing.T) {
	rec := types.WorkflowRecord{
		ResearchData:        &types.ResearchRecord{Topic: "Tea & Coffee"},
		FinalContent:        &types.FinalRecord{Content: "# Brewing\n\nHot water.\n"},
		CreativeSuggestions: []types.CreativeRecord{},
	}

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, rec, FormatMarkdown))
		assert.Equal(t, "# Brewing\n\nHot water.\n", buf.String())
	})

	t.Run("html", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, rec, FormatHTML))
		assert.Contains(t, buf.String(), "<title>Tea &amp; Coffee</title>")
		assert.Contains(t, buf.String(), "<h1>Brewing</h1>")
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Export(&buf, rec, FormatYAML))

		var back types.WorkflowRecord
		require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
		require.NotNil(t, back.ResearchData)
		assert.Equal(t, "Tea & Coffee", back.ResearchData.Topic)
		assert.Nil(t, back.DraftContent)
	})

	t.Run("nothing to export", func(t *testing.T) {
		var buf bytes.Buffer
		assert.ErrorIs(t, Export(&buf, types.WorkflowRecord{}, FormatHTML), ErrNothingToExport)
	})
}
