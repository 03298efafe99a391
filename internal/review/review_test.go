// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/content-workflow/internal/genai"
	"github.com/pdiddy/content-workflow/pkg/types"
)

const draft = `
# Remote Work Tips

## Introduction

Working from home takes discipline.

## Conclusion

Build habits.

---

**Keywords**: remote work
**Status**: Draft - Ready for Review
`

const meta = "**Meta Description Suggestion**: Discover everything you need to know about Remote Work Tips. " +
	"Comprehensive guide with insights, best practices, and actionable tips."

type recorder struct {
	got   *types.FinalRecord
	calls int
}

func (r *recorder) SetFinalContent(f types.FinalRecord) {
	r.calls++
	r.got = &f
}

type stubGenerator struct {
	out string
	err error
}

func (s stubGenerator) GenerateText(context.Context, genai.Prompt) (string, error) {
	return s.out, s.err
}

func boolPtr(b bool) *bool { return &b }

func TestPolish_Defaults(t *testing.T) {
	rec := &recorder{}
	out, err := Polish(context.Background(), rec, nil, Request{Content: draft})
	require.NoError(t, err)

	require.Equal(t, 1, rec.calls)
	final := rec.got
	assert.Contains(t, final.Content, "**Status**: "+StatusGrammarChecked+"\n\n"+meta+"\n")
	assert.NotContains(t, final.Content, "Draft - Ready for Review")
	assert.Equal(t, DefaultFocusAreas, final.FocusAreas)
	assert.True(t, final.SEOOptimized)
	assert.True(t, final.GrammarChecked)
	assert.Equal(t, final.Content+"\n\n"+final.ReviewNotes, out)

	assert.Contains(t, final.ReviewNotes, "📝 CONTENT REVIEW REPORT")
	assert.Contains(t, final.ReviewNotes, "   - Headings: 3 headings\n")
}

func TestPolish_StatusVariants(t *testing.T) {
	tests := []struct {
		name        string
		seo         bool
		grammar     bool
		wantStatus  string
		wantMeta    bool
		wantChanged bool
	}{
		{name: "seo only", seo: true, wantStatus: StatusPolished, wantMeta: true, wantChanged: true},
		{name: "grammar only", grammar: true, wantStatus: StatusGrammarChecked, wantChanged: true},
		{name: "both", seo: true, grammar: true, wantStatus: StatusGrammarChecked, wantMeta: true, wantChanged: true},
		{name: "neither", wantStatus: "Draft - Ready for Review"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			_, err := Polish(context.Background(), rec, nil, Request{
				Content:         draft,
				SEOOptimization: boolPtr(tt.seo),
				GrammarCheck:    boolPtr(tt.grammar),
			})
			require.NoError(t, err)

			got := rec.got.Content
			assert.Contains(t, got, "**Status**: "+tt.wantStatus)
			assert.Equal(t, tt.wantMeta, strings.Contains(got, meta))
			assert.Equal(t, tt.wantChanged, got != draft)
			assert.Equal(t, tt.seo, rec.got.SEOOptimized)
			assert.Equal(t, tt.grammar, rec.got.GrammarChecked)
		})
	}
}

func TestPolish_NoContent(t *testing.T) {
	rec := &recorder{}
	_, err := Polish(context.Background(), rec, nil, Request{Content: " \n"})
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Zero(t, rec.calls)
}

func TestPolish_FocusAreas(t *testing.T) {
	rec := &recorder{}
	_, err := Polish(context.Background(), rec, nil, Request{Content: draft, FocusAreas: []string{"tone"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"tone"}, rec.got.FocusAreas)
}

func TestPolish_WithGenerator(t *testing.T) {
	gen := stubGenerator{out: "# Remote Work Tips\n\nTighter prose."}
	rec := &recorder{}
	_, err := Polish(context.Background(), rec, gen, Request{Content: draft})
	require.NoError(t, err)

	assert.Equal(t, "# Remote Work Tips\n\nTighter prose.\n\n**Status**: "+StatusGrammarChecked+"\n\n"+meta+"\n", rec.got.Content)
}

func TestPolish_GeneratorFailure(t *testing.T) {
	rec := &recorder{}
	_, err := Polish(context.Background(), rec, stubGenerator{err: errors.New("quota")}, Request{Content: draft})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "polishing content")
	assert.Zero(t, rec.calls)
}

func TestUpdateStatus_Idempotent(t *testing.T) {
	once := UpdateStatus(draft, true, true)
	twice := UpdateStatus(once, true, true)
	assert.Equal(t, once, twice)
	assert.Equal(t, 1, strings.Count(twice, "**Meta Description Suggestion**"))
}

func TestUpdateStatus_AppendsMissingLine(t *testing.T) {
	got := UpdateStatus("# Title\n\nBody\n", false, true)
	assert.Equal(t, "# Title\n\nBody\n\n**Status**: "+StatusGrammarChecked+"\n", got)
}

func TestAnalyze(t *testing.T) {
	st := Analyze("# A\n\none two\n\n## B\nthree")
	assert.Equal(t, Stats{Words: 7, Headings: 2, Paragraphs: 2}, st)
}

func TestMetaDescription(t *testing.T) {
	assert.Contains(t, MetaDescription("no headings"), "about this topic.")
	assert.Contains(t, MetaDescription("intro\n## Sub heading\n"), "about Sub heading.")
}

func TestPolish_GeneratorKeepsTitle(t *testing.T) {
	rec := &recorder{}
	_, err := Polish(context.Background(), rec, stubGenerator{out: "Just the body."}, Request{Content: draft, GrammarCheck: boolPtr(false)})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rec.got.Content, "# Remote Work Tips\n\nJust the body.\n"))
}
