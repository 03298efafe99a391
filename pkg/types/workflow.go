// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the content workflow:
// the four workflow slots (research, draft, final content, creative
// suggestions), the record that holds them, and configuration.
//
// JSON field names are part of the persisted state file format and must not
// change.
package types

// ResearchRecord is the result of the most recent research step.
type ResearchRecord struct {
	// Topic is the researched subject.
	Topic string `json:"topic" yaml:"topic"`

	// Keywords lists the keywords the research was asked to cover.
	Keywords []string `json:"keywords" yaml:"keywords"`

	// TargetAudience names who the content is written for.
	TargetAudience string `json:"target_audience" yaml:"target_audience"`

	// Report is the formatted research report text.
	Report string `json:"report" yaml:"report"`
}

// DraftRecord is the most recently written draft.
type DraftRecord struct {
	Topic       string `json:"topic" yaml:"topic"`
	Content     string `json:"content" yaml:"content"`
	ContentType string `json:"content_type" yaml:"content_type"`
	WordCount   int    `json:"word_count" yaml:"word_count"`
	Tone        string `json:"tone" yaml:"tone"`
}

// FinalRecord is the most recently reviewed and polished content.
type FinalRecord struct {
	// Content is the polished Markdown body.
	Content string `json:"content" yaml:"content"`

	// ReviewNotes is the formatted review report.
	ReviewNotes string `json:"review_notes" yaml:"review_notes"`

	// FocusAreas lists what the review concentrated on.
	FocusAreas []string `json:"focus_areas" yaml:"focus_areas"`

	SEOOptimized   bool `json:"seo_optimized" yaml:"seo_optimized"`
	GrammarChecked bool `json:"grammar_checked" yaml:"grammar_checked"`
}

// GeneratedImage describes one creative artifact written to disk. The
// artifact is either an image or, when no image could be produced, a text
// file holding the prompt.
type GeneratedImage struct {
	Number   int    `json:"number" yaml:"number"`
	Filename string `json:"filename" yaml:"filename"`
	Filepath string `json:"filepath" yaml:"filepath"`
	Prompt   string `json:"prompt" yaml:"prompt"`

	// Note explains a prompt-only artifact.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`

	// Error records the last generation error when retries were exhausted.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// IsImage reports whether the artifact is an image rather than a prompt file.
func (g GeneratedImage) IsImage() bool {
	return g.Note == "" && g.Error == ""
}

// CreativeRecord is one creative-generation call.
type CreativeRecord struct {
	ContentTitle    string           `json:"content_title" yaml:"content_title"`
	CreativeType    string           `json:"creative_type" yaml:"creative_type"`
	Style           string           `json:"style" yaml:"style"`
	Count           int              `json:"count" yaml:"count"`
	GeneratedImages []GeneratedImage `json:"generated_images" yaml:"generated_images"`
	ImagesDirectory string           `json:"images_directory" yaml:"images_directory"`
}

// WorkflowRecord holds the four workflow slots. The three singleton slots are
// nil when absent. CreativeSuggestions is append-only.
type WorkflowRecord struct {
	ResearchData        *ResearchRecord  `json:"research_data" yaml:"research_data"`
	DraftContent        *DraftRecord     `json:"draft_content" yaml:"draft_content"`
	FinalContent        *FinalRecord     `json:"final_content" yaml:"final_content"`
	CreativeSuggestions []CreativeRecord `json:"creative_suggestions" yaml:"creative_suggestions"`
}

// IsEmpty reports whether no slot holds a value.
func (r WorkflowRecord) IsEmpty() bool {
	return r.ResearchData == nil && r.DraftContent == nil && r.FinalContent == nil && len(r.CreativeSuggestions) == 0
}

// Clone returns a deep copy of the record.
func (r WorkflowRecord) Clone() WorkflowRecord {
	out := WorkflowRecord{
		CreativeSuggestions: make([]CreativeRecord, 0, len(r.CreativeSuggestions)),
	}
	if r.ResearchData != nil {
		rd := r.ResearchData.Clone()
		out.ResearchData = &rd
	}
	if r.DraftContent != nil {
		dc := *r.DraftContent
		out.DraftContent = &dc
	}
	if r.FinalContent != nil {
		fc := r.FinalContent.Clone()
		out.FinalContent = &fc
	}
	for _, c := range r.CreativeSuggestions {
		out.CreativeSuggestions = append(out.CreativeSuggestions, c.Clone())
	}
	return out
}

// Clone returns a copy of r that shares no slices with it.
func (r ResearchRecord) Clone() ResearchRecord {
	r.Keywords = cloneStrings(r.Keywords)
	return r
}

// Clone returns a copy of f that shares no slices with it.
func (f FinalRecord) Clone() FinalRecord {
	f.FocusAreas = cloneStrings(f.FocusAreas)
	return f
}

// Clone returns a copy of c that shares no slices with it.
func (c CreativeRecord) Clone() CreativeRecord {
	if c.GeneratedImages != nil {
		imgs := make([]GeneratedImage, len(c.GeneratedImages))
		copy(imgs, c.GeneratedImages)
		c.GeneratedImages = imgs
	}
	return c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
