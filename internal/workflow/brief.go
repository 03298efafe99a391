// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package workflow

import (
	"errors"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ErrBriefNoTopic is returned by LoadBrief when the brief names no topic.
var ErrBriefNoTopic = errors.New("brief has no topic")

// Brief describes one end-to-end content request.
type Brief struct {
	Topic          string   `yaml:"topic"`
	Keywords       []string `yaml:"keywords,omitempty"`
	TargetAudience string   `yaml:"target_audience,omitempty"`
	ContentType    string   `yaml:"content_type,omitempty"`
	WordCount      int      `yaml:"word_count,omitempty"`
	Tone           string   `yaml:"tone,omitempty"`
	FocusAreas     []string `yaml:"focus_areas,omitempty"`

	// Creatives is the number of creatives to generate after review. Zero
	// skips the creative step.
	Creatives    int    `yaml:"creatives,omitempty"`
	CreativeType string `yaml:"creative_type,omitempty"`
	Style        string `yaml:"style,omitempty"`
}

// LoadBrief reads a YAML brief from path.
func LoadBrief(path string) (Brief, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Brief{}, fmt.Errorf("reading brief %s: %w", path, err)
	}
	var b Brief
	if err := yaml.Unmarshal(data, &b); err != nil {
		return Brief{}, fmt.Errorf("parsing brief %s: %w", path, err)
	}
	if b.Topic == "" {
		return Brief{}, fmt.Errorf("%s: %w", path, ErrBriefNoTopic)
	}
	return b, nil
}
