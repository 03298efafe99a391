// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render exports workflow content as Markdown, HTML, or YAML.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/content-workflow/pkg/types"
)

// ErrNothingToExport is returned when the record holds neither final nor
// draft content.
var ErrNothingToExport = errors.New("no draft or final content to export")

// Format is an export format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatYAML     Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatMarkdown, FormatHTML, FormatYAML:
		return f, nil
	case "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown export format %q (want md, html, or yaml)", s)
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts Markdown to an HTML fragment.
func HTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// Content returns the most finished piece of content in rec: the final
// content when present, otherwise the draft.
func Content(rec types.WorkflowRecord) (string, error) {
	switch {
	case rec.FinalContent != nil:
		return rec.FinalContent.Content, nil
	case rec.DraftContent != nil:
		return rec.DraftContent.Content, nil
	}
	return "", ErrNothingToExport
}

// Export writes rec to w in the given format. Markdown and HTML export the
// content only; YAML exports the whole record.
func Export(w io.Writer, rec types.WorkflowRecord, format Format) error {
	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("encoding workflow state: %w", err)
		}
		return enc.Close()
	}

	content, err := Content(rec)
	if err != nil {
		return err
	}
	if format == FormatMarkdown {
		_, err := io.WriteString(w, content)
		return err
	}

	body, err := HTML(content)
	if err != nil {
		return err
	}
	title := "Content"
	if rec.ResearchData != nil && rec.ResearchData.Topic != "" {
		title = rec.ResearchData.Topic
	}
	_, err = fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(title), body)
	return err
}
