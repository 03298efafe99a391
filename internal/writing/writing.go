// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package writing turns a research report into a Markdown draft.
package writing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/pdiddy/content-workflow/internal/genai"
	"github.com/pdiddy/content-workflow/pkg/types"
)

var (
	// ErrNoTopic is returned when the request has no topic.
	ErrNoTopic = errors.New("no topic provided for content writing")

	// ErrNoResearch is returned when the request carries no research text.
	ErrNoResearch = errors.New("no research data provided. Please conduct research first")
)

// DraftStatus is the status line value of a freshly written draft. The
// review step rewrites the status line.
const DraftStatus = "Draft - Ready for Review"

// keywordsLine extracts the keyword list from a research report.
var keywordsLine = regexp.MustCompile(`Keywords: (.+)`)

// Recorder stores the draft slot.
type Recorder interface {
	SetDraftContent(types.DraftRecord)
}

// Request holds the writing parameters.
type Request struct {
	Topic        string `json:"topic"`
	ResearchData string `json:"research_data"`
	ContentType  string `json:"content_type"`
	WordCount    int    `json:"word_count"`
	Tone         string `json:"tone"`
}

func (r Request) withDefaults() Request {
	r.Topic = strings.TrimSpace(r.Topic)
	if r.ContentType == "" {
		r.ContentType = types.DefaultContentType
	}
	if r.WordCount <= 0 {
		r.WordCount = types.DefaultWordCount
	}
	if r.Tone == "" {
		r.Tone = types.DefaultTone
	}
	return r
}

var bodyTmpl = template.Must(template.New("body").Parse(`# {{.Topic}}

## Introduction

Welcome to this comprehensive guide on {{.Topic}}. In this {{.ContentType}}, we'll explore everything you need to know about this important subject, providing you with valuable insights and practical information.

{{.Topic}} has become increasingly relevant in today's world, and understanding its key aspects can help you make informed decisions and achieve better results.

## Understanding {{.Topic}}

{{.Topic}} encompasses various important concepts and principles. Let's dive into the fundamental aspects that make this topic significant.

### Key Concepts

The core concepts of {{.Topic}} include several essential elements that work together to create a comprehensive understanding. These concepts form the foundation for deeper exploration and application.

### Benefits and Applications

Understanding {{.Topic}} offers numerous benefits, including:

- Enhanced knowledge and awareness
- Better decision-making capabilities
- Improved outcomes and results
- Practical applications in various contexts

## Best Practices

When working with {{.Topic}}, following best practices can significantly improve your results:

1. **Start with the Basics**: Build a solid foundation before advancing
2. **Stay Updated**: Keep abreast of the latest developments and trends
3. **Apply Consistently**: Regular application leads to better outcomes
4. **Learn from Experience**: Reflect on what works and what doesn't

## Common Challenges and Solutions

Many people encounter challenges when dealing with {{.Topic}}. Here are some common issues and their solutions:

### Challenge 1: Getting Started
**Solution**: Begin with clear goals and a structured approach. Break down complex tasks into manageable steps.

### Challenge 2: Maintaining Consistency
**Solution**: Develop a routine and stick to it. Track your progress and adjust as needed.

### Challenge 3: Staying Motivated
**Solution**: Set milestones and celebrate achievements. Connect with others who share similar interests.

## Advanced Strategies

For those looking to take their understanding of {{.Topic}} to the next level, consider these advanced strategies:

- Deep dive into specialized areas
- Connect with experts and communities
- Experiment with different approaches
- Continuously refine your methods

## Future Trends

The landscape of {{.Topic}} is constantly evolving. Here are some trends to watch:

- Emerging technologies and methodologies
- Changing perspectives and approaches
- New opportunities and applications
- Evolving best practices

## Conclusion

In conclusion, {{.Topic}} is a multifaceted subject that offers significant value when properly understood and applied. By following the insights and recommendations outlined in this guide, you can navigate this topic more effectively and achieve your desired outcomes.

Remember, success with {{.Topic}} comes from consistent effort, continuous learning, and practical application. Start implementing these strategies today and see the positive impact on your journey.
`))

var footerTmpl = template.Must(template.New("footer").Parse(`
---

**Keywords**: {{.Keywords}}
**Content Type**: {{.ContentType}}
**Tone**: {{.Tone}}
**Target Word Count**: {{.WordCount}} words
**Status**: {{.Status}}
`))

const writerSystemPrompt = "You are an expert content writer. Write well-structured Markdown with a single " +
	"level-one heading as the title, H2 and H3 subheadings, an engaging introduction, actionable " +
	"insights, and a strong conclusion. Output Markdown only, no commentary."

// Write drafts content for req, stores it through rec, and returns it. When
// gen is nil the built-in template supplies the body. The metadata footer,
// including the status line, is always appended.
func Write(ctx context.Context, rec Recorder, gen genai.TextGenerator, req Request) (string, error) {
	req = req.withDefaults()
	if req.Topic == "" {
		return "", ErrNoTopic
	}
	if strings.TrimSpace(req.ResearchData) == "" {
		return "", ErrNoResearch
	}

	keywords := ExtractKeywords(req.ResearchData)

	body, err := draftBody(ctx, gen, req, keywords)
	if err != nil {
		return "", err
	}

	var footer bytes.Buffer
	err = footerTmpl.Execute(&footer, struct {
		Request
		Keywords string
		Status   string
	}{req, keywords, DraftStatus})
	if err != nil {
		return "", fmt.Errorf("rendering draft footer: %w", err)
	}

	draft := "\n" + strings.TrimRight(body, "\n") + "\n" + footer.String() + "\n"

	rec.SetDraftContent(types.DraftRecord{
		Topic:       req.Topic,
		Content:     draft,
		ContentType: req.ContentType,
		WordCount:   req.WordCount,
		Tone:        req.Tone,
	})
	return draft, nil
}

func draftBody(ctx context.Context, gen genai.TextGenerator, req Request, keywords string) (string, error) {
	if gen == nil {
		var buf bytes.Buffer
		if err := bodyTmpl.Execute(&buf, req); err != nil {
			return "", fmt.Errorf("rendering draft: %w", err)
		}
		return buf.String(), nil
	}

	user := fmt.Sprintf("Write a %s titled %q of about %d words in a %s tone.\nKeywords: %s\n\nResearch notes:\n%s",
		req.ContentType, req.Topic, req.WordCount, req.Tone, keywords, req.ResearchData)
	out, err := gen.GenerateText(ctx, genai.Prompt{System: writerSystemPrompt, User: user})
	if err != nil {
		return "", fmt.Errorf("generating draft: %w", err)
	}
	out = strings.TrimSpace(out)
	if !strings.HasPrefix(out, "# ") {
		out = "# " + req.Topic + "\n\n" + out
	}
	return out, nil
}

// ExtractKeywords returns the value of the first "Keywords:" line in a
// research report, or "related topics" when there is none.
func ExtractKeywords(research string) string {
	if m := keywordsLine.FindStringSubmatch(research); m != nil {
		return strings.TrimSpace(m[1])
	}
	return "related topics"
}
