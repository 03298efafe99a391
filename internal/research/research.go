// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research produces the research report that seeds a content
// workflow. The report is templated; when a text generator is supplied an
// AI insights section is appended.
package research

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/pdiddy/content-workflow/internal/genai"
	"github.com/pdiddy/content-workflow/pkg/types"
)

// ErrNoTopic is returned when the request has no topic.
var ErrNoTopic = errors.New("no topic provided for research")

// Recorder stores the research slot.
type Recorder interface {
	SetResearchData(types.ResearchRecord)
}

// Request holds the research parameters.
type Request struct {
	Topic          string   `json:"topic"`
	Keywords       []string `json:"keywords"`
	TargetAudience string   `json:"target_audience"`
}

var reportTmpl = template.Must(template.New("report").Parse(`
📚 RESEARCH REPORT
{{.Rule}}

Topic: {{.Topic}}
Keywords: {{.Keywords}}
Target Audience: {{.Audience}}

🔍 KEY FINDINGS:

1. Topic Overview:
   - {{.Topic}} is a relevant and important subject in today's context
   - Current trends show growing interest in this area
   - Multiple perspectives and approaches exist

2. Key Points to Cover:
   - Introduction and background information
   - Main concepts and definitions
   - Benefits and applications
   - Best practices and recommendations
   - Common challenges and solutions
   - Future trends and outlook

3. SEO Considerations:
   - Primary keyword: {{.Topic}}
   - Secondary keywords: {{.Keywords}}
   - Target audience: {{.Audience}}
   - Recommended content length: 1500-2500 words
   - Suggested headings: H2 and H3 tags for structure

4. Content Structure Recommendations:
   - Engaging introduction with hook
   - Clear value proposition
   - Well-organized sections with subheadings
   - Actionable insights and takeaways
   - Strong conclusion with call-to-action

5. Additional Insights:
   - Include relevant examples and case studies
   - Use data and statistics where possible
   - Address common questions and concerns
   - Provide practical tips and advice
{{if .Insights}}
🤖 AI INSIGHTS:

{{.Insights}}
{{end}}
📊 Research Status: Complete
✅ Ready for content writing phase

{{.Rule}}
`))

// insightsSystemPrompt frames the optional generator call.
const insightsSystemPrompt = "You are a research assistant preparing notes for a blog writer. " +
	"Reply with five concise bullet points of facts, angles, and questions readers have. " +
	"Plain text, no preamble."

// Rule is the separator line used by every report.
var Rule = strings.Repeat("=", 60)

// Conduct renders the research report for req, stores it through rec, and
// returns it. gen may be nil.
func Conduct(ctx context.Context, rec Recorder, gen genai.TextGenerator, req Request) (string, error) {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return "", ErrNoTopic
	}
	audience := req.TargetAudience
	if audience == "" {
		audience = types.DefaultTargetAudience
	}
	keywords := "related topics"
	if len(req.Keywords) > 0 {
		keywords = strings.Join(req.Keywords, ", ")
	}

	var insights string
	if gen != nil {
		out, err := gen.GenerateText(ctx, genai.Prompt{
			System: insightsSystemPrompt,
			User:   fmt.Sprintf("Topic: %s\nKeywords: %s\nAudience: %s", topic, keywords, audience),
		})
		if err != nil {
			return "", fmt.Errorf("generating research insights: %w", err)
		}
		insights = strings.TrimSpace(out)
	}

	var buf bytes.Buffer
	err := reportTmpl.Execute(&buf, struct {
		Rule, Topic, Keywords, Audience, Insights string
	}{Rule, topic, keywords, audience, insights})
	if err != nil {
		return "", fmt.Errorf("rendering research report: %w", err)
	}
	report := buf.String()

	rec.SetResearchData(types.ResearchRecord{
		Topic:          topic,
		Keywords:       req.Keywords,
		TargetAudience: audience,
		Report:         report,
	})
	return report, nil
}
