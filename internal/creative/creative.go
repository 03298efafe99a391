// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package creative generates images for a piece of content and saves them
// to the creatives directory. When no image can be produced the prompt is
// saved as a text file instead, so every requested creative leaves an
// artifact on disk.
package creative

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/pdiddy/content-workflow/internal/fileutil"
	"github.com/pdiddy/content-workflow/internal/genai"
	"github.com/pdiddy/content-workflow/pkg/types"
)

// ErrNoContent is returned when the request has no content.
var ErrNoContent = errors.New("no content provided for creative generation")

// NotePromptSaved is recorded on prompt-only artifacts.
const NotePromptSaved = "Prompt saved - use with image generation API"

const (
	timestampLayout = "20060102_150405"
	defaultTitle    = "Blog Post"
	promptPreview   = 100
)

var (
	titleLine   = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	sectionLine = regexp.MustCompile(`(?m)^##\s+(.+)$`)
)

// Recorder appends to the creative history.
type Recorder interface {
	AddCreativeSuggestion(types.CreativeRecord)
}

// Request holds the creative parameters.
type Request struct {
	Content      string `json:"content"`
	CreativeType string `json:"creative_type"`
	Style        string `json:"style"`
	Count        int    `json:"count"`
}

func (r Request) withDefaults() Request {
	if r.CreativeType == "" {
		r.CreativeType = types.DefaultCreativeType
	}
	if r.Style == "" {
		r.Style = types.DefaultImageStyle
	}
	if r.Count <= 0 {
		r.Count = types.DefaultImageCount
	}
	return r
}

// Generator writes creatives. Images may be nil, in which case only prompt
// files are written.
type Generator struct {
	Images genai.ImageGenerator
	Fs     afero.Fs
	Config types.CreativeConfig

	// Now returns the time used in filenames. Nil means time.Now.
	Now func() time.Time
}

// Generate produces req.Count creatives for req.Content, records them
// through rec, and returns a report. Failures writing an individual artifact
// are reported inline and do not fail the call.
func (g *Generator) Generate(ctx context.Context, rec Recorder, req Request) (string, error) {
	if strings.TrimSpace(req.Content) == "" {
		return "", ErrNoContent
	}
	req = req.withDefaults()
	cfg := types.WorkflowConfig{Creative: g.Config}.WithDefaults().Creative

	fsys := g.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	title, keywords := outline(req.Content)
	dir, err := fileutil.EnsureDir(fsys, cfg.OutputDir)
	if err != nil {
		return "", err
	}

	stem := fmt.Sprintf("%s_%s", fileutil.CleanFilename(title, 0), strings.ReplaceAll(req.CreativeType, " ", "_"))
	stamp := now().Format(timestampLayout)

	var report strings.Builder
	rule := strings.Repeat("=", 60)
	fmt.Fprintf(&report, "\n🎨 AI CREATIVE GENERATION\n%s\n\n", rule)
	fmt.Fprintf(&report, "📝 Content Title: %s\n", title)
	fmt.Fprintf(&report, "🎯 Creative Type: %s\n", req.CreativeType)
	fmt.Fprintf(&report, "✨ Style: %s\n", req.Style)
	fmt.Fprintf(&report, "📊 Generating: %d image(s)\n\n", req.Count)
	fmt.Fprintf(&report, "🖼️ GENERATING IMAGES...\n")

	mainKeyword := title
	if len(keywords) > 0 {
		mainKeyword = keywords[0]
	}
	prompt := ImagePrompt(title, mainKeyword, req.CreativeType, req.Style)

	var images []types.GeneratedImage
	for i := 1; i <= req.Count; i++ {
		base := fmt.Sprintf("%s_%d_%s", stem, i, stamp)
		img, err := g.produce(ctx, fsys, cfg, dir, base, prompt)
		if err != nil {
			slog.Warn("writing creative", "number", i, "err", err)
			fmt.Fprintf(&report, "\n⚠️ Error generating image #%d: %v\n", i, err)
			continue
		}
		img.Number = i
		images = append(images, img)
	}

	fmt.Fprintf(&report, "\n✅ GENERATION COMPLETE\n%s\n\n", rule)
	if len(images) > 0 {
		fmt.Fprintf(&report, "📁 Images saved to directory: %s\n\n", dir)
		fmt.Fprintf(&report, "📸 Generated Images:\n\n")
		for _, img := range images {
			fmt.Fprintf(&report, "Image #%d:\n", img.Number)
			fmt.Fprintf(&report, "  📄 Filename: %s\n", img.Filename)
			fmt.Fprintf(&report, "  📍 Filepath: %s\n", img.Filepath)
			fmt.Fprintf(&report, "  🎨 Prompt: %s...\n", preview(img.Prompt, promptPreview))
			if img.Note != "" {
				fmt.Fprintf(&report, "  ℹ️  Note: %s\n", img.Note)
			}
			if img.Error != "" {
				fmt.Fprintf(&report, "  ⚠️ Error: %s\n", img.Error)
			}
			report.WriteString("\n")
		}
		fmt.Fprintf(&report, "💡 Usage:\n")
		fmt.Fprintf(&report, "  - Images are saved in: %s\n", dir)
		fmt.Fprintf(&report, "  - You can view them in your file system\n")
		fmt.Fprintf(&report, "  - Use them as featured images, social media graphics, etc.\n")
	} else {
		fmt.Fprintf(&report, "⚠️ No images were generated. Check the error messages above.\n")
	}
	fmt.Fprintf(&report, "\n%s\n", rule)

	if images == nil {
		images = []types.GeneratedImage{}
	}
	rec.AddCreativeSuggestion(types.CreativeRecord{
		ContentTitle:    title,
		CreativeType:    req.CreativeType,
		Style:           req.Style,
		Count:           req.Count,
		GeneratedImages: images,
		ImagesDirectory: dir,
	})
	return report.String(), nil
}

// produce runs the bounded retry loop for one creative and writes the
// resulting artifact. The returned error is only for a failed write.
func (g *Generator) produce(ctx context.Context, fsys afero.Fs, cfg types.CreativeConfig, dir, base, prompt string) (types.GeneratedImage, error) {
	if g.Images == nil {
		return writePrompt(fsys, dir, base, prompt, NotePromptSaved, "")
	}

	var lastErr error
	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := wait(ctx, cfg.RetryDelay); err != nil {
				lastErr = err
				break
			}
		}

		img, err := g.Images.GenerateImage(ctx, prompt)
		if errors.Is(err, genai.ErrNoImageData) {
			return writePrompt(fsys, dir, base, prompt, NotePromptSaved, "")
		}
		if err != nil {
			slog.Debug("image generation failed", "attempt", attempt+1, "err", err)
			lastErr = err
			continue
		}

		name := base + "." + img.Extension()
		path := filepath.Join(dir, name)
		if err := afero.WriteFile(fsys, path, img.Data, 0o644); err != nil {
			return types.GeneratedImage{}, fmt.Errorf("writing image %s: %w", path, err)
		}
		return types.GeneratedImage{Filename: name, Filepath: path, Prompt: prompt}, nil
	}
	return writePrompt(fsys, dir, base, prompt, "", lastErr.Error())
}

func writePrompt(fsys afero.Fs, dir, base, prompt, note, errText string) (types.GeneratedImage, error) {
	name := base + ".txt"
	path := filepath.Join(dir, name)

	var body strings.Builder
	fmt.Fprintf(&body, "Image Prompt: %s\n\n", prompt)
	if errText != "" {
		fmt.Fprintf(&body, "Error: %s\n", errText)
		body.WriteString("Note: Use this prompt with an image generation API.\n")
	} else {
		body.WriteString("Note: Image generation requires an image generation API.\n")
		body.WriteString("Use this prompt with DALL-E, Midjourney, or Stable Diffusion.\n")
	}
	if err := afero.WriteFile(fsys, path, []byte(body.String()), 0o644); err != nil {
		return types.GeneratedImage{}, fmt.Errorf("writing prompt file %s: %w", path, err)
	}
	return types.GeneratedImage{Filename: name, Filepath: path, Prompt: prompt, Note: note, Error: errText}, nil
}

func wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// outline returns the content title and up to three section headings.
func outline(content string) (string, []string) {
	title := defaultTitle
	if m := titleLine.FindStringSubmatch(content); m != nil {
		title = strings.TrimSpace(m[1])
	}
	var keywords []string
	for _, m := range sectionLine.FindAllStringSubmatch(content, 3) {
		keywords = append(keywords, strings.TrimSpace(m[1]))
	}
	return title, keywords
}

// ImagePrompt builds the image generation prompt for a piece of content.
func ImagePrompt(title, keyword, creativeType, style string) string {
	return fmt.Sprintf("A %s %s for a blog post about %s. "+
		"The image should be visually appealing, on-brand, and relevant to the content. "+
		"Use colors that complement the topic and maintain a %s aesthetic. "+
		"Include visual elements that represent %s. "+
		"High quality, professional design, suitable for web use.",
		style, creativeType, title, style, keyword)
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
