// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package genai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/content-workflow/pkg/types"
)

// DefaultOpenAIImageModel is used when no image model is configured.
const DefaultOpenAIImageModel = "dall-e-3"

// OpenAIBackend generates text with chat completions and images with the
// images API. It also serves OpenAI-compatible endpoints via BaseURL.
type OpenAIBackend struct {
	client     openai.Client
	model      string
	imageModel string
}

// NewOpenAIBackend builds a backend from cfg. Extra options are appended
// after the ones derived from cfg.
func NewOpenAIBackend(cfg types.AIConfig, extra ...option.RequestOption) (*OpenAIBackend, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key missing; set api_key or .secrets/openai-api-key")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)

	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = DefaultOpenAIImageModel
	}
	return &OpenAIBackend{
		client:     openai.NewClient(opts...),
		model:      cfg.Model,
		imageModel: imageModel,
	}, nil
}

// GenerateText sends the prompt as a system and user message pair.
func (o *OpenAIBackend) GenerateText(ctx context.Context, prompt Prompt) (string, error) {
	var msgs []openai.ChatCompletionMessageParamUnion
	if prompt.System != "" {
		msgs = append(msgs, openai.SystemMessage(prompt.System))
	}
	msgs = append(msgs, openai.UserMessage(prompt.User))

	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateImage requests one base64-encoded image. A response with only a
// URL, or no data at all, yields ErrNoImageData.
func (o *OpenAIBackend) GenerateImage(ctx context.Context, prompt string) (Image, error) {
	params := openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(o.imageModel),
		N:      openai.Int(1),
	}
	// gpt-image models always return base64 and reject response_format.
	if strings.HasPrefix(o.imageModel, "dall-e") {
		params.ResponseFormat = openai.ImageGenerateParamsResponseFormatB64JSON
	}

	resp, err := o.client.Images.Generate(ctx, params)
	if err != nil {
		return Image{}, fmt.Errorf("openai image generation: %w", err)
	}
	for _, img := range resp.Data {
		if img.B64JSON == "" {
			continue
		}
		data, err := base64.StdEncoding.DecodeString(img.B64JSON)
		if err != nil {
			return Image{}, fmt.Errorf("decoding image data: %w", err)
		}
		return Image{Data: data, MIMEType: sniffMIME(data)}, nil
	}
	return Image{}, ErrNoImageData
}
