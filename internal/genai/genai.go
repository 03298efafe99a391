// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package genai abstracts the external generation API used by the workflow
// tools. Text and image generation are separate interfaces so that a
// provider without image support simply has no ImageGenerator.
package genai

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// ErrNoImageData is returned when a response carries no inline image bytes.
var ErrNoImageData = errors.New("response contains no image data")

// Prompt is the message pair sent to a text model.
type Prompt struct {
	System string
	User   string
}

// TextGenerator produces text for a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt Prompt) (string, error)
}

// ImageGenerator produces one image for a prompt.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (Image, error)
}

// Image is inline binary image data.
type Image struct {
	Data     []byte
	MIMEType string
}

// Extension returns the file extension for the image MIME type: jpg, webp,
// or png for anything else.
func (img Image) Extension() string {
	mime := strings.ToLower(img.MIMEType)
	switch {
	case strings.Contains(mime, "jpeg"), strings.Contains(mime, "jpg"):
		return "jpg"
	case strings.Contains(mime, "webp"):
		return "webp"
	}
	return "png"
}

// sniffMIME detects the MIME type of raw image bytes.
func sniffMIME(data []byte) string {
	return http.DetectContentType(data)
}
