// Package source resolves the document image sent to the information
// extraction endpoints, either from a binary property or from a URL.
package source

import (
	"context"

	"github.com/checkmarble/upstage-nodes"
)

const (
	InputBinary = "binary"
	InputUrl    = "url"
)

// ImageUrl returns a base64 data URL of the item binary, or the URL parameter
// as-is.
func ImageUrl(ctx context.Context, fns upstage.ExecuteFunctions, idx int, item upstage.Item, inputType, property, url string) (string, error) {
	if inputType == InputUrl {
		if url == "" {
			return "", upstage.Validationf("missing required parameter %q", "imageUrl")
		}

		return url, nil
	}

	bin, data, err := upstage.BinaryProperty(ctx, fns, idx, item, property)
	if err != nil {
		return "", err
	}

	return upstage.DataUrl(bin.MimeType, data), nil
}

// ImageMessage is a user message carrying a single image.
func ImageMessage(url string) map[string]any {
	return map[string]any{
		"role": "user",
		"content": []any{
			map[string]any{
				"type":      "image_url",
				"image_url": map[string]any{"url": url},
			},
		},
	}
}

// TextMessage is a plain user message.
func TextMessage(text string) map[string]any {
	return map[string]any{
		"role":    "user",
		"content": text,
	}
}

// ParseContent decodes the JSON document returned as message content. Empty
// content yields an empty object, and content that is not JSON is kept under
// "_raw".
func ParseContent(content string) any {
	if content == "" {
		return map[string]any{}
	}

	value, ok := upstage.ParseJson(content)
	if !ok {
		return map[string]any{"_raw": content}
	}

	return value
}
