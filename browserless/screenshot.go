package browserless

import (
	"context"
	"io"
	"maps"
)

const (
	screenshotPath = "/screenshot"

	defaultJPEGQuality = 75
)

// Screenshot captures pages through the Browserless /screenshot API.
type Screenshot struct {
	client *Client
}

// NewScreenshot returns a Screenshot renderer sending requests through client.
func NewScreenshot(client *Client) *Screenshot {
	return &Screenshot{client: client}
}

// ScreenshotOptions returns the options sent for the given overrides: a
// non-full-page JPEG by default, with quality 75 when the effective type is
// JPEG and no quality was given.
func ScreenshotOptions(overrides map[string]any) map[string]any {
	opts := map[string]any{
		"type":     "jpeg",
		"fullPage": false,
	}
	maps.Copy(opts, overrides)

	if opts["type"] == "jpeg" {
		if _, ok := opts["quality"]; !ok {
			opts["quality"] = defaultJPEGQuality
		}
	}
	return opts
}

// Render captures the page at url. See the Browserless documentation for
// the options accepted in overrides.
func (s *Screenshot) Render(ctx context.Context, url string, overrides map[string]any) (io.ReadCloser, error) {
	return s.client.Post(ctx, screenshotPath, map[string]any{
		"url":     url,
		"options": ScreenshotOptions(overrides),
	})
}
