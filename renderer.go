package chromepdf

import (
	"context"
	"io"
)

// Renderer turns HTML into a rendered document through some backend.
//
// The returned stream holds the rendered bytes; the caller must close it.
type Renderer interface {
	// RenderContent renders an HTML string.
	RenderContent(ctx context.Context, html string) (io.ReadCloser, error)
	// RenderURL renders the page at url.
	RenderURL(ctx context.Context, url string) (io.ReadCloser, error)
	// RenderFile renders a local HTML file.
	RenderFile(ctx context.Context, path string) (io.ReadCloser, error)
}
