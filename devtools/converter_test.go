package devtools_test

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/porticus-lab/chromepdf"
	"github.com/porticus-lab/chromepdf/devtools"
)

// chromeAvailable reports whether a Chrome/Chromium executable is in PATH.
func chromeAvailable() bool {
	for _, name := range []string{
		"chromium-browser", "chromium", "google-chrome",
		"google-chrome-stable", "chrome",
	} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}

func skipIfNoChrome(t *testing.T) {
	t.Helper()
	if !chromeAvailable() {
		t.Skip("skipping: Chrome/Chromium not found in PATH")
	}
}

func newTestConverter(t *testing.T) *devtools.Converter {
	t.Helper()
	skipIfNoChrome(t)
	c, err := devtools.NewConverter(devtools.WithNoSandbox())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

// readPDF drains the stream and checks it holds a PDF document.
func readPDF(t *testing.T, stream io.ReadCloser) []byte {
	t.Helper()
	defer stream.Close()
	data, err := io.ReadAll(stream)
	require.NoError(t, err)
	require.True(t, len(data) > 4 && string(data[:5]) == "%PDF-", "output is not a valid PDF")
	return data
}

func TestRenderContent_Basic(t *testing.T) {
	c := newTestConverter(t)

	stream, err := c.RenderContent(context.Background(), "<h1>Hello World</h1>")
	require.NoError(t, err)
	assert.Greater(t, len(readPDF(t, stream)), 100)
}

func TestRenderContent_WithOptions(t *testing.T) {
	c := newTestConverter(t)
	c.SetFormat("Letter").
		SetLandscape(true).
		SetMargin("2cm").
		SetMediaEmulation("screen").
		SetFooter(`<div style="font-size:8px"><span class="pageNumber"></span></div>`)

	html := `<!DOCTYPE html>
<html>
<head><style>
  body { background: #f0f0f0; font-family: sans-serif; }
  .container { display: flex; gap: 1rem; padding: 2rem; }
  .card { background: white; border-radius: 8px; padding: 1rem; flex: 1; }
</style></head>
<body>
  <div class="container">
    <div class="card"><h2>Card 1</h2><p>Modern CSS with flexbox</p></div>
    <div class="card"><h2>Card 2</h2><p>Background colors</p></div>
  </div>
</body>
</html>`

	stream, err := c.RenderContent(context.Background(), html)
	require.NoError(t, err)
	readPDF(t, stream)
}

func TestRenderFile(t *testing.T) {
	c := newTestConverter(t)

	path := filepath.Join(t.TempDir(), "test.html")
	require.NoError(t, os.WriteFile(path, []byte("<h1>From File</h1>"), 0o644))

	stream, err := c.RenderFile(context.Background(), path)
	require.NoError(t, err)
	readPDF(t, stream)
}

func TestRenderFile_NotFound(t *testing.T) {
	c := newTestConverter(t)

	_, err := c.RenderFile(context.Background(), "/nonexistent/file.html")
	var fileErr *chromepdf.FileError
	require.ErrorAs(t, err, &fileErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRenderURL_InvalidURL(t *testing.T) {
	c := newTestConverter(t)

	_, err := c.RenderURL(context.Background(), "not a url")
	var cfgErr *chromepdf.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "url", cfgErr.Option)
}

func TestRenderContent_UnknownFormat(t *testing.T) {
	c := newTestConverter(t)
	c.SetFormat("B5")

	_, err := c.RenderContent(context.Background(), "<p>test</p>")
	var cfgErr *chromepdf.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "format", cfgErr.Option)
}

func TestConverter_CloseIdempotent(t *testing.T) {
	skipIfNoChrome(t)

	c, err := devtools.NewConverter(devtools.WithNoSandbox())
	require.NoError(t, err)

	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestConverter_UsedAfterClose(t *testing.T) {
	skipIfNoChrome(t)

	c, err := devtools.NewConverter(devtools.WithNoSandbox())
	require.NoError(t, err)
	c.Close()

	_, err = c.RenderContent(context.Background(), "<p>test</p>")
	assert.True(t, errors.Is(err, chromepdf.ErrClosed))
}

func TestAllPageSizes(t *testing.T) {
	c := newTestConverter(t)

	for _, name := range []string{"A0", "A3", "A4", "A6", "Letter", "Legal", "Tabloid", "Ledger"} {
		t.Run(name, func(t *testing.T) {
			c.SetFormat(name)
			stream, err := c.RenderContent(context.Background(), "<p>"+name+"</p>")
			require.NoError(t, err)
			readPDF(t, stream)
		})
	}
}
