// Package devtools renders documents in a headless browser it drives over
// the Chrome DevTools Protocol.
package devtools

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/porticus-lab/chromepdf"
	"github.com/porticus-lab/chromepdf/internal/tempfile"
)

const tempPrefix = "chromepdf-devtools-"

// Converter renders documents to PDF in a headless browser.
//
// A Converter manages a browser instance that is reused across renders.
// Rendering options are set through the embedded [chromepdf.RenderOptions];
// configure them before sharing the Converter, after which render calls are
// safe for concurrent use.
//
// Call [Converter.Close] when the Converter is no longer needed to release
// browser resources.
type Converter struct {
	chromepdf.RenderOptions

	cfg           converterConfig
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	mu     sync.Mutex
	closed bool
}

var _ chromepdf.Renderer = (*Converter)(nil)

// NewConverter creates a Converter with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Converter.Close] when finished.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	chromePath, err := resolveBrowser(cfg)
	if err != nil {
		return nil, err
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("chromepdf: starting browser: %w", err)
	}
	cfg.logger.Info("Browser started", zap.String("path", chromePath), zap.Bool("sandbox", !cfg.noSandbox))

	return &Converter{
		RenderOptions: chromepdf.NewRenderOptions(),
		cfg:           cfg,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Converter, including the
// browser process. Close is idempotent.
func (c *Converter) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	c.browserCancel()
	c.allocCancel()
	return nil
}

// RenderContent renders an HTML string. The markup is written to a
// temporary .html file that is removed before RenderContent returns.
func (c *Converter) RenderContent(ctx context.Context, html string) (io.ReadCloser, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	temps := tempfile.New(afero.NewOsFs(), c.cfg.tempDir, tempPrefix, c.cfg.logger)
	defer temps.Cleanup()

	name, err := temps.WriteHTML(html)
	if err != nil {
		return nil, fmt.Errorf("chromepdf: %w", err)
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("chromepdf: resolving path: %w", err)
	}
	return c.render(ctx, "file://"+abs)
}

// RenderURL renders the web page at rawURL.
func (c *Converter) RenderURL(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, &chromepdf.ConfigError{Option: "url", Value: rawURL}
	}
	return c.render(ctx, rawURL)
}

// RenderFile renders a local HTML file.
func (c *Converter) RenderFile(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, &chromepdf.FileError{Op: "resolve", Path: path, Err: err}
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, &chromepdf.FileError{Op: "read", Path: path, Err: err}
	}
	return c.render(ctx, "file://"+abs)
}

// render performs the navigation and PDF generation.
func (c *Converter) render(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	opts := c.Clone()
	params, err := printParams(&opts)
	if err != nil {
		return nil, err
	}

	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	defer tabCancel()

	// Cancel the tab when the caller's context ends.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	actions := []chromedp.Action{}
	if media := opts.MediaEmulation().OrElse(""); media != "" {
		actions = append(actions, emulation.SetEmulatedMedia().WithMedia(media))
	}

	c.cfg.logger.Debug("Rendering with devtools",
		zap.String("target", targetURL),
		zap.Float64("paper_width", params.PaperWidth),
		zap.Float64("paper_height", params.PaperHeight))

	var buf []byte
	actions = append(actions,
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = params.Do(ctx)
			return err
		}),
	)
	if err := chromedp.Run(tabCtx, actions...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, fmt.Errorf("chromepdf: failed to render with devtools: %w", err)
	}

	return io.NopCloser(bytes.NewReader(buf)), nil
}

func (c *Converter) checkClosed() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return chromepdf.ErrClosed
	}
	return nil
}
