package chrome

import (
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/porticus-lab/chromepdf"
	"github.com/porticus-lab/chromepdf/internal/tempfile"
)

// DefaultBinary is the renderer looked up through PATH when no binary is
// configured.
const DefaultBinary = "chrome-pdf"

const tempPrefix = "chromepdf"

// Chrome renders documents by running the chrome-pdf command-line tool.
//
// Rendering options are set through the embedded [chromepdf.RenderOptions]
// and read afresh on every render call. Inline HTML, headers and footers
// are handed to the tool as temporary files that live only as long as the
// call. A Chrome is not safe for concurrent use; create one per goroutine.
type Chrome struct {
	chromepdf.RenderOptions

	sandbox chromepdf.Opt[bool]
	binary  string
	tempDir string
	fs      afero.Fs
	runner  Runner
	logger  *zap.Logger
	temps   *tempfile.Set
}

var _ chromepdf.Renderer = (*Chrome)(nil)

// Option configures a [Chrome].
type Option func(*Chrome)

// WithBinary sets the path to the chrome-pdf executable.
// Defaults to [DefaultBinary].
func WithBinary(path string) Option {
	return func(c *Chrome) {
		c.binary = path
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(r Runner) Option {
	return func(c *Chrome) {
		c.runner = r
	}
}

// WithFs sets the filesystem temporary and output files live on. It must
// be the filesystem the runner sees.
func WithFs(fs afero.Fs) Option {
	return func(c *Chrome) {
		c.fs = fs
	}
}

// WithTempDir sets the directory for temporary and output files.
// Defaults to the system temporary directory.
func WithTempDir(dir string) Option {
	return func(c *Chrome) {
		c.tempDir = dir
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Chrome) {
		c.logger = l
	}
}

// New returns a Chrome renderer.
func New(opts ...Option) *Chrome {
	c := &Chrome{
		RenderOptions: chromepdf.NewRenderOptions(),
		binary:        DefaultBinary,
		fs:            afero.NewOsFs(),
		logger:        zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.runner == nil {
		c.runner = ExecRunner{Logger: c.logger}
	}
	c.temps = tempfile.New(c.fs, c.tempDir, tempPrefix, c.logger)
	return c
}

// Binary returns the executable the renderer runs.
func (c *Chrome) Binary() string {
	return c.binary
}

// SetSandbox turns the Chromium sandbox on or off. While unset the tool's
// own default applies.
func (c *Chrome) SetSandbox(enabled bool) *Chrome {
	c.sandbox = chromepdf.Some(enabled)
	return c
}

func (c *Chrome) ClearSandbox() *Chrome {
	c.sandbox = chromepdf.None[bool]()
	return c
}

func (c *Chrome) Sandbox() chromepdf.Opt[bool] {
	return c.sandbox
}

// MarginString returns the margins as "top,right,bottom,left" with unset
// sides as 0, or an unset Opt when no side is set.
func (c *Chrome) MarginString() chromepdf.Opt[string] {
	if !c.HasMargin() {
		return chromepdf.None[string]()
	}
	sides := []chromepdf.Opt[string]{c.MarginTop(), c.MarginRight(), c.MarginBottom(), c.MarginLeft()}
	parts := make([]string, len(sides))
	for i, s := range sides {
		if v := s.OrElse(""); v != "" {
			parts[i] = v
		} else {
			parts[i] = "0"
		}
	}
	return chromepdf.Some(strings.Join(parts, ","))
}

// RenderContent writes html to a temporary .html file and renders it.
func (c *Chrome) RenderContent(ctx context.Context, html string) (io.ReadCloser, error) {
	defer c.cleanup()

	flags, err := c.flags()
	if err != nil {
		return nil, err
	}
	file, err := c.temps.WriteHTML(html)
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, append(flags, "--file", file))
}

// RenderURL renders the page at url.
func (c *Chrome) RenderURL(ctx context.Context, url string) (io.ReadCloser, error) {
	defer c.cleanup()

	flags, err := c.flags()
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, append(flags, "--page", url))
}

// RenderFile renders the local HTML file at path. No temporary copy is made.
func (c *Chrome) RenderFile(ctx context.Context, path string) (io.ReadCloser, error) {
	defer c.cleanup()

	flags, err := c.flags()
	if err != nil {
		return nil, err
	}
	return c.execute(ctx, append(flags, "--file", path))
}

// Close removes temporary files left behind by earlier calls whose cleanup
// failed.
func (c *Chrome) Close() error {
	return c.temps.Cleanup()
}

// execute runs the binary with flags, directing output to a fresh temporary
// file, and returns that file opened for reading.
func (c *Chrome) execute(ctx context.Context, flags []string) (io.ReadCloser, error) {
	output, err := c.temps.Create()
	if err != nil {
		return nil, err
	}

	argv := make([]string, 0, len(flags)+4)
	argv = append(argv, c.binary, "pdf")
	argv = append(argv, flags...)
	argv = append(argv, "--path", output)

	c.logger.Debug("Rendering with chrome-pdf", zap.Strings("argv", argv))
	if err := c.runner.Run(ctx, argv); err != nil {
		c.removeOutput(output)
		return nil, err
	}

	f, err := c.fs.Open(output)
	if err != nil {
		c.removeOutput(output)
		return nil, errors.Wrapf(err, "opening rendered output %s", output)
	}
	return &outputFile{File: f, fs: c.fs}, nil
}

func (c *Chrome) removeOutput(path string) {
	if err := c.fs.Remove(path); err != nil {
		c.logger.Warn("Failed to remove output file", zap.String("path", path), zap.Error(err))
	}
}

// cleanup removes the call's temporary inputs. Failures are logged by the
// set and retried later; they never replace the call's own result.
func (c *Chrome) cleanup() {
	_ = c.temps.Cleanup()
}

// outputFile is the rendered PDF. Closing it also removes it.
type outputFile struct {
	afero.File
	fs afero.Fs
}

func (f *outputFile) Close() error {
	err := f.File.Close()
	if rmErr := f.fs.Remove(f.Name()); rmErr != nil && err == nil {
		err = rmErr
	}
	return err
}
