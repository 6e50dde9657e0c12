// Package optionbag drives the chrome-pdf tool from a free-form, ordered
// set of named options, with an optional translation layer for callers
// migrating from Snappy/wkhtmltopdf option names.
package optionbag

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/porticus-lab/chromepdf"
	"github.com/porticus-lab/chromepdf/chrome"
	"github.com/porticus-lab/chromepdf/internal/tempfile"
)

const subcommand = "pdf"

// contentTargets maps inline-markup options to the file options that
// replace them on the command line.
var contentTargets = map[string]string{
	"content":       "file",
	"headerContent": "headerTemplate",
	"footerContent": "footerTemplate",
}

// Bag accumulates options and runs chrome-pdf with them.
//
// Options start as format A4, all-zero margins and printBackground true.
// A Bag is not safe for concurrent use.
type Bag struct {
	settings settings
	binary   string
	runner   Runner
	fs       afero.Fs
	tempDir  string
	logger   *zap.Logger
	snappy   bool
}

// Option configures a [Bag].
type Option func(*Bag)

// WithBinary sets the path to the chrome-pdf executable.
func WithBinary(path string) Option {
	return func(b *Bag) {
		b.binary = path
	}
}

// WithRunner replaces the subprocess runner.
func WithRunner(r Runner) Option {
	return func(b *Bag) {
		b.runner = r
	}
}

// WithFs sets the filesystem for temporary files and destination checks.
func WithFs(fs afero.Fs) Option {
	return func(b *Bag) {
		b.fs = fs
	}
}

// WithTempDir sets the directory for temporary markup files.
func WithTempDir(dir string) Option {
	return func(b *Bag) {
		b.tempDir = dir
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Bag) {
		b.logger = l
	}
}

// WithSnappyCompat accepts Snappy/wkhtmltopdf option names alongside the
// native ones.
func WithSnappyCompat() Option {
	return func(b *Bag) {
		b.snappy = true
	}
}

// New returns a Bag with the default options.
func New(opts ...Option) *Bag {
	b := &Bag{
		settings: defaultSettings(),
		binary:   chrome.DefaultBinary,
		fs:       afero.NewOsFs(),
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(b)
	}
	if b.runner == nil {
		b.runner = chrome.ExecRunner{Logger: b.logger}
	}
	return b
}

// SetOption records an option for every later call. Unknown names,
// unsupported value types and malformed margins are reported as a
// [*chromepdf.ConfigError].
func (b *Bag) SetOption(name string, value any) error {
	return b.add(&b.settings, name, value)
}

// Settings returns the recorded options in order.
func (b *Bag) Settings() []Setting {
	return slices.Clone(b.settings)
}

// Output renders the file or URL at src and returns the PDF. A src
// containing "://" is loaded as a page, anything else as a local file.
func (b *Bag) Output(ctx context.Context, src string, overrides ...Setting) ([]byte, error) {
	s, err := b.prepare(overrides)
	if err != nil {
		return nil, err
	}
	s.put(sourceOption(src), src)
	s.remove("path")
	return b.run(ctx, s)
}

// OutputFromHTML renders html and returns the PDF.
func (b *Bag) OutputFromHTML(ctx context.Context, html string, overrides ...Setting) ([]byte, error) {
	s, err := b.prepare(overrides)
	if err != nil {
		return nil, err
	}
	s.put("content", html)
	s.remove("path")
	return b.run(ctx, s)
}

// Generate renders src into the file dst and returns what the tool wrote
// to stdout. An existing dst is a [*chromepdf.FileError] unless overwrite
// is set.
func (b *Bag) Generate(ctx context.Context, src, dst string, overwrite bool, overrides ...Setting) ([]byte, error) {
	if err := b.checkDestination(dst, overwrite); err != nil {
		return nil, err
	}
	s, err := b.prepare(overrides)
	if err != nil {
		return nil, err
	}
	s.put(sourceOption(src), src)
	s.put("path", dst)
	return b.run(ctx, s)
}

// GenerateFromHTML renders html into the file dst.
func (b *Bag) GenerateFromHTML(ctx context.Context, html, dst string, overwrite bool, overrides ...Setting) ([]byte, error) {
	if err := b.checkDestination(dst, overwrite); err != nil {
		return nil, err
	}
	s, err := b.prepare(overrides)
	if err != nil {
		return nil, err
	}
	s.put("content", html)
	s.put("path", dst)
	return b.run(ctx, s)
}

func (b *Bag) add(s *settings, name string, value any) error {
	if b.snappy {
		if handled, err := s.addSnappy(name, value); handled || err != nil {
			return err
		}
	}
	return s.add(name, value)
}

// prepare returns a copy of the recorded options with overrides applied.
func (b *Bag) prepare(overrides []Setting) (settings, error) {
	s := slices.Clone(b.settings)
	for _, o := range overrides {
		if err := b.add(&s, o.Name, o.Value); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func sourceOption(src string) string {
	if strings.Contains(src, "://") {
		return "page"
	}
	return "file"
}

func (b *Bag) checkDestination(dst string, overwrite bool) error {
	if overwrite {
		return nil
	}
	exists, err := afero.Exists(b.fs, dst)
	if err != nil {
		return &chromepdf.FileError{Op: "stat", Path: dst, Err: err}
	}
	if exists {
		return &chromepdf.FileError{Op: "write", Path: dst, Err: chromepdf.ErrFileExists}
	}
	return nil
}

// run builds the command line for s and executes it. Markup passed inline
// is written to temporary .html files that are removed before run returns.
func (b *Bag) run(ctx context.Context, s settings) ([]byte, error) {
	temps := tempfile.New(b.fs, b.tempDir, "chromepdf-", b.logger)
	defer temps.Cleanup()

	argv, err := b.command(s, temps)
	if err != nil {
		return nil, err
	}
	b.logger.Debug("Rendering with chrome-pdf", zap.Strings("argv", argv))
	return b.runner.Output(ctx, argv)
}

func (b *Bag) command(s settings, temps *tempfile.Set) ([]string, error) {
	argv := []string{b.binary, subcommand}
	for _, e := range s {
		if e.Name == "sandbox" {
			if enabled, ok := e.Value.(bool); ok && !enabled {
				argv = append(argv, "--no-sandbox")
			}
			continue
		}

		if target, ok := contentTargets[e.Name]; ok {
			path, err := temps.WriteHTML(e.Value.(string))
			if err != nil {
				return nil, &chromepdf.FileError{Op: "write", Path: "temporary " + e.Name, Err: err}
			}
			argv = append(argv, "--"+target, path)
			continue
		}

		argv = append(argv, "--"+e.Name, commandValue(e.Value))
	}
	return argv, nil
}

// commandValue renders a value accepted by settings.add.
func commandValue(value any) string {
	switch v := value.(type) {
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ",")
	case Margin:
		return v.String()
	}
	return value.(string)
}
