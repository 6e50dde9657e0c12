package main

import (
	"context"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/porticus-lab/chromepdf"
	"github.com/porticus-lab/chromepdf/browserless"
	"github.com/porticus-lab/chromepdf/chrome"
	"github.com/porticus-lab/chromepdf/devtools"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [flags] <url|file|->",
		Short: "Render a web page, a local HTML file or HTML from stdin to PDF",
		Long: `Render a document to PDF.

A source containing "://" is loaded as a URL, "-" reads HTML from stdin and
anything else is read as a local HTML file.`,
		Args: cobra.ExactArgs(1),
		RunE: runRender,
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "write the PDF to this file instead of stdout")
	f.Bool("base64", false, "write the PDF base64-encoded")
	f.String("backend", "browserless", "renderer to use: browserless, chrome or devtools")

	f.String("api-key", "", "Browserless API key")
	f.String("endpoint", string(browserless.EndpointDefault), "Browserless endpoint")
	f.Int("rotate", 0, "rotate the output by this many degrees (browserless)")
	f.Bool("safe-mode", false, "enable Browserless safe mode")
	f.String("binary", chrome.DefaultBinary, "chrome-pdf executable (chrome)")
	f.String("chrome-path", "", "Chrome or Chromium executable (devtools)")
	f.Bool("auto-download", false, "download Chromium when none is installed (devtools)")
	f.Bool("sandbox", true, "run Chromium with its sandbox (chrome, devtools)")
	f.Duration("timeout", 0, "maximum render time")

	f.String("format", chromepdf.DefaultFormat, "paper format")
	f.String("margin", "", `margins as CSS shorthand, e.g. "1cm" or "1cm 2cm"`)
	f.Bool("landscape", false, "landscape orientation")
	f.Float64("scale", 1, "rendering scale")
	f.Bool("print-background", true, "print background graphics")
	f.Bool("display-header-footer", false, "show the header and footer")
	f.String("header", "", "header template HTML")
	f.String("footer", "", "footer template HTML")
	f.String("page-ranges", "", `pages to print, e.g. "1-5, 8"`)
	f.String("media", "", "CSS media type to emulate")
	f.String("wait-until", "", "navigation event to wait for")
	f.String("width", "", "paper width, a CSS length or pixels")
	f.String("height", "", "paper height, a CSS length or pixels")
	f.Bool("prefer-css-page-size", false, "prefer the page size declared in CSS")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	v, err := newViper(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(v)
	if err != nil {
		return err
	}
	defer logger.Sync()

	b, err := newBackend(v, logger)
	if err != nil {
		return err
	}
	defer b.close()

	applyRenderOptions(v, b.options)

	stream, err := renderSource(cmd.Context(), b.renderer, args[0], cmd.InOrStdin())
	if err != nil {
		return err
	}
	return writeOutput(v, cmd.OutOrStdout(), stream)
}

// backend is a configured renderer together with its rendering options.
type backend struct {
	renderer chromepdf.Renderer
	options  *chromepdf.RenderOptions
	close    func() error
}

func newBackend(v *viper.Viper, logger *zap.Logger) (*backend, error) {
	name := v.GetString("backend")
	logger.Debug("Selecting backend", zap.String("backend", name))

	switch name {
	case "browserless":
		client, err := browserless.NewClient(v.GetString("api-key"),
			browserless.WithEndpoint(browserless.Endpoint(v.GetString("endpoint"))),
			browserless.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		pdf := browserless.NewPDF(client)
		if v.IsSet("rotate") {
			pdf.SetRotation(v.GetInt("rotate"))
		}
		if d := v.GetDuration("timeout"); d > 0 {
			pdf.SetTimeout(int(d / time.Millisecond))
		}
		if v.IsSet("safe-mode") {
			pdf.SetSafeMode(v.GetBool("safe-mode"))
		}
		return &backend{renderer: pdf, options: &pdf.RenderOptions, close: func() error { return nil }}, nil

	case "chrome":
		c := chrome.New(chrome.WithBinary(v.GetString("binary")), chrome.WithLogger(logger))
		if v.IsSet("sandbox") {
			c.SetSandbox(v.GetBool("sandbox"))
		}
		return &backend{renderer: c, options: &c.RenderOptions, close: c.Close}, nil

	case "devtools":
		opts := []devtools.Option{devtools.WithLogger(logger)}
		if p := v.GetString("chrome-path"); p != "" {
			opts = append(opts, devtools.WithChromePath(p))
		}
		if v.GetBool("auto-download") {
			opts = append(opts, devtools.WithAutoDownload())
		}
		if v.IsSet("sandbox") && !v.GetBool("sandbox") {
			opts = append(opts, devtools.WithNoSandbox())
		}
		if v.IsSet("timeout") {
			opts = append(opts, devtools.WithTimeout(v.GetDuration("timeout")))
		}
		conv, err := devtools.NewConverter(opts...)
		if err != nil {
			return nil, err
		}
		return &backend{renderer: conv, options: &conv.RenderOptions, close: conv.Close}, nil
	}
	return nil, &chromepdf.ConfigError{Option: "backend", Value: name}
}

// applyRenderOptions copies every rendering flag the user set onto o.
// Flags left alone keep the library defaults.
func applyRenderOptions(v *viper.Viper, o *chromepdf.RenderOptions) {
	if v.IsSet("format") {
		o.SetFormat(v.GetString("format"))
	}
	if margin := strings.Fields(v.GetString("margin")); len(margin) > 0 {
		o.SetMargin(margin[0], margin[1:]...)
	}
	if v.IsSet("landscape") {
		o.SetLandscape(v.GetBool("landscape"))
	}
	if v.IsSet("scale") {
		o.SetScale(v.GetFloat64("scale"))
	}
	if v.IsSet("print-background") {
		o.SetPrintBackground(v.GetBool("print-background"))
	}
	if h := v.GetString("header"); h != "" {
		o.SetHeader(h)
	}
	if f := v.GetString("footer"); f != "" {
		o.SetFooter(f)
	}
	if v.IsSet("display-header-footer") {
		o.SetDisplayHeaderFooter(v.GetBool("display-header-footer"))
	}
	if r := v.GetString("page-ranges"); r != "" {
		o.SetPageRanges(r)
	}
	if m := v.GetString("media"); m != "" {
		o.SetMediaEmulation(m)
	}
	if w := v.GetString("wait-until"); w != "" {
		o.SetWaitUntil(w)
	}
	if w := v.GetString("width"); w != "" {
		o.SetWidth(parseDimension(w))
	}
	if h := v.GetString("height"); h != "" {
		o.SetHeight(parseDimension(h))
	}
	if v.IsSet("prefer-css-page-size") {
		o.SetPreferCSSPageSize(v.GetBool("prefer-css-page-size"))
	}
}

// parseDimension treats a bare number as pixels and anything else as a
// CSS length.
func parseDimension(s string) chromepdf.Dimension {
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return chromepdf.Pixels(n)
	}
	return chromepdf.Length(s)
}

func renderSource(ctx context.Context, r chromepdf.Renderer, src string, stdin io.Reader) (io.ReadCloser, error) {
	switch {
	case src == "-":
		html, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, "reading HTML from stdin")
		}
		return r.RenderContent(ctx, string(html))
	case strings.Contains(src, "://"):
		return r.RenderURL(ctx, src)
	default:
		return r.RenderFile(ctx, src)
	}
}

// writeOutput copies stream to the output file, or to stdout when none is
// set, and closes it. With --base64 the document is written encoded.
func writeOutput(v *viper.Viper, stdout io.Writer, stream io.ReadCloser) error {
	var src io.Reader = stream
	if v.GetBool("base64") {
		res, err := chromepdf.Collect(stream)
		if err != nil {
			return err
		}
		src = strings.NewReader(res.Base64())
	} else {
		defer stream.Close()
	}

	path := v.GetString("output")
	if path == "" {
		_, err := io.Copy(stdout, src)
		return errors.Wrap(err, "writing output")
	}

	f, err := os.Create(path)
	if err != nil {
		return &chromepdf.FileError{Op: "create", Path: path, Err: err}
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		return &chromepdf.FileError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &chromepdf.FileError{Op: "write", Path: path, Err: err}
	}
	return nil
}
