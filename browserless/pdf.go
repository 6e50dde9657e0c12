package browserless

import (
	"context"
	"io"
	"os"

	"github.com/porticus-lab/chromepdf"
)

const pdfPath = "/pdf"

// PDF renders documents through the Browserless /pdf API.
//
// Rendering options are set through the embedded [chromepdf.RenderOptions]
// and read afresh on every render call. A PDF is not safe for concurrent
// use; create one per goroutine.
type PDF struct {
	chromepdf.RenderOptions

	client   *Client
	rotate   chromepdf.Opt[int]
	timeout  chromepdf.Opt[int]
	safeMode chromepdf.Opt[bool]
}

var _ chromepdf.Renderer = (*PDF)(nil)

// NewPDF returns a PDF renderer sending requests through client.
func NewPDF(client *Client) *PDF {
	return &PDF{
		RenderOptions: chromepdf.NewRenderOptions(),
		client:        client,
	}
}

// SetRotation rotates the rendered document by degrees.
func (p *PDF) SetRotation(degrees int) *PDF {
	p.rotate = chromepdf.Some(degrees)
	return p
}

func (p *PDF) ClearRotation() *PDF {
	p.rotate = chromepdf.None[int]()
	return p
}

// SetTimeout sets how long, in milliseconds, the service may wait for the
// page to load. It does not bound the local request.
func (p *PDF) SetTimeout(milliseconds int) *PDF {
	p.timeout = chromepdf.Some(milliseconds)
	return p
}

func (p *PDF) ClearTimeout() *PDF {
	p.timeout = chromepdf.None[int]()
	return p
}

// SetSafeMode asks the service to render in safe mode. The flag is sent
// only once set, which older deployments expect.
func (p *PDF) SetSafeMode(safe bool) *PDF {
	p.safeMode = chromepdf.Some(safe)
	return p
}

func (p *PDF) Rotation() chromepdf.Opt[int]  { return p.rotate }
func (p *PDF) Timeout() chromepdf.Opt[int]   { return p.timeout }
func (p *PDF) SafeMode() chromepdf.Opt[bool] { return p.safeMode }

type margin struct {
	Top    chromepdf.Opt[string] `json:"top,omitzero"`
	Right  chromepdf.Opt[string] `json:"right,omitzero"`
	Bottom chromepdf.Opt[string] `json:"bottom,omitzero"`
	Left   chromepdf.Opt[string] `json:"left,omitzero"`
}

type pdfOptions struct {
	DisplayHeaderFooter chromepdf.Opt[bool]                `json:"displayHeaderFooter,omitzero"`
	FooterTemplate      chromepdf.Opt[string]              `json:"footerTemplate,omitzero"`
	Format              string                             `json:"format"`
	HeaderTemplate      chromepdf.Opt[string]              `json:"headerTemplate,omitzero"`
	Landscape           chromepdf.Opt[bool]                `json:"landscape,omitzero"`
	Margin              *margin                            `json:"margin,omitempty"`
	PageRanges          chromepdf.Opt[string]              `json:"pageRanges,omitzero"`
	PreferCSSPageSize   chromepdf.Opt[bool]                `json:"preferCSSPageSize,omitzero"`
	PrintBackground     bool                               `json:"printBackground"`
	Scale               chromepdf.Opt[float64]             `json:"scale,omitzero"`
	Width               chromepdf.Opt[chromepdf.Dimension] `json:"width,omitzero"`
	Height              chromepdf.Opt[chromepdf.Dimension] `json:"height,omitzero"`
}

type gotoOptions struct {
	WaitUntil chromepdf.Opt[string] `json:"waitUntil,omitzero"`
	Timeout   chromepdf.Opt[int]    `json:"timeout,omitzero"`
}

// Payload is the JSON envelope sent to the /pdf API.
type Payload struct {
	Options      pdfOptions            `json:"options"`
	SafeMode     chromepdf.Opt[bool]   `json:"safeMode,omitzero"`
	GotoOptions  *gotoOptions          `json:"gotoOptions,omitempty"`
	Rotate       chromepdf.Opt[int]    `json:"rotate,omitzero"`
	EmulateMedia chromepdf.Opt[string] `json:"emulateMedia,omitzero"`
	HTML         chromepdf.Opt[string] `json:"html,omitzero"`
	URL          chromepdf.Opt[string] `json:"url,omitzero"`
}

// Payload returns the envelope for the current options, without the html or
// url property. Unset options are left out entirely.
func (p *PDF) Payload() Payload {
	o := p.Clone()

	opts := pdfOptions{
		DisplayHeaderFooter: o.DisplayHeaderFooter(),
		FooterTemplate:      o.Footer(),
		Format:              o.Format(),
		HeaderTemplate:      o.Header(),
		Landscape:           o.Landscape(),
		PageRanges:          o.PageRanges(),
		PreferCSSPageSize:   o.PreferCSSPageSize(),
		PrintBackground:     o.PrintBackground(),
		Scale:               o.Scale(),
		Width:               o.Width(),
		Height:              o.Height(),
	}
	if o.HasMargin() {
		opts.Margin = &margin{
			Top:    o.MarginTop(),
			Right:  o.MarginRight(),
			Bottom: o.MarginBottom(),
			Left:   o.MarginLeft(),
		}
	}

	payload := Payload{
		Options:      opts,
		SafeMode:     p.safeMode,
		Rotate:       p.rotate,
		EmulateMedia: o.MediaEmulation(),
	}
	if o.WaitUntil().IsSet() || p.timeout.IsSet() {
		payload.GotoOptions = &gotoOptions{WaitUntil: o.WaitUntil(), Timeout: p.timeout}
	}
	return payload
}

// RenderContent renders an HTML string.
func (p *PDF) RenderContent(ctx context.Context, html string) (io.ReadCloser, error) {
	payload := p.Payload()
	payload.HTML = chromepdf.Some(html)
	return p.client.Post(ctx, pdfPath, payload)
}

// RenderURL renders the page at url.
func (p *PDF) RenderURL(ctx context.Context, url string) (io.ReadCloser, error) {
	payload := p.Payload()
	payload.URL = chromepdf.Some(url)
	return p.client.Post(ctx, pdfPath, payload)
}

// RenderFile reads the local file at path and renders its contents.
func (p *PDF) RenderFile(ctx context.Context, path string) (io.ReadCloser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &chromepdf.FileError{Op: "read", Path: path, Err: err}
	}
	return p.RenderContent(ctx, string(data))
}
