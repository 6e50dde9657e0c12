package chromepdf

// DefaultFormat is the paper format used until SetFormat is called.
const DefaultFormat = "A4"

// RenderOptions holds every user-configurable rendering parameter shared by
// the renderer backends. Optional parameters are unset until a setter is
// called; backends omit unset parameters from their wire format.
//
// Setters return the receiver so calls can be chained. RenderOptions is not
// safe for concurrent mutation.
type RenderOptions struct {
	format          string
	printBackground bool

	marginTop    Opt[string]
	marginRight  Opt[string]
	marginBottom Opt[string]
	marginLeft   Opt[string]

	waitUntil           Opt[string]
	pageRanges          Opt[string]
	emulateMedia        Opt[string]
	scale               Opt[float64]
	displayHeaderFooter Opt[bool]
	header              Opt[string]
	footer              Opt[string]
	preferCSSPageSize   Opt[bool]
	landscape           Opt[bool]
	width               Opt[Dimension]
	height              Opt[Dimension]
}

// NewRenderOptions returns RenderOptions with A4 paper and background
// printing enabled, and everything else unset.
func NewRenderOptions() RenderOptions {
	return RenderOptions{
		format:          DefaultFormat,
		printBackground: true,
	}
}

// Clone returns an independent copy of o.
func (o *RenderOptions) Clone() RenderOptions {
	return *o
}

// SetFormat sets the paper format keyword, e.g. "A4" or "Letter".
func (o *RenderOptions) SetFormat(format string) *RenderOptions {
	o.format = format
	return o
}

// SetMargin sets the page margins using CSS shorthand:
//
//	1 value:  all sides
//	2 values: top+bottom, right+left
//	3 values: top, right+left, bottom
//	4 values: top, right, bottom, left
//
// Values past the fourth are ignored.
func (o *RenderOptions) SetMargin(top string, rest ...string) *RenderOptions {
	switch len(rest) {
	case 0:
		return o.SetMarginSides(Some(top), Some(top), Some(top), Some(top))
	case 1:
		return o.SetMarginSides(Some(top), Some(rest[0]), Some(top), Some(rest[0]))
	case 2:
		return o.SetMarginSides(Some(top), Some(rest[0]), Some(rest[1]), Some(rest[0]))
	default:
		return o.SetMarginSides(Some(top), Some(rest[0]), Some(rest[1]), Some(rest[2]))
	}
}

// SetMarginSides sets each side explicitly; unset sides are cleared.
func (o *RenderOptions) SetMarginSides(top, right, bottom, left Opt[string]) *RenderOptions {
	o.marginTop = top
	o.marginRight = right
	o.marginBottom = bottom
	o.marginLeft = left
	return o
}

// ClearMargin unsets all four margins.
func (o *RenderOptions) ClearMargin() *RenderOptions {
	return o.SetMarginSides(None[string](), None[string](), None[string](), None[string]())
}

func (o *RenderOptions) SetMarginTop(v string) *RenderOptions {
	o.marginTop = Some(v)
	return o
}

func (o *RenderOptions) SetMarginRight(v string) *RenderOptions {
	o.marginRight = Some(v)
	return o
}

func (o *RenderOptions) SetMarginBottom(v string) *RenderOptions {
	o.marginBottom = Some(v)
	return o
}

func (o *RenderOptions) SetMarginLeft(v string) *RenderOptions {
	o.marginLeft = Some(v)
	return o
}

// SetWaitUntil sets the page lifecycle event after which rendering starts,
// e.g. "load" or "networkidle0".
func (o *RenderOptions) SetWaitUntil(event string) *RenderOptions {
	o.waitUntil = Some(event)
	return o
}

func (o *RenderOptions) ClearWaitUntil() *RenderOptions {
	o.waitUntil = None[string]()
	return o
}

// SetPageRanges limits output to the given pages, e.g. "1,2,5-7".
func (o *RenderOptions) SetPageRanges(ranges string) *RenderOptions {
	o.pageRanges = Some(ranges)
	return o
}

func (o *RenderOptions) ClearPageRanges() *RenderOptions {
	o.pageRanges = None[string]()
	return o
}

// SetPrintBackground sets whether background graphics are rendered.
func (o *RenderOptions) SetPrintBackground(enabled bool) *RenderOptions {
	o.printBackground = enabled
	return o
}

// SetMediaEmulation sets the CSS media type to emulate, e.g. "print" or "screen".
func (o *RenderOptions) SetMediaEmulation(media string) *RenderOptions {
	o.emulateMedia = Some(media)
	return o
}

func (o *RenderOptions) ClearMediaEmulation() *RenderOptions {
	o.emulateMedia = None[string]()
	return o
}

func (o *RenderOptions) SetScale(scale float64) *RenderOptions {
	o.scale = Some(scale)
	return o
}

func (o *RenderOptions) ClearScale() *RenderOptions {
	o.scale = None[float64]()
	return o
}

// SetDisplayHeaderFooter sets whether header and footer are displayed. The
// value holds until the next header or footer mutation recomputes it.
func (o *RenderOptions) SetDisplayHeaderFooter(display bool) *RenderOptions {
	o.displayHeaderFooter = Some(display)
	return o
}

func (o *RenderOptions) ClearDisplayHeaderFooter() *RenderOptions {
	o.displayHeaderFooter = None[bool]()
	return o
}

// SetHeader sets the header HTML fragment and enables header/footer display.
func (o *RenderOptions) SetHeader(html string) *RenderOptions {
	o.header = Some(html)
	o.syncDisplayHeaderFooter()
	return o
}

// ClearHeader removes the header. Header/footer display stays enabled only
// while a footer is set.
func (o *RenderOptions) ClearHeader() *RenderOptions {
	o.header = None[string]()
	o.syncDisplayHeaderFooter()
	return o
}

// SetFooter sets the footer HTML fragment and enables header/footer display.
func (o *RenderOptions) SetFooter(html string) *RenderOptions {
	o.footer = Some(html)
	o.syncDisplayHeaderFooter()
	return o
}

// ClearFooter removes the footer. Header/footer display stays enabled only
// while a header is set.
func (o *RenderOptions) ClearFooter() *RenderOptions {
	o.footer = None[string]()
	o.syncDisplayHeaderFooter()
	return o
}

func (o *RenderOptions) syncDisplayHeaderFooter() {
	o.displayHeaderFooter = Some(o.header.IsSet() || o.footer.IsSet())
}

// SetWidth sets the paper width. Whether it wins over the format is up to
// the backend.
func (o *RenderOptions) SetWidth(d Dimension) *RenderOptions {
	o.width = Some(d)
	return o
}

func (o *RenderOptions) ClearWidth() *RenderOptions {
	o.width = None[Dimension]()
	return o
}

// SetHeight sets the paper height. Whether it wins over the format is up to
// the backend.
func (o *RenderOptions) SetHeight(d Dimension) *RenderOptions {
	o.height = Some(d)
	return o
}

func (o *RenderOptions) ClearHeight() *RenderOptions {
	o.height = None[Dimension]()
	return o
}

// SetPreferCSSPageSize sets whether CSS @page declarations take priority
// over width, height and format.
func (o *RenderOptions) SetPreferCSSPageSize(prefer bool) *RenderOptions {
	o.preferCSSPageSize = Some(prefer)
	return o
}

func (o *RenderOptions) ClearPreferCSSPageSize() *RenderOptions {
	o.preferCSSPageSize = None[bool]()
	return o
}

func (o *RenderOptions) SetLandscape(landscape bool) *RenderOptions {
	o.landscape = Some(landscape)
	return o
}

func (o *RenderOptions) ClearLandscape() *RenderOptions {
	o.landscape = None[bool]()
	return o
}

func (o *RenderOptions) Format() string                 { return o.format }
func (o *RenderOptions) PrintBackground() bool          { return o.printBackground }
func (o *RenderOptions) MarginTop() Opt[string]         { return o.marginTop }
func (o *RenderOptions) MarginRight() Opt[string]       { return o.marginRight }
func (o *RenderOptions) MarginBottom() Opt[string]      { return o.marginBottom }
func (o *RenderOptions) MarginLeft() Opt[string]        { return o.marginLeft }
func (o *RenderOptions) WaitUntil() Opt[string]         { return o.waitUntil }
func (o *RenderOptions) PageRanges() Opt[string]        { return o.pageRanges }
func (o *RenderOptions) MediaEmulation() Opt[string]    { return o.emulateMedia }
func (o *RenderOptions) Scale() Opt[float64]            { return o.scale }
func (o *RenderOptions) DisplayHeaderFooter() Opt[bool] { return o.displayHeaderFooter }
func (o *RenderOptions) Header() Opt[string]            { return o.header }
func (o *RenderOptions) Footer() Opt[string]            { return o.footer }
func (o *RenderOptions) PreferCSSPageSize() Opt[bool]   { return o.preferCSSPageSize }
func (o *RenderOptions) Landscape() Opt[bool]           { return o.landscape }
func (o *RenderOptions) Width() Opt[Dimension]          { return o.width }
func (o *RenderOptions) Height() Opt[Dimension]         { return o.height }

// HasMargin reports whether any margin side is set.
func (o *RenderOptions) HasMargin() bool {
	return o.marginTop.IsSet() || o.marginRight.IsSet() ||
		o.marginBottom.IsSet() || o.marginLeft.IsSet()
}
