package devtools

import (
	"strconv"
	"strings"

	"github.com/chromedp/cdproto/page"

	"github.com/porticus-lab/chromepdf"
)

// PageSize represents paper dimensions in centimeters.
type PageSize struct {
	Width  float64 // Width in centimeters.
	Height float64 // Height in centimeters.
}

// Standard paper sizes.
var (
	A0      = PageSize{Width: 84.1, Height: 118.9}
	A1      = PageSize{Width: 59.4, Height: 84.1}
	A2      = PageSize{Width: 42.0, Height: 59.4}
	A3      = PageSize{Width: 29.7, Height: 42.0}
	A4      = PageSize{Width: 21.0, Height: 29.7}
	A5      = PageSize{Width: 14.8, Height: 21.0}
	A6      = PageSize{Width: 10.5, Height: 14.8}
	Letter  = PageSize{Width: 21.59, Height: 27.94}
	Legal   = PageSize{Width: 21.59, Height: 35.56}
	Tabloid = PageSize{Width: 27.94, Height: 43.18}
	Ledger  = PageSize{Width: 43.18, Height: 27.94}
)

var paperSizes = map[string]PageSize{
	"a0":      A0,
	"a1":      A1,
	"a2":      A2,
	"a3":      A3,
	"a4":      A4,
	"a5":      A5,
	"a6":      A6,
	"letter":  Letter,
	"legal":   Legal,
	"tabloid": Tabloid,
	"ledger":  Ledger,
}

// LookupPageSize returns the paper size for a format name such as "A4" or
// "letter". Names are case-insensitive.
func LookupPageSize(format string) (PageSize, bool) {
	s, ok := paperSizes[strings.ToLower(format)]
	return s, ok
}

// cmToInches converts centimeters to inches.
func cmToInches(cm float64) float64 {
	return cm / 2.54
}

// inchesPer maps CSS length units to their size in inches.
var inchesPer = map[string]float64{
	"px": 1.0 / 96,
	"in": 1,
	"cm": 1 / 2.54,
	"mm": 1 / 25.4,
	"pt": 1.0 / 72,
}

// parseInches converts a CSS length to inches. A bare number is taken as
// pixels and the empty string as zero.
func parseInches(option, length string) (float64, error) {
	s := strings.TrimSpace(strings.ToLower(length))
	if s == "" {
		return 0, nil
	}
	unit := "px"
	if len(s) > 2 {
		if _, ok := inchesPer[s[len(s)-2:]]; ok {
			unit = s[len(s)-2:]
			s = s[:len(s)-2]
		}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || n < 0 {
		return 0, &chromepdf.ConfigError{Option: option, Value: length}
	}
	return n * inchesPer[unit], nil
}

func dimensionInches(option string, d chromepdf.Opt[chromepdf.Dimension]) (float64, bool, error) {
	v, ok := d.Get()
	if !ok {
		return 0, false, nil
	}
	in, err := parseInches(option, v.String())
	return in, true, err
}

// printParams maps rendering options onto a Page.printToPDF request. An
// explicit width or height overrides the corresponding side of the format.
func printParams(o *chromepdf.RenderOptions) (*page.PrintToPDFParams, error) {
	size, ok := LookupPageSize(o.Format())
	if !ok {
		return nil, &chromepdf.ConfigError{Option: "format", Value: o.Format()}
	}
	width, height := cmToInches(size.Width), cmToInches(size.Height)

	if w, ok, err := dimensionInches("width", o.Width()); err != nil {
		return nil, err
	} else if ok {
		width = w
	}
	if h, ok, err := dimensionInches("height", o.Height()); err != nil {
		return nil, err
	} else if ok {
		height = h
	}

	var margins [4]float64
	sides := []struct {
		name string
		v    chromepdf.Opt[string]
	}{
		{"marginTop", o.MarginTop()},
		{"marginRight", o.MarginRight()},
		{"marginBottom", o.MarginBottom()},
		{"marginLeft", o.MarginLeft()},
	}
	for i, side := range sides {
		in, err := parseInches(side.name, side.v.OrElse(""))
		if err != nil {
			return nil, err
		}
		margins[i] = in
	}

	params := page.PrintToPDF().
		WithPaperWidth(width).
		WithPaperHeight(height).
		WithMarginTop(margins[0]).
		WithMarginRight(margins[1]).
		WithMarginBottom(margins[2]).
		WithMarginLeft(margins[3]).
		WithPrintBackground(o.PrintBackground()).
		WithLandscape(o.Landscape().OrElse(false)).
		WithPreferCSSPageSize(o.PreferCSSPageSize().OrElse(false)).
		WithDisplayHeaderFooter(o.DisplayHeaderFooter().OrElse(false))

	if scale := o.Scale().OrElse(0); scale != 0 {
		params = params.WithScale(scale)
	}
	if ranges := o.PageRanges().OrElse(""); ranges != "" {
		params = params.WithPageRanges(ranges)
	}
	if header := o.Header().OrElse(""); header != "" {
		params = params.WithHeaderTemplate(header)
	}
	if footer := o.Footer().OrElse(""); footer != "" {
		params = params.WithFooterTemplate(footer)
	}
	return params, nil
}
