package chrome

import (
	"github.com/porticus-lab/chromepdf"
)

// flagSet accumulates command-line arguments in order.
type flagSet []string

// toggle emits --name, --no-name or nothing for a tri-state option.
func (f *flagSet) toggle(name string, v chromepdf.Opt[bool]) {
	on, ok := v.Get()
	switch {
	case !ok:
	case on:
		*f = append(*f, "--"+name)
	default:
		*f = append(*f, "--no-"+name)
	}
}

// value emits --name followed by value, unless value is empty.
func (f *flagSet) value(name, value string) {
	if value == "" {
		return
	}
	*f = append(*f, "--"+name, value)
}

// flags returns the flag vector for the current options, in the order the
// tool documents them. Header and footer templates are written to temporary
// files tracked for the calling render.
func (c *Chrome) flags() ([]string, error) {
	o := c.Clone()
	f := flagSet{"--format", o.Format()}

	f.value("margin", c.MarginString().OrElse(""))
	f.value("emulateMedia", o.MediaEmulation().OrElse(""))
	f.toggle("sandbox", c.sandbox)
	f.toggle("landscape", o.Landscape())
	if scale := o.Scale().OrElse(0); scale != 0 {
		f.value("scale", chromepdf.FormatNumber(scale))
	}
	f.toggle("displayHeaderFooter", o.DisplayHeaderFooter())
	if header := o.Header().OrElse(""); header != "" {
		path, err := c.temps.WriteHTML(header)
		if err != nil {
			return nil, err
		}
		f.value("headerTemplate", path)
	}
	if footer := o.Footer().OrElse(""); footer != "" {
		path, err := c.temps.WriteHTML(footer)
		if err != nil {
			return nil, err
		}
		f.value("footerTemplate", path)
	}
	f.toggle("printBackground", chromepdf.Some(o.PrintBackground()))
	f.value("pageRanges", o.PageRanges().OrElse(""))
	if w, ok := o.Width().Get(); ok {
		f.value("width", w.String())
	}
	if h, ok := o.Height().Get(); ok {
		f.value("height", h.String())
	}
	f.toggle("preferCSSPageSize", o.PreferCSSPageSize())
	f.value("waitUntil", o.WaitUntil().OrElse(""))

	return f, nil
}
