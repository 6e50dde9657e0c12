package optionbag

import (
	"fmt"
	"slices"
	"strings"

	"github.com/porticus-lab/chromepdf"
)

// knownOptions is the closed set of names the chrome-pdf tool accepts.
var knownOptions = []string{
	"waitUntil",
	"emulateMedia",
	"content",
	"page",
	"path",
	"viewport",
	"landscape",
	"scale",
	"displayHeaderFooter",
	"headerContent",
	"footerContent",
	"headerTemplate",
	"footerTemplate",
	"printBackground",
	"pageRanges",
	"format",
	"width",
	"height",
	"margin",
	"preferCSSPageSize",
	"file",
	"sandbox",
}

// Setting is a named option value. Values are strings, booleans or string
// slices; margin also takes a CSS shorthand string or a side map.
type Setting struct {
	Name  string
	Value any
}

// Set returns a Setting, for passing per-call overrides.
func Set(name string, value any) Setting {
	return Setting{Name: name, Value: value}
}

// Margin holds the four page margins.
type Margin struct {
	Top, Right, Bottom, Left string
}

// String renders m as the comma-separated list the tool expects.
func (m Margin) String() string {
	return strings.Join([]string{m.Top, m.Right, m.Bottom, m.Left}, ",")
}

func (m *Margin) side(name string) *string {
	switch name {
	case "top":
		return &m.Top
	case "right":
		return &m.Right
	case "bottom":
		return &m.Bottom
	case "left":
		return &m.Left
	}
	return nil
}

// parseMargin applies CSS shorthand of one to four space-separated values.
func parseMargin(value string) (Margin, error) {
	v := strings.Split(value, " ")
	switch len(v) {
	case 1:
		return Margin{value, value, value, value}, nil
	case 2:
		return Margin{v[0], v[1], v[0], v[1]}, nil
	case 3:
		return Margin{v[0], v[1], v[2], v[1]}, nil
	case 4:
		return Margin{v[0], v[1], v[2], v[3]}, nil
	}
	return Margin{}, &chromepdf.ConfigError{Option: "margin", Value: value}
}

// settings is an insertion-ordered option map. Replacing a value keeps
// its original position.
type settings []Setting

func defaultSettings() settings {
	return settings{
		{Name: "format", Value: chromepdf.DefaultFormat},
		{Name: "margin", Value: Margin{"0", "0", "0", "0"}},
		{Name: "printBackground", Value: true},
	}
}

func (s settings) index(name string) int {
	return slices.IndexFunc(s, func(e Setting) bool { return e.Name == name })
}

func (s settings) get(name string) (any, bool) {
	if i := s.index(name); i >= 0 {
		return s[i].Value, true
	}
	return nil, false
}

func (s *settings) put(name string, value any) {
	if i := s.index(name); i >= 0 {
		(*s)[i].Value = value
		return
	}
	*s = append(*s, Setting{Name: name, Value: value})
}

func (s *settings) remove(name string) {
	if i := s.index(name); i >= 0 {
		*s = slices.Delete(*s, i, i+1)
	}
}

func (s *settings) margin() Margin {
	m, _ := s.get("margin")
	margin, _ := m.(Margin)
	return margin
}

// add validates and records one option.
func (s *settings) add(name string, value any) error {
	if !slices.Contains(knownOptions, name) {
		return &chromepdf.ConfigError{Option: name}
	}
	if name != "margin" {
		if !supported(name, value) {
			return &chromepdf.ConfigError{Option: name, Reason: fmt.Sprintf("unsupported value type %T", value)}
		}
		s.put(name, value)
		return nil
	}

	switch v := value.(type) {
	case string:
		m, err := parseMargin(v)
		if err != nil {
			return err
		}
		s.put(name, m)
	case map[string]string:
		sides := make([]string, 0, len(v))
		for side := range v {
			sides = append(sides, side)
		}
		slices.Sort(sides)

		m := s.margin()
		for _, side := range sides {
			p := m.side(side)
			if p == nil {
				return &chromepdf.ConfigError{Option: "margin-" + side}
			}
			*p = v[side]
		}
		s.put(name, m)
	case Margin:
		s.put(name, v)
	default:
		return &chromepdf.ConfigError{Option: name, Reason: fmt.Sprintf("unsupported value type %T", value)}
	}
	return nil
}

// supported reports whether value can be passed for name on the command
// line. Inline markup must be a string.
func supported(name string, value any) bool {
	switch value.(type) {
	case string:
		return true
	case bool, []string:
		_, content := contentTargets[name]
		return !content
	}
	return false
}
