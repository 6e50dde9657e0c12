package optionbag

import (
	"fmt"
	"strings"

	"github.com/porticus-lab/chromepdf"
)

// snappyRenames maps Snappy/wkhtmltopdf option names onto native ones.
// An empty target drops the option.
var snappyRenames = map[string]string{
	"footer-html":         "footerTemplate",
	"header-html":         "headerTemplate",
	"load-error-handling": "",
}

var snappyOrientation = map[string]bool{
	"landscape": true,
	"portrait":  false,
	"Landscape": true,
	"Portrait":  false,
}

// addSnappy records a Snappy-style option. It reports false when name is
// not a Snappy option, leaving it to the native set.
func (s *settings) addSnappy(name string, value any) (bool, error) {
	if target, ok := snappyRenames[name]; ok {
		if target == "" {
			return true, nil
		}
		return true, s.add(target, value)
	}

	if side, ok := strings.CutPrefix(name, "margin-"); ok {
		m := s.margin()
		p := m.side(side)
		if p == nil {
			return false, nil
		}
		v, ok := value.(string)
		if !ok {
			return true, &chromepdf.ConfigError{Option: name, Reason: fmt.Sprintf("unsupported value type %T", value)}
		}
		*p = v
		s.put("margin", m)
		return true, nil
	}

	switch name {
	case "orientation":
		if v, ok := value.(string); ok {
			if landscape, ok := snappyOrientation[v]; ok {
				s.put("landscape", landscape)
			}
		}
		return true, nil
	case "viewport-size":
		return true, &chromepdf.ConfigError{
			Option: name,
			Reason: `remove the option or rewrite it to match the format for "viewport"`,
		}
	}
	return false, nil
}
