package options

import (
	"strconv"
	"strings"

	"github.com/erfan1375er/highcharts/pkg/errors"
)

// DashPatterns are the named dash styles in units of the stroke width.
var DashPatterns = map[string][]float64{
	"shortdash":       {3, 1},
	"shortdot":        {1, 1},
	"shortdashdot":    {3, 1, 1, 1},
	"shortdashdotdot": {3, 1, 1, 1, 1, 1},
	"dot":             {1, 3},
	"dash":            {4, 3},
	"longdash":        {8, 3},
	"dashdot":         {4, 3, 1, 3},
	"longdashdot":     {8, 3, 1, 3},
	"longdashdotdot":  {8, 3, 1, 3, 1, 3},
}

// DashPattern resolves a dash style to a pattern in units of the stroke
// width. Named styles are case-insensitive. A list of non-negative numbers
// separated by commas or spaces is an explicit dash array in pixels and is
// reported with named=false. Empty and "solid" return a nil pattern.
func DashPattern(style string) (pattern []float64, named bool, err error) {
	key := strings.ToLower(strings.TrimSpace(style))
	if key == "" || key == "solid" {
		return nil, true, nil
	}
	if p, ok := DashPatterns[key]; ok {
		return p, true, nil
	}
	fields := strings.FieldsFunc(key, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, false, errors.New(errors.ErrCodeInvalidOption, "unknown dash style %q", style)
	}
	pattern = make([]float64, len(fields))
	for i, f := range fields {
		v, perr := strconv.ParseFloat(f, 64)
		if perr != nil || v < 0 {
			return nil, false, errors.New(errors.ErrCodeInvalidOption,
				"unknown dash style %q (use solid, a named style or a list of numbers)", style)
		}
		pattern[i] = v
	}
	return pattern, false, nil
}

// ValidateDashStyle checks a link dash style.
func ValidateDashStyle(style string) error {
	_, _, err := DashPattern(style)
	return err
}
