package sink

import (
	"strconv"
	"strings"

	"github.com/erfan1375er/highcharts/pkg/options"
)

// dashArray converts a dash style into an SVG stroke-dasharray value.
// Named styles are scaled by width; numeric lists are used as given.
// Solid, empty and invalid styles yield "".
func dashArray(style string, width float64) string {
	pattern, named, err := options.DashPattern(style)
	if err != nil || len(pattern) == 0 {
		return ""
	}
	if !named || width <= 0 {
		width = 1
	}
	parts := make([]string, len(pattern))
	for i, v := range pattern {
		parts[i] = strconv.FormatFloat(v*width, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}
