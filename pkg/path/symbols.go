package path

import (
	"math"
	"slices"
	"strings"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Symbol names understood by [Symbol].
const (
	SymbolCircle       = "circle"
	SymbolSquare       = "square"
	SymbolRect         = "rect"
	SymbolDiamond      = "diamond"
	SymbolTriangle     = "triangle"
	SymbolTriangleDown = "triangle-down"
)

var symbols = map[string]func(x, y, w, h, r float64) Path{
	SymbolCircle:       circle,
	SymbolSquare:       rect,
	SymbolRect:         rect,
	SymbolDiamond:      diamond,
	SymbolTriangle:     triangle,
	SymbolTriangleDown: triangleDown,
}

// Symbols returns the supported symbol names, sorted.
func Symbols() []string {
	names := make([]string, 0, len(symbols))
	for k := range symbols {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}

// IsSymbol reports whether name is a built-in symbol.
func IsSymbol(name string) bool {
	_, ok := symbols[name]
	return ok
}

// ImageURL extracts the address from a "url(...)" symbol.
func ImageURL(symbol string) (string, bool) {
	if !strings.HasPrefix(symbol, "url(") || !strings.HasSuffix(symbol, ")") {
		return "", false
	}
	return symbol[4 : len(symbol)-1], true
}

// Symbol returns the outline of the named symbol inside the box (x, y, w, h).
// r is the corner radius used by square and rect. Unknown names report
// ok=false.
func Symbol(name string, x, y, w, h, r float64) (Path, bool) {
	fn, ok := symbols[name]
	if !ok {
		return nil, false
	}
	return fn(x, y, w, h, r), true
}

func circle(x, y, w, h, _ float64) Path {
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	ox, oy := rx*kappa, ry*kappa
	return Path{
		Move(cx, y),
		Cubic(cx+ox, y, x+w, cy-oy, x+w, cy),
		Cubic(x+w, cy+oy, cx+ox, y+h, cx, y+h),
		Cubic(cx-ox, y+h, x, cy+oy, x, cy),
		Cubic(x, cy-oy, cx-ox, y, cx, y),
		Close(),
	}
}

func rect(x, y, w, h, r float64) Path {
	r = math.Min(r, math.Min(w, h)/2)
	if r <= 0 {
		return Path{Move(x, y), Line(x+w, y), Line(x+w, y+h), Line(x, y+h), Close()}
	}
	right, bottom := x+w, y+h
	return Path{
		Move(x+r, y),
		Line(right-r, y),
		Cubic(right, y, right, y, right, y+r),
		Line(right, bottom-r),
		Cubic(right, bottom, right, bottom, right-r, bottom),
		Line(x+r, bottom),
		Cubic(x, bottom, x, bottom, x, bottom-r),
		Line(x, y+r),
		Cubic(x, y, x, y, x+r, y),
		Close(),
	}
}

func diamond(x, y, w, h, _ float64) Path {
	cx, cy := x+w/2, y+h/2
	return Path{Move(cx, y), Line(x+w, cy), Line(cx, y+h), Line(x, cy), Close()}
}

func triangle(x, y, w, h, _ float64) Path {
	return Path{Move(x+w/2, y), Line(x+w, y+h), Line(x, y+h), Close()}
}

func triangleDown(x, y, w, h, _ float64) Path {
	return Path{Move(x, y), Line(x+w, y), Line(x+w/2, y+h), Close()}
}
