package options

// ResolvedMarker is a fully resolved marker. Width and Height stay nil when
// no layer sets them.
type ResolvedMarker struct {
	Symbol       string
	Radius       Length
	Width        *Length
	Height       *Length
	LineWidth    float64
	FillColor    string
	LineColor    string
	BorderRadius float64
}

// ResolvedLink is a fully resolved link style.
type ResolvedLink struct {
	Type        string
	LineWidth   float64
	Color       string
	Radius      float64
	CurveFactor float64
	DashStyle   string
}

// DefaultMarker is the bottom layer of marker resolution.
func DefaultMarker() Marker {
	return Marker{
		Symbol:    ptr(DefaultSymbol),
		Radius:    Px(DefaultRadius),
		LineWidth: ptr(0.0),
	}
}

// DefaultLink is the bottom layer of link resolution.
func DefaultLink() Link {
	return Link{
		Type:        ptr(DefaultLinkType),
		LineWidth:   ptr(DefaultLinkWidth),
		Color:       ptr(DefaultLinkColor),
		Radius:      ptr(DefaultLinkRadius),
		CurveFactor: ptr(DefaultCurveFactor),
	}
}

// Merge returns m with every absent field taken from lower.
func (m Marker) Merge(lower Marker) Marker {
	return Marker{
		Symbol:       or(m.Symbol, lower.Symbol),
		Radius:       or(m.Radius, lower.Radius),
		Width:        or(m.Width, lower.Width),
		Height:       or(m.Height, lower.Height),
		LineWidth:    or(m.LineWidth, lower.LineWidth),
		FillColor:    or(m.FillColor, lower.FillColor),
		LineColor:    or(m.LineColor, lower.LineColor),
		BorderRadius: or(m.BorderRadius, lower.BorderRadius),
	}
}

// Merge returns l with every absent field taken from lower.
func (l Link) Merge(lower Link) Link {
	return Link{
		Type:        or(l.Type, lower.Type),
		LineWidth:   or(l.LineWidth, lower.LineWidth),
		Color:       or(l.Color, lower.Color),
		Radius:      or(l.Radius, lower.Radius),
		CurveFactor: or(l.curveFactor(), lower.curveFactor()),
		DashStyle:   or(l.DashStyle, lower.DashStyle),
	}
}

func (l Link) curveFactor() *float64 { return or(l.CurveFactor, l.Offset) }

// ResolveMarker resolves layers in precedence order (highest first), then
// the defaults. The first layer that sets a field wins.
func ResolveMarker(layers ...Marker) ResolvedMarker {
	var m Marker
	for _, l := range layers {
		m = m.Merge(l)
	}
	m = m.Merge(DefaultMarker())
	return ResolvedMarker{
		Symbol:       *m.Symbol,
		Radius:       *m.Radius,
		Width:        m.Width,
		Height:       m.Height,
		LineWidth:    *m.LineWidth,
		FillColor:    value(m.FillColor),
		LineColor:    value(m.LineColor),
		BorderRadius: value(m.BorderRadius),
	}
}

// ResolveLink resolves layers in precedence order (highest first), then the
// defaults.
func ResolveLink(layers ...Link) ResolvedLink {
	var l Link
	for _, layer := range layers {
		l = l.Merge(layer)
	}
	l = l.Merge(DefaultLink())
	return ResolvedLink{
		Type:        *l.Type,
		LineWidth:   *l.LineWidth,
		Color:       *l.Color,
		Radius:      *l.Radius,
		CurveFactor: *l.CurveFactor,
		DashStyle:   value(l.DashStyle),
	}
}

// FirstBool returns the first non-nil flag, or false.
func FirstBool(flags ...*bool) bool {
	for _, f := range flags {
		if f != nil {
			return *f
		}
	}
	return false
}

func or[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}

func value[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

func ptr[T any](v T) *T { return &v }

// String returns a pointer to s, for building option literals.
func String(s string) *string { return &s }

// Float returns a pointer to f, for building option literals.
func Float(f float64) *float64 { return &f }

// Bool returns a pointer to b, for building option literals.
func Bool(b bool) *bool { return &b }
