package options

// Link types.
const (
	LinkStraight = "straight"
	LinkCurved   = "curved"
	LinkDefault  = "default"
)

// Default values applied beneath every other option layer.
const (
	DefaultLayout      = "Walker"
	DefaultSymbol      = "circle"
	DefaultRadius      = 10.0
	DefaultLinkType    = LinkCurved
	DefaultLinkWidth   = 1.0
	DefaultLinkColor   = "#666666"
	DefaultLinkRadius  = 10.0
	DefaultCurveFactor = 0.5
	DefaultColor       = "#2caffe"
)

// DefaultColors is the palette used by colorByPoint levels.
var DefaultColors = []string{
	"#2caffe", "#544fc5", "#00e272", "#fe6a35", "#6b8abc",
	"#d568fb", "#2ee0ca", "#fa4b42", "#feb56a", "#91e8e1",
}

// Marker is a partial set of node marker options. Nil fields are absent and
// fall through to the next layer during resolution.
type Marker struct {
	Symbol       *string  `json:"symbol,omitempty" toml:"symbol" yaml:"symbol,omitempty"`
	Radius       *Length  `json:"radius,omitempty" toml:"radius" yaml:"radius,omitempty"`
	Width        *Length  `json:"width,omitempty" toml:"width" yaml:"width,omitempty"`
	Height       *Length  `json:"height,omitempty" toml:"height" yaml:"height,omitempty"`
	LineWidth    *float64 `json:"lineWidth,omitempty" toml:"lineWidth" yaml:"lineWidth,omitempty"`
	FillColor    *string  `json:"fillColor,omitempty" toml:"fillColor" yaml:"fillColor,omitempty"`
	LineColor    *string  `json:"lineColor,omitempty" toml:"lineColor" yaml:"lineColor,omitempty"`
	BorderRadius *float64 `json:"borderRadius,omitempty" toml:"borderRadius" yaml:"borderRadius,omitempty"`
}

// Link is a partial set of connector options. Offset is accepted as an
// alias of CurveFactor.
type Link struct {
	Type        *string  `json:"type,omitempty" toml:"type" yaml:"type,omitempty"`
	LineWidth   *float64 `json:"lineWidth,omitempty" toml:"lineWidth" yaml:"lineWidth,omitempty"`
	Color       *string  `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
	Radius      *float64 `json:"radius,omitempty" toml:"radius" yaml:"radius,omitempty"`
	CurveFactor *float64 `json:"curveFactor,omitempty" toml:"curveFactor" yaml:"curveFactor,omitempty"`
	Offset      *float64 `json:"offset,omitempty" toml:"offset" yaml:"offset,omitempty"`
	DashStyle   *string  `json:"dashStyle,omitempty" toml:"dashStyle" yaml:"dashStyle,omitempty"`
}

// Level holds overrides for every node at one depth.
type Level struct {
	Level           int     `json:"level" toml:"level" yaml:"level"`
	LevelIsConstant *bool   `json:"levelIsConstant,omitempty" toml:"levelIsConstant" yaml:"levelIsConstant,omitempty"`
	ColorByPoint    *bool   `json:"colorByPoint,omitempty" toml:"colorByPoint" yaml:"colorByPoint,omitempty"`
	Color           *string `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
	Collapsed       *bool   `json:"collapsed,omitempty" toml:"collapsed" yaml:"collapsed,omitempty"`
	Marker          Marker  `json:"marker,omitzero" toml:"marker" yaml:"marker,omitempty"`
	Link            Link    `json:"link,omitzero" toml:"link" yaml:"link,omitempty"`
}

// Series holds the options of one treegraph.
type Series struct {
	Layout          string   `json:"layout,omitempty" toml:"layout" yaml:"layout,omitempty"`
	Reversed        bool     `json:"reversed,omitempty" toml:"reversed" yaml:"reversed,omitempty"`
	RootID          string   `json:"rootId,omitempty" toml:"rootId" yaml:"rootId,omitempty"`
	RootPolicy      string   `json:"rootPolicy,omitempty" toml:"rootPolicy" yaml:"rootPolicy,omitempty"`
	Color           string   `json:"color,omitempty" toml:"color" yaml:"color,omitempty"`
	Colors          []string `json:"colors,omitempty" toml:"colors" yaml:"colors,omitempty"`
	LevelIsConstant *bool    `json:"levelIsConstant,omitempty" toml:"levelIsConstant" yaml:"levelIsConstant,omitempty"`
	Marker          Marker   `json:"marker,omitzero" toml:"marker" yaml:"marker,omitempty"`
	Link            Link     `json:"link,omitzero" toml:"link" yaml:"link,omitempty"`
	Levels          []Level  `json:"levels,omitempty" toml:"levels" yaml:"levels,omitempty"`
}

// Defaults returns series options with every default applied.
func Defaults() Series {
	var s Series
	s.SetDefaults()
	return s
}

// SetDefaults fills unset top-level fields with their defaults. Marker and
// link fields stay partial; defaults for those are supplied at resolution.
func (s *Series) SetDefaults() {
	if s.Layout == "" {
		s.Layout = DefaultLayout
	}
	if s.Color == "" {
		s.Color = DefaultColor
	}
	if len(s.Colors) == 0 {
		s.Colors = append([]string(nil), DefaultColors...)
	}
}

// Palette returns the configured colors or the default palette.
func (s Series) Palette() []string {
	if len(s.Colors) > 0 {
		return s.Colors
	}
	return DefaultColors
}

// LevelFor returns the level overrides for a node. depth is the node's
// absolute depth in the input, level its depth below the rendered root.
// An entry with levelIsConstant (set on the entry, else on the series,
// default true) matches on depth, otherwise on level. Nil means no
// overrides exist.
func (s Series) LevelFor(depth, level int) *Level {
	seriesConstant := boolOr(s.LevelIsConstant, true)
	for i := range s.Levels {
		key := level
		if boolOr(s.Levels[i].LevelIsConstant, seriesConstant) {
			key = depth
		}
		if s.Levels[i].Level == key {
			return &s.Levels[i]
		}
	}
	return nil
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
