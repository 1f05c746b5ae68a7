package options

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/erfan1375er/highcharts/pkg/errors"
)

func TestResolveMarker(t *testing.T) {
	tests := []struct {
		name   string
		layers []Marker
		check  func(t *testing.T, m ResolvedMarker)
	}{
		{
			name: "defaults only",
			check: func(t *testing.T, m ResolvedMarker) {
				if m.Symbol != "circle" || m.Radius.Value != 10 || m.LineWidth != 0 {
					t.Errorf("defaults = %+v", m)
				}
				if m.Width != nil || m.Height != nil {
					t.Errorf("width/height should stay unset, got %v %v", m.Width, m.Height)
				}
			},
		},
		{
			name: "point beats level beats series",
			layers: []Marker{
				{Symbol: String("square")},
				{Symbol: String("diamond"), Radius: Px(4)},
				{Symbol: String("triangle"), Radius: Px(8), LineWidth: Float(2)},
			},
			check: func(t *testing.T, m ResolvedMarker) {
				if m.Symbol != "square" {
					t.Errorf("Symbol = %q, want square", m.Symbol)
				}
				if m.Radius.Value != 4 {
					t.Errorf("Radius = %v, want 4", m.Radius)
				}
				if m.LineWidth != 2 {
					t.Errorf("LineWidth = %v, want 2", m.LineWidth)
				}
			},
		},
		{
			name:   "explicit zero is not absent",
			layers: []Marker{{Radius: Px(0)}},
			check: func(t *testing.T, m ResolvedMarker) {
				if m.Radius.Value != 0 {
					t.Errorf("Radius = %v, want 0", m.Radius)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, ResolveMarker(tt.layers...))
		})
	}
}

func TestResolveLink(t *testing.T) {
	l := ResolveLink()
	if l.Type != LinkCurved || l.LineWidth != 1 || l.Color != "#666666" || l.Radius != 10 || l.CurveFactor != 0.5 {
		t.Errorf("defaults = %+v", l)
	}

	l = ResolveLink(Link{Offset: Float(0.2)}, Link{CurveFactor: Float(0.9), Type: String(LinkStraight)})
	if l.CurveFactor != 0.2 {
		t.Errorf("CurveFactor = %v, want offset alias 0.2", l.CurveFactor)
	}
	if l.Type != LinkStraight {
		t.Errorf("Type = %q, want straight", l.Type)
	}
}

func TestLevelFor(t *testing.T) {
	s := Series{Levels: []Level{
		{Level: 0, Color: String("#000")},
		{Level: 2, Color: String("#222")},
	}}

	tests := []struct {
		name         string
		constant     *bool
		depth, level int
		want         string
	}{
		{"constant uses depth", nil, 2, 0, "#222"},
		{"relative uses level", Bool(false), 2, 0, "#000"},
		{"no entry", nil, 1, 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.LevelIsConstant = tt.constant
			got := s.LevelFor(tt.depth, tt.level)
			if tt.want == "" {
				if got != nil {
					t.Errorf("LevelFor = %+v, want nil", got)
				}
				return
			}
			if got == nil || *got.Color != tt.want {
				t.Errorf("LevelFor = %+v, want color %s", got, tt.want)
			}
		})
	}
}

func TestLength(t *testing.T) {
	tests := []struct {
		input string
		want  Length
		span  float64
		px    float64
	}{
		{`10`, Length{Value: 10}, 200, 10},
		{`"25%"`, Length{Value: 25, Percent: true}, 200, 50},
		{`"7.5"`, Length{Value: 7.5}, 200, 7.5},
	}

	for _, tt := range tests {
		var l Length
		if err := json.Unmarshal([]byte(tt.input), &l); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tt.input, err)
		}
		if l != tt.want {
			t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.input, l, tt.want)
		}
		if got := l.Of(tt.span); got != tt.px {
			t.Errorf("Of(%v) = %v, want %v", tt.span, got, tt.px)
		}
	}

	var l Length
	if err := json.Unmarshal([]byte(`"wide"`), &l); err == nil {
		t.Error("Unmarshal(wide) succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		series  Series
		wantErr bool
	}{
		{"defaults", Defaults(), false},
		{"image symbol", Series{Marker: Marker{Symbol: String("url(https://x/a.png)")}}, false},
		{"bad link type", Series{Link: Link{Type: String("zigzag")}}, true},
		{"curve factor too big", Series{Link: Link{CurveFactor: Float(1.5)}}, true},
		{"negative offset", Series{Link: Link{Offset: Float(-0.1)}}, true},
		{"unknown symbol", Series{Marker: Marker{Symbol: String("hexagon")}}, true},
		{"unsafe image", Series{Marker: Marker{Symbol: String("url(javascript:x)")}}, true},
		{"bad root policy", Series{RootPolicy: "random"}, true},
		{"duplicate level", Series{Levels: []Level{{Level: 1}, {Level: 1}}}, true},
		{"bad level link", Series{Levels: []Level{{Level: 1, Link: Link{Type: String("x")}}}}, true},
		{"bad palette", Series{Colors: []string{"#12"}}, true},
		{"named dash", Series{Link: Link{DashStyle: String("LongDashDot")}}, false},
		{"numeric dash", Series{Link: Link{DashStyle: String("5, 2.5")}}, false},
		{"unknown dash", Series{Link: Link{DashStyle: String("wavy")}}, true},
		{"quoted dash", Series{Link: Link{DashStyle: String(`x" onload="alert(1)`)}}, true},
		{"negative dash", Series{Link: Link{DashStyle: String("4,-1")}}, true},
		{"bad level dash", Series{Levels: []Level{{Level: 2, Link: Link{DashStyle: String("zz")}}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.series.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidOption) {
				t.Errorf("code = %v, want INVALID_OPTION", errors.GetCode(err))
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		format string
		input  string
	}{
		{FormatJSON, `{"layout":"Walker","reversed":true,"marker":{"radius":"5%"},"link":{"type":"default","radius":4},"levels":[{"level":1,"collapsed":true}]}`},
		{FormatTOML, "layout = \"Walker\"\nreversed = true\n[marker]\nradius = \"5%\"\n[link]\ntype = \"default\"\nradius = 4.0\n[[levels]]\nlevel = 1\ncollapsed = true\n"},
		{FormatYAML, "layout: Walker\nreversed: true\nmarker:\n  radius: 5%\nlink:\n  type: default\n  radius: 4\nlevels:\n  - level: 1\n    collapsed: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			s, err := Decode(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if !s.Reversed || s.Layout != "Walker" {
				t.Errorf("series = %+v", s)
			}
			if s.Marker.Radius == nil || *s.Marker.Radius != (Length{Value: 5, Percent: true}) {
				t.Errorf("marker radius = %v, want 5%%", s.Marker.Radius)
			}
			if s.Link.Type == nil || *s.Link.Type != LinkDefault || *s.Link.Radius != 4 {
				t.Errorf("link = %+v", s.Link)
			}
			if len(s.Levels) != 1 || !FirstBool(s.Levels[0].Collapsed) {
				t.Errorf("levels = %+v", s.Levels)
			}
		})
	}
}

func TestDecodeInvalid(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"link":{"type":"zigzag"}}`), FormatJSON); !errors.Is(err, errors.ErrCodeInvalidOption) {
		t.Errorf("invalid link type error = %v, want INVALID_OPTION", err)
	}
	if _, err := Decode(strings.NewReader(`{"bogus":1}`), FormatJSON); err == nil {
		t.Error("unknown field accepted")
	}
	if _, err := Decode(strings.NewReader(``), "ini"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("unknown format error = %v, want INVALID_FORMAT", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(p, []byte("color = \"#ff0000\"\n[link]\ncurveFactor = 0.25\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := LoadFile(p)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if s.Color != "#ff0000" || *s.Link.CurveFactor != 0.25 {
		t.Errorf("series = %+v", s)
	}

	if _, err := LoadFile(filepath.Join(dir, "chart.ini")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("LoadFile(.ini) error = %v, want INVALID_FORMAT", err)
	}
}

func TestDashPattern(t *testing.T) {
	tests := []struct {
		style string
		want  []float64
		named bool
	}{
		{"", nil, true},
		{"solid", nil, true},
		{"ShortDot", []float64{1, 1}, true},
		{"5,5", []float64{5, 5}, false},
		{" 3 1.5 ", []float64{3, 1.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			got, named, err := DashPattern(tt.style)
			if err != nil {
				t.Fatalf("DashPattern(%q) error: %v", tt.style, err)
			}
			if !slices.Equal(got, tt.want) || named != tt.named {
				t.Errorf("DashPattern(%q) = %v, %v; want %v, %v", tt.style, got, named, tt.want, tt.named)
			}
		})
	}
}
