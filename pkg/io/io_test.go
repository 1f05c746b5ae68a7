package io

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/options"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

func parents(recs []tree.Record) map[string]string {
	m := make(map[string]string, len(recs))
	for _, r := range recs {
		m[r.ID] = r.Parent
	}
	return m
}

func TestReadJSON(t *testing.T) {
	want := map[string]string{"A": "", "B": "A", "C": "A"}

	tests := []struct {
		name  string
		input string
	}{
		{"array", `[{"id":"A"},{"id":"B","parent":"A"},{"id":"C","parent":"A"}]`},
		{"parentId alias", `[{"id":"A"},{"id":"B","parentId":"A"},{"id":"C","parentId":"A"}]`},
		{"data key", `{"data":[{"id":"A"},{"id":"B","parent":"A"},{"id":"C","parent":"A"}]}`},
		{"nodes and edges", `{"nodes":[{"id":"A"},{"id":"B"},{"id":"C"}],"edges":[{"from":"A","to":"B"},{"from":"A","to":"C"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, err := ReadJSON(strings.NewReader(tt.input))
			if err != nil {
				t.Fatalf("ReadJSON() error: %v", err)
			}
			if got := parents(recs); !reflect.DeepEqual(got, want) {
				t.Errorf("parents = %v, want %v", got, want)
			}
			if recs[0].ID != "A" || recs[2].ID != "C" {
				t.Errorf("input order lost: %v", recs)
			}
		})
	}
}

func TestReadJSONOptions(t *testing.T) {
	input := `[{"id":"A","value":3,"collapsed":true,"color":"#ff0000","marker":{"symbol":"rect","width":"10%"},"link":{"type":"straight"}}]`
	recs, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	r := recs[0]
	if *r.Value != 3 || !*r.Collapsed || r.Color != "#ff0000" {
		t.Errorf("record = %+v", r)
	}
	if *r.Marker.Symbol != "rect" || *r.Marker.Width != (options.Length{Value: 10, Percent: true}) {
		t.Errorf("marker = %+v", r.Marker)
	}
	if *r.Link.Type != options.LinkStraight {
		t.Errorf("link type = %v", *r.Link.Type)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  errors.Code
	}{
		{"empty", "  ", errors.ErrCodeInvalidFormat},
		{"malformed", `[{"id":`, errors.ErrCodeInvalidFormat},
		{"wrong type", `{"data":"nope"}`, errors.ErrCodeInvalidFormat},
		{"unknown edge target", `{"nodes":[{"id":"A"}],"edges":[{"from":"A","to":"Z"}]}`, errors.ErrCodeInvalidInput},
		{"two parents", `{"nodes":[{"id":"A"},{"id":"B"},{"id":"C"}],"edges":[{"from":"A","to":"C"},{"from":"B","to":"C"}]}`, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadYAML(t *testing.T) {
	input := `
- id: A
- id: B
  parentId: A
  marker:
    radius: 25%
- id: C
  parent: A
  value: 2
`
	recs, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadYAML() error: %v", err)
	}
	if got := parents(recs); !reflect.DeepEqual(got, map[string]string{"A": "", "B": "A", "C": "A"}) {
		t.Errorf("parents = %v", got)
	}
	if *recs[1].Marker.Radius != (options.Length{Value: 25, Percent: true}) {
		t.Errorf("radius = %+v", recs[1].Marker.Radius)
	}
	if *recs[2].Value != 2 {
		t.Errorf("value = %v", *recs[2].Value)
	}
}

func TestReadYAMLDocument(t *testing.T) {
	input := "nodes:\n  - id: A\n  - id: B\nedges:\n  - {from: A, to: B}\n"
	recs, err := ReadYAML(strings.NewReader(input))
	if err != nil {
		t.Fatal(err)
	}
	if recs[1].Parent != "A" {
		t.Errorf("B parent = %q, want A", recs[1].Parent)
	}
	if _, err := ReadYAML(strings.NewReader("")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("empty yaml error = %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	v := 4.0
	recs := []tree.Record{
		{ID: "A", Name: "Root"},
		{ID: "B", Parent: "A", Value: &v, Collapsed: options.Bool(true)},
		{ID: "C", Parent: "A", Marker: options.Marker{Radius: options.Pct(5)}},
	}

	for _, format := range []string{FormatJSON, FormatYAML} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			var err error
			if format == FormatJSON {
				err = WriteJSON(&buf, recs)
			} else {
				err = WriteYAML(&buf, recs)
			}
			if err != nil {
				t.Fatal(err)
			}
			got, err := Read(&buf, format)
			if err != nil {
				t.Fatalf("re-read: %v\n%s", err, buf.String())
			}
			if !reflect.DeepEqual(got, recs) {
				t.Errorf("round trip = %+v, want %+v", got, recs)
			}
		})
	}
}

func TestImportExport(t *testing.T) {
	dir := t.TempDir()
	recs := []tree.Record{{ID: "A"}, {ID: "B", Parent: "A"}}

	for _, name := range []string{"data.json", "data.yml"} {
		p := filepath.Join(dir, name)
		if err := Export(p, recs); err != nil {
			t.Fatalf("Export(%s): %v", name, err)
		}
		got, err := Import(p)
		if err != nil {
			t.Fatalf("Import(%s): %v", name, err)
		}
		if !reflect.DeepEqual(got, recs) {
			t.Errorf("%s: got %+v", name, got)
		}
	}

	if _, err := Import(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("Import of a missing file should fail")
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]string{
		"a.json": FormatJSON,
		"a.yaml": FormatYAML,
		"A.YML":  FormatYAML,
		"a.txt":  FormatJSON,
	}
	for p, want := range tests {
		if got := FormatFromPath(p); got != want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", p, got, want)
		}
	}
}
