package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/erfan1375er/highcharts/pkg/errors"
	"github.com/erfan1375er/highcharts/pkg/tree"
)

// record is the wire form of a tree.Record.
type record struct {
	tree.Record `yaml:",inline"`
	ParentID    string `json:"parentId,omitempty" yaml:"parentId,omitempty"`
}

func (r record) toRecord() tree.Record {
	out := r.Record
	if out.Parent == "" {
		out.Parent = r.ParentID
	}
	return out
}

// document is the object form of an import.
type document struct {
	Data  []record `json:"data" yaml:"data"`
	Nodes []record `json:"nodes" yaml:"nodes"`
	Edges []edge   `json:"edges" yaml:"edges"`
}

type edge struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

// records flattens a document into records, attaching edge parents.
func (d document) records() ([]tree.Record, error) {
	if len(d.Nodes) == 0 {
		return convert(d.Data), nil
	}
	out := convert(d.Nodes)
	index := make(map[string]int, len(out))
	for i, r := range out {
		index[r.ID] = i
	}
	for _, e := range d.Edges {
		i, ok := index[e.To]
		if !ok {
			return nil, errors.ForNode(errors.ErrCodeInvalidInput, e.To, "edge %s->%s: unknown node %q", e.From, e.To, e.To)
		}
		if p := out[i].Parent; p != "" && p != e.From {
			return nil, errors.ForNode(errors.ErrCodeInvalidInput, e.To, "node %q has two parents (%q and %q)", e.To, p, e.From)
		}
		out[i].Parent = e.From
	}
	return out, nil
}

func convert(in []record) []tree.Record {
	out := make([]tree.Record, len(in))
	for i, r := range in {
		out[i] = r.toRecord()
	}
	return out
}

// ReadJSON decodes records from r. It does not close r.
func ReadJSON(r io.Reader) ([]tree.Record, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "empty document")
	}

	if raw[0] == '[' {
		var recs []record
		if err := json.Unmarshal(raw, &recs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode records")
		}
		return convert(recs), nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}
	return doc.records()
}

// ReadYAML decodes records from a YAML document in r.
func ReadYAML(r io.Reader) ([]tree.Record, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "empty document")
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode yaml")
	}
	body := &root
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		body = root.Content[0]
	}

	if body.Kind == yaml.SequenceNode {
		var recs []record
		if err := body.Decode(&recs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode records")
		}
		return convert(recs), nil
	}

	var doc document
	if err := body.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode document")
	}
	return doc.records()
}

// Read decodes records in the named format ("json" or "yaml").
func Read(r io.Reader, format string) ([]tree.Record, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatYAML:
		return ReadYAML(r)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported record format %q", format)
}

// Record file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath picks the record format from a file extension. Unknown
// extensions are read as JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Import reads the record file at path, choosing the decoder by extension.
func Import(path string) ([]tree.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	recs, err := Read(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return recs, nil
}
