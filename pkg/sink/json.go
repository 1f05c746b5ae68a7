package sink

import (
	"encoding/json"

	"github.com/erfan1375er/highcharts/pkg/render"
	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// Document is the JSON form of a pass.
type Document struct {
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Frame     render.Frame       `json:"frame"`
	Transform string             `json:"transform,omitempty"`
	Root      string             `json:"root"`
	Visible   int                `json:"visible"`
	Modifiers render.Modifiers   `json:"modifiers"`
	Nodes     []render.NodeShape `json:"nodes"`
	Links     []render.LinkShape `json:"links"`
	Warnings  []string           `json:"warnings,omitempty"`
}

// NewDocument converts a pass into its JSON document. Slices are never nil
// so consumers always see arrays.
func NewDocument(res *treegraph.Result) Document {
	if res == nil {
		res = &treegraph.Result{Modifiers: render.Identity()}
	}
	doc := Document{
		Width:     res.Frame.PlotWidth(),
		Height:    res.Frame.PlotHeight(),
		Frame:     res.Frame,
		Transform: res.Frame.Transform(),
		Root:      res.Root,
		Visible:   res.Visible,
		Modifiers: res.Modifiers,
		Nodes:     res.Nodes,
		Links:     res.Links,
		Warnings:  res.WarningMessages(),
	}
	if doc.Nodes == nil {
		doc.Nodes = []render.NodeShape{}
	}
	if doc.Links == nil {
		doc.Links = []render.LinkShape{}
	}
	return doc
}

// RenderJSON encodes the pass as indented JSON.
func RenderJSON(res *treegraph.Result) ([]byte, error) {
	return json.MarshalIndent(NewDocument(res), "", "  ")
}
