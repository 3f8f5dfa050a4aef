package plot

import "encoding/json"

// GraphType distinguishes node-level from edge-level encodings.
// The wire vocabulary calls nodes "point".
type GraphType string

// Accepted graph types.
const (
	GraphTypePoint GraphType = "point"
	GraphTypeEdge  GraphType = "edge"
)

// Variation is how an encoding interprets its column values.
type Variation string

// Accepted variations.
const (
	VariationCategorical Variation = "categorical"
	VariationContinuous  Variation = "continuous"
)

// Bin is one (boundary, value) pair of a continuous binning. A nil Threshold
// is the open catch-all bucket. It serializes as a two-element array to match
// the wire shape.
type Bin struct {
	Threshold any
	Value     any
}

// MarshalJSON encodes the bin as [threshold, value].
func (b Bin) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{b.Threshold, b.Value})
}

// UnmarshalJSON decodes a [threshold, value] pair.
func (b *Bin) UnmarshalJSON(data []byte) error {
	var pair [2]any
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	b.Threshold, b.Value = pair[0], pair[1]
	return nil
}

// CategoricalMapping maps exact column values to outputs, with an optional
// catch-all for unmatched values.
type CategoricalMapping struct {
	Fixed map[string]any `json:"fixed"`
	Other any            `json:"other,omitempty"`
}

// ContinuousMapping maps binned column values to outputs.
type ContinuousMapping struct {
	Bins       []Bin  `json:"bins"`
	Comparator string `json:"comparator,omitempty"`
	Other      any    `json:"other,omitempty"`
}

// Mapping is the transform of an Encoding. Exactly one of the two fields is
// set; palette encodings carry Colors on the Encoding instead.
type Mapping struct {
	Categorical *CategoricalMapping `json:"categorical,omitempty"`
	Continuous  *ContinuousMapping  `json:"continuous,omitempty"`
}

// Encoding is one resolved visual-role rule.
//
// Decoration fields (AsText, BlendMode, ...) pass through to the wire without
// validation beyond presence.
type Encoding struct {
	GraphType    GraphType `json:"graphType"`
	EncodingType string    `json:"encodingType"`
	Attribute    string    `json:"attribute"`
	Variation    Variation `json:"variation"`
	Colors       []string  `json:"colors,omitempty"`
	Mapping      *Mapping  `json:"mapping,omitempty"`

	Color     any            `json:"color,omitempty"`
	BG        map[string]any `json:"bg,omitempty"`
	FG        map[string]any `json:"fg,omitempty"`
	AsText    *bool          `json:"asText,omitempty"`
	BlendMode string         `json:"blendMode,omitempty"`
	Style     map[string]any `json:"style,omitempty"`
	Border    map[string]any `json:"border,omitempty"`
	Badge     string         `json:"badge,omitempty"`
	Shape     string         `json:"shape,omitempty"`
}

// EncodingLayer maps a feature binding key (e.g. "pointColorEncoding") to its
// Encoding. Writes are last-write-wins per key.
type EncodingLayer map[string]Encoding

// GraphEncodings holds the default and current layers for one graph type.
// Default applies when no user override is active; current is the active
// override.
type GraphEncodings struct {
	Default EncodingLayer `json:"default"`
	Current EncodingLayer `json:"current"`
}

// ComplexEncodings groups node- and edge-level encodings.
type ComplexEncodings struct {
	Node GraphEncodings `json:"node_encodings"`
	Edge GraphEncodings `json:"edge_encodings"`
}

// Empty reports whether no complex encoding has been recorded.
func (c ComplexEncodings) Empty() bool {
	return len(c.Node.Default) == 0 && len(c.Node.Current) == 0 &&
		len(c.Edge.Default) == 0 && len(c.Edge.Current) == 0
}

// clone deep-copies the layer maps so a derived Plotter owns its encodings
// independently. Encoding values are copied by value; their nested maps are
// treated as immutable once recorded.
func (c ComplexEncodings) clone() ComplexEncodings {
	return ComplexEncodings{
		Node: GraphEncodings{Default: cloneLayer(c.Node.Default), Current: cloneLayer(c.Node.Current)},
		Edge: GraphEncodings{Default: cloneLayer(c.Edge.Default), Current: cloneLayer(c.Edge.Current)},
	}
}

func cloneLayer(l EncodingLayer) EncodingLayer {
	if l == nil {
		return nil
	}
	out := make(EncodingLayer, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}
