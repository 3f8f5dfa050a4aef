package dataset

import (
	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/plot"
	"github.com/graphport/graphport/pkg/table"
)

// VGraphPayload is the legacy binary graph wire shape (protocol version 2).
// Vertex identifiers are replaced by dense integers; attribute vectors follow
// dense index order for vertices and row order for edges. Feature bindings
// travel in an encodings side table instead of injected columns.
type VGraphPayload struct {
	Name             string            `json:"name"`
	Type             string            `json:"type"`
	Vertices         int               `json:"vertices"`
	Edges            [][2]int          `json:"edges"`
	VertexAttributes []AttributeVector `json:"vertex_attributes"`
	EdgeAttributes   []AttributeVector `json:"edge_attributes"`
	Encodings        EncodingsTable    `json:"encodings"`
}

// AttributeVector is one named attribute column in wire order.
type AttributeVector struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

// EncodingsTable maps wire feature names to their source columns.
type EncodingsTable struct {
	Nodes map[string]FeatureAttributes `json:"nodes"`
	Edges map[string]FeatureAttributes `json:"edges"`
}

// FeatureAttributes lists the columns feeding one wire feature.
type FeatureAttributes struct {
	Attributes []string `json:"attributes"`
}

func buildVGraph(spec plot.Spec, nodeID string, edges, nodes *table.Table, warn func(string, ...any)) (*VGraphPayload, error) {
	remap, err := denseRemap(nodes, edges, spec.Source, spec.Destination, nodeID)
	if err != nil {
		return nil, err
	}

	src, _ := edges.Column(spec.Source)
	dst, _ := edges.Column(spec.Destination)
	wireEdges := make([][2]int, edges.Len())
	for i := range wireEdges {
		si, ok := remap.Index(src[i])
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "edge source %v missing from dense remap", src[i])
		}
		di, ok := remap.Index(dst[i])
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "edge destination %v missing from dense remap", dst[i])
		}
		wireEdges[i] = [2]int{si, di}
	}

	// Endpoint columns become dense indices; the remaining edge columns ride
	// along as attribute vectors.
	eattrs := edges.Clone()
	eattrs.DropColumns(spec.Source, spec.Destination)

	payload := &VGraphPayload{
		Name:             spec.Name,
		Type:             "vgraph",
		Vertices:         remap.Len(),
		Edges:            wireEdges,
		VertexAttributes: attributeVectors(remap.Nodes),
		EdgeAttributes:   attributeVectors(eattrs),
		Encodings: EncodingsTable{
			Nodes: featureTable(withPointTitleDefault(spec.PointFeatures, nodeID), remap.Nodes,
				map[string]string{"nodeId": nodeID}, warn),
			Edges: featureTable(spec.EdgeFeatures, edges,
				map[string]string{"source": spec.Source, "destination": spec.Destination}, warn),
		},
	}
	return payload, nil
}

func attributeVectors(t *table.Table) []AttributeVector {
	out := make([]AttributeVector, 0, len(t.Columns()))
	for _, name := range t.Columns() {
		col, _ := t.Column(name)
		out = append(out, AttributeVector{Name: name, Values: col})
	}
	return out
}

// featureTable resolves scalar feature bindings into the encodings side
// table. Structural bindings are always present; feature bindings whose
// column is missing from the table degrade to warnings.
func featureTable(features map[string]string, t *table.Table, structural map[string]string, warn func(string, ...any)) map[string]FeatureAttributes {
	out := make(map[string]FeatureAttributes, len(features)+len(structural))
	for wire, col := range structural {
		out[wire] = FeatureAttributes{Attributes: []string{col}}
	}
	for _, wire := range sortedFeatureNames(features) {
		col := features[wire]
		if !t.HasColumn(col) {
			warn("attribute %q bound to %s does not exist", col, wire)
			continue
		}
		out[wire] = FeatureAttributes{Attributes: []string{col}}
	}
	return out
}
