package dataset

import (
	"sort"

	"github.com/graphport/graphport/pkg/plot"
	"github.com/graphport/graphport/pkg/table"
)

// RecordsPayload is the record-list wire shape (protocol version 1): tables
// are materialized as row records after wire-named copies of every bound
// feature column are injected.
type RecordsPayload struct {
	Name     string         `json:"name"`
	Bindings RecordBindings `json:"bindings"`
	Type     string         `json:"type"`
	Graph    []table.Record `json:"graph"`
	Labels   []table.Record `json:"labels,omitempty"`
}

// RecordBindings names the structural columns inside the record set.
type RecordBindings struct {
	IDField          string `json:"idField"`
	SourceField      string `json:"sourceField"`
	DestinationField string `json:"destinationField"`
}

func buildRecords(spec plot.Spec, nodeID string, edges, nodes *table.Table, warn func(string, ...any)) (*RecordsPayload, error) {
	elist := edges.Clone()
	nlist := nodes.Clone()

	injectFeatureColumns(elist, spec.EdgeFeatures, warn)
	injectFeatureColumns(nlist, withPointTitleDefault(spec.PointFeatures, nodeID), warn)

	return &RecordsPayload{
		Name: spec.Name,
		Bindings: RecordBindings{
			IDField:          nodeID,
			SourceField:      spec.Source,
			DestinationField: spec.Destination,
		},
		Type:   "edgelist",
		Graph:  elist.Records(),
		Labels: nlist.Records(),
	}, nil
}

// injectFeatureColumns copies each bound column under its wire feature name.
// A binding whose column is absent from the table degrades to a warning and
// is skipped.
func injectFeatureColumns(t *table.Table, features map[string]string, warn func(string, ...any)) {
	for _, wire := range sortedFeatureNames(features) {
		col := features[wire]
		if !t.HasColumn(col) {
			warn("attribute %q bound to %s does not exist", col, wire)
			continue
		}
		// CopyColumn cannot fail here: the source column was just checked.
		_ = t.CopyColumn(wire, col)
	}
}

// withPointTitleDefault returns the feature map with pointTitle defaulted to
// the node identity column when unbound. Titles fall back to identifiers.
func withPointTitleDefault(features map[string]string, nodeID string) map[string]string {
	if _, ok := features["pointTitle"]; ok {
		return features
	}
	out := make(map[string]string, len(features)+1)
	for k, v := range features {
		out[k] = v
	}
	out["pointTitle"] = nodeID
	return out
}

func sortedFeatureNames(features map[string]string) []string {
	names := make([]string, 0, len(features))
	for k := range features {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
