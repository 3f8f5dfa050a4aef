package graphin

import (
	"strconv"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"

	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/table"
)

// dotIDer is implemented by gonum nodes that carry a stable string identity
// (gonum's graph/encoding/dot uses the same probe).
type dotIDer interface {
	DOTID() string
}

// edgeSlicer is implemented by gonum graph types that can enumerate their
// edge set directly (simple and multi graphs all do).
type edgeSlicer interface {
	Edges() graph.Edges
}

// normalizeGonum extracts the canonical pair from a gonum graph.
//
// Node identity is the node's DOTID when available, else its int64 id
// rendered as a string. Node and edge attributes are read through
// encoding.Attributer; weighted edges contribute a "weight" column.
func normalizeGonum(g graph.Graph, source, destination, node string) (Pair, error) {
	nodeID := effectiveNodeID(node)

	// Collect nodes first: identity resolution and the ambiguity check both
	// need the full attribute view.
	type nodeRow struct {
		id    string
		attrs []encoding.Attribute
	}
	var nodeRows []nodeRow
	nodeAttrs := map[string]bool{}
	it := g.Nodes()
	for it.Next() {
		n := it.Node()
		row := nodeRow{id: gonumNodeID(n)}
		if a, ok := n.(encoding.Attributer); ok {
			row.attrs = a.Attributes()
			for _, attr := range row.attrs {
				nodeAttrs[attr.Key] = true
			}
		}
		nodeRows = append(nodeRows, row)
	}

	if node != "" && nodeAttrs[node] {
		return Pair{}, errors.New(errors.ErrCodeInvalidArgument,
			"node attribute %q bound to the node identity already exists on the input graph", node)
	}

	nodeCols := sortedKeys(nodeAttrs)
	nodeRecs := make([]map[string]any, 0, len(nodeRows))
	for _, row := range nodeRows {
		rec := map[string]any{nodeID: row.id}
		for _, attr := range row.attrs {
			rec[attr.Key] = attr.Value
		}
		nodeRecs = append(nodeRecs, rec)
	}
	nodes := table.FromRecords(nodeRecs, append([]string{nodeID}, nodeCols...))

	type edgeRow struct {
		from, to string
		weight   *float64
		attrs    []encoding.Attribute
	}
	var edgeRows []edgeRow
	edgeAttrs := map[string]bool{}
	appendEdge := func(e graph.Edge) {
		row := edgeRow{from: gonumNodeID(e.From()), to: gonumNodeID(e.To())}
		if w, ok := e.(graph.WeightedEdge); ok {
			weight := w.Weight()
			row.weight = &weight
			edgeAttrs["weight"] = true
		}
		if a, ok := e.(encoding.Attributer); ok {
			row.attrs = a.Attributes()
			for _, attr := range row.attrs {
				edgeAttrs[attr.Key] = true
			}
		}
		edgeRows = append(edgeRows, row)
	}

	if es, ok := g.(edgeSlicer); ok {
		eit := es.Edges()
		for eit.Next() {
			appendEdge(eit.Edge())
		}
	} else {
		// Fall back to adjacency walks. Undirected graphs report each edge
		// from both endpoints, so keep only one orientation.
		_, directed := g.(graph.Directed)
		nit := g.Nodes()
		for nit.Next() {
			u := nit.Node()
			adj := g.From(u.ID())
			for adj.Next() {
				v := adj.Node()
				if !directed && u.ID() > v.ID() {
					continue
				}
				appendEdge(g.Edge(u.ID(), v.ID()))
			}
		}
	}

	edgeCols := sortedKeys(edgeAttrs)
	edgeRecs := make([]map[string]any, 0, len(edgeRows))
	for _, row := range edgeRows {
		rec := map[string]any{source: row.from, destination: row.to}
		if row.weight != nil {
			rec["weight"] = *row.weight
		}
		for _, attr := range row.attrs {
			rec[attr.Key] = attr.Value
		}
		edgeRecs = append(edgeRecs, rec)
	}
	edges := table.FromRecords(edgeRecs, append([]string{source, destination}, edgeCols...))

	return Pair{Edges: edges, Nodes: nodes, NodeID: nodeID}, nil
}

func gonumNodeID(n graph.Node) string {
	if d, ok := n.(dotIDer); ok {
		return d.DOTID()
	}
	return strconv.FormatInt(n.ID(), 10)
}
