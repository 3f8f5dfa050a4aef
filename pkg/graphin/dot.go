package graphin

import (
	"sort"
	"strings"

	gv "github.com/awalterschulze/gographviz"

	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/table"
)

// normalizeDOT extracts the canonical pair from a parsed DOT graph.
// Node and edge declaration order is preserved; attribute columns are sorted
// by name for deterministic schemas.
func normalizeDOT(g *gv.Graph, source, destination, node string) (Pair, error) {
	nodeID := effectiveNodeID(node)

	attrOverlap := node != "" && dotHasNodeAttr(g, node)
	if attrOverlap {
		return Pair{}, errors.New(errors.ErrCodeInvalidArgument,
			"node attribute %q bound to the node identity already exists on the input graph", node)
	}

	edgeAttrs := map[string]bool{}
	for _, e := range g.Edges.Edges {
		for k := range e.Attrs {
			edgeAttrs[string(k)] = true
		}
	}
	edgeCols := sortedKeys(edgeAttrs)

	edgeRecs := make([]map[string]any, 0, len(g.Edges.Edges))
	for _, e := range g.Edges.Edges {
		rec := map[string]any{
			source:      unquoteDOT(e.Src),
			destination: unquoteDOT(e.Dst),
		}
		for k, v := range e.Attrs {
			rec[string(k)] = unquoteDOT(v)
		}
		edgeRecs = append(edgeRecs, rec)
	}
	edges := table.FromRecords(edgeRecs, append([]string{source, destination}, edgeCols...))

	nodeAttrs := map[string]bool{}
	for _, n := range g.Nodes.Nodes {
		for k := range n.Attrs {
			nodeAttrs[string(k)] = true
		}
	}
	nodeCols := sortedKeys(nodeAttrs)

	nodeRecs := make([]map[string]any, 0, len(g.Nodes.Nodes))
	for _, n := range g.Nodes.Nodes {
		rec := map[string]any{nodeID: unquoteDOT(n.Name)}
		for k, v := range n.Attrs {
			rec[string(k)] = unquoteDOT(v)
		}
		nodeRecs = append(nodeRecs, rec)
	}
	nodes := table.FromRecords(nodeRecs, append([]string{nodeID}, nodeCols...))

	return Pair{Edges: edges, Nodes: nodes, NodeID: nodeID}, nil
}

func dotHasNodeAttr(g *gv.Graph, name string) bool {
	for _, n := range g.Nodes.Nodes {
		for k := range n.Attrs {
			if string(k) == name {
				return true
			}
		}
	}
	return false
}

// unquoteDOT strips the double quotes the DOT grammar keeps around quoted
// identifiers and attribute values.
func unquoteDOT(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
