package graphin

import (
	gv "github.com/awalterschulze/gographviz"
	"gonum.org/v1/gonum/graph"

	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/plot"
	"github.com/graphport/graphport/pkg/table"
)

// Pair is the canonical normalized form of a graph input.
type Pair struct {
	Edges *table.Table
	// Nodes is nil when the input supplied no node table; the sanitizer
	// synthesizes one.
	Nodes *table.Table
	// NodeID is the effective node identity column on Nodes.
	NodeID string
}

// Normalize converts a graph input of unknown shape into a Pair under the
// given structural bindings. The source and destination bindings must be set
// for every shape; nodesInput is only consulted for tabular input (attributed
// graphs carry their own node set).
func Normalize(input, nodesInput any, source, destination, node string) (Pair, error) {
	if source == "" || destination == "" {
		return Pair{}, errors.New(errors.ErrCodeMissingBinding,
			`both "source" and "destination" must be bound before plotting`)
	}

	switch g := input.(type) {
	case *table.Table:
		return normalizeTabular(g, nodesInput, node)
	case *gv.Graph:
		return normalizeDOT(g, source, destination, node)
	case graph.Graph:
		return normalizeGonum(g, source, destination, node)
	case nil:
		return Pair{}, errors.New(errors.ErrCodeMissingBinding, "graph/edges must be specified")
	default:
		return Pair{}, errors.New(errors.ErrCodeUnsupportedInput,
			"unsupported graph input %T: expected an edge *table.Table, *gographviz.Graph, or gonum graph.Graph", input)
	}
}

func normalizeTabular(edges *table.Table, nodesInput any, node string) (Pair, error) {
	pair := Pair{Edges: edges, NodeID: effectiveNodeID(node)}
	switch n := nodesInput.(type) {
	case nil:
	case *table.Table:
		if node == "" {
			return Pair{}, errors.New(errors.ErrCodeMissingBinding,
				`"node" must be bound when a node table is supplied`)
		}
		pair.Nodes = n
	default:
		return Pair{}, errors.New(errors.ErrCodeUnsupportedInput,
			"unsupported node input %T: expected *table.Table", nodesInput)
	}
	return pair, nil
}

func effectiveNodeID(node string) string {
	if node != "" {
		return node
	}
	return plot.DefaultNodeID
}
