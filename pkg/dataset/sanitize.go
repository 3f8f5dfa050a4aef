package dataset

import (
	"fmt"

	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/graphin"
	"github.com/graphport/graphport/pkg/table"
)

// sanitize cleans a normalized pair:
//   - requires the source/destination columns on the edge table
//   - drops edge rows with a missing endpoint
//   - coerces loosely typed columns to numeric where uniform
//   - synthesizes a node table from edge endpoints when none was supplied,
//     else requires the node-id column, drops missing ids, and deduplicates
//     keeping the first occurrence
//
// Caller input tables are never mutated.
func sanitize(pair graphin.Pair, source, destination string, warn func(string, ...any)) (*table.Table, *table.Table, error) {
	if err := requireColumns(pair.Edges, "edge", map[string]string{
		"source": source, "destination": destination,
	}); err != nil {
		return nil, nil, err
	}

	edges := pair.Edges.Filter(func(row int) bool {
		return pair.Edges.Cell(row, source) != nil && pair.Edges.Cell(row, destination) != nil
	})
	edges.CoerceNumeric()

	var nodes *table.Table
	if pair.Nodes == nil {
		nodes = synthesizeNodes(edges, source, destination, pair.NodeID)
	} else {
		if err := requireColumns(pair.Nodes, "vertex", map[string]string{
			"node": pair.NodeID,
		}); err != nil {
			return nil, nil, err
		}
		nodes = pair.Nodes.Filter(func(row int) bool {
			return pair.Nodes.Cell(row, pair.NodeID) != nil
		})
		nodes.CoerceNumeric()
		nodes = dedupeByColumn(nodes, pair.NodeID)
	}

	return edges, nodes, nil
}

// synthesizeNodes builds a node table as the deduplicated union of edge
// endpoints, source column first, preserving first-seen order.
func synthesizeNodes(edges *table.Table, source, destination, nodeID string) *table.Table {
	src, _ := edges.Column(source)
	dst, _ := edges.Column(destination)

	seen := map[any]bool{}
	var ids []any
	for _, col := range [][]any{src, dst} {
		for _, v := range col {
			k := cellKey(v)
			if seen[k] {
				continue
			}
			seen[k] = true
			ids = append(ids, v)
		}
	}

	nodes := table.New()
	_ = nodes.AddColumn(nodeID, ids)
	return nodes
}

// dedupeByColumn keeps the first row per distinct value of the named column,
// in original order.
func dedupeByColumn(t *table.Table, name string) *table.Table {
	col, _ := t.Column(name)
	seen := map[any]bool{}
	return t.Filter(func(row int) bool {
		k := cellKey(col[row])
		if seen[k] {
			return false
		}
		seen[k] = true
		return true
	})
}

// cellKey normalizes a cell into a comparable map key so numerically-equal
// identifiers collapse regardless of original representation.
func cellKey(v any) any {
	if f, ok := table.AsFloat(v); ok {
		return f
	}
	switch v.(type) {
	case nil, string, bool:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

func requireColumns(t *table.Table, kind string, bindings map[string]string) error {
	for role, col := range bindings {
		if !t.HasColumn(col) {
			return errors.New(errors.ErrCodeSchemaMismatch,
				"%s attribute %q bound to %q does not exist", kind, col, role)
		}
	}
	return nil
}
