package dataset

import (
	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/table"
)

// Remap is the dense node-identifier mapping required by the legacy binary
// format: every node that participates in at least one edge is assigned a
// contiguous integer index in first-seen order.
type Remap struct {
	// IDs holds the participating identifiers in first-seen order;
	// IDs[i] has dense index i.
	IDs []any
	// index maps normalized identifier keys to dense indices. It is a
	// bijection onto [0, len(IDs)).
	index map[any]int
	// Nodes is the node table restricted to participating identifiers,
	// left-joined so every identifier keeps exactly one row; attributes of
	// identifiers absent from the input node table are nulls.
	Nodes *table.Table
}

// Index returns the dense index of an identifier.
func (r *Remap) Index(id any) (int, bool) {
	i, ok := r.index[cellKey(id)]
	return i, ok
}

// Len returns the number of participating nodes.
func (r *Remap) Len() int { return len(r.IDs) }

// denseRemap computes the Remap for a sanitized pair. The identifier order
// is the concatenation of the edge table's source column then destination
// column, deduplicated first-seen; determinism follows from that fixed
// iteration order.
func denseRemap(nodes, edges *table.Table, source, destination, nodeID string) (*Remap, error) {
	src, _ := edges.Column(source)
	dst, _ := edges.Column(destination)

	r := &Remap{index: map[any]int{}}
	for _, col := range [][]any{src, dst} {
		for _, v := range col {
			k := cellKey(v)
			if _, ok := r.index[k]; ok {
				continue
			}
			r.index[k] = len(r.IDs)
			r.IDs = append(r.IDs, v)
		}
	}

	// Left-join node attributes onto the participating identifier list.
	// The node table is already deduplicated, so each key has at most one
	// source row; identifiers without a row keep null attributes.
	nodeRow := map[any]int{}
	idCol, ok := nodes.Column(nodeID)
	if !ok {
		return nil, errors.New(errors.ErrCodeInternal,
			"node table lost its identity column %q", nodeID)
	}
	for i, v := range idCol {
		k := cellKey(v)
		if _, dup := nodeRow[k]; !dup {
			nodeRow[k] = i
		}
	}

	joined := table.New()
	if err := joined.AddColumn(nodeID, append([]any(nil), r.IDs...)); err != nil {
		return nil, err
	}
	for _, name := range nodes.Columns() {
		if name == nodeID {
			continue
		}
		srcCol, _ := nodes.Column(name)
		out := make([]any, len(r.IDs))
		for i, id := range r.IDs {
			if row, ok := nodeRow[cellKey(id)]; ok {
				out[i] = srcCol[row]
			}
		}
		if err := joined.AddColumn(name, out); err != nil {
			return nil, err
		}
	}
	r.Nodes = joined

	return r, nil
}
