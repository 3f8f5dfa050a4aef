package dataset

import (
	"context"

	"github.com/apache/arrow/go/v15/arrow"

	"github.com/graphport/graphport/pkg/client"
	"github.com/graphport/graphport/pkg/plot"
	"github.com/graphport/graphport/pkg/table"
)

// ArrowPayload is the columnar wire shape (protocol version 3): edge and
// node tables stay columnar as Arrow records, and visual intent travels as
// structured metadata. This is the only format that carries style and
// complex encodings.
type ArrowPayload struct {
	Name        string
	Description string

	Edges arrow.Record
	Nodes arrow.Record

	// Metadata is the upload identity block (usertag, key, agent,
	// apiversion, agentversion) merged with the style groups. The pipeline
	// fills the identity fields; Build fills the style.
	Metadata map[string]any

	EdgeEncodings ArrowEncodings
	NodeEncodings ArrowEncodings
}

// ArrowEncodings carries one side's scalar bindings and complex encodings.
type ArrowEncodings struct {
	Bindings map[string]string   `json:"bindings"`
	Complex  plot.GraphEncodings `json:"complex"`
}

// Release frees the Arrow records. The payload must not be used afterwards.
func (p *ArrowPayload) Release() {
	if p.Edges != nil {
		p.Edges.Release()
		p.Edges = nil
	}
	if p.Nodes != nil {
		p.Nodes.Release()
		p.Nodes = nil
	}
}

// Upload posts the payload through the transport client and returns the
// dataset id. It is the caller's entry point for the columnar path; dry
// runs simply never call it.
func (p *ArrowPayload) Upload(ctx context.Context, c *client.Client) (string, error) {
	edges, err := table.ArrowIPC(p.Edges)
	if err != nil {
		return "", err
	}
	nodes, err := table.ArrowIPC(p.Nodes)
	if err != nil {
		return "", err
	}
	return c.UploadDataset(ctx, client.DatasetUpload{
		Name:          p.Name,
		Description:   p.Description,
		Metadata:      p.Metadata,
		EdgeFile:      edges,
		NodeFile:      nodes,
		EdgeEncodings: p.EdgeEncodings,
		NodeEncodings: p.NodeEncodings,
	})
}

func buildArrow(spec plot.Spec, nodeID string, edges, nodes *table.Table) (*ArrowPayload, error) {
	erec, err := edges.ToArrow()
	if err != nil {
		return nil, err
	}
	nrec, err := nodes.ToArrow()
	if err != nil {
		return nil, err
	}

	meta := map[string]any{}
	if s := spec.Style; !s.Empty() {
		if len(s.FG) > 0 {
			meta["fg"] = s.FG
		}
		if len(s.BG) > 0 {
			meta["bg"] = s.BG
		}
		if len(s.Page) > 0 {
			meta["page"] = s.Page
		}
		if len(s.Logo) > 0 {
			meta["logo"] = s.Logo
		}
	}

	edgeBindings := map[string]string{"source": spec.Source, "destination": spec.Destination}
	for wire, col := range spec.EdgeFeatures {
		edgeBindings[wire] = col
	}
	nodeBindings := map[string]string{"node": nodeID}
	for wire, col := range spec.PointFeatures {
		nodeBindings[wire] = col
	}

	return &ArrowPayload{
		Name:          spec.Name,
		Description:   spec.Description,
		Edges:         erec,
		Nodes:         nrec,
		Metadata:      meta,
		EdgeEncodings: ArrowEncodings{Bindings: edgeBindings, Complex: spec.Encodings.Edge},
		NodeEncodings: ArrowEncodings{Bindings: nodeBindings, Complex: spec.Encodings.Node},
	}, nil
}
