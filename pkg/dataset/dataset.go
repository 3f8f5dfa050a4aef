package dataset

import (
	"fmt"

	"github.com/graphport/graphport/pkg/errors"
	"github.com/graphport/graphport/pkg/graphin"
	"github.com/graphport/graphport/pkg/plot"
)

// Format selects the wire payload shape. Selected by the protocol version,
// which lives outside the core.
type Format string

// Supported formats.
const (
	FormatRecords Format = "records"
	FormatVGraph  Format = "vgraph"
	FormatArrow   Format = "arrow"
)

// Size ceilings. Edge and node counts above the hard maxima fail; a combined
// count above the soft threshold only warns.
const (
	MaxEdges            = 8_000_000
	MaxNodes            = 8_000_000
	LargeGraphThreshold = 1_000_000
)

// FormatForAPIVersion maps a protocol version to its payload format.
func FormatForAPIVersion(v int) (Format, error) {
	switch v {
	case 1:
		return FormatRecords, nil
	case 2:
		return FormatVGraph, nil
	case 3:
		return FormatArrow, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidArgument, "unknown API version %d (expected 1, 2, or 3)", v)
	}
}

// Dataset is a fully assembled wire payload. Exactly one of the payload
// fields is set, matching Format.
type Dataset struct {
	Format  Format
	Records *RecordsPayload
	VGraph  *VGraphPayload
	Arrow   *ArrowPayload

	// Warnings collects the non-fatal conditions hit while building.
	Warnings []string
}

// Build assembles a Dataset from a plotting spec and a normalized pair.
// The caller owns the result; Build keeps no reference to it.
func Build(spec plot.Spec, pair graphin.Pair, format Format) (*Dataset, error) {
	switch format {
	case FormatRecords, FormatVGraph, FormatArrow:
	default:
		return nil, errors.New(errors.ErrCodeInvalidArgument, "unknown dataset format %q", format)
	}

	// The record and legacy formats have no channel for style or complex
	// encodings; failing early avoids silently dropping visual intent.
	if format != FormatArrow {
		if !spec.Encodings.Empty() {
			return nil, errors.New(errors.ErrCodeFormatIncompatible,
				"complex encodings require the arrow format (API version 3)")
		}
		if !spec.Style.Empty() {
			return nil, errors.New(errors.ErrCodeFormatIncompatible,
				"style settings require the arrow format (API version 3)")
		}
	}

	ds := &Dataset{Format: format}
	warn := func(format string, args ...any) {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf(format, args...))
	}

	edges, nodes, err := sanitize(pair, spec.Source, spec.Destination, warn)
	if err != nil {
		return nil, err
	}
	if err := checkSize(edges.Len(), nodes.Len(), warn); err != nil {
		return nil, err
	}
	if edges.Len() == 0 {
		warn("graph has no edges, may have rendering issues")
	}

	switch format {
	case FormatRecords:
		ds.Records, err = buildRecords(spec, pair.NodeID, edges, nodes, warn)
	case FormatVGraph:
		ds.VGraph, err = buildVGraph(spec, pair.NodeID, edges, nodes, warn)
	case FormatArrow:
		ds.Arrow, err = buildArrow(spec, pair.NodeID, edges, nodes)
	}
	if err != nil {
		return nil, err
	}
	return ds, nil
}

func checkSize(edgeCount, nodeCount int, warn func(string, ...any)) error {
	if edgeCount > MaxEdges {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"maximum number of edges (8M) exceeded: %d", edgeCount)
	}
	if nodeCount > MaxNodes {
		return errors.New(errors.ErrCodeCapacityExceeded,
			"maximum number of nodes (8M) exceeded: %d", nodeCount)
	}
	if edgeCount+nodeCount > LargeGraphThreshold {
		warn("large graph: |nodes| + |edges| = %d, layout and rendering might be slow", edgeCount+nodeCount)
	}
	return nil
}
