// Package dataset turns a normalized graph pair plus a plotting spec into a
// versioned wire payload.
//
// The pipeline inside Build is fixed: sanitize the pair (drop malformed rows,
// coerce numerics, synthesize or deduplicate the node table), enforce size
// ceilings, then serialize into one of three mutually exclusive formats:
//
//   - FormatRecords: row-oriented records with wire-named feature columns
//     injected (protocol version 1)
//   - FormatVGraph: the legacy binary graph with dense integer vertex ids
//     and an encodings side table (protocol version 2)
//   - FormatArrow: columnar Arrow tables plus structured metadata, the only
//     format that carries style and complex encodings (protocol version 3)
//
// Non-fatal conditions (skipped scalar bindings, large graphs, empty edge
// sets) are collected as warnings on the produced Dataset; fatal conditions
// abort with a structured error and no partial payload.
package dataset
