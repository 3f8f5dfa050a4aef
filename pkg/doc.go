// Package pkg provides the core libraries for graphport graph uploading.
//
// # Overview
//
// Graphport binds loosely typed graph data to visual roles and ships it to a
// GPU rendering service. The pkg directory is organized into four main areas:
//
//  1. [plot] - The immutable plotting configuration (bindings, encodings, style)
//  2. [graphin], [table], [dataset] - Input normalization and payload assembly
//  3. [client], [session], [httputil] - Transport to the upload service
//  4. [pipeline] - Orchestration (normalize → build → upload)
//
// # Architecture
//
// The typical data flow through graphport:
//
//	CSV / DOT / gonum graph
//	         ↓
//	    [graphin] package (normalize to an edge/node table pair)
//	         ↓
//	    [dataset] package (sanitize + serialize per protocol version)
//	         ↓
//	    [client] package (authenticate + upload)
//	         ↓
//	    browser URL of the interactive visualization
//
// # Quick Start
//
// Build and upload a graph programmatically:
//
//	p := plot.New().
//	    Edges(edges, "src", "dst").
//	    Bind(plot.Bindings{PointColor: "type"})
//
//	runner := pipeline.NewRunner(cfg, nil, logger)
//	res, err := runner.Plot(ctx, p, pipeline.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.URL)
package pkg
