// Package graphin normalizes heterogeneous graph inputs into the canonical
// (edge table, node table) pair.
//
// The accepted input shapes form a closed set, resolved in a fixed order:
//
//  1. a tabular edge list (*table.Table), optionally with a separate node table
//  2. a DOT attributed graph (*gographviz.Graph)
//  3. a gonum graph (gonum.org/v1/gonum/graph.Graph)
//
// Anything else fails with an unsupported-input error naming the accepted
// shapes. New families are added as explicit cases, never as open-ended type
// probing.
package graphin
