// Package plot implements the immutable plotting configuration.
//
// A Plotter relates data columns to graph structure (source, destination,
// node identity) and to visual roles (color, size, icon, ...), accumulates
// presentation settings, and records complex encodings. Every configuration
// method returns a new Plotter derived from the receiver; the receiver is
// never mutated, so Plotter values can be shared freely across goroutines
// and reused as branch points:
//
//	g := plot.New().Bind(plot.Bindings{Source: "src", Destination: "dst"})
//	g1 := g.Bind(plot.Bindings{PointColor: "color1"})
//	g2 := g.Bind(plot.Bindings{PointColor: "color2"}) // g and g1 unaffected
//
// The terminal step is handled by the pipeline package, which turns a
// Plotter plus graph data into a versioned dataset payload.
package plot
