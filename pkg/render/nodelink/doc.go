// Package nodelink renders architecture diagrams as node-link images.
//
// # Overview
//
// This package is the bridge between a [diagram.Diagram] and Graphviz. A
// diagram is first converted to DOT source with [ToDOT]; Graphviz then lays
// out and rasterizes it in-process through [github.com/goccy/go-graphviz].
//
//	dot := nodelink.ToDOT(d)
//	png, err := nodelink.Render(ctx, dot, nodelink.FormatPNG)
//
// [WriteFile] does both steps and writes exactly one file:
//
//	path, err := nodelink.WriteFile(ctx, d, nodelink.Options{})
//	// path == d.Filename + ".png"
//
// # Styling
//
// The graph, cluster and edge defaults follow the Python "diagrams" package
// (left-to-right layout, rounded clusters on a light blue background, grey
// edges). Icons are replaced by a shape and fill colour per category:
//
//   - load-balancer: purple hexagon
//   - compute-instance: Go-blue rounded box
//   - relational-database: blue cylinder
//   - in-memory-store: red 3D box
//
// Graph attributes set on the diagram (for example splines=spline) take
// precedence over the defaults.
//
// # Formats
//
// png, jpg and svg are rendered by Graphviz. pdf additionally requires
// librsvg (rsvg-convert). dot writes the DOT source itself.
//
// [diagram.Diagram]: github.com/matzehuels/archdiagram/pkg/diagram.Diagram
package nodelink
