// Package render provides output rendering for architecture diagrams.
//
// # Overview
//
// This package contains the rendering pipeline that turns a built
// [diagram.Diagram] into image files. It provides:
//
//   - SVG to PDF conversion in this package
//   - Node-link diagrams through Graphviz (in [nodelink] subpackage)
//
// # Format Conversion
//
// [ToPDF] converts any SVG to PDF using the external rsvg-convert tool
// (from librsvg). Graphviz renders SVG, PNG
// and JPG in-process; PDF goes through [ToPDF].
//
//	svg, err := nodelink.Render(ctx, dot, nodelink.FormatSVG)
//	pdf, err := render.ToPDF(ctx, svg)
//
// [diagram.Diagram]: github.com/matzehuels/archdiagram/pkg/diagram.Diagram
package render
