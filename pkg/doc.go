// Package pkg provides the libraries behind archdiagram, a tool that draws
// service architecture diagrams with Graphviz.
//
// # Overview
//
// A diagram is a set of categorized nodes (load balancers, compute
// instances, databases, in-memory stores), optionally grouped into labeled
// clusters and joined by directed, optionally labeled edges. The pkg
// directory is organized into these areas:
//
//  1. [diagram] - The diagram model and its builder
//  2. [render/nodelink] - DOT generation and Graphviz rendering
//  3. [io] - TOML and JSON descriptions of diagrams
//  4. [cache] - Rendered images kept between runs when asked to
//
// # Architecture
//
// The typical data flow:
//
//	Builder calls or a .toml/.json description
//	         ↓
//	    [diagram] package (validated, read-only Diagram)
//	         ↓
//	    [render/nodelink] package (DOT source, Graphviz)
//	         ↓
//	    PNG/JPG/SVG/PDF/DOT file
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/archdiagram/pkg/diagram"
//	    "github.com/matzehuels/archdiagram/pkg/render/nodelink"
//	)
//
//	b := diagram.New("Web Service", diagram.WithFilename("./web"))
//	lb := b.Node(diagram.CategoryLoadBalancer, "lb")
//	app := b.Node(diagram.CategoryCompute, "app")
//	b.Connect(lb, app, "")
//	d, err := b.Build()
//	if err != nil {
//	    return err
//	}
//	path, err := nodelink.WriteFile(context.Background(), d, nodelink.Options{})
//
// # Main Packages
//
// [diagram] - Nodes, clusters and edges. The [diagram.Builder] records the
// first error it sees and returns it from Build, so construction code reads
// as a plain sequence of calls.
//
// [render/nodelink] - Deterministic DOT output and in-process rendering via
// the WebAssembly build of Graphviz.
//
// [render] - SVG to PDF conversion through rsvg-convert.
//
// [io] - Export and import of diagram descriptions, so a diagram can be
// edited as a file and rendered again.
//
// [cache] - Opt-in store of rendered images keyed by DOT source and format.
//
// [observability] - Render hooks for logging or metrics.
//
// [errors] - Structured errors with codes and user-facing messages.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...         # All tests
//	go test -run Example      # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/diagram
// [render]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/render/nodelink
// [io]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/archdiagram/pkg/buildinfo
package pkg
