// Package diagram provides the data model for static architecture diagrams.
//
// # Overview
//
// A [Diagram] is a purely descriptive graph: typed nodes (see [Category]),
// named clusters that group nodes for visual containment, and directed edges
// with an optional label. Nothing in this package lays out or draws the graph;
// that is left to a renderer such as pkg/render/nodelink.
//
// # Building
//
// Diagrams are assembled with a [Builder] and frozen by [Builder.Build]:
//
//	b := diagram.New("", diagram.WithFilename("./assets/architecture"))
//	lb := b.Node(diagram.CategoryLoadBalancer, "LoadBalancer")
//	apps := b.Cluster("App Servers")
//	app := apps.Node(diagram.CategoryCompute, "app-1")
//	b.Connect(lb, app, "")
//	d, err := b.Build()
//
// The builder keeps the first error it encounters and returns it from Build,
// so a construction sequence can be written straight-line without checking
// every call.
//
// # Invariants
//
// A built diagram guarantees that:
//
//   - node IDs are unique and labels are non-empty
//   - every node has a known [Category]
//   - a node belongs to at most one cluster
//   - every edge references nodes present in the diagram
//
// Cycles are allowed. Clusters carry no meaning beyond layout.
package diagram
