// Package io provides JSON and TOML import and export for architecture
// diagrams.
//
// # Overview
//
// A diagram description can be written to disk, edited by hand and fed back
// to the CLI with `archdiagram render --from`. Both formats carry the same
// document: diagram settings, clusters, nodes and edges.
//
// # TOML Format
//
//	title = ""
//	filename = "./assets/architecture"
//	direction = "LR"
//	outformat = "png"
//
//	[graph_attrs]
//	splines = "spline"
//
//	[[clusters]]
//	name = "App Servers"
//
//	[[nodes]]
//	id = "lb"
//	label = "LoadBalancer"
//	category = "load-balancer"
//
//	[[nodes]]
//	id = "app-1"
//	label = "app-1"
//	category = "compute-instance"
//	cluster = "App Servers"
//
//	[[edges]]
//	from = "lb"
//	to = "app-1"
//
// The JSON form uses the same field names.
//
// # Node Fields
//
// Required:
//   - id: Unique string identifier
//   - label: Display label
//   - category: load-balancer, compute-instance, relational-database or in-memory-store
//
// Optional:
//   - cluster: Name of a cluster listed under clusters
//
// # Import
//
// Use [Import] to read a file (the format is chosen by extension), or
// [ReadJSON] / [ReadTOML] to read from any io.Reader. Unknown fields are
// rejected. Imported documents go through [diagram.Builder], so the usual
// invariants apply and violations are reported with the offending node or
// edge.
//
// # Export
//
// Use [Export] to write a file, or [WriteJSON] / [WriteTOML] to write to any
// io.Writer. Nodes are written in declaration order (cluster members
// grouped at the cluster's position), so a round trip preserves layout.
//
// [diagram.Builder]: github.com/matzehuels/archdiagram/pkg/diagram.Builder
package io
