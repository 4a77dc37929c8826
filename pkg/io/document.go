package io

import (
	"fmt"

	"github.com/matzehuels/archdiagram/pkg/diagram"
)

type document struct {
	Title      string            `json:"title" toml:"title"`
	Filename   string            `json:"filename,omitempty" toml:"filename,omitempty"`
	Direction  string            `json:"direction,omitempty" toml:"direction,omitempty"`
	OutFormat  string            `json:"outformat,omitempty" toml:"outformat,omitempty"`
	GraphAttrs map[string]string `json:"graph_attrs,omitempty" toml:"graph_attrs,omitempty"`
	Clusters   []cluster         `json:"clusters,omitempty" toml:"clusters,omitempty"`
	Nodes      []node            `json:"nodes" toml:"nodes"`
	Edges      []edge            `json:"edges" toml:"edges"`
}

type cluster struct {
	Name string `json:"name" toml:"name"`
}

type node struct {
	ID       string `json:"id" toml:"id"`
	Label    string `json:"label" toml:"label"`
	Category string `json:"category" toml:"category"`
	Cluster  string `json:"cluster,omitempty" toml:"cluster,omitempty"`
}

type edge struct {
	From  string `json:"from" toml:"from"`
	To    string `json:"to" toml:"to"`
	Label string `json:"label,omitempty" toml:"label,omitempty"`
}

// fromDiagram flattens d into a document, listing nodes in declaration order.
func fromDiagram(d *diagram.Diagram) document {
	doc := document{
		Title:      d.Title,
		Filename:   d.Filename,
		Direction:  d.Direction,
		OutFormat:  d.OutFormat,
		GraphAttrs: d.GraphAttrs,
	}
	appendNode := func(id string) {
		n, _ := d.Node(id)
		doc.Nodes = append(doc.Nodes, node{
			ID:       n.ID,
			Label:    n.Label,
			Category: string(n.Category),
			Cluster:  n.Cluster,
		})
	}
	for _, el := range d.Elements() {
		if el.NodeID != "" {
			appendNode(el.NodeID)
			continue
		}
		doc.Clusters = append(doc.Clusters, cluster{Name: el.Cluster})
		c, _ := d.Cluster(el.Cluster)
		for _, id := range c.Members {
			appendNode(id)
		}
	}
	for _, e := range d.Edges() {
		doc.Edges = append(doc.Edges, edge(e))
	}
	return doc
}

// toDiagram rebuilds a diagram from doc. Clusters are declared at the
// position of their first member; clusters without members are declared
// after all nodes. extra options are applied after the document's settings.
func (doc document) toDiagram(extra ...diagram.Option) (*diagram.Diagram, error) {
	opts := []diagram.Option{diagram.WithFilename(doc.Filename)}
	if doc.Direction != "" {
		opts = append(opts, diagram.WithDirection(doc.Direction))
	}
	if doc.OutFormat != "" {
		opts = append(opts, diagram.WithOutFormat(doc.OutFormat))
	}
	for k, v := range doc.GraphAttrs {
		opts = append(opts, diagram.WithGraphAttr(k, v))
	}
	b := diagram.New(doc.Title, append(opts, extra...)...)

	listed := make(map[string]bool, len(doc.Clusters))
	for _, c := range doc.Clusters {
		if listed[c.Name] {
			return nil, fmt.Errorf("cluster %q: %w", c.Name, diagram.ErrDuplicateCluster)
		}
		listed[c.Name] = true
	}

	declared := make(map[string]bool)
	for _, n := range doc.Nodes {
		cat, err := diagram.ParseCategory(n.Category)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
		if n.Cluster != "" && !declared[n.Cluster] {
			if !listed[n.Cluster] {
				return nil, fmt.Errorf("node %s: %w: %q", n.ID, diagram.ErrUnknownCluster, n.Cluster)
			}
			b.Cluster(n.Cluster)
			declared[n.Cluster] = true
		}
		b.AddNode(diagram.Node{ID: n.ID, Label: n.Label, Category: cat, Cluster: n.Cluster})
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("node %s: %w", n.ID, err)
		}
	}
	for _, c := range doc.Clusters {
		if !declared[c.Name] {
			b.Cluster(c.Name)
		}
	}

	for _, e := range doc.Edges {
		b.ConnectIDs(e.From, e.To, e.Label)
		if err := b.Err(); err != nil {
			return nil, fmt.Errorf("edge %s->%s: %w", e.From, e.To, err)
		}
	}
	return b.Build()
}
