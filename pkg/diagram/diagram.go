package diagram

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrEmptyLabel is returned when a node or cluster is created without a name.
	ErrEmptyLabel = errors.New("label must not be empty")

	// ErrInvalidNodeID is returned when a node is added with an empty ID.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrUnknownCategory is returned for nodes whose category is not one of
	// the values listed by [Categories].
	ErrUnknownCategory = errors.New("unknown node category")

	// ErrDuplicateNodeID is returned when two nodes share an ID.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrDuplicateCluster is returned when a cluster name is declared twice.
	ErrDuplicateCluster = errors.New("duplicate cluster")

	// ErrUnknownCluster is returned when a node refers to a cluster that was
	// never declared.
	ErrUnknownCluster = errors.New("unknown cluster")

	// ErrClusterMembership is returned by [Diagram.Validate] when a node is
	// listed by more than one cluster, or by a cluster it does not name.
	ErrClusterMembership = errors.New("inconsistent cluster membership")

	// ErrUnknownSourceNode is returned when an edge starts at a node that is
	// not part of the diagram.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned when an edge ends at a node that is
	// not part of the diagram.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrInvalidDirection is returned for layout directions other than
	// TB, BT, LR and RL.
	ErrInvalidDirection = errors.New("invalid direction")

	// ErrInvalidGraphAttr is returned for graph attribute names that are not
	// plain identifiers (letters, digits and underscores, not starting with a
	// digit).
	ErrInvalidGraphAttr = errors.New("invalid graph attribute name")

	// ErrFrozen is returned when a builder is used after Build.
	ErrFrozen = errors.New("diagram already built")
)

// Node is a single labeled, categorized element of the diagram.
// Nodes are values; once added to a diagram they are never modified.
type Node struct {
	ID       string   // Unique identifier, also used as the Graphviz node name
	Label    string   // Display label
	Category Category // Kind of element
	Cluster  string   // Name of the owning cluster, "" for top-level nodes
}

// Clustered reports whether the node belongs to a cluster.
func (n Node) Clustered() bool { return n.Cluster != "" }

// Cluster is a named visual grouping of nodes. Members are node IDs in
// insertion order.
type Cluster struct {
	Name    string
	Members []string
}

// Edge is a directed connection between two nodes. Label is empty for
// unlabeled edges.
type Edge struct {
	From  string
	To    string
	Label string
}

// Labeled reports whether the edge carries a non-empty label.
func (e Edge) Labeled() bool { return e.Label != "" }

// Element is an entry in the diagram's top-level declaration order: either a
// node outside any cluster or a whole cluster. Exactly one field is set.
type Element struct {
	NodeID  string
	Cluster string
}

// Diagram is the root container of a built architecture diagram.
//
// The zero value is an empty, valid diagram, but diagrams are normally
// obtained from [Builder.Build]. A Diagram is read-only; accessors return
// copies.
type Diagram struct {
	Title      string            // Diagram title, may be empty
	Filename   string            // Output path without extension
	Direction  string            // Graphviz rankdir (TB, BT, LR, RL)
	OutFormat  string            // Preferred output format (png, svg, ...)
	GraphAttrs map[string]string // Extra Graphviz graph attributes (e.g. splines)

	nodes    []Node
	index    map[string]int
	clusters []Cluster
	edges    []Edge
	order    []Element
}

// Nodes returns all nodes in insertion order.
func (d *Diagram) Nodes() []Node { return slices.Clone(d.nodes) }

// Edges returns all edges in insertion order.
func (d *Diagram) Edges() []Edge { return slices.Clone(d.edges) }

// Clusters returns all clusters in declaration order.
func (d *Diagram) Clusters() []Cluster {
	out := make([]Cluster, len(d.clusters))
	for i, c := range d.clusters {
		out[i] = Cluster{Name: c.Name, Members: slices.Clone(c.Members)}
	}
	return out
}

// Elements returns the top-level declaration order of nodes and clusters.
func (d *Diagram) Elements() []Element { return slices.Clone(d.order) }

// NodeCount returns the number of nodes in the diagram.
func (d *Diagram) NodeCount() int { return len(d.nodes) }

// EdgeCount returns the number of edges in the diagram.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Node returns the node with the given ID and true, or a zero Node and false.
func (d *Diagram) Node(id string) (Node, bool) {
	i, ok := d.index[id]
	if !ok {
		return Node{}, false
	}
	return d.nodes[i], true
}

// NodeByLabel returns the first node with the given label.
func (d *Diagram) NodeByLabel(label string) (Node, bool) {
	for _, n := range d.nodes {
		if n.Label == label {
			return n, true
		}
	}
	return Node{}, false
}

// Cluster returns the cluster with the given name.
func (d *Diagram) Cluster(name string) (Cluster, bool) {
	for _, c := range d.clusters {
		if c.Name == name {
			return Cluster{Name: c.Name, Members: slices.Clone(c.Members)}, true
		}
	}
	return Cluster{}, false
}

// ClusterOf returns the name of the cluster containing the node, or "" if
// the node is top-level or unknown.
func (d *Diagram) ClusterOf(id string) string {
	n, ok := d.Node(id)
	if !ok {
		return ""
	}
	return n.Cluster
}

// LabeledEdges returns the edges that carry a label.
func (d *Diagram) LabeledEdges() []Edge {
	var out []Edge
	for _, e := range d.edges {
		if e.Labeled() {
			out = append(out, e)
		}
	}
	return out
}

// Stats summarizes a diagram's size.
type Stats struct {
	Nodes        int
	Edges        int
	Clusters     int
	LabeledEdges int
	ByCategory   map[Category]int
}

// Stats returns node, edge and cluster counts for the diagram.
func (d *Diagram) Stats() Stats {
	s := Stats{
		Nodes:        len(d.nodes),
		Edges:        len(d.edges),
		Clusters:     len(d.clusters),
		LabeledEdges: len(d.LabeledEdges()),
		ByCategory:   make(map[Category]int),
	}
	for _, n := range d.nodes {
		s.ByCategory[n.Category]++
	}
	return s
}

// SortedGraphAttrs returns the graph attribute keys in lexical order.
func (d *Diagram) SortedGraphAttrs() []string {
	return slices.Sorted(maps.Keys(d.GraphAttrs))
}

// Validate checks the structural invariants of the diagram. It returns the
// first violation found, wrapping one of the package's sentinel errors.
func (d *Diagram) Validate() error {
	seen := make(map[string]bool, len(d.nodes))
	for _, n := range d.nodes {
		if err := checkNode(n); err != nil {
			return err
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID)
		}
		seen[n.ID] = true
	}

	owner := make(map[string]string)
	names := make(map[string]bool, len(d.clusters))
	for _, c := range d.clusters {
		if c.Name == "" {
			return fmt.Errorf("cluster: %w", ErrEmptyLabel)
		}
		if names[c.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateCluster, c.Name)
		}
		names[c.Name] = true
		for _, id := range c.Members {
			if prev, ok := owner[id]; ok {
				return fmt.Errorf("%w: %s in %q and %q", ErrClusterMembership, id, prev, c.Name)
			}
			owner[id] = c.Name
			n, ok := d.Node(id)
			if !ok || n.Cluster != c.Name {
				return fmt.Errorf("%w: %s listed by %q", ErrClusterMembership, id, c.Name)
			}
		}
	}
	for _, n := range d.nodes {
		if n.Cluster != "" && owner[n.ID] != n.Cluster {
			return fmt.Errorf("%w: %s names %q", ErrUnknownCluster, n.ID, n.Cluster)
		}
	}

	for _, e := range d.edges {
		if !seen[e.From] {
			return fmt.Errorf("%w: %s", ErrUnknownSourceNode, e.From)
		}
		if !seen[e.To] {
			return fmt.Errorf("%w: %s", ErrUnknownTargetNode, e.To)
		}
	}

	for _, k := range d.SortedGraphAttrs() {
		if !validAttrName(k) {
			return fmt.Errorf("%w: %q", ErrInvalidGraphAttr, k)
		}
	}

	if d.Direction != "" && !validDirection(d.Direction) {
		return fmt.Errorf("%w: %q", ErrInvalidDirection, d.Direction)
	}
	return nil
}

func checkNode(n Node) error {
	if n.ID == "" {
		return ErrInvalidNodeID
	}
	if n.Label == "" {
		return fmt.Errorf("node %s: %w", n.ID, ErrEmptyLabel)
	}
	if !n.Category.Valid() {
		return fmt.Errorf("node %s: %w: %q", n.ID, ErrUnknownCategory, n.Category)
	}
	return nil
}

func validDirection(dir string) bool {
	switch dir {
	case "TB", "BT", "LR", "RL":
		return true
	}
	return false
}

func validAttrName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
