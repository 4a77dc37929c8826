package diagram

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultDirection is the layout direction used when none is given.
	DefaultDirection = "LR"
	// DefaultOutFormat is the output format used when none is given.
	DefaultOutFormat = "png"
	// DefaultFilename is the output path used when the title is empty.
	DefaultFilename = "diagram"
)

// idNamespace seeds the name-based UUIDs assigned to nodes.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/archdiagram"))

// Option configures a [Builder].
type Option func(*Diagram)

// WithFilename sets the output path, without extension.
func WithFilename(path string) Option {
	return func(d *Diagram) { d.Filename = path }
}

// WithDirection sets the Graphviz rankdir (TB, BT, LR or RL).
func WithDirection(dir string) Option {
	return func(d *Diagram) { d.Direction = strings.ToUpper(dir) }
}

// WithOutFormat sets the preferred output format.
func WithOutFormat(format string) Option {
	return func(d *Diagram) { d.OutFormat = strings.ToLower(format) }
}

// WithGraphAttr sets a Graphviz graph attribute such as "splines".
// Attributes given here override the renderer's defaults.
func WithGraphAttr(key, value string) Option {
	return func(d *Diagram) { d.GraphAttrs[key] = value }
}

// Builder assembles a [Diagram].
//
// The builder is sticky on errors: after the first failure every further
// call is a no-op and [Builder.Build] returns that failure. Builder is not
// safe for concurrent use.
type Builder struct {
	d      *Diagram
	seq    int
	err    error
	frozen bool
}

// New creates a builder for a diagram with the given title (which may be
// empty). Without [WithFilename] the output path is derived from the title
// the same way for every run: lower-cased, with whitespace replaced by
// underscores.
func New(title string, opts ...Option) *Builder {
	d := &Diagram{
		Title:      title,
		Direction:  DefaultDirection,
		OutFormat:  DefaultOutFormat,
		GraphAttrs: make(map[string]string),
		index:      make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.Filename == "" {
		d.Filename = filenameFromTitle(title)
	}
	return &Builder{d: d}
}

func filenameFromTitle(title string) string {
	name := strings.ToLower(strings.Join(strings.Fields(title), "_"))
	if name == "" {
		return DefaultFilename
	}
	return name
}

// Err returns the first error recorded by the builder, if any.
func (b *Builder) Err() error { return b.err }

// Node adds a top-level node and returns it. The node's ID is derived
// deterministically from its position and label.
func (b *Builder) Node(c Category, label string) Node {
	return b.add(c, label, "")
}

// AddNode adds a node with a caller-chosen ID. n.Cluster, when set, must name
// a cluster declared earlier with [Builder.Cluster].
func (b *Builder) AddNode(n Node) Node {
	if !b.ok() {
		return Node{}
	}
	if n.Cluster != "" && b.clusterIndex(n.Cluster) < 0 {
		b.fail(fmt.Errorf("node %s: %w: %q", n.ID, ErrUnknownCluster, n.Cluster))
		return Node{}
	}
	return b.insert(n)
}

// Cluster declares a named cluster. Nodes are added to it through the
// returned [ClusterBuilder]. Cluster names must be unique.
func (b *Builder) Cluster(name string) *ClusterBuilder {
	cb := &ClusterBuilder{b: b, name: name}
	if !b.ok() {
		return cb
	}
	if name == "" {
		b.fail(fmt.Errorf("cluster: %w", ErrEmptyLabel))
		return cb
	}
	if b.clusterIndex(name) >= 0 {
		b.fail(fmt.Errorf("%w: %s", ErrDuplicateCluster, name))
		return cb
	}
	b.d.clusters = append(b.d.clusters, Cluster{Name: name})
	b.d.order = append(b.d.order, Element{Cluster: name})
	return cb
}

// Connect adds a directed edge from → to with an optional label. Both
// nodes must already be part of the diagram.
func (b *Builder) Connect(from, to Node, label string) {
	b.ConnectIDs(from.ID, to.ID, label)
}

// ConnectIDs is like [Builder.Connect] but takes node IDs.
func (b *Builder) ConnectIDs(from, to, label string) {
	if !b.ok() {
		return
	}
	if _, ok := b.d.index[from]; !ok {
		b.fail(fmt.Errorf("%w: %q", ErrUnknownSourceNode, from))
		return
	}
	if _, ok := b.d.index[to]; !ok {
		b.fail(fmt.Errorf("%w: %q", ErrUnknownTargetNode, to))
		return
	}
	b.d.edges = append(b.d.edges, Edge{From: from, To: to, Label: label})
}

// Build validates the diagram and returns it. After Build the builder is
// frozen and every further call fails with [ErrFrozen].
func (b *Builder) Build() (*Diagram, error) {
	if b.frozen {
		return nil, ErrFrozen
	}
	if b.err != nil {
		return nil, b.err
	}
	if err := b.d.Validate(); err != nil {
		b.err = err
		return nil, err
	}
	b.frozen = true
	return b.d, nil
}

// ClusterBuilder adds nodes to one cluster of a [Builder].
type ClusterBuilder struct {
	b    *Builder
	name string
}

// Name returns the cluster's name.
func (cb *ClusterBuilder) Name() string { return cb.name }

// Node adds a node to the cluster and returns it.
func (cb *ClusterBuilder) Node(c Category, label string) Node {
	return cb.b.add(c, label, cb.name)
}

func (b *Builder) ok() bool {
	if b.frozen {
		if b.err == nil {
			b.err = ErrFrozen
		}
		return false
	}
	return b.err == nil
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

func (b *Builder) add(c Category, label, cluster string) Node {
	if !b.ok() {
		return Node{}
	}
	return b.insert(Node{
		ID:       b.nextID(label),
		Label:    label,
		Category: c,
		Cluster:  cluster,
	})
}

func (b *Builder) insert(n Node) Node {
	if err := checkNode(n); err != nil {
		b.fail(err)
		return Node{}
	}
	if _, exists := b.d.index[n.ID]; exists {
		b.fail(fmt.Errorf("%w: %s", ErrDuplicateNodeID, n.ID))
		return Node{}
	}

	b.d.index[n.ID] = len(b.d.nodes)
	b.d.nodes = append(b.d.nodes, n)
	if n.Cluster == "" {
		b.d.order = append(b.d.order, Element{NodeID: n.ID})
	} else {
		i := b.clusterIndex(n.Cluster)
		b.d.clusters[i].Members = append(b.d.clusters[i].Members, n.ID)
	}
	return n
}

func (b *Builder) clusterIndex(name string) int {
	for i, c := range b.d.clusters {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// nextID returns a 32-character hex ID that is stable across runs for the
// same construction sequence.
func (b *Builder) nextID(label string) string {
	b.seq++
	name := fmt.Sprintf("%s/%d/%s", b.d.Title, b.seq, label)
	id := uuid.NewSHA1(idNamespace, []byte(name))
	return strings.ReplaceAll(id.String(), "-", "")
}
