// Package cache keeps rendered diagram images between runs.
//
// An [Artifact] is the output of rendering one DOT source in one format. It
// is addressed by a [Key] derived from that source, so any change to the
// diagram (a node, a label, a graph attribute) produces a new key and the
// old artifact is simply never read again.
//
// Caching is opt-in. [Disabled] is the zero-cost default and [Dir] stores
// artifacts on disk.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Key addresses one rendered artifact.
type Key struct {
	Format string // output format, e.g. "svg"
	Source string // hex SHA-256 of the DOT source
}

// KeyFor returns the key for dot rendered to format.
func KeyFor(dot, format string) Key {
	sum := sha256.Sum256([]byte(dot))
	return Key{Format: format, Source: hex.EncodeToString(sum[:])}
}

// String returns the key as "<format>:<source hash>".
func (k Key) String() string { return k.Format + ":" + k.Source }

// Artifact is a rendered image together with the size of the diagram it
// was rendered from.
type Artifact struct {
	Format   string    `json:"format"`
	Nodes    int       `json:"nodes"`
	Edges    int       `json:"edges"`
	Rendered time.Time `json:"rendered"`
	Data     []byte    `json:"data"`
}

// Store holds artifacts by key.
type Store interface {
	// Load returns the artifact for k and true, or false on a miss.
	Load(ctx context.Context, k Key) (Artifact, bool, error)
	// Save records a for k.
	Save(ctx context.Context, k Key, a Artifact) error
}

// Disabled is a Store that never holds anything.
type Disabled struct{}

func (Disabled) Load(context.Context, Key) (Artifact, bool, error) { return Artifact{}, false, nil }
func (Disabled) Save(context.Context, Key, Artifact) error         { return nil }

var _ Store = Disabled{}
