package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/matzehuels/archdiagram/internal/fsutil"
)

// DefaultMaxAge is how long [Dir] serves an artifact after rendering it.
const DefaultMaxAge = 7 * 24 * time.Hour

// Dir stores each artifact as a JSON file at
// <root>/<format>/<hash[:2]>/<hash[2:]>.json.
type Dir struct {
	root   string
	maxAge time.Duration
	now    func() time.Time
}

// OpenDir returns a store rooted at root, creating the directory. Artifacts
// older than maxAge are misses; maxAge <= 0 keeps them forever.
func OpenDir(root string, maxAge time.Duration) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &Dir{root: root, maxAge: maxAge, now: time.Now}, nil
}

// Root returns the directory the store writes under.
func (d *Dir) Root() string { return d.root }

// Load reads the artifact for k. Unreadable, stale or mismatched entries are
// removed and reported as misses.
func (d *Dir) Load(_ context.Context, k Key) (Artifact, bool, error) {
	path := d.path(k)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Artifact{}, false, nil
	}
	if err != nil {
		return Artifact{}, false, err
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil || a.Format != k.Format || d.stale(a) {
		_ = os.Remove(path)
		return Artifact{}, false, nil
	}
	return a, true, nil
}

// Save writes a under k. Rendered defaults to the current time.
func (d *Dir) Save(_ context.Context, k Key, a Artifact) error {
	if a.Rendered.IsZero() {
		a.Rendered = d.now()
	}
	a.Format = k.Format
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	path := d.path(k)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return fsutil.WriteFile(path, data, 0o644)
}

func (d *Dir) stale(a Artifact) bool {
	return d.maxAge > 0 && d.now().Sub(a.Rendered) > d.maxAge
}

func (d *Dir) path(k Key) string {
	return filepath.Join(d.root, k.Format, k.Source[:2], k.Source[2:]+".json")
}

var _ Store = (*Dir)(nil)
