package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/errors"
)

// ReadJSON decodes a JSON diagram description from r.
//
// Unknown fields are rejected. The decoded document is rebuilt through
// [diagram.Builder]; invariant violations are returned wrapped with the
// offending node or edge, and remain matchable with the diagram package's
// sentinel errors. Options in opts override the document's settings.
// ReadJSON does not close r.
func ReadJSON(r io.Reader, opts ...diagram.Option) (*diagram.Diagram, error) {
	var doc document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return doc.toDiagram(opts...)
}

// ReadTOML decodes a TOML diagram description from r. It follows the same
// rules as [ReadJSON].
func ReadTOML(r io.Reader, opts ...diagram.Option) (*diagram.Diagram, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		slices.Sort(keys)
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(keys, ", "))
	}
	return doc.toDiagram(opts...)
}

// Import reads the diagram description at path. Files ending in .json are
// decoded with [ReadJSON], files ending in .toml with [ReadTOML].
func Import(path string, opts ...diagram.Option) (*diagram.Diagram, error) {
	format, err := formatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var d *diagram.Diagram
	if format == FormatJSON {
		d, err = ReadJSON(f, opts...)
	} else {
		d, err = ReadTOML(f, opts...)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDiagram, err, "import %s", path)
	}
	return d, nil
}
