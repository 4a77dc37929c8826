package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/archdiagram/internal/fsutil"
	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/errors"
)

// WriteJSON encodes d as indented JSON and writes it to w.
func WriteJSON(d *diagram.Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fromDiagram(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes d as TOML and writes it to w.
func WriteTOML(d *diagram.Diagram, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(fromDiagram(d)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Write encodes d in the named format ("json" or "toml").
func Write(d *diagram.Diagram, format string, w io.Writer) error {
	switch format {
	case FormatJSON:
		return WriteJSON(d, w)
	case FormatTOML:
		return WriteTOML(d, w)
	}
	return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %s (must be json or toml)", format)
}

// Export writes d to path, choosing the format from the file extension.
// The description is encoded in full before path is replaced, so a failure
// leaves any existing file untouched. Parent directories are not created.
func Export(d *diagram.Diagram, path string) error {
	format, err := formatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(d, format, &buf); err != nil {
		return err
	}
	if err := fsutil.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Serialization formats understood by [Write] and [Import].
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

func formatFromPath(path string) (string, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported file extension %q (want .json or .toml)", ext)
	}
}
