package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/errors"
)

func TestToPDF_MissingConverter(t *testing.T) {
	orig := rsvgBinary
	rsvgBinary = "rsvg-convert-does-not-exist"
	defer func() { rsvgBinary = orig }()

	if Available() {
		t.Fatal("Available() = true for a missing binary")
	}
	_, err := ToPDF(context.Background(), []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ToPDF() error = %v, want %s", err, errors.ErrCodeUnsupported)
	}
}

func TestToPDF_Converts(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10"/></svg>`)
	pdf, err := ToPDF(context.Background(), svg)
	if err != nil {
		t.Fatalf("ToPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("ToPDF() output is not a PDF (%d bytes)", len(pdf))
	}
}
