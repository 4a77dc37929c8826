package io

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/errors"
)

func sample(t *testing.T) *diagram.Diagram {
	t.Helper()
	b := diagram.New("Shop",
		diagram.WithFilename("out/shop"),
		diagram.WithGraphAttr("splines", "spline"),
	)
	lb := b.Node(diagram.CategoryLoadBalancer, "lb")
	web := b.Cluster("Web")
	w1 := web.Node(diagram.CategoryCompute, "web-1")
	web.Node(diagram.CategoryCompute, "web-2")
	db := b.Node(diagram.CategoryDatabase, "db")
	b.Connect(lb, w1, "")
	b.Connect(w1, db, "orders")

	d, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return d
}

func assertEquivalent(t *testing.T, got, want *diagram.Diagram) {
	t.Helper()
	if got.Title != want.Title || got.Filename != want.Filename || got.Direction != want.Direction || got.OutFormat != want.OutFormat {
		t.Errorf("settings = %q/%q/%q/%q, want %q/%q/%q/%q",
			got.Title, got.Filename, got.Direction, got.OutFormat,
			want.Title, want.Filename, want.Direction, want.OutFormat)
	}
	if got.GraphAttrs["splines"] != want.GraphAttrs["splines"] {
		t.Errorf("splines = %q, want %q", got.GraphAttrs["splines"], want.GraphAttrs["splines"])
	}

	gn, wn := got.Nodes(), want.Nodes()
	if len(gn) != len(wn) {
		t.Fatalf("len(Nodes()) = %d, want %d", len(gn), len(wn))
	}
	for i := range wn {
		if gn[i] != wn[i] {
			t.Errorf("node %d = %+v, want %+v", i, gn[i], wn[i])
		}
	}

	ge, we := got.Edges(), want.Edges()
	if len(ge) != len(we) {
		t.Fatalf("len(Edges()) = %d, want %d", len(ge), len(we))
	}
	for i := range we {
		if ge[i] != we[i] {
			t.Errorf("edge %d = %+v, want %+v", i, ge[i], we[i])
		}
	}

	gel, wel := got.Elements(), want.Elements()
	if len(gel) != len(wel) {
		t.Fatalf("len(Elements()) = %d, want %d", len(gel), len(wel))
	}
	for i := range wel {
		if gel[i] != wel[i] {
			t.Errorf("element %d = %+v, want %+v", i, gel[i], wel[i])
		}
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := sample(t)
	var buf bytes.Buffer
	if err := WriteJSON(want, &buf); err != nil {
		t.Fatalf("WriteJSON() error: %v", err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	assertEquivalent(t, got, want)
}

func TestTOMLRoundTrip(t *testing.T) {
	want := sample(t)
	var buf bytes.Buffer
	if err := WriteTOML(want, &buf); err != nil {
		t.Fatalf("WriteTOML() error: %v", err)
	}
	if !strings.Contains(buf.String(), "[[nodes]]") {
		t.Errorf("WriteTOML() output missing [[nodes]] tables:\n%s", buf.String())
	}
	got, err := ReadTOML(&buf)
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	assertEquivalent(t, got, want)
}

func TestReadTOML_HandWritten(t *testing.T) {
	src := `
title = "Hand"
filename = "hand"

[graph_attrs]
splines = "spline"

[[clusters]]
name = "Workers"

[[nodes]]
id = "q"
label = "Redis"
category = "in-memory-store"

[[nodes]]
id = "w"
label = "worker"
category = "compute-instance"
cluster = "Workers"

[[edges]]
from = "q"
to = "w"
label = "jobs"
`
	d, err := ReadTOML(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	if d.NodeCount() != 2 || d.EdgeCount() != 1 {
		t.Errorf("counts = %d nodes, %d edges, want 2, 1", d.NodeCount(), d.EdgeCount())
	}
	if d.ClusterOf("w") != "Workers" {
		t.Errorf("ClusterOf(w) = %q, want Workers", d.ClusterOf("w"))
	}
	if d.Direction != diagram.DefaultDirection {
		t.Errorf("Direction = %q, want default %q", d.Direction, diagram.DefaultDirection)
	}
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want error
	}{
		{
			name: "unknown category",
			json: `{"nodes":[{"id":"a","label":"a","category":"toaster"}],"edges":[]}`,
			want: diagram.ErrUnknownCategory,
		},
		{
			name: "duplicate id",
			json: `{"nodes":[{"id":"a","label":"a","category":"compute-instance"},{"id":"a","label":"b","category":"compute-instance"}],"edges":[]}`,
			want: diagram.ErrDuplicateNodeID,
		},
		{
			name: "dangling edge",
			json: `{"nodes":[{"id":"a","label":"a","category":"compute-instance"}],"edges":[{"from":"a","to":"b"}]}`,
			want: diagram.ErrUnknownTargetNode,
		},
		{
			name: "undeclared cluster",
			json: `{"nodes":[{"id":"a","label":"a","category":"compute-instance","cluster":"X"}],"edges":[]}`,
			want: diagram.ErrUnknownCluster,
		},
		{
			name: "duplicate cluster",
			json: `{"clusters":[{"name":"X"},{"name":"X"}],"nodes":[],"edges":[]}`,
			want: diagram.ErrDuplicateCluster,
		},
		{
			name: "graph attribute with space",
			json: `{"graph_attrs":{"font size":"12"},"nodes":[],"edges":[]}`,
			want: diagram.ErrInvalidGraphAttr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.json))
			if !stderrors.Is(err, tt.want) {
				t.Errorf("ReadJSON() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReadJSON_UnknownField(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"nodes":[],"edges":[],"icons":true}`))
	if err == nil {
		t.Error("ReadJSON() accepted an unknown field")
	}
}

func TestReadTOML_UnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("title = \"x\"\nshow = true\nnodes = []\nedges = []\n"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ReadTOML() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestExportImport(t *testing.T) {
	dir := t.TempDir()
	want := sample(t)

	for _, name := range []string{"shop.json", "shop.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := Export(want, path); err != nil {
				t.Fatalf("Export() error: %v", err)
			}
			got, err := Import(path)
			if err != nil {
				t.Fatalf("Import() error: %v", err)
			}
			assertEquivalent(t, got, want)
		})
	}
}

func TestExport_Failures(t *testing.T) {
	dir := t.TempDir()
	d := sample(t)

	err := Export(d, filepath.Join(dir, "missing", "shop.toml"))
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("Export(missing dir) error = %v, want fs.ErrNotExist", err)
	}

	path := filepath.Join(dir, "shop.json")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Export(d, filepath.Join(dir, "shop.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Export(yaml) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
	if err := Export(d, path); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only shop.json", len(entries))
	}
	if got, err := Import(path); err != nil {
		t.Errorf("Import() after overwrite error: %v", err)
	} else {
		assertEquivalent(t, got, d)
	}
}

func TestImport_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Import(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Import(missing) error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
	if _, err := Import(filepath.Join(dir, "diagram.yaml")); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Import(yaml) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"nodes":[{"id":"a","label":"","category":"compute-instance"}],"edges":[]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Import(bad)
	if !errors.Is(err, errors.ErrCodeInvalidDiagram) {
		t.Errorf("Import(bad) error = %v, want %s", err, errors.ErrCodeInvalidDiagram)
	}
	if !stderrors.Is(err, diagram.ErrEmptyLabel) {
		t.Errorf("Import(bad) error = %v, want it to wrap ErrEmptyLabel", err)
	}
}

func TestWrite_InvalidFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(sample(t), "yaml", &buf); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Write(yaml) error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}
