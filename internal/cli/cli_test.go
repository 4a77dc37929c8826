package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/archdiagram/pkg/cache"
	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/errors"
)

// run executes the root command with args and returns stdout and the error.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	c := New(&out, &logs, LogDebug)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetErr(&logs)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	c := New(&bytes.Buffer{}, &bytes.Buffer{}, LogInfo)
	root := c.RootCommand()

	want := []string{"render", "dot", "describe", "export", "completion"}
	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestSetLogLevel(t *testing.T) {
	var logs bytes.Buffer
	c := New(&bytes.Buffer{}, &logs, LogInfo)

	c.Logger.Debug("hidden")
	if logs.Len() != 0 {
		t.Fatalf("debug output at info level: %q", logs.String())
	}
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")
	if !strings.Contains(logs.String(), "shown") {
		t.Errorf("debug output missing after SetLogLevel: %q", logs.String())
	}
}

func TestRender_WritesFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "architecture")

	out, err := run(t, "render", "-o", base, "-f", "svg,dot")
	if err != nil {
		t.Fatalf("render error: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("directory has %d entries, want 2", len(entries))
	}
	for _, ext := range []string{".svg", ".dot"} {
		if _, err := os.Stat(base + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
		if !strings.Contains(out, base+ext) {
			t.Errorf("output does not mention %s", base+ext)
		}
	}
	if !strings.Contains(out, "8 nodes") || !strings.Contains(out, "5 edges") {
		t.Errorf("output missing stats: %q", out)
	}
}

func TestRender_NoFilesOutsideOutput(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	for _, cmd := range [][]string{
		{"render", "-o", filepath.Join(dir, "architecture"), "-f", "svg"},
		{"dot"},
		{"describe"},
	} {
		if _, err := run(t, cmd...); err != nil {
			t.Fatalf("%v error: %v", cmd, err)
		}
	}

	if entries, _ := os.ReadDir(cacheHome); len(entries) != 0 {
		t.Errorf("cache home has %d entries, want 0", len(entries))
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "architecture.svg" {
		t.Errorf("output directory = %v, want only architecture.svg", entries)
	}
}

func TestRender_Cache(t *testing.T) {
	ctx := context.Background()
	cacheDir := filepath.Join(t.TempDir(), "cache")
	base := filepath.Join(t.TempDir(), "architecture")

	render := func(args ...string) {
		t.Helper()
		c := New(&bytes.Buffer{}, &bytes.Buffer{}, LogInfo)
		c.CacheDir = cacheDir
		root := c.RootCommand()
		root.SetArgs(append([]string{"render", "-o", base, "-f", "svg"}, args...))
		if err := root.ExecuteContext(ctx); err != nil {
			t.Fatalf("render error: %v", err)
		}
	}

	render()
	if _, err := os.Stat(cacheDir); !os.IsNotExist(err) {
		t.Fatalf("render without --cache touched the cache directory: %v", err)
	}

	render("--cache")
	store, err := cache.OpenDir(cacheDir, 0)
	if err != nil {
		t.Fatal(err)
	}
	dot, err := run(t, "dot")
	if err != nil {
		t.Fatal(err)
	}
	a, ok, err := store.Load(ctx, cache.KeyFor(dot, "svg"))
	if err != nil || !ok {
		t.Fatalf("render --cache did not store the artifact: ok=%v err=%v", ok, err)
	}
	if a.Nodes != 8 || a.Edges != 5 {
		t.Errorf("artifact counts = %d/%d, want 8/5", a.Nodes, a.Edges)
	}
}

func TestRender_MissingDirectory(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "render", "-o", filepath.Join(dir, "assets", "architecture"), "-f", "dot")
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("render error = %v, want %s", err, errors.ErrCodeRender)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("directory has %d entries after failure, want 0", len(entries))
	}
}

func TestRender_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"bad format", []string{"render", "-f", "gif"}, errors.ErrCodeInvalidFormat},
		{"bad direction", []string{"render", "--direction", "up"}, errors.ErrCodeInvalidDirection},
		{"show", []string{"render", "--show", "-o", "x", "-f", "dot"}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDot(t *testing.T) {
	out, err := run(t, "dot", "--direction", "TB")
	if err != nil {
		t.Fatalf("dot error: %v", err)
	}
	for _, want := range []string{"digraph G {", `rankdir="TB";`, `splines="spline";`, `label="Read/Write URLs"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dot output missing %q", want)
		}
	}
}

func TestFmtNode(t *testing.T) {
	got := fmtNode(diagram.Node{ID: "x", Label: "Postgres", Category: diagram.CategoryDatabase})
	for _, want := range []string{"Postgres", "relational-database (aws/database)", "cluster: (none)"} {
		if !strings.Contains(got, want) {
			t.Errorf("fmtNode() = %q, missing %q", got, want)
		}
	}
}

func TestDescribe(t *testing.T) {
	out, err := run(t, "describe")
	if err != nil {
		t.Fatalf("describe error: %v", err)
	}
	for _, want := range []string{
		"App Servers", "Queue workers", "LoadBalancer", "click-tracker-3",
		"Queue click for storage", "./assets/architecture.png", "8 nodes",
		"load-balancer (aws/network)", "in-memory-store (onprem/inmemory)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("describe output missing %q", want)
		}
	}
}

func TestExport_RoundTripThroughFrom(t *testing.T) {
	dir := t.TempDir()
	desc := filepath.Join(dir, "arch.toml")

	if _, err := run(t, "export", "-o", desc); err != nil {
		t.Fatalf("export error: %v", err)
	}

	original, err := run(t, "dot")
	if err != nil {
		t.Fatalf("dot error: %v", err)
	}
	imported, err := run(t, "dot", "--from", desc)
	if err != nil {
		t.Fatalf("dot --from error: %v", err)
	}
	if imported != original {
		t.Error("DOT from exported description differs from built-in diagram")
	}
}

func TestExport_Stdout(t *testing.T) {
	out, err := run(t, "export", "-f", "json")
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if !strings.Contains(out, `"category": "in-memory-store"`) {
		t.Errorf("json export missing in-memory-store node: %s", out)
	}

	if _, err := run(t, "export", "-f", "yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("export -f yaml error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestFrom_MissingFile(t *testing.T) {
	_, err := run(t, "describe", "--from", filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("describe --from error = %v, want %s", err, errors.ErrCodeFileNotFound)
	}
}

func TestCompletion(t *testing.T) {
	out, err := run(t, "completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "archdiagram") {
		t.Error("bash completion does not mention archdiagram")
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults", "", []string{"png"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "svg,png,dot", []string{"svg", "png", "dot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input, "png")
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
