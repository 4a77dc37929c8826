package nodelink

import (
	"bytes"
	"context"
	"path/filepath"
	"time"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/archdiagram/internal/fsutil"
	"github.com/matzehuels/archdiagram/pkg/cache"
	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/observability"
	"github.com/matzehuels/archdiagram/pkg/render"
)

// Output formats accepted by [Render] and [WriteFile].
const (
	FormatPNG = "png"
	FormatJPG = "jpg"
	FormatSVG = "svg"
	FormatPDF = "pdf"
	FormatDOT = "dot"
)

// Formats lists every supported output format.
var Formats = []string{FormatPNG, FormatJPG, FormatSVG, FormatPDF, FormatDOT}

var graphvizFormats = map[string]graphviz.Format{
	FormatPNG: graphviz.PNG,
	FormatJPG: graphviz.JPG,
	FormatSVG: graphviz.SVG,
}

// Options configures [WriteFile].
type Options struct {
	// Filename overrides the diagram's output path (without extension).
	Filename string
	// Format overrides the diagram's output format.
	Format string
	// Show asks for the result to be opened in a viewer. Not supported;
	// it exists so callers mirror the diagram library's option set.
	Show bool
	// Cache, when set, is consulted before rendering and filled after.
	Cache cache.Store
}

// Render turns DOT source into image bytes in the given format.
//
// png, jpg and svg are produced in-process by Graphviz. pdf is rendered to
// SVG and converted with [render.ToPDF]. dot returns the source unchanged.
func Render(ctx context.Context, dot, format string) ([]byte, error) {
	if err := errors.ValidateFormat(format, Formats); err != nil {
		return nil, err
	}
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatPDF:
		svg, err := Render(ctx, dot, FormatSVG)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphvizFormats[format], &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// OutputPath returns the file WriteFile would create for d and opts.
func OutputPath(d *diagram.Diagram, opts Options) string {
	name, format := resolve(d, opts)
	return name + "." + format
}

func resolve(d *diagram.Diagram, opts Options) (name, format string) {
	name, format = d.Filename, d.OutFormat
	if opts.Filename != "" {
		name = opts.Filename
	}
	if opts.Format != "" {
		format = opts.Format
	}
	if format == "" {
		format = diagram.DefaultOutFormat
	}
	return name, format
}

// WriteFile renders d and writes exactly one file, "<filename>.<format>".
//
// The image is produced in memory and written through a temporary file that
// is renamed into place, so a failure leaves no new file and keeps any
// earlier image at the same path. Parent directories are not created. Any failure to produce or write the file is returned as an
// [errors.ErrCodeRender] error wrapping the underlying cause, so callers can
// still test for fs.ErrNotExist or fs.ErrPermission.
func WriteFile(ctx context.Context, d *diagram.Diagram, opts Options) (string, error) {
	if opts.Show {
		return "", errors.New(errors.ErrCodeUnsupported, "show: opening a viewer is not supported")
	}
	name, format := resolve(d, opts)
	if err := errors.ValidateFormat(format, Formats); err != nil {
		return "", err
	}
	if err := errors.ValidateOutputPath(name); err != nil {
		return "", errors.Wrap(errors.ErrCodeRender, err, "invalid output path")
	}

	path := name + "." + format
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, format, path, d.NodeCount(), d.EdgeCount())
	start := time.Now()

	size, err := renderTo(ctx, d, format, path, opts.Cache)
	hooks.OnRenderComplete(ctx, format, path, size, time.Since(start), err)
	if err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

func renderTo(ctx context.Context, d *diagram.Diagram, format, path string, c cache.Store) (int, error) {
	data, err := renderCached(ctx, d, format, c)
	if err != nil {
		if errors.Is(err, errors.ErrCodeRender) {
			return 0, err
		}
		return 0, errors.Wrap(errors.ErrCodeRender, err, "render %s", format)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := writeFile(path, data); err != nil {
		return 0, errors.Wrap(errors.ErrCodeRender, err, "write %s", path)
	}
	return len(data), nil
}

// renderCached is Render with a lookup in c first. Cache failures only cost
// a re-render.
func renderCached(ctx context.Context, d *diagram.Diagram, format string, c cache.Store) ([]byte, error) {
	dot := ToDOT(d)
	if c == nil || format == FormatDOT {
		return Render(ctx, dot, format)
	}
	key := cache.KeyFor(dot, format)
	if a, ok, err := c.Load(ctx, key); err == nil && ok {
		return a.Data, nil
	}
	data, err := Render(ctx, dot, format)
	if err != nil {
		return nil, err
	}
	_ = c.Save(ctx, key, cache.Artifact{
		Format: format,
		Nodes:  d.NodeCount(),
		Edges:  d.EdgeCount(),
		Data:   data,
	})
	return data, nil
}

// writeFile replaces path with data. An existing file is kept if writing fails.
func writeFile(path string, data []byte) error {
	return fsutil.WriteFile(path, data, 0o644)
}
