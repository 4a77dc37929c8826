package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/internal/topology"
	"github.com/matzehuels/archdiagram/pkg/cache"
	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/errors"
	"github.com/matzehuels/archdiagram/pkg/render/nodelink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	source  sourceOpts
	output  string   // output path without extension
	formats []string // output formats: png, jpg, svg, pdf, dot
	show    bool     // open a viewer (not supported)
	cache   bool     // reuse and store rendered images in the cache directory
}

// renderCommand creates the render command for writing the diagram image.
//
// With no flags it writes ./assets/architecture.png. The output directory
// must already exist.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the architecture diagram to an image",
		Long: `Render the architecture diagram to an image.

Writes one file per requested format, named <output>.<format>. The default
output is ./assets/architecture.png. Parent directories are not created; an
unwritable output path is reported as an error and leaves no file behind.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr, nodelink.FormatPNG)
			for _, f := range opts.formats {
				if err := errors.ValidateFormat(f, nodelink.Formats); err != nil {
					return err
				}
			}
			return c.runRender(cmd.Context(), &opts)
		},
	}

	opts.source.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output path without extension (default: "+topology.Filename+")")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): png (default), jpg, svg, pdf, dot (comma-separated)")
	cmd.Flags().BoolVar(&opts.show, "show", false, "open the result in a viewer (not supported)")
	cmd.Flags().BoolVar(&opts.cache, "cache", false, "reuse rendered images from the user cache directory (writes outside the output path)")

	return cmd
}

// runRender loads the diagram and writes each requested format.
func (c *CLI) runRender(ctx context.Context, opts *renderOpts) error {
	d, err := c.loadDiagram(&opts.source)
	if err != nil {
		return err
	}
	c.Logger.Debug("Diagram ready", "nodes", d.NodeCount(), "edges", d.EdgeCount())

	var store cache.Store
	if opts.cache {
		store = c.openCache()
	}

	p := newProgress(c.Logger)
	paths := make([]string, 0, len(opts.formats))
	for _, format := range opts.formats {
		path, err := nodelink.WriteFile(ctx, d, nodelink.Options{
			Filename: opts.output,
			Format:   format,
			Show:     opts.show,
			Cache:    store,
		})
		if err != nil {
			return err
		}
		paths = append(paths, path)
	}
	p.done("Render finished", "files", len(paths))

	printSuccess(c.Out, "Diagram rendered")
	for _, path := range paths {
		printFile(c.Out, path)
	}
	printStats(c.Out, d.NodeCount(), d.EdgeCount(), len(d.Clusters()))
	return nil
}

// dotCommand creates the dot command, which prints the Graphviz source.
func (c *CLI) dotCommand() *cobra.Command {
	var source sourceOpts

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Print the Graphviz DOT source of the diagram",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDiagram(&source)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(c.Out, nodelink.ToDOT(d))
			return err
		},
	}

	source.register(cmd)
	return cmd
}

// clusterLabel returns the display name of a node's cluster.
func clusterLabel(n diagram.Node) string {
	if n.Clustered() {
		return n.Cluster
	}
	return "(none)"
}
