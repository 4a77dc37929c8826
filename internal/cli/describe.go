package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/archdiagram/pkg/diagram"
	"github.com/matzehuels/archdiagram/pkg/render/nodelink"
)

// describeCommand creates the describe command, which prints a summary of
// the diagram's clusters, nodes and edges.
func (c *CLI) describeCommand() *cobra.Command {
	var source sourceOpts

	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Summarize the diagram's clusters, nodes and edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDiagram(&source)
			if err != nil {
				return err
			}
			c.describe(d)
			return nil
		},
	}

	source.register(cmd)
	return cmd
}

func (c *CLI) describe(d *diagram.Diagram) {
	w := c.Out

	title := d.Title
	if title == "" {
		title = "(untitled)"
	}
	printHeading(w, "Diagram")
	printKeyValue(w, "title", title)
	printKeyValue(w, "output", nodelink.OutputPath(d, nodelink.Options{}))
	printKeyValue(w, "direction", d.Direction)
	for _, k := range d.SortedGraphAttrs() {
		printKeyValue(w, k, d.GraphAttrs[k])
	}
	printNewline(w)

	printHeading(w, "Nodes")
	for _, el := range d.Elements() {
		if el.NodeID != "" {
			n, _ := d.Node(el.NodeID)
			printItem(w, 0, fmtNode(n))
			continue
		}
		cl, _ := d.Cluster(el.Cluster)
		printItem(w, 0, StyleHighlight.Render(cl.Name))
		for _, id := range cl.Members {
			n, _ := d.Node(id)
			printItem(w, 1, fmtNode(n))
		}
	}
	printNewline(w)

	printHeading(w, "Edges")
	for _, e := range d.Edges() {
		from, _ := d.Node(e.From)
		to, _ := d.Node(e.To)
		line := fmt.Sprintf("%s %s %s", from.Label, iconArrow, to.Label)
		if e.Labeled() {
			line += " " + styleLabel.Render(fmt.Sprintf("%q", e.Label))
		}
		printItem(w, 0, line)
	}
	printNewline(w)

	s := d.Stats()
	printStats(w, s.Nodes, s.Edges, s.Clusters)
	for _, cat := range diagram.Categories() {
		if n := s.ByCategory[cat]; n > 0 {
			printKeyValue(w, "  "+string(cat), fmt.Sprint(n))
		}
	}
}

func fmtNode(n diagram.Node) string {
	meta := fmt.Sprintf("[%s (%s), cluster: %s]", n.Category, n.Category.Provider(), clusterLabel(n))
	return StyleValue.Render(n.Label) + " " + StyleDim.Render(meta)
}
