package nodelink

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/matzehuels/archdiagram/pkg/diagram"
)

// Graph, node and edge defaults, matching the look of the Python
// "diagrams" package.
var (
	defaultGraphAttrs = map[string]string{
		"pad":       "2.0",
		"splines":   "ortho",
		"nodesep":   "0.60",
		"ranksep":   "0.75",
		"fontname":  "Sans-Serif",
		"fontsize":  "15",
		"fontcolor": "#2D3436",
	}

	defaultNodeAttrs = map[string]string{
		"shape":     "box",
		"style":     "rounded",
		"fontname":  "Sans-Serif",
		"fontsize":  "13",
		"fontcolor": "#2D3436",
		"width":     "1.4",
		"height":    "1.0",
	}

	defaultEdgeAttrs = map[string]string{
		"color":    "#7B8894",
		"fontname": "Sans-Serif",
		"fontsize": "13",
	}

	clusterAttrs = map[string]string{
		"style":     "rounded",
		"labeljust": "l",
		"pencolor":  "#AEB6BE",
		"fontname":  "Sans-Serif",
		"fontsize":  "12",
		"bgcolor":   "#E5F5FD",
	}
)

// nodeStyle is the Graphviz styling used in place of a category icon.
type nodeStyle struct {
	shape     string
	fillcolor string
	fontcolor string
}

var categoryStyles = map[diagram.Category]nodeStyle{
	diagram.CategoryLoadBalancer: {shape: "hexagon", fillcolor: "#8C4FFF", fontcolor: "white"},
	diagram.CategoryCompute:      {shape: "box", fillcolor: "#00ADD8", fontcolor: "white"},
	diagram.CategoryDatabase:     {shape: "cylinder", fillcolor: "#3B48CC", fontcolor: "white"},
	diagram.CategoryInMemory:     {shape: "box3d", fillcolor: "#D82C20", fontcolor: "white"},
}

// ToDOT converts a diagram to Graphviz DOT source.
//
// Nodes and clusters are emitted in the diagram's declaration order, and
// attributes are sorted, so the same diagram always yields the same text.
// Graph attributes set on the diagram override the defaults above.
func ToDOT(d *diagram.Diagram) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")

	graph := maps.Clone(defaultGraphAttrs)
	maps.Copy(graph, d.GraphAttrs)
	graph["label"] = d.Title
	graph["rankdir"] = direction(d)
	for _, k := range slices.Sorted(maps.Keys(graph)) {
		fmt.Fprintf(&buf, "  %s=%s;\n", k, quote(graph[k]))
	}
	fmt.Fprintf(&buf, "  node [%s];\n", fmtAttrMap(defaultNodeAttrs))
	fmt.Fprintf(&buf, "  edge [%s];\n", fmtAttrMap(defaultEdgeAttrs))
	buf.WriteString("\n")

	clusterNo := 0
	for _, el := range d.Elements() {
		if el.NodeID != "" {
			n, _ := d.Node(el.NodeID)
			writeNode(&buf, "  ", n)
			continue
		}
		c, _ := d.Cluster(el.Cluster)
		fmt.Fprintf(&buf, "  subgraph %s {\n", quote(fmt.Sprintf("cluster_%d", clusterNo)))
		clusterNo++
		attrs := maps.Clone(clusterAttrs)
		attrs["label"] = c.Name
		for _, k := range slices.Sorted(maps.Keys(attrs)) {
			fmt.Fprintf(&buf, "    %s=%s;\n", k, quote(attrs[k]))
		}
		for _, id := range c.Members {
			n, _ := d.Node(id)
			writeNode(&buf, "    ", n)
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, e := range d.Edges() {
		fmt.Fprintf(&buf, "  %s -> %s", quote(e.From), quote(e.To))
		if e.Labeled() {
			fmt.Fprintf(&buf, " [label=%s]", quote(e.Label))
		}
		buf.WriteString(";\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, indent string, n diagram.Node) {
	fmt.Fprintf(buf, "%s%s [%s];\n", indent, quote(n.ID), strings.Join(fmtAttrs(n), ", "))
}

func fmtAttrs(n diagram.Node) []string {
	attrs := []string{"label=" + quote(n.Label)}
	if s, ok := categoryStyles[n.Category]; ok {
		attrs = append(attrs,
			"shape="+quote(s.shape),
			"style="+quote("rounded,filled"),
			"fillcolor="+quote(s.fillcolor),
			"fontcolor="+quote(s.fontcolor),
		)
	}
	return attrs
}

func fmtAttrMap(m map[string]string) string {
	parts := make([]string, 0, len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		parts = append(parts, k+"="+quote(m[k]))
	}
	return strings.Join(parts, ", ")
}

func direction(d *diagram.Diagram) string {
	if d.Direction == "" {
		return diagram.DefaultDirection
	}
	return d.Direction
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

// quote returns s as a double-quoted DOT string.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
