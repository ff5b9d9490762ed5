package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/ohler55/ojg/oj"

	"github.com/szntools/szngo/szn"
)

// renderJSON writes the topology as indented JSON. Keys are sorted so the
// output is stable across runs.
func renderJSON(w io.Writer, topo *szn.Topology) error {
	out := map[string]any{
		"environment": topo.Environment.AsMap(),
		"nodes":       nodesJSON(topo.Nodes),
		"links":       linksJSON(topo.Links),
	}
	if topo.ID != "" {
		out["topology_id"] = topo.ID
	}

	s := oj.JSON(out, &oj.Options{Sort: true, Indent: 2})
	_, err := io.WriteString(w, s+"\n")
	return err
}

func nodesJSON(nodes []*szn.Node) []any {
	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		entry := map[string]any{
			"name":       n.Name,
			"path":       n.Path,
			"attributes": n.Attributes.AsMap(),
		}
		if len(n.Ports) > 0 {
			ports := make([]any, 0, len(n.Ports))
			for _, p := range n.Ports {
				ports = append(ports, map[string]any{
					"name":       p.Name,
					"attributes": p.Attributes.AsMap(),
				})
			}
			entry["ports"] = ports
		}
		if len(n.Subnodes) > 0 {
			entry["subnodes"] = nodesJSON(n.Subnodes)
		}
		out = append(out, entry)
	}
	return out
}

func linksJSON(links []*szn.Link) []any {
	out := make([]any, 0, len(links))
	for _, l := range links {
		out = append(out, map[string]any{
			"a":          l.A.String(),
			"b":          l.B.String(),
			"attributes": l.Attributes.AsMap(),
		})
	}
	return out
}

// renderText writes a human-readable tree of the topology.
func renderText(w io.Writer, topo *szn.Topology) error {
	var b strings.Builder

	if topo.ID != "" {
		fmt.Fprintf(&b, "topology %s\n", topo.ID)
	} else {
		b.WriteString("topology\n")
	}

	if topo.Environment.Len() > 0 {
		b.WriteString("  environment\n")
		writeAttrsText(&b, topo.Environment, "    ")
	}

	writeNodesText(&b, topo.Nodes, "  ")

	for _, l := range topo.Links {
		fmt.Fprintf(&b, "  link %s -- %s\n", l.A, l.B)
		writeAttrsText(&b, l.Attributes, "    ")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeNodesText(b *strings.Builder, nodes []*szn.Node, indent string) {
	for _, n := range nodes {
		fmt.Fprintf(b, "%snode %s\n", indent, n.Name)
		writeAttrsText(b, n.Attributes, indent+"  ")
		for _, p := range n.Ports {
			fmt.Fprintf(b, "%s  port %s\n", indent, p.Name)
			writeAttrsText(b, p.Attributes, indent+"    ")
		}
		writeNodesText(b, n.Subnodes, indent+"  ")
	}
}

func writeAttrsText(b *strings.Builder, attrs *szn.Attributes, indent string) {
	attrs.Each(func(key string, v szn.Value) {
		fmt.Fprintf(b, "%s%s = %s\n", indent, key, v)
	})
}
