package szn

import (
	"sort"

	"github.com/szntools/szngo/internal/natsort"
)

// sortTopology puts the built model into its final deterministic order:
// nodes naturally by name at every subnode level independently, ports
// naturally within each node, links naturally by their endpoint tuples.
// Ordering is a presentation concern only; it runs after link resolution
// and injection and never alters semantic relationships.
func sortTopology(topo *Topology) {
	sortNodes(topo.Nodes)
	sort.SliceStable(topo.Links, func(i, j int) bool {
		return compareLinks(topo.Links[i], topo.Links[j]) < 0
	})
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return natsort.Less(nodes[i].Name, nodes[j].Name)
	})
	for _, n := range nodes {
		sort.SliceStable(n.Ports, func(i, j int) bool {
			return natsort.Less(n.Ports[i].Name, n.Ports[j].Name)
		})
		sortNodes(n.Subnodes)
	}
}

// compareLinks orders links by (A.Node, A.Port, B.Node, B.Port), each part
// compared naturally.
func compareLinks(a, b *Link) int {
	pairs := [4][2]string{
		{a.A.Node, b.A.Node},
		{a.A.Port, b.A.Port},
		{a.B.Node, b.B.Node},
		{a.B.Port, b.B.Port},
	}
	for _, p := range pairs {
		if c := natsort.Compare(p[0], p[1]); c != 0 {
			return c
		}
	}
	return 0
}
