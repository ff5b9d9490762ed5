package szn

import "github.com/szntools/szngo/internal/addr"

// Topology is the result of parsing an SZN document. It exclusively owns
// its nodes and links; once Parse returns, the model is read-only.
type Topology struct {
	// ID is the value of the reserved `topology_id` environment attribute,
	// or empty if the document does not set one.
	ID string

	// Environment holds the attributes of env-targeted injections. They are
	// not merged into any entity; consumers read them separately.
	Environment *Attributes

	Nodes []*Node // top-level nodes, natural order
	Links []*Link // natural order by endpoints
}

// Node is a network node. Subnodes form a tree under each top-level node;
// identifiers are unique within their immediate scope.
type Node struct {
	Name       string // identifier within the parent scope
	Path       string // full '>'-joined path from the top level
	Attributes *Attributes
	Subnodes   []*Node
	Ports      []*Port
	Pos        Position

	parent *Node
}

// Port is a named attachment point on a node.
type Port struct {
	Name       string
	Attributes *Attributes
	Node       *Node // owning node, for diagnostics and injection targeting
	Pos        Position
}

// Endpoint is a link's reference to a node, or to a port on a node. It does
// not own what it references.
type Endpoint struct {
	Node string // full node path
	Port string // empty when the link attaches to the node itself
	Pos  Position
}

func (e Endpoint) String() string {
	return addr.Address{Node: e.Node, Port: e.Port}.String()
}

// Link connects two endpoints. Both endpoints are resolved against the
// node and port namespaces after the whole document is built.
type Link struct {
	A, B       Endpoint
	Attributes *Attributes
	Pos        Position
}

// endpointKey is the canonical identity of a link, used by injection
// selectors and ordering.
func (l *Link) endpointKey() string {
	return l.A.String() + " -- " + l.B.String()
}

// Parent returns the node's parent, or nil for a top-level node.
func (n *Node) Parent() *Node { return n.parent }

// Subnode returns the direct subnode with the given name, or nil.
func (n *Node) Subnode(name string) *Node {
	for _, s := range n.Subnodes {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Port returns the node's port with the given name, or nil.
func (n *Node) Port(name string) *Port {
	for _, p := range n.Ports {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// NodeByPath returns the node addressed by a '>'-joined path, or nil.
func (t *Topology) NodeByPath(path string) *Node {
	segments, err := addr.ParsePath(path)
	if err != nil {
		return nil
	}

	var current *Node
	scope := t.Nodes
	for _, name := range segments {
		current = nil
		for _, n := range scope {
			if n.Name == name {
				current = n
				break
			}
		}
		if current == nil {
			return nil
		}
		scope = current.Subnodes
	}
	return current
}

// AllNodes returns every node in the topology, including subnodes at all
// depths, in depth-first declaration order.
func (t *Topology) AllNodes() []*Node {
	var out []*Node
	var walk func(nodes []*Node)
	walk = func(nodes []*Node) {
		for _, n := range nodes {
			out = append(out, n)
			walk(n.Subnodes)
		}
	}
	walk(t.Nodes)
	return out
}

// AllPorts returns every port of every node in the topology.
func (t *Topology) AllPorts() []*Port {
	var out []*Port
	for _, n := range t.AllNodes() {
		out = append(out, n.Ports...)
	}
	return out
}
