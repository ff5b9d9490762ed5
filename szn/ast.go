package szn

// Attr is a key=value pair from an attribute block.
type Attr struct {
	Key   string
	Value Value
	Pos   Position
}

// Decl is a single top-level SZN statement.
type Decl interface {
	declPos() Position
}

// NodeDecl declares one or more nodes sharing an attribute block. Each
// entry in Paths is a full '>'-joined subnode path; intermediate nodes are
// created by the builder if not already declared.
type NodeDecl struct {
	Paths []string
	Attrs []Attr
	Pos   Position
}

// PortRef names a port on a node path.
type PortRef struct {
	Node string // '>'-joined node path
	Port string
	Pos  Position
}

func (r PortRef) String() string {
	return r.Node + ":" + r.Port
}

// PortDecl declares one or more ports sharing an attribute block. The node
// path of each reference is declared implicitly if new.
type PortDecl struct {
	Ports []PortRef
	Attrs []Attr
	Pos   Position
}

// EndpointRef is one side of a link declaration: a node path with an
// optional port. Unlike PortRef it is a reference, not a declaration; it is
// resolved against the built model after all statements are processed.
type EndpointRef struct {
	Node string
	Port string // empty when the endpoint names the node alone
	Pos  Position
}

func (r EndpointRef) String() string {
	if r.Port == "" {
		return r.Node
	}
	return r.Node + ":" + r.Port
}

// LinkDecl declares a link between exactly two endpoints. The attribute
// block applies to the link itself, not to either endpoint.
type LinkDecl struct {
	A, B  EndpointRef
	Attrs []Attr
	Pos   Position
}

// TargetClass identifies which entity class an injection applies to.
type TargetClass string

const (
	TargetNode TargetClass = "node"
	TargetPort TargetClass = "port"
	TargetLink TargetClass = "link"
	TargetEnv  TargetClass = "env"
)

// InjectionDecl is an attribute block targeted at a whole class of
// entities. A nil Selector means every entity of the class. Injections are
// consumed during resolution; they are not part of the published Topology.
type InjectionDecl struct {
	Target   TargetClass
	Selector *Selector
	Attrs    []Attr
	Pos      Position
}

func (d *NodeDecl) declPos() Position      { return d.Pos }
func (d *PortDecl) declPos() Position      { return d.Pos }
func (d *LinkDecl) declPos() Position      { return d.Pos }
func (d *InjectionDecl) declPos() Position { return d.Pos }
