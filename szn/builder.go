package szn

import (
	"fmt"
	"strings"

	"github.com/szntools/szngo/internal/addr"
)

// build walks the declarations in source order and materializes the entity
// graph. Link endpoints are resolved only after every declaration has been
// processed, so forward references within a document are legal. Injections
// are returned for the subsequent resolution pass.
func build(decls []Decl) (*Topology, []*InjectionDecl, error) {
	b := &builder{
		topo:  &Topology{Environment: NewAttributes()},
		nodes: make(map[string]*Node),
	}

	for _, decl := range decls {
		if err := b.add(decl); err != nil {
			return nil, nil, err
		}
	}

	if err := b.resolveEndpoints(); err != nil {
		return nil, nil, err
	}
	return b.topo, b.injections, nil
}

type builder struct {
	topo       *Topology
	nodes      map[string]*Node // full path -> node
	injections []*InjectionDecl
}

func (b *builder) add(decl Decl) error {
	switch d := decl.(type) {
	case *NodeDecl:
		for _, path := range d.Paths {
			node, err := b.ensureNodePath(path, d.Pos)
			if err != nil {
				return err
			}
			mergeAttrs(node.Attributes, d.Attrs)
		}
		return nil

	case *PortDecl:
		for _, ref := range d.Ports {
			node, err := b.ensureNodePath(ref.Node, ref.Pos)
			if err != nil {
				return err
			}
			port := node.Port(ref.Port)
			if port == nil {
				port = &Port{
					Name:       ref.Port,
					Attributes: NewAttributes(),
					Node:       node,
					Pos:        ref.Pos,
				}
				node.Ports = append(node.Ports, port)
			}
			mergeAttrs(port.Attributes, d.Attrs)
		}
		return nil

	case *LinkDecl:
		link := &Link{
			A:          Endpoint{Node: d.A.Node, Port: d.A.Port, Pos: d.A.Pos},
			B:          Endpoint{Node: d.B.Node, Port: d.B.Port, Pos: d.B.Pos},
			Attributes: NewAttributes(),
			Pos:        d.Pos,
		}
		mergeAttrs(link.Attributes, d.Attrs)
		b.topo.Links = append(b.topo.Links, link)
		return nil

	case *InjectionDecl:
		b.injections = append(b.injections, d)
		return nil

	default:
		return fmt.Errorf("unknown declaration %T", decl)
	}
}

// ensureNodePath creates or retrieves the node addressed by a '>'-joined
// path, creating intermediate nodes as needed. Re-declaring an existing
// path addresses the same entity, which is how identifier uniqueness per
// scope is enforced.
func (b *builder) ensureNodePath(path string, pos Position) (*Node, error) {
	segments, err := addr.ParsePath(path)
	if err != nil {
		return nil, &ParseError{Diagnostic: Diagnostic{Message: err.Error(), Pos: pos}}
	}

	var parent *Node
	var current *Node
	for i, name := range segments {
		fullPath := strings.Join(segments[:i+1], addr.Separator)
		current = b.nodes[fullPath]
		if current == nil {
			current = &Node{
				Name:       name,
				Path:       fullPath,
				Attributes: NewAttributes(),
				Pos:        pos,
				parent:     parent,
			}
			b.nodes[fullPath] = current
			if parent == nil {
				b.topo.Nodes = append(b.topo.Nodes, current)
			} else {
				parent.Subnodes = append(parent.Subnodes, current)
			}
		}
		parent = current
	}
	return current, nil
}

// resolveEndpoints matches every link endpoint against the node and port
// namespaces. Endpoints are references, never declarations: naming an
// undeclared node or port is a resolution error.
func (b *builder) resolveEndpoints() error {
	for _, link := range b.topo.Links {
		for _, ep := range []Endpoint{link.A, link.B} {
			node, ok := b.nodes[ep.Node]
			if !ok {
				return &ResolutionError{
					Diagnostic: Diagnostic{
						Message: fmt.Sprintf("link endpoint %q references undeclared node %q", ep.String(), ep.Node),
						Pos:     ep.Pos,
					},
					Reference: ep.String(),
				}
			}
			if ep.Port != "" && node.Port(ep.Port) == nil {
				return &ResolutionError{
					Diagnostic: Diagnostic{
						Message: fmt.Sprintf("link endpoint %q references undeclared port %q on node %q", ep.String(), ep.Port, ep.Node),
						Pos:     ep.Pos,
					},
					Reference: ep.String(),
				}
			}
		}
	}
	return nil
}

// mergeAttrs applies an attribute block to an entity's attribute map.
// Later declarations of the same name overwrite earlier ones.
func mergeAttrs(target *Attributes, attrs []Attr) {
	for _, a := range attrs {
		target.Set(a.Key, a.Value)
	}
}

// TopologyIDAttribute is the reserved environment attribute whose value
// becomes Topology.ID.
const TopologyIDAttribute = "topology_id"

// extractTopologyID moves the reserved topology_id attribute from the
// environment to the Topology. Absence is not an error.
func extractTopologyID(topo *Topology) {
	v, ok := topo.Environment.Delete(TopologyIDAttribute)
	if !ok {
		return
	}
	switch v.Kind {
	case ValueString, ValueText:
		topo.ID = v.Str
	default:
		topo.ID = v.Raw
	}
}
