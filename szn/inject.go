package szn

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Selector restricts which entities of a class receive an injection. Two
// forms exist: Glob matches the entity identifier (exact text or a shell
// glob such as `hs*`), and Key/Value matches entities whose resolved
// attribute equals the given value. A nil *Selector matches everything.
type Selector struct {
	Glob  string // identifier or endpoint pattern; empty for attr selectors
	Key   string // attribute name for attr=value selectors
	Value Value
}

// ParseSelector converts a raw selector string into a Selector. Text of
// the form `key=value` (with a plain identifier key) becomes an attribute
// selector whose value is resolved like a bare attribute value; anything
// else is an identifier glob. Used for selectors arriving from injection
// files, where selectors are plain strings rather than grammar tokens.
func ParseSelector(raw string) *Selector {
	if key, val, ok := strings.Cut(raw, "="); ok && key != "" && !strings.ContainsAny(key, ":*?") {
		if len(val) >= 2 && val[0] == '"' && val[len(val)-1] == '"' {
			return &Selector{Key: key, Value: StringValue(val[1 : len(val)-1])}
		}
		return &Selector{Key: key, Value: resolveScalar(val)}
	}
	return &Selector{Glob: raw}
}

// matchPattern matches a name against the selector glob. A pattern that is
// not valid glob syntax falls back to literal comparison.
func (s *Selector) matchPattern(name string) bool {
	ok, err := doublestar.Match(s.Glob, name)
	if err != nil {
		return s.Glob == name
	}
	return ok
}

func (s *Selector) matchAttrs(attrs *Attributes) bool {
	v, ok := attrs.Get(s.Key)
	return ok && v.Equal(s.Value)
}

// MatchesNode reports whether the selector selects the given node. Glob
// selectors match the node's local name or its full path.
func (s *Selector) MatchesNode(n *Node) bool {
	if s == nil {
		return true
	}
	if s.Key != "" {
		return s.matchAttrs(n.Attributes)
	}
	return s.matchPattern(n.Name) || s.matchPattern(n.Path)
}

// MatchesPort reports whether the selector selects the given port. Glob
// selectors of the form `node:port` match the port's full address; plain
// globs match the port name.
func (s *Selector) MatchesPort(p *Port) bool {
	if s == nil {
		return true
	}
	if s.Key != "" {
		return s.matchAttrs(p.Attributes)
	}
	if strings.Contains(s.Glob, ":") {
		return s.matchPattern(p.Node.Path + ":" + p.Name)
	}
	return s.matchPattern(p.Name)
}

// MatchesLink reports whether the selector selects the given link. Glob
// selectors match the link's canonical `a -- b` endpoint text.
func (s *Selector) MatchesLink(l *Link) bool {
	if s == nil {
		return true
	}
	if s.Key != "" {
		return s.matchAttrs(l.Attributes)
	}
	return s.matchPattern(l.endpointKey())
}

// applyInjections merges every injection into its matching entities.
// Injection never overrides a locally declared attribute, and when several
// injections of the same class supply the same missing attribute, the
// first in source order wins (SetDefault makes later ones no-ops).
//
// The entity sets are indexed by class once, up front, and reused for
// every injection, keeping the pass amortized linear in entities plus
// injections rather than quadratic.
func applyInjections(topo *Topology, injections []*InjectionDecl) error {
	if len(injections) == 0 {
		return nil
	}

	var (
		nodes []*Node
		ports []*Port
	)
	index := func() {
		if nodes == nil {
			nodes = topo.AllNodes()
			ports = topo.AllPorts()
		}
	}

	for _, inj := range injections {
		switch inj.Target {
		case TargetEnv:
			for _, a := range inj.Attrs {
				topo.Environment.SetDefault(a.Key, a.Value)
			}

		case TargetNode:
			index()
			for _, n := range nodes {
				if inj.Selector.MatchesNode(n) {
					injectAttrs(n.Attributes, inj.Attrs)
				}
			}

		case TargetPort:
			index()
			for _, p := range ports {
				if inj.Selector.MatchesPort(p) {
					injectAttrs(p.Attributes, inj.Attrs)
				}
			}

		case TargetLink:
			for _, l := range topo.Links {
				if inj.Selector.MatchesLink(l) {
					injectAttrs(l.Attributes, inj.Attrs)
				}
			}
		}
	}
	return nil
}

func injectAttrs(target *Attributes, attrs []Attr) {
	for _, a := range attrs {
		target.SetDefault(a.Key, a.Value)
	}
}
