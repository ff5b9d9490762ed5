package injectfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/szntools/szngo/internal/ctxlog"
	"github.com/szntools/szngo/szn"
)

// Attribute is a named value carried by a modifier, kept as a slice to
// preserve a deterministic application order.
type Attribute struct {
	Key   string
	Value szn.Value
}

// Modifier applies a set of attributes to every entity of Class matched by
// any of its selectors.
type Modifier struct {
	Class      szn.TargetClass // node, port or link
	Selectors  []*szn.Selector
	Attributes []Attribute
}

// Rule groups modifiers with the topology file patterns they apply to.
type Rule struct {
	Files     []string
	Modifiers []*Modifier
}

// Document is a parsed attribute-injection file.
type Document struct {
	Rules []*Rule
}

// Load reads and parses an injection file, dispatching on its extension:
// .json or .hcl.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read injection file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return ParseJSON(data)
	case ".hcl":
		return ParseHCL(path, data)
	default:
		return nil, fmt.Errorf("unsupported injection file format %q (want .json or .hcl)", filepath.Ext(path))
	}
}

// Apply merges every rule matching topologyPath into the topology.
// Injection-file attributes override locally declared ones.
func (d *Document) Apply(ctx context.Context, topo *szn.Topology, topologyPath string) error {
	logger := ctxlog.FromContext(ctx)

	// Index the entity sets once; every modifier reuses them.
	nodes := topo.AllNodes()
	ports := topo.AllPorts()

	for _, rule := range d.Rules {
		matched, err := rule.matchesFile(topologyPath)
		if err != nil {
			return err
		}
		if !matched {
			continue
		}

		for _, mod := range rule.Modifiers {
			applied := 0
			switch mod.Class {
			case szn.TargetNode:
				for _, n := range nodes {
					if mod.matches(func(s *szn.Selector) bool { return s.MatchesNode(n) }) {
						mod.set(n.Attributes)
						applied++
					}
				}
			case szn.TargetPort:
				for _, p := range ports {
					if mod.matches(func(s *szn.Selector) bool { return s.MatchesPort(p) }) {
						mod.set(p.Attributes)
						applied++
					}
				}
			case szn.TargetLink:
				for _, l := range topo.Links {
					if mod.matches(func(s *szn.Selector) bool { return s.MatchesLink(l) }) {
						mod.set(l.Attributes)
						applied++
					}
				}
			}
			logger.Debug("Applied injection modifier.",
				"topology", topologyPath, "class", string(mod.Class), "entities", applied)
		}
	}
	return nil
}

// matchesFile tests the topology path against the rule's file patterns.
// Patterns match the full path, its base name, or any trailing segments,
// so `test/*.szn` matches deep paths the way search-path-relative globs do.
func (r *Rule) matchesFile(path string) (bool, error) {
	candidates := []string{filepath.ToSlash(path), filepath.Base(path)}
	for _, pattern := range r.Files {
		pattern = filepath.ToSlash(pattern)
		for _, candidate := range candidates {
			ok, err := doublestar.Match(pattern, candidate)
			if err != nil {
				return false, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
			}
			if ok {
				return true, nil
			}
			if strings.HasSuffix(candidate, "/"+strings.TrimPrefix(pattern, "**/")) {
				return true, nil
			}
		}
	}
	return false, nil
}

// matches reports whether any selector accepts the entity. A modifier with
// no selectors matches nothing; use "*" to select a whole class.
func (m *Modifier) matches(fn func(*szn.Selector) bool) bool {
	for _, sel := range m.Selectors {
		if fn(sel) {
			return true
		}
	}
	return false
}

func (m *Modifier) set(attrs *szn.Attributes) {
	for _, a := range m.Attributes {
		attrs.Set(a.Key, a.Value)
	}
}
