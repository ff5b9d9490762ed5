package addr

import (
	"fmt"
	"regexp"
	"strings"
)

// Separator joins the segments of a node path.
const Separator = ">"

// segmentRegex matches a single node-path segment, e.g. `sw1` or `card_2`.
var segmentRegex = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// portRegex matches a port name. Ports may be fully numeric, e.g. `sw1:3`.
var portRegex = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// ParsePath splits a '>'-joined node path into its segments, validating
// each one. Used for declared node names, so glob characters are rejected.
func ParsePath(rawPath string) ([]string, error) {
	if rawPath == "" {
		return nil, fmt.Errorf("node path cannot be empty")
	}

	segments := strings.Split(rawPath, Separator)
	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("node path %q contains an empty segment", rawPath)
		}
		if !segmentRegex.MatchString(segment) {
			return nil, fmt.Errorf("invalid node name %q in path %q", segment, rawPath)
		}
	}
	return segments, nil
}

// ValidPort reports whether name is a legal port name.
func ValidPort(name string) bool {
	return portRegex.MatchString(name)
}

// Address identifies a node, or a port on a node. Node holds the full
// '>'-joined path; Port is empty when the address names the node itself.
type Address struct {
	Node string
	Port string
}

// ParseEndpoint splits an endpoint string of the form `node` or
// `node:port`. No identifier validation is performed, so selector globs
// such as `hs*:1` pass through intact.
func ParseEndpoint(raw string) (Address, error) {
	if raw == "" {
		return Address{}, fmt.Errorf("endpoint cannot be empty")
	}

	node, port, found := strings.Cut(raw, ":")
	if node == "" {
		return Address{}, fmt.Errorf("endpoint %q has no node component", raw)
	}
	if found && port == "" {
		return Address{}, fmt.Errorf("endpoint %q has an empty port component", raw)
	}
	return Address{Node: node, Port: port}, nil
}

// String serializes the Address into its canonical `node` or `node:port`
// representation.
func (a Address) String() string {
	if a.Port == "" {
		return a.Node
	}
	return a.Node + ":" + a.Port
}

// Equal reports whether two addresses identify the same entity.
func (a Address) Equal(other Address) bool {
	return a.Node == other.Node && a.Port == other.Port
}
