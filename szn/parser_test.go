package szn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parse is a test helper that fails immediately on a parse error.
func parse(t *testing.T, src string) *Topology {
	t.Helper()
	topo, err := ParseString(src)
	require.NoError(t, err)
	return topo
}

// attr fetches a required attribute from an entity's attribute map.
func attr(t *testing.T, attrs *Attributes, key string) Value {
	t.Helper()
	v, ok := attrs.Get(key)
	require.True(t, ok, "attribute %q missing", key)
	return v
}

func TestParse_NodeDeclarations(t *testing.T) {
	topo := parse(t, `
[type=switch image="fedora"] sw1 sw2
hs1
`)
	require.Len(t, topo.Nodes, 3)
	assert.Equal(t, "hs1", topo.Nodes[0].Name)
	assert.Equal(t, "sw1", topo.Nodes[1].Name)
	assert.Equal(t, "sw2", topo.Nodes[2].Name)

	for _, name := range []string{"sw1", "sw2"} {
		n := topo.NodeByPath(name)
		require.NotNil(t, n)
		assert.Equal(t, "switch", attr(t, n.Attributes, "type").Str)
		assert.Equal(t, "fedora", attr(t, n.Attributes, "image").Str)
	}
	assert.Equal(t, 0, topo.NodeByPath("hs1").Attributes.Len())
}

func TestParse_RedeclarationMergesAttributes(t *testing.T) {
	topo := parse(t, `
[type=switch] sw1
[image="gold"] sw1
`)
	require.Len(t, topo.Nodes, 1)
	n := topo.Nodes[0]
	assert.Equal(t, "switch", attr(t, n.Attributes, "type").Str)
	assert.Equal(t, "gold", attr(t, n.Attributes, "image").Str)
}

func TestParse_LastWriteWins(t *testing.T) {
	topo := parse(t, `
[image="first"] sw1
[image="second"] sw1
`)
	assert.Equal(t, "second", attr(t, topo.Nodes[0].Attributes, "image").Str)
}

func TestParse_SubnodePaths(t *testing.T) {
	topo := parse(t, `
[kind=chassis] rack1
[kind=card] rack1>card1 rack1>card2
rack1>card1>cpu1
`)
	require.Len(t, topo.Nodes, 1)
	rack := topo.Nodes[0]
	assert.Equal(t, "rack1", rack.Name)
	require.Len(t, rack.Subnodes, 2)

	card1 := rack.Subnode("card1")
	require.NotNil(t, card1)
	assert.Equal(t, "card", attr(t, card1.Attributes, "kind").Str)
	assert.Equal(t, "rack1>card1", card1.Path)
	assert.Same(t, rack, card1.Parent())

	cpu := topo.NodeByPath("rack1>card1>cpu1")
	require.NotNil(t, cpu)
	assert.Equal(t, "cpu1", cpu.Name)
}

func TestParse_SubnodePathCreatesIntermediates(t *testing.T) {
	topo := parse(t, "a>b>c\n")
	a := topo.NodeByPath("a")
	require.NotNil(t, a)
	require.NotNil(t, a.Subnode("b"))
	require.NotNil(t, topo.NodeByPath("a>b>c"))
}

func TestParse_SameNameDifferentScope(t *testing.T) {
	topo := parse(t, `
a>x
b>x
`)
	ax := topo.NodeByPath("a>x")
	bx := topo.NodeByPath("b>x")
	require.NotNil(t, ax)
	require.NotNil(t, bx)
	assert.NotSame(t, ax, bx)
}

func TestParse_PortDeclarations(t *testing.T) {
	topo := parse(t, `
sw1
[speed=1000] sw1:1 sw1:2
sw1:mgmt
`)
	sw1 := topo.NodeByPath("sw1")
	require.NotNil(t, sw1)
	require.Len(t, sw1.Ports, 3)

	p1 := sw1.Port("1")
	require.NotNil(t, p1)
	assert.Equal(t, 1000.0, attr(t, p1.Attributes, "speed").Float)
	assert.Same(t, sw1, p1.Node)

	require.NotNil(t, sw1.Port("mgmt"))
	assert.Equal(t, 0, sw1.Port("mgmt").Attributes.Len())
}

func TestParse_PortStatementAutocreatesNode(t *testing.T) {
	topo := parse(t, "sw9:1\n")
	sw9 := topo.NodeByPath("sw9")
	require.NotNil(t, sw9)
	require.NotNil(t, sw9.Port("1"))
}

func TestParse_LinkDeclarations(t *testing.T) {
	topo := parse(t, `
sw1:1 hs1:1
[rate=40] sw1:1 -- hs1:1
sw1 -- hs1
`)
	require.Len(t, topo.Links, 2)

	nodeLink := topo.Links[0]
	assert.Equal(t, "sw1", nodeLink.A.String())
	assert.Equal(t, "hs1", nodeLink.B.String())

	portLink := topo.Links[1]
	assert.Equal(t, "sw1:1", portLink.A.String())
	assert.Equal(t, "hs1:1", portLink.B.String())
	assert.Equal(t, 40.0, attr(t, portLink.Attributes, "rate").Float)
}

func TestParse_LinkForwardReference(t *testing.T) {
	// Endpoints may reference entities declared later in the document.
	topo := parse(t, `
sw1:1 -- hs1:1
sw1:1
hs1:1
`)
	require.Len(t, topo.Links, 1)
}

func TestParse_LinkToUndeclaredNode(t *testing.T) {
	_, err := ParseString("a\na -- b\n")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "b", resErr.Reference)
	assert.Contains(t, resErr.Error(), `undeclared node "b"`)
}

func TestParse_LinkToUndeclaredPort(t *testing.T) {
	_, err := ParseString("a:1\nb\na:1 -- b:7\n")
	var resErr *ResolutionError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "b:7", resErr.Reference)
	assert.Contains(t, resErr.Error(), `undeclared port "7"`)
}

func TestParse_EnvironmentAttributes(t *testing.T) {
	topo := parse(t, `
[virtual=none awesomeness=medium]
`)
	assert.Equal(t, "none", attr(t, topo.Environment, "virtual").Str)
	assert.Equal(t, "medium", attr(t, topo.Environment, "awesomeness").Str)
}

func TestParse_TopologyID(t *testing.T) {
	t.Run("extracted from environment", func(t *testing.T) {
		topo := parse(t, "[topology_id=\"dc-west\" virtual=none]\n")
		assert.Equal(t, "dc-west", topo.ID)
		assert.False(t, topo.Environment.Has("topology_id"))
		assert.True(t, topo.Environment.Has("virtual"))
	})

	t.Run("absent", func(t *testing.T) {
		topo := parse(t, "[virtual=none]\n")
		assert.Equal(t, "", topo.ID)
	})

	t.Run("non-string value keeps raw text", func(t *testing.T) {
		topo := parse(t, "[topology_id=42]\n")
		assert.Equal(t, "42", topo.ID)
	})
}

func TestParse_ValueTyping(t *testing.T) {
	topo := parse(t, `
[count=3 ratio=2.5 neg=-1 name=leaf quoted="7" items=(1, 2.5, "x") nested=(a, (b, c))] sw1
`)
	attrs := topo.Nodes[0].Attributes

	assert.Equal(t, ValueFloat, attr(t, attrs, "count").Kind)
	assert.Equal(t, 3.0, attr(t, attrs, "count").Float)
	assert.Equal(t, 2.5, attr(t, attrs, "ratio").Float)
	assert.Equal(t, -1.0, attr(t, attrs, "neg").Float)

	assert.Equal(t, ValueString, attr(t, attrs, "name").Kind)
	// Quoting forces the string kind even for numeric text.
	assert.Equal(t, ValueString, attr(t, attrs, "quoted").Kind)
	assert.Equal(t, "7", attr(t, attrs, "quoted").Str)

	items := attr(t, attrs, "items")
	require.Equal(t, ValueList, items.Kind)
	require.Len(t, items.List, 3)
	assert.Equal(t, ValueFloat, items.List[0].Kind)
	assert.Equal(t, ValueFloat, items.List[1].Kind)
	assert.Equal(t, ValueString, items.List[2].Kind)

	nested := attr(t, attrs, "nested")
	require.Equal(t, ValueList, nested.Kind)
	require.Len(t, nested.List, 2)
	assert.Equal(t, ValueList, nested.List[1].Kind)
}

func TestParse_MultilineValue(t *testing.T) {
	topo := parse(t, "[script=```\n  #!/bin/sh\n  echo hi\n```] hs1\n")
	v := attr(t, topo.Nodes[0].Attributes, "script")
	assert.Equal(t, ValueText, v.Kind)
	assert.Equal(t, "\n  #!/bin/sh\n  echo hi\n", v.Str)
}

func TestParse_AttrBlockSpansLines(t *testing.T) {
	topo := parse(t, `[
  type=switch
  image="gold"
] sw1
`)
	n := topo.Nodes[0]
	assert.Equal(t, "switch", attr(t, n.Attributes, "type").Str)
	assert.Equal(t, "gold", attr(t, n.Attributes, "image").Str)
}

func TestParse_ListSpansLines(t *testing.T) {
	topo := parse(t, `[items=(
  1
  2
  3
)] sw1
`)
	v := attr(t, topo.Nodes[0].Attributes, "items")
	require.Equal(t, ValueList, v.Kind)
	assert.Len(t, v.List, 3)
}

func TestParse_SyntaxErrors(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"unclosed attribute block", "[a=1 sw1\n"},
		{"missing value", "[a=] sw1\n"},
		{"mixed node and port statement", "sw1 sw2:1\n"},
		{"mixed port and node statement", "sw1:1 sw2\n"},
		{"dangling link operator", "a --\n"},
		{"glob in declaration", "hs*\n"},
		{"glob in attribute key", "[a*=1] sw1\n"},
		{"unclosed list", "[a=(1, 2] sw1\n"},
		{"injection without attribute block", "@node sw1\n"},
		{"unknown injection class", "[a=1] @device sw1\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseString(tc.src)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Greater(t, parseErr.Pos.Line, 0)
		})
	}
}

func TestParse_ErrorPositions(t *testing.T) {
	_, err := ParseString("sw1\nsw2 @\n")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Pos.Line)
}

func TestParse_EnvInjectionClass(t *testing.T) {
	// `[attrs] @env` is the explicit form of the bare `[attrs]` statement.
	topo := parse(t, "[virtual=none] @env\n")
	assert.Equal(t, "none", attr(t, topo.Environment, "virtual").Str)
}

func TestParse_NoTrailingNewline(t *testing.T) {
	topo := parse(t, "[type=switch] sw1")
	require.Len(t, topo.Nodes, 1)
	assert.Equal(t, "switch", attr(t, topo.Nodes[0].Attributes, "type").Str)
}

func TestParse_EmptyDocument(t *testing.T) {
	for _, src := range []string{"", "\n\n", "# only a comment\n"} {
		topo, err := ParseString(src)
		require.NoError(t, err)
		assert.Empty(t, topo.Nodes)
		assert.Empty(t, topo.Links)
		assert.Equal(t, 0, topo.Environment.Len())
	}
}

func TestParse_DeclarationOrderIndependence(t *testing.T) {
	a := parse(t, `
hs1:1
sw1:1
sw1:1 -- hs1:1
[type=host] hs1
`)
	b := parse(t, `
[type=host] hs1
sw1:1 -- hs1:1
sw1:1
hs1:1
`)
	require.Len(t, a.Nodes, 2)
	require.Len(t, b.Nodes, 2)
	for i := range a.Nodes {
		assert.Equal(t, a.Nodes[i].Name, b.Nodes[i].Name)
		assert.True(t, a.Nodes[i].Attributes.Equal(b.Nodes[i].Attributes))
	}
	require.Len(t, b.Links, 1)
	assert.Equal(t, a.Links[0].A.String(), b.Links[0].A.String())
	assert.Equal(t, a.Links[0].B.String(), b.Links[0].B.String())
}

func TestParse_FullDocument(t *testing.T) {
	topo := parse(t, `
# Environment
[topology_id="lab1" virtual=none]

# Nodes
[type=switch attr1=1] sw1 sw2
[type=host] hs1

# Ports
[speed=1000] sw1:3 sw2:3

# Links
[rate=10] sw1:3 -- sw2:3
hs1 -- sw1
`)
	assert.Equal(t, "lab1", topo.ID)
	assert.Len(t, topo.Nodes, 3)
	assert.Len(t, topo.Links, 2)

	sw1 := topo.NodeByPath("sw1")
	require.NotNil(t, sw1)
	assert.Equal(t, 1.0, attr(t, sw1.Attributes, "attr1").Float)
	require.NotNil(t, sw1.Port("3"))
	assert.Equal(t, 1000.0, attr(t, sw1.Port("3").Attributes, "speed").Float)
}
