package injectfile

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/szntools/szngo/szn"
)

// hclInjectFile represents the top-level structure of an HCL injection file
// for decoding.
type hclInjectFile struct {
	Injects []*hclInjectBlock `hcl:"inject,block"`
}

// hclInjectBlock is one inject block. Its label is the topology file pattern
// the contained modifiers apply to.
type hclInjectBlock struct {
	Pattern string           `hcl:"pattern,label"`
	Nodes   []*hclClassBlock `hcl:"nodes,block"`
	Ports   []*hclClassBlock `hcl:"ports,block"`
	Links   []*hclClassBlock `hcl:"links,block"`
}

// hclClassBlock is a nodes, ports or links block: a selector label and a
// free-form attribute body.
type hclClassBlock struct {
	Selector string   `hcl:"selector,label"`
	Body     hcl.Body `hcl:",remain"`
}

// ParseHCL decodes an HCL injection document:
//
//	inject "test_topology_*.szn" {
//	  nodes "sw*" {
//	    image = "gold"
//	  }
//	}
func ParseHCL(filename string, data []byte) (*Document, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse injection HCL %s: %w", filename, diags)
	}

	var parsedFile hclInjectFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("decode injection HCL %s: %w", filename, diags)
	}

	doc := &Document{}
	for _, block := range parsedFile.Injects {
		rule := &Rule{Files: []string{block.Pattern}}

		classes := []struct {
			class  szn.TargetClass
			blocks []*hclClassBlock
		}{
			{szn.TargetNode, block.Nodes},
			{szn.TargetPort, block.Ports},
			{szn.TargetLink, block.Links},
		}
		for _, c := range classes {
			for _, cb := range c.blocks {
				mod, err := newModifierFromHCL(c.class, cb)
				if err != nil {
					return nil, fmt.Errorf("injection HCL %s: inject %q: %w", filename, block.Pattern, err)
				}
				rule.Modifiers = append(rule.Modifiers, mod)
			}
		}
		doc.Rules = append(doc.Rules, rule)
	}
	return doc, nil
}

func newModifierFromHCL(class szn.TargetClass, block *hclClassBlock) (*Modifier, error) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("selector %q: %w", block.Selector, diags)
	}

	// HCL attribute maps are unordered; restore source order via the
	// declaration ranges.
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Range.Start, ordered[j].Range.Start
		if ri.Line != rj.Line {
			return ri.Line < rj.Line
		}
		return ri.Column < rj.Column
	})

	mod := &Modifier{
		Class:     class,
		Selectors: []*szn.Selector{szn.ParseSelector(block.Selector)},
	}
	for _, a := range ordered {
		ctyVal, diags := a.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("selector %q: attribute %s: %w", block.Selector, a.Name, diags)
		}
		v, err := ctyToValue(ctyVal)
		if err != nil {
			return nil, fmt.Errorf("selector %q: attribute %s: %w", block.Selector, a.Name, err)
		}
		mod.Attributes = append(mod.Attributes, Attribute{Key: a.Name, Value: v})
	}
	return mod, nil
}

// ctyToValue maps an evaluated cty value onto the attribute value variants.
// Strings containing line breaks become text values; booleans carry no
// dedicated kind and come through as strings.
func ctyToValue(v cty.Value) (szn.Value, error) {
	if v.IsNull() {
		return szn.Value{}, fmt.Errorf("null values are not supported")
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		s := v.AsString()
		if strings.Contains(s, "\n") {
			return szn.TextValue(s), nil
		}
		return szn.StringValue(s), nil
	case ty == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return szn.FloatValue(f), nil
	case ty == cty.Bool:
		return szn.StringValue(strconv.FormatBool(v.True())), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var items []szn.Value
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			item, err := ctyToValue(ev)
			if err != nil {
				return szn.Value{}, err
			}
			items = append(items, item)
		}
		return szn.ListValue(items...), nil
	default:
		return szn.Value{}, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
