package injectfile

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/ohler55/ojg/oj"

	"github.com/szntools/szngo/szn"
)

// ParseJSON decodes a JSON injection document. The top level is an array of
// rules, each with a "files" list of patterns and a "modifiers" list keyed by
// entity class:
//
//	[{"files": ["*.szn"],
//	  "modifiers": [{"nodes": ["sw*"], "attributes": {"image": "gold"}}]}]
func ParseJSON(data []byte) (*Document, error) {
	parsed, err := oj.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse injection JSON: %w", err)
	}

	rules, ok := parsed.([]any)
	if !ok {
		return nil, fmt.Errorf("injection JSON: want a top-level array, got %T", parsed)
	}

	doc := &Document{}
	for i, raw := range rules {
		rule, err := parseJSONRule(raw)
		if err != nil {
			return nil, fmt.Errorf("injection JSON: rule %d: %w", i, err)
		}
		doc.Rules = append(doc.Rules, rule)
	}
	return doc, nil
}

func parseJSONRule(raw any) (*Rule, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("want an object, got %T", raw)
	}

	rule := &Rule{}

	files, err := stringList(obj["files"])
	if err != nil {
		return nil, fmt.Errorf("files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("files: at least one pattern required")
	}
	rule.Files = files

	mods, ok := obj["modifiers"].([]any)
	if !ok {
		return nil, fmt.Errorf("modifiers: want an array, got %T", obj["modifiers"])
	}
	for j, rawMod := range mods {
		classMods, err := parseJSONModifier(rawMod)
		if err != nil {
			return nil, fmt.Errorf("modifier %d: %w", j, err)
		}
		rule.Modifiers = append(rule.Modifiers, classMods...)
	}
	return rule, nil
}

// jsonClassKeys maps modifier object keys to entity classes, in a fixed
// application order.
var jsonClassKeys = []struct {
	key   string
	class szn.TargetClass
}{
	{"nodes", szn.TargetNode},
	{"ports", szn.TargetPort},
	{"links", szn.TargetLink},
}

func parseJSONModifier(raw any) ([]*Modifier, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("want an object, got %T", raw)
	}

	attrs, err := parseJSONAttributes(obj["attributes"])
	if err != nil {
		return nil, err
	}

	var out []*Modifier
	for _, ck := range jsonClassKeys {
		rawSel, present := obj[ck.key]
		if !present {
			continue
		}
		selectors, err := stringList(rawSel)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ck.key, err)
		}
		mod := &Modifier{Class: ck.class, Attributes: attrs}
		for _, s := range selectors {
			mod.Selectors = append(mod.Selectors, szn.ParseSelector(s))
		}
		out = append(out, mod)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("want at least one of nodes, ports or links")
	}
	return out, nil
}

func parseJSONAttributes(raw any) ([]Attribute, error) {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("attributes: want an object, got %T", raw)
	}

	// JSON objects are unordered; sort keys so application is deterministic.
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]Attribute, 0, len(keys))
	for _, k := range keys {
		v, err := jsonValue(obj[k])
		if err != nil {
			return nil, fmt.Errorf("attributes: %s: %w", k, err)
		}
		attrs = append(attrs, Attribute{Key: k, Value: v})
	}
	return attrs, nil
}

// jsonValue maps a decoded JSON value onto the attribute value variants.
// Booleans carry no dedicated kind and come through as strings.
func jsonValue(raw any) (szn.Value, error) {
	switch v := raw.(type) {
	case string:
		return szn.StringValue(v), nil
	case float64:
		return szn.FloatValue(v), nil
	case int64:
		return szn.FloatValue(float64(v)), nil
	case bool:
		return szn.StringValue(strconv.FormatBool(v)), nil
	case []any:
		items := make([]szn.Value, 0, len(v))
		for _, it := range v {
			iv, err := jsonValue(it)
			if err != nil {
				return szn.Value{}, err
			}
			items = append(items, iv)
		}
		return szn.ListValue(items...), nil
	default:
		return szn.Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

func stringList(raw any) ([]string, error) {
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("want an array of strings, got %T", raw)
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, fmt.Errorf("want an array of strings, got %T element", it)
		}
		out = append(out, s)
	}
	return out, nil
}
