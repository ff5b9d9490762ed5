// Package injectfile loads attribute-injection documents: files that
// supply attributes to entities across many topology files at once,
// without editing the topologies themselves.
//
// Two on-disk formats are supported. The JSON form is a list of rules,
// each naming the topology files it applies to and the modifiers to apply:
//
//	[
//	  {
//	    "files": ["test_topology_*.szn"],
//	    "modifiers": [
//	      {"nodes": ["sw1", "hs*", "type=switch"],
//	       "attributes": {"image": "gold"}}
//	    ]
//	  }
//	]
//
// The HCL form expresses the same structure as blocks:
//
//	inject "test_topology_*.szn" {
//	  nodes "sw1" {
//	    image = "gold"
//	  }
//	  ports "sw1:1" {
//	    speed = 1000
//	  }
//	  links "sw1:1 -- sw2:1" {
//	    rate = 40
//	  }
//	}
//
// Selectors accept exact identifiers, shell globs and `attr=value`
// equality, matching the in-document injection selector semantics. Unlike
// in-document injections, injection files override locally declared
// attributes: they exist to reconfigure fixed topologies from the outside.
package injectfile
