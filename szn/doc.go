// Package szn implements a parser and semantic model builder for the SZN
// network-topology notation.
//
// SZN describes a network fixture as nodes, ports, links and typed
// attributes:
//
//	# Environment
//	[topology_id="lab-fixture-7" kernel="3.13.0-77-generic"]
//
//	# Nodes
//	[type=switch attr1=1] sw1 sw2
//	hs1
//
//	# Ports
//	[speed=1000] sw1:3 sw2:3
//
//	# Links
//	[rate=20] sw1:3 -- sw2:3
//
// Nodes nest through '>'-chained paths (`sw1>card1>subcard1`), attribute
// values resolve into a closed variant (string, multiline string, float,
// list), and injection statements supply default attributes to a whole
// class of entities at once:
//
//	[image="gold"] @node sw*
//
// The pipeline is a pure, synchronous transformation run in strictly
// ordered stages: scan, parse, build, resolve endpoints, apply injections,
// natural-order. The single entry point is Parse:
//
//	topo, err := szn.Parse(src)
//	if err != nil {
//	    // unwraps to *szn.LexError, *szn.ParseError or *szn.ResolutionError
//	}
//
// A Topology is immutable once returned and independent parses share no
// state, so parsing many documents concurrently needs no coordination.
package szn
