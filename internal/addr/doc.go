// Package addr provides a structured, type-safe representation for SZN
// entity addresses.
//
// A node address is a '>'-separated path of identifiers, e.g. `a>b>c`,
// where each segment names a subnode of the previous one. An endpoint
// address optionally appends a port, e.g. `a>b>c:port1`.
//
// This package enforces the identifier schema and centralizes all
// formatting and parsing logic for addresses.
package addr
