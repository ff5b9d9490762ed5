// Package app wires the parsing pipeline into a runnable application:
// topology file discovery, optional attribute-injection files, and
// rendering of the parsed model as text or JSON.
package app
