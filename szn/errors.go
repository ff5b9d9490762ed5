package szn

import "fmt"

// Position tracks a source location for error messages.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset into source
}

// Diagnostic is the base error type for all szn errors. Every failure of
// Parse unwraps to one of its concrete kinds: *LexError, *ParseError or
// *ResolutionError.
type Diagnostic struct {
	Message string
	Pos     Position
	Cause   error
}

func (e *Diagnostic) Error() string {
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return e.Message
}

func (e *Diagnostic) Unwrap() error { return e.Cause }

// LexError reports a malformed token stream: an unterminated multiline
// fence or string, or an invalid character sequence.
type LexError struct{ Diagnostic }

// ParseError reports a token stream that does not match the grammar.
type ParseError struct {
	Diagnostic
	Expected string
	Got      string
}

func (e *ParseError) Error() string {
	if e.Expected == "" {
		return e.Diagnostic.Error()
	}
	if e.Pos.Line > 0 {
		return fmt.Sprintf("line %d, col %d: expected %s, got %s", e.Pos.Line, e.Pos.Column, e.Expected, e.Got)
	}
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// ResolutionError reports a structurally valid document that references an
// undeclared entity, such as a link endpoint naming a node or port that was
// never declared. Reference holds the offending endpoint text.
type ResolutionError struct {
	Diagnostic
	Reference string
}
