package szn

import (
	"fmt"
	"strings"

	"github.com/szntools/szngo/internal/addr"
)

// Parse parses SZN source text and returns the fully resolved Topology:
// declarations are built into the entity graph, link endpoints are
// resolved, injections are applied and the result is natural-ordered.
// On failure the error unwraps to *LexError, *ParseError or
// *ResolutionError.
func Parse(src []byte) (*Topology, error) {
	decls, err := parseDocument(src)
	if err != nil {
		return nil, err
	}

	topo, injections, err := build(decls)
	if err != nil {
		return nil, err
	}

	if err := applyInjections(topo, injections); err != nil {
		return nil, err
	}
	extractTopologyID(topo)
	sortTopology(topo)
	return topo, nil
}

// ParseString is Parse for string input.
func ParseString(src string) (*Topology, error) {
	return Parse([]byte(src))
}

// parseDocument tokenizes and parses the source into a declaration list in
// source order.
func parseDocument(src []byte) ([]Decl, error) {
	p := &parser{lex: NewLexer(src)}
	return p.parseDocument()
}

type parser struct {
	lex *Lexer
}

func (p *parser) peek() (Token, error) {
	return p.lex.Peek()
}

func (p *parser) next() (Token, error) {
	return p.lex.Next()
}

func (p *parser) expect(kind TokenKind) (Token, error) {
	tok, err := p.next()
	if err != nil {
		return Token{}, err
	}
	if tok.Kind != kind {
		return Token{}, p.syntaxError(tok, kind.String())
	}
	return tok, nil
}

func (p *parser) syntaxError(got Token, expected string) error {
	return &ParseError{
		Diagnostic: Diagnostic{Pos: got.Pos},
		Expected:   expected,
		Got:        fmt.Sprintf("%s (%q)", got.Kind, got.Literal),
	}
}

// skipNewlines consumes consecutive newline tokens. Used inside attribute
// blocks and lists, where statements may span lines.
func (p *parser) skipNewlines() error {
	for {
		tok, err := p.peek()
		if err != nil {
			return err
		}
		if tok.Kind != TokenNewline {
			return nil
		}
		_, _ = p.next()
	}
}

// expectStatementEnd consumes the newline (or EOF) terminating a statement.
func (p *parser) expectStatementEnd() error {
	tok, err := p.peek()
	if err != nil {
		return err
	}
	switch tok.Kind {
	case TokenNewline:
		_, _ = p.next()
		return nil
	case TokenEOF:
		return nil
	default:
		return p.syntaxError(tok, "end of statement")
	}
}

func (p *parser) parseDocument() ([]Decl, error) {
	var decls []Decl
	for {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenEOF {
			return decls, nil
		}
		decl, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		decls = append(decls, decl)
	}
}

// parseStatement parses one statement. Statement forms:
//
//	[attrs]                          environment injection
//	[attrs] @class selector?         class injection
//	[attrs]? path...                 node declaration(s)
//	[attrs]? path:port...            port declaration(s)
//	[attrs]? endpoint -- endpoint    link declaration
func (p *parser) parseStatement() (Decl, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	pos := tok.Pos

	var attrs []Attr
	hasAttrs := false
	if tok.Kind == TokenLBracket {
		attrs, err = p.parseAttrBlock()
		if err != nil {
			return nil, err
		}
		hasAttrs = true
	}

	tok, err = p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokenNewline, TokenEOF:
		if !hasAttrs {
			// Unreachable; blank lines are skipped by the caller.
			_, _ = p.next()
			return nil, p.syntaxError(tok, "declaration")
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &InjectionDecl{Target: TargetEnv, Attrs: attrs, Pos: pos}, nil

	case TokenAt:
		if !hasAttrs {
			return nil, p.syntaxError(tok, "attribute block before '@'")
		}
		return p.parseInjectionTail(attrs, pos)

	case TokenIdent:
		return p.parseRefStatement(attrs, pos)

	default:
		return nil, p.syntaxError(tok, "declaration")
	}
}

// parseInjectionTail parses `@class selector?` after an attribute block.
func (p *parser) parseInjectionTail(attrs []Attr, pos Position) (Decl, error) {
	_, _ = p.next() // consume '@'

	classTok, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}

	var target TargetClass
	switch classTok.Literal {
	case "node", "port", "link", "env":
		target = TargetClass(classTok.Literal)
	default:
		return nil, &ParseError{
			Diagnostic: Diagnostic{Pos: classTok.Pos},
			Expected:   "injection target class ('node', 'port', 'link' or 'env')",
			Got:        fmt.Sprintf("%q", classTok.Literal),
		}
	}

	sel, err := p.parseSelector(target)
	if err != nil {
		return nil, err
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}
	return &InjectionDecl{Target: target, Selector: sel, Attrs: attrs, Pos: pos}, nil
}

// parseSelector parses the optional selector after an injection class.
// Returns nil when the injection is unrestricted.
func (p *parser) parseSelector(target TargetClass) (*Selector, error) {
	tok, err := p.peek()
	if err != nil {
		return nil, err
	}

	switch tok.Kind {
	case TokenNewline, TokenEOF:
		return nil, nil

	case TokenString:
		_, _ = p.next()
		return &Selector{Glob: tok.Literal}, nil

	case TokenIdent:
		_, _ = p.next()
		next, err := p.peek()
		if err != nil {
			return nil, err
		}

		// attr=value selector
		if next.Kind == TokenEquals {
			_, _ = p.next()
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			return &Selector{Key: tok.Literal, Value: val}, nil
		}

		glob := tok.Literal
		if next.Kind == TokenColon {
			_, _ = p.next()
			portTok, err := p.parsePortName()
			if err != nil {
				return nil, err
			}
			glob += ":" + portTok
		}

		// `@link a:1 -- b:1` selects by the link's canonical endpoints.
		next, err = p.peek()
		if err != nil {
			return nil, err
		}
		if next.Kind == TokenLink {
			if target != TargetLink {
				return nil, p.syntaxError(next, "end of statement")
			}
			_, _ = p.next()
			other, err := p.parseEndpointText()
			if err != nil {
				return nil, err
			}
			glob += " -- " + other
		}
		return &Selector{Glob: glob}, nil

	default:
		return nil, p.syntaxError(tok, "selector or end of statement")
	}
}

// parsePortName accepts an identifier or a bare number as a port name.
func (p *parser) parsePortName() (string, error) {
	tok, err := p.next()
	if err != nil {
		return "", err
	}
	if tok.Kind != TokenIdent && tok.Kind != TokenNumber {
		return "", p.syntaxError(tok, "port name")
	}
	return tok.Literal, nil
}

// parseEndpointText parses `path` or `path:port` and returns its canonical
// text form. Used by link selectors.
func (p *parser) parseEndpointText() (string, error) {
	tok, err := p.expect(TokenIdent)
	if err != nil {
		return "", err
	}
	text := tok.Literal
	next, err := p.peek()
	if err != nil {
		return "", err
	}
	if next.Kind == TokenColon {
		_, _ = p.next()
		port, err := p.parsePortName()
		if err != nil {
			return "", err
		}
		text += ":" + port
	}
	return text, nil
}

// ref is one parsed reference on a node/port/link statement.
type ref struct {
	node string
	port string // empty for a plain node reference
	pos  Position
}

// parseRefStatement parses the statement forms that start with an
// identifier: node declarations, port declarations and link declarations.
func (p *parser) parseRefStatement(attrs []Attr, pos Position) (Decl, error) {
	first, err := p.parseRef()
	if err != nil {
		return nil, err
	}

	tok, err := p.peek()
	if err != nil {
		return nil, err
	}
	if tok.Kind == TokenLink {
		_, _ = p.next()
		second, err := p.parseRef()
		if err != nil {
			return nil, err
		}
		if err := p.expectStatementEnd(); err != nil {
			return nil, err
		}
		return &LinkDecl{
			A:     EndpointRef{Node: first.node, Port: first.port, Pos: first.pos},
			B:     EndpointRef{Node: second.node, Port: second.port, Pos: second.pos},
			Attrs: attrs,
			Pos:   pos,
		}, nil
	}

	refs := []ref{first}
	for {
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenNewline || tok.Kind == TokenEOF {
			break
		}
		if tok.Kind != TokenIdent {
			return nil, p.syntaxError(tok, "node or port reference")
		}
		r, err := p.parseRef()
		if err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	if err := p.expectStatementEnd(); err != nil {
		return nil, err
	}

	// A statement is homogeneous: all plain node paths, or all ports.
	if refs[0].port == "" {
		paths := make([]string, len(refs))
		for i, r := range refs {
			if r.port != "" {
				return nil, &ParseError{
					Diagnostic: Diagnostic{Pos: r.pos},
					Expected:   "node path (statement started with node declarations)",
					Got:        fmt.Sprintf("port reference %q", r.node+":"+r.port),
				}
			}
			paths[i] = r.node
		}
		return &NodeDecl{Paths: paths, Attrs: attrs, Pos: pos}, nil
	}

	ports := make([]PortRef, len(refs))
	for i, r := range refs {
		if r.port == "" {
			return nil, &ParseError{
				Diagnostic: Diagnostic{Pos: r.pos},
				Expected:   "port reference (statement started with port declarations)",
				Got:        fmt.Sprintf("node path %q", r.node),
			}
		}
		ports[i] = PortRef{Node: r.node, Port: r.port, Pos: r.pos}
	}
	return &PortDecl{Ports: ports, Attrs: attrs, Pos: pos}, nil
}

// parseRef parses `path` or `path:port`, validating the path segments.
func (p *parser) parseRef() (ref, error) {
	tok, err := p.expect(TokenIdent)
	if err != nil {
		return ref{}, err
	}
	if _, err := addr.ParsePath(tok.Literal); err != nil {
		return ref{}, &ParseError{
			Diagnostic: Diagnostic{Message: err.Error(), Pos: tok.Pos},
		}
	}

	r := ref{node: tok.Literal, pos: tok.Pos}

	next, err := p.peek()
	if err != nil {
		return ref{}, err
	}
	if next.Kind == TokenColon {
		_, _ = p.next()
		port, err := p.parsePortName()
		if err != nil {
			return ref{}, err
		}
		if !addr.ValidPort(port) {
			return ref{}, &ParseError{
				Diagnostic: Diagnostic{
					Message: fmt.Sprintf("invalid port name %q", port),
					Pos:     next.Pos,
				},
			}
		}
		r.port = port
	}
	return r, nil
}

// parseAttrBlock parses `[` (key = value)* `]`. The block may span several
// lines; attributes are separated by whitespace or newlines.
func (p *parser) parseAttrBlock() ([]Attr, error) {
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}

	var attrs []Attr
	for {
		if err := p.skipNewlines(); err != nil {
			return nil, err
		}
		tok, err := p.peek()
		if err != nil {
			return nil, err
		}
		if tok.Kind == TokenRBracket {
			_, _ = p.next()
			return attrs, nil
		}
		if tok.Kind == TokenEOF {
			return nil, p.syntaxError(tok, "']'")
		}

		attr, err := p.parseAttr()
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
}

func (p *parser) parseAttr() (Attr, error) {
	keyTok, err := p.expect(TokenIdent)
	if err != nil {
		return Attr{}, err
	}
	if strings.ContainsAny(keyTok.Literal, ">*?") {
		return Attr{}, &ParseError{
			Diagnostic: Diagnostic{
				Message: fmt.Sprintf("invalid attribute name %q", keyTok.Literal),
				Pos:     keyTok.Pos,
			},
		}
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return Attr{}, err
	}
	val, err := p.parseValue()
	if err != nil {
		return Attr{}, err
	}
	return Attr{Key: keyTok.Literal, Value: val, Pos: keyTok.Pos}, nil
}

// parseValue resolves one attribute value. Recognition precedence: fenced
// multiline block, bracketed list, numeric literal, plain string. Bare
// text that merely looks numeric degrades to a string; resolution is total.
func (p *parser) parseValue() (Value, error) {
	tok, err := p.peek()
	if err != nil {
		return Value{}, err
	}

	switch tok.Kind {
	case TokenText:
		_, _ = p.next()
		return TextValue(tok.Literal), nil
	case TokenLParen:
		return p.parseList()
	case TokenNumber:
		_, _ = p.next()
		return resolveScalar(tok.Literal), nil
	case TokenString:
		_, _ = p.next()
		return StringValue(tok.Literal), nil
	case TokenIdent:
		_, _ = p.next()
		return resolveScalar(tok.Literal), nil
	default:
		return Value{}, p.syntaxError(tok, "attribute value")
	}
}

// parseList parses `(` value (','? value)* `)`, possibly spanning lines.
// Elements may themselves be lists.
func (p *parser) parseList() (Value, error) {
	if _, err := p.expect(TokenLParen); err != nil {
		return Value{}, err
	}

	var elems []Value
	for {
		if err := p.skipNewlines(); err != nil {
			return Value{}, err
		}
		tok, err := p.peek()
		if err != nil {
			return Value{}, err
		}
		switch tok.Kind {
		case TokenRParen:
			_, _ = p.next()
			return ListValue(elems...), nil
		case TokenEOF:
			return Value{}, p.syntaxError(tok, "')'")
		case TokenComma:
			return Value{}, p.syntaxError(tok, "list element")
		}

		elem, err := p.parseValue()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, elem)

		if err := p.skipNewlines(); err != nil {
			return Value{}, err
		}
		tok, err = p.peek()
		if err != nil {
			return Value{}, err
		}
		if tok.Kind == TokenComma {
			_, _ = p.next()
		}
	}
}
