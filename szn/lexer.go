package szn

import (
	"fmt"
	"strings"
)

// Lexer tokenizes SZN source text into a stream of tokens. Newlines are
// significant (they terminate statements) and are emitted as tokens; all
// other whitespace and '#' comments are skipped.
type Lexer struct {
	src    []byte
	pos    int // current byte offset
	line   int // current line (1-based)
	col    int // current column (1-based)
	peeked *Token
}

// NewLexer creates a new Lexer for the given source bytes.
func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Peek returns the next token without consuming it.
func (l *Lexer) Peek() (Token, error) {
	if l.peeked != nil {
		return *l.peeked, nil
	}
	tok, err := l.scan()
	if err != nil {
		return Token{}, err
	}
	l.peeked = &tok
	return tok, nil
}

// Next returns the next token and advances the lexer.
func (l *Lexer) Next() (Token, error) {
	if l.peeked != nil {
		tok := *l.peeked
		l.peeked = nil
		return tok, nil
	}
	return l.scan()
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.col, Offset: l.pos}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) peekByte() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) advance() byte {
	ch := l.src[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// skipBlanks skips spaces, tabs, carriage returns and '#' comments.
// Newlines are not skipped; they are tokens.
func (l *Lexer) skipBlanks() {
	for !l.atEnd() {
		switch l.peekByte() {
		case ' ', '\t', '\r':
			l.advance()
		case '#':
			for !l.atEnd() && l.peekByte() != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *Lexer) scan() (Token, error) {
	l.skipBlanks()

	if l.atEnd() {
		return Token{Kind: TokenEOF, Pos: l.currentPos()}, nil
	}

	pos := l.currentPos()
	ch := l.peekByte()

	switch ch {
	case '\n':
		l.advance()
		return Token{Kind: TokenNewline, Literal: "\n", Pos: pos}, nil
	case '[':
		l.advance()
		return Token{Kind: TokenLBracket, Literal: "[", Pos: pos}, nil
	case ']':
		l.advance()
		return Token{Kind: TokenRBracket, Literal: "]", Pos: pos}, nil
	case '(':
		l.advance()
		return Token{Kind: TokenLParen, Literal: "(", Pos: pos}, nil
	case ')':
		l.advance()
		return Token{Kind: TokenRParen, Literal: ")", Pos: pos}, nil
	case '=':
		l.advance()
		return Token{Kind: TokenEquals, Literal: "=", Pos: pos}, nil
	case ':':
		l.advance()
		return Token{Kind: TokenColon, Literal: ":", Pos: pos}, nil
	case ',':
		l.advance()
		return Token{Kind: TokenComma, Literal: ",", Pos: pos}, nil
	case '@':
		l.advance()
		return Token{Kind: TokenAt, Literal: "@", Pos: pos}, nil
	case '"':
		return l.scanString()
	case '`':
		return l.scanFence()
	case '-':
		if l.pos+1 < len(l.src) && l.src[l.pos+1] == '-' {
			l.advance()
			l.advance()
			return Token{Kind: TokenLink, Literal: "--", Pos: pos}, nil
		}
		if l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
			return l.scanNumber(), nil
		}
		l.advance()
		return Token{}, &LexError{Diagnostic{
			Message: "unexpected character '-'",
			Pos:     pos,
		}}
	}

	if isDigit(ch) {
		return l.scanNumber(), nil
	}

	if isIdentStart(ch) {
		return l.scanIdentifier(), nil
	}

	l.advance()
	return Token{}, &LexError{Diagnostic{
		Message: fmt.Sprintf("unexpected character %q", ch),
		Pos:     pos,
	}}
}

// scanString reads a single-line quoted string. The content is captured
// verbatim; there is no escape processing.
func (l *Lexer) scanString() (Token, error) {
	pos := l.currentPos()
	l.advance() // consume opening "

	var sb strings.Builder
	for {
		if l.atEnd() || l.peekByte() == '\n' {
			return Token{}, &LexError{Diagnostic{
				Message: "unterminated string",
				Pos:     pos,
			}}
		}
		ch := l.advance()
		if ch == '"' {
			return Token{Kind: TokenString, Literal: sb.String(), Pos: pos}, nil
		}
		sb.WriteByte(ch)
	}
}

// scanFence reads a ``` fenced multiline block. Everything between the
// fences is captured exactly as written, including newlines, indentation
// and characters that would otherwise be structural.
func (l *Lexer) scanFence() (Token, error) {
	pos := l.currentPos()
	if l.pos+2 >= len(l.src) || l.src[l.pos+1] != '`' || l.src[l.pos+2] != '`' {
		l.advance()
		return Token{}, &LexError{Diagnostic{
			Message: "unexpected character '`'",
			Pos:     pos,
		}}
	}
	l.advance() // `
	l.advance() // `
	l.advance() // `

	start := l.pos
	for {
		if l.atEnd() {
			return Token{}, &LexError{Diagnostic{
				Message: "unterminated multiline block",
				Pos:     pos,
			}}
		}
		if l.peekByte() == '`' && l.pos+2 < len(l.src) &&
			l.src[l.pos+1] == '`' && l.src[l.pos+2] == '`' {
			content := string(l.src[start:l.pos])
			l.advance() // `
			l.advance() // `
			l.advance() // `
			return Token{Kind: TokenText, Literal: content, Pos: pos}, nil
		}
		l.advance()
	}
}

// scanNumber reads -?digits(.digits)?([eE][+-]?digits)?. The literal is
// kept raw; typing happens during value resolution.
func (l *Lexer) scanNumber() Token {
	pos := l.currentPos()
	start := l.pos

	if l.peekByte() == '-' {
		l.advance()
	}
	for !l.atEnd() && isDigit(l.peekByte()) {
		l.advance()
	}
	if !l.atEnd() && l.peekByte() == '.' && l.pos+1 < len(l.src) && isDigit(l.src[l.pos+1]) {
		l.advance() // consume '.'
		for !l.atEnd() && isDigit(l.peekByte()) {
			l.advance()
		}
	}
	if !l.atEnd() && (l.peekByte() == 'e' || l.peekByte() == 'E') {
		next := l.pos + 1
		if next < len(l.src) && (l.src[next] == '+' || l.src[next] == '-') {
			next++
		}
		if next < len(l.src) && isDigit(l.src[next]) {
			l.advance() // e/E
			if l.peekByte() == '+' || l.peekByte() == '-' {
				l.advance()
			}
			for !l.atEnd() && isDigit(l.peekByte()) {
				l.advance()
			}
		}
	}

	return Token{Kind: TokenNumber, Literal: string(l.src[start:l.pos]), Pos: pos}
}

// scanIdentifier reads an identifier. Identifiers may embed '>' to form
// subnode paths (a>b>c) and the glob characters '*' and '?' used by
// injection selectors; the parser rejects glob characters in declarations.
func (l *Lexer) scanIdentifier() Token {
	pos := l.currentPos()
	start := l.pos

	for !l.atEnd() && isIdentPart(l.peekByte()) {
		l.advance()
	}

	return Token{Kind: TokenIdent, Literal: string(l.src[start:l.pos]), Pos: pos}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '*' || ch == '?'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch) || ch == '>'
}
