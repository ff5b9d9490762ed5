package szn

// TokenKind identifies the type of a lexical token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline     // statement terminator
	TokenIdent       // node paths, port names, attribute keys, bare values
	TokenString      // "..." single-line quoted string
	TokenNumber      // -?[0-9]+(.[0-9]+)?([eE][+-]?[0-9]+)?
	TokenText        // ``` fenced multiline block, captured verbatim
	TokenLBracket    // [
	TokenRBracket    // ]
	TokenLParen      // (
	TokenRParen      // )
	TokenEquals      // =
	TokenColon       // :
	TokenComma       // ,
	TokenLink        // --
	TokenAt          // @
)

var tokenNames = map[TokenKind]string{
	TokenEOF:      "EOF",
	TokenNewline:  "end of line",
	TokenIdent:    "identifier",
	TokenString:   "string",
	TokenNumber:   "number",
	TokenText:     "multiline block",
	TokenLBracket: "'['",
	TokenRBracket: "']'",
	TokenLParen:   "'('",
	TokenRParen:   "')'",
	TokenEquals:   "'='",
	TokenColon:    "':'",
	TokenComma:    "','",
	TokenLink:     "'--'",
	TokenAt:       "'@'",
}

func (k TokenKind) String() string {
	if name, ok := tokenNames[k]; ok {
		return name
	}
	return "unknown"
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Kind    TokenKind
	Literal string // text content (decoded for strings, raw for others)
	Pos     Position
}
