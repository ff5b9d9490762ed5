package szn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lexAll drains the lexer and returns every token up to and including EOF.
func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := NewLexer([]byte(src))
	var toks []Token
	for {
		tok, err := lex.Next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.Kind == TokenEOF {
			return toks
		}
	}
}

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestLexer_TokenKinds(t *testing.T) {
	testCases := []struct {
		name string
		src  string
		want []TokenKind
	}{
		{
			name: "node statement",
			src:  "sw1 sw2",
			want: []TokenKind{TokenIdent, TokenIdent, TokenEOF},
		},
		{
			name: "attribute block",
			src:  `[type=switch] sw1`,
			want: []TokenKind{TokenLBracket, TokenIdent, TokenEquals, TokenIdent, TokenRBracket, TokenIdent, TokenEOF},
		},
		{
			name: "port statement",
			src:  "sw1:3",
			want: []TokenKind{TokenIdent, TokenColon, TokenNumber, TokenEOF},
		},
		{
			name: "link statement",
			src:  "sw1:1 -- hs1:1",
			want: []TokenKind{TokenIdent, TokenColon, TokenNumber, TokenLink, TokenIdent, TokenColon, TokenNumber, TokenEOF},
		},
		{
			name: "injection statement",
			src:  `[a=1] @node hs*`,
			want: []TokenKind{TokenLBracket, TokenIdent, TokenEquals, TokenNumber, TokenRBracket, TokenAt, TokenIdent, TokenIdent, TokenEOF},
		},
		{
			name: "list value",
			src:  `(1, 2.5, "x")`,
			want: []TokenKind{TokenLParen, TokenNumber, TokenComma, TokenNumber, TokenComma, TokenString, TokenRParen, TokenEOF},
		},
		{
			name: "newlines are tokens",
			src:  "a\nb",
			want: []TokenKind{TokenIdent, TokenNewline, TokenIdent, TokenEOF},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, kinds(lexAll(t, tc.src)))
		})
	}
}

func TestLexer_CommentsSkipped(t *testing.T) {
	toks := lexAll(t, "sw1 # trailing comment\n# full-line comment\nsw2")
	assert.Equal(t, []TokenKind{TokenIdent, TokenNewline, TokenNewline, TokenIdent, TokenEOF}, kinds(toks))
	assert.Equal(t, "sw1", toks[0].Literal)
	assert.Equal(t, "sw2", toks[3].Literal)
}

func TestLexer_SubnodePathIsOneToken(t *testing.T) {
	toks := lexAll(t, "rack1>card2>p")
	require.Equal(t, TokenIdent, toks[0].Kind)
	assert.Equal(t, "rack1>card2>p", toks[0].Literal)
}

func TestLexer_QuotedString(t *testing.T) {
	t.Run("verbatim content", func(t *testing.T) {
		toks := lexAll(t, `"hello world # not a comment"`)
		require.Equal(t, TokenString, toks[0].Kind)
		assert.Equal(t, "hello world # not a comment", toks[0].Literal)
	})

	t.Run("no escape processing", func(t *testing.T) {
		toks := lexAll(t, `"a\nb"`)
		require.Equal(t, TokenString, toks[0].Kind)
		assert.Equal(t, `a\nb`, toks[0].Literal)
	})

	t.Run("unterminated at newline", func(t *testing.T) {
		lex := NewLexer([]byte("\"open\nrest"))
		_, err := lex.Next()
		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr)
		assert.Contains(t, lexErr.Error(), "unterminated string")
	})

	t.Run("unterminated at EOF", func(t *testing.T) {
		lex := NewLexer([]byte(`"open`))
		_, err := lex.Next()
		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr)
	})
}

func TestLexer_FencedBlock(t *testing.T) {
	t.Run("verbatim including indentation", func(t *testing.T) {
		src := "```\n  line1\n\tline2\n```"
		toks := lexAll(t, src)
		require.Equal(t, TokenText, toks[0].Kind)
		assert.Equal(t, "\n  line1\n\tline2\n", toks[0].Literal)
	})

	t.Run("structural characters are content", func(t *testing.T) {
		toks := lexAll(t, "```[a=b] -- # text```")
		require.Equal(t, TokenText, toks[0].Kind)
		assert.Equal(t, "[a=b] -- # text", toks[0].Literal)
	})

	t.Run("unterminated", func(t *testing.T) {
		lex := NewLexer([]byte("```\nopen"))
		_, err := lex.Next()
		var lexErr *LexError
		require.ErrorAs(t, err, &lexErr)
		assert.Contains(t, lexErr.Error(), "unterminated multiline block")
	})
}

func TestLexer_Numbers(t *testing.T) {
	testCases := []struct {
		src     string
		literal string
	}{
		{"42", "42"},
		{"2.5", "2.5"},
		{"-7", "-7"},
		{"1e3", "1e3"},
		{"2.5e-2", "2.5e-2"},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			toks := lexAll(t, tc.src)
			require.Equal(t, TokenNumber, toks[0].Kind)
			assert.Equal(t, tc.literal, toks[0].Literal)
		})
	}
}

func TestLexer_LinkVersusNegativeNumber(t *testing.T) {
	toks := lexAll(t, "a -- b")
	assert.Equal(t, TokenLink, toks[1].Kind)

	toks = lexAll(t, "x = -5")
	assert.Equal(t, TokenNumber, toks[2].Kind)
	assert.Equal(t, "-5", toks[2].Literal)
}

func TestLexer_Positions(t *testing.T) {
	toks := lexAll(t, "sw1\n  sw2")
	assert.Equal(t, Position{Line: 1, Column: 1, Offset: 0}, toks[0].Pos)
	assert.Equal(t, Position{Line: 2, Column: 3, Offset: 6}, toks[2].Pos)
}

func TestLexer_InvalidCharacter(t *testing.T) {
	lex := NewLexer([]byte("sw1 & sw2"))
	_, err := lex.Next()
	require.NoError(t, err)
	_, err = lex.Next()
	var lexErr *LexError
	require.ErrorAs(t, err, &lexErr)
	assert.Equal(t, 1, lexErr.Pos.Line)
	assert.Equal(t, 5, lexErr.Pos.Column)
}
