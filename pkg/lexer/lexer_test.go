package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlscout/pkg/token"
)

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestTokenizeBasicSelect(t *testing.T) {
	toks := Tokenize("SELECT id, name FROM users WHERE id = 42;")

	assert.Equal(t, []token.Type{
		token.SELECT, token.IDENT, token.COMMA, token.IDENT,
		token.FROM, token.IDENT,
		token.WHERE, token.IDENT, token.EQ, token.NUMBER, token.SEMI,
	}, types(toks))
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	toks := Tokenize("select * from T")
	require.Len(t, toks, 4)
	assert.Equal(t, token.SELECT, toks[0].Type)
	assert.Equal(t, token.FROM, toks[2].Type)
	// Identifier case is preserved.
	assert.Equal(t, "T", toks[3].Literal)
}

func TestOperators(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"<=", token.LE},
		{">=", token.GE},
		{"<>", token.NE},
		{"!=", token.NE},
		{"<", token.LT},
		{">", token.GT},
		{"=", token.EQ},
		{"||", token.DPIPE},
		{".", token.DOT},
	}
	for _, tt := range tests {
		toks := Tokenize(tt.input)
		require.Len(t, toks, 1, "input %q", tt.input)
		assert.Equal(t, tt.want, toks[0].Type, "input %q", tt.input)
	}
}

func TestStringLiteral(t *testing.T) {
	toks := Tokenize("'hello'")
	require.Len(t, toks, 1)
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello", toks[0].Literal)
}

func TestStringDoubledQuoteEscape(t *testing.T) {
	toks := Tokenize("'it''s'")
	require.Len(t, toks, 1)
	assert.Equal(t, "it's", toks[0].Literal)
}

func TestQuotedIdentifier(t *testing.T) {
	toks := Tokenize(`"Order Details"`)
	require.Len(t, toks, 1)
	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, "Order Details", toks[0].Literal)
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"123", "123"},
		{"45.67", "45.67"},
		{"1e10", "1e10"},
		{"2E-5", "2E-5"},
	}
	for _, tt := range tests {
		toks := Tokenize(tt.input)
		require.Len(t, toks, 1, "input %q", tt.input)
		assert.Equal(t, token.NUMBER, toks[0].Type)
		assert.Equal(t, tt.want, toks[0].Literal)
	}
}

func TestCommentsAreCollectedNotEmitted(t *testing.T) {
	l := New("SELECT 1 -- line\n/* block */ FROM t")
	var toks []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}

	assert.Equal(t, []token.Type{token.SELECT, token.NUMBER, token.FROM, token.IDENT}, types(toks))
	require.Len(t, l.Comments, 2)
	assert.True(t, l.Comments[0].IsLineComment())
	assert.Equal(t, "-- line", l.Comments[0].Text)
	assert.True(t, l.Comments[1].IsBlockComment())
	assert.Equal(t, "/* block */", l.Comments[1].Text)
}

func TestCommentsHelper(t *testing.T) {
	comments := Comments("-- a\nSELECT 1 /* b */")
	require.Len(t, comments, 2)
	assert.Equal(t, "-- a", comments[0].Text)
	assert.Equal(t, "/* b */", comments[1].Text)

	assert.Empty(t, Comments("SELECT 1"))
}

func TestTokenPositions(t *testing.T) {
	toks := Tokenize("SELECT a\nFROM t")
	require.Len(t, toks, 4)

	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 0, toks[0].Pos.Offset)
	assert.Equal(t, 2, toks[2].Pos.Line) // FROM starts line 2
	assert.Equal(t, 9, toks[2].Pos.Offset)
}

func TestIllegalCharacter(t *testing.T) {
	toks := Tokenize("a ? b")
	require.Len(t, toks, 3)
	assert.Equal(t, token.ILLEGAL, toks[1].Type)
}
