package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	assert.Equal(t, SELECT, LookupIdent("select"))
	assert.Equal(t, BETWEEN, LookupIdent("between"))
	assert.Equal(t, USING, LookupIdent("using"))
	assert.Equal(t, NATURAL, LookupIdent("natural"))
	assert.Equal(t, IDENT, LookupIdent("customers"))
	// Lookup takes lowercased input; mixed case is not a keyword here.
	assert.Equal(t, IDENT, LookupIdent("Select"))
}

func TestClassification(t *testing.T) {
	assert.True(t, IsKeyword(FROM))
	assert.True(t, IsKeyword(WHERE))
	assert.False(t, IsKeyword(IDENT))
	assert.False(t, IsKeyword(EQ))

	assert.True(t, IsOperator(EQ))
	assert.True(t, IsOperator(DOT))
	assert.False(t, IsOperator(FROM))
}

func TestString(t *testing.T) {
	assert.Equal(t, "FROM", FROM.String())
	assert.Equal(t, "<=", LE.String())
	assert.Equal(t, "TOKEN(9999)", Type(9999).String())
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: Position{Line: 1, Column: 1, Offset: 5}, End: Position{Line: 1, Column: 6, Offset: 10}}
	assert.True(t, s.Contains(5))
	assert.True(t, s.Contains(9))
	assert.False(t, s.Contains(10))
	assert.True(t, s.IsValid())
}
