package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindStringIsStable(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{GENID, "GENID"},
		{ARROW, "->"},
		{LET, "let"},
		{EOF, "EOF"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.k.String(), "Kind(%d)", c.k)
	}
}

func TestReservedWordsRoundTripThroughKindString(t *testing.T) {
	for word, kind := range Reserved {
		require.NotEqual(t, ILLEGAL, kind, "reserved word %q must map to a real kind", word)
		assert.NotEmpty(t, kind.String())
	}
}

func TestBooleansAreDistinctFromReserved(t *testing.T) {
	for word, kind := range Booleans {
		_, alsoReserved := Reserved[word]
		assert.False(t, alsoReserved, "%q should not appear in both Reserved and Booleans", word)
		assert.Contains(t, []Kind{TRUE, FALSE}, kind)
	}
}

func TestTokenStringIncludesPosition(t *testing.T) {
	tok := Token{Kind: GENID, Text: "koko", Value: "koko", Line: 3, Column: 5}
	s := tok.String()
	require.Contains(t, s, "koko")
	assert.Contains(t, s, "3")
	assert.Contains(t, s, "5")
}

func TestIsKeyword(t *testing.T) {
	tok := Token{Kind: LET, Text: "let"}
	assert.True(t, tok.IsKeyword("let"))
	assert.False(t, tok.IsKeyword("rec"))

	notKeyword := Token{Kind: GENID, Text: "let"}
	assert.False(t, notKeyword.IsKeyword("let"), "a GENID spelled 'let' is not the keyword")
}
