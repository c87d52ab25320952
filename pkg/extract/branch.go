package extract

import (
	"github.com/leapstack-labs/sqlscout/pkg/token"
)

// branch is one SELECT unit of a (possibly UNIONed) statement. Token
// positions stay relative to the owning statement's cleaned text, so raw
// condition text is always sliced out of the same string.
type branch struct {
	index int    // 1-based position within the statement
	stmt  string // owning statement's cleaned text
	toks  []token.Token
	end   int // offset into stmt just past the branch's last token
}

// slice returns the raw text covered by branch tokens i..j inclusive. The
// end of a token is approximated by the start of its successor (exact up
// to whitespace, since the cleaned text is single-spaced); the last token
// of the branch ends at the branch boundary. The result is trimmed.
func (b *branch) slice(i, j int) string {
	if i < 0 || i >= len(b.toks) || j < i {
		return ""
	}
	start := b.toks[i].Pos.Offset
	end := b.end
	if j+1 < len(b.toks) {
		end = b.toks[j+1].Pos.Offset
	}
	return trimSpaceASCII(b.stmt[start:end])
}

// text returns the branch's full raw text.
func (b *branch) text() string {
	return b.slice(0, len(b.toks)-1)
}

// splitBranches splits a statement's token stream at UNION [ALL] keywords
// that sit at parenthesis depth zero. A UNION inside a subquery is not a
// split point. A statement with no top-level UNION yields one branch
// covering the whole statement. The ALL qualifier does not change how the
// branch is split.
func splitBranches(text string, toks []token.Token) []*branch {
	var (
		branches []*branch
		start    int // index of first token in the current branch
		depth    int
	)

	emit := func(end, boundary int) {
		if end <= start {
			return
		}
		branches = append(branches, &branch{
			index: len(branches) + 1,
			stmt:  text,
			toks:  toks[start:end],
			end:   boundary,
		})
	}

	for i := 0; i < len(toks); i++ {
		switch toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.UNION:
			if depth != 0 {
				continue
			}
			emit(i, toks[i].Pos.Offset)
			start = i + 1
			// Skip the optional ALL qualifier.
			if start < len(toks) && toks[start].Type == token.ALL {
				start++
			}
			i = start - 1
		}
	}
	emit(len(toks), len(text))

	return branches
}

func trimSpaceASCII(s string) string {
	for len(s) > 0 && isSpaceByte(s[0]) {
		s = s[1:]
	}
	for len(s) > 0 && isSpaceByte(s[len(s)-1]) {
		s = s[:len(s)-1]
	}
	return s
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
