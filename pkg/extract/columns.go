package extract

import (
	"github.com/leapstack-labs/sqlscout/pkg/token"
)

// selectColumns reads the select list of a branch: everything between the
// top-level SELECT and its FROM, split at top-level commas. Each item is
// reported by its output name: the alias when one is written, the rightmost
// identifier of a plain (possibly qualified) column reference, "*" for a
// star, and otherwise the item's raw text (expressions, function calls).
// Select-list identifiers are never registered as tables; only FROM/JOIN
// designators are.
func selectColumns(b *branch) []string {
	start := -1
	for i, tok := range b.toks {
		if tok.Type == token.SELECT {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	// Skip the DISTINCT / ALL qualifier.
	if start < len(b.toks) && (b.toks[start].Type == token.DISTINCT || b.toks[start].Type == token.ALL) {
		start++
	}

	end := len(b.toks)
	depth := 0
	for i := start; i < len(b.toks); i++ {
		switch b.toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.FROM:
			if depth == 0 {
				end = i
			}
		}
		if end < len(b.toks) {
			break
		}
	}

	var (
		columns  []string
		segStart = start
	)
	depth = 0
	emit := func(to int) {
		if name := columnName(b, segStart, to); name != "" {
			columns = append(columns, name)
		}
	}
	for i := start; i < end; i++ {
		switch b.toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.COMMA:
			if depth == 0 {
				emit(i)
				segStart = i + 1
			}
		}
	}
	emit(end)

	return columns
}

// columnName derives the output name of one select-list item spanning the
// token range [start, end).
func columnName(b *branch, start, end int) string {
	if start >= end {
		return ""
	}
	toks := b.toks[start:end]

	// Explicit alias wins: the identifier after the last top-level AS.
	depth := 0
	for i := len(toks) - 1; i >= 0; i-- {
		switch toks[i].Type {
		case token.RPAREN:
			depth++
		case token.LPAREN:
			depth--
		case token.AS:
			if depth == 0 && i+1 < len(toks) && toks[i+1].Type == token.IDENT {
				return toks[i+1].Literal
			}
		}
	}

	// Bare star.
	if len(toks) == 1 && toks[0].Type == token.STAR {
		return "*"
	}

	// Plain column reference: identifiers joined by dots, possibly ending
	// in a star (t.*). Report the rightmost component.
	plain := true
	for i, tok := range toks {
		switch {
		case tok.Type == token.IDENT:
		case tok.Type == token.DOT:
		case tok.Type == token.STAR && i == len(toks)-1:
		default:
			plain = false
		}
		if !plain {
			break
		}
	}
	if plain {
		last := toks[len(toks)-1]
		if last.Type == token.STAR {
			return "*"
		}
		return last.Literal
	}

	// Expression without alias: fall back to its raw text.
	return b.slice(start, end-1)
}
