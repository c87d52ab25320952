package extract

import (
	"github.com/leapstack-labs/sqlscout/pkg/token"
)

// whereConjuncts locates the WHERE clause of a branch and splits its
// predicate into top-level conjuncts. Capture runs from after WHERE up to
// the next top-level GROUP BY, HAVING, ORDER BY, LIMIT or OFFSET, or the
// end of the branch. Splitting happens at every AND that is not nested in
// parentheses and not the AND of a BETWEEN range; OR never splits, since
// OR-joined predicates are one indivisible logical unit. A branch with no
// WHERE clause yields nil.
func whereConjuncts(b *branch) []string {
	start := -1
	depth := 0
	for i, tok := range b.toks {
		switch tok.Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.WHERE:
			if depth == 0 {
				start = i + 1
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 || start >= len(b.toks) {
		return nil
	}

	end := len(b.toks)
	depth = 0
	for i := start; i < len(b.toks); i++ {
		switch b.toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.GROUP, token.HAVING, token.ORDER, token.LIMIT, token.OFFSET:
			if depth == 0 {
				end = i
			}
		}
		if end < len(b.toks) {
			break
		}
	}

	return splitConjuncts(b, start, end)
}

// splitConjuncts splits the token range [start, end) at top-level ANDs.
// A pending-BETWEEN flag suppresses the AND that closes a BETWEEN range:
// once a top-level BETWEEN is seen, the next top-level AND belongs to it
// and is not a split point.
func splitConjuncts(b *branch, start, end int) []string {
	var (
		conjuncts      []string
		segStart       = start
		depth          int
		pendingBetween bool
	)

	emit := func(to int) {
		if text := b.slice(segStart, to-1); text != "" {
			conjuncts = append(conjuncts, text)
		}
	}

	for i := start; i < end; i++ {
		switch b.toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.BETWEEN:
			if depth == 0 {
				pendingBetween = true
			}
		case token.AND:
			if depth != 0 {
				continue
			}
			if pendingBetween {
				pendingBetween = false
				continue
			}
			emit(i)
			segStart = i + 1
		}
	}
	emit(end)

	return conjuncts
}
