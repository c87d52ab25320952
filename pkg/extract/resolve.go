package extract

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlscout/pkg/lexer"
	"github.com/leapstack-labs/sqlscout/pkg/token"
)

// resolveCondition rewrites every alias-qualified identifier in a
// condition to its canonical table form: for each identifier-dot-identifier
// occurrence whose left identifier matches an alias key (case-sensitive,
// as written in the source), the left identifier is replaced by the mapped
// table's canonical name; the right-hand column identifier is untouched.
// Unknown qualifiers pass through unchanged, and unqualified identifiers
// are never rewritten. Resolution is idempotent: canonical names resolve
// to themselves through the self-alias entries.
func resolveCondition(cond string, aliases *aliasMap) string {
	toks := lexer.Tokenize(cond)

	type edit struct {
		start, end int
		repl       string
	}
	var edits []edit

	for i := 0; i+2 < len(toks); i++ {
		if toks[i].Type != token.IDENT || toks[i+1].Type != token.DOT {
			continue
		}
		if toks[i+2].Type != token.IDENT && toks[i+2].Type != token.STAR {
			continue
		}
		// The middle of a longer dotted chain (a.b.c) is not an alias.
		if i > 0 && toks[i-1].Type == token.DOT {
			continue
		}
		ref, ok := aliases.lookup(toks[i].Literal)
		if !ok {
			continue
		}
		start := toks[i].Pos.Offset
		end := start + len(toks[i].Literal)
		// Only rewrite a verbatim unquoted occurrence; quoted identifiers
		// keep their source spelling.
		if end > len(cond) || cond[start:end] != toks[i].Literal {
			continue
		}
		edits = append(edits, edit{start: start, end: end, repl: ref.Canonical()})
	}

	if len(edits) == 0 {
		return cond
	}

	sort.Slice(edits, func(a, b int) bool { return edits[a].start < edits[b].start })

	var out strings.Builder
	prev := 0
	for _, e := range edits {
		out.WriteString(cond[prev:e.start])
		out.WriteString(e.repl)
		prev = e.end
	}
	out.WriteString(cond[prev:])
	return out.String()
}
