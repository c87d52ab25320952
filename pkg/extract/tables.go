package extract

import (
	"strings"

	"github.com/leapstack-labs/sqlscout/pkg/token"
)

// TableReference identifies a table designator found in FROM or JOIN
// position: an optional schema qualifier, the table name, and the alias
// if one was written.
type TableReference struct {
	Schema string
	Name   string
	Alias  string
}

// Canonical returns the stable textual identity of the reference:
// "schema.table" when a schema is present, else "table". All resolution
// and deduplication key off this form.
func (t TableReference) Canonical() string {
	if t.Schema != "" {
		return t.Schema + "." + t.Name
	}
	return t.Name
}

// aliasMap is the flat per-branch alias table: alias-or-self-name mapped
// to its table reference. When a table carries no explicit alias its own
// canonical name is registered as its key (self-alias), so every qualified
// reference in a condition resolves through the same lookup path.
type aliasMap struct {
	refs  map[string]TableReference
	order []string
}

func newAliasMap() *aliasMap {
	return &aliasMap{refs: make(map[string]TableReference)}
}

// register adds a reference under its alias (or self-name). Re-registering
// the same canonical table under the same key is a no-op; binding an
// existing key to a different table is an AliasConflictError.
func (m *aliasMap) register(ref TableReference, branchIdx int) error {
	key := ref.Alias
	if key == "" {
		key = ref.Canonical()
	}
	if existing, ok := m.refs[key]; ok {
		if existing.Canonical() == ref.Canonical() {
			return nil
		}
		return &AliasConflictError{
			Alias:    key,
			Existing: existing.Canonical(),
			Table:    ref.Canonical(),
			Branch:   branchIdx,
		}
	}
	m.refs[key] = ref
	m.order = append(m.order, key)
	return nil
}

// lookup resolves an alias key, case-sensitive, as written in the source.
func (m *aliasMap) lookup(name string) (TableReference, bool) {
	ref, ok := m.refs[name]
	return ref, ok
}

// collectTables scans a branch for table designators following FROM and
// JOIN keywords at parenthesis depth zero, registering each in the
// branch's alias map. Join kinds (inner/left/right/full/cross) are not
// distinguished; only the designator and its ON predicate matter. Each
// "JOIN ... ON <predicate>" contributes its predicate verbatim as one
// join condition. A parenthesized source (subquery) registers nothing,
// but it is stepped over so the designators and predicates around it are
// still collected.
func collectTables(b *branch) ([]TableReference, []string, *aliasMap, error) {
	var (
		tables  []TableReference
		joins   []string
		aliases = newAliasMap()
		depth   int
	)

	for i := 0; i < len(b.toks); i++ {
		switch b.toks[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		case token.FROM:
			if depth != 0 {
				continue
			}
			// FROM takes a comma-separated list of sources; derived
			// tables are skipped, designators are registered.
			j := i + 1
			for {
				if ref, next, ok := parseDesignator(b.toks, j); ok {
					if err := aliases.register(ref, b.index); err != nil {
						return nil, nil, aliases, err
					}
					tables = append(tables, ref)
					j = next
				} else if next, ok := skipDerivedTable(b.toks, j); ok {
					j = next
				} else {
					break
				}
				if j >= len(b.toks) || b.toks[j].Type != token.COMMA {
					break
				}
				j++
			}
			i = j - 1
		case token.JOIN:
			if depth != 0 {
				continue
			}
			if ref, next, ok := parseDesignator(b.toks, i+1); ok {
				if err := aliases.register(ref, b.index); err != nil {
					return nil, nil, aliases, err
				}
				tables = append(tables, ref)
				i = next - 1
			} else if next, ok := skipDerivedTable(b.toks, i+1); ok {
				i = next - 1
			}
			if pred, end := captureOnPredicate(b, i+1); pred != "" {
				joins = append(joins, pred)
				i = end - 1
			}
		}
	}

	return tables, joins, aliases, nil
}

// skipDerivedTable advances past a parenthesized source at index i and its
// optional alias, returning the index of the first token after it. The
// derived table itself registers nothing: its alias has no base table to
// resolve to, so qualified references to it pass through unresolved.
func skipDerivedTable(toks []token.Token, i int) (int, bool) {
	if i >= len(toks) || toks[i].Type != token.LPAREN {
		return i, false
	}

	depth := 0
	j := i
	for ; j < len(toks); j++ {
		switch toks[j].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		}
		if depth == 0 {
			break
		}
	}
	if j >= len(toks) {
		return i, false
	}
	j++

	// Optional alias, same shape as a designator's.
	if j < len(toks) && toks[j].Type == token.AS {
		if j+1 < len(toks) && toks[j+1].Type == token.IDENT {
			j += 2
		}
	} else if j < len(toks) && toks[j].Type == token.IDENT {
		j++
	}
	return j, true
}

// parseDesignator recognizes a table designator at index i: one or more
// dot-separated identifiers, optionally followed by an alias (either AS
// plus an identifier, or a bare adjacent identifier that is not itself a
// keyword). Returns the reference, the index of the first token past the
// designator, and whether a designator was present at all (a parenthesis,
// i.e. a subquery, is not one).
func parseDesignator(toks []token.Token, i int) (TableReference, int, bool) {
	if i >= len(toks) || toks[i].Type != token.IDENT {
		return TableReference{}, i, false
	}

	parts := []string{toks[i].Literal}
	i++
	for i+1 < len(toks) && toks[i].Type == token.DOT && toks[i+1].Type == token.IDENT {
		parts = append(parts, toks[i+1].Literal)
		i += 2
	}

	ref := TableReference{Name: parts[len(parts)-1]}
	if len(parts) > 1 {
		ref.Schema = strings.Join(parts[:len(parts)-1], ".")
	}

	// Optional alias.
	if i < len(toks) && toks[i].Type == token.AS {
		if i+1 < len(toks) && toks[i+1].Type == token.IDENT {
			ref.Alias = toks[i+1].Literal
			i += 2
		}
	} else if i < len(toks) && toks[i].Type == token.IDENT {
		ref.Alias = toks[i].Literal
		i++
	}

	return ref, i, true
}

// captureOnPredicate captures the predicate of an ON clause starting at or
// after index i, stopping at the next top-level join or clause keyword or
// at the end of the branch. Returns the raw predicate text and the index
// of the terminating token. The predicate is kept whole (no AND-splitting):
// it is one logical unit tied to its join.
func captureOnPredicate(b *branch, i int) (string, int) {
	if i >= len(b.toks) || b.toks[i].Type != token.ON {
		return "", i
	}

	start := i + 1
	depth := 0
	j := start
	for ; j < len(b.toks); j++ {
		switch b.toks[j].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			depth--
		default:
			if depth == 0 && isPredicateTerminator(b.toks[j].Type) {
				return b.slice(start, j-1), j
			}
		}
	}
	return b.slice(start, j-1), j
}

// isPredicateTerminator reports whether a token type ends an ON predicate
// at top level.
func isPredicateTerminator(t token.Type) bool {
	switch t {
	case token.JOIN, token.INNER, token.LEFT, token.RIGHT, token.FULL, token.CROSS,
		token.WHERE, token.GROUP, token.HAVING, token.ORDER, token.LIMIT, token.OFFSET,
		token.UNION:
		return true
	}
	return false
}
