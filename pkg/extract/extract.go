// Package extract implements static structural extraction from raw SQL
// text: referenced tables, join predicates, and filter predicates, with
// table aliases resolved to their canonical (optionally schema-qualified)
// names. Statements composed of multiple UNIONed SELECT branches are split
// and merged branch by branch.
//
// The engine never executes SQL and never validates semantic correctness;
// unknown columns or aliases are a pass-through outcome, not an error.
// Extraction is pure and allocates per statement, so callers may map many
// statements to concurrent calls with no locking.
package extract

import (
	"errors"

	"github.com/leapstack-labs/sqlscout/pkg/lexer"
	"github.com/leapstack-labs/sqlscout/pkg/token"
)

// Result is the per-statement structural record handed to the persistence
// layer: the cleaned single-line query text plus ordered, deduplicated
// sequences of canonical table names, resolved join conditions, and
// resolved where conditions.
type Result struct {
	Origin string // caller-supplied locator, passed through unmodified
	Index  int    // 1-based statement ordinal within the blob
	Query  string // cleaned statement text

	Tables          []string
	Columns         []string
	JoinConditions  []string
	WhereConditions []string

	// Comments carries the comments embedded in the statement's raw
	// text. Extraction ignores them, the report surfaces them.
	Comments []string

	HasUnion bool

	// Partial is set when at least one branch failed while others
	// contributed; Err carries the detail either way.
	Partial bool
	Err     error
}

// Failed reports whether the statement produced no usable extraction.
func (r *Result) Failed() bool {
	return r.Err != nil && !r.Partial
}

// Extract segments a raw blob into statements and produces one Result per
// statement. The origin locator is attached to every result for the
// caller's own reporting. Blobs containing only whitespace and comments
// yield an empty slice. No failure is fatal: a bad statement is reported
// in its Result and siblings keep processing.
func Extract(blob, origin string) []*Result {
	var results []*Result
	for _, st := range Segment(blob, origin) {
		results = append(results, ExtractStatement(st))
	}
	return results
}

// ExtractStatement runs the engine over a single segmented statement:
// branch split, table and alias collection, condition extraction, alias
// resolution, and order-preserving aggregation across branches.
func ExtractStatement(st Statement) *Result {
	res := &Result{
		Origin: st.Origin,
		Index:  st.Index,
		Query:  st.Text,
	}
	for _, c := range lexer.Comments(st.Raw) {
		res.Comments = append(res.Comments, c.Text)
	}

	if err := checkBalanced(st); err != nil {
		res.Err = err
		return res
	}

	toks := lexer.Tokenize(st.Text)
	for len(toks) > 0 && toks[len(toks)-1].Type == token.SEMI {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return res
	}

	branches := splitBranches(st.Text, toks)
	res.HasUnion = len(branches) > 1

	var (
		branchErrs  []error
		contributed int
	)
	for _, b := range branches {
		tables, joins, aliases, err := collectTables(b)
		if err != nil {
			branchErrs = append(branchErrs, err)
			continue
		}
		for _, ref := range tables {
			res.Tables = append(res.Tables, ref.Canonical())
		}
		for _, pred := range joins {
			res.JoinConditions = append(res.JoinConditions, resolveCondition(pred, aliases))
		}
		for _, conj := range whereConjuncts(b) {
			res.WhereConditions = append(res.WhereConditions, resolveCondition(conj, aliases))
		}
		res.Columns = append(res.Columns, selectColumns(b)...)
		contributed++
	}

	res.Tables = dedupe(res.Tables)
	res.Columns = dedupe(res.Columns)
	res.JoinConditions = dedupe(res.JoinConditions)
	res.WhereConditions = dedupe(res.WhereConditions)

	if len(branchErrs) > 0 {
		res.Err = errors.Join(branchErrs...)
		res.Partial = contributed > 0
	}

	return res
}

// checkBalanced scans a statement's cleaned text for an unterminated
// string literal or unbalanced parentheses before any clause scanning
// relies on them.
func checkBalanced(st Statement) error {
	depth := 0
	for i := 0; i < len(st.Text); i++ {
		switch st.Text[i] {
		case '\'':
			j := i + 1
			for j < len(st.Text) {
				if st.Text[j] == '\'' {
					if j+1 < len(st.Text) && st.Text[j+1] == '\'' {
						j += 2
						continue
					}
					break
				}
				j++
			}
			if j >= len(st.Text) {
				return &UnbalancedDelimiterError{Delimiter: "'", Origin: st.Origin}
			}
			i = j
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return &UnbalancedDelimiterError{Delimiter: ")", Origin: st.Origin}
			}
		}
	}
	if depth != 0 {
		return &UnbalancedDelimiterError{Delimiter: "(", Origin: st.Origin}
	}
	return nil
}

// dedupe removes duplicates by exact text equality, keeping first
// occurrences in order.
func dedupe(in []string) []string {
	if len(in) < 2 {
		return in
	}
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
