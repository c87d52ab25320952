package extract

import "fmt"

// AliasConflictError reports a duplicate alias within one SELECT branch.
// The conflict is scoped to its branch: sibling branches and sibling
// statements keep processing.
type AliasConflictError struct {
	Alias    string // alias as written in the source
	Existing string // canonical table already registered under Alias
	Table    string // canonical table that attempted to rebind it
	Branch   int    // 1-based branch ordinal within the statement
}

func (e *AliasConflictError) Error() string {
	return fmt.Sprintf("alias conflict in branch %d: %q already refers to %s, cannot rebind to %s",
		e.Branch, e.Alias, e.Existing, e.Table)
}

// UnbalancedDelimiterError reports an unterminated parenthesis or quote
// detected while scanning a statement. The statement is marked failed;
// processing continues with the next statement.
type UnbalancedDelimiterError struct {
	Delimiter string // "(" , ")" or "'"
	Origin    string
}

func (e *UnbalancedDelimiterError) Error() string {
	if e.Origin != "" {
		return fmt.Sprintf("unbalanced %s in statement at %s", e.Delimiter, e.Origin)
	}
	return fmt.Sprintf("unbalanced %s in statement", e.Delimiter)
}
