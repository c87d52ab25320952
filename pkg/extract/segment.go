package extract

import "strings"

// Statement is one semicolon-separated unit of a raw input blob.
// Immutable once produced by Segment.
type Statement struct {
	Raw    string // original text span, comments included
	Text   string // cleaned text: comments stripped, whitespace collapsed
	Origin string // opaque locator supplied by the caller, passed through unmodified
	Index  int    // 1-based ordinal within the blob
}

// Segment splits a raw blob into individual statements at semicolons that
// are not inside a string literal or a comment. Comments are stripped from
// the cleaned text, so a semicolon inside a comment never causes a split
// and commented-out text never leaks into a statement. Fragments that are
// empty after stripping are dropped silently; a blob containing only
// whitespace and comments yields no statements.
func Segment(blob, origin string) []Statement {
	var (
		stmts    []Statement
		cleaned  strings.Builder
		rawStart int
		inSpace  bool
		i        int
	)

	flush := func(end int) {
		text := strings.TrimSpace(cleaned.String())
		cleaned.Reset()
		inSpace = false
		raw := strings.TrimSpace(blob[rawStart:end])
		rawStart = end + 1
		if rawStart > len(blob) {
			rawStart = len(blob)
		}
		if text == "" {
			return
		}
		stmts = append(stmts, Statement{
			Raw:    raw,
			Text:   text,
			Origin: origin,
			Index:  len(stmts) + 1,
		})
	}

	writeSpace := func() {
		if cleaned.Len() > 0 && !inSpace {
			cleaned.WriteByte(' ')
			inSpace = true
		}
	}

	for i < len(blob) {
		ch := blob[i]
		switch {
		case ch == '\'':
			// String literal: copied verbatim, doubled quotes included.
			// An unterminated literal swallows the rest of the blob; the
			// balance check at extraction reports it.
			j := i + 1
			for j < len(blob) {
				if blob[j] == '\'' {
					if j+1 < len(blob) && blob[j+1] == '\'' {
						j += 2
						continue
					}
					j++
					break
				}
				j++
			}
			cleaned.WriteString(blob[i:j])
			inSpace = false
			i = j
		case ch == '-' && i+1 < len(blob) && blob[i+1] == '-':
			// Line comment: skip to end of line.
			for i < len(blob) && blob[i] != '\n' {
				i++
			}
			writeSpace()
		case ch == '/' && i+1 < len(blob) && blob[i+1] == '*':
			// Block comment: skip to closing marker.
			i += 2
			for i < len(blob) {
				if blob[i] == '*' && i+1 < len(blob) && blob[i+1] == '/' {
					i += 2
					break
				}
				i++
			}
			writeSpace()
		case ch == ';':
			flush(i)
			i++
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			writeSpace()
			i++
		default:
			cleaned.WriteByte(ch)
			inSpace = false
			i++
		}
	}
	flush(len(blob))

	return stmts
}
