package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/sqlscout/pkg/extract"
)

// Mode selects the console output format.
type Mode string

// Output modes.
const (
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// previewLimit caps the statement preview length in text output.
const previewLimit = 100

// Styles groups the lipgloss styles used by text rendering.
type Styles struct {
	Title   lipgloss.Style
	Warn    lipgloss.Style
	Error   lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
}

// DefaultStyles returns the default console styles.
func DefaultStyles() *Styles {
	return &Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:   lipgloss.NewStyle().Faint(true),
	}
}

// Renderer writes per-statement reports and the run summary.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer for the given mode.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeText
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: DefaultStyles()}
}

// statementJSON is the machine-readable per-statement shape.
type statementJSON struct {
	Origin          string   `json:"origin"`
	Index           int      `json:"index"`
	Query           string   `json:"query"`
	Tables          []string `json:"tables"`
	Columns         []string `json:"columns,omitempty"`
	JoinConditions  []string `json:"join_conditions"`
	WhereConditions []string `json:"where_conditions"`
	Comments        []string `json:"comments,omitempty"`
	HasUnion        bool     `json:"has_union,omitempty"`
	Partial         bool     `json:"partial,omitempty"`
	Error           string   `json:"error,omitempty"`
}

// Statement renders one extraction result.
func (r *Renderer) Statement(res *extract.Result) {
	if r.mode == ModeJSON {
		rec := statementJSON{
			Origin:          res.Origin,
			Index:           res.Index,
			Query:           res.Query,
			Tables:          res.Tables,
			Columns:         res.Columns,
			JoinConditions:  res.JoinConditions,
			WhereConditions: res.WhereConditions,
			Comments:        res.Comments,
			HasUnion:        res.HasUnion,
			Partial:         res.Partial,
		}
		if res.Err != nil {
			rec.Error = res.Err.Error()
		}
		enc := json.NewEncoder(r.out)
		_ = enc.Encode(rec)
		return
	}

	_, _ = fmt.Fprintln(r.out, r.styles.Title.Render(fmt.Sprintf("### Query %d (%s) ###", res.Index, res.Origin)))
	_, _ = fmt.Fprintf(r.out, "Query: %s\n", preview(res.Query))
	for _, c := range res.Comments {
		_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render(c))
	}

	if res.HasUnion {
		_, _ = fmt.Fprintln(r.out, r.styles.Warn.Render("UNION query detected - results merge all SELECT branches"))
	}
	if res.Err != nil {
		label := "extraction failed"
		if res.Partial {
			label = "partial extraction"
		}
		_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render(fmt.Sprintf("%s: %v", label, res.Err)))
		if res.Failed() {
			return
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.AppendRow(table.Row{"Tables", joinLines(res.Tables)})
	if len(res.Columns) > 0 {
		t.AppendRow(table.Row{"Columns", joinLines(res.Columns)})
	}
	t.AppendRow(table.Row{"JOIN Conditions", joinLinesOr(res.JoinConditions, noJoinConditions)})
	t.AppendRow(table.Row{"WHERE Conditions", joinLinesOr(res.WhereConditions, noWhereConditions)})
	t.Render()
	_, _ = fmt.Fprintln(r.out)
}

// Exported reports a written CSV file.
func (r *Renderer) Exported(path string) {
	if r.mode == ModeJSON {
		return
	}
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render("exported: "+path))
}

// Summary holds the run totals.
type Summary struct {
	RunID      string
	Files      int
	Statements int
	Failed     int
	Exported   int
	Elapsed    string
}

// Summary renders the end-of-run summary.
func (r *Renderer) Summary(s Summary) {
	if r.mode == ModeJSON {
		enc := json.NewEncoder(r.out)
		_ = enc.Encode(map[string]any{
			"run_id":     s.RunID,
			"files":      s.Files,
			"statements": s.Statements,
			"failed":     s.Failed,
			"exported":   s.Exported,
			"elapsed":    s.Elapsed,
		})
		return
	}

	line := fmt.Sprintf("%d statements from %d files in %s", s.Statements, s.Files, s.Elapsed)
	if s.Exported > 0 {
		line += fmt.Sprintf(", %d exported", s.Exported)
	}
	style := r.styles.Success
	if s.Failed > 0 {
		line += fmt.Sprintf(", %d failed", s.Failed)
		style = r.styles.Warn
	}
	_, _ = fmt.Fprintln(r.out, style.Render(line))
	_, _ = fmt.Fprintln(r.out, r.styles.Muted.Render("run "+s.RunID))
}

func preview(q string) string {
	if len(q) <= previewLimit {
		return q
	}
	return q[:previewLimit] + "..."
}

func joinLines(values []string) string {
	return strings.Join(values, "\n")
}

func joinLinesOr(values []string, placeholder string) string {
	if len(values) == 0 {
		return placeholder
	}
	return joinLines(values)
}
