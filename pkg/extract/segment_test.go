package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name string
		blob string
		want []string // expected cleaned texts, in order
	}{
		{
			name: "single statement",
			blob: "SELECT id FROM users;",
			want: []string{"SELECT id FROM users"},
		},
		{
			name: "multiple statements",
			blob: "SELECT 1; SELECT 2;\nSELECT 3",
			want: []string{"SELECT 1", "SELECT 2", "SELECT 3"},
		},
		{
			name: "whitespace normalized to single spaces",
			blob: "SELECT\n\tid,\n\tname\nFROM   users",
			want: []string{"SELECT id, name FROM users"},
		},
		{
			name: "semicolon inside string literal does not split",
			blob: "SELECT 'a;b' FROM t; SELECT 2",
			want: []string{"SELECT 'a;b' FROM t", "SELECT 2"},
		},
		{
			name: "semicolon inside line comment does not split",
			blob: "SELECT id -- trailing; not a split\nFROM users;",
			want: []string{"SELECT id FROM users"},
		},
		{
			name: "line comments stripped",
			blob: "-- header comment\nSELECT id FROM users -- tail\n;",
			want: []string{"SELECT id FROM users"},
		},
		{
			name: "block comments stripped",
			blob: "SELECT /* hidden; stuff */ id FROM users",
			want: []string{"SELECT id FROM users"},
		},
		{
			name: "empty input",
			blob: "",
			want: nil,
		},
		{
			name: "only whitespace and comments",
			blob: "  \n-- nothing here\n/* or here */\n;;\n",
			want: nil,
		},
		{
			name: "doubled quote escape stays inside the literal",
			blob: "SELECT 'it''s; fine' FROM t",
			want: []string{"SELECT 'it''s; fine' FROM t"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := Segment(tt.blob, "test.sql")
			require.Len(t, stmts, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want, stmts[i].Text)
				assert.Equal(t, i+1, stmts[i].Index)
				assert.Equal(t, "test.sql", stmts[i].Origin)
			}
		})
	}
}

func TestSegmentRawSpanKeepsComments(t *testing.T) {
	stmts := Segment("SELECT id -- keep me\nFROM users;", "q.sql")
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0].Raw, "-- keep me")
	assert.NotContains(t, stmts[0].Text, "keep me")
}
