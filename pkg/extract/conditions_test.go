package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conjunctsOf(t *testing.T, sql string) []string {
	t.Helper()
	branches := makeBranches(t, sql)
	require.Len(t, branches, 1)
	return whereConjuncts(branches[0])
}

func TestWhereConjuncts(t *testing.T) {
	tests := []struct {
		name string
		sql  string
		want []string
	}{
		{
			name: "no where clause",
			sql:  "SELECT id FROM users",
			want: nil,
		},
		{
			name: "single condition",
			sql:  "SELECT id FROM users WHERE status = 'active'",
			want: []string{"status = 'active'"},
		},
		{
			name: "top-level and splits",
			sql:  "SELECT id FROM orders WHERE order_date >= '2024-01-01' AND status = 'completed'",
			want: []string{"order_date >= '2024-01-01'", "status = 'completed'"},
		},
		{
			name: "or never splits",
			sql:  "SELECT id FROM users WHERE status = 'new' OR status = 'trial'",
			want: []string{"status = 'new' OR status = 'trial'"},
		},
		{
			name: "and inside parentheses does not split",
			sql:  "SELECT id FROM users WHERE (a = 1 AND b = 2) OR c = 3",
			want: []string{"(a = 1 AND b = 2) OR c = 3"},
		},
		{
			name: "capture stops before group by",
			sql:  "SELECT region FROM sales WHERE amount > 0 GROUP BY region",
			want: []string{"amount > 0"},
		},
		{
			name: "capture stops before order by",
			sql:  "SELECT id FROM users WHERE active = 1 ORDER BY id",
			want: []string{"active = 1"},
		},
		{
			name: "capture stops before having",
			sql:  "SELECT region FROM sales WHERE amount > 0 HAVING SUM(amount) > 10 ORDER BY region",
			want: []string{"amount > 0"},
		},
		{
			name: "between and is one conjunct",
			sql:  "SELECT id FROM t WHERE d BETWEEN '2024-01-01' AND '2024-12-31' AND status = 'completed'",
			want: []string{"d BETWEEN '2024-01-01' AND '2024-12-31'", "status = 'completed'"},
		},
		{
			name: "two betweens each keep their and",
			sql:  "SELECT id FROM t WHERE a BETWEEN 1 AND 2 AND b BETWEEN 3 AND 4",
			want: []string{"a BETWEEN 1 AND 2", "b BETWEEN 3 AND 4"},
		},
		{
			name: "subquery where is ignored at branch level",
			sql:  "SELECT id FROM t WHERE x IN (SELECT y FROM u WHERE z = 1) AND w = 2",
			want: []string{"x IN (SELECT y FROM u WHERE z = 1)", "w = 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, conjunctsOf(t, tt.sql))
		})
	}
}

func TestWhereCaptureFullClause(t *testing.T) {
	// Scenario: GROUP BY / HAVING after a BETWEEN-carrying WHERE.
	sql := "SELECT s.store_id FROM stores s JOIN regions r ON s.region_id = r.region_id " +
		"JOIN transactions t ON s.store_id = t.store_id " +
		"WHERE t.transaction_date BETWEEN '2024-01-01' AND '2024-12-31' AND t.status = 'completed' " +
		"GROUP BY s.store_id HAVING SUM(t.sales_amount) > 10000"

	got := conjunctsOf(t, sql)
	require.Len(t, got, 2)
	assert.Equal(t, "t.transaction_date BETWEEN '2024-01-01' AND '2024-12-31'", got[0])
	assert.Equal(t, "t.status = 'completed'", got[1])
}
