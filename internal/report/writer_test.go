package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readRecords(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportWritesFourFieldRecord(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(dir)

	path, err := e.Export("queries.sql", ExportRecord{
		Query:           "SELECT o.id FROM orders o JOIN customers c ON o.customer_id = c.customer_id WHERE o.status = 'done'",
		Tables:          []string{"orders", "customers"},
		JoinConditions:  []string{"orders.customer_id = customers.customer_id"},
		WhereConditions: []string{"orders.status = 'done'"},
	})
	require.NoError(t, err)

	base := filepath.Base(path)
	assert.True(t, strings.HasPrefix(base, "queries_query_1_"), "got %s", base)
	assert.True(t, strings.HasSuffix(base, ".csv"))

	records := readRecords(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, []string{"Query", "Table Names", "JOIN Conditions", "WHERE Conditions"}, records[0])
	assert.Equal(t, "orders,\ncustomers", records[1][1])
	assert.Equal(t, "orders.customer_id = customers.customer_id", records[1][2])
	assert.Equal(t, "orders.status = 'done'", records[1][3])
}

func TestExportPlaceholdersForEmptyCategories(t *testing.T) {
	e := NewExporter(t.TempDir())

	path, err := e.Export("simple.sql", ExportRecord{
		Query:  "SELECT id FROM users",
		Tables: []string{"users"},
	})
	require.NoError(t, err)

	records := readRecords(t, path)
	require.Len(t, records, 2)
	assert.Equal(t, "No JOIN conditions", records[1][2])
	assert.Equal(t, "No WHERE conditions", records[1][3])
}

func TestExportNumbersStatementsPerSourceFile(t *testing.T) {
	e := NewExporter(t.TempDir())

	p1, err := e.Export("a.sql", ExportRecord{Query: "SELECT 1"})
	require.NoError(t, err)
	p2, err := e.Export("a.sql", ExportRecord{Query: "SELECT 2"})
	require.NoError(t, err)
	p3, err := e.Export("b.sql", ExportRecord{Query: "SELECT 3"})
	require.NoError(t, err)

	assert.Contains(t, filepath.Base(p1), "a_query_1_")
	assert.Contains(t, filepath.Base(p2), "a_query_2_")
	assert.Contains(t, filepath.Base(p3), "b_query_1_")
	assert.NotEqual(t, p1, p2)
}

func TestExportCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	e := NewExporter(dir)

	_, err := e.Export("q.sql", ExportRecord{Query: "SELECT 1"})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
