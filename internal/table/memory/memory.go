// Package memory provides an in-memory table.Accessor backed by
// materialized rows. It serves two purposes: loading small local datasets
// (CSV files) without a database, and substituting for a live table in
// tests.
package memory

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

// Table is an in-memory Accessor. Aggregate semantics match the SQL
// accessor: nulls are excluded from mean/stddev, numeric comparisons never
// match null or text cells, and stddev is the population definition.
type Table struct {
	columns []table.ColumnInfo
	rows    []table.Row
}

var _ table.Accessor = (*Table)(nil)

func New(columns []table.ColumnInfo, rows []table.Row) *Table {
	return &Table{columns: columns, rows: rows}
}

func (t *Table) Columns(ctx context.Context) ([]table.ColumnInfo, error) {
	out := make([]table.ColumnInfo, len(t.columns))
	copy(out, t.columns)
	return out, nil
}

func (t *Table) RowCount(ctx context.Context) (int64, error) {
	return int64(len(t.rows)), nil
}

func (t *Table) Count(ctx context.Context, where table.Predicate) (int64, error) {
	var n int64
	for _, row := range t.rows {
		if matches(row, where) {
			n++
		}
	}
	return n, nil
}

func (t *Table) GroupedCount(ctx context.Context, groupColumn string, where table.Predicate) (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, row := range t.rows {
		if matches(row, where) {
			counts[row[groupColumn].String()]++
		}
	}
	return counts, nil
}

func (t *Table) DuplicateRowCount(ctx context.Context, keyColumns []string) (int64, error) {
	if len(keyColumns) == 0 {
		return 0, fmt.Errorf("duplicate key columns cannot be empty")
	}
	groups := make(map[string]int64)
	for _, row := range t.rows {
		groups[compositeKey(row, keyColumns)]++
	}
	var total int64
	for _, size := range groups {
		if size > 1 {
			total += size
		}
	}
	return total, nil
}

func (t *Table) GroupedDuplicateRowCount(ctx context.Context, groupColumn string, keyColumns []string) (map[string]int64, error) {
	if len(keyColumns) == 0 {
		return nil, fmt.Errorf("duplicate key columns cannot be empty")
	}
	all := append([]string{groupColumn}, keyColumns...)
	groups := make(map[string]int64)
	groupOf := make(map[string]string)
	for _, row := range t.rows {
		key := compositeKey(row, all)
		groups[key]++
		groupOf[key] = row[groupColumn].String()
	}
	counts := make(map[string]int64)
	for key, size := range groups {
		if size > 1 {
			counts[groupOf[key]] += size
		}
	}
	return counts, nil
}

func (t *Table) Mean(ctx context.Context, column string) (float64, error) {
	sum, n := 0.0, 0
	for _, row := range t.rows {
		if v := row[column]; v.Kind == table.KindNumber {
			sum += v.Number
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func (t *Table) StdDev(ctx context.Context, column string) (float64, error) {
	mean, err := t.Mean(ctx, column)
	if err != nil {
		return 0, err
	}
	sumSq, n := 0.0, 0
	for _, row := range t.rows {
		if v := row[column]; v.Kind == table.KindNumber {
			d := v.Number - mean
			sumSq += d * d
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return math.Sqrt(sumSq / float64(n)), nil
}

func (t *Table) Rows(ctx context.Context, where table.Predicate) ([]table.Row, error) {
	var out []table.Row
	for _, row := range t.rows {
		if matches(row, where) {
			copied := make(table.Row, len(row))
			for k, v := range row {
				copied[k] = v
			}
			out = append(out, copied)
		}
	}
	return out, nil
}

// matches applies the predicate's OR semantics. An empty predicate matches
// every row, mirroring the absence of a WHERE clause.
func matches(row table.Row, where table.Predicate) bool {
	if where.Empty() {
		return true
	}
	for _, c := range where.Any {
		if matchesCondition(row, c) {
			return true
		}
	}
	return false
}

// matchesCondition follows SQL three-valued comparison: a numeric
// comparison against a null or text cell is not satisfied.
func matchesCondition(row table.Row, c table.Condition) bool {
	v := row[c.Column]
	switch c.Op {
	case table.OpIsNull:
		return v.IsNull()
	case table.OpOutsideRange:
		return v.Kind == table.KindNumber && (v.Number < c.Lo || v.Number > c.Hi)
	case table.OpLessThan:
		return v.Kind == table.KindNumber && v.Number < c.Value
	case table.OpGreaterThan:
		return v.Kind == table.KindNumber && v.Number > c.Value
	}
	return false
}

// compositeKey builds a grouping key over the named columns. Nulls group
// together, as they do under SQL GROUP BY.
func compositeKey(row table.Row, columns []string) string {
	parts := make([]string, len(columns))
	for i, col := range columns {
		v := row[col]
		if v.IsNull() {
			parts[i] = "\x00"
		} else {
			parts[i] = v.String()
		}
	}
	return strings.Join(parts, "\x1f")
}
