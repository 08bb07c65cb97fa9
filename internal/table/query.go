package table

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// whereClause renders the predicate into a WHERE fragment using the
// dialect's placeholders. Returns the empty string for the match-all
// predicate.
func (db *DB) whereClause(p Predicate) (string, []interface{}) {
	if p.Empty() {
		return "", nil
	}
	q := db.Handler.QuoteIdentifier
	var frags []string
	var args []interface{}
	ordinal := 1
	next := func(v float64) string {
		ph := db.Handler.Placeholder(ordinal)
		ordinal++
		args = append(args, v)
		return ph
	}
	for _, c := range p.Any {
		col := q(c.Column)
		switch c.Op {
		case OpIsNull:
			frags = append(frags, fmt.Sprintf("%s IS NULL", col))
		case OpOutsideRange:
			frags = append(frags, fmt.Sprintf("(%s < %s OR %s > %s)", col, next(c.Lo), col, next(c.Hi)))
		case OpLessThan:
			frags = append(frags, fmt.Sprintf("%s < %s", col, next(c.Value)))
		case OpGreaterThan:
			frags = append(frags, fmt.Sprintf("%s > %s", col, next(c.Value)))
		}
	}
	return " WHERE " + strings.Join(frags, " OR "), args
}

func (db *DB) quotedKeyList(columns []string) string {
	q := db.Handler.QuoteIdentifier
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = q(c)
	}
	return strings.Join(quoted, ", ")
}

func (db *DB) RowCount(ctx context.Context) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", db.Handler.QuoteIdentifier(db.Table))
	var n int64
	if err := db.Pool.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("row count for table %s: %w", db.Table, err)
	}
	return n, nil
}

func (db *DB) Count(ctx context.Context, where Predicate) (int64, error) {
	clause, args := db.whereClause(where)
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", db.Handler.QuoteIdentifier(db.Table), clause)
	var n int64
	if err := db.Pool.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count for table %s: %w", db.Table, err)
	}
	return n, nil
}

func (db *DB) GroupedCount(ctx context.Context, groupColumn string, where Predicate) (map[string]int64, error) {
	clause, args := db.whereClause(where)
	group := db.Handler.QuoteIdentifier(groupColumn)
	query := fmt.Sprintf("SELECT %s, COUNT(*) FROM %s%s GROUP BY %s",
		group, db.Handler.QuoteIdentifier(db.Table), clause, group)

	rows, err := db.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("grouped count for table %s: %w", db.Table, err)
	}
	defer rows.Close()

	return scanGroupedCounts(rows)
}

// DuplicateRowCount counts rows that share their key-column tuple with at
// least one other row: the sum of group sizes over groups of two or more,
// not the number of such groups.
func (db *DB) DuplicateRowCount(ctx context.Context, keyColumns []string) (int64, error) {
	if len(keyColumns) == 0 {
		return 0, fmt.Errorf("duplicate key columns cannot be empty")
	}
	keys := db.quotedKeyList(keyColumns)
	query := fmt.Sprintf(
		"SELECT COALESCE(SUM(dup.cnt), 0) FROM (SELECT COUNT(*) AS cnt FROM %s GROUP BY %s HAVING COUNT(*) > 1) AS dup",
		db.Handler.QuoteIdentifier(db.Table), keys)
	var n int64
	if err := db.Pool.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("duplicate row count for table %s: %w", db.Table, err)
	}
	return n, nil
}

// GroupedDuplicateRowCount attributes duplicate rows to their group column:
// duplicates are detected on (groupColumn, keyColumns...) tuples and summed
// per group value.
func (db *DB) GroupedDuplicateRowCount(ctx context.Context, groupColumn string, keyColumns []string) (map[string]int64, error) {
	if len(keyColumns) == 0 {
		return nil, fmt.Errorf("duplicate key columns cannot be empty")
	}
	group := db.Handler.QuoteIdentifier(groupColumn)
	keys := db.quotedKeyList(append([]string{groupColumn}, keyColumns...))
	query := fmt.Sprintf(
		"SELECT dup.grp, SUM(dup.cnt) FROM (SELECT %s AS grp, COUNT(*) AS cnt FROM %s GROUP BY %s HAVING COUNT(*) > 1) AS dup GROUP BY dup.grp",
		group, db.Handler.QuoteIdentifier(db.Table), keys)

	rows, err := db.Pool.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("grouped duplicate count for table %s: %w", db.Table, err)
	}
	defer rows.Close()

	return scanGroupedCounts(rows)
}

// Mean averages the column over non-null values. An empty column yields 0.
func (db *DB) Mean(ctx context.Context, column string) (float64, error) {
	query := fmt.Sprintf("SELECT AVG(%s) FROM %s",
		db.Handler.QuoteIdentifier(column), db.Handler.QuoteIdentifier(db.Table))
	var mean sql.NullFloat64
	if err := db.Pool.QueryRowContext(ctx, query).Scan(&mean); err != nil {
		return 0, fmt.Errorf("mean of column %s: %w", column, err)
	}
	if !mean.Valid {
		return 0, nil
	}
	return mean.Float64, nil
}

// StdDev computes the population standard deviation over non-null values.
// Empty and single-row columns yield 0.
func (db *DB) StdDev(ctx context.Context, column string) (float64, error) {
	query := fmt.Sprintf("SELECT %s FROM %s",
		db.Handler.StdDevPop(db.Handler.QuoteIdentifier(column)),
		db.Handler.QuoteIdentifier(db.Table))
	var dev sql.NullFloat64
	if err := db.Pool.QueryRowContext(ctx, query).Scan(&dev); err != nil {
		return 0, fmt.Errorf("stddev of column %s: %w", column, err)
	}
	if !dev.Valid {
		return 0, nil
	}
	return dev.Float64, nil
}

func (db *DB) Rows(ctx context.Context, where Predicate) ([]Row, error) {
	columns, err := db.Columns(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}

	clause, args := db.whereClause(where)
	query := fmt.Sprintf("SELECT %s FROM %s%s",
		db.quotedKeyList(names), db.Handler.QuoteIdentifier(db.Table), clause)

	rows, err := db.Pool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select rows from table %s: %w", db.Table, err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		raw := make([]interface{}, len(names))
		ptrs := make([]interface{}, len(names))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row from table %s: %w", db.Table, err)
		}
		row := make(Row, len(names))
		for i, name := range names {
			row[name] = valueFrom(raw[i])
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows of table %s: %w", db.Table, err)
	}
	return result, nil
}

func scanGroupedCounts(rows *sql.Rows) (map[string]int64, error) {
	counts := make(map[string]int64)
	for rows.Next() {
		var key sql.NullString
		var n int64
		if err := rows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("error scanning grouped count: %w", err)
		}
		counts[key.String] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grouped count rows: %w", err)
	}
	return counts, nil
}
