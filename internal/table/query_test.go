package table

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/config"
)

// mockDialectHandler speaks a postgres-flavored dialect without a driver.
type mockDialectHandler struct {
	pool *sql.DB
}

func (m *mockDialectHandler) CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	return m.pool, nil
}

func (m *mockDialectHandler) CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error) {
	return m.pool, nil
}

func (m *mockDialectHandler) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

func (m *mockDialectHandler) Placeholder(ordinal int) string {
	return fmt.Sprintf("$%d", ordinal)
}

func (m *mockDialectHandler) StdDevPop(expr string) string {
	return fmt.Sprintf("STDDEV_POP(%s)", expr)
}

func (m *mockDialectHandler) ListColumns(db *DB, tableName string) ([]ColumnInfo, error) {
	return []ColumnInfo{
		{Name: "species", DataType: "text"},
		{Name: "price", DataType: "numeric"},
	}, nil
}

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	pool, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })
	return &DB{
		Pool:    pool,
		Handler: &mockDialectHandler{pool: pool},
		Table:   "plants",
	}, mock
}

func TestRowCount(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "plants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := db.RowCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountWithPredicate(t *testing.T) {
	db, mock := newMockDB(t)
	query := `SELECT COUNT(*) FROM "plants" WHERE "species" IS NULL OR ("price" < $1 OR "price" > $2)`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(0.0, 100.0).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := db.Count(context.Background(), AnyOf(
		IsNull("species"),
		OutsideRange("price", 0, 100),
	))
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountMatchAllOmitsWhere(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "plants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := db.Count(context.Background(), MatchAll())
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupedCount(t *testing.T) {
	db, mock := newMockDB(t)
	query := `SELECT "species", COUNT(*) FROM "plants" WHERE "price" IS NULL GROUP BY "species"`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows([]string{"species", "count"}).
			AddRow("florist", 2).
			AddRow(nil, 1))

	counts, err := db.GroupedCount(context.Background(), "species", AnyOf(IsNull("price")))
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"florist": 2, "": 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateRowCount(t *testing.T) {
	db, mock := newMockDB(t)
	query := `SELECT COALESCE(SUM(dup.cnt), 0) FROM (SELECT COUNT(*) AS cnt FROM "plants" GROUP BY "species", "price" HAVING COUNT(*) > 1) AS dup`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows([]string{"sum"}).AddRow(4))

	n, err := db.DuplicateRowCount(context.Background(), []string{"species", "price"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDuplicateRowCountRequiresKeys(t *testing.T) {
	db, _ := newMockDB(t)
	_, err := db.DuplicateRowCount(context.Background(), nil)
	assert.Error(t, err)
}

func TestGroupedDuplicateRowCount(t *testing.T) {
	db, mock := newMockDB(t)
	query := `SELECT dup.grp, SUM(dup.cnt) FROM (SELECT "species" AS grp, COUNT(*) AS cnt FROM "plants" GROUP BY "species", "price" HAVING COUNT(*) > 1) AS dup GROUP BY dup.grp`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows([]string{"grp", "sum"}).AddRow("florist", 2))

	counts, err := db.GroupedDuplicateRowCount(context.Background(), "species", []string{"price"})
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"florist": 2}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMeanNullYieldsZero(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT AVG("price") FROM "plants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"avg"}).AddRow(nil))

	mean, err := db.Mean(context.Background(), "price")
	require.NoError(t, err)
	assert.Zero(t, mean)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStdDevUsesDialectFunction(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT STDDEV_POP("price") FROM "plants"`)).
		WillReturnRows(sqlmock.NewRows([]string{"stddev"}).AddRow(2.5))

	dev, err := db.StdDev(context.Background(), "price")
	require.NoError(t, err)
	assert.InDelta(t, 2.5, dev, 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRows(t *testing.T) {
	db, mock := newMockDB(t)
	query := `SELECT "species", "price" FROM "plants" WHERE "price" < $1`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(0.0).
		WillReturnRows(sqlmock.NewRows([]string{"species", "price"}).
			AddRow("weed", -2.0).
			AddRow(nil, -1.0))

	rows, err := db.Rows(context.Background(), AnyOf(LessThan("price", 0)))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, Text("weed"), rows[0]["species"])
	assert.Equal(t, Number(-2), rows[0]["price"])
	assert.True(t, rows[1]["species"].IsNull())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryErrorIsWrapped(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM "plants"`)).
		WillReturnError(fmt.Errorf("connection reset"))

	_, err := db.RowCount(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "plants")
	assert.Contains(t, err.Error(), "connection reset")
}

func TestDialectHandlerRegistry(t *testing.T) {
	RegisterDialectHandler("mockdialect", &mockDialectHandler{})
	handler, err := GetDialectHandler("mockdialect")
	require.NoError(t, err)
	assert.NotNil(t, handler)

	_, err = GetDialectHandler("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database dialect")
}
