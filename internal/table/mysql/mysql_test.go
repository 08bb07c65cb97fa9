package mysql

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/config"
	"github.com/GoogleCloudPlatform/data-quality-engine/internal/table"
)

func newMockMySQLDB(t *testing.T) (*table.DB, sqlmock.Sqlmock, *mysqlHandler) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}

	handler := mysqlHandler{}
	db := &table.DB{
		Pool:    mockDb,
		Handler: &handler,
		Config: config.DatabaseConfig{
			Dialect: "mysql",
		},
		Table: "plants",
	}
	return db, mock, &handler
}

func TestMySQLQuoteIdentifier(t *testing.T) {
	handler := mysqlHandler{}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Simple name", "mytable", "`mytable`"},
		{"Name with spaces", "my table", "`my table`"},
		{"Name with backtick", "my`table", "`my``table`"},
		{"Empty name", "", "``"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := handler.QuoteIdentifier(tt.in); got != tt.want {
				t.Errorf("QuoteIdentifier() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMySQLPlaceholder(t *testing.T) {
	handler := mysqlHandler{}
	// MySQL placeholders are positional and never numbered.
	if got := handler.Placeholder(1); got != "?" {
		t.Errorf("Placeholder(1) = %v, want ?", got)
	}
	if got := handler.Placeholder(5); got != "?" {
		t.Errorf("Placeholder(5) = %v, want ?", got)
	}
}

func TestMySQLStdDevPop(t *testing.T) {
	handler := mysqlHandler{}
	if got := handler.StdDevPop("`price`"); got != "STDDEV_POP(`price`)" {
		t.Errorf("StdDevPop() = %v, want STDDEV_POP(`price`)", got)
	}
}

func TestMySQLListColumns(t *testing.T) {
	db, mock, handler := newMockMySQLDB(t)
	defer db.Close()
	tableName := "plants"

	query := `
		SELECT COLUMN_NAME, DATA_TYPE
		FROM information_schema.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`
	expectedQuery := regexp.QuoteMeta(query)

	t.Run("Success", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"COLUMN_NAME", "DATA_TYPE"}).
			AddRow("species", "varchar").
			AddRow("price", "decimal")
		mock.ExpectQuery(expectedQuery).WithArgs(tableName).WillReturnRows(rows)

		cols, err := handler.ListColumns(db, tableName)
		if err != nil {
			t.Fatalf("ListColumns() unexpected error: %v", err)
		}
		if len(cols) != 2 || cols[0].Name != "species" || cols[1].DataType != "decimal" {
			t.Errorf("ListColumns() got %+v", cols)
		}
	})

	t.Run("Query Error", func(t *testing.T) {
		dbError := errors.New("access denied")
		mock.ExpectQuery(expectedQuery).WithArgs(tableName).WillReturnError(dbError)

		_, err := handler.ListColumns(db, tableName)
		if err == nil {
			t.Fatalf("ListColumns() expected error, got nil")
		}
		if !errors.Is(err, dbError) {
			t.Errorf("ListColumns() got error %v, want error containing %v", err, dbError)
		}
	})

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

func TestMySQLHandlerRegistered(t *testing.T) {
	for _, dialect := range []string{"mysql", "cloudsqlmysql"} {
		if _, err := table.GetDialectHandler(dialect); err != nil {
			t.Errorf("GetDialectHandler(%q) unexpected error: %v", dialect, err)
		}
	}
}
