package table

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/data-quality-engine/internal/config"
)

// Accessor is the read-only view over a tabular dataset that the quality
// engine consumes. Implementations push aggregate computation down to the
// backing store; the engine never materializes full row sets for counting.
type Accessor interface {
	Columns(ctx context.Context) ([]ColumnInfo, error)
	RowCount(ctx context.Context) (int64, error)
	Count(ctx context.Context, where Predicate) (int64, error)
	GroupedCount(ctx context.Context, groupColumn string, where Predicate) (map[string]int64, error)
	DuplicateRowCount(ctx context.Context, keyColumns []string) (int64, error)
	GroupedDuplicateRowCount(ctx context.Context, groupColumn string, keyColumns []string) (map[string]int64, error)
	Mean(ctx context.Context, column string) (float64, error)
	StdDev(ctx context.Context, column string) (float64, error)
	Rows(ctx context.Context, where Predicate) ([]Row, error)
}

var _ Accessor = (*DB)(nil)

// DB is the SQL-backed Accessor. It holds the connection pool, the dialect
// handler and the table it exposes.
type DB struct {
	Pool    *sql.DB
	Handler DialectHandler
	Config  config.DatabaseConfig
	Table   string

	logger *zap.SugaredLogger
}

// ColumnInfo holds basic information about a table column.
type ColumnInfo struct {
	Name     string
	DataType string
}

// DialectHandler covers the pieces of SQL that differ between dialects.
// Query shapes themselves are shared and built in this package.
type DialectHandler interface {
	CreateCloudSQLPool(cfg config.DatabaseConfig) (*sql.DB, error)
	CreateStandardPool(cfg config.DatabaseConfig) (*sql.DB, error)
	QuoteIdentifier(name string) string
	Placeholder(ordinal int) string
	StdDevPop(expr string) string
	ListColumns(db *DB, tableName string) ([]ColumnInfo, error)
}

var (
	dialectHandlers = make(map[string]DialectHandler)
	mu              sync.RWMutex
)

func RegisterDialectHandler(dialect string, handler DialectHandler) {
	mu.Lock()
	defer mu.Unlock()
	dialectHandlers[dialect] = handler
}

func GetDialectHandler(dialect string) (DialectHandler, error) {
	mu.RLock()
	defer mu.RUnlock()
	handler, ok := dialectHandlers[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported database dialect: %s", dialect)
	}
	return handler, nil
}

// New connects a pool for the configured dialect and returns an Accessor
// over the named table. The caller owns the returned DB and must Close it.
func New(cfg config.DatabaseConfig, tableName string, logger *zap.SugaredLogger) (*DB, error) {
	handler, err := GetDialectHandler(cfg.Dialect)
	if err != nil {
		return nil, err
	}
	if tableName == "" {
		return nil, fmt.Errorf("table name cannot be empty")
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	var pool *sql.DB
	if strings.HasPrefix(cfg.Dialect, "cloudsql") {
		pool, err = handler.CreateCloudSQLPool(cfg)
	} else {
		pool, err = handler.CreateStandardPool(cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool for dialect %s: %w", cfg.Dialect, err)
	}

	if err := pool.PingContext(context.Background()); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to database (ping failed) for dialect %s: %w", cfg.Dialect, err)
	}

	return &DB{
		Pool:    pool,
		Handler: handler,
		Config:  cfg,
		Table:   tableName,
		logger:  logger,
	}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database connection pool is not initialized")
	}
	return db.Pool.PingContext(ctx)
}

func (db *DB) Close() error {
	if db.Pool != nil {
		return db.Pool.Close()
	}
	return nil
}

func (db *DB) Columns(ctx context.Context) ([]ColumnInfo, error) {
	if db.Handler == nil {
		return nil, fmt.Errorf("dialect handler not initialized")
	}
	return db.Handler.ListColumns(db, db.Table)
}
