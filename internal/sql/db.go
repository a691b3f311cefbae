package sql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/covercore/covercore/internal/logr"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// max conns avail in the pool
const defaultMaxConnections = 10

// DB provides read access to the postgres db.
type DB struct {
	*sql.DB
	logr.Logger
}

// New migrates the database to the latest migration version, and then
// constructs and returns a connection pool.
func New(ctx context.Context, logger logr.Logger, connString string) (*DB, error) {
	if err := Migrate(ctx, logger, connString); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	db, err := sql.Open("pgx", connString)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(defaultMaxConnections)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	logger.Info("connected to database")

	return NewFromDB(logger, db), nil
}

// NewFromDB constructs a DB from an existing connection pool.
func NewFromDB(logger logr.Logger, db *sql.DB) *DB {
	return &DB{DB: db, Logger: logger}
}
