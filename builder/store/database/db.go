package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

type DatabaseDialect string

const (
	DialectSQLite   DatabaseDialect = "sqlite"
	DialectPostgres DatabaseDialect = "pg"
)

type DBConfig struct {
	Dialect DatabaseDialect
	DSN     string
}

type Operator struct {
	Core *bun.DB
}

type DB struct {
	Operator
}

func (db *DB) Close() error {
	return db.Core.Close()
}

// SQLiteDSN builds the DSN for a sqlite store file, with foreign keys
// enforced and WAL journaling.
func SQLiteDSN(path string) string {
	return fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
}

// NewDB opens a database handle for the given dialect. The caller owns the
// handle and must Close it.
func NewDB(ctx context.Context, config DBConfig) (*DB, error) {
	var bunDB *bun.DB
	switch config.Dialect {
	case DialectSQLite:
		sqlDB, err := sql.Open(sqliteshim.ShimName, config.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		bunDB = bun.NewDB(sqlDB, sqlitedialect.New(), bun.WithDiscardUnknownColumns())
	case DialectPostgres:
		sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(config.DSN)))
		bunDB = bun.NewDB(sqlDB, pgdialect.New(), bun.WithDiscardUnknownColumns())
	default:
		return nil, fmt.Errorf("unknown database dialect %q", config.Dialect)
	}

	bunDB.AddQueryHook(bundebug.NewQueryHook(bundebug.FromEnv("BUNDEBUG")))

	if err := bunDB.PingContext(ctx); err != nil {
		_ = bunDB.Close()
		return nil, fmt.Errorf("pinging %s database: %w", config.Dialect, err)
	}

	return &DB{Operator{Core: bunDB}}, nil
}

func assertAffectedOneRow(result sql.Result, err error) error {
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected != 1 {
		return fmt.Errorf("expected 1 row affected, got %d", affected)
	}
	return nil
}

func assertAffectedXRows(x int64, result sql.Result, err error) error {
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected != x {
		return fmt.Errorf("expected %d rows affected, got %d", x, affected)
	}
	return nil
}
