// Package storage opens the database behind the key/value store and brings
// its schema up to date.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Breathless11/Tamamla/internal/client/repositories/repomanager"
	"github.com/Breathless11/Tamamla/internal/filex"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// IsPostgresDSN reports whether dsn addresses a PostgreSQL server rather than
// a local SQLite file.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// isPlainPath reports whether a SQLite dsn is an ordinary file path, as opposed
// to a "file:" URI or an in-memory database.
func isPlainPath(dsn string) bool {
	return dsn != "" && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:")
}

// Open connects to dsn, runs migrations and returns the handle together with
// the matching repository manager. Missing parent directories of a SQLite
// file are created.
//
// SQLite is limited to a single connection afterwards so that every write is
// serialized by the pool; callers must therefore never use the *sql.DB while
// holding a transaction from it.
func Open(ctx context.Context, dsn string) (*sql.DB, repomanager.RepositoryManager, error) {
	driver, rm := "sqlite", repomanager.NewSQLite()
	if IsPostgresDSN(dsn) {
		driver, rm = "pgx", repomanager.NewPostgres()
	} else if isPlainPath(dsn) {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, nil, fmt.Errorf("prepare %s: %w", dsn, err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	return db, rm, nil
}
