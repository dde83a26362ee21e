// Package repomanager vends the repositories for one storage backend, bound to
// whatever DBTX the caller holds: the *sql.DB for single writes or a *sql.Tx
// when several keys must change together.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/Breathless11/Tamamla/internal/client/migrations"
	"github.com/Breathless11/Tamamla/internal/client/repositories/accounts"
	"github.com/Breathless11/Tamamla/internal/client/repositories/kv"
	"github.com/Breathless11/Tamamla/internal/client/repositories/tasks"
	"github.com/Breathless11/Tamamla/internal/dbx"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Store(db dbx.DBTX) kv.Store
	Accounts(db dbx.DBTX) accounts.Repository
	Tasks(db dbx.DBTX) tasks.Repository
}

// gooseUp is a seam for testing migrations without a database.
var gooseUp = func(ctx context.Context, db *sql.DB, dialect string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

type manager struct {
	dialect  string
	newStore func(db dbx.DBTX) kv.Store
}

func (m *manager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return gooseUp(ctx, db, m.dialect)
}

func (m *manager) Store(db dbx.DBTX) kv.Store {
	return m.newStore(db)
}

func (m *manager) Accounts(db dbx.DBTX) accounts.Repository {
	return accounts.NewKVRepository(m.newStore(db))
}

func (m *manager) Tasks(db dbx.DBTX) tasks.Repository {
	return tasks.NewKVRepository(m.newStore(db))
}

// NewSQLite returns the manager for the local SQLite file (modernc driver).
func NewSQLite() RepositoryManager {
	return &manager{
		dialect:  "sqlite3",
		newStore: func(db dbx.DBTX) kv.Store { return kv.NewSQLiteStore(db) },
	}
}

// NewPostgres returns the manager for a PostgreSQL database (pgx driver).
func NewPostgres() RepositoryManager {
	return &manager{
		dialect:  "pgx",
		newStore: func(db dbx.DBTX) kv.Store { return kv.NewPostgresStore(db) },
	}
}
