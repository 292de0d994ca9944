// Package testutil provides database fixtures for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/schema"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// NewSQLiteDB opens a private in-memory SQLite database with foreign keys
// enforced. A single connection keeps every query on the same database.
func NewSQLiteDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec("PRAGMA foreign_keys = ON")
	require.NoError(t, err)

	return db
}

// NewCatalogDB is NewSQLiteDB with the catalog tables created.
func NewCatalogDB(t testing.TB) *sqlx.DB {
	t.Helper()

	db := NewSQLiteDB(t)
	require.NoError(t, schema.Apply(context.Background(), db))
	return db
}
