// Package schema declares the catalog relations: products, variants and the
// products_variants join table that carries a value.
package schema

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const (
	ProductsTable         = "products"
	VariantsTable         = "variants"
	ProductsVariantsTable = "products_variants"
)

const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

var postgresDDL = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id     BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name   VARCHAR NOT NULL,
		cost   DOUBLE PRECISION NOT NULL,
		active BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS variants (
		id   BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		name VARCHAR NOT NULL,
		CONSTRAINT variants_name_key UNIQUE (name)
	)`,
	`CREATE TABLE IF NOT EXISTS products_variants (
		id         BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
		variant_id BIGINT NOT NULL REFERENCES variants (id),
		product_id BIGINT NOT NULL REFERENCES products (id),
		value      VARCHAR
	)`,
	`CREATE INDEX IF NOT EXISTS products_variants_product_id_idx ON products_variants (product_id)`,
}

var sqliteDDL = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id     INTEGER PRIMARY KEY AUTOINCREMENT,
		name   TEXT NOT NULL,
		cost   REAL NOT NULL,
		active BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS variants (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS products_variants (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		variant_id INTEGER NOT NULL REFERENCES variants (id),
		product_id INTEGER NOT NULL REFERENCES products (id),
		value      TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS products_variants_product_id_idx ON products_variants (product_id)`,
}

// Statements returns the DDL for a dialect.
func Statements(dialect string) ([]string, error) {
	switch dialect {
	case DialectPostgres:
		return postgresDDL, nil
	case DialectSQLite:
		return sqliteDDL, nil
	default:
		return nil, fmt.Errorf("schema: unsupported dialect %q", dialect)
	}
}

// DialectFor maps a database/sql driver name to a dialect.
func DialectFor(driverName string) (string, error) {
	switch driverName {
	case "pgx", "postgres":
		return DialectPostgres, nil
	case "sqlite", "sqlite3":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("schema: no dialect for driver %q", driverName)
	}
}

// Apply creates the catalog tables if they do not exist yet.
func Apply(ctx context.Context, db *sqlx.DB) error {
	dialect, err := DialectFor(db.DriverName())
	if err != nil {
		return err
	}
	stmts, err := Statements(dialect)
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema: apply: %w", err)
		}
	}
	return nil
}
