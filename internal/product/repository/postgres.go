package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/jmoiron/sqlx"
)

// ListPageSize caps the number of products returned by FindAll.
const ListPageSize = 10

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Queries are written with ? placeholders and rebound for the driver in use,
// so the same repository runs on postgres and on SQLite in tests.
type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// variantValueRow is one products_variants row joined with its variant name.
type variantValueRow struct {
	model.ProductVariant
	VariantName string `db:"variant_name"`
}

func (r *PGRepository) Create(ctx context.Context, p *model.NewCompleteProduct) (int64, error) {
	const op = "PGRepository.Create"

	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return 0, storageError(op, err)
	}
	defer tx.Rollback()

	productID, err := insertProduct(ctx, tx, &p.Product)
	if err != nil {
		return 0, storageError(op, err)
	}

	for _, nv := range p.Variants {
		variantID, err := upsertVariant(ctx, tx, &nv.Variant)
		if err != nil {
			return 0, storageError(op, err)
		}

		for _, value := range nv.Values {
			pv := &model.NewProductVariant{
				ProductID: productID,
				VariantID: variantID,
				Value:     value,
			}
			if err := insertProductVariant(ctx, tx, pv); err != nil {
				return 0, storageError(op, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, storageError(op, err)
	}
	return productID, nil
}

func insertProduct(ctx context.Context, tx *sqlx.Tx, p *model.NewProduct) (int64, error) {
	query := `
        INSERT INTO products (name, cost, active)
        VALUES (:name, :cost, :active)
        RETURNING id
    `
	stmt, err := tx.PrepareNamedContext(ctx, query)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var id int64
	if err := stmt.GetContext(ctx, &id, p); err != nil {
		return 0, err
	}
	return id, nil
}

// upsertVariant returns the id of the variant with the given name, creating
// it if needed. The no-op update makes RETURNING yield the existing row on
// conflict, and the unique constraint on name serializes concurrent creators.
func upsertVariant(ctx context.Context, tx *sqlx.Tx, v *model.NewVariant) (int64, error) {
	query := tx.Rebind(`
        INSERT INTO variants (name)
        VALUES (?)
        ON CONFLICT (name) DO UPDATE SET name = excluded.name
        RETURNING id
    `)

	var id int64
	if err := tx.GetContext(ctx, &id, query, v.Name); err != nil {
		return 0, err
	}
	return id, nil
}

func insertProductVariant(ctx context.Context, tx *sqlx.Tx, pv *model.NewProductVariant) error {
	query := `
        INSERT INTO products_variants (product_id, variant_id, value)
        VALUES (:product_id, :variant_id, :value)
    `
	_, err := tx.NamedExecContext(ctx, query, pv)
	return err
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.ProductWithVariants, error) {
	const op = "PGRepository.FindByID"

	var p model.Product
	query := r.DB.Rebind(`SELECT id, name, cost, active FROM products WHERE id = ?`)
	err := r.DB.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, product.ErrProductNotFound)
		}
		return nil, storageError(op, err)
	}

	grouped, err := r.withVariants(ctx, []model.Product{p}, `pv.product_id = ?`, id)
	if err != nil {
		return nil, storageError(op, err)
	}
	return &grouped[0], nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.ProductWithVariants, error) {
	const op = "PGRepository.FindAll"

	var products []model.Product
	query := r.DB.Rebind(`SELECT id, name, cost, active FROM products ORDER BY id ASC LIMIT ?`)
	if err := r.DB.SelectContext(ctx, &products, query, ListPageSize); err != nil {
		return nil, storageError(op, err)
	}

	grouped, err := r.withVariants(ctx, products,
		`pv.product_id IN (SELECT id FROM products ORDER BY id ASC LIMIT ?)`, ListPageSize)
	if err != nil {
		return nil, storageError(op, err)
	}
	return grouped, nil
}

// Search matches products whose name contains query literally: LIKE
// wildcards in the input are escaped. Case sensitivity follows the column
// collation.
func (r *PGRepository) Search(ctx context.Context, query string) ([]model.ProductWithVariants, error) {
	const op = "PGRepository.Search"

	const match = `name LIKE ? ESCAPE '\'`

	var products []model.Product
	pattern := "%" + likeEscaper.Replace(query) + "%"
	q := r.DB.Rebind(`SELECT id, name, cost, active FROM products WHERE ` + match + ` ORDER BY id ASC`)
	if err := r.DB.SelectContext(ctx, &products, q, pattern); err != nil {
		return nil, storageError(op, err)
	}

	grouped, err := r.withVariants(ctx, products,
		`pv.product_id IN (SELECT id FROM products WHERE `+match+`)`, pattern)
	if err != nil {
		return nil, storageError(op, err)
	}
	return grouped, nil
}

// withVariants loads the join rows selected by filter in one query and groups
// them under products, keeping both product order and value order. filter
// restates the product query as a condition on pv.product_id, so the number
// of bind parameters does not grow with the number of products.
func (r *PGRepository) withVariants(ctx context.Context, products []model.Product, filter string, args ...any) ([]model.ProductWithVariants, error) {
	result := make([]model.ProductWithVariants, len(products))
	if len(products) == 0 {
		return result, nil
	}

	index := make(map[int64]int, len(products))
	for i, p := range products {
		index[p.ID] = i
		result[i] = model.ProductWithVariants{Product: p, Variants: []model.VariantValue{}}
	}

	query := r.DB.Rebind(`
        SELECT pv.id, pv.variant_id, pv.product_id, pv.value, v.name AS variant_name
        FROM products_variants pv
        INNER JOIN variants v ON v.id = pv.variant_id
        WHERE ` + filter + `
        ORDER BY pv.id ASC
    `)

	var rows []variantValueRow
	if err := r.DB.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	// Rows of products committed after the product query are skipped.
	for _, row := range rows {
		i, ok := index[row.ProductID]
		if !ok {
			continue
		}
		result[i].Variants = append(result[i].Variants, model.VariantValue{
			ProductVariant: row.ProductVariant,
			Variant:        model.Variant{ID: row.VariantID, Name: row.VariantName},
		})
	}
	return result, nil
}

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, product.ErrStorage, err)
}
