package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	// Create inserts the product, its variants and values in one transaction
	// and returns the new product id.
	Create(ctx context.Context, product *model.NewCompleteProduct) (int64, error)
	FindByID(ctx context.Context, id int64) (*model.ProductWithVariants, error)
	FindAll(ctx context.Context) ([]model.ProductWithVariants, error)
	Search(ctx context.Context, query string) ([]model.ProductWithVariants, error)
}
