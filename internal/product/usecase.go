package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type UseCase interface {
	CreateProduct(ctx context.Context, input *model.NewCompleteProduct) (int64, error)
	GetProduct(ctx context.Context, id int64) (*model.ProductWithVariants, error)
	ListProducts(ctx context.Context) ([]model.ProductWithVariants, error)
	SearchProducts(ctx context.Context, query string) ([]model.ProductWithVariants, error)
}
