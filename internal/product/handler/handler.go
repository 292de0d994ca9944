package handler

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/middleware"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type CatalogHandler struct {
	UnimplementedCatalogServiceServer

	uc     product.UseCase
	logger logger.ZapLogger
}

func NewCatalogHandler(uc product.UseCase, log logger.ZapLogger) *CatalogHandler {
	return &CatalogHandler{
		uc:     uc,
		logger: log,
	}
}

// CreateProduct expects {name, cost, active, variants: [{name, values: [...]}]}
// and answers {id}.
func (h *CatalogHandler) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := parseNewCompleteProduct(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	id, err := h.uc.CreateProduct(ctx, input)
	if err != nil {
		h.logger.Error("failed to create product", requestID(ctx), zap.Error(err))
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{"id": id})
}

func (h *CatalogHandler) ListProducts(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	products, err := h.uc.ListProducts(ctx)
	if err != nil {
		h.logger.Error("failed to list products", requestID(ctx), zap.Error(err))
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{"products": productsToList(products)})
}

func (h *CatalogHandler) GetProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := parseID(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	p, err := h.uc.GetProduct(ctx, id)
	if err != nil {
		if !errors.Is(err, product.ErrProductNotFound) {
			h.logger.Error("failed to get product", requestID(ctx), zap.Int64("product_id", id), zap.Error(err))
		}
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{"product": productToMap(p)})
}

func (h *CatalogHandler) SearchProducts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	query := req.GetFields()["query"].GetStringValue()

	products, err := h.uc.SearchProducts(ctx, query)
	if err != nil {
		h.logger.Error("failed to search products", requestID(ctx), zap.String("query", query), zap.Error(err))
		return nil, toStatus(err)
	}

	return structpb.NewStruct(map[string]any{"products": productsToList(products)})
}

func requestID(ctx context.Context) zap.Field {
	return zap.String("request_id", middleware.RequestIDFromContext(ctx))
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, product.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, product.ErrProductNotFound):
		return status.Error(codes.NotFound, "product not found")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func productsToList(products []model.ProductWithVariants) []any {
	out := make([]any, len(products))
	for i := range products {
		out[i] = productToMap(&products[i])
	}
	return out
}
