package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/pkg/cache"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	cacheKeyList    = "catalog:list"
	cacheKeySearch  = "catalog:search:"
	cacheKeyProduct = "catalog:product:"
)

// Cache is the subset of pkg/cache.RedisClient the use case needs.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

type productUseCase struct {
	repo      product.Repository
	cache     Cache
	publisher EventPublisher
	cacheTTL  time.Duration
	logger    logger.ZapLogger
}

// NewProductUseCase wires the repository with an optional cache and event
// publisher; pass nil to disable either.
func NewProductUseCase(repo product.Repository, cache Cache, publisher EventPublisher, cacheTTL time.Duration, log logger.ZapLogger) product.UseCase {
	return &productUseCase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		cacheTTL:  cacheTTL,
		logger:    log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *model.NewCompleteProduct) (int64, error) {
	if err := validate(input); err != nil {
		return 0, err
	}

	id, err := uc.repo.Create(ctx, input)
	if err != nil {
		return 0, err
	}
	uc.logger.Info("product created", zap.Int64("product_id", id), zap.String("name", input.Product.Name))

	uc.invalidateListCache(ctx)
	uc.publishCreated(ctx, id, input)

	return id, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.ProductWithVariants, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: product id must be positive", product.ErrInvalidInput)
	}

	key := cacheKeyProduct + strconv.FormatInt(id, 10)
	return readThrough(ctx, uc, key, func() (*model.ProductWithVariants, error) {
		return uc.repo.FindByID(ctx, id)
	})
}

func (uc *productUseCase) ListProducts(ctx context.Context) ([]model.ProductWithVariants, error) {
	return readThrough(ctx, uc, cacheKeyList, func() ([]model.ProductWithVariants, error) {
		return uc.repo.FindAll(ctx)
	})
}

func (uc *productUseCase) SearchProducts(ctx context.Context, query string) ([]model.ProductWithVariants, error) {
	key := fmt.Sprintf("%s%x", cacheKeySearch, md5.Sum([]byte(query)))
	return readThrough(ctx, uc, key, func() ([]model.ProductWithVariants, error) {
		return uc.repo.Search(ctx, query)
	})
}

// readThrough serves key from the cache when possible and stores the loaded
// value otherwise. Cache failures never fail the request.
func readThrough[T any](ctx context.Context, uc *productUseCase, key string, load func() (T, error)) (T, error) {
	if uc.cache != nil {
		data, err := uc.cache.Get(ctx, key)
		if err == nil {
			var cached T
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
			uc.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			uc.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(value); err == nil {
			if err := uc.cache.Set(ctx, key, data, uc.cacheTTL); err != nil {
				uc.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return value, nil
}

// invalidateListCache drops list and search results. Cached single products
// stay valid since products are never modified.
func (uc *productUseCase) invalidateListCache(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	for _, pattern := range []string{cacheKeyList, cacheKeySearch + "*"} {
		if err := uc.cache.DeleteByPattern(ctx, pattern); err != nil {
			uc.logger.Error("failed to invalidate cache", zap.String("pattern", pattern), zap.Error(err))
		}
	}
}

// publishCreated emits product.created. The product is already committed,
// so a failed publish is logged and not returned.
func (uc *productUseCase) publishCreated(ctx context.Context, id int64, input *model.NewCompleteProduct) {
	if uc.publisher == nil {
		return
	}

	variants := make([]dto.VariantValuesPayload, len(input.Variants))
	for i, v := range input.Variants {
		variants[i] = dto.VariantValuesPayload{Name: v.Variant.Name, Values: v.Values}
	}

	event := dto.ProductCreatedEvent{
		EventID:   uuid.New().String(),
		EventType: dto.EventTypeProductCreated,
		Payload: dto.ProductCreated{
			ID:       id,
			Name:     input.Product.Name,
			Cost:     input.Product.Cost,
			Active:   input.Product.Active,
			Variants: variants,
		},
		Timestamp: time.Now().UTC(),
	}

	if err := uc.publisher.Publish(ctx, strconv.FormatInt(id, 10), event); err != nil {
		uc.logger.Error("failed to publish product event", zap.Int64("product_id", id), zap.Error(err))
	}
}

func validate(input *model.NewCompleteProduct) error {
	if input == nil {
		return fmt.Errorf("%w: product is required", product.ErrInvalidInput)
	}
	if strings.TrimSpace(input.Product.Name) == "" {
		return fmt.Errorf("%w: product name is required", product.ErrInvalidInput)
	}
	if cost := input.Product.Cost; math.IsNaN(cost) || math.IsInf(cost, 0) {
		return fmt.Errorf("%w: product cost must be a finite number", product.ErrInvalidInput)
	}
	if input.Product.Cost < 0 {
		return fmt.Errorf("%w: product cost must not be negative", product.ErrInvalidInput)
	}
	for _, v := range input.Variants {
		if strings.TrimSpace(v.Variant.Name) == "" {
			return fmt.Errorf("%w: variant name is required", product.ErrInvalidInput)
		}
	}
	return nil
}
