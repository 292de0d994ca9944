package handler

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

// errorLogger keeps the fields of every Error call.
type errorLogger struct {
	mu     sync.Mutex
	errors [][]zap.Field
}

func (l *errorLogger) Debug(string, ...zap.Field) {}
func (l *errorLogger) Info(string, ...zap.Field)  {}
func (l *errorLogger) Warn(string, ...zap.Field)  {}
func (l *errorLogger) Fatal(string, ...zap.Field) {}
func (l *errorLogger) Sync() error                { return nil }

func (l *errorLogger) Error(_ string, fields ...zap.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fields)
}

func (l *errorLogger) With(...zap.Field) logger.ZapLogger { return l }

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) CreateProduct(ctx context.Context, input *model.NewCompleteProduct) (int64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUseCase) GetProduct(ctx context.Context, id int64) (*model.ProductWithVariants, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.ProductWithVariants)
	return p, args.Error(1)
}

func (m *MockUseCase) ListProducts(ctx context.Context) ([]model.ProductWithVariants, error) {
	args := m.Called(ctx)
	ps, _ := args.Get(0).([]model.ProductWithVariants)
	return ps, args.Error(1)
}

func (m *MockUseCase) SearchProducts(ctx context.Context, query string) ([]model.ProductWithVariants, error) {
	args := m.Called(ctx, query)
	ps, _ := args.Get(0).([]model.ProductWithVariants)
	return ps, args.Error(1)
}

func newTestClient(t *testing.T, uc product.UseCase) CatalogServiceClient {
	t.Helper()
	return newTestClientWithLogger(t, uc, logger.NewNop())
}

func newTestClientWithLogger(t *testing.T, uc product.UseCase, log logger.ZapLogger) CatalogServiceClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(middleware.ContextInterceptor(logger.NewNop())))
	RegisterCatalogServiceServer(srv, NewCatalogHandler(uc, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewCatalogServiceClient(conn)
}

func mustStruct(t *testing.T, m map[string]any) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(m)
	require.NoError(t, err)
	return s
}

var boots = model.ProductWithVariants{
	Product: model.Product{ID: 1, Name: "boots", Cost: 13.23, Active: true},
	Variants: []model.VariantValue{
		{
			ProductVariant: model.ProductVariant{ID: 1, VariantID: 1, ProductID: 1, Value: model.StringValue("12")},
			Variant:        model.Variant{ID: 1, Name: "size"},
		},
		{
			ProductVariant: model.ProductVariant{ID: 2, VariantID: 1, ProductID: 1, Value: nil},
			Variant:        model.Variant{ID: 1, Name: "size"},
		},
	},
}

func TestCreateProduct(t *testing.T) {
	uc := new(MockUseCase)
	want := &model.NewCompleteProduct{
		Product: model.NewProduct{Name: "boots", Cost: 13.23, Active: true},
		Variants: []model.NewVariantValue{{
			Variant: model.NewVariant{Name: "size"},
			Values:  []*string{model.StringValue("12"), model.StringValue("14"), nil},
		}},
	}
	uc.On("CreateProduct", mock.Anything, want).Return(int64(1), nil)
	client := newTestClient(t, uc)

	resp, err := client.CreateProduct(context.Background(), mustStruct(t, map[string]any{
		"name":   "boots",
		"cost":   13.23,
		"active": true,
		"variants": []any{
			map[string]any{"name": "size", "values": []any{"12", 14, nil}},
		},
	}))

	require.NoError(t, err)
	assert.Equal(t, float64(1), resp.GetFields()["id"].GetNumberValue())
	uc.AssertExpectations(t)
}

func TestCreateProductRejectsMalformedVariant(t *testing.T) {
	uc := new(MockUseCase)
	client := newTestClient(t, uc)

	_, err := client.CreateProduct(context.Background(), mustStruct(t, map[string]any{
		"name":     "boots",
		"variants": []any{"size"},
	}))

	assert.Equal(t, codes.InvalidArgument, status.Code(err))
	uc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
}

func TestCreateProductMapsErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
	}{
		{name: "invalid input", err: product.ErrInvalidInput, code: codes.InvalidArgument},
		{name: "storage failure", err: product.ErrStorage, code: codes.Internal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("CreateProduct", mock.Anything, mock.Anything).Return(int64(0), tt.err)
			client := newTestClient(t, uc)

			_, err := client.CreateProduct(context.Background(), mustStruct(t, map[string]any{"name": "boots"}))

			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestListProducts(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("ListProducts", mock.Anything).Return([]model.ProductWithVariants{boots}, nil)
	client := newTestClient(t, uc)

	resp, err := client.ListProducts(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	products := resp.AsMap()["products"].([]any)
	require.Len(t, products, 1)
	p := products[0].(map[string]any)
	assert.Equal(t, "boots", p["name"])
	assert.Equal(t, 13.23, p["cost"])
	assert.Equal(t, true, p["active"])

	variants := p["variants"].([]any)
	require.Len(t, variants, 2)
	first := variants[0].(map[string]any)
	assert.Equal(t, "12", first["value"])
	assert.Equal(t, "size", first["variant_name"])
	assert.Nil(t, variants[1].(map[string]any)["value"])
}

func TestListProductsEmpty(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("ListProducts", mock.Anything).Return([]model.ProductWithVariants{}, nil)
	client := newTestClient(t, uc)

	resp, err := client.ListProducts(context.Background(), &structpb.Struct{})
	require.NoError(t, err)
	assert.Empty(t, resp.AsMap()["products"])
}

func TestGetProduct(t *testing.T) {
	uc := new(MockUseCase)
	p := boots
	uc.On("GetProduct", mock.Anything, int64(1)).Return(&p, nil)
	client := newTestClient(t, uc)

	resp, err := client.GetProduct(context.Background(), mustStruct(t, map[string]any{"id": 1}))
	require.NoError(t, err)

	got := resp.AsMap()["product"].(map[string]any)
	assert.Equal(t, float64(1), got["id"])
	assert.Len(t, got["variants"], 2)
}

func TestGetProductNotFound(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("GetProduct", mock.Anything, int64(7)).Return(nil, product.ErrProductNotFound)
	client := newTestClient(t, uc)

	_, err := client.GetProduct(context.Background(), mustStruct(t, map[string]any{"id": 7}))

	assert.Equal(t, codes.NotFound, status.Code(err))
}

func TestGetProductInvalidID(t *testing.T) {
	uc := new(MockUseCase)
	client := newTestClient(t, uc)

	for _, req := range []map[string]any{{}, {"id": "one"}, {"id": 1.5}, {"id": -3}} {
		_, err := client.GetProduct(context.Background(), mustStruct(t, req))
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
	}
	uc.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

func TestSearchProducts(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("SearchProducts", mock.Anything, "shoes").Return([]model.ProductWithVariants{}, nil)
	client := newTestClient(t, uc)

	_, err := client.SearchProducts(context.Background(), mustStruct(t, map[string]any{"query": "shoes"}))

	require.NoError(t, err)
	uc.AssertExpectations(t)
}

func TestCreateProductRejectsMistypedFields(t *testing.T) {
	tests := []struct {
		name string
		req  map[string]any
	}{
		{name: "string cost", req: map[string]any{"name": "boots", "cost": "13.23"}},
		{name: "string active", req: map[string]any{"name": "boots", "cost": 1, "active": "true"}},
		{name: "numeric name", req: map[string]any{"name": 42, "cost": 1}},
		{name: "null cost", req: map[string]any{"name": "boots", "cost": nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			client := newTestClient(t, uc)

			_, err := client.CreateProduct(context.Background(), mustStruct(t, tt.req))

			assert.Equal(t, codes.InvalidArgument, status.Code(err))
			uc.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		})
	}
}

func TestErrorLogsCarryRequestID(t *testing.T) {
	uc := new(MockUseCase)
	uc.On("ListProducts", mock.Anything).Return(nil, errors.Join(product.ErrStorage, errors.New("connection reset")))
	log := &errorLogger{}
	client := newTestClientWithLogger(t, uc, log)

	ctx := metadata.AppendToOutgoingContext(context.Background(), middleware.RequestIDHeader, "req-123")
	_, err := client.ListProducts(ctx, &structpb.Struct{})
	assert.Equal(t, codes.Internal, status.Code(err))

	log.mu.Lock()
	defer log.mu.Unlock()
	require.Len(t, log.errors, 1)
	assert.Contains(t, log.errors[0], zap.String("request_id", "req-123"))
}
