package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// The catalog service exchanges google.protobuf.Struct messages, so the
// descriptor below is maintained by hand instead of generated.

const (
	CatalogServiceName = "omnipos.catalog.v1.CatalogService"

	CatalogService_CreateProduct_FullMethodName  = "/" + CatalogServiceName + "/CreateProduct"
	CatalogService_ListProducts_FullMethodName   = "/" + CatalogServiceName + "/ListProducts"
	CatalogService_GetProduct_FullMethodName     = "/" + CatalogServiceName + "/GetProduct"
	CatalogService_SearchProducts_FullMethodName = "/" + CatalogServiceName + "/SearchProducts"
)

type CatalogServiceServer interface {
	CreateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SearchProducts(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type UnimplementedCatalogServiceServer struct{}

func (UnimplementedCatalogServiceServer) CreateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateProduct not implemented")
}

func (UnimplementedCatalogServiceServer) ListProducts(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method ListProducts not implemented")
}

func (UnimplementedCatalogServiceServer) GetProduct(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProduct not implemented")
}

func (UnimplementedCatalogServiceServer) SearchProducts(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SearchProducts not implemented")
}

func RegisterCatalogServiceServer(s grpc.ServiceRegistrar, srv CatalogServiceServer) {
	s.RegisterService(&CatalogService_ServiceDesc, srv)
}

// unaryHandler adapts one CatalogServiceServer method to a grpc.MethodDesc handler.
func unaryHandler(fullMethod string, call func(CatalogServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServiceServer), ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var CatalogService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: CatalogServiceName,
	HandlerType: (*CatalogServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateProduct",
			Handler:    unaryHandler(CatalogService_CreateProduct_FullMethodName, CatalogServiceServer.CreateProduct),
		},
		{
			MethodName: "ListProducts",
			Handler:    unaryHandler(CatalogService_ListProducts_FullMethodName, CatalogServiceServer.ListProducts),
		},
		{
			MethodName: "GetProduct",
			Handler:    unaryHandler(CatalogService_GetProduct_FullMethodName, CatalogServiceServer.GetProduct),
		},
		{
			MethodName: "SearchProducts",
			Handler:    unaryHandler(CatalogService_SearchProducts_FullMethodName, CatalogServiceServer.SearchProducts),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "omnipos/catalog/v1/catalog.proto",
}

type CatalogServiceClient interface {
	CreateProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	GetProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SearchProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type catalogServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCatalogServiceClient(cc grpc.ClientConnInterface) CatalogServiceClient {
	return &catalogServiceClient{cc}
}

func (c *catalogServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *catalogServiceClient) CreateProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_CreateProduct_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) ListProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_ListProducts_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) GetProduct(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_GetProduct_FullMethodName, in, opts...)
}

func (c *catalogServiceClient) SearchProducts(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, CatalogService_SearchProducts_FullMethodName, in, opts...)
}
