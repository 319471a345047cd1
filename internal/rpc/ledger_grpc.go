package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	serviceName = "poe.ledger.v1.Ledger"

	Ledger_Ping_FullMethodName                = "/poe.ledger.v1.Ledger/Ping"
	Ledger_QueryProof_FullMethodName          = "/poe.ledger.v1.Ledger/QueryProof"
	Ledger_SubscribeProof_FullMethodName      = "/poe.ledger.v1.Ledger/SubscribeProof"
	Ledger_AccountNonce_FullMethodName        = "/poe.ledger.v1.Ledger/AccountNonce"
	Ledger_SubmitExtrinsic_FullMethodName     = "/poe.ledger.v1.Ledger/SubmitExtrinsic"
	Ledger_EvidenceUploadURL_FullMethodName   = "/poe.ledger.v1.Ledger/EvidenceUploadURL"
	Ledger_EvidenceDownloadURL_FullMethodName = "/poe.ledger.v1.Ledger/EvidenceDownloadURL"
)

// LedgerServer is the server API for the Ledger service.
//
// Messages are protobuf well-known types, so no codegen step is needed.
type LedgerServer interface {
	Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error)
	QueryProof(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	SubscribeProof(*wrapperspb.StringValue, Ledger_SubscribeProofServer) error
	AccountNonce(context.Context, *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error)
	SubmitExtrinsic(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	EvidenceUploadURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
	EvidenceDownloadURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// UnimplementedLedgerServer can be embedded to have forward compatible implementations.
type UnimplementedLedgerServer struct{}

func (UnimplementedLedgerServer) Ping(context.Context, *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}
func (UnimplementedLedgerServer) QueryProof(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method QueryProof not implemented")
}
func (UnimplementedLedgerServer) SubscribeProof(*wrapperspb.StringValue, Ledger_SubscribeProofServer) error {
	return status.Error(codes.Unimplemented, "method SubscribeProof not implemented")
}
func (UnimplementedLedgerServer) AccountNonce(context.Context, *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	return nil, status.Error(codes.Unimplemented, "method AccountNonce not implemented")
}
func (UnimplementedLedgerServer) SubmitExtrinsic(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitExtrinsic not implemented")
}
func (UnimplementedLedgerServer) EvidenceUploadURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method EvidenceUploadURL not implemented")
}
func (UnimplementedLedgerServer) EvidenceDownloadURL(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method EvidenceDownloadURL not implemented")
}

// RegisterLedgerServer registers the Ledger service on a gRPC server.
func RegisterLedgerServer(s grpc.ServiceRegistrar, srv LedgerServer) {
	s.RegisterService(&Ledger_ServiceDesc, srv)
}

// Ledger_SubscribeProofServer is the server side of the proof stream.
type Ledger_SubscribeProofServer interface {
	Send(*structpb.Struct) error
	grpc.ServerStream
}

type ledgerSubscribeProofServer struct {
	grpc.ServerStream
}

func (x *ledgerSubscribeProofServer) Send(m *structpb.Struct) error {
	return x.ServerStream.SendMsg(m)
}

// LedgerClient is the client API for the Ledger service.
type LedgerClient interface {
	Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	QueryProof(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	SubscribeProof(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (Ledger_SubscribeProofClient, error)
	AccountNonce(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error)
	SubmitExtrinsic(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	EvidenceUploadURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	EvidenceDownloadURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

// Ledger_SubscribeProofClient is the client side of the proof stream.
type Ledger_SubscribeProofClient interface {
	Recv() (*structpb.Struct, error)
	grpc.ClientStream
}

type ledgerSubscribeProofClient struct {
	grpc.ClientStream
}

func (x *ledgerSubscribeProofClient) Recv() (*structpb.Struct, error) {
	m := new(structpb.Struct)
	if err := x.ClientStream.RecvMsg(m); err != nil {
		return nil, err
	}
	return m, nil
}

type ledgerClient struct{ cc grpc.ClientConnInterface }

func NewLedgerClient(cc grpc.ClientConnInterface) LedgerClient { return &ledgerClient{cc: cc} }

func (c *ledgerClient) Ping(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, Ledger_Ping_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) QueryProof(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Ledger_QueryProof_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) SubscribeProof(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (Ledger_SubscribeProofClient, error) {
	stream, err := c.cc.NewStream(ctx, &Ledger_ServiceDesc.Streams[0], Ledger_SubscribeProof_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &ledgerSubscribeProofClient{stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *ledgerClient) AccountNonce(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.UInt64Value, error) {
	out := new(wrapperspb.UInt64Value)
	if err := c.cc.Invoke(ctx, Ledger_AccountNonce_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) SubmitExtrinsic(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, Ledger_SubmitExtrinsic_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) EvidenceUploadURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, Ledger_EvidenceUploadURL_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ledgerClient) EvidenceDownloadURL(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, Ledger_EvidenceDownloadURL_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func _Ledger_Ping_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).Ping(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_Ping_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).Ping(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_QueryProof_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).QueryProof(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_QueryProof_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).QueryProof(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_SubscribeProof_Handler(srv interface{}, stream grpc.ServerStream) error {
	in := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(in); err != nil {
		return err
	}
	return srv.(LedgerServer).SubscribeProof(in, &ledgerSubscribeProofServer{stream})
}

func _Ledger_AccountNonce_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).AccountNonce(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_AccountNonce_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).AccountNonce(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_SubmitExtrinsic_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).SubmitExtrinsic(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_SubmitExtrinsic_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).SubmitExtrinsic(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_EvidenceUploadURL_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).EvidenceUploadURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_EvidenceUploadURL_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).EvidenceUploadURL(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func _Ledger_EvidenceDownloadURL_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(LedgerServer).EvidenceDownloadURL(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: Ledger_EvidenceDownloadURL_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(LedgerServer).EvidenceDownloadURL(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Ledger_ServiceDesc is the grpc.ServiceDesc for the Ledger service.
var Ledger_ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*LedgerServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Ping", Handler: _Ledger_Ping_Handler},
		{MethodName: "QueryProof", Handler: _Ledger_QueryProof_Handler},
		{MethodName: "AccountNonce", Handler: _Ledger_AccountNonce_Handler},
		{MethodName: "SubmitExtrinsic", Handler: _Ledger_SubmitExtrinsic_Handler},
		{MethodName: "EvidenceUploadURL", Handler: _Ledger_EvidenceUploadURL_Handler},
		{MethodName: "EvidenceDownloadURL", Handler: _Ledger_EvidenceDownloadURL_Handler},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "SubscribeProof",
			Handler:       _Ledger_SubscribeProof_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "ledger.proto",
}
