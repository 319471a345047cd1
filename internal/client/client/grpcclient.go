package client

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/rpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const pingTimeout = 2 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	client      rpc.LedgerClient
}

func NewLedgerClient(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.initGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *GRPCClient) initGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(c.endpointURL, opts...)
	if err != nil {
		return err
	}
	c.conn = conn
	c.client = rpc.NewLedgerClient(conn)
	return nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := c.client.Ping(ctx, &emptypb.Empty{})
	if err != nil {
		return c.mapError(err)
	}
	if resp.GetValue() != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *GRPCClient) QueryProof(ctx context.Context, digest string) (rpc.Proof, error) {
	resp, err := c.client.QueryProof(ctx, wrapperspb.String(digest))
	if err != nil {
		return rpc.Proof{}, c.mapError(err)
	}
	return rpc.StructToProof(resp)
}

// SubscribeProof calls fn with the current state of digest and then with every
// change until the returned unsubscribe func is called or the stream fails.
// fn runs on a dedicated goroutine. Unsubscribe is safe to call more than once.
func (c *GRPCClient) SubscribeProof(ctx context.Context, digest string, fn func(rpc.Proof)) (func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	stream, err := c.client.SubscribeProof(ctx, wrapperspb.String(digest))
	if err != nil {
		cancel()
		return nil, c.mapError(err)
	}

	var once sync.Once
	unsubscribe := func() { once.Do(cancel) }

	go func() {
		defer unsubscribe()
		for {
			msg, err := stream.Recv()
			if err != nil {
				return
			}
			p, err := rpc.StructToProof(msg)
			if err != nil {
				return
			}
			fn(p)
		}
	}()

	return unsubscribe, nil
}

func (c *GRPCClient) AccountNonce(ctx context.Context, address string) (uint64, error) {
	resp, err := c.client.AccountNonce(ctx, wrapperspb.String(address))
	if err != nil {
		return 0, c.mapError(err)
	}
	return resp.GetValue(), nil
}

// Submit sends a signed extrinsic and returns its inclusion receipt.
func (c *GRPCClient) Submit(ctx context.Context, token string) (rpc.Receipt, error) {
	resp, err := c.client.SubmitExtrinsic(ctx, wrapperspb.String(token))
	if err != nil {
		return rpc.Receipt{}, c.mapError(err)
	}
	return rpc.StructToReceipt(resp)
}

// EvidenceUploadURL exchanges a signed archiveEvidence extrinsic for a
// presigned PUT URL.
func (c *GRPCClient) EvidenceUploadURL(ctx context.Context, token string) (string, error) {
	resp, err := c.client.EvidenceUploadURL(ctx, wrapperspb.String(token))
	if err != nil {
		return "", c.mapError(err)
	}
	return resp.GetValue(), nil
}

func (c *GRPCClient) EvidenceDownloadURL(ctx context.Context, digest string) (string, error) {
	resp, err := c.client.EvidenceDownloadURL(ctx, wrapperspb.String(digest))
	if err != nil {
		return "", c.mapError(err)
	}
	return resp.GetValue(), nil
}

func (c *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) {
		return ErrUnavailable
	}
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return &RemoteError{Code: st.Code(), Message: st.Message(), Err: ErrUnauthorized}
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return &RemoteError{Code: st.Code(), Message: st.Message()}
	}
}
