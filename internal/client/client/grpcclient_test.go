package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const testDigest = "0x3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532"

type fakeLedger struct {
	rpc.UnimplementedLedgerServer

	pingValue string
	proof     rpc.Proof
	updates   chan rpc.Proof
	nonce     uint64
	receipt   rpc.Receipt
	err       error

	lastToken string
}

func (f *fakeLedger) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String(f.pingValue), f.err
}

func (f *fakeLedger) QueryProof(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := f.proof
	p.Digest = in.GetValue()
	return rpc.ProofToStruct(p), nil
}

func (f *fakeLedger) SubscribeProof(in *wrapperspb.StringValue, stream rpc.Ledger_SubscribeProofServer) error {
	if f.err != nil {
		return f.err
	}
	p := f.proof
	p.Digest = in.GetValue()
	if err := stream.Send(rpc.ProofToStruct(p)); err != nil {
		return err
	}
	for {
		select {
		case <-stream.Context().Done():
			return nil
		case u := <-f.updates:
			if err := stream.Send(rpc.ProofToStruct(u)); err != nil {
				return err
			}
		}
	}
}

func (f *fakeLedger) AccountNonce(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	if f.err != nil {
		return nil, f.err
	}
	return wrapperspb.UInt64(f.nonce), nil
}

func (f *fakeLedger) SubmitExtrinsic(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	f.lastToken = in.GetValue()
	if f.err != nil {
		return nil, f.err
	}
	return rpc.ReceiptToStruct(f.receipt), nil
}

func (f *fakeLedger) EvidenceUploadURL(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	f.lastToken = in.GetValue()
	if f.err != nil {
		return nil, f.err
	}
	return wrapperspb.String("https://s3.local/put"), nil
}

func (f *fakeLedger) EvidenceDownloadURL(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	if f.err != nil {
		return nil, f.err
	}
	return wrapperspb.String("https://s3.local/get/" + in.GetValue()), nil
}

func newTestClient(t *testing.T, srv rpc.LedgerServer) *GRPCClient {
	t.Helper()

	lis := bufconn.Listen(1024 * 1024)
	s := grpc.NewServer()
	rpc.RegisterLedgerServer(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	dialer := func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }
	c, err := NewLedgerClient("passthrough:///bufnet", grpc.WithContextDialer(dialer))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPing(t *testing.T) {
	c := newTestClient(t, &fakeLedger{pingValue: "OK"})
	require.NoError(t, c.Ping(context.Background()))
}

func TestPing_UnexpectedStatus(t *testing.T) {
	c := newTestClient(t, &fakeLedger{pingValue: "DEGRADED"})
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestQueryProof(t *testing.T) {
	c := newTestClient(t, &fakeLedger{proof: rpc.Proof{Owner: "5Grw", Block: 9}})

	p, err := c.QueryProof(context.Background(), testDigest)
	require.NoError(t, err)
	assert.Equal(t, rpc.Proof{Digest: testDigest, Owner: "5Grw", Block: 9}, p)
	assert.True(t, p.Claimed())
}

func TestQueryProof_RemoteError(t *testing.T) {
	c := newTestClient(t, &fakeLedger{err: status.Error(codes.InvalidArgument, "invalid digest")})

	_, err := c.QueryProof(context.Background(), "0x12")
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, codes.InvalidArgument, re.Code)
	assert.Equal(t, "invalid digest", err.Error())
}

func TestSubscribeProof_InitialThenUpdates(t *testing.T) {
	f := &fakeLedger{updates: make(chan rpc.Proof, 1)}
	c := newTestClient(t, f)

	got := make(chan rpc.Proof, 4)
	unsubscribe, err := c.SubscribeProof(context.Background(), testDigest, func(p rpc.Proof) { got <- p })
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case p := <-got:
		assert.False(t, p.Claimed())
	case <-time.After(time.Second):
		t.Fatal("no initial state")
	}

	f.updates <- rpc.Proof{Digest: testDigest, Owner: "5Grw", Block: 3}
	select {
	case p := <-got:
		assert.Equal(t, "5Grw", p.Owner)
		assert.Equal(t, uint64(3), p.Block)
	case <-time.After(time.Second):
		t.Fatal("no update")
	}

	unsubscribe()
	unsubscribe()
}

func TestSubscribeProof_RejectedDigest(t *testing.T) {
	c := newTestClient(t, &fakeLedger{err: status.Error(codes.InvalidArgument, "invalid digest")})

	got := make(chan rpc.Proof, 1)
	unsubscribe, err := c.SubscribeProof(context.Background(), "0x12", func(p rpc.Proof) { got <- p })
	// server streaming errors arrive on the first Recv, so the call itself succeeds
	require.NoError(t, err)
	defer unsubscribe()

	select {
	case <-got:
		t.Fatal("unexpected proof for rejected digest")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAccountNonce(t *testing.T) {
	c := newTestClient(t, &fakeLedger{nonce: 4})

	n, err := c.AccountNonce(context.Background(), "5Grw")
	require.NoError(t, err)
	assert.Equal(t, uint64(4), n)
}

func TestSubmit(t *testing.T) {
	want := rpc.Receipt{Status: "Finalized", TxHash: "0xaa", Block: 5, BlockHash: "0xbb"}
	f := &fakeLedger{receipt: want}
	c := newTestClient(t, f)

	r, err := c.Submit(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, want, r)
	assert.Equal(t, "token", f.lastToken)
}

func TestSubmit_PermissionDenied(t *testing.T) {
	c := newTestClient(t, &fakeLedger{err: status.Error(codes.PermissionDenied, "not proof owner")})

	_, err := c.Submit(context.Background(), "token")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, "not proof owner", err.Error())
}

func TestEvidenceURLs(t *testing.T) {
	f := &fakeLedger{}
	c := newTestClient(t, f)
	ctx := context.Background()

	u, err := c.EvidenceUploadURL(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/put", u)
	assert.Equal(t, "token", f.lastToken)

	u, err = c.EvidenceDownloadURL(ctx, testDigest)
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/get/"+testDigest, u)
}

func TestMapError(t *testing.T) {
	c := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		is   error
	}{
		{"unauthenticated", status.Error(codes.Unauthenticated, "invalid signature"), ErrUnauthorized},
		{"permission", status.Error(codes.PermissionDenied, "not proof owner"), ErrUnauthorized},
		{"unavailable", status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, c.mapError(tt.in), tt.is)
		})
	}

	require.NoError(t, c.mapError(nil))

	plain := errors.New("boom")
	require.Same(t, plain, c.mapError(plain))

	var re *RemoteError
	require.ErrorAs(t, c.mapError(status.Error(codes.FailedPrecondition, "proof already claimed")), &re)
	assert.Equal(t, codes.FailedPrecondition, re.Code)
	assert.Nil(t, re.Unwrap())
}
