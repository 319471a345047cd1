package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/digest"
	"github.com/dmitrijs2005/proofkeeper/internal/rpc"
	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// toStatus maps domain errors onto gRPC codes. Internal failures are logged
// and hidden from the caller.
func (s *GRPCServer) toStatus(ctx context.Context, err error) error {
	var code codes.Code
	switch {
	case errors.Is(err, common.ErrInvalidDigest),
		errors.Is(err, common.ErrUnknownCall),
		errors.Is(err, common.ErrInvalidExtrinsic):
		code = codes.InvalidArgument
	case errors.Is(err, common.ErrInvalidSignature):
		code = codes.Unauthenticated
	case errors.Is(err, common.ErrAlreadyClaimed),
		errors.Is(err, common.ErrNotClaimed),
		errors.Is(err, common.ErrBadNonce):
		code = codes.FailedPrecondition
	case errors.Is(err, common.ErrNotOwner):
		code = codes.PermissionDenied
	case errors.Is(err, common.ErrorNotFound):
		code = codes.NotFound
	case errors.Is(err, common.ErrEvidenceDisabled):
		code = codes.Unimplemented
	case errors.Is(err, context.Canceled):
		code = codes.Canceled
	case errors.Is(err, context.DeadlineExceeded):
		code = codes.DeadlineExceeded
	default:
		s.logger.Error(ctx, "internal error", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
	return status.Error(code, err.Error())
}

func proofToStruct(p *models.Proof) *structpb.Struct {
	return rpc.ProofToStruct(rpc.Proof{Digest: p.Digest, Owner: p.Owner, Block: p.BlockNumber})
}

func (s *GRPCServer) Ping(ctx context.Context, _ *emptypb.Empty) (*wrapperspb.StringValue, error) {
	return wrapperspb.String("OK"), nil
}

func (s *GRPCServer) QueryProof(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	p, err := s.ledger.Query(ctx, in.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return proofToStruct(p), nil
}

// SubscribeProof sends the current proof state, then every committed change,
// until the client goes away or the node shuts down.
func (s *GRPCServer) SubscribeProof(in *wrapperspb.StringValue, stream rpc.Ledger_SubscribeProofServer) error {
	ctx := stream.Context()

	d, err := digest.Normalize(in.GetValue())
	if err != nil {
		return s.toStatus(ctx, err)
	}

	// subscribe before reading so no commit slips between the two
	updates, cancel := s.hub.Subscribe(d)
	defer cancel()

	p, err := s.ledger.Query(ctx, d)
	if err != nil {
		return s.toStatus(ctx, err)
	}
	if err := stream.Send(proofToStruct(p)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.stopping:
			return status.Error(codes.Unavailable, "node is shutting down")
		case p, ok := <-updates:
			if !ok {
				return nil
			}
			if err := stream.Send(proofToStruct(&p)); err != nil {
				return err
			}
		}
	}
}

func (s *GRPCServer) AccountNonce(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.UInt64Value, error) {
	n, err := s.ledger.Nonce(ctx, in.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return wrapperspb.UInt64(n), nil
}

func (s *GRPCServer) SubmitExtrinsic(ctx context.Context, in *wrapperspb.StringValue) (*structpb.Struct, error) {
	r, err := s.ledger.Submit(ctx, in.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return rpc.ReceiptToStruct(rpc.Receipt{Status: r.Status, TxHash: r.TxHash, Block: r.Block, BlockHash: r.BlockHash}), nil
}

func (s *GRPCServer) EvidenceUploadURL(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	u, err := s.evidence.UploadURL(ctx, in.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return wrapperspb.String(u), nil
}

func (s *GRPCServer) EvidenceDownloadURL(ctx context.Context, in *wrapperspb.StringValue) (*wrapperspb.StringValue, error) {
	u, err := s.evidence.DownloadURL(ctx, in.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, err)
	}
	return wrapperspb.String(u), nil
}
