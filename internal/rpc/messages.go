// Package rpc holds the Ledger gRPC service definition shared by the node and
// the client, together with the conversions between domain values and the
// protobuf well-known types that carry them on the wire.
package rpc

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/types/known/structpb"
)

var ErrMalformedMessage = errors.New("malformed message")

// Proof is the ledger record for a digest. Block 0 means unclaimed.
type Proof struct {
	Digest string
	Owner  string
	Block  uint64
}

func (p Proof) Claimed() bool {
	return p.Block != 0
}

// Receipt describes the block an extrinsic was included in.
type Receipt struct {
	Status    string
	TxHash    string
	Block     uint64
	BlockHash string
}

func ProofToStruct(p Proof) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"digest":  structpb.NewStringValue(p.Digest),
		"claimed": structpb.NewBoolValue(p.Claimed()),
		"owner":   structpb.NewStringValue(p.Owner),
		"block":   structpb.NewNumberValue(float64(p.Block)),
	}}
}

// StructToProof decodes a proof. An unclaimed record always comes back with
// both owner and block cleared.
func StructToProof(s *structpb.Struct) (Proof, error) {
	digest, err := stringField(s, "digest")
	if err != nil {
		return Proof{}, err
	}
	owner, err := stringField(s, "owner")
	if err != nil {
		return Proof{}, err
	}
	block, err := uintField(s, "block")
	if err != nil {
		return Proof{}, err
	}
	if block == 0 {
		owner = ""
	}
	return Proof{Digest: digest, Owner: owner, Block: block}, nil
}

func ReceiptToStruct(r Receipt) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"status":     structpb.NewStringValue(r.Status),
		"tx_hash":    structpb.NewStringValue(r.TxHash),
		"block":      structpb.NewNumberValue(float64(r.Block)),
		"block_hash": structpb.NewStringValue(r.BlockHash),
	}}
}

func StructToReceipt(s *structpb.Struct) (Receipt, error) {
	var (
		r   Receipt
		err error
	)
	if r.Status, err = stringField(s, "status"); err != nil {
		return Receipt{}, err
	}
	if r.TxHash, err = stringField(s, "tx_hash"); err != nil {
		return Receipt{}, err
	}
	if r.Block, err = uintField(s, "block"); err != nil {
		return Receipt{}, err
	}
	if r.BlockHash, err = stringField(s, "block_hash"); err != nil {
		return Receipt{}, err
	}
	return r, nil
}

func field(s *structpb.Struct, name string) (*structpb.Value, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: empty", ErrMalformedMessage)
	}
	v, ok := s.GetFields()[name]
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformedMessage, name)
	}
	return v, nil
}

func stringField(s *structpb.Struct, name string) (string, error) {
	v, err := field(s, name)
	if err != nil {
		return "", err
	}
	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %q is not a string", ErrMalformedMessage, name)
	}
	return str.StringValue, nil
}

func uintField(s *structpb.Struct, name string) (uint64, error) {
	v, err := field(s, name)
	if err != nil {
		return 0, err
	}
	num, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMalformedMessage, name)
	}
	n := num.NumberValue
	if n < 0 || n != math.Trunc(n) || n > 1<<53 {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedMessage, name)
	}
	return uint64(n), nil
}
