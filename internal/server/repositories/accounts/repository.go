package accounts

import "context"

type Repository interface {
	Nonce(ctx context.Context, address string) (uint64, error)
	IncrementNonce(ctx context.Context, address string) (uint64, error)
}
