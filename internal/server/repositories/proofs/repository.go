package proofs

import (
	"context"

	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
)

type Repository interface {
	Get(ctx context.Context, digest string) (*models.Proof, error)
	Insert(ctx context.Context, proof *models.Proof) error
	Delete(ctx context.Context, digest string) error
}
