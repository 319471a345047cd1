package keystore

import (
	"context"

	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
)

type Repository interface {
	Load(ctx context.Context) (*models.SealedKey, error)
	Save(ctx context.Context, k *models.SealedKey) error
	Clear(ctx context.Context) error
}
