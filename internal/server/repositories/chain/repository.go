package chain

import (
	"context"

	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
)

type Repository interface {
	Head(ctx context.Context) (*models.Block, error)
	LockHead(ctx context.Context) (*models.Block, error)
	SetHead(ctx context.Context, b *models.Block) error
}
