package history

import (
	"context"

	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
)

type Repository interface {
	Add(ctx context.Context, e *models.HistoryEntry) error
	Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error)
}
