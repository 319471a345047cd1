// Package chain persists the single-row chain head of the node.
package chain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/dbx"
	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Head(ctx context.Context) (*models.Block, error) {
	return r.head(ctx, `SELECT number, hash, sealed_at FROM chain_head WHERE id = 1`)
}

// LockHead reads the head with FOR UPDATE. Every block author goes through it,
// so blocks are sealed one at a time.
func (r *PostgresRepository) LockHead(ctx context.Context) (*models.Block, error) {
	return r.head(ctx, `SELECT number, hash, sealed_at FROM chain_head WHERE id = 1 FOR UPDATE`)
}

func (r *PostgresRepository) head(ctx context.Context, query string) (*models.Block, error) {
	var number int64
	b := &models.Block{}
	if err := r.db.QueryRowContext(ctx, query).Scan(&number, &b.Hash, &b.SealedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	b.Number = uint64(number)
	return b, nil
}

func (r *PostgresRepository) SetHead(ctx context.Context, b *models.Block) error {
	query :=
		`UPDATE chain_head SET number = $1, hash = $2, sealed_at = $3
		 WHERE id = 1
		 `

	if _, err := r.db.ExecContext(ctx, query, int64(b.Number), b.Hash, b.SealedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
