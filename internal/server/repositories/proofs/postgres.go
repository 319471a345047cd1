// Package proofs stores the digest → (owner, block) claim map in PostgreSQL.
package proofs

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

// Get returns the claim for digest or common.ErrorNotFound.
func (r *PostgresRepository) Get(ctx context.Context, digest string) (*models.Proof, error) {
	query :=
		`SELECT digest, owner, block_number, created_at FROM proofs
		 WHERE digest = $1
		 `

	var block int64
	p := &models.Proof{}
	err := r.db.QueryRowContext(ctx, query, digest).Scan(&p.Digest, &p.Owner, &block, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.BlockNumber = uint64(block)

	return p, nil
}

// Insert records a new claim. An existing claim for the digest yields
// common.ErrAlreadyClaimed.
func (r *PostgresRepository) Insert(ctx context.Context, p *models.Proof) error {
	query :=
		`INSERT INTO proofs (digest, owner, block_number)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (digest) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, p.Digest, p.Owner, int64(p.BlockNumber))
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrAlreadyClaimed
	}
	return nil
}

// Delete removes the claim for digest; a missing claim is common.ErrNotClaimed.
func (r *PostgresRepository) Delete(ctx context.Context, digest string) error {
	query := `DELETE FROM proofs WHERE digest = $1`

	res, err := r.db.ExecContext(ctx, query, digest)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotClaimed
	}
	return nil
}
