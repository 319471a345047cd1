// Package accounts keeps per-signer nonces used for replay protection.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/proofkeeper/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Nonce returns the next nonce address must use. Unknown accounts start at 0.
func (r *PostgresRepository) Nonce(ctx context.Context, address string) (uint64, error) {
	query := `SELECT nonce FROM accounts WHERE address = $1`

	var nonce int64
	err := r.db.QueryRowContext(ctx, query, address).Scan(&nonce)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("db error: %w", err)
	}
	return uint64(nonce), nil
}

// IncrementNonce bumps the account nonce, creating the account on first use,
// and returns the new value.
func (r *PostgresRepository) IncrementNonce(ctx context.Context, address string) (uint64, error) {
	query :=
		`INSERT INTO accounts (address, nonce)
		 VALUES ($1, 1)
		 ON CONFLICT (address) DO UPDATE SET nonce = accounts.nonce + 1
		 RETURNING nonce
		 `

	var nonce int64
	if err := r.db.QueryRowContext(ctx, query, address).Scan(&nonce); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return uint64(nonce), nil
}
