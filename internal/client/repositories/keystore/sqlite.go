// Package keystore persists the single sealed account key in sqlite.
package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Load returns the stored key or common.ErrorNotFound.
func (r *SQLiteRepository) Load(ctx context.Context) (*models.SealedKey, error) {
	k := &models.SealedKey{}
	err := r.db.QueryRowContext(ctx,
		`SELECT address, salt, nonce, ciphertext, created_at FROM keystore WHERE id = 1`,
	).Scan(&k.Address, &k.Salt, &k.Nonce, &k.Ciphertext, &k.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load key: %w", err)
	}
	return k, nil
}

// Save stores k, replacing any previous key.
func (r *SQLiteRepository) Save(ctx context.Context, k *models.SealedKey) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO keystore (id, address, salt, nonce, ciphertext) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			address = excluded.address,
			salt = excluded.salt,
			nonce = excluded.nonce,
			ciphertext = excluded.ciphertext,
			created_at = CURRENT_TIMESTAMP
	`, k.Address, k.Salt, k.Nonce, k.Ciphertext)
	if err != nil {
		return fmt.Errorf("failed to save key: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM keystore`); err != nil {
		return fmt.Errorf("failed to clear keystore: %w", err)
	}
	return nil
}
