// Package history records dispatched extrinsics in the local database.
package history

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
	"github.com/dmitrijs2005/proofkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Add inserts e and fills in its ID.
func (r *SQLiteRepository) Add(ctx context.Context, e *models.HistoryEntry) error {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO history (digest, call, tx_hash, block, block_hash, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, e.Digest, e.Call, e.TxHash, int64(e.Block), e.BlockHash, e.Status)
	if err != nil {
		return fmt.Errorf("failed to add history: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to add history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]models.HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, digest, call, tx_hash, block, block_hash, status, created_at
		FROM history ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var result []models.HistoryEntry
	for rows.Next() {
		var (
			e     models.HistoryEntry
			block int64
		)
		if err := rows.Scan(&e.ID, &e.Digest, &e.Call, &e.TxHash, &block, &e.BlockHash, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.Block = uint64(block)
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history rows: %w", err)
	}
	return result, nil
}
