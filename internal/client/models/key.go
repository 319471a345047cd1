// Package models holds the client's locally persisted records.
package models

import "time"

// SealedKey is the account seed encrypted under a password-derived key.
type SealedKey struct {
	Address    string
	Salt       []byte
	Nonce      []byte
	Ciphertext []byte
	CreatedAt  time.Time
}

// HistoryEntry is one dispatched extrinsic and how it ended.
type HistoryEntry struct {
	ID        int64
	Digest    string
	Call      string
	TxHash    string
	Block     uint64
	BlockHash string
	Status    string
	CreatedAt time.Time
}
