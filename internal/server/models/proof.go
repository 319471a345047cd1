// Package models defines the ledger state persisted by the node.
package models

import "time"

// Proof records that Owner claimed Digest in block BlockNumber.
type Proof struct {
	Digest      string
	Owner       string
	BlockNumber uint64
	CreatedAt   time.Time
}

// Account tracks the next expected nonce of a signer.
type Account struct {
	Address string
	Nonce   uint64
}
