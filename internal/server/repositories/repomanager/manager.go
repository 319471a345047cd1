package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/proofkeeper/internal/dbx"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/chain"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/proofs"
)

// RepositoryManager vends repositories bound to a DBTX, so the same code runs
// against *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Proofs(db dbx.DBTX) proofs.Repository
	Accounts(db dbx.DBTX) accounts.Repository
	Chain(db dbx.DBTX) chain.Repository
}
