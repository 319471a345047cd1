// Package services contains the node's business logic: applying signed
// extrinsics to the proof map, sealing blocks and presigning evidence URLs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/dbx"
	"github.com/dmitrijs2005/proofkeeper/internal/digest"
	"github.com/dmitrijs2005/proofkeeper/internal/extrinsic"
	"github.com/dmitrijs2005/proofkeeper/internal/logging"
	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/repomanager"
)

// StatusFinalized is reported for every included extrinsic; the node has
// instant finality.
const StatusFinalized = "Finalized"

// Publisher receives proof states after they are committed.
type Publisher interface {
	Publish(p models.Proof)
}

// Receipt describes where an extrinsic landed.
type Receipt struct {
	Status    string
	TxHash    string
	Block     uint64
	BlockHash string
}

type LedgerService struct {
	// commitMu is held from transaction start until the new state is
	// published, so subscribers see states in commit order.
	commitMu sync.Mutex

	db          *sql.DB
	repomanager repomanager.RepositoryManager
	publisher   Publisher
	logger      logging.Logger
	now         func() time.Time
}

func NewLedgerService(db *sql.DB, m repomanager.RepositoryManager, p Publisher, l logging.Logger) *LedgerService {
	return &LedgerService{
		db:          db,
		repomanager: m,
		publisher:   p,
		logger:      l.With("module", "ledger"),
		now:         time.Now,
	}
}

// Query returns the proof stored under d. An unclaimed digest yields a Proof
// with BlockNumber 0 and no owner.
func (s *LedgerService) Query(ctx context.Context, d string) (*models.Proof, error) {
	d, err := digest.Normalize(d)
	if err != nil {
		return nil, err
	}

	p, err := s.repomanager.Proofs(s.db).Get(ctx, d)
	if errors.Is(err, common.ErrorNotFound) {
		return &models.Proof{Digest: d}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query proof: %w", err)
	}
	return p, nil
}

// Nonce returns the nonce the next extrinsic from address must carry.
func (s *LedgerService) Nonce(ctx context.Context, address string) (uint64, error) {
	n, err := s.repomanager.Accounts(s.db).Nonce(ctx, address)
	if err != nil {
		return 0, fmt.Errorf("account nonce: %w", err)
	}
	return n, nil
}

// Head returns the current chain head.
func (s *LedgerService) Head(ctx context.Context) (*models.Block, error) {
	return s.repomanager.Chain(s.db).Head(ctx)
}

// Submit verifies token, applies the proof call it carries in a new block and
// publishes the resulting proof state. Nothing is written when the call fails.
func (s *LedgerService) Submit(ctx context.Context, token string) (*Receipt, error) {
	ext, err := extrinsic.Verify(token, s.now())
	if err != nil {
		return nil, err
	}

	d, err := proofCall(ext, common.CallCreateClaim, common.CallRevokeClaim)
	if err != nil {
		return nil, err
	}

	var (
		block *models.Block
		state models.Proof
	)

	s.commitMu.Lock()
	defer s.commitMu.Unlock()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		head, err := s.repomanager.Chain(tx).LockHead(ctx)
		if err != nil {
			return err
		}

		nonce, err := s.repomanager.Accounts(tx).Nonce(ctx, ext.Signer)
		if err != nil {
			return err
		}
		if ext.Nonce != nonce {
			return fmt.Errorf("%w: expected %d, got %d", common.ErrBadNonce, nonce, ext.Nonce)
		}

		block, err = head.Next(s.now())
		if err != nil {
			return err
		}

		proofs := s.repomanager.Proofs(tx)
		switch ext.Call.Name {
		case common.CallCreateClaim:
			state = models.Proof{Digest: d, Owner: ext.Signer, BlockNumber: block.Number}
			if err := proofs.Insert(ctx, &state); err != nil {
				return err
			}
		case common.CallRevokeClaim:
			p, err := proofs.Get(ctx, d)
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrNotClaimed
			}
			if err != nil {
				return err
			}
			if p.Owner != ext.Signer {
				return common.ErrNotOwner
			}
			if err := proofs.Delete(ctx, d); err != nil {
				return err
			}
			state = models.Proof{Digest: d}
		}

		if _, err := s.repomanager.Accounts(tx).IncrementNonce(ctx, ext.Signer); err != nil {
			return err
		}
		return s.repomanager.Chain(tx).SetHead(ctx, block)
	})
	if err != nil {
		return nil, fmt.Errorf("apply %s: %w", ext.Call.Name, err)
	}

	s.publisher.Publish(state)
	s.logger.Info(ctx, "extrinsic included",
		"call", ext.Call.Name, "digest", d, "signer", ext.Signer, "block", block.Number, "tx_hash", ext.Hash)

	return &Receipt{Status: StatusFinalized, TxHash: ext.Hash, Block: block.Number, BlockHash: block.Hash}, nil
}

// SealBlock advances the chain by one empty block.
func (s *LedgerService) SealBlock(ctx context.Context) (*models.Block, error) {
	var block *models.Block

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		head, err := s.repomanager.Chain(tx).LockHead(ctx)
		if err != nil {
			return err
		}
		block, err = head.Next(s.now())
		if err != nil {
			return err
		}
		return s.repomanager.Chain(tx).SetHead(ctx, block)
	})
	if err != nil {
		return nil, fmt.Errorf("seal block: %w", err)
	}
	return block, nil
}

// RunBlockProducer seals an empty block every interval until ctx is done.
// A non-positive interval disables it.
func (s *LedgerService) RunBlockProducer(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b, err := s.SealBlock(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Error(ctx, "block production failed", "error", err)
				}
				continue
			}
			s.logger.Debug(ctx, "block sealed", "number", b.Number, "hash", b.Hash)
		}
	}
}

// proofCall checks that ext targets the proof pallet with one of the allowed
// callables and a single digest parameter, and returns that digest.
func proofCall(ext *extrinsic.Extrinsic, allowed ...string) (string, error) {
	if ext.Call.Pallet != common.PalletName {
		return "", fmt.Errorf("%w: pallet %q", common.ErrUnknownCall, ext.Call.Pallet)
	}

	if !slices.Contains(allowed, ext.Call.Name) {
		return "", fmt.Errorf("%w: %s.%s", common.ErrUnknownCall, ext.Call.Pallet, ext.Call.Name)
	}

	if len(ext.Call.Params) != 1 {
		return "", fmt.Errorf("%w: %s takes one parameter", common.ErrInvalidExtrinsic, ext.Call.Name)
	}
	return digest.Normalize(ext.Call.Params[0])
}
