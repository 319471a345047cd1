package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/account"
	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
	"github.com/dmitrijs2005/proofkeeper/internal/client/repositories/history"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/digest"
	"github.com/dmitrijs2005/proofkeeper/internal/extrinsic"
	"github.com/dmitrijs2005/proofkeeper/internal/filex"
	"github.com/dmitrijs2005/proofkeeper/internal/logging"
	"github.com/dmitrijs2005/proofkeeper/internal/netx"
	"github.com/dmitrijs2005/proofkeeper/internal/rpc"
)

// Status strings pushed to the caller while a transaction progresses.
const (
	StatusSending  = "Sending..."
	StatusReady    = "Current transaction status: Ready"
	StatusArchived = "Evidence archived"

	historyFinalized = "Finalized"
	historyFailed    = "Failed"
)

var ErrDigestMismatch = errors.New("file does not match digest")

// Ledger is the part of the node API transactions need.
type Ledger interface {
	AccountNonce(ctx context.Context, address string) (uint64, error)
	Submit(ctx context.Context, token string) (rpc.Receipt, error)
	EvidenceUploadURL(ctx context.Context, token string) (string, error)
}

// StatusFunc receives human readable progress lines.
type StatusFunc func(string)

func FinalizedStatus(blockHash string) string {
	return "Finalized. Block hash: " + blockHash
}

func FailedStatus(err error) string {
	return "Transaction failed: " + err.Error()
}

// TxService signs extrinsics with the unlocked account and submits them.
// Every outcome is recorded in the local history.
type TxService struct {
	ledger    Ledger
	history   history.Repository
	signer    *account.KeyPair
	mortality time.Duration
	logger    logging.Logger
	now       func() time.Time
	upload    func(ctx context.Context, url string, body []byte) error
}

func NewTxService(l Ledger, h history.Repository, signer *account.KeyPair, mortality time.Duration, logger logging.Logger) *TxService {
	return &TxService{
		ledger:    l,
		history:   h,
		signer:    signer,
		mortality: mortality,
		logger:    logger.With("module", "tx"),
		now:       time.Now,
		upload:    netx.UploadToS3PresignedURL,
	}
}

func (s *TxService) Signer() string { return s.signer.Address() }

func (s *TxService) sign(ctx context.Context, call, d string) (string, error) {
	nonce, err := s.ledger.AccountNonce(ctx, s.signer.Address())
	if err != nil {
		return "", err
	}
	return extrinsic.Sign(s.signer, extrinsic.Call{
		Pallet: common.PalletName,
		Name:   call,
		Params: []string{d},
	}, nonce, s.mortality, s.now())
}

// Dispatch runs one createClaim or revokeClaim against d. There is no retry.
func (s *TxService) Dispatch(ctx context.Context, call, d string, status StatusFunc) (rpc.Receipt, error) {
	status(StatusSending)

	token, err := s.sign(ctx, call, d)
	if err != nil {
		s.fail(ctx, call, d, "", err, status)
		return rpc.Receipt{}, err
	}
	status(StatusReady)

	r, err := s.ledger.Submit(ctx, token)
	if err != nil {
		s.fail(ctx, call, d, extrinsic.Hash(token), err, status)
		return rpc.Receipt{}, err
	}

	s.logger.Info(ctx, "extrinsic finalized", "call", call, "digest", d, "block", r.Block)
	s.record(ctx, &models.HistoryEntry{
		Digest:    d,
		Call:      call,
		TxHash:    r.TxHash,
		Block:     r.Block,
		BlockHash: r.BlockHash,
		Status:    historyFinalized,
	})
	status(FinalizedStatus(r.BlockHash))
	return r, nil
}

// ArchiveEvidence uploads the file at path as evidence for d. The file must
// still hash to d.
func (s *TxService) ArchiveEvidence(ctx context.Context, d, path string, status StatusFunc) error {
	call := common.CallArchiveEvidence
	status(StatusSending)

	data, err := filex.ReadFile(ctx, path)
	if err != nil {
		s.fail(ctx, call, d, "", err, status)
		return err
	}
	if digest.FromBytes(data) != d {
		s.fail(ctx, call, d, "", ErrDigestMismatch, status)
		return ErrDigestMismatch
	}

	token, err := s.sign(ctx, call, d)
	if err != nil {
		s.fail(ctx, call, d, "", err, status)
		return err
	}

	url, err := s.ledger.EvidenceUploadURL(ctx, token)
	if err != nil {
		s.fail(ctx, call, d, extrinsic.Hash(token), err, status)
		return err
	}
	if err := s.upload(ctx, url, data); err != nil {
		err = fmt.Errorf("upload evidence: %w", err)
		s.fail(ctx, call, d, extrinsic.Hash(token), err, status)
		return err
	}

	s.logger.Info(ctx, "evidence archived", "digest", d, "bytes", len(data))
	s.record(ctx, &models.HistoryEntry{Digest: d, Call: call, TxHash: extrinsic.Hash(token), Status: historyFinalized})
	status(StatusArchived)
	return nil
}

func (s *TxService) fail(ctx context.Context, call, d, txHash string, err error, status StatusFunc) {
	s.logger.Warn(ctx, "extrinsic failed", "call", call, "digest", d, "error", err)
	s.record(ctx, &models.HistoryEntry{Digest: d, Call: call, TxHash: txHash, Status: historyFailed})
	status(FailedStatus(err))
}

// record never fails the transaction; history is best effort.
func (s *TxService) record(ctx context.Context, e *models.HistoryEntry) {
	if err := s.history.Add(ctx, e); err != nil {
		s.logger.Error(ctx, "failed to record history", "error", err)
	}
}
