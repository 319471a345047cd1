package services

import (
	"bytes"
	"context"
	"database/sql"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/proofkeeper/internal/account"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/dbx"
	"github.com/dmitrijs2005/proofkeeper/internal/extrinsic"
	"github.com/dmitrijs2005/proofkeeper/internal/server/models"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/chain"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/proofs"
	"github.com/dmitrijs2005/proofkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

const testDigest = "0x9c1afc907ee237ea7420b3a1ac5a0bc36647f566af89a86ffaf427264b637380"

var testNow = time.Unix(1_700_000_000, 0)

// -------- repositories --------

type fakeProofs struct {
	proofs.Repository
	m      map[string]models.Proof
	getErr error
}

func (f *fakeProofs) Get(ctx context.Context, d string) (*models.Proof, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.m[d]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &p, nil
}

func (f *fakeProofs) Insert(ctx context.Context, p *models.Proof) error {
	if _, ok := f.m[p.Digest]; ok {
		return common.ErrAlreadyClaimed
	}
	f.m[p.Digest] = *p
	return nil
}

func (f *fakeProofs) Delete(ctx context.Context, d string) error {
	if _, ok := f.m[d]; !ok {
		return common.ErrNotClaimed
	}
	delete(f.m, d)
	return nil
}

type fakeAccounts struct {
	accounts.Repository
	nonces map[string]uint64
	err    error
}

func (f *fakeAccounts) Nonce(ctx context.Context, address string) (uint64, error) {
	return f.nonces[address], f.err
}

func (f *fakeAccounts) IncrementNonce(ctx context.Context, address string) (uint64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.nonces[address]++
	return f.nonces[address], nil
}

type fakeChain struct {
	chain.Repository
	head    models.Block
	lockErr error
	setErr  error
}

func (f *fakeChain) Head(ctx context.Context) (*models.Block, error) {
	b := f.head
	return &b, nil
}

func (f *fakeChain) LockHead(ctx context.Context) (*models.Block, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	b := f.head
	return &b, nil
}

func (f *fakeChain) SetHead(ctx context.Context, b *models.Block) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.head = *b
	return nil
}

type fakeRepoMgr struct {
	repomanager.RepositoryManager
	proofs   *fakeProofs
	accounts *fakeAccounts
	chain    *fakeChain
}

func newFakeRepoMgr() *fakeRepoMgr {
	return &fakeRepoMgr{
		proofs:   &fakeProofs{m: map[string]models.Proof{}},
		accounts: &fakeAccounts{nonces: map[string]uint64{}},
		chain:    &fakeChain{head: models.Block{Number: models.GenesisNumber, Hash: models.GenesisHash}},
	}
}

func (m *fakeRepoMgr) Proofs(dbx.DBTX) proofs.Repository     { return m.proofs }
func (m *fakeRepoMgr) Accounts(dbx.DBTX) accounts.Repository { return m.accounts }
func (m *fakeRepoMgr) Chain(dbx.DBTX) chain.Repository       { return m.chain }

// -------- misc --------

type recordingPublisher struct {
	mu        sync.Mutex
	published []models.Proof
	// gate, when set, blocks the first Publish until it is closed; entered is
	// closed once that Publish has started.
	gate    chan struct{}
	entered chan struct{}
}

func (r *recordingPublisher) Publish(p models.Proof) {
	r.mu.Lock()
	first := len(r.published) == 0
	r.published = append(r.published, p)
	r.mu.Unlock()

	if first && r.gate != nil {
		close(r.entered)
		<-r.gate
	}
}

func (r *recordingPublisher) snapshot() []models.Proof {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.published)
}

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func keyPair(t *testing.T, b byte) *account.KeyPair {
	t.Helper()
	kp, err := account.FromSeed(bytes.Repeat([]byte{b}, 32))
	require.NoError(t, err)
	return kp
}

func sign(t *testing.T, kp *account.KeyPair, call string, nonce uint64, params ...string) string {
	t.Helper()
	token, err := extrinsic.Sign(kp, extrinsic.Call{Pallet: common.PalletName, Name: call, Params: params}, nonce, time.Minute, testNow)
	require.NoError(t, err)
	return token
}
