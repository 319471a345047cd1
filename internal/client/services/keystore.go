// Package services contains the client's application services: the sealed
// account keystore and the transaction dispatcher that signs, submits and
// records extrinsics.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/proofkeeper/internal/account"
	"github.com/dmitrijs2005/proofkeeper/internal/client/client"
	"github.com/dmitrijs2005/proofkeeper/internal/client/models"
	"github.com/dmitrijs2005/proofkeeper/internal/client/repositories/keystore"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/cryptox"
)

const saltSize = 16

// KeystoreService manages the single local account.
//
// Create generates a fresh account and seals its seed under password.
// Unlock reopens it; a wrong password yields client.ErrUnauthorized and a
// missing keystore client.ErrLocalDataNotAvailable.
type KeystoreService interface {
	Exists(ctx context.Context) (bool, error)
	Create(ctx context.Context, password []byte) (*account.KeyPair, error)
	Unlock(ctx context.Context, password []byte) (*account.KeyPair, error)
	Forget(ctx context.Context) error
}

type keystoreService struct {
	db *sql.DB
}

func NewKeystoreService(db *sql.DB) KeystoreService {
	return &keystoreService{db: db}
}

func (s *keystoreService) repo() keystore.Repository {
	return keystore.NewSQLiteRepository(s.db)
}

func (s *keystoreService) Exists(ctx context.Context) (bool, error) {
	_, err := s.repo().Load(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *keystoreService) Create(ctx context.Context, password []byte) (*account.KeyPair, error) {
	kp, seed, err := account.Generate()
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(seed)

	salt := common.GenerateRandByteArray(saltSize)
	key := cryptox.DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)

	ct, nonce, err := cryptox.Seal(key, seed, []byte(kp.Address()))
	if err != nil {
		return nil, fmt.Errorf("seal seed: %w", err)
	}

	if err := s.repo().Save(ctx, &models.SealedKey{
		Address:    kp.Address(),
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: ct,
	}); err != nil {
		return nil, err
	}
	return kp, nil
}

func (s *keystoreService) Unlock(ctx context.Context, password []byte) (*account.KeyPair, error) {
	k, err := s.repo().Load(ctx)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, client.ErrLocalDataNotAvailable
	}
	if err != nil {
		return nil, err
	}

	key := cryptox.DeriveMasterKey(password, k.Salt)
	defer common.WipeByteArray(key)

	seed, err := cryptox.Open(key, k.Nonce, k.Ciphertext, []byte(k.Address))
	if errors.Is(err, cryptox.ErrDecrypt) {
		return nil, client.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	defer common.WipeByteArray(seed)

	kp, err := account.FromSeed(seed)
	if err != nil {
		return nil, err
	}
	if kp.Address() != k.Address {
		kp.Wipe()
		return nil, fmt.Errorf("keystore address mismatch: %w", client.ErrUnauthorized)
	}
	return kp, nil
}

func (s *keystoreService) Forget(ctx context.Context) error {
	return s.repo().Clear(ctx)
}
