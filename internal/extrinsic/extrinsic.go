// Package extrinsic is the signed transaction envelope exchanged between the
// client and the ledger node. An extrinsic is a compact JWS signed with the
// sender's ed25519 key (alg EdDSA); the sender's SS58 address travels as the
// subject, so the node needs no key registry to verify it.
package extrinsic

import (
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/proofkeeper/internal/account"
	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

// Call names a pallet callable and its ordered parameters.
type Call struct {
	Pallet string
	Name   string
	Params []string
}

// Claims is the JWT payload of an extrinsic.
type Claims struct {
	jwt.RegisteredClaims
	Pallet string   `json:"pallet"`
	Call   string   `json:"call"`
	Params []string `json:"params"`
	Nonce  uint64   `json:"nonce"`
}

// Extrinsic is a verified transaction.
type Extrinsic struct {
	ID        string
	Hash      string
	Signer    string
	Call      Call
	Nonce     uint64
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Hash identifies an encoded extrinsic: BLAKE2b-256 of the compact token.
func Hash(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return "0x" + hex.EncodeToString(sum[:])
}

// Sign encodes call as an extrinsic from kp, valid for mortality after now.
func Sign(kp *account.KeyPair, call Call, nonce uint64, mortality time.Duration, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   kp.Address(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(mortality)),
		},
		Pallet: call.Pallet,
		Call:   call.Name,
		Params: call.Params,
		Nonce:  nonce,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(kp.PrivateKey())
	if err != nil {
		return "", fmt.Errorf("sign extrinsic: %w", err)
	}
	return token, nil
}

// Verify checks the signature and mortality of token against now and returns
// the decoded extrinsic. A bad EdDSA signature maps to
// common.ErrInvalidSignature; a wrong alg or anything else malformed maps to
// common.ErrInvalidExtrinsic.
func Verify(token string, now time.Time) (*Extrinsic, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		c, ok := t.Claims.(*Claims)
		if !ok {
			return nil, common.ErrInvalidExtrinsic
		}
		return account.DecodeAddress(c.Subject)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		// jwt reports a disallowed alg as a signature failure; it is a
		// malformed extrinsic.
		if parsed == nil || parsed.Method == nil || parsed.Method.Alg() != jwt.SigningMethodEdDSA.Alg() {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidExtrinsic, err)
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidSignature, err)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidExtrinsic, err)
	}

	if claims.Pallet == "" || claims.Call == "" {
		return nil, fmt.Errorf("%w: missing call", common.ErrInvalidExtrinsic)
	}

	ext := &Extrinsic{
		ID:     claims.ID,
		Hash:   Hash(token),
		Signer: claims.Subject,
		Call:   Call{Pallet: claims.Pallet, Name: claims.Call, Params: claims.Params},
		Nonce:  claims.Nonce,
	}
	if claims.IssuedAt != nil {
		ext.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		ext.ExpiresAt = claims.ExpiresAt.Time
	}
	return ext, nil
}
