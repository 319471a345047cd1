// Package account manages ledger accounts: ed25519 key pairs addressed in
// SS58 form (base58 of prefix, public key and a 2-byte BLAKE2b checksum).
package account

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// NetworkPrefix is the generic Substrate SS58 prefix.
const NetworkPrefix byte = 42

const checksumLen = 2

var ErrInvalidAddress = errors.New("invalid address")

var ss58Pre = []byte("SS58PRE")

func checksum(payload []byte) []byte {
	sum := blake2b.Sum512(append(append([]byte{}, ss58Pre...), payload...))
	return sum[:checksumLen]
}

// EncodeAddress renders pub as an SS58 address.
func EncodeAddress(pub ed25519.PublicKey) string {
	payload := make([]byte, 0, 1+len(pub)+checksumLen)
	payload = append(payload, NetworkPrefix)
	payload = append(payload, pub...)
	payload = append(payload, checksum(payload)...)
	return base58.Encode(payload)
}

// DecodeAddress returns the public key behind an SS58 address, rejecting
// foreign network prefixes and bad checksums.
func DecodeAddress(addr string) (ed25519.PublicKey, error) {
	raw, err := base58.Decode(addr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if len(raw) != 1+ed25519.PublicKeySize+checksumLen {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidAddress, len(raw))
	}
	if raw[0] != NetworkPrefix {
		return nil, fmt.Errorf("%w: network prefix %d", ErrInvalidAddress, raw[0])
	}
	body := raw[:len(raw)-checksumLen]
	want := checksum(body)
	got := raw[len(raw)-checksumLen:]
	if want[0] != got[0] || want[1] != got[1] {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}
	return ed25519.PublicKey(body[1:]), nil
}

// KeyPair is an unlocked account.
type KeyPair struct {
	priv    ed25519.PrivateKey
	address string
}

// FromSeed rebuilds a key pair from its 32-byte seed.
func FromSeed(seed []byte) (*KeyPair, error) {
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &KeyPair{priv: priv, address: EncodeAddress(priv.Public().(ed25519.PublicKey))}, nil
}

// Generate creates a fresh account. The caller owns the returned seed and
// should wipe it once persisted.
func Generate() (*KeyPair, []byte, error) {
	seed := common.GenerateRandByteArray(ed25519.SeedSize)
	kp, err := FromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	return kp, seed, nil
}

func (k *KeyPair) Address() string { return k.address }

func (k *KeyPair) PublicKey() ed25519.PublicKey { return k.priv.Public().(ed25519.PublicKey) }

// PrivateKey is what jwt's EdDSA signer expects.
func (k *KeyPair) PrivateKey() ed25519.PrivateKey { return k.priv }

// Wipe zeroes the private key material.
func (k *KeyPair) Wipe() {
	common.WipeByteArray(k.priv)
}
