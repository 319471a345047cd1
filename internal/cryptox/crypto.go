// Package cryptox wraps the primitives the client keystore needs: an
// argon2id password KDF and AES-256-GCM sealing.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"

	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

// KeySize is the length of keys produced by DeriveMasterKey.
const KeySize = 32

// ErrDecrypt is returned by Open when authentication fails, which in
// practice means a wrong password.
var ErrDecrypt = errors.New("decryption failed")

// DeriveMasterKey stretches password with salt using argon2id
// (t=1, m=64MiB, p=4) into a KeySize-byte key.
func DeriveMasterKey(password []byte, salt []byte) []byte {
	return argon2.IDKey(password, salt, 1, 64*1024, 4, KeySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Seal encrypts plaintext under key with a fresh random nonce. additional is
// authenticated but not encrypted; the keystore binds the account address
// this way so a sealed seed cannot be swapped between records.
func Seal(key, plaintext, additional []byte) (ciphertext, nonce []byte, err error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	nonce = common.GenerateRandByteArray(aesgcm.NonceSize())
	ciphertext = aesgcm.Seal(nil, nonce, plaintext, additional)

	return ciphertext, nonce, nil
}

// Open reverses Seal.
func Open(key, nonce, ciphertext, additional []byte) ([]byte, error) {
	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aesgcm.NonceSize() {
		return nil, ErrDecrypt
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, additional)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
