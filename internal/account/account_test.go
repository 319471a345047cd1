package account

import (
	"bytes"
	"crypto/ed25519"
	"encoding/hex"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alicePub  = "d43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	aliceSS58 = "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY"
)

func TestEncodeAddress_KnownVector(t *testing.T) {
	pub, err := hex.DecodeString(alicePub)
	require.NoError(t, err)
	assert.Equal(t, aliceSS58, EncodeAddress(pub))
}

func TestDecodeAddress_KnownVector(t *testing.T) {
	pub, err := DecodeAddress(aliceSS58)
	require.NoError(t, err)
	assert.Equal(t, alicePub, hex.EncodeToString(pub))
}

func TestDecodeAddress_Rejects(t *testing.T) {
	raw, err := base58.Decode(aliceSS58)
	require.NoError(t, err)

	badChecksum := append([]byte{}, raw...)
	badChecksum[len(badChecksum)-1] ^= 0xff

	otherNetwork := append([]byte{}, raw...)
	otherNetwork[0] = 0

	tests := map[string]string{
		"not base58":     "0OIl",
		"too short":      base58.Encode(raw[:10]),
		"bad checksum":   base58.Encode(badChecksum),
		"foreign prefix": base58.Encode(otherNetwork),
	}
	for name, addr := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeAddress(addr)
			require.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestFromSeed_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{1}, ed25519.SeedSize)

	a, err := FromSeed(seed)
	require.NoError(t, err)
	b, err := FromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, a.Address(), b.Address())
	pub, err := DecodeAddress(a.Address())
	require.NoError(t, err)
	assert.Equal(t, a.PublicKey(), pub)

	_, err = FromSeed(seed[:5])
	require.Error(t, err)
}

func TestGenerate_SignsAndWipes(t *testing.T) {
	kp, seed, err := Generate()
	require.NoError(t, err)
	require.Len(t, seed, ed25519.SeedSize)

	msg := []byte("createClaim")
	sig := ed25519.Sign(kp.PrivateKey(), msg)
	assert.True(t, ed25519.Verify(kp.PublicKey(), msg, sig))

	kp.Wipe()
	assert.Equal(t, make([]byte, ed25519.PrivateKeySize), []byte(kp.PrivateKey()))
}
