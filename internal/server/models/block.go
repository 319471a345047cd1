package models

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

// GenesisNumber is the height of the first block. Claims are never recorded
// at 0, so 0 can mean "unclaimed" on the wire.
const GenesisNumber uint64 = 1

// GenesisHash is the all-zero hash of the genesis block.
var GenesisHash = "0x" + strings.Repeat("0", 64)

// Block is the chain head.
type Block struct {
	Number   uint64
	Hash     string
	SealedAt time.Time
}

// Next seals the block that follows b:
// hash = BLAKE2b-256(parent hash bytes || big-endian number).
func (b *Block) Next(now time.Time) (*Block, error) {
	parent, err := hex.DecodeString(strings.TrimPrefix(b.Hash, "0x"))
	if err != nil || len(parent) != blake2b.Size256 {
		return nil, fmt.Errorf("bad parent hash %q", b.Hash)
	}

	number := b.Number + 1

	buf := make([]byte, 0, len(parent)+8)
	buf = append(buf, parent...)
	buf = binary.BigEndian.AppendUint64(buf, number)
	sum := blake2b.Sum256(buf)

	return &Block{Number: number, Hash: "0x" + hex.EncodeToString(sum[:]), SealedAt: now}, nil
}
