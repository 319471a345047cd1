// Package digest computes the key a file is claimed under: the file bytes are
// hex-encoded and the resulting text is hashed with BLAKE2b-256.
package digest

import (
	"context"
	"encoding/hex"
	"strings"
	"sync"

	"github.com/dmitrijs2005/proofkeeper/internal/common"
	"github.com/dmitrijs2005/proofkeeper/internal/filex"
	"golang.org/x/crypto/blake2b"
)

// Prefix marks a hex-encoded digest.
const Prefix = "0x"

// Size is the digest length in bytes.
const Size = blake2b.Size256

// FromBytes returns the "0x"-prefixed lowercase hex digest of content.
func FromBytes(content []byte) string {
	sum := blake2b.Sum256([]byte(hex.EncodeToString(content)))
	return Prefix + hex.EncodeToString(sum[:])
}

// Normalize validates d and returns it in canonical form (lowercase, with
// prefix). Digests arriving over the wire go through here before use as keys.
func Normalize(d string) (string, error) {
	d = strings.ToLower(strings.TrimSpace(d))
	raw, ok := strings.CutPrefix(d, Prefix)
	if !ok || len(raw) != 2*Size {
		return "", common.ErrInvalidDigest
	}
	if _, err := hex.DecodeString(raw); err != nil {
		return "", common.ErrInvalidDigest
	}
	return d, nil
}

// Result is the outcome of one Hasher run.
type Result struct {
	Generation uint64
	Path       string
	Digest     string
	Err        error
}

// Hasher serialises file picks: starting a new computation cancels the one in
// flight, and IsCurrent tells whether a finished Result still matters.
type Hasher struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	read   func(ctx context.Context, path string) ([]byte, error)
}

func NewHasher() *Hasher {
	return &Hasher{read: filex.ReadFile}
}

// Start supersedes any running computation and returns the work for path.
// The returned function blocks while reading and is meant to run off the UI
// loop.
func (h *Hasher) Start(ctx context.Context, path string) func() Result {
	h.mu.Lock()
	if h.cancel != nil {
		h.cancel()
	}
	h.gen++
	gen := h.gen
	ctx, cancel := context.WithCancel(ctx)
	h.cancel = cancel
	h.mu.Unlock()

	return func() Result {
		defer cancel()
		data, err := h.read(ctx, path)
		if err != nil {
			return Result{Generation: gen, Path: path, Err: err}
		}
		return Result{Generation: gen, Path: path, Digest: FromBytes(data)}
	}
}

// IsCurrent reports whether gen belongs to the latest Start.
func (h *Hasher) IsCurrent(gen uint64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return gen == h.gen
}

// Stop cancels the running computation, if any.
func (h *Hasher) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}
