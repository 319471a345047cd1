// Package poe is the terminal Proof of Existence component: pick a file,
// hash it, watch its claim on the ledger and create or revoke the claim.
package poe

import "github.com/dmitrijs2005/proofkeeper/internal/rpc"

// State is the component's view state. Owner and Block only ever change
// together, through ApplyClaim or a digest change.
type State struct {
	Path   string
	Digest string
	Owner  string
	Block  uint64
	Status string
}

// ApplyClaim copies the claim of the current digest from a ledger result.
// An unclaimed result clears both fields.
func (s *State) ApplyClaim(p rpc.Proof) {
	if !p.Claimed() {
		s.Owner, s.Block = "", 0
		return
	}
	s.Owner, s.Block = p.Owner, p.Block
}

// SetDigest switches to a new file. The previous claim no longer applies.
func (s *State) SetDigest(path, d string) {
	s.Path, s.Digest = path, d
	s.Owner, s.Block = "", 0
}

func (s State) IsClaimed() bool { return s.Block != 0 }

func (s State) CanCreate() bool { return s.Digest != "" && !s.IsClaimed() }

func (s State) CanRevoke(signer string) bool { return s.IsClaimed() && s.Owner == signer }

// CanArchive needs the file on disk, so a bare digest is not enough.
func (s State) CanArchive(signer string) bool { return s.Path != "" && s.CanRevoke(signer) }

func (s *State) Reset() { *s = State{} }
