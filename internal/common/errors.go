package common

import "errors"

var (
	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// extrinsic validation
	ErrInvalidExtrinsic = errors.New("invalid extrinsic")
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUnknownCall      = errors.New("unknown call")
	ErrBadNonce         = errors.New("bad nonce")

	// proof pallet
	ErrInvalidDigest  = errors.New("invalid digest")
	ErrAlreadyClaimed = errors.New("proof already claimed")
	ErrNotClaimed     = errors.New("no such proof")
	ErrNotOwner       = errors.New("not proof owner")

	// evidence storage
	ErrEvidenceDisabled = errors.New("evidence storage disabled")
)
