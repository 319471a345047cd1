// Package common contains constants and sentinel errors shared by the
// ledger node and the terminal client.
package common

// PalletName is the ledger module that stores proofs.
const PalletName = "templateModule"

// Callables exposed by PalletName.
const (
	CallCreateClaim     = "createClaim"
	CallRevokeClaim     = "revokeClaim"
	CallArchiveEvidence = "archiveEvidence"
)

// RequestIDHeaderName is the gRPC metadata key carrying a per-call request id.
const RequestIDHeaderName = "x-request-id"
