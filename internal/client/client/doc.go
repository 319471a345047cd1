// Package client contains the terminal client's connection to a ledger node
// and its local persistence bootstrap.
//
// GRPCClient wraps the Ledger service: liveness pings, proof queries and
// subscriptions, account nonces, extrinsic submission and evidence URLs.
// Transport failures are folded into the sentinel errors ErrUnavailable and
// ErrUnauthorized; rejections by the ledger surface as *RemoteError carrying
// the node's message.
//
// InitDatabase opens the local SQLite file and applies the embedded goose
// migrations.
package client
