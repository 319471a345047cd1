// Package cli wires the terminal client together: it opens the local
// database and log file, unlocks (or creates) the account keystore, starts
// the connectivity watcher and runs the Proof of Existence component.
package cli
