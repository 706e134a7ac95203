// Package cli provides the interactive Nostos command-line client.
//
// It wires configuration, the local cache database, the contract gateway and
// the encryption services into an interactive REPL. Typical flow: unlock the
// wallet keystore, then register items, list and decrypt them, and work
// through the finder/owner claim flows.
//
// Key features:
//   - Unlock / Lock (keystore passphrase via terminal, caches cleared on lock)
//   - Register an item and print its QR label URL
//   - List own items with bulk decryption
//   - Submit, reveal and confirm claims
//   - Local activity history
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
