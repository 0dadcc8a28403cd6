// Package cli provides the interactive notekeeper command-line client.
//
// It wires configuration, the key-value storage backend, the auth and note
// services, and a REPL. On start the persisted session, if any, is
// restored, so a user stays logged in across runs until they log out.
//
// Key features:
//   - Register / Login / Logout / Profile
//   - Per-category note lists with search and date sorting
//   - Add / Show / Edit / Delete notes
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
