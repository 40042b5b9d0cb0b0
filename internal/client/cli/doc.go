// Package cli provides the interactive Genei command-line client.
//
// It wires configuration, the local session database, the REST client and
// an interactive REPL. A session saved by a previous run is resumed at
// startup; a background watcher tracks connectivity and announces new
// unread messages.
//
// Commands:
//   - register, login, logout, whoami
//   - users, unread, chat, send, read, readall
//   - upload, download (research paper documents)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
package cli
