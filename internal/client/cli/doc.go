// Package cli provides the interactive storefront command-line client.
//
// It wires configuration, the local cart store, the server API client and
// a REPL. Typical flow: restore the saved cart, browse the menu, build the
// cart, ask for a checkout quote. Staff can log in, check their session and
// change their password.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
