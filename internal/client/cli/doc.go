// Package cli provides the interactive inventory manager.
//
// It opens the configured store, applies migrations and runs a numbered menu
// over the products table: add, delete, update, search and list. Input is
// read line by line, so the menu can be driven from a pipe as well as from a
// terminal. The loop ends on option 0 or at end of input.
//
// The menu is started via App.Run(ctx), which blocks until the user exits.
// See runREPL and the App product commands for details.
package cli
