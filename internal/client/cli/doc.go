// Package cli implements the interactive terminal frontend of the kinotv
// client: a read-eval-print loop dispatching to command handlers for
// authentication, catalog browsing, the purchase flow and playback.
//
// Handlers print their own output and return errors to the REPL, which
// reports them without terminating the loop. Interactive input goes through
// the helpers in input.go; package-level function vars (getSimpleText,
// getPassword, printlnFn) act as test seams.
package cli
