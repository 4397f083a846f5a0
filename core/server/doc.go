// Package server holds the configuration for the local report HTTP server.
//
// The serve command exposes the persisted snapshot read-only over HTTP; this
// package only defines its settings, embedded by core/config.
package server
