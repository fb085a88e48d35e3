// Package app contains the core launcher logic. It defines the main App
// struct, its configuration, and the bootstrap-to-dispatch lifecycle,
// decoupled from any specific entrypoint like a CLI.
package app
