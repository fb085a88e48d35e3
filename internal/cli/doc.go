// Package cli is responsible for deriving the launch configuration from the
// process environment and handling process-level concerns like exit codes.
// The launcher defines no flags of its own, so the complete argument vector
// reaches the hosted application untouched.
package cli
