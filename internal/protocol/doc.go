// Package protocol multiplexes the single protocol-handler-factory slot the
// process exposes.
//
// The runtime allows exactly one handler factory to be installed for the
// lifetime of the process. The Registry is that factory: it dispatches on the
// locator scheme to per-scheme factories registered at startup and falls back
// to whatever factory existed before it was installed, so built-in schemes
// keep working untouched.
package protocol
