package protocol

import (
	"errors"
	"sync"
)

// ErrAlreadyInstalled is returned when a second registry is installed into
// the process slot.
var ErrAlreadyInstalled = errors.New("protocol handler registry already installed")

var (
	installMu sync.Mutex
	installed *Registry
)

// Install claims the process handler-factory slot for the given registry.
// The slot can be claimed once per process lifetime.
func Install(r *Registry) error {
	if r == nil {
		panic("cannot install a nil protocol handler registry")
	}

	installMu.Lock()
	defer installMu.Unlock()

	if installed != nil {
		return ErrAlreadyInstalled
	}
	installed = r
	return nil
}

// Installed returns the registry occupying the process slot, or nil when no
// registry has been installed yet.
func Installed() *Registry {
	installMu.Lock()
	defer installMu.Unlock()
	return installed
}
