// Package logcfg loads named logging profiles and builds loggers from them.
//
// A profile is an HCL document with a single logging block selecting level,
// format and source annotation, plus optional static attributes stamped on
// every record. Applications ship profiles as resources next to their
// configuration, so the effective logging setup travels with the deployment.
package logcfg

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vk/bootstrapgo/internal/loader"
)

// Resource names of the profiles bundled with an application.
const (
	ProfileDefault = "meta/logging-default.hcl"
	ProfileVerbose = "meta/logging-verbose.hcl"
	ProfileDebug   = "meta/logging-debug.hcl"
)

// ErrProfileNotFound is returned when neither the file system nor the
// loader holds the requested profile.
var ErrProfileNotFound = errors.New("logging profile not found")

// Resolve maps a profile selector to the resource name holding it. The
// empty selector and the built-in names map to bundled profiles; any other
// selector is used verbatim, so explicit paths keep working.
func Resolve(name string) string {
	switch name {
	case "", "default":
		return ProfileDefault
	case "verbose":
		return ProfileVerbose
	case "debug":
		return ProfileDebug
	}
	return name
}

// Read returns the source of the named profile, trying the file system
// first and the loader second, with the file name the source came from.
func Read(ctx context.Context, name string, ldr *loader.Loader) ([]byte, string, error) {
	resolved := Resolve(name)

	if data, err := os.ReadFile(resolved); err == nil {
		return data, resolved, nil
	}
	if ldr != nil {
		if data, err := ldr.ReadFile(ctx, resolved); err == nil {
			return data, resolved, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s", ErrProfileNotFound, resolved)
}
