// Package deploy classifies how an application is deployed and assembles
// the ordered code locations backing that deployment.
package deploy

import "fmt"

// Mode is the deployment shape detected for an application. It is derived
// once during startup and immutable afterwards.
type Mode int

const (
	// ModeBundled means the application ships as a single bundle archive
	// that contains the configuration and any nested code archives.
	ModeBundled Mode = iota

	// ModeExploded means the bundle content lies unpacked in a directory
	// tree, with auxiliary archives somewhere below the root.
	ModeExploded

	// ModeDevelopment means a raw source layout with no archives at all;
	// the ambient loader already serves everything.
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeBundled:
		return "bundled"
	case ModeExploded:
		return "exploded"
	case ModeDevelopment:
		return "development"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}
