package resource

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/bootstrapgo/internal/archive"
	"github.com/vk/bootstrapgo/internal/protocol"
)

// Schemes of the locators the bootstrap itself produces.
const (
	SchemeFile   = "file"
	SchemeBundle = "bundle"
)

// FileLocator returns the file-scheme locator for a path.
func FileLocator(path string) string {
	return SchemeFile + "://" + filepath.ToSlash(path)
}

// BundleLocator returns the bundle-scheme locator for a member of the
// archive at archivePath, in the form bundle://<path>!/<member>.
func BundleLocator(archivePath, member string) string {
	return SchemeBundle + "://" + filepath.ToSlash(archivePath) + "!/" + member
}

// SchemeOf extracts the scheme of a locator. Locators without a scheme
// separator yield the empty string.
func SchemeOf(locator string) string {
	i := strings.Index(locator, "://")
	if i < 0 {
		return ""
	}
	return locator[:i]
}

// FilePath converts a file-scheme locator back into a platform path.
func FilePath(locator string) (string, error) {
	if scheme := SchemeOf(locator); scheme != SchemeFile {
		return "", &UnsupportedSchemeError{Scheme: scheme, Locator: locator}
	}
	return filepath.FromSlash(strings.TrimPrefix(locator, SchemeFile+"://")), nil
}

// SplitBundle splits a bundle-scheme locator into the archive path and the
// member path inside it.
func SplitBundle(locator string) (string, string, error) {
	if scheme := SchemeOf(locator); scheme != SchemeBundle {
		return "", "", &UnsupportedSchemeError{Scheme: scheme, Locator: locator}
	}
	rest := strings.TrimPrefix(locator, SchemeBundle+"://")
	i := strings.Index(rest, "!/")
	if i < 0 {
		return "", "", fmt.Errorf("malformed bundle locator %s: missing '!/' member separator", locator)
	}
	return filepath.FromSlash(rest[:i]), rest[i+2:], nil
}

// BuiltinFactory serves the file and bundle schemes every deployment relies
// on. The protocol registry captures it as its prior factory, so custom
// registrations extend it without shadowing it.
func BuiltinFactory() protocol.HandlerFactory {
	return protocol.HandlerFactoryFunc(func(scheme string) (protocol.Handler, bool) {
		switch scheme {
		case SchemeFile:
			return builtinHandlerFunc(openFileLocator), true
		case SchemeBundle:
			return builtinHandlerFunc(openBundleLocator), true
		}
		return nil, false
	})
}

// builtinHandlerFunc adapts a function to the protocol.Handler interface.
type builtinHandlerFunc func(ctx context.Context, locator string) (io.ReadCloser, error)

func (f builtinHandlerFunc) Open(ctx context.Context, locator string) (io.ReadCloser, error) {
	return f(ctx, locator)
}

func openFileLocator(ctx context.Context, locator string) (io.ReadCloser, error) {
	path, err := FilePath(locator)
	if err != nil {
		return nil, err
	}
	return os.Open(path)
}

func openBundleLocator(ctx context.Context, locator string) (io.ReadCloser, error) {
	archivePath, member, err := SplitBundle(locator)
	if err != nil {
		return nil, err
	}
	return archive.OpenMember(archivePath, member)
}
