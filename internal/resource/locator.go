package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/bootstrapgo/internal/archive"
	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/errutil"
	"github.com/vk/bootstrapgo/internal/fsutil"
	"github.com/vk/bootstrapgo/internal/protocol"
)

// BundleExtension is the file extension of application bundle archives.
const BundleExtension = ".bundle"

// Namespace is the directory that holds configuration resources, both on
// disk and inside bundles.
const Namespace = "meta"

// Locator describes where to search for the configuration resource of one
// application identity.
type Locator struct {
	// Identity is the application name the resource is looked up under.
	Identity string

	// Variant selects an alternate configuration, looked up as
	// Identity.Variant. Empty means the primary configuration.
	Variant string

	// Roots are the directories searched for bundles and plain resources,
	// in order.
	Roots []string

	// BundlePath overrides bundle discovery with an explicit bundle. It may
	// be a plain path or a locator whose scheme the Protocols factory can
	// open, in which case the bundle is staged to a local file first.
	BundlePath string

	// Protocols resolves handlers for remote BundlePath locators. It may be
	// nil when BundlePath is empty or local.
	Protocols protocol.HandlerFactory
}

// BaseName returns the resource file name: the identity, suffixed with the
// variant when one is set.
func (l *Locator) BaseName() string {
	if l.Variant == "" {
		return l.Identity
	}
	return l.Identity + "." + l.Variant
}

// ResourceName returns the namespaced resource name used for lookups inside
// bundles and loaders.
func (l *Locator) ResourceName() string {
	return Namespace + "/" + l.BaseName()
}

// Locate resolves the configuration resource. Bundle candidates win over
// plain files; within each group the search roots are consulted in order.
// Exactly one lookup name is used per call.
func (l *Locator) Locate(ctx context.Context) (*Resource, error) {
	logger := ctxlog.FromContext(ctx)
	if l.Identity == "" {
		return nil, fmt.Errorf("application identity must not be empty")
	}

	name := l.ResourceName()
	logger.Debug("Locating application configuration.", "resource", name)

	bundles, err := l.bundleCandidates(ctx)
	if err != nil {
		return nil, err
	}

	for _, candidate := range bundles {
		info, statErr := os.Stat(candidate)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}
		found, containsErr := archive.Contains(candidate, name)
		if containsErr != nil {
			errutil.Warn(ctx, containsErr)
			continue
		}
		if found {
			logger.Debug("Configuration resolved from bundle.", "bundle", candidate, "member", name)
			return NewBundleResource(name, candidate, name), nil
		}
	}

	for _, root := range l.Roots {
		path := filepath.Join(root, Namespace, l.BaseName())
		info, statErr := os.Stat(path)
		if statErr != nil || !info.Mode().IsRegular() {
			continue
		}
		logger.Debug("Configuration resolved from file.", "path", path)
		return NewFileResource(name, path), nil
	}

	return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
}

// bundleCandidates returns the local bundle paths to probe. An explicit
// BundlePath replaces per-root discovery; a remote one is fetched through
// the protocol registry into a staging file that lives for the rest of the
// process.
func (l *Locator) bundleCandidates(ctx context.Context) ([]string, error) {
	if l.BundlePath == "" {
		candidates := make([]string, 0, len(l.Roots))
		for _, root := range l.Roots {
			candidates = append(candidates, filepath.Join(root, l.Identity+BundleExtension))
		}
		return candidates, nil
	}

	scheme := SchemeOf(l.BundlePath)
	switch scheme {
	case "":
		return []string{l.BundlePath}, nil
	case SchemeFile:
		path, err := FilePath(l.BundlePath)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}

	handler, ok := l.resolveHandler(scheme)
	if !ok {
		return nil, &UnsupportedSchemeError{Scheme: scheme, Locator: l.BundlePath}
	}

	rc, err := handler.Open(ctx, l.BundlePath)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bundle %s: %w", l.BundlePath, err)
	}
	defer func() { errutil.Ignore(ctx, rc.Close()) }()

	staged, err := os.CreateTemp("", l.Identity+"-*"+BundleExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to create bundle staging file: %w", err)
	}
	stagedPath := staged.Name()
	if err := staged.Close(); err != nil {
		return nil, fmt.Errorf("failed to create bundle staging file: %w", err)
	}

	written, err := fsutil.CopyToFile(stagedPath, rc)
	if err != nil {
		errutil.Ignore(ctx, os.Remove(stagedPath))
		return nil, fmt.Errorf("failed to stage bundle %s: %w", l.BundlePath, err)
	}

	ctxlog.FromContext(ctx).Info("Staged remote bundle.", "locator", l.BundlePath, "path", stagedPath, "bytes", written)
	return []string{stagedPath}, nil
}

func (l *Locator) resolveHandler(scheme string) (protocol.Handler, bool) {
	if l.Protocols == nil {
		return nil, false
	}
	return l.Protocols.NewHandler(scheme)
}
