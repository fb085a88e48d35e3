package deploy

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/fsutil"
	"github.com/vk/bootstrapgo/internal/resource"
)

// ArchiveExtension is the extension of auxiliary code archives, both nested
// in bundles and scattered under exploded roots.
const ArchiveExtension = ".zip"

// Detection is the immutable result of deployment classification. Root is
// the bundle path in bundled mode and the application root directory
// otherwise.
type Detection struct {
	Mode Mode
	Root string
}

// Detect classifies the deployment shape backing the configuration
// resource. Locator schemes other than file and bundle are not deployable.
func Detect(ctx context.Context, res *resource.Resource) (Detection, error) {
	logger := ctxlog.FromContext(ctx)

	switch res.Scheme {
	case resource.SchemeBundle:
		archivePath, _, err := resource.SplitBundle(res.Locator)
		if err != nil {
			return Detection{}, err
		}
		det := Detection{Mode: ModeBundled, Root: archivePath}
		logger.Debug("Deployment mode detected.", "mode", det.Mode.String(), "root", det.Root)
		return det, nil

	case resource.SchemeFile:
		path, err := resource.FilePath(res.Locator)
		if err != nil {
			return Detection{}, err
		}

		// The resource lives in <root>/meta/<name>, so the application
		// root is the parent of the resource's directory.
		root := filepath.Dir(filepath.Dir(path))

		hasArchives, err := fsutil.HasFileWithExtension(root, ArchiveExtension)
		if err != nil {
			return Detection{}, fmt.Errorf("failed to probe %s for archives: %w", root, err)
		}

		mode := ModeDevelopment
		if hasArchives {
			mode = ModeExploded
		}
		det := Detection{Mode: mode, Root: root}
		logger.Debug("Deployment mode detected.", "mode", det.Mode.String(), "root", det.Root)
		return det, nil
	}

	return Detection{}, &resource.UnsupportedSchemeError{Scheme: res.Scheme, Locator: res.Locator}
}
