// Package resource locates and opens the single configuration resource that
// describes a deployed application.
package resource

import (
	"io"
	"os"

	"github.com/vk/bootstrapgo/internal/archive"
)

// Resource is a resolved configuration resource. Locator is its canonical
// address; Scheme tells the deployment detector what kind of source backs it.
type Resource struct {
	Name    string
	Locator string
	Scheme  string

	open func() (io.ReadCloser, error)
}

// Open returns the resource content for reading.
func (r *Resource) Open() (io.ReadCloser, error) {
	return r.open()
}

// NewFileResource makes a resource backed by a plain file.
func NewFileResource(name, path string) *Resource {
	return &Resource{
		Name:    name,
		Locator: FileLocator(path),
		Scheme:  SchemeFile,
		open:    func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// NewBundleResource makes a resource backed by a member of a bundle archive.
func NewBundleResource(name, archivePath, member string) *Resource {
	return &Resource{
		Name:    name,
		Locator: BundleLocator(archivePath, member),
		Scheme:  SchemeBundle,
		open:    func() (io.ReadCloser, error) { return archive.OpenMember(archivePath, member) },
	}
}
