// Package loader serves application resources from an ordered set of code
// locations, falling back to the ambient loader the process started with.
package loader

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/vk/bootstrapgo/internal/archive"
	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/deploy"
	"github.com/vk/bootstrapgo/internal/entrypoint"
)

// cacheSize bounds the resource-name lookup cache of one loader.
const cacheSize = 128

// Loader resolves resources across code locations in first-match-wins order
// and entry points through the registration table it carries. It is
// immutable after construction, so concurrent lookups are safe.
type Loader struct {
	table     *entrypoint.Table
	parent    *Loader
	locations []deploy.Location
	systems   []fs.FS
	closers   []io.Closer
	cache     *lru.Cache[string, int]
}

// NewAmbient creates the loader that represents the launcher process
// itself. It serves the given root directories and resolves entry points
// from table.
func NewAmbient(table *entrypoint.Table, roots ...string) *Loader {
	l := &Loader{table: table, cache: newCache()}
	for _, root := range roots {
		l.locations = append(l.locations, deploy.Location{Kind: deploy.KindDir, Path: root})
		l.systems = append(l.systems, os.DirFS(root))
	}
	return l
}

// Build returns the loader for the assembled code locations. With one
// location or none there is nothing beyond what the ambient loader already
// serves, so the ambient loader itself is returned. Otherwise every
// location is opened eagerly; a location that cannot be opened fails the
// whole build.
func Build(ctx context.Context, ambient *Loader, locations []deploy.Location) (*Loader, error) {
	logger := ctxlog.FromContext(ctx)

	if len(locations) <= 1 {
		logger.Debug("Reusing ambient loader.", "locations", len(locations))
		return ambient, nil
	}

	l := &Loader{table: ambient.table, parent: ambient, cache: newCache()}
	for _, loc := range locations {
		fsys, closer, err := openLocation(loc)
		if err != nil {
			l.Close()
			return nil, &deploy.AssemblyError{Location: loc, Err: err}
		}
		l.locations = append(l.locations, loc)
		l.systems = append(l.systems, fsys)
		if closer != nil {
			l.closers = append(l.closers, closer)
		}
	}

	logger.Debug("Application loader built.", "locations", len(l.locations))
	return l, nil
}

func newCache() *lru.Cache[string, int] {
	cache, err := lru.New[string, int](cacheSize)
	if err != nil {
		panic(fmt.Sprintf("failed to create loader cache: %v", err))
	}
	return cache
}

func openLocation(loc deploy.Location) (fs.FS, io.Closer, error) {
	switch loc.Kind {
	case deploy.KindDir:
		info, err := os.Stat(loc.Path)
		if err != nil {
			return nil, nil, err
		}
		if !info.IsDir() {
			return nil, nil, fmt.Errorf("%s is not a directory", loc.Path)
		}
		return os.DirFS(loc.Path), nil, nil

	case deploy.KindArchive:
		return archive.FS(loc.Path)

	case deploy.KindNested:
		fsys, err := archive.NestedFS(loc.Path, loc.Member)
		return fsys, nil, err
	}
	return nil, nil, fmt.Errorf("unknown code location kind %d", loc.Kind)
}

// Open returns the named resource from the first location that has it, then
// falls back to the parent loader. Resource names are slash-separated and
// relative, like "meta/demo".
func (l *Loader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if idx, ok := l.cache.Get(name); ok {
		if rc, err := l.openAt(idx, name); err == nil {
			return rc, nil
		}
		l.cache.Remove(name)
	}

	for i := range l.systems {
		rc, err := l.openAt(i, name)
		if err != nil {
			continue
		}
		l.cache.Add(name, i)
		return rc, nil
	}

	if l.parent != nil {
		return l.parent.Open(ctx, name)
	}
	return nil, fmt.Errorf("resource %s: %w", name, fs.ErrNotExist)
}

func (l *Loader) openAt(i int, name string) (io.ReadCloser, error) {
	f, err := l.systems[i].Open(name)
	if err != nil {
		return nil, err
	}
	if info, statErr := f.Stat(); statErr == nil && info.IsDir() {
		f.Close()
		return nil, fmt.Errorf("resource %s is a directory", name)
	}
	return f, nil
}

// ReadFile returns the full content of the named resource.
func (l *Loader) ReadFile(ctx context.Context, name string) ([]byte, error) {
	rc, err := l.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	if closeErr := rc.Close(); err == nil {
		err = closeErr
	}
	return data, err
}

// ResolveMain resolves an entry point name through the table the loader
// carries.
func (l *Loader) ResolveMain(name string) (entrypoint.Factory, bool) {
	if l.table == nil {
		return nil, false
	}
	return l.table.Resolve(name)
}

// Locations returns the code locations this loader serves, in search order.
func (l *Loader) Locations() []deploy.Location {
	out := make([]deploy.Location, len(l.locations))
	copy(out, l.locations)
	return out
}

// Parent returns the loader consulted after this one, or nil for the
// ambient loader.
func (l *Loader) Parent() *Loader {
	return l.parent
}

// Close releases the archive handles held by this loader. The ambient
// loader holds none, so closing it is a no-op.
func (l *Loader) Close() error {
	var firstErr error
	for _, c := range l.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	l.closers = nil
	return firstErr
}
