package deploy

import "path/filepath"

// Kind describes what backs a code location.
type Kind int

const (
	// KindDir is a directory root served straight from the file system.
	KindDir Kind = iota

	// KindArchive is a zip archive on the file system.
	KindArchive

	// KindNested is a zip archive stored as a member of an outer bundle.
	KindNested
)

// Location is one code location of an assembled deployment. Path is the
// directory, archive, or outer bundle; Member names the nested archive for
// KindNested locations.
type Location struct {
	Kind   Kind
	Path   string
	Member string
}

// String returns the canonical, slash-normalized form of the location. It
// doubles as the ordering and deduplication key: directories carry a
// trailing separator, nested archives use the <bundle>!/<member> form.
func (l Location) String() string {
	path := filepath.ToSlash(l.Path)
	switch l.Kind {
	case KindDir:
		return path + "/"
	case KindNested:
		return path + "!/" + l.Member
	}
	return path
}
