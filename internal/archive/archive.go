// Package archive reads zip archives as file systems, including archives
// nested as members inside an outer bundle.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
)

// FS opens the archive at path as an fs.FS. The returned closer releases
// the underlying file handle and invalidates the file system.
func FS(path string) (fs.FS, io.Closer, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	return r, r, nil
}

// NestedFS returns the archive stored as member inside the archive at outer
// as an fs.FS. The member bytes are held in memory, so the outer archive is
// not kept open.
func NestedFS(outer, member string) (fs.FS, error) {
	rc, err := OpenMember(outer, member)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(rc)
	if closeErr := rc.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read nested archive %s!/%s: %w", outer, member, err)
	}

	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open nested archive %s!/%s: %w", outer, member, err)
	}
	return r, nil
}

// ListMembers returns the member paths of the archive at path ending with
// the given extension, sorted lexicographically.
func ListMembers(path, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer r.Close()

	var members []string
	for _, f := range r.File {
		if strings.HasSuffix(f.Name, "/") {
			continue
		}
		if strings.HasSuffix(f.Name, extension) {
			members = append(members, f.Name)
		}
	}
	sort.Strings(members)
	return members, nil
}

// Contains reports whether the archive at path has a file member with the
// given slash-separated name.
func Contains(path, member string) (bool, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	defer r.Close()

	for _, f := range r.File {
		if f.Name == member {
			return !strings.HasSuffix(f.Name, "/"), nil
		}
	}
	return false, nil
}

// OpenMember returns the content of one member of the archive at path. The
// archive stays open until the returned reader is closed.
func OpenMember(path, member string) (io.ReadCloser, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}

	rc, err := r.Open(member)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to open archive member %s!/%s: %w", path, member, err)
	}

	return &memberReadCloser{ReadCloser: rc, archive: r}, nil
}

// memberReadCloser ties the lifetime of an open member to its archive.
type memberReadCloser struct {
	io.ReadCloser
	archive io.Closer
}

func (m *memberReadCloser) Close() error {
	err := m.ReadCloser.Close()
	if archiveErr := m.archive.Close(); err == nil {
		err = archiveErr
	}
	return err
}
