package deploy

import (
	"context"
	"fmt"
	"sort"

	"github.com/vk/bootstrapgo/internal/archive"
	"github.com/vk/bootstrapgo/internal/ctxlog"
	"github.com/vk/bootstrapgo/internal/fsutil"
)

// AssemblyError reports a code location that could not be enumerated or
// opened during assembly.
type AssemblyError struct {
	Location Location
	Err      error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("failed to assemble code location %s: %v", e.Location, e.Err)
}

func (e *AssemblyError) Unwrap() error {
	return e.Err
}

// Assemble produces the ordered, deduplicated code locations for a
// detection. The owning bundle or root directory is always location zero;
// discovered archives follow in lexicographic order of their canonical
// form. Two calls over the same layout yield identical sequences.
func Assemble(ctx context.Context, det Detection) ([]Location, error) {
	logger := ctxlog.FromContext(ctx)

	var locations []Location
	switch det.Mode {
	case ModeBundled:
		owner := Location{Kind: KindArchive, Path: det.Root}
		members, err := archive.ListMembers(det.Root, ArchiveExtension)
		if err != nil {
			return nil, &AssemblyError{Location: owner, Err: err}
		}
		locations = append(locations, owner)
		for _, member := range members {
			locations = append(locations, Location{Kind: KindNested, Path: det.Root, Member: member})
		}

	case ModeExploded:
		root := Location{Kind: KindDir, Path: det.Root}
		files, err := fsutil.FindFilesByExtension(det.Root, ArchiveExtension)
		if err != nil {
			return nil, &AssemblyError{Location: root, Err: err}
		}
		archives := make([]Location, 0, len(files))
		for _, f := range files {
			archives = append(archives, Location{Kind: KindArchive, Path: f})
		}
		sort.Slice(archives, func(i, j int) bool {
			return archives[i].String() < archives[j].String()
		})
		locations = append(locations, root)
		locations = append(locations, archives...)

	case ModeDevelopment:
		logger.Debug("Development deployment, no code locations to assemble.")
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown deployment mode %s", det.Mode)
	}

	deduped := dedupe(locations)
	logger.Debug("Code locations assembled.", "mode", det.Mode.String(), "count", len(deduped))
	return deduped, nil
}

// dedupe drops locations whose canonical form was already seen, keeping the
// first occurrence in place.
func dedupe(locations []Location) []Location {
	seen := make(map[string]struct{}, len(locations))
	out := locations[:0]
	for _, loc := range locations {
		key := loc.String()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, loc)
	}
	return out
}
