package filesystem

import (
	"fmt"

	"github.com/desertwitch/filetasks/internal/schema"
	"golang.org/x/sys/unix"
)

// getMetadata returns the [schema.Metadata] of a path without following a
// symbolic link at that path.
func getMetadata(path string, osOps osProvider, unixOps unixProvider) (*schema.Metadata, error) {
	var stat unix.Stat_t

	if err := unixOps.Lstat(path, &stat); err != nil {
		return nil, fmt.Errorf("failed to lstat: %w", err)
	}

	metadata := &schema.Metadata{
		Inode:      stat.Ino,
		Perms:      (uint32(stat.Mode) & 0o777), //nolint:unconvert
		ModifiedAt: stat.Mtim,
		Size:       handleSize(stat.Size),
		IsDir:      (uint32(stat.Mode) & unix.S_IFMT) == unix.S_IFDIR, //nolint:unconvert
		IsRegular:  (uint32(stat.Mode) & unix.S_IFMT) == unix.S_IFREG, //nolint:unconvert
		IsSymlink:  (uint32(stat.Mode) & unix.S_IFMT) == unix.S_IFLNK, //nolint:unconvert
	}

	if metadata.IsSymlink {
		symlinkTarget, err := osOps.Readlink(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read symlink: %w", err)
		}
		metadata.SymlinkTo = symlinkTarget
	}

	return metadata, nil
}

// handleSize converts a int64 filesize to a uint64 filesize (with sizes < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
