// Package filesystem implements the walking of directory trees. A [Walk]
// lazily produces [schema.Entry] elements depth-first and accumulates
// [schema.Totals] for everything it has produced.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/desertwitch/filetasks/internal/schema"
	"golang.org/x/sys/unix"
)

type osProvider interface {
	ReadDir(name string) ([]os.DirEntry, error)
	Readlink(name string) (string, error)
	Stat(name string) (os.FileInfo, error)
}

type unixProvider interface {
	Access(path string, mode uint32) error
	Lstat(path string, stat *unix.Stat_t) error
}

// Handler is the principal implementation for the filesystem walking
// services.
type Handler struct {
	osHandler   osProvider
	unixHandler unixProvider
}

// NewHandler returns a pointer to a new filesystem [Handler].
func NewHandler(osHandler osProvider, unixHandler unixProvider) *Handler {
	return &Handler{
		osHandler:   osHandler,
		unixHandler: unixHandler,
	}
}

// Open validates that root resolves to an accessible directory and returns a
// [Walk] for it. The walk itself does not start before [Walk.Entries] is
// iterated.
func (f *Handler) Open(root string) (*Walk, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("(fs-open) failed to resolve %s: %w", root, err)
	}

	info, err := f.osHandler.Stat(absRoot)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("(fs-open) %w: %s", ErrNotFound, absRoot)
		}

		return nil, fmt.Errorf("(fs-open) failed to stat %s: %w", absRoot, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("(fs-open) %w: %s", ErrNotADirectory, absRoot)
	}

	return &Walk{
		handler: f,
		root:    absRoot,
	}, nil
}

// Scan is a helper function walking the entire tree at root and returning
// only the resulting [schema.Totals].
func (f *Handler) Scan(ctx context.Context, root string) (schema.Totals, error) {
	walk, err := f.Open(root)
	if err != nil {
		return schema.Totals{}, err
	}

	for range walk.Entries(ctx) { //nolint:revive
	}

	if err := walk.Err(); err != nil {
		return walk.Totals(), err
	}

	return walk.Totals(), nil
}
