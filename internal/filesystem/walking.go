package filesystem

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"path/filepath"

	"github.com/desertwitch/filetasks/internal/schema"
)

// Walk is a single traversal of a directory tree. It is obtained from
// [Handler.Open] and is not safe for concurrent use.
type Walk struct {
	handler *Handler
	root    string
	totals  schema.Totals
	err     error
}

// Root returns the absolute root path of the [Walk].
func (w *Walk) Root() string {
	return w.root
}

// Totals returns the [schema.Totals] of all entries produced so far.
func (w *Walk) Totals() schema.Totals {
	return w.totals
}

// Err returns the error that ended the last iteration early, if any. Failing
// to read the root directory or a cancelled context is such an error, while
// unreadable subdirectories are only skipped and counted.
func (w *Walk) Err() error {
	return w.err
}

// Entries returns a lazy sequence of all elements beneath the root. The
// order is depth-first, with every directory produced before its contents
// and siblings produced in lexical order. Symbolic links to directories are
// produced, but never descended into. Each iteration restarts the walk and
// resets its [schema.Totals].
func (w *Walk) Entries(ctx context.Context) iter.Seq[*schema.Entry] {
	return func(yield func(*schema.Entry) bool) {
		w.totals = schema.Totals{}
		w.err = nil

		names, err := w.readDirNames(w.root)
		if err != nil {
			w.err = fmt.Errorf("(fs-walk) failed to read root %s: %w", w.root, err)

			return
		}

		w.walkDir(ctx, w.root, names, 1, yield)
	}
}

// walkDir produces all elements beneath a directory, returning false if the
// iteration is to be stopped.
func (w *Walk) walkDir(ctx context.Context, dir string, names []string, depth int, yield func(*schema.Entry) bool) bool {
	for _, name := range names {
		if ctx.Err() != nil {
			w.err = fmt.Errorf("(fs-walk) %w", ctx.Err())

			return false
		}

		path := filepath.Join(dir, name)

		entry, err := w.handler.establishEntry(path, depth)
		if err != nil {
			slog.Warn("Skipped entry: failed to get metadata",
				"path", path,
				"err", err,
			)
			w.totals.Skipped++

			continue
		}

		w.totals.Add(entry)

		if !yield(entry) {
			return false
		}

		if !entry.IsDir() || entry.IsSymlink {
			continue
		}

		subNames, err := w.readDirNames(path)
		if err != nil {
			slog.Warn("Skipped directory: failed to read contents",
				"path", path,
				"err", err,
			)
			w.totals.Skipped++

			continue
		}

		if !w.walkDir(ctx, path, subNames, depth+1, yield) {
			return false
		}
	}

	return true
}

// readDirNames reads only the (sorted) names of a directory's elements, so
// that no more than one listing per directory level is held while walking.
func (w *Walk) readDirNames(dir string) ([]string, error) {
	entries, err := w.handler.osHandler.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}

	return names, nil
}

// establishEntry builds a [schema.Entry] for a path. Symbolic links are
// classified by their target, dangling ones as files of size zero.
func (f *Handler) establishEntry(path string, depth int) (*schema.Entry, error) {
	metadata, err := getMetadata(path, f.osHandler, f.unixHandler)
	if err != nil {
		return nil, err
	}

	entry := &schema.Entry{
		Name:      filepath.Base(path),
		Path:      path,
		Depth:     depth,
		IsSymlink: metadata.IsSymlink,
	}

	switch {
	case metadata.IsSymlink:
		info, err := f.osHandler.Stat(path)
		if err != nil {
			slog.Debug("Dangling symlink:",
				"path", path,
				"target", metadata.SymlinkTo,
				"err", err,
			)
			entry.Kind = schema.KindFile

			break
		}
		if info.IsDir() {
			entry.Kind = schema.KindDirectory
		} else {
			entry.Kind = schema.KindFile
			entry.Size = handleSize(info.Size())
		}

	case metadata.IsDir:
		entry.Kind = schema.KindDirectory

	default:
		entry.Kind = schema.KindFile
		entry.Size = metadata.Size
	}

	entry.Readable, entry.Writable = f.accessFlags(path)

	return entry, nil
}
