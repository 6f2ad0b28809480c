package filesystem

import "errors"

var (
	// ErrNotFound occurs when the root of a walk does not exist.
	ErrNotFound = errors.New("path does not exist")

	// ErrNotADirectory occurs when the root of a walk exists, but does not
	// resolve to a directory.
	ErrNotADirectory = errors.New("path is not a directory")
)
