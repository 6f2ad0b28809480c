package io

import "errors"

var (
	// ErrSourceNotFound occurs when the source file of a copy does not exist.
	ErrSourceNotFound = errors.New("source does not exist")

	// ErrSourceNotRegular occurs when the source of a copy is not a regular
	// file (e.g. a directory or a device).
	ErrSourceNotRegular = errors.New("source is not a regular file")

	// ErrDestinationExists occurs when the destination already exists and
	// overwriting was not allowed.
	ErrDestinationExists = errors.New("destination already exists")

	// ErrDestinationIsDir occurs when the destination is an existing
	// directory.
	ErrDestinationIsDir = errors.New("destination is a directory")

	// ErrSameFile occurs when source and destination are the same file.
	ErrSameFile = errors.New("source and destination are the same file")

	// ErrOpenFailed occurs when either endpoint of a copy cannot be opened.
	ErrOpenFailed = errors.New("failed to open file")

	// ErrSizeMismatch occurs when the amount of copied bytes differs from the
	// size of the source file, usually as the source changed during the copy.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrHashMismatch occurs when there is a source/destination hash mismatch,
	// this usually means that there are underlying transfer/hardware issues.
	ErrHashMismatch = errors.New("hash mismatch")
)
