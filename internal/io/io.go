// Package io implements the copying of files through a fixed-size buffer.
// Copies are written to a temporary sibling of the destination, verified and
// only then renamed into place, so a failed copy never leaves a partially
// written destination behind.
package io

import (
	"os"
	"time"
)

const (
	// DefaultBufferSize is the size of the intermediate copy buffer used when
	// no (valid) buffer size was configured.
	DefaultBufferSize = 1024

	// tmpSuffix is the suffix of the temporary file a copy is written to.
	tmpSuffix = ".part"
)

type osProvider interface {
	Open(name string) (*os.File, error)
	OpenFile(name string, flag int, perm os.FileMode) (*os.File, error)
	Remove(name string) error
	Rename(oldpath, newpath string) error
	Stat(name string) (os.FileInfo, error)
}

// Options are the options for copying with a [Handler].
type Options struct {
	BufferSize int
	Overwrite  bool
	Verify     bool
}

// DefaultOptions returns the default [Options].
func DefaultOptions() Options {
	return Options{
		BufferSize: DefaultBufferSize,
		Overwrite:  false,
		Verify:     true,
	}
}

// Report is the outcome of a successful copy.
type Report struct {
	Source      string
	Destination string
	SourceSize  uint64
	CopiedSize  uint64
	Checksum    string // hex-encoded, empty when not verified
	Duration    time.Duration
	Rate        float64 // bytes per second
}

// Matches returns if the original and the copied sizes of a [Report] are
// equal.
func (r *Report) Matches() bool {
	return r.SourceSize == r.CopiedSize
}

// Handler is the principal implementation for the IO services.
type Handler struct {
	osHandler osProvider
	options   Options
}

// NewHandler returns a pointer to a new IO [Handler].
func NewHandler(osHandler osProvider, options Options) *Handler {
	if options.BufferSize <= 0 {
		options.BufferSize = DefaultBufferSize
	}

	return &Handler{
		osHandler: osHandler,
		options:   options,
	}
}

// Options returns the [Options] a [Handler] copies with.
func (i *Handler) Options() Options {
	return i.options
}
