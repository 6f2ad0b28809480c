package io

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/zeebo/blake3"
)

//nolint:containedctx
type contextReader struct {
	ctx    context.Context
	reader io.Reader
}

func (cr *contextReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	default:
		return cr.reader.Read(p)
	}
}

// Copy copies the file at src to dst through the fixed-size buffer of the
// [Handler]. The progress of the copy is tracked in info, which may be nil.
// On any failure the temporary file is removed, the destination is left
// untouched, and the error is returned as well as recorded in info.
func (i *Handler) Copy(ctx context.Context, src, dst string, info *TransferInfo) (report *Report, err error) {
	defer func() {
		if err != nil && info != nil {
			info.SetError(err)
		}
	}()

	srcInfo, err := i.validateEndpoints(src, dst)
	if err != nil {
		return nil, fmt.Errorf("(io) %w", err)
	}

	report, err = i.copyFile(ctx, src, dst, srcInfo, info)
	if err != nil {
		return nil, fmt.Errorf("(io) %w", err)
	}

	return report, nil
}

// validateEndpoints checks that src is an existing regular file and that dst
// may be (over)written, returning the [os.FileInfo] of src.
func (i *Handler) validateEndpoints(src, dst string) (os.FileInfo, error) {
	srcInfo, err := i.osHandler.Stat(src)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, src)
		}

		return nil, fmt.Errorf("failed to stat source %s: %w", src, err)
	}

	if !srcInfo.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotRegular, src)
	}

	dstInfo, err := i.osHandler.Stat(dst)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return srcInfo, nil
		}

		return nil, fmt.Errorf("failed to check destination existence %s: %w", dst, err)
	}

	switch {
	case dstInfo.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrDestinationIsDir, dst)
	case os.SameFile(srcInfo, dstInfo):
		return nil, fmt.Errorf("%w: %s", ErrSameFile, dst)
	case !i.options.Overwrite:
		return nil, fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}

	return srcInfo, nil
}

func (i *Handler) copyFile(ctx context.Context, src, dst string, srcInfo os.FileInfo, info *TransferInfo) (*Report, error) {
	var transferComplete bool

	srcFile, err := i.osHandler.Open(src)
	if err != nil {
		return nil, fmt.Errorf("%w (source %s): %w", ErrOpenFailed, src, err)
	}
	defer srcFile.Close()

	tmpPath := dst + tmpSuffix

	// A pre-existing temporary file is not ours to remove.
	dstFile, err := i.osHandler.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_EXCL, srcInfo.Mode().Perm())
	if err != nil {
		return nil, fmt.Errorf("%w (destination %s): %w", ErrOpenFailed, tmpPath, err)
	}
	defer func() {
		if !transferComplete {
			i.osHandler.Remove(tmpPath) //nolint:errcheck
		}
	}()
	defer dstFile.Close()

	sourceSize := handleSize(srcInfo.Size())
	if info != nil {
		info.Start(sourceSize)
	}

	startTime := time.Now()
	srcHasher := blake3.New()

	ctxReader := &contextReader{
		ctx:    ctx,
		reader: io.TeeReader(srcFile, srcHasher),
	}

	copied, err := copyBuffered(dstFile, ctxReader, make([]byte, i.options.BufferSize), info)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("transfer canceled: %w", err)
		}

		return nil, fmt.Errorf("failed to copy file: %w", err)
	}

	if err := dstFile.Sync(); err != nil {
		return nil, fmt.Errorf("failed to sync destination fs: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close destination file: %w", err)
	}

	if copied != sourceSize {
		return nil, fmt.Errorf("%w: %d (src) != %d (copied)", ErrSizeMismatch, sourceSize, copied)
	}

	var checksum string
	if i.options.Verify {
		srcChecksum := hex.EncodeToString(srcHasher.Sum(nil))

		dstChecksum, err := i.checksum(tmpPath)
		if err != nil {
			return nil, fmt.Errorf("failed to verify destination: %w", err)
		}

		if srcChecksum != dstChecksum {
			return nil, fmt.Errorf("%w: %s (src) != %s (dst)", ErrHashMismatch, srcChecksum, dstChecksum)
		}
		checksum = dstChecksum
	}

	if !i.options.Overwrite {
		if _, err := i.osHandler.Stat(dst); err == nil {
			return nil, fmt.Errorf("%w: %s", ErrDestinationExists, dst)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to check rename destination existence: %w", err)
		}
	}

	if err := i.osHandler.Rename(tmpPath, dst); err != nil {
		return nil, fmt.Errorf("failed to rename temporary file to destination file: %w", err)
	}

	transferComplete = true

	if info != nil {
		info.End()
	}

	duration := time.Since(startTime)

	copiedInfo, err := i.osHandler.Stat(dst)
	if err != nil {
		return nil, fmt.Errorf("failed to stat destination after copy: %w", err)
	}

	report := &Report{
		Source:      src,
		Destination: dst,
		SourceSize:  sourceSize,
		CopiedSize:  handleSize(copiedInfo.Size()),
		Checksum:    checksum,
		Duration:    duration,
	}

	if secs := duration.Seconds(); secs > 0 {
		report.Rate = float64(copied) / secs
	}

	return report, nil
}

// copyBuffered streams src into dst through buf, updating info after every
// chunk. It returns the amount of bytes written to dst.
func copyBuffered(dst io.Writer, src io.Reader, buf []byte, info *TransferInfo) (uint64, error) {
	var written uint64

	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			m, writeErr := dst.Write(buf[:n])
			written += handleSize(int64(m))

			if writeErr != nil {
				return written, writeErr
			}
			if m != n {
				return written, io.ErrShortWrite
			}

			if info != nil {
				info.Update(written)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return written, nil
			}

			return written, readErr
		}
	}
}

// checksum returns the hex-encoded BLAKE3 digest of the file at path.
func (i *Handler) checksum(path string) (string, error) {
	f, err := i.osHandler.Open(path)
	if err != nil {
		return "", fmt.Errorf("%w (verification %s): %w", ErrOpenFailed, path, err)
	}
	defer f.Close()

	hasher := blake3.New()
	if _, err := io.CopyBuffer(hasher, f, make([]byte, i.options.BufferSize)); err != nil {
		return "", fmt.Errorf("failed to read for checksum: %w", err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// handleSize converts a int64 filesize to a uint64 filesize (with sizes < 0 becoming 0).
func handleSize(size int64) uint64 {
	if size < 0 {
		return 0
	}

	return uint64(size)
}
