package validation

import "errors"

var (
	// ErrBufferSizeRange occurs when the copy buffer size is outside of the
	// supported range.
	ErrBufferSizeRange = errors.New("buffer size out of range")

	// ErrReportInterval occurs when the progress report interval is not a
	// positive duration.
	ErrReportInterval = errors.New("report interval must be positive")

	// ErrIndentRange occurs when the XML indentation is outside of the
	// supported range.
	ErrIndentRange = errors.New("indentation out of range")

	// ErrUnsupportedEncoding occurs when the XML encoding is unknown.
	ErrUnsupportedEncoding = errors.New("unsupported xml encoding")

	// ErrUnknownLogLevel occurs when the log level is not one of the known
	// levels.
	ErrUnknownLogLevel = errors.New("unknown log level")

	// ErrNoSource occurs when no source path was given.
	ErrNoSource = errors.New("no source path")

	// ErrNoDestination occurs when no destination path was given.
	ErrNoDestination = errors.New("no destination path")

	// ErrSourceIsDestination occurs when source and destination path resolve
	// to the same location.
	ErrSourceIsDestination = errors.New("source and destination are the same path")
)
