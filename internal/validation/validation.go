// Package validation implements the checks of configuration values and
// command arguments that run before any task starts.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/desertwitch/filetasks/internal/company"
	"github.com/desertwitch/filetasks/internal/configuration"
)

const (
	minBufferSize = 1
	maxBufferSize = 64 * 1024 * 1024
	maxIndent     = 16
)

// ValidateConfiguration checks all values of an [configuration.AppConfiguration]
// and returns every violation found.
func ValidateConfiguration(c *configuration.AppConfiguration) error {
	var errs []error

	if err := checkBufferSize(configuration.KeyBufferSize, c.BufferSize); err != nil {
		errs = append(errs, err)
	}

	if c.ReportInterval <= 0 {
		errs = append(errs, fmt.Errorf("%w: %s=%d", ErrReportInterval,
			configuration.KeyReportInterval, c.ReportInterval/time.Millisecond))
	}

	if c.XMLIndent < 0 || c.XMLIndent > maxIndent {
		errs = append(errs, fmt.Errorf("%w: %s=%d (0-%d)", ErrIndentRange,
			configuration.KeyXMLIndent, c.XMLIndent, maxIndent))
	}

	if _, _, err := company.LookupEncoding(c.XMLEncoding); err != nil {
		errs = append(errs, fmt.Errorf("%w: %s=%q", ErrUnsupportedEncoding,
			configuration.KeyXMLEncoding, c.XMLEncoding))
	}

	if _, err := c.Level(); err != nil {
		errs = append(errs, fmt.Errorf("%w: %s=%q", ErrUnknownLogLevel,
			configuration.KeyLogLevel, c.LogLevel))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("(validation) %w", err)
	}

	return nil
}

// ValidateBufferSize checks a copy buffer size given outside of the
// configuration, such as on the command line.
func ValidateBufferSize(n int) error {
	if err := checkBufferSize("buffer", n); err != nil {
		return fmt.Errorf("(validation) %w", err)
	}

	return nil
}

func checkBufferSize(name string, n int) error {
	if n < minBufferSize || n > maxBufferSize {
		return fmt.Errorf("%w: %s=%d (%d-%d)", ErrBufferSizeRange,
			name, n, minBufferSize, maxBufferSize)
	}

	return nil
}

// ValidateTransfer checks the source and destination paths of a task that
// reads one file and writes another.
func ValidateTransfer(src, dst string) error {
	if src == "" {
		return fmt.Errorf("(validation) %w", ErrNoSource)
	}

	if dst == "" {
		return fmt.Errorf("(validation) %w", ErrNoDestination)
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		return fmt.Errorf("(validation) failed to resolve source: %w", err)
	}

	absDst, err := filepath.Abs(dst)
	if err != nil {
		return fmt.Errorf("(validation) failed to resolve destination: %w", err)
	}

	if absSrc == absDst {
		return fmt.Errorf("(validation) %w: %s", ErrSourceIsDestination, absSrc)
	}

	return nil
}
