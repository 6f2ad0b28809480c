// Package configuration implements reading of the application configuration
// from a dotenv-style configuration file.
package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// DefaultPath is the location of the configuration file when none was given.
const DefaultPath = "/etc/filetasks.conf"

// Configuration keys.
const (
	KeyBufferSize     = "BUFFER_SIZE"
	KeyVerifyCopy     = "VERIFY_COPY"
	KeyReportInterval = "REPORT_INTERVAL"
	KeyXMLEncoding    = "XML_ENCODING"
	KeyXMLIndent      = "XML_INDENT"
	KeyLogLevel       = "LOG_LEVEL"
)

const (
	defaultBufferSize     = 1024
	defaultReportInterval = 500 * time.Millisecond
	defaultXMLEncoding    = "UTF-8"
	defaultXMLIndent      = 4
	defaultLogLevel       = "info"
)

type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// AppConfiguration is the principal structure holding the application
// configuration.
type AppConfiguration struct {
	BufferSize     int
	VerifyCopy     bool
	ReportInterval time.Duration
	XMLEncoding    string
	XMLIndent      int
	LogLevel       string
}

// NewAppConfiguration returns a pointer to a new [AppConfiguration] holding
// the default values.
func NewAppConfiguration() *AppConfiguration {
	return &AppConfiguration{
		BufferSize:     defaultBufferSize,
		VerifyCopy:     true,
		ReportInterval: defaultReportInterval,
		XMLEncoding:    defaultXMLEncoding,
		XMLIndent:      defaultXMLIndent,
		LogLevel:       defaultLogLevel,
	}
}

// Indent returns the configured XML indentation as a string of spaces.
func (c *AppConfiguration) Indent() string {
	if c.XMLIndent <= 0 {
		return ""
	}

	return strings.Repeat(" ", c.XMLIndent)
}

// Level returns the configured log level.
func (c *AppConfiguration) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("(configuration) %w: %s: %w", ErrInvalidValue, KeyLogLevel, err)
	}

	return level, nil
}

// Handler is the principal implementation for reading configuration files.
type Handler struct {
	reader genericConfigProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(reader genericConfigProvider) *Handler {
	return &Handler{
		reader: reader,
	}
}

// Load reads the configuration file at path on top of the default values.
// A file that does not exist is only an error when required is set, which
// is the case for configuration files that were explicitly asked for.
func (h *Handler) Load(path string, required bool) (*AppConfiguration, error) {
	config := NewAppConfiguration()

	envMap, err := h.reader.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			slog.Debug("No configuration file, using defaults:", "path", path)

			return config, nil
		}

		return nil, fmt.Errorf("(configuration) %w: %w", ErrReadFailed, err)
	}

	if err := apply(config, envMap); err != nil {
		return nil, err
	}

	return config, nil
}

func apply(config *AppConfiguration, envMap map[string]string) error {
	var err error

	if config.BufferSize, err = mapKeyToInt(envMap, KeyBufferSize, config.BufferSize); err != nil {
		return err
	}

	if config.VerifyCopy, err = mapKeyToBool(envMap, KeyVerifyCopy, config.VerifyCopy); err != nil {
		return err
	}

	interval, err := mapKeyToInt(envMap, KeyReportInterval, int(config.ReportInterval/time.Millisecond))
	if err != nil {
		return err
	}
	config.ReportInterval = time.Duration(interval) * time.Millisecond

	config.XMLEncoding = mapKeyToString(envMap, KeyXMLEncoding, config.XMLEncoding)

	if config.XMLIndent, err = mapKeyToInt(envMap, KeyXMLIndent, config.XMLIndent); err != nil {
		return err
	}

	config.LogLevel = mapKeyToString(envMap, KeyLogLevel, config.LogLevel)

	return nil
}

func mapKeyToString(envMap map[string]string, key string, def string) string {
	if value, exists := envMap[key]; exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}

	return def
}

func mapKeyToInt(envMap map[string]string, key string, def int) (int, error) {
	value := mapKeyToString(envMap, key, "")
	if value == "" {
		return def, nil
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return def, fmt.Errorf("(configuration) %w: %s=%q", ErrInvalidValue, key, value)
	}

	return intValue, nil
}

func mapKeyToBool(envMap map[string]string, key string, def bool) (bool, error) {
	value := mapKeyToString(envMap, key, "")

	switch strings.ToLower(value) {
	case "":
		return def, nil
	case "yes", "true", "on", "1":
		return true, nil
	case "no", "false", "off", "0":
		return false, nil
	default:
		return def, fmt.Errorf("(configuration) %w: %s=%q", ErrInvalidValue, key, value)
	}
}
