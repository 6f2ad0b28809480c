package configuration

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConfigProvider struct {
	mock.Mock
}

func (m *mockConfigProvider) Read(filenames ...string) (map[string]string, error) {
	args := m.Called(filenames)
	if envMap, ok := args.Get(0).(map[string]string); ok {
		return envMap, args.Error(1)
	}

	return nil, args.Error(1)
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "filetasks.conf")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Success_File(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `# filetasks
BUFFER_SIZE=4096
VERIFY_COPY=no
REPORT_INTERVAL=250
XML_ENCODING="ISO-8859-1"
XML_INDENT=2
LOG_LEVEL=debug
`)

	config, err := NewHandler(&GodotenvProvider{}).Load(path, true)
	require.NoError(t, err)

	assert.Equal(t, &AppConfiguration{
		BufferSize:     4096,
		VerifyCopy:     false,
		ReportInterval: 250 * time.Millisecond,
		XMLEncoding:    "ISO-8859-1",
		XMLIndent:      2,
		LogLevel:       "debug",
	}, config)
	assert.Equal(t, "  ", config.Indent())
}

func TestLoad_Success_PartialFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "BUFFER_SIZE=2048\nXML_INDENT=0\n")

	config, err := NewHandler(&GodotenvProvider{}).Load(path, true)
	require.NoError(t, err)

	expected := NewAppConfiguration()
	expected.BufferSize = 2048
	expected.XMLIndent = 0

	assert.Equal(t, expected, config)
	assert.Empty(t, config.Indent())
}

func TestLoad_Success_MissingDefaultFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.conf")

	config, err := NewHandler(&GodotenvProvider{}).Load(path, false)
	require.NoError(t, err)

	assert.Equal(t, NewAppConfiguration(), config)
}

func TestLoad_Fail_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.conf")

	_, err := NewHandler(&GodotenvProvider{}).Load(path, true)
	require.ErrorIs(t, err, ErrReadFailed)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_Fail_ReadError(t *testing.T) {
	t.Parallel()

	reader := &mockConfigProvider{}
	reader.On("Read", []string{"/etc/filetasks.conf"}).Return(nil, errors.New("permission denied"))

	_, err := NewHandler(reader).Load("/etc/filetasks.conf", false)
	require.ErrorIs(t, err, ErrReadFailed)

	reader.AssertExpectations(t)
}

func TestLoad_Fail_InvalidValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		envMap map[string]string
		key    string
	}{
		{name: "Fail_BufferSize", envMap: map[string]string{KeyBufferSize: "big"}, key: KeyBufferSize},
		{name: "Fail_VerifyCopy", envMap: map[string]string{KeyVerifyCopy: "maybe"}, key: KeyVerifyCopy},
		{name: "Fail_ReportInterval", envMap: map[string]string{KeyReportInterval: "1s"}, key: KeyReportInterval},
		{name: "Fail_XMLIndent", envMap: map[string]string{KeyXMLIndent: "tab"}, key: KeyXMLIndent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			reader := &mockConfigProvider{}
			reader.On("Read", mock.Anything).Return(tt.envMap, nil)

			_, err := NewHandler(reader).Load("/etc/filetasks.conf", true)
			require.ErrorIs(t, err, ErrInvalidValue)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestMapKeyToBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value    string
		expected bool
	}{
		{"yes", true}, {"TRUE", true}, {"on", true}, {"1", true},
		{"no", false}, {"False", false}, {"off", false}, {"0", false},
	}

	for _, tt := range tests {
		v, err := mapKeyToBool(map[string]string{"K": tt.value}, "K", !tt.expected)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.expected, v, tt.value)
	}

	v, err := mapKeyToBool(map[string]string{}, "K", true)
	require.NoError(t, err)
	assert.True(t, v, "missing keys should keep the default")
}

func TestLevel(t *testing.T) {
	t.Parallel()

	config := NewAppConfiguration()

	config.LogLevel = "warn"
	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, "WARN", level.String())

	config.LogLevel = "verbose"
	_, err = config.Level()
	require.ErrorIs(t, err, ErrInvalidValue)
}
