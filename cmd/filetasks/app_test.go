package main

import (
	"bytes"
	"flag"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/desertwitch/filetasks/internal/configuration"
	"github.com/desertwitch/filetasks/internal/filesystem"
	fileio "github.com/desertwitch/filetasks/internal/io"
	"github.com/desertwitch/filetasks/internal/schema"
	"github.com/desertwitch/filetasks/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sourceDocument = `<?xml version="1.0" encoding="UTF-8"?>
<datos>
  <departamentos>
    <TITULO>DATOS DE LA EMPRESA</TITULO>
    <DEP_ROW><DEPT_NO>10</DEPT_NO><DNOMBRE>CONTABILIDAD</DNOMBRE><LOC>SEVILLA</LOC></DEP_ROW>
    <DEP_ROW><DEPT_NO>20</DEPT_NO><DNOMBRE>INVESTIGACIÓN</DNOMBRE><LOC>MADRID</LOC></DEP_ROW>
  </departamentos>
  <empleados>
    <EMP_ROW><EMP_NO>7782</EMP_NO><APELLIDO>CEREZO</APELLIDO><OFICIO>DIRECTOR</OFICIO><DIR>7839</DIR>
      <FECHA_ALT>1991-06-09</FECHA_ALT><SALARIO>2885</SALARIO><DEPT_NO>10</DEPT_NO></EMP_ROW>
    <EMP_ROW><EMP_NO>7369</EMP_NO><APELLIDO>SÁNCHEZ</APELLIDO><OFICIO>EMPLEADO</OFICIO>
      <FECHA_ALT>1990-12-17</FECHA_ALT><SALARIO>1040</SALARIO><DEPT_NO>20</DEPT_NO></EMP_ROW>
    <EMP_ROW><EMP_NO>7499</EMP_NO><APELLIDO>ARROYO</APELLIDO><OFICIO>VENDEDOR</OFICIO>
      <FECHA_ALT>1990-02-20</FECHA_ALT><SALARIO>1500</SALARIO><COMISION>390</COMISION><DEPT_NO>30</DEPT_NO></EMP_ROW>
  </empleados>
</datos>
`

func newTestApp(t *testing.T, stdin string) (*App, *bytes.Buffer) {
	t.Helper()

	var stdout bytes.Buffer

	config := configuration.NewAppConfiguration()
	config.ReportInterval = time.Millisecond

	app := NewApp(config, NewSlogManager(), slog.LevelInfo, strings.NewReader(stdin), &stdout)
	app.stderr = io.Discard

	return app, &stdout
}

func writeFile(t *testing.T, path string, content string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestRun_Fail_NoCommand(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), nil), ErrNoCommand)
}

func TestRun_Fail_UnknownCommand(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"format"}), ErrUnknownCommand)
}

func TestRun_Success_Help(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "")
	require.NoError(t, app.Run(t.Context(), []string{"copy", "-h"}))
}

func TestRun_Fail_TooManyArguments(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"explore", "a", "b"}), ErrTooManyArguments)
}

func TestRun_Fail_BadFlag(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "")
	err := app.Run(t.Context(), []string{"copy", "-bogus"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, flag.ErrHelp)
}

func TestExplore_Success(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "0123456789")

	app, stdout := newTestApp(t, "")
	require.NoError(t, app.Run(t.Context(), []string{"explore", root}))

	out := stdout.String()
	assert.Contains(t, out, "[file] a.txt\n  Size: 5 bytes\n")
	assert.Contains(t, out, "[directory] sub\n")
	assert.Contains(t, out, "\t[file] b.txt\n\t  Size: 10 bytes\n")
	assert.Contains(t, out, "Total files: 2\n")
	assert.Contains(t, out, "Total directories: 1\n")
	assert.Contains(t, out, "Total size in bytes: 15 bytes\n")
	assert.Contains(t, out, "Total size in MB: 0.00 MB\n")
	assert.NotContains(t, out, "Skipped entries")
}

func TestWriteTotals_Success_SkippedEntries(t *testing.T) {
	t.Parallel()

	app, stdout := newTestApp(t, "")
	writeTotals(app, schema.Totals{Files: 1, Directories: 1, Bytes: 2048, Skipped: 3})

	out := stdout.String()
	assert.Contains(t, out, "Skipped entries: 3\n")
	assert.NotContains(t, out, "Skipped directories")
}

func TestExplore_Success_Summary(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "0123456789")

	app, stdout := newTestApp(t, "")
	require.NoError(t, app.Run(t.Context(), []string{"explore", "-summary", root}))

	out := stdout.String()
	assert.NotContains(t, out, "b.txt")
	assert.Contains(t, out, "Total files: 1\n")
	assert.Contains(t, out, "Total size in bytes: 10 bytes\n")
}

func TestExplore_Success_Prompt(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), "hello")

	app, stdout := newTestApp(t, root+"\n")
	require.NoError(t, app.Run(t.Context(), []string{"explore"}))

	assert.True(t, strings.HasPrefix(stdout.String(), "Directory to explore: Exploring directory: "))
	assert.Contains(t, stdout.String(), "Total files: 1\n")
}

func TestExplore_Fail_NotADirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "a.txt")
	writeFile(t, path, "hello")

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"explore", path}), filesystem.ErrNotADirectory)
}

func TestExplore_Fail_NoInput(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"explore"}), ErrNoInput)
}

func TestCopy_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	content := strings.Repeat("x", 3000)
	writeFile(t, src, content)

	app, stdout := newTestApp(t, "")
	require.NoError(t, app.Run(t.Context(), []string{"copy", src, dst}))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	out := stdout.String()
	assert.Contains(t, out, "Copied 3,000 of 3,000 bytes (100.0%)")
	assert.Contains(t, out, "Copy complete: original 3,000 bytes, copied 3,000 bytes (sizes match)")
	assert.Contains(t, out, "Verified blake3: ")
}

func TestCopy_Success_PromptAndOverwrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "new content")
	writeFile(t, dst, "old")

	app, _ := newTestApp(t, src+"\n"+dst+"\n")
	require.NoError(t, app.Run(t.Context(), []string{"copy", "-overwrite", "-buffer", "3"}))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(data))
}

func TestCopy_Fail_DestinationExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "new content")
	writeFile(t, dst, "old")

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"copy", src, dst}), fileio.ErrDestinationExists)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
}

func TestCopy_Fail_SamePath(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"copy", "/data/a", "/data/./a"}), validation.ErrSourceIsDestination)
}

func TestCopy_Fail_BufferTooLarge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")
	writeFile(t, src, "content")

	app, _ := newTestApp(t, "")
	err := app.Run(t.Context(), []string{"copy", "-buffer", "999999999999", src, dst})
	require.ErrorIs(t, err, validation.ErrBufferSizeRange)

	_, err = os.Stat(dst)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCopy_Fail_ExistingPartFileKept(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "movie.mkv.src")
	dst := filepath.Join(dir, "movie.mkv")
	writeFile(t, src, "new content")
	writeFile(t, dst+".part", "USER DATA")

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"copy", src, dst}), fileio.ErrOpenFailed)

	data, err := os.ReadFile(dst + ".part")
	require.NoError(t, err)
	assert.Equal(t, "USER DATA", string(data))
}

func TestTranscode_Success(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "datos.xml")
	out := filepath.Join(dir, "empresa.xml")
	writeFile(t, in, sourceDocument)

	app, _ := newTestApp(t, "")
	require.NoError(t, app.Run(t.Context(), []string{"transcode", in, out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	doc := string(data)
	assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`+"\n<EMPRESA>\n"))
	assert.Contains(t, doc, "    <DEPARTAMENTO id=\"10\">\n")
	assert.Contains(t, doc, "<APELLIDO>SÁNCHEZ</APELLIDO>")
	assert.NotContains(t, doc, "ARROYO", "employees of unknown departments should be dropped")

	_, err = os.Stat(out + partSuffix)
	assert.ErrorIs(t, err, os.ErrNotExist, "the temporary file should be gone")
}

func TestTranscode_Success_Latin1Compact(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "datos.xml")
	out := filepath.Join(dir, "empresa.xml")
	writeFile(t, in, sourceDocument)

	app, _ := newTestApp(t, "")
	require.NoError(t, app.Run(t.Context(), []string{"transcode", "-encoding", "ISO-8859-1", "-indent", "0", in, out}))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Contains(t, string(data), `encoding="ISO-8859-1"`)
	assert.Contains(t, string(data), "<APELLIDO>S\xc1NCHEZ</APELLIDO>")
	assert.Equal(t, 2, strings.Count(string(data), "\n"), "compact output should be two lines")
}

func TestTranscode_Fail_InvalidEncoding(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "datos.xml")
	out := filepath.Join(dir, "empresa.xml")
	writeFile(t, in, sourceDocument)

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"transcode", "-encoding", "klingon", in, out}), validation.ErrUnsupportedEncoding)

	_, err := os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTranscode_Fail_ExistingPartFileKept(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "datos.xml")
	out := filepath.Join(dir, "empresa.xml")
	writeFile(t, in, sourceDocument)
	writeFile(t, out+partSuffix, "USER DATA")

	app, _ := newTestApp(t, "")
	require.ErrorIs(t, app.Run(t.Context(), []string{"transcode", in, out}), os.ErrExist)

	data, err := os.ReadFile(out + partSuffix)
	require.NoError(t, err)
	assert.Equal(t, "USER DATA", string(data))

	_, err = os.Stat(out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestList_Success_SourceAndCompany(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := filepath.Join(dir, "datos.xml")
	out := filepath.Join(dir, "empresa.xml")
	writeFile(t, in, sourceDocument)

	app, stdout := newTestApp(t, "")
	require.NoError(t, app.Run(t.Context(), []string{"list", in}))
	fromSource := stdout.String()

	require.NoError(t, app.Run(t.Context(), []string{"transcode", in, out}))
	stdout.Reset()

	require.NoError(t, app.Run(t.Context(), []string{"list", out}))
	fromCompany := stdout.String()

	assert.Equal(t, fromSource, fromCompany)
	assert.True(t, strings.HasPrefix(fromSource, "DATOS DE LA EMPRESA\n\nDepartment 1:\n    Number: 10\n"))
	assert.Contains(t, fromSource, "        Surname: CEREZO\n        Job: DIRECTOR\n        Salary: 2885\n")
	assert.Contains(t, fromSource, "    Name: INVESTIGACIÓN\n")
}

func TestList_Fail_Malformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "broken.xml")
	writeFile(t, path, "<datos><departamentos>")

	app, _ := newTestApp(t, "")
	require.Error(t, app.Run(t.Context(), []string{"list", path}))
}
