package filesystem

import (
	"os"

	"github.com/desertwitch/filetasks/internal/schema"
	"github.com/stretchr/testify/mock"
	"golang.org/x/sys/unix"
)

type mockOsProvider struct {
	mock.Mock
}

func (m *mockOsProvider) ReadDir(name string) ([]os.DirEntry, error) {
	args := m.Called(name)
	entries, _ := args.Get(0).([]os.DirEntry)

	return entries, args.Error(1)
}

func (m *mockOsProvider) Readlink(name string) (string, error) {
	args := m.Called(name)

	return args.String(0), args.Error(1)
}

func (m *mockOsProvider) Stat(name string) (os.FileInfo, error) {
	args := m.Called(name)
	info, _ := args.Get(0).(os.FileInfo)

	return info, args.Error(1)
}

// partialOS is a real [schema.OS] failing ReadDir for selected paths.
type partialOS struct {
	schema.OS
	failReadDir map[string]error
}

func (p *partialOS) ReadDir(name string) ([]os.DirEntry, error) {
	if err, ok := p.failReadDir[name]; ok {
		return nil, err
	}

	return p.OS.ReadDir(name)
}

// deniedUnix is a real [schema.Unix] denying access for selected paths.
type deniedUnix struct {
	schema.Unix
	denied map[string]uint32
}

func (d *deniedUnix) Access(path string, mode uint32) error {
	if deny, ok := d.denied[path]; ok && deny&mode != 0 {
		return unix.EACCES
	}

	return d.Unix.Access(path, mode)
}
