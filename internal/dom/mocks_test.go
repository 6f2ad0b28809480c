package dom

import (
	"os"

	"github.com/stretchr/testify/mock"
)

type mockOsProvider struct {
	mock.Mock
}

func (m *mockOsProvider) Open(name string) (*os.File, error) {
	args := m.Called(name)
	if f, ok := args.Get(0).(*os.File); ok {
		return f, args.Error(1)
	}

	return nil, args.Error(1)
}
