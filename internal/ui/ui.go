// Package ui implements a command-line user interface using [tea].
package ui

import (
	"context"
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertwitch/filetasks/internal/io"
)

type progressProvider interface {
	Snapshot() io.Progress
}

// Handler is the principal implementation of a user interface [Handler].
type Handler struct {
	title    string
	transfer progressProvider
	program  *tea.Program

	LogWriter *TeaLogWriter

	Initialized atomic.Bool
	Failed      atomic.Bool
}

// NewHandler returns a pointer to a new user interface [Handler], observing
// the progress of the given transfer.
func NewHandler(ctx context.Context, cancel context.CancelFunc, title string, transfer progressProvider) *Handler {
	handler := &Handler{
		title:    title,
		transfer: transfer,
	}

	model := NewTeaModel(handler, cancel)
	handler.program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	handler.LogWriter = NewTeaLogWriter(handler.program)

	return handler
}

// Launch starts the command-line user interface (the [tea.Program]). It
// blocks until the user quits or [Handler.Quit] is called.
func (uiHandler *Handler) Launch() error {
	defer uiHandler.LogWriter.Stop()

	if _, err := uiHandler.program.Run(); err != nil {
		uiHandler.Failed.Store(true)

		return fmt.Errorf("(ui) %w", err)
	}

	return nil
}

// Quit stops a running command-line user interface.
func (uiHandler *Handler) Quit() {
	uiHandler.program.Quit()
}
