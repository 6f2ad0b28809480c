package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	fileio "github.com/desertwitch/filetasks/internal/io"
	"github.com/desertwitch/filetasks/internal/ui"
	"github.com/desertwitch/filetasks/internal/validation"
)

// Copy copies a single file through a fixed-size buffer while reporting its
// progress, either as lines of text or in the terminal UI.
func (app *App) Copy(ctx context.Context, args []string) error {
	fs := app.newFlagSet("copy")
	overwrite := fs.Bool("overwrite", false, "replace an existing destination")
	bufferSize := fs.Int("buffer", app.config.BufferSize, "size of the copy buffer in bytes")
	if err := parseFlags(fs, args, 2); err != nil { //nolint:mnd
		return err
	}

	if err := validation.ValidateBufferSize(*bufferSize); err != nil {
		return err //nolint:wrapcheck
	}

	src, err := app.argOrPrompt(fs, 0, "Source file")
	if err != nil {
		return err
	}

	dst, err := app.argOrPrompt(fs, 1, "Destination file")
	if err != nil {
		return err
	}

	if err := validation.ValidateTransfer(src, dst); err != nil {
		return err //nolint:wrapcheck
	}

	ioHandler := fileio.NewHandler(app.osHandler, fileio.Options{
		BufferSize: *bufferSize,
		Overwrite:  *overwrite,
		Verify:     app.config.VerifyCopy,
	})

	info := fileio.NewTransferInfo()

	var report *fileio.Report
	if app.uiEnabled {
		report, err = app.copyWithUI(ctx, ioHandler, src, dst, info)
	} else {
		report, err = app.copyWithReporter(ctx, ioHandler, src, dst, info)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(app.stdout, formatReport(report))
	slog.Debug("Copied file:", "src", report.Source, "dst", report.Destination, "progress", info.Snapshot())

	return nil
}

func (app *App) copyWithReporter(ctx context.Context, ioHandler *fileio.Handler, src, dst string, info *fileio.TransferInfo) (*fileio.Report, error) {
	reporter := newProgressReporter(app.stdout, info, app.config.ReportInterval)
	reporter.Start()

	report, err := ioHandler.Copy(ctx, src, dst, info)
	reporter.Stop()

	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return report, nil
}

type copyResult struct {
	report *fileio.Report
	err    error
}

// copyWithUI runs the copy while the terminal UI observes it. Logs go to the
// UI for as long as it runs. When the UI fails to start, the copy still
// completes and its outcome is reported on the terminal.
func (app *App) copyWithUI(ctx context.Context, ioHandler *fileio.Handler, src, dst string, info *fileio.TransferInfo) (*fileio.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	uiHandler := ui.NewHandler(ctx, cancel, "Copying "+filepath.Base(src), info)

	terminal, hasTerminal := app.logManager.GetHandler(terminalLogs)
	app.logManager.AddHandler(uiLogs, newLogHandler(uiHandler.LogWriter, app.logLevel))
	app.logManager.RemoveHandler(terminalLogs)

	resultChan := make(chan copyResult, 1)
	go func() {
		report, err := ioHandler.Copy(ctx, src, dst, info)
		resultChan <- copyResult{report, err}
		uiHandler.Quit()
	}()

	uiErr := uiHandler.Launch()

	if hasTerminal {
		app.logManager.AddHandler(terminalLogs, terminal)
	}
	app.logManager.RemoveHandler(uiLogs)

	if uiErr != nil && ctx.Err() == nil {
		slog.Error("UI failure: falling back to terminal.", "err", uiErr)
	}

	result := <-resultChan
	if result.err != nil {
		return nil, result.err //nolint:wrapcheck
	}

	return result.report, nil
}
