package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/desertwitch/filetasks/internal/company"
	"github.com/desertwitch/filetasks/internal/validation"
)

const partSuffix = ".part"

// Transcode reads a source document, joins its records and writes them as a
// company document in the configured encoding and indentation.
func (app *App) Transcode(ctx context.Context, args []string) error {
	fs := app.newFlagSet("transcode")
	encoding := fs.String("encoding", app.config.XMLEncoding, "character encoding of the output (IANA name)")
	indent := fs.Int("indent", app.config.XMLIndent, "spaces per indentation level, 0 for compact output")
	if err := parseFlags(fs, args, 2); err != nil { //nolint:mnd
		return err
	}

	in, err := app.argOrPrompt(fs, 0, "Source document")
	if err != nil {
		return err
	}

	out, err := app.argOrPrompt(fs, 1, "Output document")
	if err != nil {
		return err
	}

	if err := validation.ValidateTransfer(in, out); err != nil {
		return err //nolint:wrapcheck
	}

	config := *app.config
	config.XMLEncoding = *encoding
	config.XMLIndent = *indent
	if err := validation.ValidateConfiguration(&config); err != nil {
		return err //nolint:wrapcheck
	}

	src, err := app.domHandler.ReadFile(in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	result := joinAndReport(src)

	opts := company.Options{
		Encoding: config.XMLEncoding,
		Indent:   config.Indent(),
	}
	if err := app.writeCompany(out, result.Company, opts); err != nil {
		return err
	}

	slog.Info("Transcoded document:",
		"src", in,
		"dst", out,
		"departments", len(result.Company.Departments),
		"employees", result.Company.EmployeeCount(),
		"orphans", len(result.Orphans),
		"encoding", opts.Encoding,
	)

	return nil
}

// writeCompany writes a company document to a temporary sibling of path and
// renames it into place once it was written completely. An existing
// temporary sibling is left alone and fails the write.
func (app *App) writeCompany(path string, c *company.Company, opts company.Options) (retErr error) {
	tmpPath := path + partSuffix

	f, err := app.osHandler.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:mnd
	if err != nil {
		return fmt.Errorf("failed to create: %w", err)
	}

	defer func() {
		if retErr != nil {
			f.Close()
			if err := app.osHandler.Remove(tmpPath); err != nil {
				slog.Warn("Failed to clean up temporary file:", "path", tmpPath, "err", err)
			}
		}
	}()

	if err := company.Marshal(f, c, opts); err != nil {
		return err //nolint:wrapcheck
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := app.osHandler.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s: %w", tmpPath, err)
	}

	return nil
}
