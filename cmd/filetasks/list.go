package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/desertwitch/filetasks/internal/company"
	"github.com/desertwitch/filetasks/internal/dom"
)

const companyRoot = "EMPRESA"

// List prints the departments and employees of either a source or a company
// document, recognized by its root element.
func (app *App) List(ctx context.Context, args []string) error {
	fs := app.newFlagSet("list")
	if err := parseFlags(fs, args, 1); err != nil {
		return err
	}

	path, err := app.argOrPrompt(fs, 0, "Document to list")
	if err != nil {
		return err
	}

	c, err := app.readCompany(path)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	return company.WriteListing(app.stdout, c) //nolint:wrapcheck
}

func (app *App) readCompany(path string) (*company.Company, error) {
	f, err := app.osHandler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := dom.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if doc.Root().Tag == companyRoot {
		c, err := company.Unmarshal(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		return c, nil
	}

	src, err := dom.Extract(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return joinAndReport(src).Company, nil
}

// joinAndReport joins the records of a source document and logs what could
// not be joined.
func joinAndReport(src *company.Source) *company.JoinResult {
	result := company.Join(src)

	for _, e := range result.Orphans {
		slog.Warn("Skipped employee: department does not exist.", "employee", e.Number, "surname", e.Surname, "department", e.Department)
	}

	for _, d := range result.Duplicates {
		slog.Warn("Duplicate department number: employees were added to each.", "department", d)
	}

	return result
}
