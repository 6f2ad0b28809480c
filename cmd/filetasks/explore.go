package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/desertwitch/filetasks/internal/schema"
	"github.com/dustin/go-humanize"
)

// Explore walks a directory tree, printing every entry indented by its depth
// followed by the statistics of the whole tree.
func (app *App) Explore(ctx context.Context, args []string) error {
	fs := app.newFlagSet("explore")
	summary := fs.Bool("summary", false, "print only the statistics")
	if err := parseFlags(fs, args, 1); err != nil {
		return err
	}

	root, err := app.argOrPrompt(fs, 0, "Directory to explore")
	if err != nil {
		return err
	}

	if *summary {
		totals, err := app.fsHandler.Scan(ctx, root)
		if err != nil {
			return err //nolint:wrapcheck
		}
		writeTotals(app, totals)

		return nil
	}

	walk, err := app.fsHandler.Open(root)
	if err != nil {
		return err //nolint:wrapcheck
	}

	fmt.Fprintf(app.stdout, "Exploring directory: %s\n\n", walk.Root())

	for entry := range walk.Entries(ctx) {
		writeEntry(app, entry)
	}

	if err := walk.Err(); err != nil {
		return err //nolint:wrapcheck
	}

	totals := walk.Totals()
	writeTotals(app, totals)

	slog.Debug("Explored directory:", "root", walk.Root(), "files", totals.Files, "directories", totals.Directories, "skipped", totals.Skipped)

	return nil
}

func writeEntry(app *App, e *schema.Entry) {
	indent := strings.Repeat("\t", e.Depth-1)

	link := ""
	if e.IsSymlink {
		link = " (symlink)"
	}

	fmt.Fprintf(app.stdout, "%s[%s] %s%s\n", indent, e.Kind, e.Name, link)

	if e.IsDir() {
		fmt.Fprintf(app.stdout, "%s  Path: %s\n", indent, e.Path)

		return
	}

	fmt.Fprintf(app.stdout, "%s  Size: %s bytes\n", indent, humanize.Comma(int64(e.Size))) //nolint:gosec
	fmt.Fprintf(app.stdout, "%s  Path: %s\n", indent, e.Path)
	fmt.Fprintf(app.stdout, "%s  Readable: %t, Writable: %t\n", indent, e.Readable, e.Writable)
}

func writeTotals(app *App, t schema.Totals) {
	fmt.Fprintln(app.stdout)
	fmt.Fprintln(app.stdout, "=============================")
	fmt.Fprintln(app.stdout, "    DIRECTORY STATISTICS")
	fmt.Fprintln(app.stdout, "=============================")
	fmt.Fprintln(app.stdout)
	fmt.Fprintf(app.stdout, "Total files: %d\n", t.Files)
	fmt.Fprintf(app.stdout, "Total directories: %d\n", t.Directories)
	fmt.Fprintf(app.stdout, "Total size in bytes: %s bytes\n", humanize.Comma(int64(t.Bytes))) //nolint:gosec
	fmt.Fprintf(app.stdout, "Total size in MB: %.2f MB\n", t.MiB())

	if t.Skipped > 0 {
		fmt.Fprintf(app.stdout, "Skipped entries: %d\n", t.Skipped)
	}
}
