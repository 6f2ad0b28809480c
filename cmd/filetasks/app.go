package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/desertwitch/filetasks/internal/configuration"
	"github.com/desertwitch/filetasks/internal/dom"
	"github.com/desertwitch/filetasks/internal/filesystem"
	"github.com/desertwitch/filetasks/internal/schema"
)

type command struct {
	name    string
	summary string
	run     func(app *App, ctx context.Context, args []string) error
}

func commands() []command {
	return []command{
		{"explore", "list a directory tree with its statistics", (*App).Explore},
		{"copy", "copy a file through a fixed-size buffer", (*App).Copy},
		{"list", "list the departments and employees of a document", (*App).List},
		{"transcode", "convert a source document into the company format", (*App).Transcode},
	}
}

type App struct {
	config     *configuration.AppConfiguration
	logManager *SlogManager
	logLevel   slog.Leveler

	osHandler  *schema.OS
	fsHandler  *filesystem.Handler
	domHandler *dom.Handler

	prompter  *prompter
	stdout    io.Writer
	stderr    io.Writer
	uiEnabled bool
}

func NewApp(config *configuration.AppConfiguration,
	logManager *SlogManager,
	logLevel slog.Leveler,
	stdin io.Reader,
	stdout io.Writer,
) *App {
	osHandler := &schema.OS{}
	unixHandler := &schema.Unix{}

	return &App{
		config:     config,
		logManager: logManager,
		logLevel:   logLevel,
		osHandler:  osHandler,
		fsHandler:  filesystem.NewHandler(osHandler, unixHandler),
		domHandler: dom.NewHandler(osHandler),
		prompter:   newPrompter(stdin, stdout),
		stdout:     stdout,
		stderr:     os.Stderr,
	}
}

// Run dispatches args to the command named by their first element.
func (app *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("(app) %w", ErrNoCommand)
	}

	for _, c := range commands() {
		if c.name == args[0] {
			if err := c.run(app, ctx, args[1:]); err != nil {
				if errors.Is(err, flag.ErrHelp) {
					return nil
				}

				return fmt.Errorf("(app-%s) %w", c.name, err)
			}

			return nil
		}
	}

	return fmt.Errorf("(app) %w: %s", ErrUnknownCommand, args[0])
}

func (app *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(app.stderr)

	return fs
}

// parseFlags parses the flags of a command and limits the amount of its
// positional arguments.
func parseFlags(fs *flag.FlagSet, args []string, maxArgs int) error {
	if err := fs.Parse(args); err != nil {
		return err //nolint:wrapcheck
	}

	if fs.NArg() > maxArgs {
		return fmt.Errorf("%w: %v", ErrTooManyArguments, fs.Args()[maxArgs:])
	}

	return nil
}

// argOrPrompt returns the i-th positional argument, asking for it when it
// was not given.
func (app *App) argOrPrompt(fs *flag.FlagSet, i int, question string) (string, error) {
	if v := fs.Arg(i); v != "" {
		return v, nil
	}

	return app.prompter.Ask(question)
}
