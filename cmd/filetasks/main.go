package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/desertwitch/filetasks/internal/configuration"
	"github.com/desertwitch/filetasks/internal/validation"
	"github.com/lmittmann/tint"
)

const (
	stackTraceBufMax = 1 << 24
	terminalLogs     = "terminal"
	uiLogs           = "ui"
)

//nolint:gochecknoglobals
var (
	ExitCode = 0
	Version  string

	configPath = flag.String("config", "", "read the configuration from this file (default "+configuration.DefaultPath+")")
	uiEnabled  = flag.Bool("ui", false, "show copy progress in a terminal UI")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile = flag.String("memprofile", "", "write memory profile to this file")
)

func newLogHandler(w io.Writer, level slog.Leveler) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

func setupSignalHandlers(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		<-sigChan
		slog.Warn("Received termination signal, cancelling...")
		cancel()
	}()

	sigChan2 := make(chan os.Signal, 1)
	signal.Notify(sigChan2, syscall.SIGUSR1)
	go func() {
		for range sigChan2 {
			buf := make([]byte, stackTraceBufMax)
			stacklen := runtime.Stack(buf, true)
			os.Stderr.Write(buf[:stacklen])
		}
	}()
}

func usage() {
	out := flag.CommandLine.Output()

	fmt.Fprintf(out, "filetasks %s\n\n", Version)
	fmt.Fprintf(out, "Usage: %s [flags] <command> [arguments]\n\n", os.Args[0])
	fmt.Fprintln(out, "Commands:")
	for _, c := range commands() {
		fmt.Fprintf(out, "  %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func loadConfiguration(path string) (*configuration.AppConfiguration, error) {
	required := path != ""
	if !required {
		path = configuration.DefaultPath
	}

	config, err := configuration.NewHandler(&configuration.GodotenvProvider{}).Load(path, required)
	if err != nil {
		return nil, err
	}

	if err := validation.ValidateConfiguration(config); err != nil {
		return nil, err
	}

	return config, nil
}

func main() {
	defer func() {
		os.Exit(ExitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	flag.Usage = usage
	flag.Parse()

	logLevel := new(slog.LevelVar)
	logManager := NewSlogManager()
	logManager.AddHandler(terminalLogs, newLogHandler(os.Stderr, logLevel))
	slog.SetDefault(slog.New(logManager))

	setupSignalHandlers(cancel)

	memObserver := newMemoryObserver(ctx)
	defer memObserver.Stop()

	cpuProfiler := newCPUProfiler(ctx, cpuprofile)
	defer cpuProfiler.Stop()

	allocProfiler := newAllocProfiler(ctx, memprofile)
	defer allocProfiler.Stop()

	config, err := loadConfiguration(*configPath)
	if err != nil {
		slog.Error("Failed to load the configuration.", "err", err)
		ExitCode = 1

		return
	}

	level, _ := config.Level()
	logLevel.Set(level)

	app := NewApp(config, logManager, logLevel, os.Stdin, os.Stdout)
	app.uiEnabled = *uiEnabled

	if err := app.Run(ctx, flag.Args()); err != nil {
		slog.Error("Task failed.", "err", err)
		ExitCode = 1
	}
}
