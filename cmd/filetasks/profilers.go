package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/pprof"
)

// profiler writes a runtime profile to a file for the lifetime of its
// context. An empty path disables it.
//
//nolint:containedctx
type profiler struct {
	ctx      context.Context
	cancel   context.CancelFunc
	doneChan chan struct{}
}

func newProfiler(ctx context.Context, name string, path *string, write func(ctx context.Context, f *os.File) error) *profiler {
	prof := &profiler{doneChan: make(chan struct{})}
	prof.ctx, prof.cancel = context.WithCancel(ctx)

	go func() {
		defer close(prof.doneChan)

		if path == nil || *path == "" {
			return
		}

		f, err := os.Create(*path)
		if err != nil {
			slog.Error("Could not create profile:", "profile", name, "path", *path, "err", err)

			return
		}
		defer f.Close()

		if err := write(prof.ctx, f); err != nil {
			slog.Error("Could not write profile:", "profile", name, "path", *path, "err", err)
		}
	}()

	return prof
}

// newCPUProfiler profiles the CPU from now until it is stopped.
func newCPUProfiler(ctx context.Context, path *string) *profiler {
	return newProfiler(ctx, "cpu", path, func(ctx context.Context, f *os.File) error {
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start: %w", err)
		}
		defer pprof.StopCPUProfile()

		<-ctx.Done()

		return nil
	})
}

// newAllocProfiler writes the allocations profile when it is stopped.
func newAllocProfiler(ctx context.Context, path *string) *profiler {
	return newProfiler(ctx, "allocs", path, func(ctx context.Context, f *os.File) error {
		<-ctx.Done()

		return pprof.Lookup("allocs").WriteTo(f, 0) //nolint:wrapcheck
	})
}

// Stop ends the profiling and waits for the profile to be written.
func (prof *profiler) Stop() {
	prof.cancel()
	<-prof.doneChan
}
