package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	fileio "github.com/desertwitch/filetasks/internal/io"
	"github.com/dustin/go-humanize"
)

type progressSource interface {
	Snapshot() fileio.Progress
}

// progressReporter periodically writes the progress of a transfer as a line
// of text.
type progressReporter struct {
	out      io.Writer
	source   progressSource
	interval time.Duration

	stopOnce sync.Once
	stopChan chan struct{}
	doneChan chan struct{}
}

func newProgressReporter(out io.Writer, source progressSource, interval time.Duration) *progressReporter {
	return &progressReporter{
		out:      out,
		source:   source,
		interval: interval,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins reporting in the background until [progressReporter.Stop].
func (r *progressReporter) Start() {
	go r.report()
}

// Stop ends the reporting and writes one final line of progress.
func (r *progressReporter) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
		<-r.doneChan
	})
}

func (r *progressReporter) report() {
	defer close(r.doneChan)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	var last uint64
	for {
		select {
		case <-r.stopChan:
			if p := r.source.Snapshot(); p.Started {
				fmt.Fprintln(r.out, formatProgress(p))
			}

			return
		case <-ticker.C:
			p := r.source.Snapshot()
			if !p.Started || p.BytesTransferred == last {
				continue
			}
			last = p.BytesTransferred
			fmt.Fprintln(r.out, formatProgress(p))
		}
	}
}

func formatProgress(p fileio.Progress) string {
	return fmt.Sprintf("Copied %s of %s bytes (%.1f%%) at %.2f KB/s",
		humanize.Comma(int64(p.BytesTransferred)), //nolint:gosec
		humanize.Comma(int64(p.BytesTotal)),       //nolint:gosec
		p.Percentage,
		p.Rate/1024, //nolint:mnd
	)
}

func formatReport(r *fileio.Report) string {
	status := "sizes match"
	if !r.Matches() {
		status = "SIZES DIFFER"
	}

	s := fmt.Sprintf("Copy complete: original %s bytes, copied %s bytes (%s) in %v, average %.2f KB/s",
		humanize.Comma(int64(r.SourceSize)), //nolint:gosec
		humanize.Comma(int64(r.CopiedSize)), //nolint:gosec
		status,
		r.Duration.Round(time.Millisecond),
		r.Rate/1024, //nolint:mnd
	)

	if r.Checksum != "" {
		s += "\nVerified blake3: " + r.Checksum
	}

	return s
}
