package ui

import (
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
)

const logBufferSize = 1000

type teaProgramProvider interface {
	Send(msg tea.Msg)
}

// LogMsg is a regular string containing a log message. It is typed for
// identification as [tea.Msg] within a [tea.Program].
type LogMsg string

// TeaLogWriter is an implementation of an [io.Writer], for use inside a
// [slog.Handler], that forwards logs to a [tea.Program] as [LogMsg].
//
// Writes never block the logging goroutine: when the internal buffer is full
// the message is dropped and counted, so that a busy user interface cannot
// stall a running copy.
type TeaLogWriter struct {
	program  teaProgramProvider
	doneChan chan struct{}
	logChan  chan LogMsg
	dropped  atomic.Uint64
	stopped  atomic.Bool
}

// NewTeaLogWriter returns a pointer to a new [TeaLogWriter] and starts its
// forwarding goroutine, which is stopped with [TeaLogWriter.Stop].
func NewTeaLogWriter(program teaProgramProvider) *TeaLogWriter {
	wr := &TeaLogWriter{
		program:  program,
		doneChan: make(chan struct{}),
		logChan:  make(chan LogMsg, logBufferSize),
	}

	go wr.forward()

	return wr
}

// Stop ends the forwarding of logs. Logs written afterwards are discarded.
// It is safe to call Stop more than once.
func (wr *TeaLogWriter) Stop() {
	if wr.stopped.CompareAndSwap(false, true) {
		close(wr.doneChan)
	}
}

// Dropped returns the amount of log messages that were discarded because
// the buffer was full.
func (wr *TeaLogWriter) Dropped() uint64 {
	return wr.dropped.Load()
}

func (wr *TeaLogWriter) forward() {
	for {
		select {
		case <-wr.doneChan:
			return
		case msg := <-wr.logChan:
			wr.program.Send(msg)
		}
	}
}

// Write queues a copy of p for the [tea.Program]. It always reports success.
func (wr *TeaLogWriter) Write(p []byte) (int, error) {
	if wr.stopped.Load() {
		return len(p), nil
	}

	select {
	case wr.logChan <- LogMsg(p):
	default:
		wr.dropped.Add(1)
	}

	return len(p), nil
}
