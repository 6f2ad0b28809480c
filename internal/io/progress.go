package io

import (
	"log/slog"
	"sync"
	"time"
)

const (
	// rateSmoothing is the weight of the most recent rate sample in the
	// exponentially weighted transfer rate.
	rateSmoothing = 0.3
)

// Progress is a point-in-time copy of the state of a [TransferInfo].
type Progress struct {
	Started          bool
	Finished         bool
	Err              error
	Percentage       float64
	BytesTotal       uint64
	BytesTransferred uint64
	Rate             float64 // bytes per second
	StartTime        time.Time
	EndTime          time.Time
	Elapsed          time.Duration
	TimeRemaining    time.Duration
}

// TransferInfo tracks the progress of a single transfer. All methods are safe
// for concurrent use, so that a transfer can be observed (e.g. by a user
// interface) while it is running.
type TransferInfo struct {
	sync.RWMutex
	now func() time.Time

	started          bool
	finished         bool
	err              error
	percentage       float64
	timeRemaining    time.Duration
	startTime        time.Time
	endTime          time.Time
	bytesTotal       uint64
	bytesTransferred uint64
	transferRate     float64
}

// NewTransferInfo returns a pointer to a new [TransferInfo].
func NewTransferInfo() *TransferInfo {
	return &TransferInfo{
		now: time.Now,
	}
}

// Start marks the transfer as started, expecting bytesTotal to be transferred.
func (t *TransferInfo) Start(bytesTotal uint64) {
	t.Lock()
	defer t.Unlock()

	t.started = true
	t.finished = false
	t.err = nil
	t.startTime = t.now()
	t.endTime = time.Time{}
	t.bytesTotal = bytesTotal
	t.bytesTransferred = 0
	t.percentage = 0
	t.transferRate = 0
	t.timeRemaining = 0
}

// End marks the transfer as successfully finished.
func (t *TransferInfo) End() {
	t.Lock()
	defer t.Unlock()

	t.finished = true
	t.endTime = t.now()

	t.bytesTransferred = t.bytesTotal
	t.percentage = 100.0
	t.timeRemaining = 0

	if elapsed := t.endTime.Sub(t.startTime); elapsed > 0 {
		t.transferRate = float64(t.bytesTransferred) / elapsed.Seconds()
	}
}

// SetError marks the transfer as failed.
func (t *TransferInfo) SetError(err error) {
	t.Lock()
	defer t.Unlock()

	t.err = err
	t.finished = true
	t.endTime = t.now()
}

// Update sets the total amount of bytes transferred so far and recalculates
// percentage, transfer rate and the remaining time.
func (t *TransferInfo) Update(totalBytesTransferred uint64) {
	t.Lock()
	defer t.Unlock()

	now := t.now()
	elapsed := now.Sub(t.startTime)

	t.bytesTransferred = totalBytesTransferred

	if t.bytesTotal > 0 {
		t.percentage = float64(t.bytesTransferred) / float64(t.bytesTotal) * 100 //nolint:mnd
	}

	if elapsed <= 0 {
		return
	}

	instantRate := float64(t.bytesTransferred) / elapsed.Seconds()

	if t.transferRate == 0 {
		t.transferRate = instantRate
	} else {
		t.transferRate = (1-rateSmoothing)*t.transferRate + rateSmoothing*instantRate
	}

	if t.transferRate > 0 && t.bytesTransferred < t.bytesTotal {
		bytesRemaining := t.bytesTotal - t.bytesTransferred
		secondsRemaining := float64(bytesRemaining) / t.transferRate
		t.timeRemaining = time.Duration(secondsRemaining * float64(time.Second))
	} else {
		t.timeRemaining = 0
	}
}

// Snapshot returns the current [Progress] of the transfer.
func (t *TransferInfo) Snapshot() Progress {
	t.RLock()
	defer t.RUnlock()

	p := Progress{
		Started:          t.started,
		Finished:         t.finished,
		Err:              t.err,
		Percentage:       t.percentage,
		BytesTotal:       t.bytesTotal,
		BytesTransferred: t.bytesTransferred,
		Rate:             t.transferRate,
		StartTime:        t.startTime,
		EndTime:          t.endTime,
		TimeRemaining:    t.timeRemaining,
	}

	switch {
	case !t.started:
	case t.finished:
		p.Elapsed = t.endTime.Sub(t.startTime)
	default:
		p.Elapsed = t.now().Sub(t.startTime)
	}

	return p
}

// LogValue implements [slog.LogValuer], so that [Progress] is logged as a
// group of its most relevant fields.
func (p Progress) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("percentage", p.Percentage),
		slog.Uint64("bytesTransferred", p.BytesTransferred),
		slog.Uint64("bytesTotal", p.BytesTotal),
		slog.Float64("rate_KBps", p.Rate/1024), //nolint:mnd
	)
}
