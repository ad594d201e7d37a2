package core

// limiter.go bounds how many analyses run at once. Decoding a workbook holds
// the whole file and every record in memory, so parallel analyses are capped
// and excess requests wait up to maxWait before failing with
// ErrTooManyAnalyses.

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/JonMunkholm/stockrisk/internal/metrics"
)

// ErrTooManyAnalyses is returned when no slot frees up within the wait time.
var ErrTooManyAnalyses = errors.New("too many analyses in progress")

const (
	DefaultMaxConcurrentAnalyses = 4
	DefaultMaxWaitTime           = 30 * time.Second

	drainPollInterval = 50 * time.Millisecond
)

// AnalysisLimiter is a counting semaphore over analysis slots.
type AnalysisLimiter struct {
	slots   chan struct{}
	maxWait time.Duration
	active  atomic.Int64
}

// NewAnalysisLimiter allows at most maxConcurrent simultaneous analyses.
// Non-positive arguments fall back to the defaults.
func NewAnalysisLimiter(maxConcurrent int, maxWait time.Duration) *AnalysisLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentAnalyses
	}
	if maxWait <= 0 {
		maxWait = DefaultMaxWaitTime
	}
	return &AnalysisLimiter{
		slots:   make(chan struct{}, maxConcurrent),
		maxWait: maxWait,
	}
}

// Acquire waits for a slot. The caller must Release it when done.
// A cancelled ctx returns ctx.Err(); running out of wait time returns
// ErrTooManyAnalyses.
func (l *AnalysisLimiter) Acquire(ctx context.Context) error {
	timer := time.NewTimer(l.maxWait)
	defer timer.Stop()

	select {
	case l.slots <- struct{}{}:
		l.acquired()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ErrTooManyAnalyses
	}
}

// TryAcquire takes a slot only if one is free right now.
func (l *AnalysisLimiter) TryAcquire() bool {
	select {
	case l.slots <- struct{}{}:
		l.acquired()
		return true
	default:
		return false
	}
}

func (l *AnalysisLimiter) acquired() {
	l.active.Add(1)
	metrics.AnalysesActive.Inc()
}

// Release frees a slot taken by Acquire or TryAcquire.
func (l *AnalysisLimiter) Release() {
	l.active.Add(-1)
	metrics.AnalysesActive.Dec()
	<-l.slots
}

// ActiveCount returns the number of analyses holding a slot.
func (l *AnalysisLimiter) ActiveCount() int { return int(l.active.Load()) }

// MaxConcurrent returns the slot count.
func (l *AnalysisLimiter) MaxConcurrent() int { return cap(l.slots) }

// Available returns the number of free slots.
func (l *AnalysisLimiter) Available() int { return cap(l.slots) - len(l.slots) }

// WaitForDrain blocks until no analysis is running or ctx ends. Used on
// shutdown after the listener has stopped accepting requests.
func (l *AnalysisLimiter) WaitForDrain(ctx context.Context) error {
	if l.ActiveCount() == 0 {
		return nil
	}

	ticker := time.NewTicker(drainPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if l.ActiveCount() == 0 {
				return nil
			}
		}
	}
}

// LimiterStatus is a snapshot for health output.
type LimiterStatus struct {
	Active        int `json:"active"`
	Available     int `json:"available"`
	MaxConcurrent int `json:"max_concurrent"`
}

func (l *AnalysisLimiter) Status() LimiterStatus {
	return LimiterStatus{
		Active:        l.ActiveCount(),
		Available:     l.Available(),
		MaxConcurrent: l.MaxConcurrent(),
	}
}
