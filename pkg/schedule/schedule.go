// Package schedule runs periodic maintenance tasks in the background.
//
//	schedule.Every(time.Hour).Name("tokens:purge").WithoutOverlapping().Run(purge)
//	schedule.Start(ctx) // once at boot; stops when ctx is cancelled
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shashiranjanraj/automart/pkg/logger"
	"github.com/shashiranjanraj/automart/pkg/metrics"
)

// Task is a scheduled unit of work. It receives the scheduler's context.
type Task func(ctx context.Context) error

type entry struct {
	id        string
	interval  time.Duration
	task      Task
	noOverlap bool

	mu      sync.Mutex
	lastRun time.Time
	running bool
}

// Schedule is a fluent builder for a single entry before it is registered.
type Schedule struct {
	e *entry
}

var (
	regMu   sync.Mutex
	entries []*entry
)

// Every schedules a task at a fixed interval. The first run happens on the
// scheduler's first tick.
func Every(d time.Duration) *Schedule {
	return &Schedule{e: &entry{interval: d}}
}

func Hourly() *Schedule { return Every(time.Hour) }

// WithoutOverlapping skips a run while the previous one is still executing.
func (s *Schedule) WithoutOverlapping() *Schedule {
	s.e.noOverlap = true
	return s
}

// Name labels the entry in logs and metrics.
func (s *Schedule) Name(id string) *Schedule {
	s.e.id = id
	return s
}

// Run registers the task.
func (s *Schedule) Run(fn Task) {
	regMu.Lock()
	defer regMu.Unlock()

	s.e.task = fn
	if s.e.id == "" {
		s.e.id = fmt.Sprintf("task-%d", len(entries)+1)
	}
	entries = append(entries, s.e)
}

// Reset drops all registered entries.
func Reset() {
	regMu.Lock()
	entries = nil
	regMu.Unlock()
}

// Start dispatches due tasks every tick until ctx is cancelled.
func Start(ctx context.Context) {
	go loop(ctx, time.Second)
	logger.Info("schedule: scheduler started")
}

func loop(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			for _, e := range snapshot() {
				if e.due(now) {
					dispatch(ctx, e)
				}
			}
		}
	}
}

func snapshot() []*entry {
	regMu.Lock()
	defer regMu.Unlock()
	return append([]*entry(nil), entries...)
}

func (e *entry) due(now time.Time) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRun.IsZero() || now.Sub(e.lastRun) >= e.interval
}

func dispatch(ctx context.Context, e *entry) {
	e.mu.Lock()
	if e.noOverlap && e.running {
		e.mu.Unlock()
		logger.Warn("schedule: skipping overlapping task", "id", e.id)
		return
	}
	e.running = true
	e.lastRun = time.Now()
	e.mu.Unlock()

	go func() {
		var err error
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
			e.mu.Lock()
			e.running = false
			e.mu.Unlock()

			metrics.RecordScheduledRun(e.id, err)
			if err != nil {
				logger.Error("schedule: task failed", "id", e.id, "error", err)
			}
		}()

		err = e.task(ctx)
	}()
}

// List returns the registered entries for CLI display.
func List() []string {
	regMu.Lock()
	defer regMu.Unlock()
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, fmt.Sprintf("%s  [every %s]", e.id, e.interval))
	}
	return out
}
