// Package workerpool runs tasks on a bounded number of goroutines.
//
//	p := workerpool.New(4)
//	for _, path := range paths {
//	    p.Go(ctx, func() error { return storage.Delete(ctx, path) })
//	}
//	err := p.Wait() // every failure, joined
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Pool limits how many submitted tasks run at once and collects their
// errors. The zero value is not usable; call New.
type Pool struct {
	slots chan struct{}
	wg    sync.WaitGroup

	mu   sync.Mutex
	errs []error
}

// New returns a pool running at most size tasks concurrently.
func New(size int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{slots: make(chan struct{}, size)}
}

// Go starts fn as soon as a slot is free. It blocks while the pool is
// saturated and gives up with ctx's error when ctx ends first.
func (p *Pool) Go(ctx context.Context, fn func() error) error {
	select {
	case p.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	p.wg.Add(1)
	go func() {
		defer func() {
			<-p.slots
			p.wg.Done()
		}()
		if err := safeRun(fn); err != nil {
			p.mu.Lock()
			p.errs = append(p.errs, err)
			p.mu.Unlock()
		}
	}()
	return nil
}

// Wait blocks until every started task has returned and reports their
// errors joined, or nil.
func (p *Pool) Wait() error {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	return errors.Join(p.errs...)
}

// ForEach calls fn for every item on at most size goroutines. Items not
// started before ctx ends are skipped and ctx's error is included.
func ForEach[T any](ctx context.Context, size int, items []T, fn func(context.Context, T) error) error {
	p := New(min(size, max(len(items), 1)))
	var stopped error
	for _, it := range items {
		if err := p.Go(ctx, func() error { return fn(ctx, it) }); err != nil {
			stopped = err
			break
		}
	}
	return errors.Join(p.Wait(), stopped)
}

// safeRun turns a panic in fn into an error so one bad task cannot take
// the process down.
func safeRun(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("workerpool: task panicked: %v", r)
		}
	}()
	return fn()
}
