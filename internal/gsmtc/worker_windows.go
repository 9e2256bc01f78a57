//go:build windows

package gsmtc

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/go-ole/go-ole"
	"go.uber.org/zap"
)

var errWorkerClosed = errors.New("gsmtc worker closed")

// worker owns an OS thread initialised into the multithreaded apartment.
// Every WinRT call of this package runs on it.
type worker struct {
	logger *zap.Logger
	jobs   chan func()
	done   chan struct{}
	exited chan struct{}
}

func startWorker(logger *zap.Logger) (*worker, error) {
	w := &worker{
		logger: logger,
		jobs:   make(chan func()),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}

	ready := make(chan error, 1)
	go w.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return w, nil
}

func (w *worker) run(ready chan<- error) {
	defer close(w.exited)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.RoInitialize(1); err != nil {
		ready <- fmt.Errorf("RoInitialize: %w", err)
		return
	}
	defer ole.CoUninitialize()
	ready <- nil

	w.logger.Debug("WinRT worker started")
	for {
		select {
		case job := <-w.jobs:
			job()
		case <-w.done:
			// drain releases queued before shutdown
			for {
				select {
				case job := <-w.jobs:
					job()
				default:
					w.logger.Debug("WinRT worker stopped")
					return
				}
			}
		}
	}
}

type result[T any] struct {
	v   T
	err error
}

// do runs fn on the worker thread. A panic in fn is returned as ErrInternal.
func do[T any](ctx context.Context, w *worker, fn func() (T, error)) (T, error) {
	var zero T
	res := make(chan result[T], 1)

	job := func() {
		defer func() {
			if r := recover(); r != nil {
				res <- result[T]{err: fmt.Errorf("%w: winrt call: %v", domain.ErrInternal, r)}
			}
		}()
		v, err := fn()
		res <- result[T]{v: v, err: err}
	}

	select {
	case w.jobs <- job:
	case <-w.done:
		return zero, errWorkerClosed
	case <-ctx.Done():
		return zero, ctx.Err()
	}

	select {
	case r := <-res:
		return r.v, r.err
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// release drops a COM reference on the worker thread without blocking the caller
func (w *worker) release(ptr uintptr) {
	if ptr == 0 {
		return
	}
	go func() {
		select {
		case w.jobs <- func() { release(ptr) }:
		case <-w.done:
		}
	}()
}

func (w *worker) stop() {
	close(w.done)
	<-w.exited
}
