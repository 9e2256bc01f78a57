//go:build windows

// Package gsmtc implements domain.SessionProvider over the Windows
// GlobalSystemMediaTransportControlsSessionManager.
package gsmtc

import (
	"context"
	"fmt"
	"sync"
	"unsafe"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/go-ole/go-ole"
	"go.uber.org/zap"
)

// Provider enumerates the sessions of the system media transport controls
type Provider struct {
	logger *zap.Logger
	worker *worker

	mu      sync.Mutex
	manager uintptr // touched only on the worker thread
	closed  bool
}

// NewProvider starts the WinRT worker thread
func NewProvider(logger *zap.Logger) (*Provider, error) {
	w, err := startWorker(logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	return &Provider{logger: logger, worker: w}, nil
}

// Sessions returns the current sessions in the order the manager lists them
func (p *Provider) Sessions(ctx context.Context) ([]domain.Session, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, errWorkerClosed
	}

	ptrs, err := do(ctx, p.worker, func() ([]uintptr, error) {
		manager, err := p.acquireManager(ctx)
		if err != nil {
			return nil, err
		}

		vector, err := getObject(manager, slotManagerGetSessions)
		if err != nil {
			// a stale manager is dropped and requested again next time
			release(p.manager)
			p.manager = 0
			return nil, fmt.Errorf("GetSessions: %w", err)
		}
		defer release(vector)

		var size uint32
		if err := vcall(vector, slotVectorSize, uintptr(unsafe.Pointer(&size))); err != nil {
			return nil, fmt.Errorf("IVectorView.Size: %w", err)
		}

		ptrs := make([]uintptr, 0, size)
		for i := uint32(0); i < size; i++ {
			var s uintptr
			if err := vcall(vector, slotVectorGetAt, uintptr(i), uintptr(unsafe.Pointer(&s))); err != nil {
				for _, ptr := range ptrs {
					release(ptr)
				}
				return nil, fmt.Errorf("IVectorView.GetAt(%d): %w", i, err)
			}
			ptrs = append(ptrs, s)
		}
		return ptrs, nil
	})
	if err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(ptrs))
	for _, ptr := range ptrs {
		sessions = append(sessions, &Session{worker: p.worker, ref: newComRef(p.worker, ptr)})
	}

	p.logger.Debug("Media sessions enumerated", zap.Int("count", len(sessions)))
	return sessions, nil
}

// acquireManager requests the session manager once and keeps it
func (p *Provider) acquireManager(ctx context.Context) (uintptr, error) {
	if p.manager != 0 {
		return p.manager, nil
	}

	statics, err := ole.RoGetActivationFactory(managerClass, iidManagerStatics)
	if err != nil {
		return 0, fmt.Errorf("activation factory: %w", err)
	}
	staticsPtr := uintptr(unsafe.Pointer(statics))
	defer release(staticsPtr)

	op, err := getObject(staticsPtr, slotStaticsRequestAsync)
	if err != nil {
		return 0, fmt.Errorf("RequestAsync: %w", err)
	}

	manager, err := await(ctx, op)
	if err != nil {
		return 0, fmt.Errorf("RequestAsync: %w", err)
	}

	p.manager = manager
	p.logger.Debug("Session manager acquired")
	return manager, nil
}

// Close releases the session manager and stops the worker thread.
// Handles still alive afterwards become inert.
func (p *Provider) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	p.mu.Unlock()

	_, _ = do(context.Background(), p.worker, func() (struct{}, error) {
		release(p.manager)
		p.manager = 0
		return struct{}{}, nil
	})
	p.worker.stop()
	return nil
}
