package app

import (
	"context"
	"sync"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// lazyProvider opens the platform provider on first use. A failed open or a
// failed enumeration drops the provider so the next call opens a fresh one,
// which picks up a bus or service that restarted or came up later.
type lazyProvider struct {
	logger *zap.Logger
	open   func() (domain.SessionProvider, error)

	mu       sync.Mutex
	provider domain.SessionProvider
}

func newLazyProvider(logger *zap.Logger, open func() (domain.SessionProvider, error)) *lazyProvider {
	return &lazyProvider{logger: logger, open: open}
}

func (l *lazyProvider) Sessions(ctx context.Context) ([]domain.Session, error) {
	l.mu.Lock()
	if l.provider == nil {
		p, err := l.open()
		if err != nil {
			l.mu.Unlock()
			return nil, err
		}
		l.logger.Debug("Session provider opened")
		l.provider = p
	}
	p := l.provider
	l.mu.Unlock()

	sessions, err := p.Sessions(ctx)
	if err != nil && ctx.Err() == nil {
		l.drop(p, err)
	}
	return sessions, err
}

// drop closes p if it is still the current provider
func (l *lazyProvider) drop(p domain.SessionProvider, cause error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.provider != p {
		return
	}
	l.provider = nil
	l.logger.Debug("Session provider dropped", zap.Error(cause))
	if err := p.Close(); err != nil {
		l.logger.Debug("Failed to close dropped session provider", zap.Error(err))
	}
}

func (l *lazyProvider) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.provider == nil {
		return nil
	}
	err := l.provider.Close()
	l.provider = nil
	return err
}
