//go:build !windows

// Package gsmtc implements domain.SessionProvider over the Windows
// GlobalSystemMediaTransportControlsSessionManager.
package gsmtc

import (
	"context"
	"fmt"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// Provider stub for non-Windows platforms
type Provider struct{}

// NewProvider returns ErrUnsupported on non-Windows platforms
func NewProvider(logger *zap.Logger) (*Provider, error) {
	return nil, fmt.Errorf("%w: GSMTC is only available on Windows", domain.ErrUnsupported)
}

// Sessions is never reachable since NewProvider always fails
func (p *Provider) Sessions(ctx context.Context) ([]domain.Session, error) {
	return nil, domain.ErrUnsupported
}

// Close is a no-op on non-Windows platforms
func (p *Provider) Close() error {
	return nil
}
