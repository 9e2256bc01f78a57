// Package mpris implements domain.SessionProvider over the D-Bus MPRIS
// interface. Every MPRIS player on the session bus is one media session.
package mpris

import (
	"context"
	"fmt"
	"strings"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

const (
	busPrefix   = "org.mpris.MediaPlayer2."
	objectPath  = "/org/mpris/MediaPlayer2"
	playerIface = "org.mpris.MediaPlayer2.Player"
)

// Provider enumerates MPRIS players on the session bus
type Provider struct {
	logger  *zap.Logger
	conn    DBusClient
	fetcher domain.Fetcher
}

// NewProvider creates a provider using an existing bus client
func NewProvider(logger *zap.Logger, conn DBusClient, fetcher domain.Fetcher) *Provider {
	return &Provider{
		logger:  logger,
		conn:    conn,
		fetcher: fetcher,
	}
}

// Connect opens a session bus connection and wraps it in a provider
func Connect(logger *zap.Logger, fetcher domain.Fetcher) (*Provider, error) {
	conn, err := NewStdDBusClient()
	if err != nil {
		return nil, fmt.Errorf("%w: session bus connection failed: %w", domain.ErrUnavailable, err)
	}
	return NewProvider(logger, conn, fetcher), nil
}

// Sessions lists the MPRIS players in bus order. A player whose name loses
// its owner between listing and resolution is skipped.
func (p *Provider) Sessions(ctx context.Context) ([]domain.Session, error) {
	names, err := p.conn.ListNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	var sessions []domain.Session
	for _, name := range names {
		if !strings.HasPrefix(name, busPrefix) {
			continue
		}

		owner, err := p.conn.GetNameOwner(ctx, name)
		if err != nil {
			p.logger.Debug("Skipping MPRIS player without owner",
				zap.String("player", name),
				zap.Error(err))
			continue
		}

		sessions = append(sessions, &Session{
			logger:  p.logger,
			conn:    p.conn,
			fetcher: p.fetcher,
			name:    name,
			owner:   owner,
		})
	}

	p.logger.Debug("MPRIS players enumerated", zap.Int("count", len(sessions)))
	return sessions, nil
}

// Close closes the bus connection
func (p *Provider) Close() error {
	return p.conn.Close()
}
