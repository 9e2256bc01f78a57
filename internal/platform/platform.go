// Package platform selects the session provider for the running OS.
package platform

import (
	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

// NewProvider returns the media session provider of this platform.
// Unsupported platforms yield domain.ErrUnsupported.
func NewProvider(logger *zap.Logger, fetcher domain.Fetcher) (domain.SessionProvider, error) {
	p, err := newProvider(logger, fetcher)
	if err != nil {
		logger.Warn("No media session provider", zap.Error(err))
		return nil, err
	}
	return p, nil
}
