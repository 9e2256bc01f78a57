//go:build linux

package platform

import (
	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/mpris"
	"go.uber.org/zap"
)

func newProvider(logger *zap.Logger, fetcher domain.Fetcher) (domain.SessionProvider, error) {
	return mpris.Connect(logger, fetcher)
}
