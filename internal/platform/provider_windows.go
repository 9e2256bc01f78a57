//go:build windows

package platform

import (
	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/gsmtc"
	"go.uber.org/zap"
)

func newProvider(logger *zap.Logger, _ domain.Fetcher) (domain.SessionProvider, error) {
	return gsmtc.NewProvider(logger)
}
