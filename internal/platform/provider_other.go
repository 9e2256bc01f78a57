//go:build !linux && !windows

package platform

import (
	"fmt"
	"runtime"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

func newProvider(_ *zap.Logger, _ domain.Fetcher) (domain.SessionProvider, error) {
	return nil, fmt.Errorf("%w: %s", domain.ErrUnsupported, runtime.GOOS)
}
