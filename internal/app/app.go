// Package app wires the bridge components into an fx application.
package app

import (
	"context"
	"fmt"

	"github.com/genricoloni/mediabridge/internal/accessor"
	"github.com/genricoloni/mediabridge/internal/artwork"
	"github.com/genricoloni/mediabridge/internal/config"
	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/engine"
	"github.com/genricoloni/mediabridge/internal/fetcher"
	"github.com/genricoloni/mediabridge/internal/platform"
	"github.com/genricoloni/mediabridge/internal/session"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Module provides every bridge component. The embedding program supplies
// the *zap.Logger.
var Module = fx.Module("mediabridge",
	fx.Provide(
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),
		fx.Annotate(fetcher.NewArtFetcher, fx.As(new(domain.Fetcher))),
		newClock,
		newSessionProvider,
		session.NewMatcherFromConfig,
		session.NewCacheFromConfig,
		sessionSource,
		accessor.NewAccessors,
		watcherSource,
		engine.NewWatcher,
		artwork.NewProcessor,
	),
	fx.Invoke(registerHooks),
)

// NewLogger builds a production zap logger at the given level
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	return cfg.Build()
}

func newClock() clockwork.Clock {
	return clockwork.NewRealClock()
}

func newSessionProvider(logger *zap.Logger, f domain.Fetcher) domain.SessionProvider {
	return newLazyProvider(logger, func() (domain.SessionProvider, error) {
		return platform.NewProvider(logger, f)
	})
}

func sessionSource(c *session.Cache) accessor.SessionSource {
	return c
}

func watcherSource(a *accessor.Accessors) engine.Source {
	return a
}

// registerHooks sets up application lifecycle hooks
func registerHooks(lc fx.Lifecycle, logger *zap.Logger, w *engine.Watcher, p domain.SessionProvider) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Debug("Media bridge started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Debug("Shutting down media bridge")
			return multierr.Combine(
				w.Stop(ctx),
				p.Close(),
			)
		},
	})
}
