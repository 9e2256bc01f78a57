// Package session discovers the target application's media session and keeps
// the last valid handle in a single, TTL-bounded slot.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// entry is the cached handle and the time it was acquired or last renewed
type entry struct {
	handle     domain.Session
	acquiredAt time.Time
}

// Stats counts cache outcomes since construction
type Stats struct {
	Hits          uint64
	Misses        uint64
	Refreshes     uint64
	Invalidations uint64
}

// Options tunes cache expiry
type Options struct {
	// TTL bounds how long an entry is kept. Zero disables expiry; the identity
	// check still runs on every access.
	TTL time.Duration
	// Expiry selects what happens once TTL elapses
	Expiry domain.ExpiryPolicy
	// Clock defaults to the real clock
	Clock clockwork.Clock
}

// Cache holds at most one validated session handle.
// All reads and writes of the slot, including a refresh, happen under mu, so
// callers see either the state before or after a refresh and at most one
// refresh runs at a time.
type Cache struct {
	logger   *zap.Logger
	provider domain.SessionProvider
	matcher  *Matcher
	clock    clockwork.Clock
	ttl      time.Duration
	expiry   domain.ExpiryPolicy

	mu    sync.Mutex
	entry *entry
	stats Stats
}

// NewCache creates an empty cache over a session provider
func NewCache(logger *zap.Logger, provider domain.SessionProvider, matcher *Matcher, opts Options) *Cache {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Expiry == "" {
		opts.Expiry = domain.ExpiryRefresh
	}
	return &Cache{
		logger:   logger,
		provider: provider,
		matcher:  matcher,
		clock:    opts.Clock,
		ttl:      opts.TTL,
		expiry:   opts.Expiry,
	}
}

// NewCacheFromConfig creates the process cache from configuration
func NewCacheFromConfig(
	logger *zap.Logger,
	provider domain.SessionProvider,
	matcher *Matcher,
	cfg domain.Config,
	clock clockwork.Clock,
) *Cache {
	s := cfg.GetSettings()
	return NewCache(logger, provider, matcher, Options{
		TTL:    s.CacheTTL,
		Expiry: s.Expiry,
		Clock:  clock,
	})
}

// Get returns a session that passed the identity check within the current
// TTL window, refreshing from the provider when needed.
// It returns (nil, nil) when no matching session is active, and an error
// wrapping domain.ErrUnavailable when the provider fails.
func (c *Cache) Get(ctx context.Context) (domain.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry != nil {
		if handle, ok := c.validateLocked(ctx); ok {
			c.stats.Hits++
			return handle, nil
		}
	}

	c.stats.Misses++
	return c.refreshLocked(ctx)
}

// validateLocked checks the cached entry and clears it when unusable
func (c *Cache) validateLocked(ctx context.Context) (domain.Session, bool) {
	e := c.entry
	expired := c.ttl > 0 && c.clock.Since(e.acquiredAt) >= c.ttl

	if expired && c.expiry == domain.ExpiryRefresh {
		c.clearLocked("ttl elapsed")
		return nil, false
	}

	ok, err := c.matcher.Match(ctx, e.handle)
	if err != nil {
		c.logger.Debug("Cached session failed identity check", zap.Error(err))
		c.clearLocked("session vanished")
		return nil, false
	}
	if !ok {
		c.clearLocked("source application changed")
		return nil, false
	}

	if expired {
		e.acquiredAt = c.clock.Now()
	}
	return e.handle, true
}

// refreshLocked enumerates sessions and caches the first match
func (c *Cache) refreshLocked(ctx context.Context) (domain.Session, error) {
	c.stats.Refreshes++

	sessions, err := c.provider.Sessions(ctx)
	if err != nil {
		c.entry = nil
		if errors.Is(err, domain.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}

	for i, s := range sessions {
		ok, err := c.matcher.Match(ctx, s)
		if err != nil {
			// A candidate that cannot be queried is skipped, not fatal
			c.logger.Debug("Skipping session", zap.Int("index", i), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}

		c.entry = &entry{handle: s, acquiredAt: c.clock.Now()}
		c.logger.Debug("Session cached",
			zap.Int("index", i),
			zap.Int("candidates", len(sessions)))
		return s, nil
	}

	c.entry = nil
	c.logger.Debug("No matching session", zap.Int("candidates", len(sessions)))
	return nil, nil
}

// Invalidate clears the slot if it still holds handle. A nil handle clears
// unconditionally. Accessors call this when a property query reports that
// the session vanished after validation.
func (c *Cache) Invalidate(handle domain.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return
	}
	if handle != nil && c.entry.handle != handle {
		return
	}
	c.clearLocked("invalidated by caller")
}

// Stats returns a snapshot of the cache counters
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

func (c *Cache) clearLocked(reason string) {
	c.entry = nil
	c.stats.Invalidations++
	c.logger.Debug("Session cache cleared", zap.String("reason", reason))
}
