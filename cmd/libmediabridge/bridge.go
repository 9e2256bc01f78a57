package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/mediabridge/internal/accessor"
	"github.com/genricoloni/mediabridge/internal/app"
	"github.com/genricoloni/mediabridge/internal/config"
	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the dependency graph of the shared library
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
	fx.Provide(newLogger),
	app.Module,
)

// bridge is the process-wide state behind the exported functions
type bridge struct {
	app    *fx.App
	logger *zap.Logger
	acc    *accessor.Accessors
}

var (
	mu      sync.Mutex
	current *bridge

	// extraOptions is appended to AppOptions when the bridge starts
	extraOptions []fx.Option
)

// newLogger creates the library logger at warn unless configured otherwise
func newLogger() (*zap.Logger, error) {
	return app.NewLogger(config.LogLevel("warn"))
}

func startBridge() (*bridge, error) {
	b := &bridge{}
	opts := append([]fx.Option{AppOptions, fx.Populate(&b.logger, &b.acc)}, extraOptions...)
	b.app = fx.New(opts...)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.app.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start media bridge: %w", err)
	}
	return b, nil
}

// acquire returns the running bridge, starting it on first use
func acquire() (*bridge, error) {
	mu.Lock()
	defer mu.Unlock()

	if current != nil {
		return current, nil
	}
	b, err := startBridge()
	if err != nil {
		return nil, err
	}
	current = b
	return b, nil
}

// shutdown stops the bridge; the next call starts a fresh one
func shutdown() error {
	mu.Lock()
	b := current
	current = nil
	mu.Unlock()

	if b == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return b.app.Stop(ctx)
}

// recoverTo replaces *out with fallback if the calling export panicked
func recoverTo[T any](op string, out *T, fallback T) {
	if r := recover(); r != nil {
		*out = fallback
		mu.Lock()
		b := current
		mu.Unlock()
		if b != nil {
			b.logger.Error("Recovered panic at library boundary",
				zap.String("op", op),
				zap.Any("panic", r),
				zap.Stack("stack"))
		}
	}
}

// available reports 1 or 0; any failure reads as not available
func available() (code int) {
	defer recoverTo("isAvailable", &code, 0)

	b, err := acquire()
	if err != nil {
		return 0
	}
	if ok, _ := b.acc.IsAvailable(context.Background()); ok {
		return 1
	}
	return 0
}

func playbackPosition() (ms int64) {
	defer recoverTo("getPlaybackPosition", &ms, accessor.MillisFailed)

	b, err := acquire()
	if err != nil {
		return accessor.MillisFailed
	}
	ms, _ = b.acc.PlaybackPosition(context.Background())
	return ms
}

func trackDuration() (ms int64) {
	defer recoverTo("getTrackDuration", &ms, accessor.MillisFailed)

	b, err := acquire()
	if err != nil {
		return accessor.MillisFailed
	}
	ms, _ = b.acc.TrackDuration(context.Background())
	return ms
}

func trackTitle() (s string) {
	defer recoverTo("getTrackTitle", &s, "")

	b, err := acquire()
	if err != nil {
		return ""
	}
	s, _ = b.acc.Title(context.Background())
	return s
}

func artistName() (s string) {
	defer recoverTo("getArtistName", &s, "")

	b, err := acquire()
	if err != nil {
		return ""
	}
	s, _ = b.acc.Artist(context.Background())
	return s
}

func playing() (code int) {
	defer recoverTo("isPlaying", &code, -1)

	b, err := acquire()
	if err != nil {
		return -1
	}
	return accessor.PlayingCode(b.acc.IsPlaying(context.Background()))
}

func coverArt() (data []byte) {
	defer recoverTo("getCoverArt", &data, nil)

	b, err := acquire()
	if err != nil {
		return nil
	}
	data, err = b.acc.CoverArt(context.Background())
	if err != nil {
		return nil
	}
	return data
}

func mediaKey(code int) (rc int) {
	defer recoverTo("sendMediaKey", &rc, 0)

	key := domain.MediaKey(code)
	switch key {
	case domain.KeyPlayPause, domain.KeyNext, domain.KeyPrevious:
	default:
		return 0
	}

	b, err := acquire()
	if err != nil {
		return 0
	}
	if err := b.acc.SendKey(context.Background(), key); err != nil {
		return 0
	}
	return 1
}

// fillBuffer copies data into dst when it fits
func fillBuffer(dst, data []byte) bool {
	if len(data) == 0 || len(dst) < len(data) {
		return false
	}
	copy(dst, data)
	return true
}
