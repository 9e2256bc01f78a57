package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Source is the read side polled by the watcher; implemented by
// *accessor.Accessors
type Source interface {
	IsAvailable(ctx context.Context) (bool, error)
	PlaybackPosition(ctx context.Context) (int64, error)
	TrackDuration(ctx context.Context) (int64, error)
	Title(ctx context.Context) (string, error)
	Artist(ctx context.Context) (string, error)
	IsPlaying(ctx context.Context) (bool, error)
}

// Listener receives playback change events. Callbacks run on the watcher
// goroutine and must not block.
type Listener interface {
	// OnConnect fires when a matching session appears
	OnConnect()
	// OnTrackChanged fires when title, artist or duration change
	OnTrackChanged(track domain.Track)
	// OnPositionChanged fires when the reported position moved
	OnPositionChanged(ms int64)
	// OnPlaybackChanged fires when playback starts or stops
	OnPlaybackChanged(playing bool)
	// OnSync fires after every complete snapshot
	OnSync()
	// OnDisconnect fires when the session goes away; err is nil when the
	// application simply stopped
	OnDisconnect(err error)
}

// NopListener implements Listener with no-ops, for embedding
type NopListener struct{}

func (NopListener) OnConnect() {}
func (NopListener) OnTrackChanged(domain.Track) {}
func (NopListener) OnPositionChanged(int64) {}
func (NopListener) OnPlaybackChanged(bool) {}
func (NopListener) OnSync() {}
func (NopListener) OnDisconnect(error) {}

// Watcher polls the media session and turns snapshots into change events
type Watcher struct {
	logger   *zap.Logger
	src      Source
	clock    clockwork.Clock
	interval time.Duration

	mu         sync.Mutex
	listeners  []Listener
	connected  bool
	track      domain.Track
	playing    bool
	position   int64
	positionAt time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

// NewWatcher creates a watcher polling at the configured interval
func NewWatcher(logger *zap.Logger, src Source, cfg domain.Config, clock clockwork.Clock) *Watcher {
	return &Watcher{
		logger:   logger,
		src:      src,
		clock:    clock,
		interval: cfg.GetSettings().PollInterval,
	}
}

// AddListener registers a listener for subsequent events
func (w *Watcher) AddListener(l Listener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, l)
}

// Start launches the polling loop in a goroutine.
// It returns immediately (non-blocking).
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		return nil
	}

	// the loop outlives the start context; Stop ends it
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	w.cancel = cancel
	w.done = make(chan struct{})

	w.logger.Info("Watcher starting", zap.Duration("interval", w.interval))
	go w.runLoop(loopCtx, w.done)
	return nil
}

func (w *Watcher) runLoop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := w.clock.NewTicker(w.interval)
	defer ticker.Stop()

	w.Poll(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watcher loop stopped")
			return
		case <-ticker.Chan():
			w.Poll(ctx)
		}
	}
}

// Stop ends the polling loop and waits for it to exit
func (w *Watcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	cancel, done := w.cancel, w.done
	w.cancel, w.done = nil, nil
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Poll takes one snapshot and dispatches the resulting events
func (w *Watcher) Poll(ctx context.Context) {
	var events []func(Listener)

	available, err := w.src.IsAvailable(ctx)
	if err != nil || !available {
		w.mu.Lock()
		if w.connected {
			w.resetLocked()
			events = append(events, func(l Listener) { l.OnDisconnect(err) })
			w.logger.Info("Media session disconnected", zap.Error(err))
		}
		w.mu.Unlock()
		w.dispatch(events)
		return
	}

	title, titleErr := w.src.Title(ctx)
	artist, artistErr := w.src.Artist(ctx)
	duration, durationErr := w.src.TrackDuration(ctx)
	playing, playingErr := w.src.IsPlaying(ctx)
	position, positionErr := w.src.PlaybackPosition(ctx)
	if err := errors.Join(titleErr, artistErr, durationErr, playingErr, positionErr); err != nil {
		w.logger.Debug("Incomplete snapshot", zap.Error(err))
	}

	now := w.clock.Now()
	w.mu.Lock()
	first := !w.connected
	if first {
		w.connected = true
		events = append(events, func(l Listener) { l.OnConnect() })
		w.logger.Info("Media session connected")
	}

	if titleErr == nil && artistErr == nil && durationErr == nil {
		track := domain.Track{Title: title, Artist: artist, Duration: duration}
		if first || track != w.track {
			w.track = track
			events = append(events, func(l Listener) { l.OnTrackChanged(track) })
		}
	}
	if playingErr == nil && (first || playing != w.playing) {
		w.playing = playing
		events = append(events, func(l Listener) { l.OnPlaybackChanged(playing) })
	}
	if positionErr == nil {
		if first || position != w.position {
			events = append(events, func(l Listener) { l.OnPositionChanged(position) })
		}
		w.position = position
		w.positionAt = now
	}
	events = append(events, func(l Listener) { l.OnSync() })
	w.mu.Unlock()

	w.dispatch(events)
}

func (w *Watcher) dispatch(events []func(Listener)) {
	if len(events) == 0 {
		return
	}

	w.mu.Lock()
	listeners := append([]Listener(nil), w.listeners...)
	w.mu.Unlock()

	for _, ev := range events {
		for _, l := range listeners {
			ev(l)
		}
	}
}

func (w *Watcher) resetLocked() {
	w.connected = false
	w.track = domain.Track{}
	w.playing = false
	w.position = 0
	w.positionAt = time.Time{}
}

// Connected reports whether the last snapshot found a session
func (w *Watcher) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

// Track returns the last observed track
func (w *Watcher) Track() domain.Track {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.track
}

// Position returns the last known position advanced by the time elapsed
// since it was read, while playing. It never exceeds the track duration.
func (w *Watcher) Position() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	pos := w.position
	if w.playing && !w.positionAt.IsZero() {
		pos += w.clock.Since(w.positionAt).Milliseconds()
	}
	if w.track.Duration > 0 && pos > w.track.Duration {
		pos = w.track.Duration
	}
	return pos
}
