// Package accessor exposes one operation per media fact. Each operation gets
// a valid session from the cache, performs a single property query and
// applies the bridge's absence/failure conventions:
//
//	numeric (ms)   absent 0,  failure -1
//	playing flag   absent 0,  failure -1 (see PlayingCode)
//	text           absent "", failure ""
//	cover art      error in both cases
package accessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

const (
	// MillisAbsent is returned by time accessors when no session is active
	MillisAbsent int64 = 0
	// MillisFailed is returned by time accessors when the OS query failed
	MillisFailed int64 = -1

	// maxCoverArtSize bounds the buffer allocated for a thumbnail
	maxCoverArtSize = 32 * 1024 * 1024
)

// SessionSource yields the current valid session; implemented by *session.Cache
type SessionSource interface {
	Get(ctx context.Context) (domain.Session, error)
	Invalidate(handle domain.Session)
}

// Accessors reads individual properties of the target media session
type Accessors struct {
	logger   *zap.Logger
	sessions SessionSource
	timeout  time.Duration
}

// NewAccessors creates the property accessors
func NewAccessors(logger *zap.Logger, sessions SessionSource, cfg domain.Config) *Accessors {
	return &Accessors{
		logger:   logger,
		sessions: sessions,
		timeout:  cfg.GetSettings().CallTimeout,
	}
}

// IsAvailable reports whether a matching session currently exists
func (a *Accessors) IsAvailable(ctx context.Context) (bool, error) {
	s, err := call(ctx, a, "IsAvailable", func(ctx context.Context) (domain.Session, error) {
		return a.sessions.Get(ctx)
	})
	if err != nil {
		a.observe("IsAvailable", err)
		return false, err
	}
	return s != nil, nil
}

// PlaybackPosition returns the playback position in milliseconds
func (a *Accessors) PlaybackPosition(ctx context.Context) (int64, error) {
	ms, err := query(ctx, a, "PlaybackPosition", func(ctx context.Context, s domain.Session) (int64, error) {
		tl, err := s.Timeline(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get timeline: %w", err)
		}
		return tl.Position.Milliseconds(), nil
	})
	return a.millis("PlaybackPosition", ms, err)
}

// TrackDuration returns the track length in milliseconds
func (a *Accessors) TrackDuration(ctx context.Context) (int64, error) {
	ms, err := query(ctx, a, "TrackDuration", func(ctx context.Context, s domain.Session) (int64, error) {
		tl, err := s.Timeline(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to get timeline: %w", err)
		}
		return tl.End.Milliseconds(), nil
	})
	return a.millis("TrackDuration", ms, err)
}

// IsPlaying reports whether the session status is exactly Playing.
// Paused, stopped and changing states yield false.
func (a *Accessors) IsPlaying(ctx context.Context) (bool, error) {
	playing, err := query(ctx, a, "IsPlaying", func(ctx context.Context, s domain.Session) (bool, error) {
		status, err := s.PlaybackStatus(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to get playback status: %w", err)
		}
		return status == domain.StatusPlaying, nil
	})
	if err != nil {
		a.observe("IsPlaying", err)
		return false, err
	}
	return playing, nil
}

// Title returns the track title, or "" when absent or unreadable
func (a *Accessors) Title(ctx context.Context) (string, error) {
	return a.text(ctx, "Title", func(p domain.MediaProperties) string { return p.Title })
}

// Artist returns the artist name, or "" when absent or unreadable
func (a *Accessors) Artist(ctx context.Context) (string, error) {
	return a.text(ctx, "Artist", func(p domain.MediaProperties) string { return p.Artist })
}

// CoverArt reads the whole thumbnail stream into a buffer sized exactly to
// the reported stream length
func (a *Accessors) CoverArt(ctx context.Context) ([]byte, error) {
	data, err := query(ctx, a, "CoverArt", func(ctx context.Context, s domain.Session) ([]byte, error) {
		stream, err := s.Thumbnail(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to open thumbnail: %w", err)
		}
		defer stream.Close()

		size, err := stream.Size()
		if err != nil {
			return nil, fmt.Errorf("failed to get thumbnail size: %w", err)
		}
		if size <= 0 {
			return nil, domain.ErrEmptyThumbnail
		}
		if size > maxCoverArtSize {
			return nil, fmt.Errorf("thumbnail too large: %d bytes", size)
		}

		buf := make([]byte, size)
		if _, err := io.ReadFull(stream, buf); err != nil {
			return nil, fmt.Errorf("failed to read thumbnail: %w", err)
		}
		return buf, nil
	})
	if err != nil {
		a.observe("CoverArt", err)
		return nil, err
	}
	return data, nil
}

// SendKey delivers a transport command to the target application
func (a *Accessors) SendKey(ctx context.Context, key domain.MediaKey) error {
	_, err := query(ctx, a, "SendKey", func(ctx context.Context, s domain.Session) (struct{}, error) {
		if err := s.SendKey(ctx, key); err != nil {
			return struct{}{}, fmt.Errorf("failed to send %s: %w", key, err)
		}
		return struct{}{}, nil
	})
	if err != nil {
		a.observe("SendKey", err)
	}
	return err
}

func (a *Accessors) text(ctx context.Context, op string, pick func(domain.MediaProperties) string) (string, error) {
	s, err := query(ctx, a, op, func(ctx context.Context, s domain.Session) (string, error) {
		props, err := s.MediaProperties(ctx)
		if err != nil {
			return "", fmt.Errorf("failed to get media properties: %w", err)
		}
		v := pick(props)
		if strings.IndexByte(v, 0) >= 0 || !utf8.ValidString(v) {
			return "", domain.ErrMalformedText
		}
		return v, nil
	})
	if err != nil {
		a.observe(op, err)
		return "", err
	}
	return s, nil
}

func (a *Accessors) millis(op string, ms int64, err error) (int64, error) {
	if err == nil {
		return ms, nil
	}
	a.observe(op, err)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return MillisAbsent, err
	}
	return MillisFailed, err
}

// observe logs a failed query. OS subsystem failures are kept visible; the
// locally recovered categories only show at debug level.
func (a *Accessors) observe(op string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		a.logger.Debug("No media session", zap.String("op", op))
	case errors.Is(err, domain.ErrUnavailable), errors.Is(err, domain.ErrInternal):
		a.logger.Warn("Media query failed", zap.String("op", op), zap.Error(err))
	default:
		a.logger.Debug("Media query failed", zap.String("op", op), zap.Error(err))
	}
}

// PlayingCode maps an IsPlaying result to the boundary convention:
// 1 playing, 0 not playing or no session, -1 failure
func PlayingCode(playing bool, err error) int {
	switch {
	case err == nil && playing:
		return 1
	case err == nil, errors.Is(err, domain.ErrSessionNotFound):
		return 0
	default:
		return -1
	}
}
