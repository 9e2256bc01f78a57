package domain

import (
	"context"
	"io"
)

// Session is a live handle to one OS-tracked media session.
// The OS owns the underlying session: a handle may stop working at any time
// (the source application exits), in which case methods return an error
// wrapping ErrSessionVanished.
//
//go:generate mockgen -destination=mocks/session_mock.go -package=mocks github.com/genricoloni/mediabridge/internal/domain Session,SessionProvider,ThumbnailStream
type Session interface {
	// SourceAppID returns the identifier of the application that owns the session
	// (e.g. "Spotify.exe" or "org.mpris.MediaPlayer2.spotify")
	SourceAppID(ctx context.Context) (string, error)

	// PlaybackStatus returns the current playback state
	PlaybackStatus(ctx context.Context) (PlaybackStatus, error)

	// Timeline returns the position and end time of the current track
	Timeline(ctx context.Context) (Timeline, error)

	// MediaProperties returns title, artist and album of the current track
	MediaProperties(ctx context.Context) (MediaProperties, error)

	// Thumbnail opens the cover art stream of the current track
	// The caller must close the returned stream
	Thumbnail(ctx context.Context) (ThumbnailStream, error)

	// SendKey delivers a transport command to the session's application
	SendKey(ctx context.Context, key MediaKey) error
}

// SessionProvider enumerates the media sessions currently known to the OS
type SessionProvider interface {
	// Sessions returns all active sessions in the order reported by the OS.
	// An error means the OS subsystem itself is unavailable.
	Sessions(ctx context.Context) ([]Session, error)

	// Close releases the provider's OS resources
	Close() error
}

// ThumbnailStream is a sized, readable cover art stream
type ThumbnailStream interface {
	io.ReadCloser

	// Size returns the total stream length in bytes
	Size() (int64, error)
}

// Fetcher retrieves artwork addressed by URL
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	// Returns the raw image bytes or an error
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Config defines the interface for application configuration
type Config interface {
	// GetSettings returns the resolved bridge settings
	GetSettings() Settings
}
