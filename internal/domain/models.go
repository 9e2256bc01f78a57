package domain

import (
	"bytes"
	"time"
)

// PlaybackStatus represents the current state of the media player
type PlaybackStatus int

const (
	StatusClosed PlaybackStatus = iota
	StatusOpened
	StatusChanging
	StatusStopped
	StatusPlaying
	StatusPaused
)

// String returns the status name
func (s PlaybackStatus) String() string {
	switch s {
	case StatusClosed:
		return "Closed"
	case StatusOpened:
		return "Opened"
	case StatusChanging:
		return "Changing"
	case StatusStopped:
		return "Stopped"
	case StatusPlaying:
		return "Playing"
	case StatusPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// Ticks is a duration in 100-nanosecond units, the native time unit of the
// OS media session APIs
type Ticks int64

const ticksPerMillisecond = 10_000

// TicksFromMicroseconds converts an MPRIS microsecond value to ticks
func TicksFromMicroseconds(us int64) Ticks {
	return Ticks(us * 10)
}

// Milliseconds converts to whole milliseconds, truncating toward zero
func (t Ticks) Milliseconds() int64 {
	return int64(t) / ticksPerMillisecond
}

// Duration converts to a time.Duration
func (t Ticks) Duration() time.Duration {
	return time.Duration(t) * 100
}

// Timeline holds the playback position and end time of the current track
type Timeline struct {
	Position Ticks
	End      Ticks
}

// MediaProperties contains information about the currently playing media
type MediaProperties struct {
	// Title of the currently playing track
	Title string
	// Artist name
	Artist string
	// Album name
	Album string
}

// MediaKey is a transport command sent to the player
type MediaKey int

const (
	KeyPlayPause MediaKey = iota
	KeyNext
	KeyPrevious
)

// String returns the key name
func (k MediaKey) String() string {
	switch k {
	case KeyPlayPause:
		return "PlayPause"
	case KeyNext:
		return "Next"
	case KeyPrevious:
		return "Previous"
	default:
		return "Unknown"
	}
}

// ParseMediaKey parses the command-line spelling of a media key
func ParseMediaKey(s string) (MediaKey, bool) {
	switch s {
	case "play-pause", "playpause", "toggle":
		return KeyPlayPause, true
	case "next":
		return KeyNext, true
	case "previous", "prev":
		return KeyPrevious, true
	}
	return 0, false
}

// Track identifies the track a watcher is following
type Track struct {
	Title    string
	Artist   string
	Duration int64 // milliseconds
}

// ExpiryPolicy decides what happens to a cached session once its TTL elapses
type ExpiryPolicy string

const (
	// ExpiryRefresh drops the expired entry and enumerates sessions again
	ExpiryRefresh ExpiryPolicy = "refresh"
	// ExpiryRevalidate re-runs the identity check and keeps the entry if it passes
	ExpiryRevalidate ExpiryPolicy = "revalidate"
)

// AppIDPattern matches packaged-app identifiers by prefix and suffix
type AppIDPattern struct {
	Prefix string `toml:"prefix"`
	Suffix string `toml:"suffix"`
}

// Settings holds the resolved bridge configuration
type Settings struct {
	CacheTTL      time.Duration
	Expiry        ExpiryPolicy
	CallTimeout   time.Duration
	PollInterval  time.Duration
	AppIDs        []string
	AppIDPatterns []AppIDPattern
	LogLevel      string
}

// BytesStream is a ThumbnailStream over an in-memory buffer
type BytesStream struct {
	*bytes.Reader
	size int64
}

// NewBytesStream wraps data as a ThumbnailStream
func NewBytesStream(data []byte) *BytesStream {
	return &BytesStream{Reader: bytes.NewReader(data), size: int64(len(data))}
}

// Size returns the buffer length
func (s *BytesStream) Size() (int64, error) {
	return s.size, nil
}

// Close is a no-op
func (s *BytesStream) Close() error {
	return nil
}
