package mpris

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// Session is one MPRIS player. It is bound to the unique bus name that owned
// the well-known name at enumeration time, so a restarted player shows up as
// a vanished session rather than silently switching identity.
type Session struct {
	logger  *zap.Logger
	conn    DBusClient
	fetcher domain.Fetcher
	name    string // org.mpris.MediaPlayer2.spotify
	owner   string // :1.45
}

// SourceAppID returns the well-known bus name if it is still owned by the
// same connection
func (s *Session) SourceAppID(ctx context.Context) (string, error) {
	owner, err := s.conn.GetNameOwner(ctx, s.name)
	if err != nil {
		return "", s.wrap("GetNameOwner", err)
	}
	if owner != s.owner {
		return "", fmt.Errorf("%w: %s now owned by %s", domain.ErrSessionVanished, s.name, owner)
	}
	return s.name, nil
}

// PlaybackStatus reads the Player.PlaybackStatus property
func (s *Session) PlaybackStatus(ctx context.Context) (domain.PlaybackStatus, error) {
	v, err := s.property(ctx, "PlaybackStatus")
	if err != nil {
		return domain.StatusClosed, err
	}

	status, ok := v.Value().(string)
	if !ok {
		return domain.StatusClosed, fmt.Errorf("invalid playback status format: %T", v.Value())
	}
	return parseStatus(status), nil
}

// Timeline reads Player.Position and the mpris:length metadata entry
func (s *Session) Timeline(ctx context.Context) (domain.Timeline, error) {
	var tl domain.Timeline

	pos, err := s.property(ctx, "Position")
	if err != nil {
		return tl, err
	}
	us, ok := toInt64(pos.Value())
	if !ok {
		return tl, fmt.Errorf("invalid position format: %T", pos.Value())
	}
	tl.Position = domain.TicksFromMicroseconds(us)

	metadata, err := s.metadata(ctx)
	if err != nil {
		return tl, err
	}
	if lv, ok := metadata["mpris:length"]; ok {
		if us, ok := toInt64(lv.Value()); ok {
			tl.End = domain.TicksFromMicroseconds(us)
		}
	}
	return tl, nil
}

// MediaProperties reads the xesam fields of the current track
func (s *Session) MediaProperties(ctx context.Context) (domain.MediaProperties, error) {
	metadata, err := s.metadata(ctx)
	if err != nil {
		return domain.MediaProperties{}, err
	}
	return s.parseMetadata(metadata), nil
}

// Thumbnail fetches the image named by mpris:artUrl
func (s *Session) Thumbnail(ctx context.Context) (domain.ThumbnailStream, error) {
	metadata, err := s.metadata(ctx)
	if err != nil {
		return nil, err
	}

	artURL, _ := variantString(metadata["mpris:artUrl"])
	if artURL == "" {
		return nil, domain.ErrEmptyThumbnail
	}

	data, err := s.fetcher.Fetch(ctx, artURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch artwork: %w", err)
	}
	return domain.NewBytesStream(data), nil
}

// SendKey invokes the matching Player method
func (s *Session) SendKey(ctx context.Context, key domain.MediaKey) error {
	var method string
	switch key {
	case domain.KeyPlayPause:
		method = "PlayPause"
	case domain.KeyNext:
		method = "Next"
	case domain.KeyPrevious:
		method = "Previous"
	default:
		return fmt.Errorf("unknown media key: %d", key)
	}

	if err := s.conn.Call(ctx, s.owner, objectPath, playerIface+"."+method); err != nil {
		return s.wrap(method, err)
	}
	return nil
}

func (s *Session) property(ctx context.Context, name string) (dbus.Variant, error) {
	v, err := s.conn.GetProperty(ctx, s.owner, objectPath, playerIface+"."+name)
	if err != nil {
		return v, s.wrap(name, err)
	}
	return v, nil
}

func (s *Session) metadata(ctx context.Context) (map[string]dbus.Variant, error) {
	v, err := s.property(ctx, "Metadata")
	if err != nil {
		return nil, err
	}

	// Some players report an empty variant when nothing is loaded
	metadata, ok := v.Value().(map[string]dbus.Variant)
	if !ok {
		s.logger.Debug("Metadata variant is not a map", zap.String("player", s.name))
		return map[string]dbus.Variant{}, nil
	}
	return metadata, nil
}

// parseMetadata converts MPRIS metadata to domain model
func (s *Session) parseMetadata(metadata map[string]dbus.Variant) domain.MediaProperties {
	var props domain.MediaProperties

	props.Title, _ = variantString(metadata["xesam:title"])
	props.Album, _ = variantString(metadata["xesam:album"])

	// Extract artist (can be an array)
	if artistVar, ok := metadata["xesam:artist"]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			props.Artist = strings.Join(artists, ", ")
		case string:
			props.Artist = artists
		default:
			// Some non-compliant players may use unexpected types
			s.logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	return props
}

// wrap classifies a bus error: a missing peer means the player went away
func (s *Session) wrap(op string, err error) error {
	switch dbusErrorName(err) {
	case "org.freedesktop.DBus.Error.ServiceUnknown",
		"org.freedesktop.DBus.Error.NameHasNoOwner",
		"org.freedesktop.DBus.Error.NoReply":
		return fmt.Errorf("%w: %s %s: %w", domain.ErrSessionVanished, s.name, op, err)
	}
	return fmt.Errorf("%s %s: %w", s.name, op, err)
}

func parseStatus(status string) domain.PlaybackStatus {
	switch status {
	case "Playing":
		return domain.StatusPlaying
	case "Paused":
		return domain.StatusPaused
	default:
		return domain.StatusStopped
	}
}

func dbusErrorName(err error) string {
	var v dbus.Error
	if errors.As(err, &v) {
		return v.Name
	}
	var p *dbus.Error
	if errors.As(err, &p) && p != nil {
		return p.Name
	}
	return ""
}

func variantString(v dbus.Variant) (string, bool) {
	s, ok := v.Value().(string)
	return s, ok
}

// toInt64 accepts the integer widths players use for x-typed values
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
