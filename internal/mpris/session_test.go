package mpris

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/mpris/mocks"
	"github.com/godbus/dbus/v5"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const (
	testName  = "org.mpris.MediaPlayer2.spotify"
	testOwner = ":1.45"
	metaProp  = "org.mpris.MediaPlayer2.Player.Metadata"
)

func newTestSession(conn DBusClient, fetcher domain.Fetcher) *Session {
	return &Session{
		logger:  zap.NewNop(),
		conn:    conn,
		fetcher: fetcher,
		name:    testName,
		owner:   testOwner,
	}
}

func TestSessionSourceAppID(t *testing.T) {
	tests := []struct {
		name          string
		owner         string
		ownerErr      error
		expectVanish  bool
		expectError   bool
		expectedAppID string
	}{
		{name: "Same Owner", owner: testOwner, expectedAppID: testName},
		{name: "Player Restarted", owner: ":1.99", expectError: true, expectVanish: true},
		{
			name:         "Player Exited",
			ownerErr:     dbus.NewError("org.freedesktop.DBus.Error.NameHasNoOwner", nil),
			expectError:  true,
			expectVanish: true,
		},
		{name: "Bus Failure", ownerErr: errors.New("connection reset"), expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)
			mockClient.EXPECT().GetNameOwner(gomock.Any(), testName).Return(tt.owner, tt.ownerErr)

			appID, err := newTestSession(mockClient, nil).SourceAppID(context.Background())
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if got := errors.Is(err, domain.ErrSessionVanished); got != tt.expectVanish {
					t.Errorf("ErrSessionVanished: expected %v, got %v (%v)", tt.expectVanish, got, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if appID != tt.expectedAppID {
				t.Errorf("Expected %s, got %s", tt.expectedAppID, appID)
			}
		})
	}
}

func TestSessionPlaybackStatus(t *testing.T) {
	tests := []struct {
		value    any
		expected domain.PlaybackStatus
	}{
		{"Playing", domain.StatusPlaying},
		{"Paused", domain.StatusPaused},
		{"Stopped", domain.StatusStopped},
		{"Buffering", domain.StatusStopped},
	}

	for _, tt := range tests {
		ctrl := gomock.NewController(t)
		mockClient := mocks.NewMockDBusClient(ctrl)
		mockClient.EXPECT().GetProperty(gomock.Any(), testOwner, objectPath, "org.mpris.MediaPlayer2.Player.PlaybackStatus").
			Return(dbus.MakeVariant(tt.value), nil)

		status, err := newTestSession(mockClient, nil).PlaybackStatus(context.Background())
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if status != tt.expected {
			t.Errorf("Status %v: expected %v, got %v", tt.value, tt.expected, status)
		}
	}
}

func TestSessionPlaybackStatus_InvalidFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockDBusClient(ctrl)
	mockClient.EXPECT().GetProperty(gomock.Any(), testOwner, objectPath, gomock.Any()).
		Return(dbus.MakeVariant(int32(4)), nil)

	if _, err := newTestSession(mockClient, nil).PlaybackStatus(context.Background()); err == nil {
		t.Error("Expected error for non-string status")
	}
}

func TestSessionTimeline(t *testing.T) {
	tests := []struct {
		name        string
		position    any
		metadata    map[string]dbus.Variant
		expectError bool
		expectedPos int64
		expectedDur int64
	}{
		{
			name:        "Int64 Length",
			position:    int64(2_500_000),
			metadata:    map[string]dbus.Variant{"mpris:length": dbus.MakeVariant(int64(215_000_000))},
			expectedPos: 2500,
			expectedDur: 215_000,
		},
		{
			name:        "Uint64 Length",
			position:    int64(999),
			metadata:    map[string]dbus.Variant{"mpris:length": dbus.MakeVariant(uint64(60_000_000))},
			expectedPos: 0,
			expectedDur: 60_000,
		},
		{
			name:        "Missing Length",
			position:    int64(1_000_000),
			metadata:    map[string]dbus.Variant{},
			expectedPos: 1000,
			expectedDur: 0,
		},
		{
			name:        "Invalid Position",
			position:    "soon",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)
			mockClient.EXPECT().GetProperty(gomock.Any(), testOwner, objectPath, "org.mpris.MediaPlayer2.Player.Position").
				Return(dbus.MakeVariant(tt.position), nil)
			if tt.metadata != nil {
				mockClient.EXPECT().GetProperty(gomock.Any(), testOwner, objectPath, metaProp).
					Return(dbus.MakeVariant(tt.metadata), nil)
			}

			tl, err := newTestSession(mockClient, nil).Timeline(context.Background())
			if tt.expectError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got := tl.Position.Milliseconds(); got != tt.expectedPos {
				t.Errorf("Position: expected %d, got %d", tt.expectedPos, got)
			}
			if got := tl.End.Milliseconds(); got != tt.expectedDur {
				t.Errorf("Duration: expected %d, got %d", tt.expectedDur, got)
			}
		})
	}
}

func TestSessionMediaProperties(t *testing.T) {
	tests := []struct {
		name     string
		metadata dbus.Variant
		err      error
		expected domain.MediaProperties
		vanished bool
	}{
		{
			name: "Single Artist",
			metadata: dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:title":  dbus.MakeVariant("Stairway to Heaven"),
				"xesam:artist": dbus.MakeVariant([]string{"Led Zeppelin"}),
				"xesam:album":  dbus.MakeVariant("Led Zeppelin IV"),
			}),
			expected: domain.MediaProperties{Title: "Stairway to Heaven", Artist: "Led Zeppelin", Album: "Led Zeppelin IV"},
		},
		{
			name: "Multiple Artists",
			metadata: dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:title":  dbus.MakeVariant("Under Pressure"),
				"xesam:artist": dbus.MakeVariant([]string{"Queen", "David Bowie"}),
			}),
			expected: domain.MediaProperties{Title: "Under Pressure", Artist: "Queen, David Bowie"},
		},
		{
			name: "String Artist",
			metadata: dbus.MakeVariant(map[string]dbus.Variant{
				"xesam:artist": dbus.MakeVariant("Daft Punk"),
			}),
			expected: domain.MediaProperties{Artist: "Daft Punk"},
		},
		{
			name:     "Metadata Is Not A Map",
			metadata: dbus.MakeVariant(12345),
			expected: domain.MediaProperties{},
		},
		{
			name:     "Player Gone",
			metadata: dbus.MakeVariant(""),
			err:      dbus.NewError("org.freedesktop.DBus.Error.ServiceUnknown", nil),
			vanished: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)
			mockClient.EXPECT().GetProperty(gomock.Any(), testOwner, objectPath, metaProp).Return(tt.metadata, tt.err)

			props, err := newTestSession(mockClient, nil).MediaProperties(context.Background())
			if tt.vanished {
				if !errors.Is(err, domain.ErrSessionVanished) {
					t.Errorf("Expected ErrSessionVanished, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if props != tt.expected {
				t.Errorf("Expected %+v, got %+v", tt.expected, props)
			}
		})
	}
}

func TestSessionThumbnail(t *testing.T) {
	image := []byte("fake-jpeg-data")

	tests := []struct {
		name        string
		metadata    map[string]dbus.Variant
		fetcher     fetchFunc
		expectError error
	}{
		{
			name:     "Fetched",
			metadata: map[string]dbus.Variant{"mpris:artUrl": dbus.MakeVariant("https://i.scdn.co/image/ab67616d")},
			fetcher: func(_ context.Context, url string) ([]byte, error) {
				if url != "https://i.scdn.co/image/ab67616d" {
					return nil, errors.New("unexpected url " + url)
				}
				return image, nil
			},
		},
		{
			name:        "No Art URL",
			metadata:    map[string]dbus.Variant{"xesam:title": dbus.MakeVariant("Track")},
			expectError: domain.ErrEmptyThumbnail,
		},
		{
			name:     "Fetch Failure",
			metadata: map[string]dbus.Variant{"mpris:artUrl": dbus.MakeVariant("https://example.invalid/a.jpg")},
			fetcher: func(context.Context, string) ([]byte, error) {
				return nil, errors.New("network error")
			},
			expectError: errors.New("failed to fetch artwork"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)
			mockClient.EXPECT().GetProperty(gomock.Any(), testOwner, objectPath, metaProp).
				Return(dbus.MakeVariant(tt.metadata), nil)

			stream, err := newTestSession(mockClient, tt.fetcher).Thumbnail(context.Background())
			if tt.expectError != nil {
				if err == nil {
					t.Fatalf("Expected error %v, got nil", tt.expectError)
				}
				if errors.Is(tt.expectError, domain.ErrEmptyThumbnail) && !errors.Is(err, domain.ErrEmptyThumbnail) {
					t.Errorf("Expected ErrEmptyThumbnail, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			defer stream.Close()

			size, _ := stream.Size()
			if size != int64(len(image)) {
				t.Errorf("Size: expected %d, got %d", len(image), size)
			}
			data, _ := io.ReadAll(stream)
			if string(data) != string(image) {
				t.Errorf("Data mismatch: got %q", data)
			}
		})
	}
}

func TestSessionSendKey(t *testing.T) {
	tests := []struct {
		key    domain.MediaKey
		method string
	}{
		{domain.KeyPlayPause, "org.mpris.MediaPlayer2.Player.PlayPause"},
		{domain.KeyNext, "org.mpris.MediaPlayer2.Player.Next"},
		{domain.KeyPrevious, "org.mpris.MediaPlayer2.Player.Previous"},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockClient := mocks.NewMockDBusClient(ctrl)
			mockClient.EXPECT().Call(gomock.Any(), testOwner, objectPath, tt.method).Return(nil)

			if err := newTestSession(mockClient, nil).SendKey(context.Background(), tt.key); err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSessionSendKey_Unknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockClient := mocks.NewMockDBusClient(ctrl)

	if err := newTestSession(mockClient, nil).SendKey(context.Background(), domain.MediaKey(42)); err == nil {
		t.Error("Expected error for unknown key")
	}
}
