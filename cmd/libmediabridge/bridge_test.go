package main

import (
	"context"
	"errors"
	"testing"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/domain/mocks"
	"go.uber.org/fx"
	"go.uber.org/mock/gomock"
)

// useProvider makes the next bridge start use provider instead of the
// platform one
func useProvider(t *testing.T, provider domain.SessionProvider) {
	t.Helper()
	extraOptions = []fx.Option{
		fx.Decorate(func(domain.SessionProvider) domain.SessionProvider { return provider }),
	}
	t.Cleanup(func() {
		if err := shutdown(); err != nil {
			t.Errorf("shutdown failed: %v", err)
		}
		extraOptions = nil
	})
}

func TestFreeNil(t *testing.T) {
	// must not fault
	freeString(nil)
	freeCoverArt(nil)
}

func TestGetCoverArt_NilOutputs(t *testing.T) {
	if rc := getCoverArt(nil, nil); rc != 0 {
		t.Errorf("expected 0, got %d", rc)
	}
}

func TestBridge_Session(t *testing.T) {
	ctrl := gomock.NewController(t)
	cover := []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}

	spotify := mocks.NewMockSession(ctrl)
	spotify.EXPECT().SourceAppID(gomock.Any()).Return("SpotifyAB.SpotifyMusic_zpdnekdrzrea0!Spotify", nil).AnyTimes()
	spotify.EXPECT().Timeline(gomock.Any()).Return(domain.Timeline{Position: 25_009_999, End: 2_150_000_000}, nil).Times(2)
	spotify.EXPECT().MediaProperties(gomock.Any()).Return(domain.MediaProperties{Title: "Song", Artist: "Band"}, nil).Times(2)
	spotify.EXPECT().PlaybackStatus(gomock.Any()).Return(domain.StatusPlaying, nil)
	spotify.EXPECT().Thumbnail(gomock.Any()).DoAndReturn(func(context.Context) (domain.ThumbnailStream, error) {
		return domain.NewBytesStream(cover), nil
	}).Times(2)
	spotify.EXPECT().SendKey(gomock.Any(), domain.KeyNext).Return(nil)

	provider := mocks.NewMockSessionProvider(ctrl)
	provider.EXPECT().Sessions(gomock.Any()).Return([]domain.Session{spotify}, nil)
	provider.EXPECT().Close().Return(nil)
	useProvider(t, provider)

	if got := available(); got != 1 {
		t.Errorf("isAvailable: expected 1, got %d", got)
	}
	if got := playbackPosition(); got != 2500 {
		t.Errorf("getPlaybackPosition: expected 2500, got %d", got)
	}
	if got := trackDuration(); got != 215_000 {
		t.Errorf("getTrackDuration: expected 215000, got %d", got)
	}
	if got := trackTitle(); got != "Song" {
		t.Errorf("getTrackTitle: expected Song, got %q", got)
	}
	if got := artistName(); got != "Band" {
		t.Errorf("getArtistName: expected Band, got %q", got)
	}
	if got := playing(); got != 1 {
		t.Errorf("isPlaying: expected 1, got %d", got)
	}
	if got := coverArt(); string(got) != string(cover) {
		t.Errorf("getCoverArt: expected %v, got %v", cover, got)
	}

	small := make([]byte, 4)
	if fillBuffer(small, coverArt()) {
		t.Error("copyCoverArt: short buffer must not be filled")
	}

	if got := mediaKey(int(domain.KeyNext)); got != 1 {
		t.Errorf("sendMediaKey: expected 1, got %d", got)
	}
	if got := mediaKey(7); got != 0 {
		t.Errorf("sendMediaKey(7): expected 0, got %d", got)
	}
}

func TestBridge_NoSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockSessionProvider(ctrl)
	provider.EXPECT().Sessions(gomock.Any()).Return(nil, nil).AnyTimes()
	provider.EXPECT().Close().Return(nil)
	useProvider(t, provider)

	if got := available(); got != 0 {
		t.Errorf("isAvailable: expected 0, got %d", got)
	}
	if got := playbackPosition(); got != 0 {
		t.Errorf("getPlaybackPosition: expected 0, got %d", got)
	}
	if got := trackDuration(); got != 0 {
		t.Errorf("getTrackDuration: expected 0, got %d", got)
	}
	if got := trackTitle(); got != "" {
		t.Errorf("getTrackTitle: expected empty, got %q", got)
	}
	if got := playing(); got != 0 {
		t.Errorf("isPlaying: expected 0, got %d", got)
	}
	if got := coverArt(); got != nil {
		t.Errorf("getCoverArt: expected nil, got %v", got)
	}
	if got := mediaKey(int(domain.KeyPlayPause)); got != 0 {
		t.Errorf("sendMediaKey: expected 0, got %d", got)
	}

	rc, data, touched := coverArtHandoff()
	if rc != 0 || data != nil {
		t.Errorf("getCoverArt: expected 0 and no data, got %d %v", rc, data)
	}
	if touched {
		t.Error("getCoverArt: outputs written without a session")
	}

	rc, _, required := coverArtCopy(16)
	if rc != 0 || required != 0 {
		t.Errorf("copyCoverArt: expected 0 with required 0, got %d with %d", rc, required)
	}
}

func TestBridge_ProviderFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockSessionProvider(ctrl)
	provider.EXPECT().Sessions(gomock.Any()).Return(nil, errors.New("bus down")).AnyTimes()
	provider.EXPECT().Close().Return(nil)
	useProvider(t, provider)

	if got := available(); got != 0 {
		t.Errorf("isAvailable: expected 0, got %d", got)
	}
	if got := playbackPosition(); got != -1 {
		t.Errorf("getPlaybackPosition: expected -1, got %d", got)
	}
	if got := playing(); got != -1 {
		t.Errorf("isPlaying: expected -1, got %d", got)
	}
	if got := trackTitle(); got != "" {
		t.Errorf("getTrackTitle: expected empty, got %q", got)
	}
	if rc, _, touched := coverArtHandoff(); rc != 0 || touched {
		t.Errorf("getCoverArt: expected 0 with untouched outputs, got %d (touched %v)", rc, touched)
	}
}

func TestBridge_CoverArtHandoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	cover := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F'}

	spotify := mocks.NewMockSession(ctrl)
	spotify.EXPECT().SourceAppID(gomock.Any()).Return("Spotify.exe", nil).AnyTimes()
	spotify.EXPECT().Thumbnail(gomock.Any()).DoAndReturn(func(context.Context) (domain.ThumbnailStream, error) {
		return domain.NewBytesStream(cover), nil
	}).Times(4)

	provider := mocks.NewMockSessionProvider(ctrl)
	provider.EXPECT().Sessions(gomock.Any()).Return([]domain.Session{spotify}, nil)
	provider.EXPECT().Close().Return(nil)
	useProvider(t, provider)

	rc, data, touched := coverArtHandoff()
	if rc != 1 || !touched {
		t.Fatalf("getCoverArt: expected 1 with outputs written, got %d (touched %v)", rc, touched)
	}
	if string(data) != string(cover) {
		t.Errorf("getCoverArt: expected %v, got %v", cover, data)
	}

	tests := []struct {
		name     string
		capacity int
		rc       int
	}{
		{"Exact Buffer", len(cover), 1},
		{"Short Buffer", len(cover) - 1, 0},
		{"No Buffer", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc, data, required := coverArtCopy(tt.capacity)
			if rc != tt.rc {
				t.Errorf("expected %d, got %d", tt.rc, rc)
			}
			if required != int64(len(cover)) {
				t.Errorf("expected required %d, got %d", len(cover), required)
			}
			if rc == 1 && string(data) != string(cover) {
				t.Errorf("expected %v, got %v", cover, data)
			}
		})
	}
}

func TestBridge_ShutdownRestarts(t *testing.T) {
	ctrl := gomock.NewController(t)
	provider := mocks.NewMockSessionProvider(ctrl)
	provider.EXPECT().Sessions(gomock.Any()).Return(nil, nil).Times(2)
	provider.EXPECT().Close().Return(nil).Times(2)
	useProvider(t, provider)

	first, err := acquire()
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	_ = available()

	shutdownBridge()
	// a second shutdown is a no-op
	if err := shutdown(); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}

	second, err := acquire()
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh bridge after shutdown")
	}
	_ = available()
}

func TestFillBuffer(t *testing.T) {
	data := []byte("cover")
	tests := []struct {
		name     string
		dst      []byte
		data     []byte
		expected bool
	}{
		{"Exact", make([]byte, 5), data, true},
		{"Larger", make([]byte, 8), data, true},
		{"Short", make([]byte, 4), data, false},
		{"No Data", make([]byte, 4), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fillBuffer(tt.dst, tt.data); got != tt.expected {
				t.Fatalf("expected %v, got %v", tt.expected, got)
			}
			if tt.expected && string(tt.dst[:len(tt.data)]) != string(tt.data) {
				t.Errorf("buffer not filled: %q", tt.dst)
			}
		})
	}
}

func TestRecoverTo(t *testing.T) {
	fn := func() (code int) {
		defer recoverTo("test", &code, -1)
		panic("boom")
	}
	if got := fn(); got != -1 {
		t.Errorf("expected -1, got %d", got)
	}
}
