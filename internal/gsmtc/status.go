package gsmtc

import "github.com/genricoloni/mediabridge/internal/domain"

// statusFromWinRT maps GlobalSystemMediaTransportControlsSessionPlaybackStatus
func statusFromWinRT(v int32) domain.PlaybackStatus {
	switch v {
	case 0:
		return domain.StatusClosed
	case 1:
		return domain.StatusOpened
	case 2:
		return domain.StatusChanging
	case 3:
		return domain.StatusStopped
	case 4:
		return domain.StatusPlaying
	case 5:
		return domain.StatusPaused
	default:
		return domain.StatusClosed
	}
}
