package gsmtc

import (
	"testing"

	"github.com/genricoloni/mediabridge/internal/domain"
)

func TestStatusFromWinRT(t *testing.T) {
	tests := []struct {
		value    int32
		expected domain.PlaybackStatus
	}{
		{0, domain.StatusClosed},
		{1, domain.StatusOpened},
		{2, domain.StatusChanging},
		{3, domain.StatusStopped},
		{4, domain.StatusPlaying},
		{5, domain.StatusPaused},
		{6, domain.StatusClosed},
		{-1, domain.StatusClosed},
	}

	for _, tt := range tests {
		if got := statusFromWinRT(tt.value); got != tt.expected {
			t.Errorf("statusFromWinRT(%d): expected %v, got %v", tt.value, tt.expected, got)
		}
	}
}
