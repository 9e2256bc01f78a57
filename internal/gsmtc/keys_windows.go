//go:build windows

package gsmtc

import (
	"fmt"
	"unsafe"

	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/lxn/win"
)

func virtualKey(key domain.MediaKey) (uint16, bool) {
	switch key {
	case domain.KeyPlayPause:
		return win.VK_MEDIA_PLAY_PAUSE, true
	case domain.KeyNext:
		return win.VK_MEDIA_NEXT_TRACK, true
	case domain.KeyPrevious:
		return win.VK_MEDIA_PREV_TRACK, true
	default:
		return 0, false
	}
}

// sendMediaKey injects a key press and release of the media virtual key
func sendMediaKey(key domain.MediaKey) error {
	vk, ok := virtualKey(key)
	if !ok {
		return fmt.Errorf("unknown media key: %d", key)
	}

	inputs := [2]win.KEYBD_INPUT{
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk}},
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk, DwFlags: win.KEYEVENTF_KEYUP}},
	}
	if n := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0]))); n != uint32(len(inputs)) {
		return fmt.Errorf("SendInput injected %d of %d events", n, len(inputs))
	}
	return nil
}
