// Command libmediabridge builds the media session bridge as a C shared
// library:
//
//	go build -buildmode=c-shared -o libmediabridge.so ./cmd/libmediabridge
//
// Strings and cover art buffers returned to the caller are allocated with C
// malloc and must be released with freeString and freeCoverArt.
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"strings"
	"unsafe"
)

func main() {}

//export isAvailable
func isAvailable() C.int {
	return C.int(available())
}

//export getPlaybackPosition
func getPlaybackPosition() C.longlong {
	return C.longlong(playbackPosition())
}

//export getTrackDuration
func getTrackDuration() C.longlong {
	return C.longlong(trackDuration())
}

//export getTrackTitle
func getTrackTitle() *C.char {
	return cString(trackTitle())
}

//export getArtistName
func getArtistName() *C.char {
	return cString(artistName())
}

//export isPlaying
func isPlaying() C.int {
	return C.int(playing())
}

// getCoverArt stores a malloc'd copy of the cover art in *out and its length
// in *outLen and returns 1. On failure it returns 0 and leaves both untouched.
//
//export getCoverArt
func getCoverArt(out **C.uchar, outLen *C.long) C.int {
	if out == nil || outLen == nil {
		return 0
	}
	data := coverArt()
	if len(data) == 0 {
		return 0
	}

	p := C.malloc(C.size_t(len(data)))
	if p == nil {
		return 0
	}
	copy(unsafe.Slice((*byte)(p), len(data)), data)

	*out = (*C.uchar)(p)
	*outLen = C.long(len(data))
	return 1
}

// copyCoverArt writes the cover art size to *required and copies the bytes
// into buf when capacity suffices. Returns 1 when buf was filled.
//
//export copyCoverArt
func copyCoverArt(buf *C.uchar, capacity C.long, required *C.long) C.int {
	data := coverArt()
	if required != nil {
		*required = C.long(len(data))
	}
	if buf == nil || capacity <= 0 {
		return 0
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(capacity))
	if !fillBuffer(dst, data) {
		return 0
	}
	return 1
}

//export freeString
func freeString(s *C.char) {
	if s != nil {
		C.free(unsafe.Pointer(s))
	}
}

//export freeCoverArt
func freeCoverArt(p *C.uchar) {
	if p != nil {
		C.free(unsafe.Pointer(p))
	}
}

//export sendMediaKey
func sendMediaKey(key C.int) C.int {
	return C.int(mediaKey(int(key)))
}

//export shutdownBridge
func shutdownBridge() {
	_ = shutdown()
}

// cString returns a malloc'd copy of s, released by freeString
func cString(s string) *C.char {
	if strings.IndexByte(s, 0) >= 0 {
		s = ""
	}
	return C.CString(s)
}
