package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// coverArtHandoff calls getCoverArt with C outputs preset to marker values
// and reports whether they were written. Go tests cannot use cgo directly.
func coverArtHandoff() (rc int, data []byte, touched bool) {
	marker := C.malloc(1)
	defer C.free(marker)

	out := (*C.uchar)(marker)
	outLen := C.long(-1)
	rc = int(getCoverArt(&out, &outLen))
	touched = out != (*C.uchar)(marker) || outLen != -1

	if rc == 1 {
		data = C.GoBytes(unsafe.Pointer(out), C.int(outLen))
		freeCoverArt(out)
	}
	return rc, data, touched
}

// coverArtCopy calls copyCoverArt with a C buffer of the given capacity
func coverArtCopy(capacity int) (rc int, data []byte, required int64) {
	var buf *C.uchar
	if capacity > 0 {
		buf = (*C.uchar)(C.malloc(C.size_t(capacity)))
		defer C.free(unsafe.Pointer(buf))
	}

	req := C.long(-1)
	rc = int(copyCoverArt(buf, C.long(capacity), &req))
	if rc == 1 {
		data = C.GoBytes(unsafe.Pointer(buf), C.int(req))
	}
	return rc, data, int64(req)
}
