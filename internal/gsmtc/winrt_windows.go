//go:build windows

package gsmtc

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"time"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

var (
	iidManagerStatics = ole.NewGUID("{2050C4EE-11A0-57DE-AED7-C97C70338245}")
	iidAsyncInfo      = ole.NewGUID("{00000036-0000-0000-C000-000000000046}")
	iidRandomAccess   = ole.NewGUID("{905A0FE1-BC53-11DF-8C49-001E4FC686DA}")
	iidStream         = ole.NewGUID("{0000000C-0000-0000-C000-000000000046}")

	shcore                                 = windows.NewLazySystemDLL("shcore.dll")
	procCreateStreamOverRandomAccessStream = shcore.NewProc("CreateStreamOverRandomAccessStream")
)

const managerClass = "Windows.Media.Control.GlobalSystemMediaTransportControlsSessionManager"

// vtable slots; 0-2 IUnknown, 3-5 IInspectable
const (
	slotQueryInterface = 0
	slotRelease        = 2

	slotAsyncStatus    = 7 // IAsyncInfo.get_Status
	slotAsyncErrorCode = 8 // IAsyncInfo.get_ErrorCode
	slotAsyncResults   = 8 // IAsyncOperation.GetResults

	slotVectorGetAt = 6
	slotVectorSize  = 7

	slotStaticsRequestAsync = 6
	slotManagerGetSessions  = 7

	slotSessionAppID        = 6
	slotSessionMediaProps   = 7
	slotSessionTimeline     = 8
	slotSessionPlaybackInfo = 9
	slotTimelineEndTime     = 7
	slotTimelinePosition    = 10
	slotPlaybackInfoStatus  = 7
	slotPropsTitle          = 6
	slotPropsArtist         = 9
	slotPropsAlbumTitle     = 10
	slotPropsThumbnail      = 15
	slotStreamRefOpenRead   = 6
	slotRandomAccessGetSize = 6
	slotStreamRead          = 3
)

// AsyncStatus values
const (
	asyncStarted   = 0
	asyncCompleted = 1
	asyncCanceled  = 2
	asyncError     = 3
)

const asyncPollInterval = 2 * time.Millisecond

// HRESULTs reported when the session's process has gone away
const (
	hrDisconnected      = 0x80010108 // RPC_E_DISCONNECTED
	hrServerUnavailable = 0x800706BA // RPC_S_SERVER_UNAVAILABLE
	hrServerDied        = 0x80010007 // RPC_E_SERVER_DIED_DNE
	hrObjectClosed      = 0x80000013 // RO_E_CLOSED
)

// vcall invokes the method at the given vtable slot of a COM object
func vcall(obj uintptr, slot int, args ...uintptr) error {
	if obj == 0 {
		return errors.New("nil COM object")
	}
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	fn := *(*uintptr)(unsafe.Pointer(vtbl + uintptr(slot)*unsafe.Sizeof(uintptr(0))))

	hr, _, _ := syscall.SyscallN(fn, append([]uintptr{obj}, args...)...)
	if int32(hr) < 0 {
		return ole.NewError(hr)
	}
	return nil
}

func release(obj uintptr) {
	if obj != 0 {
		_ = vcall(obj, slotRelease)
	}
}

func queryInterface(obj uintptr, iid *ole.GUID) (uintptr, error) {
	var out uintptr
	if err := vcall(obj, slotQueryInterface, uintptr(unsafe.Pointer(iid)), uintptr(unsafe.Pointer(&out))); err != nil {
		return 0, err
	}
	return out, nil
}

// getObject calls a getter returning an interface pointer
func getObject(obj uintptr, slot int) (uintptr, error) {
	var out uintptr
	if err := vcall(obj, slot, uintptr(unsafe.Pointer(&out))); err != nil {
		return 0, err
	}
	return out, nil
}

func getString(obj uintptr, slot int) (string, error) {
	var h ole.HString
	if err := vcall(obj, slot, uintptr(unsafe.Pointer(&h))); err != nil {
		return "", err
	}
	defer ole.DeleteHString(h)
	return h.String(), nil
}

func getInt64(obj uintptr, slot int) (int64, error) {
	var v int64
	err := vcall(obj, slot, uintptr(unsafe.Pointer(&v)))
	return v, err
}

func getInt32(obj uintptr, slot int) (int32, error) {
	var v int32
	err := vcall(obj, slot, uintptr(unsafe.Pointer(&v)))
	return v, err
}

// await polls an IAsyncOperation until it settles and returns its result
func await(ctx context.Context, op uintptr) (uintptr, error) {
	defer release(op)

	info, err := queryInterface(op, iidAsyncInfo)
	if err != nil {
		return 0, fmt.Errorf("IAsyncInfo: %w", err)
	}
	defer release(info)

	for {
		status, err := getInt32(info, slotAsyncStatus)
		if err != nil {
			return 0, err
		}

		switch status {
		case asyncCompleted:
			return getObject(op, slotAsyncResults)
		case asyncCanceled:
			return 0, errors.New("async operation canceled")
		case asyncError:
			code, err := getInt32(info, slotAsyncErrorCode)
			if err != nil {
				return 0, err
			}
			return 0, ole.NewError(uintptr(uint32(code)))
		}

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(asyncPollInterval):
		}
	}
}

func createStreamOverRandomAccessStream(stream uintptr) (uintptr, error) {
	if err := procCreateStreamOverRandomAccessStream.Find(); err != nil {
		return 0, err
	}
	var out uintptr
	hr, _, _ := procCreateStreamOverRandomAccessStream.Call(stream, uintptr(unsafe.Pointer(iidStream)), uintptr(unsafe.Pointer(&out)))
	if int32(hr) < 0 {
		return 0, ole.NewError(hr)
	}
	return out, nil
}

func isVanished(err error) bool {
	var oe *ole.OleError
	if !errors.As(err, &oe) {
		return false
	}
	switch uint32(oe.Code()) {
	case hrDisconnected, hrServerUnavailable, hrServerDied, hrObjectClosed:
		return true
	}
	return false
}

// comRef owns one reference to a COM object. The reference is released on
// the worker thread once the Go value becomes unreachable.
type comRef struct {
	ptr    uintptr
	worker *worker
}

func newComRef(w *worker, ptr uintptr) *comRef {
	ref := &comRef{ptr: ptr, worker: w}
	runtime.SetFinalizer(ref, func(r *comRef) { r.worker.release(r.ptr) })
	return ref
}

// Close releases the reference immediately
func (r *comRef) Close() {
	runtime.SetFinalizer(r, nil)
	r.worker.release(r.ptr)
	r.ptr = 0
}
