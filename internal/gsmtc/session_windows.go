//go:build windows

package gsmtc

import (
	"context"
	"fmt"
	"io"
	"unsafe"

	"github.com/genricoloni/mediabridge/internal/domain"
)

// Session wraps one GlobalSystemMediaTransportControlsSession
type Session struct {
	worker *worker
	ref    *comRef
}

// SourceAppID returns the AppUserModelId of the owning application
func (s *Session) SourceAppID(ctx context.Context) (string, error) {
	return do(ctx, s.worker, func() (string, error) {
		id, err := getString(s.ref.ptr, slotSessionAppID)
		if err != nil {
			return "", s.wrap("SourceAppUserModelId", err)
		}
		return id, nil
	})
}

// PlaybackStatus reads PlaybackInfo.PlaybackStatus
func (s *Session) PlaybackStatus(ctx context.Context) (domain.PlaybackStatus, error) {
	return do(ctx, s.worker, func() (domain.PlaybackStatus, error) {
		info, err := getObject(s.ref.ptr, slotSessionPlaybackInfo)
		if err != nil {
			return domain.StatusClosed, s.wrap("GetPlaybackInfo", err)
		}
		defer release(info)

		status, err := getInt32(info, slotPlaybackInfoStatus)
		if err != nil {
			return domain.StatusClosed, s.wrap("PlaybackStatus", err)
		}
		return statusFromWinRT(status), nil
	})
}

// Timeline reads Position and EndTime of the timeline properties
func (s *Session) Timeline(ctx context.Context) (domain.Timeline, error) {
	return do(ctx, s.worker, func() (domain.Timeline, error) {
		var tl domain.Timeline

		props, err := getObject(s.ref.ptr, slotSessionTimeline)
		if err != nil {
			return tl, s.wrap("GetTimelineProperties", err)
		}
		defer release(props)

		pos, err := getInt64(props, slotTimelinePosition)
		if err != nil {
			return tl, s.wrap("Position", err)
		}
		end, err := getInt64(props, slotTimelineEndTime)
		if err != nil {
			return tl, s.wrap("EndTime", err)
		}

		tl.Position = domain.Ticks(pos)
		tl.End = domain.Ticks(end)
		return tl, nil
	})
}

// MediaProperties awaits TryGetMediaPropertiesAsync and reads the text fields
func (s *Session) MediaProperties(ctx context.Context) (domain.MediaProperties, error) {
	return do(ctx, s.worker, func() (domain.MediaProperties, error) {
		var mp domain.MediaProperties

		props, err := s.mediaProperties(ctx)
		if err != nil {
			return mp, err
		}
		defer release(props)

		if mp.Title, err = getString(props, slotPropsTitle); err != nil {
			return mp, s.wrap("Title", err)
		}
		if mp.Artist, err = getString(props, slotPropsArtist); err != nil {
			return mp, s.wrap("Artist", err)
		}
		if mp.Album, err = getString(props, slotPropsAlbumTitle); err != nil {
			return mp, s.wrap("AlbumTitle", err)
		}
		return mp, nil
	})
}

// Thumbnail opens the cover art as a classic IStream
func (s *Session) Thumbnail(ctx context.Context) (domain.ThumbnailStream, error) {
	type opened struct {
		stream uintptr
		size   int64
	}

	o, err := do(ctx, s.worker, func() (opened, error) {
		props, err := s.mediaProperties(ctx)
		if err != nil {
			return opened{}, err
		}
		defer release(props)

		ref, err := getObject(props, slotPropsThumbnail)
		if err != nil {
			return opened{}, s.wrap("Thumbnail", err)
		}
		if ref == 0 {
			return opened{}, domain.ErrEmptyThumbnail
		}
		defer release(ref)

		op, err := getObject(ref, slotStreamRefOpenRead)
		if err != nil {
			return opened{}, s.wrap("OpenReadAsync", err)
		}
		winStream, err := await(ctx, op)
		if err != nil {
			return opened{}, s.wrap("OpenReadAsync", err)
		}
		defer release(winStream)

		ras, err := queryInterface(winStream, iidRandomAccess)
		if err != nil {
			return opened{}, fmt.Errorf("IRandomAccessStream: %w", err)
		}
		defer release(ras)

		var size uint64
		if err := vcall(ras, slotRandomAccessGetSize, uintptr(unsafe.Pointer(&size))); err != nil {
			return opened{}, fmt.Errorf("IRandomAccessStream.Size: %w", err)
		}

		stream, err := createStreamOverRandomAccessStream(ras)
		if err != nil {
			return opened{}, fmt.Errorf("CreateStreamOverRandomAccessStream: %w", err)
		}
		return opened{stream: stream, size: int64(size)}, nil
	})
	if err != nil {
		return nil, err
	}

	return &thumbnailStream{worker: s.worker, ref: newComRef(s.worker, o.stream), size: o.size}, nil
}

// SendKey synthesises the media key; the system routes it to the current session
func (s *Session) SendKey(ctx context.Context, key domain.MediaKey) error {
	return sendMediaKey(key)
}

func (s *Session) mediaProperties(ctx context.Context) (uintptr, error) {
	op, err := getObject(s.ref.ptr, slotSessionMediaProps)
	if err != nil {
		return 0, s.wrap("TryGetMediaPropertiesAsync", err)
	}
	props, err := await(ctx, op)
	if err != nil {
		return 0, s.wrap("TryGetMediaPropertiesAsync", err)
	}
	return props, nil
}

func (s *Session) wrap(op string, err error) error {
	if isVanished(err) {
		return fmt.Errorf("%w: %s: %w", domain.ErrSessionVanished, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// thumbnailStream reads an IStream on the worker thread
type thumbnailStream struct {
	worker *worker
	ref    *comRef
	size   int64
}

func (t *thumbnailStream) Size() (int64, error) {
	return t.size, nil
}

func (t *thumbnailStream) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	return do(context.Background(), t.worker, func() (int, error) {
		var n uint32
		if err := vcall(t.ref.ptr, slotStreamRead, uintptr(unsafe.Pointer(&p[0])), uintptr(len(p)), uintptr(unsafe.Pointer(&n))); err != nil {
			return 0, fmt.Errorf("IStream.Read: %w", err)
		}
		if n == 0 {
			return 0, io.EOF
		}
		return int(n), nil
	})
}

func (t *thumbnailStream) Close() error {
	t.ref.Close()
	return nil
}
