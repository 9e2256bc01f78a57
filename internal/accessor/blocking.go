package accessor

import (
	"context"
	"errors"
	"fmt"

	"github.com/genricoloni/mediabridge/internal/domain"
	"go.uber.org/zap"
)

type result[T any] struct {
	v   T
	err error
}

// call runs fn on its own goroutine bounded by the accessor timeout.
// The caller gets ErrUnavailable once the deadline passes even if fn ignores
// its context; fn then finishes in the background and its result is dropped.
// A panic inside fn is recovered and reported as ErrInternal.
func call[T any](ctx context.Context, a *Accessors, op string, fn func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan result[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("Recovered panic in media query",
					zap.String("op", op),
					zap.Any("panic", r),
					zap.Stack("stack"))
				done <- result[T]{err: fmt.Errorf("%w: %s: %v", domain.ErrInternal, op, r)}
			}
		}()
		v, err := fn(ctx)
		done <- result[T]{v: v, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil && isTimeout(r.err) && !errors.Is(r.err, domain.ErrUnavailable) {
			r.err = fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, r.err)
		}
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, op, ctx.Err())
	}
}

// query obtains a valid session and runs exactly one property query on it
func query[T any](ctx context.Context, a *Accessors, op string, fn func(context.Context, domain.Session) (T, error)) (T, error) {
	return call(ctx, a, op, func(ctx context.Context) (T, error) {
		var zero T

		s, err := a.sessions.Get(ctx)
		if err != nil {
			return zero, err
		}
		if s == nil {
			return zero, domain.ErrSessionNotFound
		}

		v, err := fn(ctx, s)
		if err != nil {
			if errors.Is(err, domain.ErrSessionVanished) {
				a.sessions.Invalidate(s)
			}
			return zero, err
		}
		return v, nil
	})
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
