package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genricoloni/mediabridge/internal/accessor"
	"github.com/genricoloni/mediabridge/internal/app"
	"github.com/genricoloni/mediabridge/internal/artwork"
	"github.com/genricoloni/mediabridge/internal/config"
	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/engine"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// AppOptions is the dependency graph of the demo
var AppOptions = fx.Options(
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log}
	}),
	fx.Provide(newLogger),
	app.Module,
)

type options struct {
	watch     bool
	coverOut  string
	coverSize int
	key       string
}

func main() {
	var opts options
	flag.BoolVar(&opts.watch, "watch", false, "print playback changes until interrupted")
	flag.StringVar(&opts.coverOut, "cover-out", "", "write the cover art to this file")
	flag.IntVar(&opts.coverSize, "cover-size", 0, "resize the written cover to fit this many pixels")
	flag.StringVar(&opts.key, "key", "", "send a media key: play-pause, next or previous")
	flag.Parse()

	os.Exit(run(opts, os.Stdout))
}

func run(opts options, out io.Writer) int {
	var (
		acc     *accessor.Accessors
		watcher *engine.Watcher
		proc    *artwork.Processor
	)
	fxApp := fx.New(AppOptions, fx.Populate(&acc, &watcher, &proc))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fxApp.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		return 1
	}
	defer func() {
		stopCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
		defer stop()
		_ = fxApp.Stop(stopCtx)
	}()

	if opts.key != "" {
		key, ok := domain.ParseMediaKey(opts.key)
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown media key %q\n", opts.key)
			return 2
		}
		if err := acc.SendKey(ctx, key); err != nil {
			return report(err)
		}
		fmt.Fprintf(out, "sent %s\n", key)
	}

	if err := printSnapshot(ctx, out, acc); err != nil {
		return report(err)
	}

	if opts.coverOut != "" {
		if err := saveCover(ctx, out, acc, proc, opts); err != nil {
			return report(err)
		}
	}

	if opts.watch {
		watcher.AddListener(&printer{out: out, watcher: watcher})
		if err := watcher.Start(ctx); err != nil {
			return report(err)
		}
		<-ctx.Done()
	}
	return 0
}

func printSnapshot(ctx context.Context, out io.Writer, acc *accessor.Accessors) error {
	available, err := acc.IsAvailable(ctx)
	if err != nil {
		return err
	}
	if !available {
		fmt.Fprintln(out, "Spotify is not running")
		return nil
	}

	title, _ := acc.Title(ctx)
	artist, _ := acc.Artist(ctx)
	playing, err := acc.IsPlaying(ctx)
	position, _ := acc.PlaybackPosition(ctx)
	duration, _ := acc.TrackDuration(ctx)

	state := "paused"
	switch accessor.PlayingCode(playing, err) {
	case 1:
		state = "playing"
	case -1:
		state = "unknown"
	}

	fmt.Fprintf(out, "%s - %s [%s] %s / %s\n", artist, title, state, formatMillis(position), formatMillis(duration))

	if cover, err := acc.CoverArt(ctx); err == nil {
		fmt.Fprintf(out, "cover art: %d bytes\n", len(cover))
	} else {
		fmt.Fprintln(out, "cover art: none")
	}
	return nil
}

func saveCover(ctx context.Context, out io.Writer, acc *accessor.Accessors, proc *artwork.Processor, opts options) error {
	data, err := acc.CoverArt(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrEmptyThumbnail) {
			fmt.Fprintln(out, "no cover art to write")
			return nil
		}
		return err
	}

	path, err := proc.Save(ctx, data, opts.coverOut, opts.coverSize)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "cover art written to %s\n", path)
	return nil
}

// report prints err and maps it to the exit status: OS failures are fatal,
// a missing session is not
func report(err error) int {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return 0
	}
	return 1
}

func formatMillis(ms int64) string {
	if ms < 0 {
		return "--:--"
	}
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// newLogger creates the demo logger at info unless configured otherwise
func newLogger() (*zap.Logger, error) {
	return app.NewLogger(config.LogLevel("info"))
}

// printer writes watcher events to the terminal
type printer struct {
	engine.NopListener
	out     io.Writer
	watcher *engine.Watcher
}

func (p *printer) OnConnect() {
	fmt.Fprintln(p.out, "connected")
}

func (p *printer) OnTrackChanged(t domain.Track) {
	fmt.Fprintf(p.out, "now playing: %s - %s (%s)\n", t.Artist, t.Title, formatMillis(t.Duration))
}

func (p *printer) OnPlaybackChanged(playing bool) {
	if playing {
		fmt.Fprintln(p.out, "playing")
	} else {
		fmt.Fprintln(p.out, "paused")
	}
}

func (p *printer) OnSync() {
	fmt.Fprintf(p.out, "\r%s", formatMillis(p.watcher.Position()))
}

func (p *printer) OnDisconnect(err error) {
	if err != nil {
		fmt.Fprintf(p.out, "\ndisconnected: %v\n", err)
		return
	}
	fmt.Fprintln(p.out, "\nSpotify closed")
}
