package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/senenv/shellmenu/api/v1beta1"
	"github.com/senenv/shellmenu/pkg/log"
)

const defaultDebounce = 100 * time.Millisecond

var (
	ErrWatcherStarted = errors.New("watcher already started")
	ErrWatcherClosed  = errors.New("fsnotify channel closed")
)

// Update is the result of reloading a watched file. Exactly one of Config
// and Err is set.
type Update[T v1beta1.Object] struct {
	Config T
	Err    error
}

// WatcherOpt configures a [Watcher].
type WatcherOpt func(*watcherOptions)

type watcherOptions struct {
	debounce time.Duration
}

// WithDebounce sets how long the file must be quiet before it is reloaded.
func WithDebounce(d time.Duration) WatcherOpt {
	return func(o *watcherOptions) {
		o.debounce = d
	}
}

// Watcher reloads a configuration file when it changes and sends each result
// on [Watcher.Updates]. The parent directory is watched, so files replaced by
// rename (as most editors save) are still seen.
//
// [Watcher.Run] closes the underlying fsnotify watcher when it returns. A
// watcher that is never run must be released with [Watcher.Close].
type Watcher[T v1beta1.Object] struct {
	fsw      *fsnotify.Watcher
	close    func() error
	load     func(ctx context.Context, path string) (T, error)
	updates  chan Update[T]
	path     string
	debounce time.Duration
	started  atomic.Bool
}

// NewWatcher creates a [Watcher] for path. The load function is called for
// every change, typically a closure over [LoadFile].
func NewWatcher[T v1beta1.Object](
	path string,
	load func(ctx context.Context, path string) (T, error),
	opts ...WatcherOpt,
) (*Watcher[T], error) {
	options := &watcherOptions{debounce: defaultDebounce}
	for _, opt := range opts {
		opt(options)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	err = fsw.Add(filepath.Dir(absPath))
	if err != nil {
		_ = fsw.Close()

		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(absPath), err)
	}

	return &Watcher[T]{
		fsw:      fsw,
		close:    sync.OnceValue(fsw.Close),
		load:     load,
		updates:  make(chan Update[T]),
		path:     absPath,
		debounce: options.debounce,
	}, nil
}

// Updates returns the channel reload results are sent on. It is closed when
// [Watcher.Run] returns.
func (w *Watcher[T]) Updates() <-chan Update[T] {
	return w.updates
}

// Close stops watching the file. It is safe to call more than once, and
// after [Watcher.Run] has returned.
func (w *Watcher[T]) Close() error {
	err := w.close()
	if err != nil {
		return fmt.Errorf("close fsnotify watcher: %w", err)
	}

	return nil
}

// Run processes file events until ctx is cancelled. It returns nil on
// cancellation. Run may only be called once.
func (w *Watcher[T]) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return ErrWatcherStarted
	}

	defer close(w.updates)

	defer func() {
		err := w.Close()
		if err != nil {
			slog.Debug("close watcher", slog.Any("err", err))
		}
	}()

	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()

			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}

			if filepath.Clean(evt.Name) != w.path || evt.Has(fsnotify.Chmod) {
				continue
			}

			log.WithContext(ctx).DebugContext(ctx, "config changed",
				slog.String("path", w.path),
				slog.String("op", evt.Op.String()),
			)
			timer.Reset(w.debounce)

		case <-timer.C:
			cfg, err := w.load(ctx, w.path)

			select {
			case w.updates <- Update[T]{Config: cfg, Err: err}:
			case <-ctx.Done():
				return nil
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}

			log.WithContext(ctx).WarnContext(ctx, "watch config",
				slog.String("path", w.path),
				slog.Any("err", err),
			)
		}
	}
}
