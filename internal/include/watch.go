package include

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/born-ml/dataarray/internal/dataclass"
)

// Watcher holds the latest valid definition from a file and reloads it when
// the file changes. Invalid revisions are logged and ignored.
type Watcher struct {
	mu       sync.RWMutex
	def      dataclass.Definition
	path     string
	logger   zerolog.Logger
	watcher  *fsnotify.Watcher
	onChange []func(dataclass.Definition)
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewWatcher loads and validates the definition in path.
func NewWatcher(path string, logger zerolog.Logger) (*Watcher, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("absolute path: %w", err)
	}

	def, err := loadValid(absPath)
	if err != nil {
		return nil, err
	}

	return &Watcher{
		def:    def,
		path:   absPath,
		logger: logger,
		stopCh: make(chan struct{}),
	}, nil
}

func loadValid(path string) (dataclass.Definition, error) {
	def, err := Load(path)
	if err != nil {
		return def, err
	}
	if err := dataclass.Validate(def); err != nil {
		return def, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Definition returns the current definition.
func (w *Watcher) Definition() dataclass.Definition {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.def
}

// OnChange registers fn to be called with every newly loaded definition.
func (w *Watcher) OnChange(fn func(dataclass.Definition)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Reload reads the file again. On error the previous definition is kept.
func (w *Watcher) Reload() error {
	w.logger.Debug().Str("path", w.path).Msg("reloading definition")

	def, err := loadValid(w.path)
	if err != nil {
		w.logger.Error().Err(err).Msg("definition reload failed, keeping previous definition")
		return fmt.Errorf("reload definition: %w", err)
	}

	w.mu.Lock()
	old := w.def
	w.def = def
	listeners := slices.Clone(w.onChange)
	w.mu.Unlock()

	w.logChanges(old, def)
	for _, fn := range listeners {
		fn(def)
	}

	w.logger.Info().Str("class", def.Name).Msg("definition reloaded")
	return nil
}

// ErrStopped is returned by Start after Stop.
var ErrStopped = errors.New("include: watcher stopped")

// Start watches the file until ctx is done or Stop is called. A stopped
// Watcher cannot be restarted.
func (w *Watcher) Start(ctx context.Context) error {
	select {
	case <-w.stopCh:
		return ErrStopped
	default:
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Editors often save by renaming over the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch directory: %w", err)
	}
	w.watcher = watcher

	go w.watchLoop(ctx)

	w.logger.Info().Str("path", w.path).Msg("watching definition for changes")
	return nil
}

// Stop stops watching. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		if w.watcher != nil {
			w.watcher.Close()
		}
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	filename := filepath.Base(w.path)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filename {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.logger.Debug().
				Str("event", event.Op.String()).
				Str("file", event.Name).
				Msg("definition changed")

			if err := w.Reload(); err != nil {
				w.logger.Error().Err(err).Msg("file watch reload failed")
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("file watcher error")

		case <-ctx.Done():
			w.Stop()
			return

		case <-w.stopCh:
			w.watcher.Close()
			return
		}
	}
}

func (w *Watcher) logChanges(old, def dataclass.Definition) {
	if !slices.Equal(old.Dims, def.Dims) {
		w.logger.Info().
			Strs("old", old.Dims).
			Strs("new", def.Dims).
			Msg("dims changed")
	}

	if old.DType != def.DType {
		w.logger.Info().
			Str("old", old.DType).
			Str("new", def.DType).
			Msg("dtype changed")
	}

	if len(old.Coords) != len(def.Coords) {
		w.logger.Info().
			Int("old", len(old.Coords)).
			Int("new", len(def.Coords)).
			Msg("coordinate count changed")
	}
}
