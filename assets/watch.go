package assets

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watcher reports edits to tunables and policy scripts under a set of
// directories. Events carries the path of each changed file once the file
// has been quiet for watchDebounce, so an editor that truncates and then
// writes is reported after the final write.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once

	mu      sync.Mutex
	pending map[string]*time.Timer
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		pending: make(map[string]*time.Timer),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		w.mu.Lock()
		for name, t := range w.pending {
			t.Stop()
			delete(w.pending, name)
		}
		w.mu.Unlock()
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !IsTunablesFile(event.Name) && !IsScriptFile(event.Name) {
				continue
			}
			w.touch(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// touch restarts the quiet period for name.
func (w *Watcher) touch(name string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	select {
	case <-w.closeCh:
		return
	default:
	}
	if t, ok := w.pending[name]; ok {
		t.Reset(watchDebounce)
		return
	}
	w.pending[name] = time.AfterFunc(watchDebounce, func() { w.emit(name) })
}

func (w *Watcher) emit(name string) {
	w.mu.Lock()
	delete(w.pending, name)
	w.mu.Unlock()
	select {
	case w.Events <- name:
	case <-w.closeCh:
	}
}

// IsTunablesFile reports whether path names a fighter tunables file.
func IsTunablesFile(path string) bool {
	return filepath.Base(path) == tunablesFile
}

func IsScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".lua"
}
