// Package watch reports projects being opened and closed by the host
// application, by watching the directories their lock files live in.
package watch

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/arthur-debert/projclone/pkg/errors"
	"github.com/arthur-debert/projclone/pkg/logging"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Event is an open/closed transition of one project
type Event struct {
	Project string
	Open    bool
}

// Detector reports whether a project is open and where its lock file is
type Detector interface {
	DetectOpen(projectPath string) bool
	LockFilePath(projectPath string) string
}

// Watcher emits an Event whenever a watched project's open state changes.
// Filesystem events are debounced; state is re-checked on every tick for
// projects that saw activity.
type Watcher struct {
	detector Detector
	onChange func(Event)
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   zerolog.Logger

	mu       sync.Mutex
	dirs     map[string]string
	lockDirs map[string]string
	state    map[string]bool
	pending  map[string]bool

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher; call Add for each project, then Start
func New(debounce time.Duration, detector Detector, onChange func(Event)) (*Watcher, error) {
	if onChange == nil || detector == nil {
		return nil, errors.New(errors.ErrInvalidInput, "watch needs a detector and a callback")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to create file watcher")
	}
	return &Watcher{
		detector: detector,
		onChange: onChange,
		watcher:  fsw,
		debounce: debounce,
		logger:   logging.GetLogger("watch"),
		dirs:     make(map[string]string),
		lockDirs: make(map[string]string),
		state:    make(map[string]bool),
		pending:  make(map[string]bool),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Add starts watching project. The current state is recorded without
// emitting an event.
func (w *Watcher) Add(project string) error {
	project = filepath.Clean(project)
	lockDir := filepath.Dir(w.detector.LockFilePath(project))

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.watcher.Add(project); err != nil {
		return errors.Wrapf(err, errors.ErrNotFound, "cannot watch %s", project)
	}
	w.dirs[project] = project
	w.lockDirs[lockDir] = project
	w.watchIfDir(lockDir, project)
	w.state[project] = w.detector.DetectOpen(project)
	return nil
}

// Projects returns the watched projects, sorted
func (w *Watcher) Projects() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.state))
	for p := range w.state {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// IsOpen returns the last observed state of project
func (w *Watcher) IsOpen(project string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state[filepath.Clean(project)]
}

// Start processes events in a goroutine
func (w *Watcher) Start() {
	go w.loop()
}

// Stop ends processing and waits for the loop to exit
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stop)
		<-w.done
		_ = w.watcher.Close()
	})
}

func (w *Watcher) loop() {
	defer close(w.done)
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn().Err(err).Msg("Watcher error")

		case <-ticker.C:
			w.flush()
		}
	}
}

// handleEvent marks the owning project pending and starts watching a lock
// directory once it is created
func (w *Watcher) handleEvent(event fsnotify.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()

	name := filepath.Clean(event.Name)
	if project, ok := w.lockDirs[name]; ok && event.Op&fsnotify.Create != 0 {
		w.watchIfDir(name, project)
	}

	parent := filepath.Dir(name)
	if project, ok := w.dirs[parent]; ok {
		w.pending[project] = true
	}
}

// watchIfDir adds dir to the watch list when it exists; callers hold mu
func (w *Watcher) watchIfDir(dir, project string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Debug().Err(err).Str("dir", dir).Msg("Cannot watch lock directory")
		return
	}
	w.dirs[dir] = project
}

func (w *Watcher) flush() {
	w.mu.Lock()
	var events []Event
	for project := range w.pending {
		open := w.detector.DetectOpen(project)
		if open != w.state[project] {
			w.state[project] = open
			events = append(events, Event{Project: project, Open: open})
		}
		delete(w.pending, project)
	}
	w.mu.Unlock()

	sort.Slice(events, func(i, j int) bool { return events[i].Project < events[j].Project })
	for _, e := range events {
		w.logger.Debug().Str("project", e.Project).Bool("open", e.Open).Msg("Project state changed")
		w.onChange(e)
	}
}
