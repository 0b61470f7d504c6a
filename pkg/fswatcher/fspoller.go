package fswatcher

import (
	"errors"
	"io/fs"
	"sort"
	"sync"
	"time"
)

const MinInterval = time.Millisecond * 20

var ErrClosed = errors.New("poller is closed")

// snapshot is the part of fs.FileInfo that signals a change
type snapshot struct {
	modTime time.Time
	size    int64
	isDir   bool
}

// fsPoller is polling implementation of FsWatcher interface
type fsPoller struct {
	watches    map[string]struct{}
	files      map[string]snapshot
	changes    chan []Event
	errors     chan error
	done       chan struct{}
	shouldSkip func(string, fs.FileInfo) bool
	fsys       fs.FS
	running    bool

	mu     sync.Mutex
	closed bool
}

func newPoller(fsys fs.FS) *fsPoller {
	return &fsPoller{
		watches: map[string]struct{}{},
		files:   map[string]snapshot{},
		changes: make(chan []Event),
		errors:  make(chan error),
		done:    make(chan struct{}),
		fsys:    fsys,
	}
}

func (p *fsPoller) AddShouldSkipHook(fn func(string, fs.FileInfo) bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shouldSkip = fn
}

// Add adds a file or a directory (recursively) to the list of watched paths
func (p *fsPoller) Add(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	list, err := p.list(name)
	if err != nil {
		return err
	}
	for fname, s := range list {
		p.files[fname] = s
	}
	p.watches[name] = struct{}{}
	return nil
}

// list returns snapshots of name and, if it is a directory, of everything inside it
func (p *fsPoller) list(name string) (map[string]snapshot, error) {
	files := map[string]snapshot{}
	err := fs.WalkDir(p.fsys, name, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		fi, err := d.Info()
		if err != nil {
			return err
		}
		if path != name && p.shouldSkip != nil && p.shouldSkip(path, fi) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		files[path] = snapshot{modTime: fi.ModTime(), size: fi.Size(), isDir: fi.IsDir()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// scan compares the current state of watched paths with the saved one
func (p *fsPoller) scan() ([]Event, []error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := map[string]snapshot{}
	var errs []error
	for name := range p.watches {
		list, err := p.list(name)
		if err != nil {
			// a removed watch root is reported through its Remove event
			if !errors.Is(err, fs.ErrNotExist) {
				errs = append(errs, err)
			}
			continue
		}
		for fname, s := range list {
			current[fname] = s
		}
	}

	events := []Event{}
	for name, old := range p.files {
		s, ok := current[name]
		switch {
		case !ok:
			events = append(events, Event{Name: name, Op: Remove})
		case !s.isDir && (s.modTime != old.modTime || s.size != old.size):
			events = append(events, Event{Name: name, Op: Write})
		}
	}
	for name := range current {
		if _, ok := p.files[name]; !ok {
			events = append(events, Event{Name: name, Op: Create})
		}
	}
	p.files = current

	sort.Slice(events, func(i, j int) bool { return events[i].Name < events[j].Name })
	return events, errs
}

// Start polls watched paths every interval until the poller is closed
func (p *fsPoller) Start(interval time.Duration) error {
	if interval < MinInterval {
		interval = MinInterval
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrClosed
	}
	if p.running {
		p.mu.Unlock()
		return errors.New("watcher is already running")
	}
	p.running = true
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return nil
		case <-ticker.C:
		}

		events, errs := p.scan()
		for _, err := range errs {
			select {
			case p.errors <- err:
			case <-p.done:
				return nil
			}
		}
		if len(events) == 0 {
			continue
		}
		select {
		case p.changes <- events:
		case <-p.done:
			return nil
		}
	}
}

func (p *fsPoller) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	close(p.done)
	p.closed = true
	p.running = false
	return nil
}

func (p *fsPoller) Errors() <-chan error {
	return p.errors
}

func (p *fsPoller) Changes() <-chan []Event {
	return p.changes
}
