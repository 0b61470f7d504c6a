package fswatcher

import (
	"io/fs"
	"time"
)

// Event represents a single file system notification
type Event struct {
	Name string // Path to the file or directory
	Op   Op     // File operation that triggered the event.
}

// Op describes a type of event
type Op uint32

// Operations
const (
	Create Op = 1 << iota
	Write
	Remove
)

func (op Op) String() string {
	switch op {
	case Create:
		return "CREATE"
	case Write:
		return "WRITE"
	case Remove:
		return "REMOVE"
	}
	return "?"
}

// FsWatcher reports changes of watched paths. All events detected by one
// scan are delivered together.
type FsWatcher interface {
	Changes() <-chan []Event
	Errors() <-chan error
	Add(name string) error
	Close() error
	Start(interval time.Duration) error
	AddShouldSkipHook(func(name string, fi fs.FileInfo) bool)
}

// NewFsPoller creates a watcher that polls fsys
func NewFsPoller(fsys fs.FS) FsWatcher {
	return newPoller(fsys)
}
