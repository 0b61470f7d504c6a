package watcher

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lonely-Student/StaticSite/pkg/fswatcher"
	"github.com/Lonely-Student/StaticSite/pkg/log"
	"github.com/Lonely-Student/StaticSite/pkg/site"
)

type fakeBuilder struct {
	calls  int
	report site.Report
	err    error
}

func (b *fakeBuilder) Build() (site.Report, error) {
	b.calls++
	return b.report, b.err
}

type fakeWatcher struct {
	changes chan []fswatcher.Event
	errors  chan error
	closed  bool
}

func newFakeWatcher() *fakeWatcher {
	return &fakeWatcher{changes: make(chan []fswatcher.Event, 1), errors: make(chan error, 1)}
}

func (w *fakeWatcher) Changes() <-chan []fswatcher.Event { return w.changes }
func (w *fakeWatcher) Errors() <-chan error { return w.errors }
func (w *fakeWatcher) Add(string) error { return nil }
func (w *fakeWatcher) Start(time.Duration) error { return nil }
func (w *fakeWatcher) AddShouldSkipHook(func(string, fs.FileInfo) bool) {}
func (w *fakeWatcher) Close() error {
	w.closed = true
	return nil
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(model)
	require.True(t, ok)
	return mm, cmd
}

// idle returns a model whose first build has finished
func idle(t *testing.T, b Builder, w fswatcher.FsWatcher, opts Options) model {
	t.Helper()
	mm, cmd := update(t, New(b, w, nil, opts), buildMsg{})
	require.Nil(t, cmd)
	require.False(t, mm.building)
	return mm
}

func TestRebuildKey(t *testing.T) {
	b := &fakeBuilder{report: site.Report{Pages: make([]site.Page, 2), Static: []string{"a.css"}}}
	m := idle(t, b, newFakeWatcher(), Options{Root: "/project"})

	mm, cmd := update(t, m, keyPress("r"))
	require.NotNil(t, cmd)
	assert.True(t, mm.building)
	assert.Contains(t, mm.View(), "building")

	msg := cmd()
	assert.Equal(t, 1, b.calls)
	mm, next := update(t, mm, msg)
	assert.Nil(t, next)
	assert.False(t, mm.building)
	assert.Equal(t, 2, mm.builds)
	view := mm.View()
	assert.Contains(t, view, "2 pages, 1 static files")
	assert.Contains(t, view, "/project")
}

func TestBuildError(t *testing.T) {
	b := &fakeBuilder{err: errors.New("content/a.md: no title")}
	m := idle(t, b, newFakeWatcher(), Options{})

	mm, cmd := update(t, m, keyPress("r"))
	mm, _ = update(t, mm, cmd())
	assert.Contains(t, mm.View(), "content/a.md: no title")
}

func TestChangesTriggerBuild(t *testing.T) {
	b := &fakeBuilder{}
	m := idle(t, b, newFakeWatcher(), Options{})

	events := []fswatcher.Event{{Name: "content/index.md", Op: fswatcher.Write}}
	mm, cmd := update(t, m, changesMsg(events))
	require.NotNil(t, cmd)
	assert.True(t, mm.building)
	assert.False(t, mm.pending)
	assert.Contains(t, mm.View(), "content/index.md")
}

func TestFirstBuildInFlight(t *testing.T) {
	b := &fakeBuilder{}
	m := New(b, newFakeWatcher(), nil, Options{})
	assert.True(t, m.(model).building)

	// the change waits for the first build instead of starting a second one
	mm, _ := update(t, m, changesMsg{{Name: "content/index.md", Op: fswatcher.Write}})
	assert.True(t, mm.pending)
	mm, _ = update(t, mm, keyPress("r"))
	assert.True(t, mm.pending)
	assert.Equal(t, 0, b.calls)

	mm, cmd := update(t, mm, buildMsg{})
	require.NotNil(t, cmd)
	assert.True(t, mm.building)
	assert.False(t, mm.pending)
}

func TestChangeDuringBuild(t *testing.T) {
	b := &fakeBuilder{}
	m := idle(t, b, newFakeWatcher(), Options{})

	mm, cmd := update(t, m, keyPress("r"))
	require.NotNil(t, cmd)

	for _, name := range []string{"content/a.md", "content/b.md"} {
		var next tea.Cmd
		mm, next = update(t, mm, changesMsg{{Name: name, Op: fswatcher.Write}})
		require.NotNil(t, next) // keeps listening for changes
		assert.True(t, mm.pending)
	}
	assert.Equal(t, 0, b.calls)

	// running build finishes, exactly one follow-up build starts
	mm, followUp := update(t, mm, cmd())
	require.NotNil(t, followUp)
	assert.True(t, mm.building)
	assert.False(t, mm.pending)
	assert.Equal(t, 1, b.calls)

	mm, last := update(t, mm, followUp())
	assert.Nil(t, last)
	assert.False(t, mm.building)
	assert.Equal(t, 2, b.calls)
	assert.Equal(t, 3, mm.builds)
}

func TestToggleLog(t *testing.T) {
	records := make(chan log.Record, 1)
	m := New(&fakeBuilder{}, newFakeWatcher(), records, Options{})

	mm, cmd := update(t, m, log.Record{Level: log.ErrorLevel, Message: "oops", Time: time.Now()})
	require.NotNil(t, cmd)
	assert.Len(t, mm.logs, 1)
	assert.NotContains(t, mm.View(), "oops")

	mm, _ = update(t, mm, keyPress("l"))
	assert.True(t, mm.showLog)
	assert.Contains(t, mm.View(), "oops")
}

func TestLogLimit(t *testing.T) {
	var m tea.Model = New(&fakeBuilder{}, newFakeWatcher(), make(chan log.Record), Options{})
	for i := 0; i < logLimit+5; i++ {
		m, _ = m.Update(log.Record{Message: "msg"})
	}
	assert.Len(t, m.(model).logs, logLimit)
}

func TestQuit(t *testing.T) {
	w := newFakeWatcher()
	m := New(&fakeBuilder{}, w, nil, Options{})

	mm, cmd := update(t, m, keyPress("q"))
	require.NotNil(t, cmd)
	assert.True(t, w.closed)
	assert.True(t, mm.quitting)
	assert.Equal(t, "", mm.View())
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTail(t *testing.T) {
	assert.Equal(t, "short", tail("short", 10))
	assert.Equal(t, "...56789", tail("0123456789", 8))
}
