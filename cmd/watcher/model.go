// Package watcher is the terminal UI of watch mode: it rebuilds the site on
// every batch of file changes and shows the outcome of the last build.
package watcher

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gookit/color"

	"github.com/Lonely-Student/StaticSite/pkg/fswatcher"
	"github.com/Lonely-Student/StaticSite/pkg/log"
	"github.com/Lonely-Student/StaticSite/pkg/site"
)

const (
	logLimit     = 10
	changesLimit = 5
)

type Builder interface {
	Build() (site.Report, error)
}

type Options struct {
	Root     string
	Interval time.Duration
}

type model struct {
	builder Builder
	watcher fswatcher.FsWatcher
	records <-chan log.Record
	opts    Options
	keys    keyMap
	help    help.Model
	width   int

	building bool
	pending  bool // sources changed while building
	builds   int
	report   site.Report
	err      error
	changes  []fswatcher.Event
	logs     []log.Record
	showLog  bool
	quitting bool
}

// New returns the model of watch mode. records may be nil.
// The first build is started by Init.
func New(b Builder, w fswatcher.FsWatcher, records <-chan log.Record, opts Options) tea.Model {
	return model{
		builder:  b,
		watcher:  w,
		records:  records,
		opts:     opts,
		keys:     keys,
		help:     help.New(),
		width:    80,
		building: true,
	}
}

// Init optionally returns an initial command we should run.
func (m model) Init() tea.Cmd {
	return tea.Batch(
		build(m.builder),
		startWatcher(m),
		waitForChanges(m.watcher),
		waitForErrors(m.watcher),
		waitForLogs(m.records),
	)
}

// rebuild starts a build unless one is running. Only one build runs at a time,
// a request during a build is remembered and served when it finishes.
func (m model) rebuild() (model, tea.Cmd) {
	if m.building {
		m.pending = true
		return m, nil
	}
	m.pending = false
	m.building = true
	return m, build(m.builder)
}

// Update is called when messages are received. The idea is that you inspect the
// message and send back an updated model accordingly. You can also return
// a command, which is a function that performs I/O and returns a message.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.watcher.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rebuild):
			return m.rebuild()
		case key.Matches(msg, m.keys.Log):
			m.showLog = !m.showLog
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case changesMsg:
		m.changes = msg
		next, cmd := m.rebuild()
		return next, tea.Batch(cmd, waitForChanges(m.watcher))
	case buildMsg:
		m.building = false
		m.builds++
		m.report, m.err = msg.report, msg.err
		if m.pending {
			return m.rebuild()
		}
		return m, nil
	case watchErrMsg:
		m.err = msg.err
		return m, waitForErrors(m.watcher)
	case log.Record:
		m.logs = append(m.logs, msg)
		if len(m.logs) > logLimit {
			m.logs = m.logs[len(m.logs)-logLimit:]
		}
		return m, waitForLogs(m.records)
	}
	return m, nil
}

func (m model) status() string {
	switch {
	case m.building:
		return fmt.Sprintf(" %s  building...", color.Yellow.Sprint("●"))
	case m.err != nil:
		return fmt.Sprintf(" %s  %s", color.Red.Sprint("✗"), m.err)
	}
	return fmt.Sprintf(" %s  %d pages, %d static files in %s",
		color.Green.Sprint("✓"), len(m.report.Pages), len(m.report.Static), m.report.Elapsed.Round(time.Millisecond))
}

// View returns a string based on data in the model. That string which will be
// rendered to the terminal.
func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, " %s  Watch path: %s\n", color.Green.Sprint("➜"), color.Cyan.Sprint(m.opts.Root))
	b.WriteString(m.status())
	b.WriteString("\n")
	if len(m.changes) > 0 {
		b.WriteString("\nLast changes:\n")
		b.WriteString(printChanges(m.changes, changesLimit, m.width))
	}
	if m.showLog {
		b.WriteString("\nLog:\n")
		for _, r := range m.logs {
			b.WriteString(printRecord(r))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
