package watcher

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Lonely-Student/StaticSite/pkg/fswatcher"
	"github.com/Lonely-Student/StaticSite/pkg/log"
	"github.com/Lonely-Student/StaticSite/pkg/site"
)

type changesMsg []fswatcher.Event

type watchErrMsg struct{ err error }

type buildMsg struct {
	report site.Report
	err    error
}

// closed channels produce nil messages, so the listener stops
func waitForChanges(w fswatcher.FsWatcher) tea.Cmd {
	return func() tea.Msg {
		events, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return changesMsg(events)
	}
}

func waitForErrors(w fswatcher.FsWatcher) tea.Cmd {
	return func() tea.Msg {
		err, ok := <-w.Errors()
		if !ok {
			return nil
		}
		return watchErrMsg{err}
	}
}

func waitForLogs(records <-chan log.Record) tea.Cmd {
	if records == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-records
		if !ok {
			return nil
		}
		return r
	}
}

func startWatcher(m model) tea.Cmd {
	return func() tea.Msg {
		if err := m.watcher.Start(m.opts.Interval); err != nil {
			return watchErrMsg{err}
		}
		return nil
	}
}

func build(b Builder) tea.Cmd {
	return func() tea.Msg {
		report, err := b.Build()
		return buildMsg{report: report, err: err}
	}
}
