package watcher

import (
	"fmt"
	"strings"

	"github.com/gookit/color"

	"github.com/Lonely-Student/StaticSite/pkg/fswatcher"
	"github.com/Lonely-Student/StaticSite/pkg/log"
)

func printChanges(events []fswatcher.Event, limit int, maxWidth int) string {
	var b strings.Builder
	maxWidth = max(maxWidth-12, 20)
	for i, e := range events {
		if i >= limit {
			fmt.Fprintf(&b, "and %d more changes...\n", len(events)-limit)
			break
		}
		fmt.Fprintf(&b, " - %-6s %s\n", e.Op, color.Cyan.Sprint(tail(e.Name, maxWidth)))
	}
	return b.String()
}

func printRecord(r log.Record) string {
	level := r.Level.String()
	switch r.Level {
	case log.ErrorLevel:
		level = color.Red.Sprint(level)
	case log.WarningLevel:
		level = color.Yellow.Sprint(level)
	default:
		level = color.Gray.Sprint(level)
	}
	return fmt.Sprintf("%s %s %s", r.Time.Format("15:04:05"), level, r.Message)
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return "..." + string(r[len(r)-(n-3):])
}
