package log

import (
	"fmt"
	"time"
)

type Level int

const (
	InfoLevel Level = iota
	WarningLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case InfoLevel:
		return "INFO"
	case WarningLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	}
	return "?"
}

// Record is a single formatted log message
type Record struct {
	Level   Level
	Message string
	Time    time.Time
}

// ChanLog sends records into a channel. Records are dropped when
// nobody reads them and the buffer is full.
type ChanLog struct {
	records chan Record
	next    Logger // optional, receives every record too
}

func NewChanLog(size int, next Logger) *ChanLog {
	if next == nil {
		next = NewEmptyLog()
	}
	return &ChanLog{records: make(chan Record, size), next: next}
}

func (l *ChanLog) Records() <-chan Record { return l.records }

func (l *ChanLog) send(level Level, format string, v ...any) {
	select {
	case l.records <- Record{Level: level, Message: fmt.Sprintf(format, v...), Time: time.Now()}:
	default:
	}
}

func (l *ChanLog) Error(format string, v ...any) {
	l.send(ErrorLevel, format, v...)
	l.next.Error(format, v...)
}

func (l *ChanLog) Warning(format string, v ...any) {
	l.send(WarningLevel, format, v...)
	l.next.Warning(format, v...)
}

func (l *ChanLog) Info(format string, v ...any) {
	l.send(InfoLevel, format, v...)
	l.next.Info(format, v...)
}

func (l *ChanLog) Close() error {
	return l.next.Close()
}
