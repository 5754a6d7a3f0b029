package logging

import (
	"context"
	"sync"
)

type FakeLogRecord struct {
	Level   string
	Msg     string
	Entries []LogEntry
}

type FakeLogger struct {
	Logged []FakeLogRecord
	lock   sync.Mutex
}

func NewFakeLogger() *FakeLogger {
	return &FakeLogger{}
}

func (l *FakeLogger) Debug(ctx context.Context, msg string, entries ...LogEntry) {
	l.append("debug", msg, entries)
}

func (l *FakeLogger) Info(ctx context.Context, msg string, entries ...LogEntry) {
	l.append("info", msg, entries)
}

func (l *FakeLogger) Warning(ctx context.Context, msg string, entries ...LogEntry) {
	l.append("warning", msg, entries)
}

func (l *FakeLogger) Error(ctx context.Context, msg string, entries ...LogEntry) {
	l.append("error", msg, entries)
}

// Records returns a copy of the logged records, safe to read while other
// goroutines keep logging.
func (l *FakeLogger) Records() []FakeLogRecord {
	l.lock.Lock()
	defer l.lock.Unlock()
	records := make([]FakeLogRecord, len(l.Logged))
	copy(records, l.Logged)
	return records
}

func (l *FakeLogger) append(level string, msg string, entries []LogEntry) {
	l.lock.Lock()
	defer l.lock.Unlock()
	l.Logged = append(l.Logged, FakeLogRecord{Level: level, Msg: msg, Entries: entries})
}
