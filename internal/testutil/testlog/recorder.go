// Package testlog provides a logx.Logger that records entries for assertions.
package testlog

import (
	"sync"

	"cargo-platform-go/internal/logx"
)

// Entry is one recorded log call.
type Entry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// Field returns the value of the first field with the given key.
func (e Entry) Field(key string) (any, bool) {
	for _, f := range e.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Recorder collects entries from every logger derived from it.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// New returns an empty Recorder.
func New() *Recorder { return &Recorder{} }

// Logger returns a logger writing into r.
func (r *Recorder) Logger() logx.Logger {
	return recordingLogger{r: r}
}

// Entries returns a copy of what was recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Find returns the first entry with the given message.
func (r *Recorder) Find(msg string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Msg == msg {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether an entry with the given message was recorded.
func (r *Recorder) Has(msg string) bool {
	_, ok := r.Find(msg)
	return ok
}

// Count returns how many entries carry the given message.
func (r *Recorder) Count(msg string) int {
	n := 0
	for _, e := range r.Entries() {
		if e.Msg == msg {
			n++
		}
	}
	return n
}

func (r *Recorder) record(level, msg string, base, fields []logx.Field) {
	all := make([]logx.Field, 0, len(base)+len(fields))
	all = append(all, base...)
	all = append(all, fields...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, Fields: all})
}

type recordingLogger struct {
	r    *Recorder
	base []logx.Field
}

func (l recordingLogger) Debug(msg string, f ...logx.Field) { l.r.record("debug", msg, l.base, f) }
func (l recordingLogger) Info(msg string, f ...logx.Field)  { l.r.record("info", msg, l.base, f) }
func (l recordingLogger) Warn(msg string, f ...logx.Field)  { l.r.record("warn", msg, l.base, f) }
func (l recordingLogger) Error(msg string, f ...logx.Field) { l.r.record("error", msg, l.base, f) }

func (l recordingLogger) With(f ...logx.Field) logx.Logger {
	base := make([]logx.Field, 0, len(l.base)+len(f))
	base = append(base, l.base...)
	base = append(base, f...)
	return recordingLogger{r: l.r, base: base}
}

func (l recordingLogger) Sync() error { return nil }

var _ logx.Logger = recordingLogger{}
