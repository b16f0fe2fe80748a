package helpers

import (
	"sync"
)

// LogEntry is one captured log call
type LogEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// CapturingLogger records every log call for assertions
type CapturingLogger struct {
	mu      sync.Mutex
	Entries []LogEntry
}

// Log implements common.Logger
func (l *CapturingLogger) Log(level, message string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Entries = append(l.Entries, LogEntry{Level: level, Message: message, Fields: fields})
}

// Messages returns the captured messages at the given level
func (l *CapturingLogger) Messages(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, e := range l.Entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}
