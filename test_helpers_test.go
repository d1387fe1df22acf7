package realip

import (
	"context"
	"net/http"
	"sync"
)

// recordingMetrics counts resolution outcomes and security events for
// assertions.
type recordingMetrics struct {
	mu          sync.Mutex
	resolutions map[string]int
	events      map[string]int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{
		resolutions: make(map[string]int),
		events:      make(map[string]int),
	}
}

func (m *recordingMetrics) RecordResolution(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions[outcome]++
}

func (m *recordingMetrics) RecordSecurityEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[event]++
}

func (m *recordingMetrics) resolutionCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolutions[outcome]
}

func (m *recordingMetrics) eventCount(event string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[event]
}

// recordingLogger captures warning messages and their attributes.
type recordingLogger struct {
	mu      sync.Mutex
	entries []loggedWarning
}

type loggedWarning struct {
	msg   string
	attrs []any
}

func (l *recordingLogger) WarnContext(_ context.Context, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, loggedWarning{msg: msg, attrs: args})
}

func (l *recordingLogger) warnings() []loggedWarning {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]loggedWarning(nil), l.entries...)
}

// newRequest builds a minimal request with the given peer address and header
// name/value pairs.
func newRequest(remoteAddr string, headerPairs ...string) *http.Request {
	header := make(http.Header)
	for i := 0; i+1 < len(headerPairs); i += 2 {
		header.Add(headerPairs[i], headerPairs[i+1])
	}

	return &http.Request{
		RemoteAddr: remoteAddr,
		Header:     header,
	}
}
