package mocks

import "sync"

// CallLog records call names across several mocks in invocation order.
type CallLog struct {
	mu    sync.Mutex
	calls []string
}

// Record appends name to the log. A nil log ignores the call.
func (l *CallLog) Record(name string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.calls = append(l.calls, name)
	l.mu.Unlock()
}

// Calls returns a copy of the recorded names.
func (l *CallLog) Calls() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}
