package activity

import (
	"context"
	"sync"
)

// CaptureHook buffers override mutation events so tests and debug tooling can
// assert on what a resolver emitted. Events are normalized on receipt, the
// same way real sinks see them.
type CaptureHook struct {
	Events []Event
	Err    error
	mu     sync.Mutex
}

// Notify records the event and returns any configured error.
func (h *CaptureHook) Notify(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Events = append(h.Events, NormalizeEvent(event))
	return h.Err
}

// SetCount reports how many flag.override.set events were captured.
func (h *CaptureHook) SetCount() int {
	return h.countVerb(VerbOverrideSet)
}

// ClearedCount reports how many flag.override.cleared events were captured.
func (h *CaptureHook) ClearedCount() int {
	return h.countVerb(VerbOverrideCleared)
}

// LastForFlag returns the most recent captured event targeting the flag key.
func (h *CaptureHook) LastForFlag(key string) (Event, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := len(h.Events) - 1; i >= 0; i-- {
		if h.Events[i].ObjectID == key {
			return h.Events[i], true
		}
	}
	return Event{}, false
}

func (h *CaptureHook) countVerb(verb string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, event := range h.Events {
		if event.Verb == verb {
			n++
		}
	}
	return n
}
