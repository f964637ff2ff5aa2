package testsupport

import (
	"sync"
	"testing"
	"time"

	"gstplayer/internal/native"
)

// Event kinds recorded by EventRecorder.
const (
	EventLoaded       = "loaded"
	EventStateChanged = "state_changed"
	EventEOS          = "eos"
	EventError        = "error"
	EventElement      = "element"
)

// RecordedEvent is one native.Events callback.
type RecordedEvent struct {
	Kind     string
	Source   string
	Message  string
	Debug    string
	NewState native.State
	OldState native.State
}

// EventRecorder implements native.Events and keeps every callback.
type EventRecorder struct {
	mu     sync.Mutex
	events []RecordedEvent
}

func (r *EventRecorder) add(ev RecordedEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *EventRecorder) PlayerLoaded() { r.add(RecordedEvent{Kind: EventLoaded}) }

func (r *EventRecorder) PipelineStateChanged(newState, oldState native.State) {
	r.add(RecordedEvent{Kind: EventStateChanged, NewState: newState, OldState: oldState})
}

func (r *EventRecorder) PipelineEOS() { r.add(RecordedEvent{Kind: EventEOS}) }

func (r *EventRecorder) PipelineError(source, message, debugInfo string) {
	r.add(RecordedEvent{Kind: EventError, Source: source, Message: message, Debug: debugInfo})
}

func (r *EventRecorder) ElementMessage(element, message string) {
	r.add(RecordedEvent{Kind: EventElement, Source: element, Message: message})
}

// Events returns a snapshot of the recorded callbacks.
func (r *EventRecorder) Events() []RecordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]RecordedEvent(nil), r.events...)
}

// OfKind returns the recorded callbacks of one kind.
func (r *EventRecorder) OfKind(kind string) []RecordedEvent {
	var out []RecordedEvent
	for _, ev := range r.Events() {
		if ev.Kind == kind {
			out = append(out, ev)
		}
	}
	return out
}

// WaitFor blocks until at least count events of kind were recorded.
func (r *EventRecorder) WaitFor(t testing.TB, kind string, count int) []RecordedEvent {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for {
		matches := r.OfKind(kind)
		if len(matches) >= count {
			return matches
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d %s events, got %d: %+v", count, kind, len(matches), r.Events())
		}
		time.Sleep(5 * time.Millisecond)
	}
}
