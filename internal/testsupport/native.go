package testsupport

import (
	"sync"

	"gstplayer/internal/native"
)

// NativeCall is one setter invocation seen by NativeRecorder.
type NativeCall struct {
	Method string
	Value  string
	State  native.State
}

// NativeRecorder records the setters a player binding forwards.
type NativeRecorder struct {
	mu            sync.Mutex
	calls         []NativeCall
	propertiesErr error
}

func (n *NativeRecorder) record(call NativeCall) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, call)
}

func (n *NativeRecorder) SetParseLaunchPipeline(description string) error {
	n.record(NativeCall{Method: "SetParseLaunchPipeline", Value: description})
	return nil
}

func (n *NativeRecorder) SetDesiredState(state native.State) error {
	n.record(NativeCall{Method: "SetDesiredState", State: state})
	return nil
}

func (n *NativeRecorder) SetPipelineProperties(document string) error {
	n.record(NativeCall{Method: "SetPipelineProperties", Value: document})
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.propertiesErr
}

// FailProperties makes SetPipelineProperties return err after recording.
func (n *NativeRecorder) FailProperties(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.propertiesErr = err
}

// Calls returns a snapshot of the recorded calls.
func (n *NativeRecorder) Calls() []NativeCall {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]NativeCall(nil), n.calls...)
}

// CallsTo returns the recorded calls of one method.
func (n *NativeRecorder) CallsTo(method string) []NativeCall {
	var out []NativeCall
	for _, call := range n.Calls() {
		if call.Method == method {
			out = append(out, call)
		}
	}
	return out
}

// Reset forgets recorded calls.
func (n *NativeRecorder) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = nil
}
