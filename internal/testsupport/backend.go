package testsupport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"gstplayer/internal/native"
)

// FakeBackend is an in-memory native.Backend. Elements are created from the
// name=... tokens of the launch description.
type FakeBackend struct {
	mu         sync.Mutex
	launched   []*FakePipeline
	launchErr  error
	stateErr   error
	nextNumber int
}

// NewFakeBackend returns an empty backend.
func NewFakeBackend() *FakeBackend {
	return &FakeBackend{}
}

// FailLaunch makes subsequent launches return err.
func (b *FakeBackend) FailLaunch(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.launchErr = err
}

// FailStateChanges makes pipelines launched afterwards reject SetState.
func (b *FakeBackend) FailStateChanges(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stateErr = err
}

// Launch implements native.Backend.
func (b *FakeBackend) Launch(description string) (native.Pipeline, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.launchErr != nil {
		return nil, b.launchErr
	}
	if strings.TrimSpace(description) == "" {
		return nil, errors.New("empty pipeline description")
	}
	pipeline := &FakePipeline{
		name:        fmt.Sprintf("pipeline%d", b.nextNumber),
		description: description,
		elements:    make(map[string]*FakeElement),
		messages:    make(chan native.Message, 64),
		closed:      make(chan struct{}),
		stateErr:    b.stateErr,
	}
	b.nextNumber++
	for _, token := range strings.Fields(description) {
		if name, ok := strings.CutPrefix(token, "name="); ok && name != "" {
			pipeline.elements[name] = &FakeElement{name: name, props: make(map[string]any)}
		}
	}
	b.launched = append(b.launched, pipeline)
	return pipeline, nil
}

// Launched returns every pipeline launched so far, oldest first.
func (b *FakeBackend) Launched() []*FakePipeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*FakePipeline(nil), b.launched...)
}

// Last returns the most recently launched pipeline, or nil.
func (b *FakeBackend) Last() *FakePipeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.launched) == 0 {
		return nil
	}
	return b.launched[len(b.launched)-1]
}

// FakePipeline is a pipeline launched by FakeBackend.
type FakePipeline struct {
	name        string
	description string
	messages    chan native.Message
	closed      chan struct{}
	closeOnce   sync.Once

	mu       sync.Mutex
	elements map[string]*FakeElement
	states   []native.State
	stateErr error
}

func (p *FakePipeline) Name() string { return p.name }

// Description returns the launch description.
func (p *FakePipeline) Description() string { return p.description }

// SetState records the requested state.
func (p *FakePipeline) SetState(state native.State) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stateErr != nil && state != native.StateNull {
		return p.stateErr
	}
	p.states = append(p.states, state)
	return nil
}

// States returns every state requested so far.
func (p *FakePipeline) States() []native.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]native.State(nil), p.states...)
}

// Element implements native.Pipeline.
func (p *FakePipeline) Element(name string) (native.Element, error) {
	element := p.Lookup(name)
	if element == nil {
		return nil, fmt.Errorf("%w: %s", native.ErrElementNotFound, name)
	}
	return element, nil
}

// Lookup returns the concrete element for assertions, or nil.
func (p *FakePipeline) Lookup(name string) *FakeElement {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.elements[name]
}

// Emit queues a bus message. It is dropped once the pipeline is closed.
func (p *FakePipeline) Emit(msg native.Message) {
	select {
	case p.messages <- msg:
	case <-p.closed:
	}
}

// Poll implements native.Pipeline.
func (p *FakePipeline) Poll(ctx context.Context, timeout time.Duration) (native.Message, bool) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-p.closed:
		return nil, false
	default:
	}
	select {
	case msg := <-p.messages:
		return msg, true
	case <-p.closed:
		return nil, false
	case <-ctx.Done():
		return nil, false
	case <-timer.C:
		return nil, false
	}
}

// Close implements native.Pipeline.
func (p *FakePipeline) Close() error {
	p.closeOnce.Do(func() { close(p.closed) })
	return nil
}

// Closed reports whether Close has been called.
func (p *FakePipeline) Closed() bool {
	select {
	case <-p.closed:
		return true
	default:
		return false
	}
}

// FakeElement records property assignments.
type FakeElement struct {
	name string

	mu       sync.Mutex
	props    map[string]any
	failures map[string]error
	sets     int
}

func (e *FakeElement) Name() string { return e.name }

// SetProperty implements native.Element.
func (e *FakeElement) SetProperty(name string, value any) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err, ok := e.failures[name]; ok {
		return err
	}
	e.props[name] = value
	e.sets++
	return nil
}

// FailProperty makes assignments to name return err.
func (e *FakeElement) FailProperty(name string, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failures == nil {
		e.failures = make(map[string]error)
	}
	e.failures[name] = err
}

// Property returns the last value assigned to name.
func (e *FakeElement) Property(name string) (any, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	value, ok := e.props[name]
	return value, ok
}

// Sets returns the number of successful assignments.
func (e *FakeElement) Sets() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sets
}
