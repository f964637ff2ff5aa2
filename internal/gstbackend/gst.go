//go:build cgo

package gstbackend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-gst/go-gst/gst"

	"gstplayer/internal/native"
)

var gstInitOnce sync.Once

// Init initializes GStreamer. Safe to call multiple times.
func Init() {
	gstInitOnce.Do(func() {
		gst.Init(nil)
	})
}

// Backend launches GStreamer pipelines.
type Backend struct{}

// New returns a Backend, initializing GStreamer on first use.
func New() *Backend {
	Init()
	return &Backend{}
}

// Launch parses description with gst_parse_launch semantics.
func (b *Backend) Launch(description string) (native.Pipeline, error) {
	pipeline, err := gst.NewPipelineFromString(description)
	if err != nil {
		return nil, fmt.Errorf("parse pipeline: %w", err)
	}
	bus := pipeline.GetPipelineBus()
	if bus == nil {
		pipeline.SetState(gst.StateNull)
		return nil, fmt.Errorf("pipeline %s has no bus", pipeline.GetName())
	}
	return &Pipeline{pipeline: pipeline, bus: bus, name: pipeline.GetName()}, nil
}

// Pipeline wraps a launched *gst.Pipeline.
type Pipeline struct {
	pipeline *gst.Pipeline
	bus      *gst.Bus
	name     string

	mu     sync.Mutex
	closed bool
}

func (p *Pipeline) Name() string { return p.name }

// SetState changes the pipeline state.
func (p *Pipeline) SetState(state native.State) error {
	if err := p.pipeline.SetState(toGstState(state)); err != nil {
		return fmt.Errorf("set state %s: %w", state, err)
	}
	return nil
}

// Element looks up an element by name anywhere in the pipeline.
func (p *Pipeline) Element(name string) (native.Element, error) {
	elem, err := p.pipeline.GetElementByName(name)
	if err != nil || elem == nil {
		return nil, fmt.Errorf("%w: %s", native.ErrElementNotFound, name)
	}
	return &Element{elem: elem, name: name}, nil
}

// Poll pops the next bus message, waiting at most timeout.
func (p *Pipeline) Poll(ctx context.Context, timeout time.Duration) (native.Message, bool) {
	if ctx.Err() != nil || p.isClosed() {
		return nil, false
	}
	msg := p.bus.TimedPop(gst.ClockTime(timeout))
	if msg == nil {
		return nil, false
	}
	converted := convertMessage(msg)
	if converted == nil {
		return nil, false
	}
	return converted, true
}

// Close moves the pipeline to NULL. Later polls return immediately.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.pipeline.SetState(gst.StateNull); err != nil {
		return fmt.Errorf("close pipeline %s: %w", p.name, err)
	}
	return nil
}

func (p *Pipeline) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// Element wraps a *gst.Element.
type Element struct {
	elem *gst.Element
	name string
}

func (e *Element) Name() string { return e.name }

// SetProperty assigns a GObject property.
func (e *Element) SetProperty(name string, value any) error {
	if err := e.elem.SetProperty(name, value); err != nil {
		return fmt.Errorf("set %s.%s: %w", e.name, name, err)
	}
	return nil
}

func convertMessage(msg *gst.Message) native.Message {
	switch msg.Type() {
	case gst.MessageError:
		gerr := msg.ParseError()
		if gerr == nil {
			return native.MessageError{Source: msg.Source(), Text: "unknown error"}
		}
		return native.MessageError{Source: msg.Source(), Text: gerr.Error(), Debug: gerr.DebugString()}
	case gst.MessageEOS:
		return native.MessageEOS{Source: msg.Source()}
	case gst.MessageStateChanged:
		oldState, newState := msg.ParseStateChanged()
		return native.MessageStateChanged{
			Source: msg.Source(),
			Old:    fromGstState(oldState),
			New:    fromGstState(newState),
		}
	case gst.MessageElement:
		structure := msg.GetStructure()
		if structure == nil {
			return nil
		}
		return native.MessageElement{
			Source:    msg.Source(),
			Structure: structure.Name(),
			Fields:    structure.Values(),
		}
	default:
		return nil
	}
}

func toGstState(state native.State) gst.State {
	switch state {
	case native.StateNull:
		return gst.StateNull
	case native.StateReady:
		return gst.StateReady
	case native.StatePaused:
		return gst.StatePaused
	case native.StatePlaying:
		return gst.StatePlaying
	default:
		return gst.VoidPending
	}
}

func fromGstState(state gst.State) native.State {
	switch state {
	case gst.StateNull:
		return native.StateNull
	case gst.StateReady:
		return native.StateReady
	case gst.StatePaused:
		return native.StatePaused
	case gst.StatePlaying:
		return native.StatePlaying
	default:
		return native.StateVoidPending
	}
}

// Available reports whether this build can launch GStreamer pipelines.
const Available = true
