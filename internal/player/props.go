package player

import (
	"time"

	"gstplayer/internal/native"
	"gstplayer/internal/propdiff"
)

const (
	DefaultFadeSpeed   = 225 * time.Millisecond
	DefaultFadeOpacity = 1.0
)

// Props is the full set of inputs of a player.
type Props struct {
	FadeSpeed           time.Duration
	FadeOpacity         float64
	ParseLaunchPipeline string
	PipelineState       native.State
	Properties          propdiff.Tree
}

// DefaultProps returns props with the default overlay settings, the ready
// state, and an empty property tree.
func DefaultProps() Props {
	return Props{
		FadeSpeed:     DefaultFadeSpeed,
		FadeOpacity:   DefaultFadeOpacity,
		PipelineState: native.StateReady,
		Properties:    propdiff.Tree{},
	}
}

func (p Props) normalized() Props {
	if p.Properties == nil {
		p.Properties = propdiff.Tree{}
	}
	if !p.PipelineState.Valid() {
		p.PipelineState = native.StateReady
	}
	if p.FadeSpeed < 0 {
		p.FadeSpeed = 0
	}
	return p
}

// Handlers receives re-surfaced native events. Nil fields are ignored.
type Handlers struct {
	OnStateChanged   func(newState, oldState native.State)
	OnEOS            func()
	OnError          func(source, message, debugInfo string)
	OnElementMessage func(element string, message map[string]any)
}

// Native is the native player the binding forwards to.
type Native interface {
	SetParseLaunchPipeline(description string) error
	SetDesiredState(state native.State) error
	SetPipelineProperties(document string) error
}

// Fader animates the overlay drawn above the video surface.
type Fader interface {
	FadeTo(opacity float64, duration time.Duration)
}

// ForwardKind tells a full property reset from a sparse delta.
type ForwardKind string

const (
	ForwardFull  ForwardKind = "full"
	ForwardDelta ForwardKind = "delta"
)

// Forward describes one property document sent to the native player.
type Forward struct {
	Kind     ForwardKind
	Pipeline string
	Document string
	Tree     propdiff.Tree
	At       time.Time
}
