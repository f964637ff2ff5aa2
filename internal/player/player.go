package player

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gstplayer/internal/logging"
	"gstplayer/internal/native"
	"gstplayer/internal/propdiff"
)

// Option configures a Player.
type Option func(*Player)

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithFader replaces the default Overlay.
func WithFader(fader Fader) Option {
	return func(p *Player) {
		if fader != nil {
			p.fader = fader
		}
	}
}

// WithForwardHook registers a callback invoked after every property
// document is handed to the native player.
func WithForwardHook(hook func(Forward)) Option {
	return func(p *Player) {
		p.onForward = hook
	}
}

type forwarded struct {
	rendered   bool
	pipeline   string
	state      native.State
	properties string
}

// Player forwards props to a Native and re-surfaces its events. It
// implements native.Events.
type Player struct {
	native    Native
	handlers  Handlers
	fader     Fader
	logger    *slog.Logger
	onForward func(Forward)

	// renderMu serializes calls into the native player; mu guards state and
	// is never held across native or handler calls.
	renderMu sync.Mutex
	mu       sync.Mutex
	props    Props
	lastDiff propdiff.Tree
	lastKind ForwardKind
	// diffGen changes whenever lastDiff is replaced; badGen is the
	// generation whose document failed to encode.
	diffGen  uint64
	badGen   uint64
	sent     forwarded
	stats    Stats
}

var _ native.Events = (*Player)(nil)

// New binds props to nativePlayer and performs the first render, which
// forwards the full property tree.
func New(nativePlayer Native, props Props, handlers Handlers, opts ...Option) *Player {
	props = props.normalized()
	p := &Player{
		native:   nativePlayer,
		handlers: handlers,
		logger:   logging.NewNop(),
		props:    props,
		lastDiff: props.Properties.Clone(),
		lastKind: ForwardFull,
		diffGen:  1,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.fader == nil {
		p.fader = NewOverlay(props.FadeOpacity)
	}
	p.logger = logging.NewComponentLogger(p.logger, "player")
	p.render()
	return p
}

// Fader returns the overlay fader.
func (p *Player) Fader() Fader {
	return p.fader
}

// Props returns the current props.
func (p *Player) Props() Props {
	p.mu.Lock()
	defer p.mu.Unlock()
	props := p.props
	props.Properties = props.Properties.Clone()
	return props
}

// Stats returns a snapshot of the update counters.
func (p *Player) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Update replaces the props. A changed pipeline description makes the full
// property tree the next document; otherwise the delta against the previous
// props is used when it is non-empty. Then the player re-renders.
func (p *Player) Update(next Props) {
	next = next.normalized()

	p.mu.Lock()
	prev := p.props
	p.props = next
	switch {
	case prev.ParseLaunchPipeline != next.ParseLaunchPipeline:
		p.lastDiff = next.Properties.Clone()
		p.lastKind = ForwardFull
		p.diffGen++
	default:
		diff := propdiff.Diff(next.Properties, prev.Properties)
		if diff.Empty() {
			p.stats.SkippedUpdates++
		} else {
			p.lastDiff = diff
			p.lastKind = ForwardDelta
			p.diffGen++
		}
	}
	p.mu.Unlock()

	p.render()
}

func (p *Player) render() {
	p.renderMu.Lock()
	defer p.renderMu.Unlock()

	p.mu.Lock()
	props := p.props
	diff := p.lastDiff
	kind := p.lastKind
	gen := p.diffGen
	reported := p.badGen == gen
	sent := p.sent
	p.mu.Unlock()

	var document string
	var encodeErr error
	if !reported {
		document, encodeErr = diff.Encode()
	}

	pipelineChanged := !sent.rendered || sent.pipeline != props.ParseLaunchPipeline
	if pipelineChanged {
		if err := p.native.SetParseLaunchPipeline(props.ParseLaunchPipeline); err != nil {
			p.nativeFailed("set pipeline", err)
		}
		sent.pipeline = props.ParseLaunchPipeline
	}
	if !sent.rendered || sent.state != props.PipelineState {
		if err := p.native.SetDesiredState(props.PipelineState); err != nil {
			p.nativeFailed("set state", err)
		}
		sent.state = props.PipelineState
	}

	var fwd *Forward
	switch {
	case reported:
	case encodeErr != nil:
		p.mu.Lock()
		p.stats.EncodeFailures++
		p.badGen = gen
		p.mu.Unlock()
		p.logger.Warn("property document encode failed",
			logging.Error(encodeErr),
			logging.String(logging.FieldEventType, "properties_encode_failed"),
		)
		if p.handlers.OnError != nil {
			p.handlers.OnError("properties", "Serialization error", encodeErr.Error())
		}
	case pipelineChanged || sent.properties != document:
		if err := p.native.SetPipelineProperties(document); err != nil {
			p.nativeFailed("set properties", err)
		}
		sent.properties = document
		fwd = &Forward{
			Kind:     kind,
			Pipeline: props.ParseLaunchPipeline,
			Document: document,
			Tree:     diff.Clone(),
			At:       time.Now(),
		}
	}
	sent.rendered = true

	p.mu.Lock()
	p.sent = sent
	if fwd != nil {
		if fwd.Kind == ForwardFull {
			p.stats.FullResets++
		} else {
			p.stats.DeltasForwarded++
		}
	}
	p.mu.Unlock()

	if fwd != nil {
		p.logger.Debug("properties forwarded",
			logging.String("kind", string(fwd.Kind)),
			logging.Int("changes", len(propdiff.Flatten(fwd.Tree))),
		)
		if p.onForward != nil {
			p.onForward(*fwd)
		}
	}
}

func (p *Player) nativeFailed(op string, err error) {
	if errors.Is(err, native.ErrNoPipeline) {
		p.logger.Debug("native "+op+" skipped", logging.Error(err))
		return
	}
	p.mu.Lock()
	p.stats.NativeFailures++
	p.mu.Unlock()
	p.logger.Warn("native "+op+" failed",
		logging.Error(err),
		logging.String(logging.FieldEventType, "native_call_failed"),
	)
}

// PlayerLoaded implements native.Events.
func (p *Player) PlayerLoaded() {
	p.logger.Info("native player loaded", logging.String(logging.FieldEventType, "player_loaded"))
}

// PipelineStateChanged re-surfaces the transition and fades the overlay out
// once the pipeline reaches paused or playing.
func (p *Player) PipelineStateChanged(newState, oldState native.State) {
	if p.handlers.OnStateChanged == nil {
		return
	}
	p.handlers.OnStateChanged(newState, oldState)

	p.mu.Lock()
	opacity := p.props.FadeOpacity
	speed := p.props.FadeSpeed
	p.mu.Unlock()
	if newState >= native.StatePaused {
		opacity = 0
	}
	p.fader.FadeTo(opacity, speed)
}

// PipelineEOS implements native.Events.
func (p *Player) PipelineEOS() {
	if p.handlers.OnEOS != nil {
		p.handlers.OnEOS()
	}
}

// PipelineError implements native.Events.
func (p *Player) PipelineError(source, message, debugInfo string) {
	if p.handlers.OnError != nil {
		p.handlers.OnError(source, message, debugInfo)
	}
}

// ElementMessage decodes the JSON payload. A payload that does not decode
// is reported as a serialization error from the element.
func (p *Player) ElementMessage(element, message string) {
	tree, err := propdiff.ParseJSON([]byte(message))
	if err == nil && strings.TrimSpace(message) == "" {
		err = errors.New("empty element message")
	}
	if err != nil {
		p.logger.Debug("element message decode failed", logging.String(logging.FieldElement, element), logging.Error(err))
		if p.handlers.OnError != nil {
			p.handlers.OnError(element, "Serialization error", "")
		}
		return
	}
	if p.handlers.OnElementMessage != nil {
		p.handlers.OnElementMessage(element, map[string]any(tree))
	}
}
