package native

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gstplayer/internal/logging"
	"gstplayer/internal/propdiff"
)

const defaultPollInterval = 100 * time.Millisecond

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

// WithPollInterval overrides how long the bus loop blocks per poll.
func WithPollInterval(interval time.Duration) Option {
	return func(p *Player) {
		if interval > 0 {
			p.pollInterval = interval
		}
	}
}

// Player owns the launched pipeline and forwards its bus messages.
type Player struct {
	backend      Backend
	events       Events
	logger       *slog.Logger
	pollInterval time.Duration

	mu          sync.Mutex
	pipeline    Pipeline
	description string
	desired     State
	cancel      context.CancelFunc
	done        chan struct{}
}

// New constructs a Player. Nothing is launched until a pipeline description
// is set.
func New(backend Backend, events Events, opts ...Option) *Player {
	if events == nil {
		events = NopEvents{}
	}
	p := &Player{
		backend:      backend,
		events:       events,
		logger:       logging.NewNop(),
		pollInterval: defaultPollInterval,
		desired:      StateVoidPending,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "native")
	return p
}

// Start runs the bus loop until ctx is cancelled or Stop is called.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return errors.New("native player already started")
	}
	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	done := p.done
	p.mu.Unlock()

	go func() {
		defer close(done)
		p.loop(loopCtx)
	}()

	p.logger.Debug("native player loaded")
	p.events.PlayerLoaded()
	return nil
}

// Stop ends the bus loop and tears down the current pipeline. It is safe to
// call more than once.
func (p *Player) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardownLocked()
}

// Description returns the parse-launch description of the current pipeline.
func (p *Player) Description() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.description
}

// DesiredState returns the last requested pipeline state.
func (p *Player) DesiredState() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.desired
}

// SetParseLaunchPipeline replaces the current pipeline. The previous one is
// moved to StateNull and closed; the new one receives the desired state. An
// empty description leaves the player without a pipeline.
func (p *Player) SetParseLaunchPipeline(description string) error {
	description = strings.TrimSpace(description)

	p.mu.Lock()
	p.teardownLocked()
	if description == "" {
		p.mu.Unlock()
		return nil
	}
	pipeline, err := p.backend.Launch(description)
	if err != nil {
		p.mu.Unlock()
		p.logger.Error("pipeline launch failed",
			logging.Error(err),
			logging.String(logging.FieldEventType, "pipeline_launch_failed"),
			logging.String(logging.FieldErrorHint, "check the parse-launch description"),
		)
		p.events.PipelineError("pipeline", "failed to launch pipeline", err.Error())
		return fmt.Errorf("launch pipeline: %w", err)
	}
	p.pipeline = pipeline
	p.description = description
	desired := p.desired
	p.mu.Unlock()

	p.logger.Info("pipeline launched",
		logging.String("pipeline", pipeline.Name()),
		logging.String(logging.FieldEventType, "pipeline_launched"),
	)

	if desired == StateVoidPending {
		return nil
	}
	return p.applyState(pipeline, desired)
}

// SetDesiredState records the requested state and applies it to the current
// pipeline, if any. StateVoidPending is recorded but never applied.
func (p *Player) SetDesiredState(state State) error {
	if !state.Valid() {
		return fmt.Errorf("set desired state: unknown state %d", int(state))
	}
	p.mu.Lock()
	p.desired = state
	pipeline := p.pipeline
	p.mu.Unlock()

	if pipeline == nil || state == StateVoidPending {
		return nil
	}
	return p.applyState(pipeline, state)
}

// SetPipelineProperties applies a sparse property document to the current
// pipeline.
func (p *Player) SetPipelineProperties(document string) error {
	p.mu.Lock()
	pipeline := p.pipeline
	p.mu.Unlock()

	if pipeline == nil {
		return ErrNoPipeline
	}
	applied, err := ApplyProperties(pipeline, document, p.events.PipelineError)
	if err != nil {
		p.logger.Warn("property document rejected",
			logging.Error(err),
			logging.String(logging.FieldEventType, "properties_rejected"),
			logging.String("document", document),
		)
		return err
	}
	p.logger.Debug("properties applied", logging.Int("count", applied))
	return nil
}

func (p *Player) applyState(pipeline Pipeline, state State) error {
	if err := pipeline.SetState(state); err != nil {
		p.logger.Warn("pipeline state change failed",
			logging.Error(err),
			logging.String(logging.FieldState, state.String()),
			logging.String(logging.FieldEventType, "state_change_failed"),
		)
		p.events.PipelineError(pipeline.Name(), "failed to set pipeline state to "+state.String(), err.Error())
		return fmt.Errorf("set pipeline state %s: %w", state, err)
	}
	return nil
}

func (p *Player) teardownLocked() {
	if p.pipeline == nil {
		return
	}
	old := p.pipeline
	p.pipeline = nil
	p.description = ""
	if err := old.SetState(StateNull); err != nil {
		p.logger.Warn("pipeline teardown failed", logging.Error(err), logging.String("pipeline", old.Name()))
	}
	if err := old.Close(); err != nil {
		p.logger.Warn("pipeline close failed", logging.Error(err), logging.String("pipeline", old.Name()))
	}
}

func (p *Player) loop(ctx context.Context) {
	timer := time.NewTimer(p.pollInterval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return
		}

		p.mu.Lock()
		pipeline := p.pipeline
		p.mu.Unlock()

		if pipeline == nil {
			timer.Reset(p.pollInterval)
			select {
			case <-ctx.Done():
				return
			case <-timer.C:
			}
			continue
		}

		msg, ok := pipeline.Poll(ctx, p.pollInterval)
		if !ok {
			continue
		}

		p.mu.Lock()
		current := p.pipeline == pipeline
		p.mu.Unlock()
		if !current {
			continue
		}
		p.dispatch(pipeline, msg)
	}
}

func (p *Player) dispatch(pipeline Pipeline, msg Message) {
	switch m := msg.(type) {
	case MessageError:
		p.logger.Debug("pipeline error", logging.String("source", m.Source), logging.String("error", m.Text))
		p.events.PipelineError(m.Source, m.Text, m.Debug)
	case MessageEOS:
		p.events.PipelineEOS()
	case MessageStateChanged:
		if m.Source != pipeline.Name() {
			return
		}
		p.logger.Debug("pipeline state changed",
			logging.String(logging.FieldState, m.New.String()),
			logging.String("previous_state", m.Old.String()),
		)
		p.events.PipelineStateChanged(m.New, m.Old)
	case MessageElement:
		payload, err := propdiff.FromMap(m.Fields).Encode()
		if err != nil {
			p.events.PipelineError(m.Source, "failed to serialize element message", err.Error())
			return
		}
		p.events.ElementMessage(m.Structure, payload)
	}
}
