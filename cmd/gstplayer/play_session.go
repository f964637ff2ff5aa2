package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"gstplayer/internal/config"
	"gstplayer/internal/journal"
	"gstplayer/internal/logging"
	"gstplayer/internal/native"
	"gstplayer/internal/player"
	"gstplayer/internal/propdiff"
	"gstplayer/internal/treefile"
	"gstplayer/internal/watch"
)

// playSession wires the native player, the binding, the properties watcher,
// and the journal for one play invocation.
type playSession struct {
	cfg       *config.Config
	backend   native.Backend
	logger    *slog.Logger
	journal   *journal.Store
	out       io.Writer
	exitOnEOS bool
}

func (s *playSession) run(ctx context.Context) error {
	state, err := native.ParseState(s.cfg.Player.PipelineState)
	if err != nil {
		return fmt.Errorf("player.pipeline_state: %w", err)
	}
	initial, err := s.initialProperties()
	if err != nil {
		return err
	}
	if s.journal != nil {
		ctx = logging.WithSessionID(ctx, s.journal.SessionID())
		s.pruneJournal(ctx)
	}
	logger := logging.WithContext(ctx, s.logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	relay := &eventRelay{}
	nativePlayer := native.New(s.backend, relay, native.WithLogger(logger))
	if err := nativePlayer.Start(ctx); err != nil {
		return err
	}
	defer nativePlayer.Stop()

	props := player.DefaultProps()
	props.FadeSpeed = s.cfg.FadeSpeed()
	props.FadeOpacity = s.cfg.Player.FadeOpacity
	props.ParseLaunchPipeline = s.cfg.Player.Pipeline
	props.PipelineState = state
	props.Properties = initial

	binding := player.New(nativePlayer, props, s.handlers(logger, cancel),
		player.WithLogger(logger),
		player.WithForwardHook(func(f player.Forward) { s.record(ctx, logger, f) }),
	)
	relay.attach(binding)

	fmt.Fprintf(s.out, "Playing %q (target state %s)\n", s.cfg.Player.Pipeline, state)

	var wg sync.WaitGroup
	if s.cfg.Watch.Enabled && s.cfg.Player.PropertiesFile != "" {
		watcher := watch.New(s.cfg.Player.PropertiesFile, s.cfg.WatchDebounce(), func(tree propdiff.Tree) {
			next := binding.Props()
			next.Properties = tree
			binding.Update(next)
		}, watch.WithLogger(logger))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := watcher.Run(ctx); err != nil {
				logger.Warn("properties watcher stopped", logging.Error(err))
			}
		}()
	}

	<-ctx.Done()
	cancel()
	wg.Wait()

	stats := binding.Stats()
	logger.Info("play session finished",
		logging.Int("full_resets", stats.FullResets),
		logging.Int("deltas_forwarded", stats.DeltasForwarded),
		logging.Int("skipped_updates", stats.SkippedUpdates),
		logging.Int("encode_failures", stats.EncodeFailures),
		logging.Int("native_failures", stats.NativeFailures),
	)
	fmt.Fprintf(s.out, "Stopped after %d full and %d delta updates\n", stats.FullResets, stats.DeltasForwarded)
	if s.journal != nil {
		s.pruneJournal(context.Background())
	}
	return nil
}

func (s *playSession) initialProperties() (propdiff.Tree, error) {
	if s.cfg.Player.PropertiesFile == "" {
		return s.cfg.InitialProperties(), nil
	}
	tree, err := treefile.Load(s.cfg.Player.PropertiesFile)
	if err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	return tree, nil
}

func (s *playSession) handlers(logger *slog.Logger, stop context.CancelFunc) player.Handlers {
	return player.Handlers{
		OnStateChanged: func(newState, oldState native.State) {
			logger.Info("pipeline state changed",
				logging.String(logging.FieldState, newState.String()),
				logging.String("previous_state", oldState.String()),
				logging.String(logging.FieldEventType, "state_changed"),
			)
		},
		OnEOS: func() {
			logger.Info("end of stream", logging.String(logging.FieldEventType, "eos"))
			if s.exitOnEOS {
				stop()
			}
		},
		OnError: func(source, message, debugInfo string) {
			logging.ErrorWithContext(logger, message, "pipeline_error",
				logging.String("source", source),
				logging.String("debug", debugInfo),
			)
		},
		OnElementMessage: func(element string, message map[string]any) {
			logger.Debug("element message",
				logging.String(logging.FieldElement, element),
				logging.Any("fields", message),
			)
		},
	}
}

func (s *playSession) record(ctx context.Context, logger *slog.Logger, f player.Forward) {
	if s.journal == nil {
		return
	}
	_, err := s.journal.Record(context.WithoutCancel(ctx), journal.Entry{
		RecordedAt: f.At,
		Kind:       string(f.Kind),
		Pipeline:   f.Pipeline,
		Payload:    f.Document,
	})
	if err != nil {
		logger.Warn("journal record failed", logging.Error(err))
	}
}

func (s *playSession) pruneJournal(ctx context.Context) {
	removed, err := s.journal.Prune(ctx, s.cfg.Journal.Retention)
	if err != nil {
		s.logger.Warn("journal prune failed", logging.Error(err))
		return
	}
	if removed > 0 {
		s.logger.Debug("journal pruned", logging.Int64("removed", removed))
	}
}

// eventRelay forwards native events to the binding. Events raised before
// attach, such as launch errors from the binding's first render, are queued.
type eventRelay struct {
	mu      sync.Mutex
	target  native.Events
	pending []func(native.Events)
}

func (r *eventRelay) attach(target native.Events) {
	r.mu.Lock()
	pending := r.pending
	r.pending = nil
	r.target = target
	r.mu.Unlock()
	for _, fn := range pending {
		fn(target)
	}
}

func (r *eventRelay) dispatch(fn func(native.Events)) {
	r.mu.Lock()
	target := r.target
	if target == nil {
		r.pending = append(r.pending, fn)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	fn(target)
}

func (r *eventRelay) PlayerLoaded() {
	r.dispatch(func(e native.Events) { e.PlayerLoaded() })
}

func (r *eventRelay) PipelineStateChanged(newState, oldState native.State) {
	r.dispatch(func(e native.Events) { e.PipelineStateChanged(newState, oldState) })
}

func (r *eventRelay) PipelineEOS() {
	r.dispatch(func(e native.Events) { e.PipelineEOS() })
}

func (r *eventRelay) PipelineError(source, message, debugInfo string) {
	r.dispatch(func(e native.Events) { e.PipelineError(source, message, debugInfo) })
}

func (r *eventRelay) ElementMessage(element, message string) {
	r.dispatch(func(e native.Events) { e.ElementMessage(element, message) })
}
