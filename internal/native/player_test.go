package native_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gstplayer/internal/native"
	"gstplayer/internal/testsupport"
)

func newPlayer(t *testing.T) (*native.Player, *testsupport.FakeBackend, *testsupport.EventRecorder) {
	t.Helper()
	backend := testsupport.NewFakeBackend()
	events := &testsupport.EventRecorder{}
	player := native.New(backend, events, native.WithPollInterval(5*time.Millisecond))
	if err := player.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(player.Stop)
	return player, backend, events
}

func TestStartEmitsLoadedOnce(t *testing.T) {
	player, _, events := newPlayer(t)
	if got := events.OfKind(testsupport.EventLoaded); len(got) != 1 {
		t.Fatalf("expected one loaded event, got %d", len(got))
	}
	if err := player.Start(context.Background()); err == nil {
		t.Fatal("expected second Start to fail")
	}
}

func TestDesiredStateAppliedAfterLaunch(t *testing.T) {
	player, backend, _ := newPlayer(t)

	if err := player.SetDesiredState(native.StatePlaying); err != nil {
		t.Fatalf("SetDesiredState: %v", err)
	}
	if err := player.SetParseLaunchPipeline("audiotestsrc name=audioSrc ! fakesink"); err != nil {
		t.Fatalf("SetParseLaunchPipeline: %v", err)
	}
	states := backend.Last().States()
	if len(states) != 1 || states[0] != native.StatePlaying {
		t.Fatalf("expected desired state on launch, got %v", states)
	}

	if err := player.SetDesiredState(native.StatePaused); err != nil {
		t.Fatalf("SetDesiredState: %v", err)
	}
	states = backend.Last().States()
	if states[len(states)-1] != native.StatePaused {
		t.Fatalf("expected paused applied, got %v", states)
	}
}

func TestVoidPendingIsStoredButNotApplied(t *testing.T) {
	player, backend, _ := newPlayer(t)
	if err := player.SetParseLaunchPipeline("fakesrc name=src ! fakesink"); err != nil {
		t.Fatalf("SetParseLaunchPipeline: %v", err)
	}
	if err := player.SetDesiredState(native.StateVoidPending); err != nil {
		t.Fatalf("SetDesiredState: %v", err)
	}
	if len(backend.Last().States()) != 0 {
		t.Fatalf("void pending must not be applied: %v", backend.Last().States())
	}
	if player.DesiredState() != native.StateVoidPending {
		t.Fatalf("unexpected desired state %v", player.DesiredState())
	}
	if err := player.SetDesiredState(native.State(42)); err == nil {
		t.Fatal("expected error for unknown state")
	}
}

func TestRelaunchTearsDownPreviousPipeline(t *testing.T) {
	player, backend, _ := newPlayer(t)
	if err := player.SetDesiredState(native.StatePaused); err != nil {
		t.Fatalf("SetDesiredState: %v", err)
	}
	if err := player.SetParseLaunchPipeline("fakesrc name=a ! fakesink"); err != nil {
		t.Fatalf("launch a: %v", err)
	}
	if err := player.SetParseLaunchPipeline("fakesrc name=b ! fakesink"); err != nil {
		t.Fatalf("launch b: %v", err)
	}

	launched := backend.Launched()
	if len(launched) != 2 {
		t.Fatalf("expected two launches, got %d", len(launched))
	}
	first := launched[0]
	if !first.Closed() {
		t.Fatal("previous pipeline must be closed")
	}
	states := first.States()
	if states[len(states)-1] != native.StateNull {
		t.Fatalf("previous pipeline must end in null, got %v", states)
	}
	if got := launched[1].States(); len(got) != 1 || got[0] != native.StatePaused {
		t.Fatalf("desired state must be re-applied on relaunch, got %v", got)
	}
	if player.Description() != "fakesrc name=b ! fakesink" {
		t.Fatalf("unexpected description %q", player.Description())
	}
}

func TestLaunchFailureSurfacesError(t *testing.T) {
	player, backend, events := newPlayer(t)
	backend.FailLaunch(errors.New("no element \"bogus\""))

	err := player.SetParseLaunchPipeline("bogus ! fakesink")
	if err == nil || !strings.Contains(err.Error(), "launch pipeline") {
		t.Fatalf("expected launch error, got %v", err)
	}
	errs := events.OfKind(testsupport.EventError)
	if len(errs) != 1 || errs[0].Source != "pipeline" || !strings.Contains(errs[0].Debug, "bogus") {
		t.Fatalf("unexpected error events: %+v", errs)
	}
}

func TestSetPipelinePropertiesWithoutPipeline(t *testing.T) {
	player, _, _ := newPlayer(t)
	if err := player.SetPipelineProperties(`{"a":{"b":1}}`); !errors.Is(err, native.ErrNoPipeline) {
		t.Fatalf("expected ErrNoPipeline, got %v", err)
	}
}

func TestSetPipelinePropertiesReportsMissingElement(t *testing.T) {
	player, backend, events := newPlayer(t)
	if err := player.SetParseLaunchPipeline("volume name=volumeControl ! fakesink"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	if err := player.SetPipelineProperties(`{"volumeControl":{"volume":0.2},"missing":{"x":1}}`); err != nil {
		t.Fatalf("SetPipelineProperties: %v", err)
	}
	if v, _ := backend.Last().Lookup("volumeControl").Property("volume"); v != 0.2 {
		t.Fatalf("unexpected volume %v", v)
	}
	errs := events.OfKind(testsupport.EventError)
	if len(errs) != 1 || errs[0].Message != "element missing does not exist" {
		t.Fatalf("unexpected error events: %+v", errs)
	}
}

func TestBusMessagesAreDispatched(t *testing.T) {
	player, backend, events := newPlayer(t)
	if err := player.SetParseLaunchPipeline("audiotestsrc name=audioSrc ! level name=levelInfo ! fakesink"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	pipeline := backend.Last()

	pipeline.Emit(native.MessageStateChanged{Source: "audioSrc", Old: native.StateReady, New: native.StatePaused})
	pipeline.Emit(native.MessageStateChanged{Source: pipeline.Name(), Old: native.StateReady, New: native.StatePaused})
	pipeline.Emit(native.MessageElement{Source: "levelInfo", Structure: "level", Fields: map[string]any{"rms": []any{-20.5, -21.0}}})
	pipeline.Emit(native.MessageError{Source: "audioSrc", Text: "Internal data stream error.", Debug: "reason not-negotiated"})
	pipeline.Emit(native.MessageEOS{Source: pipeline.Name()})

	events.WaitFor(t, testsupport.EventEOS, 1)

	changes := events.OfKind(testsupport.EventStateChanged)
	if len(changes) != 1 {
		t.Fatalf("only pipeline state changes should surface, got %+v", changes)
	}
	if changes[0].NewState != native.StatePaused || changes[0].OldState != native.StateReady {
		t.Fatalf("unexpected state change %+v", changes[0])
	}

	elements := events.OfKind(testsupport.EventElement)
	if len(elements) != 1 || elements[0].Source != "level" || elements[0].Message != `{"rms":[-20.5,-21]}` {
		t.Fatalf("unexpected element events: %+v", elements)
	}

	errs := events.OfKind(testsupport.EventError)
	if len(errs) != 1 || errs[0].Source != "audioSrc" || errs[0].Debug != "reason not-negotiated" {
		t.Fatalf("unexpected error events: %+v", errs)
	}
}

func TestStopClosesPipelineAndIsIdempotent(t *testing.T) {
	player, backend, _ := newPlayer(t)
	if err := player.SetParseLaunchPipeline("fakesrc name=src ! fakesink"); err != nil {
		t.Fatalf("launch: %v", err)
	}
	player.Stop()
	player.Stop()
	if !backend.Last().Closed() {
		t.Fatal("expected pipeline closed after Stop")
	}
	if player.Description() != "" {
		t.Fatalf("expected no pipeline after Stop, got %q", player.Description())
	}
}
