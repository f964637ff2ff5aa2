package native_test

import (
	"errors"
	"strings"
	"testing"

	"gstplayer/internal/native"
	"gstplayer/internal/testsupport"
)

type reported struct {
	source, message, debug string
}

func collect(out *[]reported) native.ErrorReporter {
	return func(source, message, debug string) {
		*out = append(*out, reported{source, message, debug})
	}
}

func launch(t *testing.T, description string) *testsupport.FakePipeline {
	t.Helper()
	backend := testsupport.NewFakeBackend()
	if _, err := backend.Launch(description); err != nil {
		t.Fatalf("Launch: %v", err)
	}
	return backend.Last()
}

func TestApplyPropertiesSetsNamedElements(t *testing.T) {
	pipeline := launch(t, "audiotestsrc name=audioSrc ! volume name=volumeControl ! fakesink")

	var errs []reported
	doc := `{"volumeControl":{"volume":0.5,"mute":false},"audioSrc":{"freq":880,"wave":null}}`
	applied, err := native.ApplyProperties(pipeline, doc, collect(&errs))
	if err != nil {
		t.Fatalf("ApplyProperties: %v", err)
	}
	if applied != 3 {
		t.Fatalf("expected 3 properties applied, got %d", applied)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}

	volume := pipeline.Lookup("volumeControl")
	if v, _ := volume.Property("volume"); v != 0.5 {
		t.Fatalf("unexpected volume %v", v)
	}
	if v, _ := volume.Property("mute"); v != false {
		t.Fatalf("unexpected mute %v", v)
	}
	src := pipeline.Lookup("audioSrc")
	if v, _ := src.Property("freq"); v != int64(880) {
		t.Fatalf("unexpected freq %v (%T)", v, v)
	}
	if _, ok := src.Property("wave"); ok {
		t.Fatal("null property must be skipped")
	}
}

func TestApplyPropertiesNestedObjectsTargetSameElement(t *testing.T) {
	pipeline := launch(t, "videotestsrc name=videoSrc ! fakesink")

	doc := `{"videoSrc":{"pattern":2,"extra":{"foreground-color":255}}}`
	applied, err := native.ApplyProperties(pipeline, doc, nil)
	if err != nil {
		t.Fatalf("ApplyProperties: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 applied, got %d", applied)
	}
	if v, ok := pipeline.Lookup("videoSrc").Property("foreground-color"); !ok || v != int64(255) {
		t.Fatalf("nested property not applied to same element: %v %v", v, ok)
	}
}

func TestApplyPropertiesReportsMissingElementAndContinues(t *testing.T) {
	pipeline := launch(t, "audiotestsrc name=audioSrc ! fakesink")

	var errs []reported
	doc := `{"ghost":{"volume":1},"audioSrc":{"freq":220}}`
	applied, err := native.ApplyProperties(pipeline, doc, collect(&errs))
	if err != nil {
		t.Fatalf("ApplyProperties: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected the existing element to be updated, applied=%d", applied)
	}
	if len(errs) != 1 {
		t.Fatalf("expected one error, got %+v", errs)
	}
	if errs[0].source != "pipeline" || errs[0].message != "element ghost does not exist" {
		t.Fatalf("unexpected error event: %+v", errs[0])
	}
}

func TestApplyPropertiesReportsSetFailureFromElement(t *testing.T) {
	pipeline := launch(t, "audiotestsrc name=audioSrc ! fakesink")
	pipeline.Lookup("audioSrc").FailProperty("freq", errors.New("out of range"))

	var errs []reported
	if _, err := native.ApplyProperties(pipeline, `{"audioSrc":{"freq":-1}}`, collect(&errs)); err != nil {
		t.Fatalf("ApplyProperties: %v", err)
	}
	if len(errs) != 1 || errs[0].source != "audioSrc" || errs[0].debug != "out of range" {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestApplyPropertiesRejectsMalformedDocument(t *testing.T) {
	pipeline := launch(t, "audiotestsrc name=audioSrc ! fakesink")

	_, err := native.ApplyProperties(pipeline, `{"audioSrc":`, nil)
	if err == nil || !strings.Contains(err.Error(), "apply properties") {
		t.Fatalf("expected parse error, got %v", err)
	}
	if pipeline.Lookup("audioSrc").Sets() != 0 {
		t.Fatal("nothing should be applied from a malformed document")
	}
}
