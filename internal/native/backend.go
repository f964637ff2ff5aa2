package native

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNoPipeline is returned when an operation needs a launched pipeline.
	ErrNoPipeline = errors.New("no pipeline launched")
	// ErrElementNotFound is returned by Pipeline.Element for unknown names.
	ErrElementNotFound = errors.New("element not found")
)

// Backend launches pipelines from parse-launch descriptions.
type Backend interface {
	Launch(description string) (Pipeline, error)
}

// Pipeline is a launched pipeline.
type Pipeline interface {
	Name() string
	SetState(State) error
	// Element looks up a named element, returning ErrElementNotFound when
	// the pipeline has no such element.
	Element(name string) (Element, error)
	// Poll waits up to timeout for the next bus message. It returns false
	// on timeout, context cancellation, or once the pipeline is closed.
	Poll(ctx context.Context, timeout time.Duration) (Message, bool)
	Close() error
}

// Element is a named pipeline element.
type Element interface {
	Name() string
	SetProperty(name string, value any) error
}
