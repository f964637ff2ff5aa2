package player

import (
	"sync"
	"time"
)

// Overlay is a Fader that tracks a linear opacity animation. Renderers
// sample Opacity on each frame.
type Overlay struct {
	mu       sync.Mutex
	from     float64
	to       float64
	start    time.Time
	duration time.Duration
	now      func() time.Time
}

// OverlayOption configures an Overlay.
type OverlayOption func(*Overlay)

// WithClock overrides the clock used to timestamp animations.
func WithClock(now func() time.Time) OverlayOption {
	return func(o *Overlay) {
		if now != nil {
			o.now = now
		}
	}
}

// NewOverlay returns an overlay resting at opacity.
func NewOverlay(opacity float64, opts ...OverlayOption) *Overlay {
	o := &Overlay{from: opacity, to: opacity, now: time.Now}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// FadeTo starts a new animation from the current opacity.
func (o *Overlay) FadeTo(opacity float64, duration time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	now := o.now()
	o.from = o.opacityLocked(now)
	o.to = opacity
	o.start = now
	o.duration = duration
}

// Opacity returns the overlay opacity at now.
func (o *Overlay) Opacity(now time.Time) float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opacityLocked(now)
}

// Target returns the opacity the current animation ends at.
func (o *Overlay) Target() float64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.to
}

func (o *Overlay) opacityLocked(now time.Time) float64 {
	if o.duration <= 0 {
		return o.to
	}
	elapsed := now.Sub(o.start)
	if elapsed <= 0 {
		return o.from
	}
	if elapsed >= o.duration {
		return o.to
	}
	progress := float64(elapsed) / float64(o.duration)
	return o.from + (o.to-o.from)*progress
}
