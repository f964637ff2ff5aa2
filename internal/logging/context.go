package logging

import (
	"context"
	"log/slog"
)

// Structured keys shared by every component.
const (
	FieldComponent = "component"
	FieldDebugTag  = "debug_tag"
	FieldSessionID = "session_id"
	FieldElement   = "element"
	FieldState     = "state"
	// FieldEventType classifies warnings and errors for filtering.
	FieldEventType = "event_type"
	FieldErrorHint = "error_hint"
)

type ctxKey int

const (
	sessionKey ctxKey = iota
	tagKey
)

// WithSessionID annotates ctx with a play session identifier.
func WithSessionID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionKey, id)
}

// SessionIDFromContext returns the play session identifier if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	return stringValue(ctx, sessionKey)
}

// WithDebugTag annotates ctx with the player's display tag.
func WithDebugTag(ctx context.Context, tag string) context.Context {
	if tag == "" {
		return ctx
	}
	return context.WithValue(ctx, tagKey, tag)
}

// WithContext returns logger extended with the session and tag carried by ctx.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	var args []any
	if id, ok := stringValue(ctx, sessionKey); ok {
		args = append(args, slog.String(FieldSessionID, id))
	}
	if tag, ok := stringValue(ctx, tagKey); ok {
		args = append(args, slog.String(FieldDebugTag, tag))
	}
	if len(args) == 0 {
		return logger
	}
	return logger.With(args...)
}

func stringValue(ctx context.Context, key ctxKey) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v, ok := ctx.Value(key).(string)
	return v, ok && v != ""
}
