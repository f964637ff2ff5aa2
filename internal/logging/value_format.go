package logging

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strconv"
)

func attrString(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return formatValue(v)
	}
}

func formatValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return quoteIfNeeded(v.String())
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindAny:
		return formatAny(v.Any())
	default:
		return quoteIfNeeded(v.String())
	}
}

// formatAny renders errors as their message and property trees or
// sequences as compact JSON.
func formatAny(value any) string {
	if err, ok := value.(error); ok {
		return quoteIfNeeded(err.Error())
	}
	if value != nil {
		switch reflect.TypeOf(value).Kind() {
		case reflect.Map, reflect.Slice:
			if data, err := json.Marshal(value); err == nil {
				return string(data)
			}
		}
	}
	return quoteIfNeeded(fmt.Sprint(value))
}

func quoteIfNeeded(s string) string {
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r <= ' ' || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
