package native

import (
	"fmt"
	"strconv"
	"strings"
)

// State mirrors the pipeline states of the media framework, numbered the
// same way.
type State int

const (
	StateVoidPending State = iota
	StateNull
	StateReady
	StatePaused
	StatePlaying
)

var stateNames = map[State]string{
	StateVoidPending: "void_pending",
	StateNull:        "null",
	StateReady:       "ready",
	StatePaused:      "paused",
	StatePlaying:     "playing",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	_, ok := stateNames[s]
	return ok
}

// ParseState accepts a state name (case-insensitive) or its number.
func ParseState(raw string) (State, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if n, err := strconv.Atoi(value); err == nil {
		s := State(n)
		if !s.Valid() {
			return StateVoidPending, fmt.Errorf("unknown pipeline state %d", n)
		}
		return s, nil
	}
	value = strings.ReplaceAll(value, "-", "_")
	for state, name := range stateNames {
		if name == value {
			return state, nil
		}
	}
	return StateVoidPending, fmt.Errorf("unknown pipeline state %q", raw)
}
