package game

import "fmt"

// RunState is the phase of the current run.
type RunState int

const (
	// StateIdle waits for a confirm input.
	StateIdle RunState = iota
	// StateRunning steps physics and obstacles.
	StateRunning
	// StateEnded freezes the scene until a reset input.
	StateEnded
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateEnded:
		return "ended"
	default:
		return fmt.Sprintf("RunState(%d)", int(s))
	}
}

// MarshalText encodes the state by name.
func (s RunState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name written by MarshalText.
func (s *RunState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = StateIdle
	case "running":
		*s = StateRunning
	case "ended":
		*s = StateEnded
	default:
		return fmt.Errorf("unknown run state %q", text)
	}
	return nil
}

// Event is a discrete input delivered by an input adapter.
type Event int

const (
	// EventConfirm arms the actor and starts the run.
	EventConfirm Event = iota + 1
	// EventFlap is a flap key press.
	EventFlap
	// EventReset discards the run and returns to idle.
	EventReset
	// EventQuit asks the program to exit.
	EventQuit
)

func (e Event) String() string {
	switch e {
	case EventConfirm:
		return "confirm"
	case EventFlap:
		return "flap"
	case EventReset:
		return "reset"
	case EventQuit:
		return "quit"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// EndCause records why a run ended.
type EndCause string

const (
	CauseNone   EndCause = ""
	CauseGround EndCause = "ground"
	CausePipe   EndCause = "pipe"
)
