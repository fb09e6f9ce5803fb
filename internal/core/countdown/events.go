package countdown

import (
	"time"

	"pomotick/internal/core/model"
)

// EventType defines the type of Engine event.
type EventType string

const (
	EventTick        EventType = "tick"
	EventStateChange EventType = "state_change"
	EventCompleted   EventType = "completed"
)

// Event represents an Engine update for observers.
type Event struct {
	Type         EventType
	Mode         model.Mode
	Status       model.Status
	Remaining    int
	Display      string
	Message      string
	FocusMinutes int
	BreakMinutes int
	At           time.Time
}

func makeEvent(eventType EventType, session model.Session, at time.Time) Event {
	return Event{
		Type:         eventType,
		Mode:         session.Mode,
		Status:       session.Status,
		Remaining:    session.TimeLeft,
		Display:      model.FormatClock(session.TimeLeft),
		Message:      session.CompletionMessage,
		FocusMinutes: session.FocusDuration,
		BreakMinutes: session.BreakDuration,
		At:           at,
	}
}
