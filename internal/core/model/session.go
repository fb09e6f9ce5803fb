package model

import (
	"fmt"
	"strconv"
	"time"
)

// Mode identifies which interval type is current or upcoming.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

// Status identifies the session lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

const (
	DefaultFocusMinutes = 25
	DefaultBreakMinutes = 5

	// MinMinutes is the floor applied to any duration input.
	MinMinutes = 1
)

// Session is the single persisted entity: interval configuration plus the
// live countdown state. The JSON layout doubles as the snapshot format.
type Session struct {
	FocusDuration     int    `json:"focusDuration"`
	BreakDuration     int    `json:"breakDuration"`
	Mode              Mode   `json:"mode"`
	Status            Status `json:"status"`
	TimeLeft          int    `json:"timeLeft"`
	CompletionMessage string `json:"completionMessage"`
	Deadline          *int64 `json:"deadline"`
}

// DefaultSession returns an idle focus session with default durations.
func DefaultSession() Session {
	return Session{
		FocusDuration: DefaultFocusMinutes,
		BreakDuration: DefaultBreakMinutes,
		Mode:          ModeFocus,
		Status:        StatusIdle,
		TimeLeft:      DefaultFocusMinutes * 60,
	}
}

// ConfiguredSeconds returns the configured length of the current mode's
// interval in seconds.
func (session Session) ConfiguredSeconds() int {
	if session.Mode == ModeBreak {
		return session.BreakDuration * 60
	}
	return session.FocusDuration * 60
}

// DeadlineTime converts the millisecond deadline to a time.Time.
// The second return value is false when no deadline is set.
func (session Session) DeadlineTime() (time.Time, bool) {
	if session.Deadline == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*session.Deadline), true
}

// Normalize repairs a session so that it satisfies the model invariants:
// durations at least MinMinutes, known mode and status, TimeLeft never
// negative, and a deadline present exactly while running. Snapshots loaded
// from storage pass through here before use.
func (session Session) Normalize() Session {
	session.FocusDuration = ClampMinutes(session.FocusDuration)
	session.BreakDuration = ClampMinutes(session.BreakDuration)

	if session.Mode != ModeFocus && session.Mode != ModeBreak {
		session.Mode = ModeFocus
	}
	switch session.Status {
	case StatusIdle, StatusRunning, StatusPaused:
	default:
		session.Status = StatusIdle
	}

	if session.TimeLeft < 0 {
		session.TimeLeft = 0
	}

	if session.Status == StatusRunning {
		if session.Deadline == nil {
			// Running without a deadline is unrecoverable; park the session.
			session.Status = StatusPaused
		}
	} else {
		session.Deadline = nil
	}

	return session
}

// ClampMinutes coerces a duration to the minimum of one minute.
func ClampMinutes(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	return minutes
}

// ParseMinutes interprets user input as whole minutes. Non-numeric, zero and
// negative values all coerce to the minimum rather than erroring.
func ParseMinutes(text string) int {
	parsed, err := strconv.Atoi(text)
	if err != nil {
		return MinMinutes
	}
	return ClampMinutes(parsed)
}

// FormatClock renders remaining seconds as MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
