package countdown

import (
	"math"
	"time"

	"pomotick/internal/core/model"
)

// Completion messages shown after an interval ends.
const (
	FocusFinishedMessage = "Focus finished! Time for a break."
	BreakFinishedMessage = "Break finished! Back to focus."
)

// Outcome reports what Advance did beyond recomputing the remaining time.
type Outcome struct {
	// Completed is true when the running interval reached zero.
	Completed bool
	// Finished is the mode of the interval that just ended.
	Finished model.Mode
}

// Advance is the single state-transition function for elapsed time. For a
// running session it recomputes TimeLeft from the wall-clock deadline and,
// when the deadline has passed, performs the interval-completion transition.
// Sessions that are idle or paused are returned unchanged. Both the periodic
// tick and the load-time catch-up go through here.
func Advance(session model.Session, now time.Time) (model.Session, Outcome) {
	if session.Status != model.StatusRunning || session.Deadline == nil {
		return session, Outcome{}
	}

	remaining := remainingSeconds(*session.Deadline, now)
	if remaining > 0 {
		session.TimeLeft = remaining
		return session, Outcome{}
	}

	finished := session.Mode
	return completeInterval(session), Outcome{Completed: true, Finished: finished}
}

func remainingSeconds(deadlineMillis int64, now time.Time) int {
	millis := deadlineMillis - now.UnixMilli()
	seconds := int(math.Round(float64(millis) / 1000))
	if seconds < 0 {
		return 0
	}
	return seconds
}

// completeInterval switches the session to the opposite mode, idle, with the
// next interval's full duration on the clock. Durations are kept as
// configured, never reset here.
func completeInterval(session model.Session) model.Session {
	session.Status = model.StatusIdle
	session.Deadline = nil

	switch session.Mode {
	case model.ModeFocus:
		session.Mode = model.ModeBreak
		session.CompletionMessage = FocusFinishedMessage
		session.TimeLeft = session.BreakDuration * 60
	default:
		session.Mode = model.ModeFocus
		session.CompletionMessage = BreakFinishedMessage
		session.TimeLeft = session.FocusDuration * 60
	}
	return session
}
