package countdown

import (
	"log"
	"sync"
	"time"

	"pomotick/internal/core/model"
)

// Store persists session snapshots between runs. Load reports false when no
// usable snapshot exists.
type Store interface {
	Load() (model.Session, bool)
	Save(session model.Session) error
	Clear() error
}

// AudioCue plays completion tones. Calls must not block; playback failures
// are the implementation's problem.
type AudioCue interface {
	PlayTone(loop bool)
	Stop()
}

// HistoryRecorder records completed intervals.
type HistoryRecorder interface {
	Record(mode model.Mode, plannedSeconds int, completedAt time.Time) error
}

// Config contains runtime options and collaborators for the Engine.
type Config struct {
	TickInterval time.Duration
	Clock        func() time.Time
	Store        Store
	Cue          AudioCue
	History      HistoryRecorder
}

// Engine is the session state machine. It owns the Session, serializes user
// intents and tick evaluation on one mutex, mirrors every mutation to the
// store, and fans events out to subscribers. The tick goroutine exists only
// while the session is running.
type Engine struct {
	mu       sync.Mutex
	session  model.Session
	options  Config
	events   []chan Event
	tickStop chan struct{}
	closed   bool
}

// New creates an Engine around the given session. A running snapshot is
// caught up against the current wall clock first, so time that elapsed while
// the process was down is accounted for before anything is displayed.
func New(session model.Session, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}

	engine := &Engine{
		session: session.Normalize(),
		options: options,
	}
	engine.mu.Lock()
	defer engine.mu.Unlock()

	now := options.Clock()
	caughtUp, outcome := Advance(engine.session, now)
	engine.session = caughtUp
	if outcome.Completed {
		// The interval ended while we were not around; log it, but stay
		// quiet. A tone for something long past would only confuse.
		engine.recordLocked(outcome, now)
	}
	engine.saveLocked()
	if engine.session.Status == model.StatusRunning {
		engine.startTickerLocked()
	}
	return engine
}

// Session returns a copy of the current session.
func (engine *Engine) Session() model.Session {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.session
}

// Subscribe registers a new observer channel.
func (engine *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	engine.mu.Lock()
	engine.events = append(engine.events, ch)
	engine.mu.Unlock()
	return ch
}

// Start begins counting down the current interval.
func (engine *Engine) Start() {
	engine.mu.Lock()
	if engine.closed || engine.session.Status != model.StatusIdle {
		engine.mu.Unlock()
		return
	}
	engine.stopToneLocked()

	now := engine.options.Clock()
	deadline := now.Add(time.Duration(engine.session.TimeLeft) * time.Second).UnixMilli()
	engine.session.CompletionMessage = ""
	engine.session.Deadline = &deadline
	engine.session.Status = model.StatusRunning
	engine.startTickerLocked()
	engine.saveLocked()
	session := engine.session
	engine.mu.Unlock()

	engine.emit(makeEvent(EventStateChange, session, now))
}

// Pause freezes a running countdown, capturing the remaining time.
func (engine *Engine) Pause() {
	engine.mu.Lock()
	if engine.closed || engine.session.Status != model.StatusRunning {
		engine.mu.Unlock()
		return
	}

	now := engine.options.Clock()
	if deadline := engine.session.Deadline; deadline != nil {
		engine.session.TimeLeft = remainingSeconds(*deadline, now)
	}
	engine.session.Deadline = nil
	engine.session.Status = model.StatusPaused
	engine.stopTickerLocked()
	engine.saveLocked()
	session := engine.session
	engine.mu.Unlock()

	engine.emit(makeEvent(EventStateChange, session, now))
}

// Resume continues a paused countdown from the captured remaining time.
func (engine *Engine) Resume() {
	engine.mu.Lock()
	if engine.closed || engine.session.Status != model.StatusPaused {
		engine.mu.Unlock()
		return
	}
	engine.stopToneLocked()

	now := engine.options.Clock()
	deadline := now.Add(time.Duration(engine.session.TimeLeft) * time.Second).UnixMilli()
	engine.session.Deadline = &deadline
	engine.session.Status = model.StatusRunning
	engine.startTickerLocked()
	engine.saveLocked()
	session := engine.session
	engine.mu.Unlock()

	engine.emit(makeEvent(EventStateChange, session, now))
}

// TogglePause pauses a running session or resumes a paused one.
func (engine *Engine) TogglePause() {
	engine.mu.Lock()
	status := engine.session.Status
	engine.mu.Unlock()

	switch status {
	case model.StatusRunning:
		engine.Pause()
	case model.StatusPaused:
		engine.Resume()
	}
}

// Reset returns the current interval to its configured duration, idle.
func (engine *Engine) Reset() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.stopToneLocked()
	engine.stopTickerLocked()

	now := engine.options.Clock()
	engine.session.Status = model.StatusIdle
	engine.session.Deadline = nil
	engine.session.CompletionMessage = ""
	engine.session.TimeLeft = engine.session.ConfiguredSeconds()
	engine.saveLocked()
	session := engine.session
	engine.mu.Unlock()

	engine.emit(makeEvent(EventStateChange, session, now))
}

// ResetToDefaults discards the session entirely: default durations, focus
// mode, idle.
func (engine *Engine) ResetToDefaults() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.stopToneLocked()
	engine.stopTickerLocked()

	now := engine.options.Clock()
	engine.session = model.DefaultSession()
	engine.saveLocked()
	session := engine.session
	engine.mu.Unlock()

	engine.emit(makeEvent(EventStateChange, session, now))
}

// SetFocusMinutes updates the configured focus duration. While idle and in
// focus mode the remaining time follows immediately; otherwise the new value
// only applies to future focus intervals.
func (engine *Engine) SetFocusMinutes(minutes int) {
	engine.setDuration(model.ModeFocus, minutes)
}

// SetBreakMinutes updates the configured break duration, with the same
// immediate-versus-deferred behavior as SetFocusMinutes.
func (engine *Engine) SetBreakMinutes(minutes int) {
	engine.setDuration(model.ModeBreak, minutes)
}

func (engine *Engine) setDuration(mode model.Mode, minutes int) {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}

	minutes = model.ClampMinutes(minutes)
	if mode == model.ModeFocus {
		engine.session.FocusDuration = minutes
	} else {
		engine.session.BreakDuration = minutes
	}
	if engine.session.Status == model.StatusIdle && engine.session.Mode == mode {
		engine.session.TimeLeft = minutes * 60
	}
	engine.saveLocked()
	session := engine.session
	engine.mu.Unlock()

	engine.emit(makeEvent(EventTick, session, engine.options.Clock()))
}

// Close stops the tick goroutine, silences any alert and closes observer
// channels. The Engine is unusable afterwards.
func (engine *Engine) Close() {
	engine.mu.Lock()
	if engine.closed {
		engine.mu.Unlock()
		return
	}
	engine.closed = true
	engine.stopToneLocked()
	engine.stopTickerLocked()
	engine.saveLocked()
	events := engine.events
	engine.events = nil
	engine.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (engine *Engine) startTickerLocked() {
	if engine.tickStop != nil {
		return
	}
	stop := make(chan struct{})
	engine.tickStop = stop
	go engine.runTicker(stop)
}

func (engine *Engine) stopTickerLocked() {
	if engine.tickStop == nil {
		return
	}
	close(engine.tickStop)
	engine.tickStop = nil
}

func (engine *Engine) runTicker(stop chan struct{}) {
	ticker := time.NewTicker(engine.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			engine.tick()
		}
	}
}

func (engine *Engine) tick() {
	engine.mu.Lock()
	if engine.closed || engine.session.Status != model.StatusRunning {
		engine.mu.Unlock()
		return
	}

	now := engine.options.Clock()
	next, outcome := Advance(engine.session, now)
	engine.session = next

	if outcome.Completed {
		engine.stopTickerLocked()
		engine.recordLocked(outcome, now)
		if engine.options.Cue != nil {
			engine.options.Cue.PlayTone(outcome.Finished == model.ModeFocus)
		}
	}
	engine.saveLocked()
	session := engine.session
	engine.mu.Unlock()

	if outcome.Completed {
		engine.emit(makeEvent(EventCompleted, session, now))
		engine.emit(makeEvent(EventStateChange, session, now))
		return
	}
	engine.emit(makeEvent(EventTick, session, now))
}

// recordLocked appends the finished interval to history. The planned length
// is the configured duration of the mode that finished, which completion
// does not touch.
func (engine *Engine) recordLocked(outcome Outcome, now time.Time) {
	if engine.options.History == nil {
		return
	}
	planned := engine.session.FocusDuration * 60
	if outcome.Finished == model.ModeBreak {
		planned = engine.session.BreakDuration * 60
	}
	if err := engine.options.History.Record(outcome.Finished, planned, now); err != nil {
		log.Printf("record interval: %v", err)
	}
}

func (engine *Engine) saveLocked() {
	if engine.options.Store == nil {
		return
	}
	if err := engine.options.Store.Save(engine.session); err != nil {
		log.Printf("save session: %v", err)
	}
}

func (engine *Engine) stopToneLocked() {
	if engine.options.Cue != nil {
		engine.options.Cue.Stop()
	}
}

func (engine *Engine) emit(event Event) {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	engine.emitLocked(event)
}

func (engine *Engine) emitLocked(event Event) {
	events := append([]chan Event(nil), engine.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
