package countdown

import (
	"testing"
	"time"

	"pomotick/internal/core/model"
)

// Tests drive the engine with a fake clock and call tick directly; the real
// ticker is parked on an interval long enough to never fire.
const testTickInterval = time.Hour

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Advance(delta time.Duration) {
	clock.now = clock.now.Add(delta)
}

type memoryStore struct {
	session model.Session
	present bool
	saves   int
}

func (store *memoryStore) Load() (model.Session, bool) {
	return store.session, store.present
}

func (store *memoryStore) Save(session model.Session) error {
	store.session = session
	store.present = true
	store.saves++
	return nil
}

func (store *memoryStore) Clear() error {
	store.present = false
	return nil
}

type fakeCue struct {
	plays []bool
	stops int
}

func (cue *fakeCue) PlayTone(loop bool) {
	cue.plays = append(cue.plays, loop)
}

func (cue *fakeCue) Stop() {
	cue.stops++
}

type fakeHistory struct {
	modes   []model.Mode
	planned []int
}

func (history *fakeHistory) Record(mode model.Mode, plannedSeconds int, completedAt time.Time) error {
	history.modes = append(history.modes, mode)
	history.planned = append(history.planned, plannedSeconds)
	return nil
}

type fixture struct {
	clock   *fakeClock
	store   *memoryStore
	cue     *fakeCue
	history *fakeHistory
}

func newEngine(t *testing.T, session model.Session) (*Engine, *fixture) {
	t.Helper()
	env := &fixture{
		clock:   &fakeClock{now: baseTime},
		store:   &memoryStore{},
		cue:     &fakeCue{},
		history: &fakeHistory{},
	}
	engine := New(session, Config{
		TickInterval: testTickInterval,
		Clock:        env.clock.Now,
		Store:        env.store,
		Cue:          env.cue,
		History:      env.history,
	})
	t.Cleanup(engine.Close)
	return engine, env
}

func TestStartSetsDeadlineFromTimeLeft(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())

	engine.Start()

	session := engine.Session()
	if session.Status != model.StatusRunning {
		t.Fatalf("status = %q, want running", session.Status)
	}
	if session.Deadline == nil {
		t.Fatal("no deadline after start")
	}
	wantDeadline := env.clock.now.Add(1500 * time.Second).UnixMilli()
	if *session.Deadline != wantDeadline {
		t.Errorf("deadline = %d, want %d", *session.Deadline, wantDeadline)
	}

	// Immediately recomputing must not lose time.
	engine.tick()
	if got := engine.Session().TimeLeft; got != 1500 {
		t.Errorf("timeLeft after immediate tick = %d, want 1500", got)
	}
}

func TestStartClearsCompletionMessage(t *testing.T) {
	session := model.DefaultSession()
	session.CompletionMessage = "old news"
	engine, _ := newEngine(t, session)

	engine.Start()

	if got := engine.Session().CompletionMessage; got != "" {
		t.Errorf("completion message = %q, want empty", got)
	}
}

func TestPauseResumePreservesTimeLeft(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())
	engine.Start()

	env.clock.Advance(90 * time.Second)
	engine.Pause()

	session := engine.Session()
	if session.Status != model.StatusPaused {
		t.Fatalf("status = %q, want paused", session.Status)
	}
	if session.Deadline != nil {
		t.Error("paused session kept a deadline")
	}
	if session.TimeLeft != 1410 {
		t.Errorf("timeLeft = %d, want 1410", session.TimeLeft)
	}

	// A long pause must not cost any time.
	env.clock.Advance(3 * time.Hour)
	engine.Resume()
	engine.tick()

	if got := engine.Session().TimeLeft; got != 1410 {
		t.Errorf("timeLeft after resume = %d, want 1410", got)
	}
}

func TestTogglePause(t *testing.T) {
	engine, _ := newEngine(t, model.DefaultSession())

	engine.TogglePause() // idle: no-op
	if got := engine.Session().Status; got != model.StatusIdle {
		t.Fatalf("status = %q, want idle", got)
	}

	engine.Start()
	engine.TogglePause()
	if got := engine.Session().Status; got != model.StatusPaused {
		t.Fatalf("status = %q, want paused", got)
	}
	engine.TogglePause()
	if got := engine.Session().Status; got != model.StatusRunning {
		t.Fatalf("status = %q, want running", got)
	}
}

func TestOneMinuteFocusScenario(t *testing.T) {
	session := model.DefaultSession()
	engine, env := newEngine(t, session)
	engine.SetFocusMinutes(1)

	if got := engine.Session().TimeLeft; got != 60 {
		t.Fatalf("timeLeft after edit = %d, want 60", got)
	}

	engine.Start()
	env.clock.Advance(60 * time.Second)
	engine.tick()

	got := engine.Session()
	if got.Mode != model.ModeBreak {
		t.Errorf("mode = %q, want break", got.Mode)
	}
	if got.Status != model.StatusIdle {
		t.Errorf("status = %q, want idle", got.Status)
	}
	if got.TimeLeft != got.BreakDuration*60 {
		t.Errorf("timeLeft = %d, want %d", got.TimeLeft, got.BreakDuration*60)
	}
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())
	engine.SetFocusMinutes(1)
	engine.Start()

	env.clock.Advance(time.Minute)
	engine.tick()
	engine.tick()
	engine.tick()

	if len(env.cue.plays) != 1 {
		t.Errorf("tone played %d times, want 1", len(env.cue.plays))
	}
	if len(env.history.modes) != 1 {
		t.Errorf("history has %d records, want 1", len(env.history.modes))
	}
}

func TestFocusCompletionLoopsBreakCompletionDoesNot(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())
	engine.SetFocusMinutes(1)
	engine.SetBreakMinutes(1)

	engine.Start()
	env.clock.Advance(time.Minute)
	engine.tick()

	engine.Start()
	env.clock.Advance(time.Minute)
	engine.tick()

	wantPlays := []bool{true, false}
	if len(env.cue.plays) != len(wantPlays) {
		t.Fatalf("tone played %d times, want %d", len(env.cue.plays), len(wantPlays))
	}
	for i, loop := range wantPlays {
		if env.cue.plays[i] != loop {
			t.Errorf("play %d loop = %v, want %v", i, env.cue.plays[i], loop)
		}
	}
	if env.history.planned[0] != 60 || env.history.planned[1] != 60 {
		t.Errorf("planned seconds = %v, want [60 60]", env.history.planned)
	}
}

func TestStartSilencesLoopingAlert(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())
	engine.SetFocusMinutes(1)
	engine.Start()
	env.clock.Advance(time.Minute)
	engine.tick()

	stopsBefore := env.cue.stops
	engine.Start()
	if env.cue.stops <= stopsBefore {
		t.Error("starting the next interval did not stop the alert")
	}
}

func TestDurationEditSemantics(t *testing.T) {
	engine, _ := newEngine(t, model.DefaultSession())

	// Idle and in focus mode: focus edits apply immediately.
	engine.SetFocusMinutes(5)
	if got := engine.Session().TimeLeft; got != 300 {
		t.Errorf("timeLeft = %d, want 300", got)
	}

	// Break edits only touch configuration while mode is focus.
	engine.SetBreakMinutes(10)
	session := engine.Session()
	if session.TimeLeft != 300 {
		t.Errorf("break edit changed timeLeft to %d", session.TimeLeft)
	}
	if session.BreakDuration != 10 {
		t.Errorf("breakDuration = %d, want 10", session.BreakDuration)
	}

	// While running, edits are configuration-only.
	engine.Start()
	engine.SetFocusMinutes(30)
	session = engine.Session()
	if session.FocusDuration != 30 {
		t.Errorf("focusDuration = %d, want 30", session.FocusDuration)
	}
	if session.TimeLeft != 300 {
		t.Errorf("running edit changed timeLeft to %d", session.TimeLeft)
	}

	// Rubbish input coerces to the minimum.
	engine.Reset()
	engine.SetFocusMinutes(-7)
	if got := engine.Session().FocusDuration; got != model.MinMinutes {
		t.Errorf("focusDuration = %d, want %d", got, model.MinMinutes)
	}
}

func TestResetRestoresConfiguredDuration(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())
	engine.Start()
	env.clock.Advance(10 * time.Minute)
	engine.tick()

	engine.Reset()

	session := engine.Session()
	if session.Status != model.StatusIdle {
		t.Errorf("status = %q, want idle", session.Status)
	}
	if session.Deadline != nil {
		t.Error("reset kept a deadline")
	}
	if session.TimeLeft != 1500 {
		t.Errorf("timeLeft = %d, want 1500", session.TimeLeft)
	}
	if session.CompletionMessage != "" {
		t.Errorf("message = %q, want empty", session.CompletionMessage)
	}
}

func TestResetToDefaults(t *testing.T) {
	session := model.Session{
		FocusDuration:     50,
		BreakDuration:     20,
		Mode:              model.ModeBreak,
		Status:            model.StatusPaused,
		TimeLeft:          77,
		CompletionMessage: "whatever",
	}
	engine, _ := newEngine(t, session)

	engine.ResetToDefaults()

	if got := engine.Session(); got != model.DefaultSession() {
		t.Errorf("session = %+v, want defaults", got)
	}
}

func TestRunningSnapshotCatchesUp(t *testing.T) {
	deadline := baseTime.Add(90 * time.Second).UnixMilli()
	session := model.Session{
		FocusDuration: 25,
		BreakDuration: 5,
		Mode:          model.ModeFocus,
		Status:        model.StatusRunning,
		TimeLeft:      1500, // stale; must be ignored
		Deadline:      &deadline,
	}
	engine, _ := newEngine(t, session)

	if got := engine.Session().TimeLeft; got != 90 {
		t.Errorf("timeLeft = %d, want 90", got)
	}
	if got := engine.Session().Status; got != model.StatusRunning {
		t.Errorf("status = %q, want running", got)
	}
}

func TestExpiredSnapshotCompletesQuietly(t *testing.T) {
	deadline := baseTime.Add(-time.Hour).UnixMilli()
	session := model.Session{
		FocusDuration: 25,
		BreakDuration: 5,
		Mode:          model.ModeFocus,
		Status:        model.StatusRunning,
		TimeLeft:      1500,
		Deadline:      &deadline,
	}
	engine, env := newEngine(t, session)

	got := engine.Session()
	if got.Status != model.StatusIdle || got.Mode != model.ModeBreak {
		t.Errorf("session = %+v, want idle break", got)
	}
	if len(env.cue.plays) != 0 {
		t.Error("stale completion played a tone")
	}
	if len(env.history.modes) != 1 || env.history.modes[0] != model.ModeFocus {
		t.Errorf("history = %v, want one focus record", env.history.modes)
	}
}

func TestEveryMutationReachesTheStore(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())

	engine.Start()
	if env.store.session.Status != model.StatusRunning {
		t.Error("start not mirrored to store")
	}

	engine.Pause()
	if env.store.session.Status != model.StatusPaused {
		t.Error("pause not mirrored to store")
	}

	engine.SetBreakMinutes(7)
	if env.store.session.BreakDuration != 7 {
		t.Error("duration edit not mirrored to store")
	}
}

func TestEventsReportStateChanges(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())
	events := engine.Subscribe(16)

	engine.SetFocusMinutes(1)
	engine.Start()
	env.clock.Advance(time.Minute)
	engine.tick()

	var sawCompleted bool
	for len(events) > 0 {
		event := <-events
		if event.Type == EventCompleted {
			sawCompleted = true
			if event.Message != FocusFinishedMessage {
				t.Errorf("completed message = %q", event.Message)
			}
			if event.Display != "05:00" {
				t.Errorf("completed display = %q, want 05:00", event.Display)
			}
		}
	}
	if !sawCompleted {
		t.Error("no completed event observed")
	}
}

func TestCloseStopsEverything(t *testing.T) {
	engine, env := newEngine(t, model.DefaultSession())
	events := engine.Subscribe(1)
	engine.Start()

	engine.Close()

	if _, open := <-events; open {
		// Drain anything buffered, then the channel must be closed.
		for range events {
		}
	}
	stops := env.cue.stops
	if stops == 0 {
		t.Error("close did not silence the cue")
	}

	// Intents after close are no-ops.
	engine.Reset()
	if env.cue.stops != stops {
		t.Error("intent after close reached collaborators")
	}
}
