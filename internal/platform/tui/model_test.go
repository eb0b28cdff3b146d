package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/boko-runner/internal/config"
	"github.com/vovakirdan/boko-runner/internal/core"
	"github.com/vovakirdan/boko-runner/internal/games/runner"
	"github.com/vovakirdan/boko-runner/internal/profile"
)

// fakeGame is a scripted session: it finishes on the tick named by overAt.
type fakeGame struct {
	phase  runner.State
	resets int
	seeds  []int64
	frames []core.InputFrame
	overAt int
	ticks  int
	quit   bool
	dead   bool // Quit settles the run instead of abandoning it
}

func (g *fakeGame) Reset(rt core.RuntimeConfig) {
	g.resets++
	g.seeds = append(g.seeds, rt.Seed)
	g.phase = runner.StateRunning
	g.ticks = 0
	g.quit = false
}

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a, v := range in.Actions {
		if v {
			frame.Set(a)
		}
	}
	g.frames = append(g.frames, frame)

	var events []core.Event
	switch {
	case g.phase == runner.StateOver:
	case in.Has(core.ActionPause):
		g.phase = runner.StatePaused
	case g.phase == runner.StatePaused:
		if in.Has(core.ActionResume) {
			g.phase = runner.StateRunningSlowly
		}
	default:
		g.ticks++
		events = append(events, core.Event{Kind: core.EventCoinCollected, Value: 20})
		if g.ticks == g.overAt {
			g.phase = runner.StateOver
			events = append(events, core.Event{Kind: core.EventGameOver, Value: 99})
		}
	}
	return core.StepResult{State: core.GameState{GameOver: g.phase == runner.StateOver}, Events: events}
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, g.phase.String())
}

func (g *fakeGame) Phase() runner.State { return g.phase }

func (g *fakeGame) Quit() {
	if g.phase == runner.StateOver {
		return
	}
	g.quit = !g.dead
	g.phase = runner.StateOver
}

func (g *fakeGame) Summary() (runner.Summary, bool) {
	if g.phase != runner.StateOver || g.quit {
		return runner.Summary{}, false
	}
	return runner.Summary{
		Difficulty: config.DifficultyEasy,
		Score:      99,
		Distance:   80,
		Coins:      1,
		CoinsValue: 20,
	}, true
}

type fakeRecorder struct {
	records []profile.GameRecord
	saves   int
	saveErr error
}

func (r *fakeRecorder) RecordGame(rec profile.GameRecord) bool {
	r.records = append(r.records, rec)
	return true
}

func (r *fakeRecorder) Save(context.Context) error {
	r.saves++
	return r.saveErr
}

type fakeEffects struct{ events []core.Event }

func (e *fakeEffects) PlayEvents(ev []core.Event) { e.events = append(e.events, ev...) }

func newTestGameModel(g *fakeGame, rec Recorder, fx Effects) GameModel {
	m := NewGameModel(g, GameOptions{
		Runtime:      core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7},
		ReleaseAfter: 2,
		Recorder:     rec,
		Effects:      fx,
	})
	m.Init()
	return m
}

func step(t *testing.T, m GameModel, msg any) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func tick(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return step(t, m, TickMsg(time.Now()))
}

func TestGameModelInitResets(t *testing.T) {
	g := &fakeGame{}
	newTestGameModel(g, nil, nil)
	if g.resets != 1 {
		t.Fatalf("resets = %d, want 1", g.resets)
	}
	if g.seeds[0] != 7 {
		t.Errorf("seed = %d, want 7", g.seeds[0])
	}
}

func TestGameModelKeysReachNextTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, nil, nil)

	m = step(t, m, keyMsg(" "))
	m = step(t, m, keyMsg("right"))
	m = tick(t, m)
	m = tick(t, m)

	if len(g.frames) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.frames))
	}
	if !g.frames[0].Has(core.ActionJump) || !g.frames[0].Has(core.ActionRight) {
		t.Errorf("first frame = %v, want jump and right", g.frames[0].Actions)
	}
	if !g.frames[1].Empty() {
		t.Errorf("second frame = %v, want empty", g.frames[1].Actions)
	}
}

func TestGameModelSynthesizesRelease(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, nil, nil)

	m = step(t, m, keyMsg("left"))
	for i := 0; i < 4; i++ {
		m = tick(t, m)
	}

	var released []int
	for i, f := range g.frames {
		if f.Has(core.ActionRelease) {
			released = append(released, i)
		}
	}
	if len(released) != 1 || released[0] != 2 {
		t.Errorf("release frames = %v, want [2]", released)
	}
}

func TestGameModelPauseAndResume(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, nil, nil)

	m = step(t, m, keyMsg("p"))
	m = tick(t, m)
	if g.phase != runner.StatePaused {
		t.Fatalf("phase = %v, want PAUSED", g.phase)
	}

	// Same key resumes while paused
	m = step(t, m, keyMsg("p"))
	tick(t, m)
	if g.phase != runner.StateRunningSlowly {
		t.Errorf("phase = %v, want RUNNING_SLOWLY", g.phase)
	}
}

func TestGameModelRestartOnlyWhenStopped(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, nil, nil)

	m = step(t, m, keyMsg("r"))
	if g.resets != 1 {
		t.Fatalf("restart while running reset the game")
	}

	m = step(t, m, keyMsg("p"))
	m = tick(t, m)
	step(t, m, keyMsg("r"))
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2 after restart from pause", g.resets)
	}
	if g.seeds[1] != 7 {
		t.Errorf("fixed seed changed on restart: %d", g.seeds[1])
	}
}

func TestGameModelRecordsGameOverOnce(t *testing.T) {
	g := &fakeGame{overAt: 2}
	rec := &fakeRecorder{}
	fx := &fakeEffects{}
	m := newTestGameModel(g, rec, fx)

	for i := 0; i < 5; i++ {
		m = tick(t, m)
	}

	if len(rec.records) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.records))
	}
	r := rec.records[0]
	if r.Score != 99 || r.Difficulty != profile.Easy || r.CoinsValue != 20 {
		t.Errorf("record = %+v", r)
	}
	if m.summary == nil || !m.newBest {
		t.Error("summary should be shown with the new entry flag")
	}

	var coins, overs int
	for _, e := range fx.events {
		switch e.Kind {
		case core.EventCoinCollected:
			coins++
		case core.EventGameOver:
			overs++
		}
	}
	if coins != 2 || overs != 1 {
		t.Errorf("effects: coins=%d overs=%d, want 2 and 1", coins, overs)
	}

	view := m.View()
	if !strings.Contains(view, "Distance 80") {
		t.Errorf("summary missing from view:\n%s", view)
	}
}

func TestGameModelSaveError(t *testing.T) {
	g := &fakeGame{overAt: 1}
	rec := &fakeRecorder{saveErr: errors.New("disk full")}
	m := newTestGameModel(g, rec, nil)

	m = tick(t, m)
	if len(rec.records) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.records))
	}

	// Deliver the save result by hand
	m = step(t, m, savedMsg{err: rec.Save(context.Background())})
	if m.saveErr == nil {
		t.Fatal("save error not kept")
	}
	if !strings.Contains(m.View(), "disk full") {
		t.Error("save error not shown")
	}
}

func TestGameModelQuitAbandons(t *testing.T) {
	g := &fakeGame{}
	rec := &fakeRecorder{}
	m := newTestGameModel(g, rec, nil)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(GameModel)
	if cmd == nil {
		t.Fatal("quit should stop the program")
	}
	if !g.quit {
		t.Error("session not abandoned")
	}
	if m.exit {
		t.Error("q goes home, not out of the program")
	}
	if len(rec.records) != 0 {
		t.Error("abandoned run recorded")
	}

	g2 := &fakeGame{}
	m2 := newTestGameModel(g2, nil, nil)
	next, _ = m2.Update(keyMsg("ctrl+c"))
	if !next.(GameModel).exit {
		t.Error("ctrl+c should leave the program")
	}
}

func TestGameModelQuitAfterDeathRecords(t *testing.T) {
	g := &fakeGame{dead: true}
	rec := &fakeRecorder{}
	m := newTestGameModel(g, rec, nil)

	next, cmd := m.Update(keyMsg("q"))
	if cmd == nil || !next.(GameModel).quitting {
		t.Fatal("quit should stop the program")
	}
	if len(rec.records) != 1 {
		t.Fatalf("records = %d, want 1", len(rec.records))
	}
	if rec.records[0].Score != 99 {
		t.Errorf("record = %+v", rec.records[0])
	}
}

func TestGameModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := newTestGameModel(g, nil, nil)

	m = step(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if g.resets != 1 {
		t.Error("resize reset the session")
	}
	if m.screen.Width() != 120 || m.screen.Height() != 40 {
		t.Errorf("screen = %dx%d, want 120x40", m.screen.Width(), m.screen.Height())
	}
}
