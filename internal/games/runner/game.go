// Package runner implements the side-scrolling runner simulation: player
// physics, entity spawning, collisions, zone transitions, scoring and the
// session lifecycle. It has no terminal or storage dependencies; the platform
// drives it one tick at a time.
package runner

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boko-runner/internal/config"
	"github.com/vovakirdan/boko-runner/internal/core"
)

// State is the session lifecycle state.
type State uint8

const (
	StateRunning State = iota
	StateRunningSlowly
	StatePaused
	StateOver
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "RUNNING"
	case StateRunningSlowly:
		return "RUNNING_SLOWLY"
	case StatePaused:
		return "PAUSED"
	case StateOver:
		return "OVER"
	default:
		return "UNKNOWN"
	}
}

// Music is the theme player driven by the lifecycle.
type Music interface {
	Start()
	Pause()
	Resume()
	Stop()
}

type nopMusic struct{}

func (nopMusic) Start()  {}
func (nopMusic) Pause()  {}
func (nopMusic) Resume() {}
func (nopMusic) Stop()   {}

// Options configures a session. Config is required.
type Options struct {
	Config     *config.RunnerConfig
	Difficulty config.DifficultyPreset
	Perks      Perks
	Skin       string
	Music      Music
	Logger     *log.Logger
}

// Game is one runner session and its lifecycle.
type Game struct {
	cfg        config.RunnerConfig
	difficulty config.DifficultyPreset
	perks      Perks
	skin       string
	music      Music
	logger     *log.Logger
	runtime    core.RuntimeConfig

	state      State
	player     *Player
	arena      *Arena
	fresh      []Handle
	spawner    *Spawner
	zone       *ZoneSequencer
	ledger     Ledger
	effects    Effects
	difficMgr  *config.DifficultyManager
	speed      float64 // game speed, never decreases while running
	tick       int
	slowlyLeft int
	finalized  bool
	quit       bool
	summary    Summary
	events     []core.Event
}

// New creates a session from opts. It panics when opts.Config is nil.
func New(opts Options) *Game {
	if opts.Config == nil {
		panic("runner: New requires a config")
	}
	g := &Game{
		cfg:        *opts.Config,
		difficulty: opts.Difficulty,
		perks:      opts.Perks,
		skin:       opts.Skin,
		music:      opts.Music,
		logger:     opts.Logger,
	}
	if g.difficulty == "" {
		g.difficulty = config.DifficultyHard
	}
	if g.music == nil {
		g.music = nopMusic{}
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	config.ApplyRunnerPreset(&g.cfg, g.difficulty)
	g.reset(core.DefaultConfig())
	return g
}

// Reset starts a fresh session and its theme. Every bit of session state
// is rebuilt.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.reset(runtime)
	g.music.Start()
}

func (g *Game) reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	g.difficMgr = config.NewDifficultyManager(g.cfg.Difficulty)
	g.player = NewPlayer(&g.cfg)
	if g.arena == nil {
		g.arena = NewArena(32)
	} else {
		g.arena.Reset()
	}
	g.fresh = g.fresh[:0]
	if g.spawner == nil {
		g.spawner = NewSpawner(runtime.Seed, &g.cfg, g.difficMgr)
	} else {
		g.spawner.difficulty = g.difficMgr
		g.spawner.Reset(runtime.Seed)
	}
	if g.zone == nil {
		g.zone = NewZoneSequencer(g.cfg.Zone, g.cfg.Field.Width)
	} else {
		g.zone.Reset()
	}
	g.ledger = NewLedger(runtime.TickRate)
	g.effects.Reset()
	g.speed = g.difficMgr.Speed(g.cfg.Physics.BaseSpeed, 0, 0)
	g.tick = 0
	g.slowlyLeft = 0
	g.finalized = false
	g.quit = false
	g.summary = Summary{}
	g.events = g.events[:0]
	g.state = StateRunning
}

// ControlPlayerMovements moves the player left (-1) or right (+1).
func (g *Game) ControlPlayerMovements(dir int) {
	if !g.running() {
		return
	}
	g.player.ControlMovements(dir)
}

// Jump starts a jump when the player is grounded and not decelerating.
func (g *Game) Jump() {
	if !g.running() {
		return
	}
	g.player.Jump()
}

// Decelerate brakes the player after a directional key is released.
func (g *Game) Decelerate() {
	if !g.running() {
		return
	}
	g.player.Decelerate()
}

// Pause halts the simulation and pauses the theme. A dead player ends
// the session instead.
func (g *Game) Pause() {
	if !g.running() {
		return
	}
	if g.player.Dead() {
		g.finish()
		return
	}
	g.state = StatePaused
	g.music.Pause()
}

// Resume leaves the pause through the RUNNING_SLOWLY window.
func (g *Game) Resume() {
	if g.state != StatePaused {
		return
	}
	g.state = StateRunningSlowly
	g.slowlyLeft = g.cfg.Timing.ResumeGraceTicks
	g.music.Resume()
}

// Quit abandons the session. Nothing is recorded for an abandoned run,
// but a run whose player already died is settled as a normal game over.
func (g *Game) Quit() {
	if g.state == StateOver {
		return
	}
	if g.player.Dead() {
		g.finish()
		return
	}
	g.quit = true
	g.state = StateOver
	g.music.Stop()
}

func (g *Game) running() bool {
	return g.state == StateRunning || g.state == StateRunningSlowly
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = g.events[:0]

	if g.state == StateOver {
		return g.result()
	}

	// Life reached zero on the previous tick
	if g.player.Dead() {
		g.finish()
		return g.result()
	}

	if in.Has(core.ActionQuit) {
		g.Quit()
		return g.result()
	}

	if g.state == StatePaused {
		if in.Has(core.ActionResume) || in.Has(core.ActionPause) {
			g.Resume()
		}
		return g.result()
	}
	if in.Has(core.ActionPause) {
		g.Pause()
		return g.result()
	}

	g.tick++
	if g.state == StateRunningSlowly {
		g.slowlyLeft--
		if g.slowlyLeft <= 0 {
			g.state = StateRunning
		}
	}

	if dir := in.Direction(); dir != 0 {
		g.ControlPlayerMovements(dir)
	} else if in.Has(core.ActionRelease) {
		g.Decelerate()
	}
	if in.Has(core.ActionJump) {
		g.Jump()
	}

	// Player
	g.player.Move(g.gravityFactor())

	// Spawner
	scroll := g.scrollSpeed()
	g.arena.Each(func(_ Handle, e *Entity) bool {
		e.VX = -scroll
		e.Box.X += e.VX
		return true
	})
	if e, ok := g.spawner.MaybeSpawn(scroll, g.ledger.Distance, g.tick, g.zone.Suppressing()); ok {
		g.fresh = append(g.fresh, g.arena.Insert(e))
	}

	// Collisions
	g.removeOneCollided()
	g.resolveCollisions()
	g.removeOffscreen()

	// Zone
	if g.zone.Advance(g.ledger.Distance, scroll) {
		g.emit(core.EventZoneChanged, int(g.zone.Zone()), g.zone.Zone().String())
		g.logger.Debug("zone changed", "zone", g.zone.Zone(), "distance", int(g.ledger.Distance))
	}

	// Ledger
	g.ledger.advance(scroll, g.cfg.Score)
	g.expireBonuses()

	return g.result()
}

// scrollSpeed updates the game speed and returns this tick's scroll.
func (g *Game) scrollSpeed() float64 {
	if !g.zone.Suppressing() {
		target := g.difficMgr.Speed(g.cfg.Physics.BaseSpeed, g.ledger.Distance, g.tick)
		g.speed = math.Max(g.speed, target)
	}
	scroll := g.speed
	if g.effects.Has(KindSlowSpeedBonus, g.tick) {
		scroll *= g.cfg.Bonuses.SlowFactor
	}
	if g.state == StateRunningSlowly {
		scroll *= g.cfg.Timing.SlowlyFactor
	}
	return scroll
}

func (g *Game) gravityFactor() float64 {
	if g.effects.Has(KindFlyBonus, g.tick) {
		return g.cfg.Physics.FlyGravityFactor
	}
	return 1
}

// finish moves to OVER and settles the ledger exactly once.
func (g *Game) finish() {
	if g.finalized {
		return
	}
	g.finalized = true
	g.state = StateOver
	g.music.Stop()

	g.summary = Summary{
		Difficulty: g.difficulty,
		Score:      g.ledger.FinalScore(g.speed, g.cfg.Score.FlattenedBonus),
		Distance:   int(g.ledger.Distance),
		Coins:      g.ledger.Coins,
		CoinsValue: g.ledger.CoinsValue,
		Flattened:  g.ledger.Flattened,
		Destroyed:  g.ledger.Destroyed,
		Speed:      g.speed,
		Elapsed:    g.ledger.Elapsed(),
		Zone:       g.zone.Zone(),
	}
	g.emit(core.EventGameOver, g.summary.Score, string(g.difficulty))
	g.logger.Debug("game over", "score", g.summary.Score, "distance", g.summary.Distance, "coins", g.summary.Coins)
}

func (g *Game) emit(kind core.EventKind, value int, label string) {
	g.events = append(g.events, core.Event{Kind: kind, Value: value, Label: label})
}

func (g *Game) result() core.StepResult {
	var events []core.Event
	if len(g.events) > 0 {
		events = make([]core.Event, len(g.events))
		copy(events, g.events)
	}
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.summary.Score
	if !g.finalized {
		score = g.ledger.FinalScore(g.speed, g.cfg.Score.FlattenedBonus)
	}
	return core.GameState{
		Score:    score,
		GameOver: g.state == StateOver,
		Paused:   g.state == StatePaused,
	}
}

// Phase returns the lifecycle state.
func (g *Game) Phase() State {
	return g.state
}

// Player returns the player. Callers must treat it as read-only.
func (g *Game) Player() *Player {
	return g.player
}

// EachEntity calls fn for every active entity in spawn order.
func (g *Game) EachEntity(fn func(e Entity)) {
	g.arena.Each(func(_ Handle, e *Entity) bool {
		fn(*e)
		return true
	})
}

// EntityCount returns the number of active entities.
func (g *Game) EntityCount() int {
	return g.arena.Len()
}

// NewEntities returns the entities spawned since the last ClearNewEntities.
func (g *Game) NewEntities() []Entity {
	out := make([]Entity, 0, len(g.fresh))
	for _, h := range g.fresh {
		if e, ok := g.arena.Get(h); ok {
			out = append(out, *e)
		}
	}
	return out
}

// ClearNewEntities drains the newly spawned collection.
func (g *Game) ClearNewEntities() {
	g.fresh = g.fresh[:0]
}

// Zone returns the background state.
func (g *Game) Zone() ZoneView {
	return g.zone.View()
}

// Ledger returns a copy of the running totals.
func (g *Game) Ledger() Ledger {
	return g.ledger
}

// Speed returns the current game speed.
func (g *Game) Speed() float64 {
	return g.speed
}

// Effects returns the running timed bonuses.
func (g *Game) Effects() []Effect {
	return g.effects.Active()
}

// Tick returns the number of simulated ticks.
func (g *Game) Tick() int {
	return g.tick
}

// Summary returns the settled result of a finished run. ok is false while
// the run is going or when it was abandoned with Quit.
func (g *Game) Summary() (Summary, bool) {
	return g.summary, g.finalized && !g.quit
}

// Difficulty returns the session difficulty.
func (g *Game) Difficulty() config.DifficultyPreset {
	return g.difficulty
}
