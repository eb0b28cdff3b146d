package runner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/vovakirdan/boko-runner/internal/config"
	"github.com/vovakirdan/boko-runner/internal/core"
)

var testRuntime = core.RuntimeConfig{
	ScreenW:  90,
	ScreenH:  30,
	TickRate: 60,
	Seed:     12345,
}

// quietConfig returns the default config with spawning disabled.
func quietConfig() *config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Spawner.MinGap = 1e12
	return &cfg
}

func newQuietGame(t *testing.T, perks Perks) *Game {
	t.Helper()
	g := New(Options{Config: quietConfig(), Perks: perks})
	g.Reset(testRuntime)
	return g
}

// placeAtPlayer inserts an entity of kind standing on the floor under the player.
func placeAtPlayer(g *Game, kind Kind) Handle {
	_, h := kind.Size()
	return g.arena.Insert(NewEntity(kind, g.player.Box.X, g.cfg.Field.Floor-h))
}

type musicMock struct {
	mock.Mock
}

func (m *musicMock) Start()  { m.Called() }
func (m *musicMock) Pause()  { m.Called() }
func (m *musicMock) Resume() { m.Called() }
func (m *musicMock) Stop()   { m.Called() }

func TestNewRequiresConfig(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New without config should panic")
		}
	}()
	New(Options{})
}

func TestLifeUnchangedWithoutCollisions(t *testing.T) {
	g := newQuietGame(t, Perks{})
	in := core.NewInputFrame()

	for i := 0; i < 600; i++ {
		in.Clear()
		switch i % 90 {
		case 0:
			in.Set(core.ActionJump)
		case 30:
			in.Set(core.ActionRight)
		case 60:
			in.Set(core.ActionRelease)
		}
		g.Step(in)
		if g.player.Life() != 100 {
			t.Fatalf("tick %d: life = %d, expected 100", i, g.player.Life())
		}
	}
}

func TestHorizontalPositionStaysInField(t *testing.T) {
	g := newQuietGame(t, Perks{})
	maxX := g.cfg.Field.Width - g.player.Box.W
	in := core.NewInputFrame()

	pattern := []core.Action{core.ActionLeft, core.ActionRight, core.ActionRelease}
	for i := 0; i < 3000; i++ {
		in.Clear()
		// long runs in each direction to hit both edges
		in.Set(pattern[(i/200)%len(pattern)])
		if i%37 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
		if x := g.player.Box.X; x < 0 || x > maxX {
			t.Fatalf("tick %d: x = %f, expected within [0, %f]", i, x, maxX)
		}
	}
}

func TestMoveLeftAtLeftEdge(t *testing.T) {
	g := newQuietGame(t, Perks{})
	g.player.Box.X = 0

	in := core.NewInputFrame()
	in.Set(core.ActionLeft)
	g.Step(in)

	if g.player.Box.X != 0 {
		t.Errorf("x = %f, expected 0", g.player.Box.X)
	}
	if g.player.VX != 0 {
		t.Errorf("vx = %f, expected 0", g.player.VX)
	}
}

func TestEnemyDamage(t *testing.T) {
	tests := []struct {
		name     string
		kind     Kind
		shield   Shield
		expected int
	}{
		{"standard unshielded", KindStandardEnemy, ShieldNone, 90},
		{"totem unshielded", KindTotemEnemy, ShieldNone, 85},
		{"block unshielded", KindBlockEnemy, ShieldNone, 80},
		{"standard shielded", KindStandardEnemy, ShieldSoft, 100},
		{"totem shielded", KindTotemEnemy, ShieldSoft, 100},
		{"block shielded", KindBlockEnemy, ShieldSoft, 80},
		{"block hard shielded", KindBlockEnemy, ShieldHard, 100},
		{"standard hard shielded", KindStandardEnemy, ShieldHard, 100},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newQuietGame(t, Perks{})
			g.player.SetShield(tc.shield)
			placeAtPlayer(g, tc.kind)

			res := g.Step(core.NewInputFrame())

			if g.player.Life() != tc.expected {
				t.Errorf("life = %d, expected %d", g.player.Life(), tc.expected)
			}
			if !res.Has(core.EventEnemyDestroyed) {
				t.Error("expected an enemy destroyed event")
			}
			if g.ledger.Destroyed != 1 {
				t.Errorf("destroyed = %d, expected 1", g.ledger.Destroyed)
			}
		})
	}
}

func TestLethalHitEndsGameNextTick(t *testing.T) {
	music := &musicMock{}
	music.On("Start").Return()
	music.On("Stop").Return()

	g := New(Options{Config: quietConfig(), Music: music})
	g.Reset(testRuntime)

	g.player.SetLife(5)
	placeAtPlayer(g, KindBlockEnemy)

	res := g.Step(core.NewInputFrame())
	if g.player.Life() != 0 {
		t.Fatalf("life = %d, expected 0", g.player.Life())
	}
	if res.State.GameOver || g.Phase() != StateRunning {
		t.Fatalf("state = %v, expected RUNNING until the next tick", g.Phase())
	}

	res = g.Step(core.NewInputFrame())
	if g.Phase() != StateOver || !res.State.GameOver {
		t.Fatalf("state = %v, expected OVER", g.Phase())
	}
	if !res.Has(core.EventGameOver) {
		t.Error("expected a game over event")
	}

	// Further ticks do not settle the ledger again
	for i := 0; i < 5; i++ {
		if res := g.Step(core.NewInputFrame()); res.Has(core.EventGameOver) {
			t.Fatal("game over emitted twice")
		}
	}

	summary, ok := g.Summary()
	if !ok {
		t.Fatal("expected a recorded summary")
	}
	if summary.Destroyed != 1 {
		t.Errorf("summary destroyed = %d, expected 1", summary.Destroyed)
	}
	music.AssertNumberOfCalls(t, "Stop", 1)
	music.AssertExpectations(t)
}

func TestCoinCredit(t *testing.T) {
	tests := []struct {
		name     string
		perks    Perks
		expected int
	}{
		{"plain", Perks{}, 20},
		{"doubler", Perks{Doubler: true}, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			g := newQuietGame(t, tc.perks)
			placeAtPlayer(g, KindCoin)

			res := g.Step(core.NewInputFrame())

			var credited int
			for _, e := range res.Events {
				if e.Kind == core.EventCoinCollected {
					credited = e.Value
				}
			}
			if credited != tc.expected {
				t.Errorf("credited = %d, expected %d", credited, tc.expected)
			}
			if g.ledger.Coins != 1 || g.ledger.CoinsValue != tc.expected {
				t.Errorf("ledger = %d coins / %d value", g.ledger.Coins, g.ledger.CoinsValue)
			}
		})
	}
}

func TestOneCollisionPerPass(t *testing.T) {
	g := newQuietGame(t, Perks{})
	placeAtPlayer(g, KindCoin)
	placeAtPlayer(g, KindCoin)

	res := g.Step(core.NewInputFrame())
	if n := countEvents(res, core.EventCoinCollected); n != 1 {
		t.Fatalf("first tick collected %d coins, expected 1", n)
	}

	res = g.Step(core.NewInputFrame())
	if n := countEvents(res, core.EventCoinCollected); n != 1 {
		t.Fatalf("second tick collected %d coins, expected 1", n)
	}
}

func TestRemoveOneCollidedPerTick(t *testing.T) {
	g := newQuietGame(t, Perks{})
	for i := 0; i < 3; i++ {
		e := NewEntity(KindCoin, 600+float64(i)*40, 200)
		e.markCollided()
		g.arena.Insert(e)
	}

	for want := 2; want >= 0; want-- {
		g.Step(core.NewInputFrame())
		if g.arena.Len() != want {
			t.Fatalf("entities = %d, expected %d", g.arena.Len(), want)
		}
	}
}

func TestOffscreenEntitiesRemoved(t *testing.T) {
	g := newQuietGame(t, Perks{})
	g.arena.Insert(NewEntity(KindStandardEnemy, -29, 460))

	g.Step(core.NewInputFrame())
	if g.arena.Len() != 0 {
		t.Errorf("entities = %d, expected offscreen enemy removed", g.arena.Len())
	}
}

func TestStompFlattensEnemy(t *testing.T) {
	g := newQuietGame(t, Perks{})
	h := placeAtPlayer(g, KindStandardEnemy)
	e, _ := g.arena.Get(h)

	// Falling, one unit above the enemy's top
	g.player.airborne = true
	g.player.VY = 5
	g.player.Box.Y = e.Box.Y - g.player.Box.H - 1

	res := g.Step(core.NewInputFrame())

	if !res.Has(core.EventEnemyFlattened) {
		t.Fatal("expected a flattened event")
	}
	if g.player.Life() != 100 {
		t.Errorf("life = %d, expected no damage", g.player.Life())
	}
	if g.ledger.Flattened != 1 {
		t.Errorf("flattened = %d, expected 1", g.ledger.Flattened)
	}
	if g.player.VY >= 0 {
		t.Error("expected the player to bounce upward")
	}
}

func TestMegaFlattensOnContact(t *testing.T) {
	g := newQuietGame(t, Perks{})
	g.effects.Start(KindMegaBonus, g.tick, 100)
	placeAtPlayer(g, KindBlockEnemy)

	res := g.Step(core.NewInputFrame())

	if !res.Has(core.EventEnemyFlattened) || res.Has(core.EventDamage) {
		t.Errorf("events = %+v, expected flatten without damage", res.Events)
	}
}

func TestBonusEffects(t *testing.T) {
	t.Run("pv plus heals up to max", func(t *testing.T) {
		g := newQuietGame(t, Perks{})
		g.player.SetLife(95)
		placeAtPlayer(g, KindPVPlusBonus)
		g.Step(core.NewInputFrame())
		if g.player.Life() != 100 {
			t.Errorf("life = %d, expected 100", g.player.Life())
		}
	})

	t.Run("shield tier follows shop perk", func(t *testing.T) {
		for _, tc := range []struct {
			perks    Perks
			expected Shield
		}{
			{Perks{}, ShieldSoft},
			{Perks{ShieldPlus: true}, ShieldHard},
		} {
			g := newQuietGame(t, tc.perks)
			placeAtPlayer(g, KindShieldBonus)
			g.Step(core.NewInputFrame())
			if g.player.Shield() != tc.expected {
				t.Errorf("shield = %v, expected %v", g.player.Shield(), tc.expected)
			}
		}
	})

	t.Run("shield expires", func(t *testing.T) {
		g := newQuietGame(t, Perks{})
		placeAtPlayer(g, KindShieldBonus)
		for i := 0; i <= g.cfg.Bonuses.ShieldTicks+1; i++ {
			g.Step(core.NewInputFrame())
		}
		if g.player.Shield() != ShieldNone {
			t.Errorf("shield = %v, expected NONE after timeout", g.player.Shield())
		}
	})

	t.Run("slow speed reduces scroll only", func(t *testing.T) {
		g := newQuietGame(t, Perks{})
		normal := g.scrollSpeed()
		g.effects.Start(KindSlowSpeedBonus, g.tick, 100)
		slowed := g.scrollSpeed()
		if slowed >= normal {
			t.Errorf("slowed scroll %f should be below %f", slowed, normal)
		}
		if g.speed < normal {
			t.Error("game speed must not decrease")
		}
	})

	t.Run("fly plus lasts longer", func(t *testing.T) {
		cfg := config.DefaultRunnerConfig().Bonuses
		if duration(KindFlyBonus, cfg, Perks{FlyPlus: true}) <= duration(KindFlyBonus, cfg, Perks{}) {
			t.Error("fly_plus should extend fly")
		}
		if duration(KindMegaBonus, cfg, Perks{MegaPlus: true}) <= duration(KindMegaBonus, cfg, Perks{}) {
			t.Error("mega_plus should extend mega")
		}
	})
}

func TestPauseResumeLifecycle(t *testing.T) {
	music := &musicMock{}
	music.On("Start").Return()
	music.On("Pause").Return()
	music.On("Resume").Return()

	g := New(Options{Config: quietConfig(), Music: music})
	g.Reset(testRuntime)

	g.Step(core.NewInputFrame())
	tick := g.Tick()

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	res := g.Step(pause)
	if !res.State.Paused || g.Phase() != StatePaused {
		t.Fatalf("state = %v, expected PAUSED", g.Phase())
	}

	for i := 0; i < 10; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Tick() != tick {
		t.Errorf("tick advanced while paused: %d -> %d", tick, g.Tick())
	}

	resume := core.NewInputFrame()
	resume.Set(core.ActionResume)
	g.Step(resume)
	if g.Phase() != StateRunningSlowly {
		t.Fatalf("state = %v, expected RUNNING_SLOWLY", g.Phase())
	}

	for i := 0; i < g.cfg.Timing.ResumeGraceTicks; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Phase() != StateRunning {
		t.Errorf("state = %v, expected RUNNING after the grace window", g.Phase())
	}

	music.AssertNumberOfCalls(t, "Pause", 1)
	music.AssertNumberOfCalls(t, "Resume", 1)
	music.AssertExpectations(t)
}

// lethalHit leaves the player with zero life and the session still running.
func lethalHit(t *testing.T) *Game {
	t.Helper()
	g := newQuietGame(t, Perks{})
	g.player.SetLife(5)
	placeAtPlayer(g, KindBlockEnemy)
	g.Step(core.NewInputFrame())
	if g.player.Life() != 0 || g.Phase() != StateRunning {
		t.Fatalf("after hit: life=%d state=%v", g.player.Life(), g.Phase())
	}
	return g
}

func TestLethalHitWinsOverNextInput(t *testing.T) {
	tests := []struct {
		name   string
		action core.Action
	}{
		{"pause", core.ActionPause},
		{"quit", core.ActionQuit},
		{"jump", core.ActionJump},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := lethalHit(t)
			in := core.NewInputFrame()
			in.Set(tt.action)
			res := g.Step(in)

			if g.Phase() != StateOver || !res.State.GameOver {
				t.Fatalf("state = %v, expected OVER", g.Phase())
			}
			if !res.Has(core.EventGameOver) {
				t.Error("expected a game over event")
			}
			if _, ok := g.Summary(); !ok {
				t.Error("finished run should produce a summary")
			}
		})
	}
}

func TestDirectCallsAfterLethalHitSettleRun(t *testing.T) {
	g := lethalHit(t)
	g.Quit()
	if _, ok := g.Summary(); !ok || g.Phase() != StateOver {
		t.Errorf("Quit after death: state=%v summary=%v", g.Phase(), ok)
	}

	g = lethalHit(t)
	g.Pause()
	if _, ok := g.Summary(); !ok || g.Phase() != StateOver {
		t.Errorf("Pause after death: state=%v summary=%v", g.Phase(), ok)
	}
}

func TestQuitIsNotRecorded(t *testing.T) {
	g := newQuietGame(t, Perks{})
	in := core.NewInputFrame()
	in.Set(core.ActionQuit)
	res := g.Step(in)

	if !res.State.GameOver {
		t.Fatal("quit should end the session")
	}
	if _, ok := g.Summary(); ok {
		t.Error("abandoned run should not produce a summary")
	}
}

func TestSpeedAndDistanceNonDecreasing(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Player.MaxLife = 1 << 30
	g := New(Options{Config: &cfg})
	g.Reset(testRuntime)

	in := core.NewInputFrame()
	prevSpeed, prevDist := g.Speed(), g.ledger.Distance
	for i := 0; i < 5000; i++ {
		in.Clear()
		if i%45 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
		if g.Speed() < prevSpeed {
			t.Fatalf("tick %d: speed decreased %f -> %f", i, prevSpeed, g.Speed())
		}
		if g.ledger.Distance < prevDist {
			t.Fatalf("tick %d: distance decreased", i)
		}
		prevSpeed, prevDist = g.Speed(), g.ledger.Distance
	}
}

func TestZoneCyclesAndSpawnSuppression(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Player.MaxLife = 1 << 30
	cfg.Zone.Length = 200
	g := New(Options{Config: &cfg})
	g.Reset(testRuntime)

	zones := []Zone{}
	for i := 0; i < 20000 && len(zones) < 2; i++ {
		suppressed := g.zone.Suppressing()
		g.ClearNewEntities()
		res := g.Step(core.NewInputFrame())
		if suppressed && len(g.NewEntities()) > 0 {
			t.Fatalf("tick %d: entity spawned during a zone transition", i)
		}
		if res.Has(core.EventZoneChanged) {
			zones = append(zones, g.zone.Zone())
		}
	}

	if len(zones) != 2 {
		t.Fatalf("completed %d transitions, expected 2", len(zones))
	}
	if zones[0] != ZonePlain || zones[1] != ZoneHill {
		t.Errorf("zones = %v, expected [PLAIN HILL]", zones)
	}
}

func TestNewEntitiesDrain(t *testing.T) {
	g := New(Options{Config: func() *config.RunnerConfig { c := config.DefaultRunnerConfig(); return &c }()})
	g.Reset(testRuntime)

	for i := 0; i < 200 && len(g.NewEntities()) == 0; i++ {
		g.Step(core.NewInputFrame())
	}
	if len(g.NewEntities()) == 0 {
		t.Fatal("expected a spawned entity within 200 ticks")
	}
	for _, e := range g.NewEntities() {
		if e.Box.X > g.cfg.Field.Width {
			t.Errorf("new entity at x=%f beyond the field edge", e.Box.X)
		}
	}

	g.ClearNewEntities()
	if len(g.NewEntities()) != 0 {
		t.Error("ClearNewEntities should drain the collection")
	}
	if g.EntityCount() == 0 {
		t.Error("draining must not remove active entities")
	}
}

func TestDeterminism(t *testing.T) {
	g1 := New(Options{Config: func() *config.RunnerConfig { c := config.DefaultRunnerConfig(); return &c }()})
	g1.Reset(testRuntime)
	g2 := New(Options{Config: func() *config.RunnerConfig { c := config.DefaultRunnerConfig(); return &c }()})
	g2.Reset(testRuntime)

	in := core.NewInputFrame()
	for i := 0; i < 1500; i++ {
		in.Clear()
		if i%50 == 0 {
			in.Set(core.ActionJump)
		}
		if i%70 < 20 {
			in.Set(core.ActionRight)
		}
		g1.Step(in)
		g2.Step(in)
	}

	if s1, s2 := g1.Snapshot(), g2.Snapshot(); s1 != s2 {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
}

func TestResetRebuildsSession(t *testing.T) {
	g := newQuietGame(t, Perks{})
	g.player.SetLife(10)
	placeAtPlayer(g, KindCoin)
	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame())
	}

	g.Reset(testRuntime)
	s := g.Snapshot()
	if s.Tick != 0 || s.Life != 100 || s.Coins != 0 || s.Entities != 0 || s.Distance != 0 {
		t.Errorf("snapshot after reset = %+v", s)
	}
}

func TestRenderDrawsHUDAndPlayer(t *testing.T) {
	g := newQuietGame(t, Perks{})
	screen := core.NewScreen(90, 30)
	g.Render(screen)

	if row := screen.Row(0); !strings.ContainsRune(row, '♥') {
		t.Errorf("HUD row = %q, expected life indicator", row)
	}
	if !strings.ContainsRune(screen.String(), KindPlayer.Glyph()) {
		t.Error("expected the player glyph on screen")
	}

	g.Pause()
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("expected the pause overlay")
	}
}

func countEvents(res core.StepResult, kind core.EventKind) int {
	n := 0
	for _, e := range res.Events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
