package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/boko-runner/internal/core"
	"github.com/vovakirdan/boko-runner/internal/games/runner"
	"github.com/vovakirdan/boko-runner/internal/profile"
)

const saveTimeout = 5 * time.Second

// Game is the session driven by the game screen.
type Game interface {
	Reset(runtime core.RuntimeConfig)
	Step(in core.InputFrame) core.StepResult
	Render(dst *core.Screen)
	Phase() runner.State
	Quit()
	Summary() (runner.Summary, bool)
}

// Effects plays the sounds of tick events.
type Effects interface {
	PlayEvents(events []core.Event)
}

// Recorder keeps finished runs.
type Recorder interface {
	RecordGame(r profile.GameRecord) bool
	Save(ctx context.Context) error
}

type nopEffects struct{}

func (nopEffects) PlayEvents([]core.Event) {}

// GameOptions configure the game screen.
type GameOptions struct {
	Runtime      core.RuntimeConfig
	PausedTick   time.Duration // tick interval while paused or over
	ReleaseAfter int           // ticks without a direction key before braking
	Effects      Effects
	Recorder     Recorder
	Logger       *log.Logger
}

// savedMsg reports the end of an asynchronous save.
type savedMsg struct{ err error }

// GameModel is the Bubble Tea model of the game screen.
type GameModel struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	fixedSeed  bool
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	release    releaseTracker
	pausedTick time.Duration
	effects    Effects
	recorder   Recorder
	logger     *log.Logger

	summary  *runner.Summary
	newBest  bool
	saveErr  error
	exit     bool // leave the program
	quitting bool
}

// NewGameModel creates the game screen for game.
func NewGameModel(game Game, opts GameOptions) GameModel {
	cfg := opts.Runtime
	fixed := cfg.Seed != 0
	if !fixed {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if opts.PausedTick <= 0 {
		opts.PausedTick = 140 * time.Millisecond
	}
	if opts.Effects == nil {
		opts.Effects = nopEffects{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		fixedSeed:  fixed,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		release:    newReleaseTracker(opts.ReleaseAfter),
		pausedTick: opts.PausedTick,
		effects:    opts.Effects,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
	}
}

// Init starts the session and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The field is scaled onto the screen, so a resize keeps the run
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()

	case savedMsg:
		m.saveErr = msg.err
		if msg.err != nil {
			m.logger.Error("cannot save game", "err", msg.err)
		}
		return m, nil
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	phase := m.game.Phase()
	action := m.keyMapper.MapKey(msg, phase == runner.StatePaused)

	switch action {
	case core.ActionQuit:
		if msg.String() == "ctrl+c" {
			m.exit = true
		}
		m.game.Quit()
		if m.summary == nil {
			// A dead player's run is settled by Quit. The caller saves.
			m.record()
		}
		m.quitting = true
		return m, tea.Quit

	case core.ActionRestart:
		if phase == runner.StatePaused || phase == runner.StateOver {
			m.restart()
		}
		return m, nil

	case core.ActionNone:
		if phase == runner.StateOver && msg.String() == "enter" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, nil
}

func (m *GameModel) restart() {
	if !m.fixedSeed {
		m.config.Seed = time.Now().UnixNano()
	}
	m.game.Reset(m.config)
	m.inputFrame.Clear()
	m.release.reset()
	m.summary = nil
	m.newBest = false
	m.saveErr = nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	m.release.observe(&m.inputFrame)
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	m.effects.PlayEvents(result.Events)

	var save tea.Cmd
	if result.Has(core.EventGameOver) {
		save = m.record()
	}

	next := tickCmd(m.config.TickRate)
	if phase := m.game.Phase(); phase == runner.StatePaused || phase == runner.StateOver {
		next = tickAfter(m.pausedTick)
	}
	return m, tea.Batch(next, save)
}

// record folds the finished run into the profile and returns the
// command that persists it.
func (m *GameModel) record() tea.Cmd {
	s, ok := m.game.Summary()
	if !ok {
		return nil
	}
	m.summary = &s
	if m.recorder == nil {
		return nil
	}
	m.newBest = m.recorder.RecordGame(profile.RecordFromSummary(s))

	rec := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return savedMsg{err: rec.Save(ctx)}
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	if m.summary != nil {
		m.drawSummary()
	}
	return RenderScreen(m.screen)
}

// drawSummary writes the run totals under the game-over box.
func (m GameModel) drawSummary() {
	s := m.summary
	h := m.screen.Height()
	y := h/2 + 4
	if y >= h {
		return
	}

	line := fmt.Sprintf("Distance %d  |  Coins %d (+%d)  |  Enemies %d  |  Flattened %d  |  %s",
		s.Distance, s.Coins, s.CoinsValue, s.Destroyed, s.Flattened, s.Elapsed.Round(time.Second))
	m.screen.DrawTextCentered(y, line, core.ColorGray)

	switch {
	case m.saveErr != nil:
		m.screen.DrawTextCentered(y+1, "Could not save: "+m.saveErr.Error(), core.ColorBrightRed)
	case m.newBest:
		m.screen.DrawTextCentered(y+1, "New leaderboard entry!", core.ColorBrightYellow)
	}
}

// GameResult tells the caller where to go after the game screen.
type GameResult struct {
	Exit bool // leave the program instead of returning to the menu
}

// RunGame runs the game screen until the player leaves it.
func RunGame(game Game, opts GameOptions) (GameResult, error) {
	p := tea.NewProgram(NewGameModel(game, opts), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return GameResult{Exit: true}, err
	}
	m, ok := final.(GameModel)
	if !ok {
		return GameResult{Exit: true}, nil
	}
	return GameResult{Exit: m.exit}, nil
}
