// Package audio plays the runner theme and its sound effects through the
// system speaker. Every sound is synthesized; there are no asset files.
// When no audio device is available the jukebox stays silent.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/boko-runner/internal/core"
	"github.com/vovakirdan/boko-runner/internal/games/runner"
)

const sampleRate = beep.SampleRate(44100)

// Variant selects the theme played during a game.
type Variant uint8

const (
	VariantHard Variant = iota
	VariantEasy
)

// Effect is a short one-shot sound.
type Effect uint8

const (
	EffectCoin Effect = iota
	EffectEnemyDestroyed
	EffectFlatten
	EffectDamage
	EffectBonus
	EffectGameOver
)

// EffectFor maps a session event to its sound.
func EffectFor(kind core.EventKind) (Effect, bool) {
	switch kind {
	case core.EventCoinCollected:
		return EffectCoin, true
	case core.EventEnemyDestroyed:
		return EffectEnemyDestroyed, true
	case core.EventEnemyFlattened:
		return EffectFlatten, true
	case core.EventDamage:
		return EffectDamage, true
	case core.EventBonus:
		return EffectBonus, true
	case core.EventGameOver:
		return EffectGameOver, true
	}
	return 0, false
}

// newEffect builds the streamer of a one-shot effect.
func newEffect(e Effect) beep.Streamer {
	switch e {
	case EffectCoin:
		return NewChirpGenerator(sampleRate, 880, 1760, 90*time.Millisecond, 0.2)
	case EffectFlatten:
		return NewChirpGenerator(sampleRate, 520, 180, 140*time.Millisecond, 0.25)
	case EffectBonus:
		return NewChirpGenerator(sampleRate, 440, 1320, 220*time.Millisecond, 0.2)
	case EffectGameOver:
		return NewChirpGenerator(sampleRate, 400, 90, 600*time.Millisecond, 0.25)
	case EffectDamage:
		return beep.Take(sampleRate.N(180*time.Millisecond), NewNoiseGenerator(sampleRate, 180*time.Millisecond))
	default:
		return NewNoiseGenerator(sampleRate, 250*time.Millisecond)
	}
}

// Jukebox owns the speaker. It implements the session's music hooks
// (Start, Pause, Resume, Stop) and plays the event effects.
type Jukebox struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	theme       *beep.Ctrl
	variant     Variant
	music       bool // game music flag
	initialized bool
	logger      *log.Logger
}

var _ runner.Music = (*Jukebox)(nil)

// New creates a silent jukebox. Call Init to open the speaker.
func New(logger *log.Logger) *Jukebox {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Jukebox{
		mixer:  &beep.Mixer{},
		music:  true,
		logger: logger,
	}
}

// Init opens the speaker. On failure the jukebox stays silent and the
// error is logged and returned.
func (j *Jukebox) Init() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		j.logger.Warn("audio unavailable, continuing without sound", "err", err)
		return err
	}
	speaker.Play(j.mixer)
	j.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (j *Jukebox) Enabled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.initialized
}

// SetVariant selects the theme of the next Start.
func (j *Jukebox) SetVariant(v Variant) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.variant = v
}

// SetMusic sets the game music flag. Turning it off stops the theme;
// effects are not affected.
func (j *Jukebox) SetMusic(on bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.music = on
	if !on {
		j.stopThemeLocked()
	}
}

// Start plays the theme from the beginning.
func (j *Jukebox) Start() {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.stopThemeLocked()
	if !j.initialized || !j.music {
		return
	}
	ctrl := &beep.Ctrl{Streamer: NewThemeGenerator(sampleRate, j.variant)}
	j.theme = ctrl
	speaker.Lock()
	j.mixer.Add(ctrl)
	speaker.Unlock()
}

// Pause holds the theme at its current position.
func (j *Jukebox) Pause() {
	j.setPaused(true)
}

// Resume continues a paused theme.
func (j *Jukebox) Resume() {
	j.setPaused(false)
}

func (j *Jukebox) setPaused(paused bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.initialized || j.theme == nil {
		return
	}
	speaker.Lock()
	j.theme.Paused = paused
	speaker.Unlock()
}

// Stop ends the theme.
func (j *Jukebox) Stop() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.stopThemeLocked()
}

func (j *Jukebox) stopThemeLocked() {
	if j.theme == nil {
		return
	}
	if j.initialized {
		speaker.Lock()
		// A nil streamer makes the mixer drop the control on its next pass
		j.theme.Streamer = nil
		speaker.Unlock()
	}
	j.theme = nil
}

// Play starts a one-shot effect over the theme.
func (j *Jukebox) Play(e Effect) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.initialized {
		return
	}
	speaker.Lock()
	j.mixer.Add(newEffect(e))
	speaker.Unlock()
}

// PlayEvents plays the effect of every event that has one.
func (j *Jukebox) PlayEvents(events []core.Event) {
	for _, ev := range events {
		if e, ok := EffectFor(ev.Kind); ok {
			j.Play(e)
		}
	}
}

// Close silences everything. The speaker itself stays open for the
// lifetime of the process.
func (j *Jukebox) Close() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if !j.initialized {
		return
	}
	j.stopThemeLocked()
	speaker.Lock()
	j.mixer.Clear()
	speaker.Unlock()
	j.initialized = false
}
