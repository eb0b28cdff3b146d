// Package config provides YAML-based runner configuration loading,
// environment defaults and difficulty management.
package config

import (
	"errors"
	"fmt"
)

// RunnerConfig contains all tunables of the runner simulation.
// Distances are field units (the field is Field.Width x Field.Height),
// velocities are units per tick and durations are ticks.
type RunnerConfig struct {
	Field      FieldConfig      `yaml:"field"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     PlayerConfig     `yaml:"player"`
	Spawner    SpawnerConfig    `yaml:"spawner"`
	Bonuses    BonusConfig      `yaml:"bonuses"`
	Zone       ZoneConfig       `yaml:"zone"`
	Score      ScoreConfig      `yaml:"score"`
	Timing     TimingConfig     `yaml:"timing"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// FieldConfig defines the logical playing field.
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Floor  float64 `yaml:"floor"` // y of the ground line
}

// PhysicsConfig defines player and scroll physics.
type PhysicsConfig struct {
	Gravity          float64 `yaml:"gravity"`
	JumpImpulse      float64 `yaml:"jump_impulse"`
	JumpLimit        float64 `yaml:"jump_limit"` // max height above the floor
	MoveSpeed        float64 `yaml:"move_speed"`
	Friction         float64 `yaml:"friction"`
	MaxFallSpeed     float64 `yaml:"max_fall_speed"`
	BaseSpeed        float64 `yaml:"base_speed"`
	FlyGravityFactor float64 `yaml:"fly_gravity_factor"`
}

// PlayerConfig defines the player's body.
type PlayerConfig struct {
	X       float64 `yaml:"x"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	MaxLife int     `yaml:"max_life"`
}

// SpawnerConfig defines spacing and type selection for spawned entities.
type SpawnerConfig struct {
	MinGap       float64        `yaml:"min_gap"`   // scrolled distance between two spawns
	ExtraGap     float64        `yaml:"extra_gap"` // random extra added on top of MinGap
	MaxElevation float64        `yaml:"max_elevation"`
	Weights      SpawnerWeights `yaml:"weights"`
}

// SpawnerWeights are the relative odds of each spawned kind.
type SpawnerWeights struct {
	Standard int `yaml:"standard"`
	Totem    int `yaml:"totem"`
	Block    int `yaml:"block"`
	Coin     int `yaml:"coin"`
	PVPlus   int `yaml:"pv_plus"`
	Mega     int `yaml:"mega"`
	Fly      int `yaml:"fly"`
	Slow     int `yaml:"slow"`
	Shield   int `yaml:"shield"`
}

// Total returns the sum of all weights.
func (w SpawnerWeights) Total() int {
	return w.Standard + w.Totem + w.Block + w.Coin + w.PVPlus + w.Mega + w.Fly + w.Slow + w.Shield
}

// BonusConfig defines timed bonus effects.
type BonusConfig struct {
	PVPlusLife     int     `yaml:"pv_plus_life"`
	MegaTicks      int     `yaml:"mega_ticks"`
	FlyTicks       int     `yaml:"fly_ticks"`
	SlowTicks      int     `yaml:"slow_ticks"`
	ShieldTicks    int     `yaml:"shield_ticks"`
	ExtensionTicks int     `yaml:"extension_ticks"` // added by mega_plus / fly_plus
	SlowFactor     float64 `yaml:"slow_factor"`
}

// ZoneConfig defines zone lengths and the transition sequence.
type ZoneConfig struct {
	Length           float64 `yaml:"length"`
	TransitionSpeed  float64 `yaml:"transition_speed"`
	SeamMargin       float64 `yaml:"seam_margin"`
	BackgroundWidth  float64 `yaml:"background_width"`
	AlphaStep        int     `yaml:"alpha_step"`
	PixelStep        float64 `yaml:"pixel_step"`
	FarSpeedFactor   float64 `yaml:"far_speed_factor"`
	TextureSwapWidth float64 `yaml:"texture_swap_width"`
}

// ScoreConfig defines the score and economy formula constants.
type ScoreConfig struct {
	CoinValue      int     `yaml:"coin_value"`
	DoublerFactor  int     `yaml:"doubler_factor"`
	DistanceFactor float64 `yaml:"distance_factor"`
	FlattenedBonus float64 `yaml:"flattened_bonus"`
}

// TimingConfig defines platform pacing values.
type TimingConfig struct {
	ResumeGraceTicks  int     `yaml:"resume_grace_ticks"`
	SlowlyFactor      float64 `yaml:"slowly_factor"`
	PausedTickMillis  int     `yaml:"paused_tick_ms"`
	ReleaseAfterTicks int     `yaml:"release_after_ticks"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over a run.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "distance", "time", or "none"
	MaxAt float64 `yaml:"max_at"` // distance/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
	GapReduction    float64 `yaml:"gap_reduction"`    // Spawn gap reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy DifficultyPreset = "easy"
	DifficultyHard DifficultyPreset = "hard"
)

// ParsePreset converts a user supplied name into a preset.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy or hard)", name)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.4
	default:
		return 0.0
	}
}

// Validate checks that the configuration describes a playable field.
func (c RunnerConfig) Validate() error {
	var errs []error
	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, errors.New("field size must be positive"))
	}
	if c.Field.Floor <= c.Player.Height || c.Field.Floor > c.Field.Height {
		errs = append(errs, errors.New("floor must fit the player inside the field"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player size must be positive"))
	}
	if c.Player.Width >= c.Field.Width {
		errs = append(errs, errors.New("player must be narrower than the field"))
	}
	if c.Player.MaxLife <= 0 {
		errs = append(errs, errors.New("max_life must be positive"))
	}
	if c.Physics.Gravity <= 0 || c.Physics.JumpImpulse <= 0 {
		errs = append(errs, errors.New("gravity and jump_impulse must be positive"))
	}
	if c.Physics.Friction <= 0 {
		errs = append(errs, errors.New("friction must be positive"))
	}
	if c.Spawner.Weights.Total() <= 0 {
		errs = append(errs, errors.New("spawner weights must not all be zero"))
	}
	if c.Spawner.MinGap <= 0 {
		errs = append(errs, errors.New("spawner min_gap must be positive"))
	}
	if c.Zone.TransitionSpeed <= 0 || c.Zone.Length <= 0 {
		errs = append(errs, errors.New("zone length and transition_speed must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid runner config: %w", errors.Join(errs...))
	}
	return nil
}
