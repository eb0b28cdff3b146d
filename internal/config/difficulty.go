package config

import "math"

// DifficultyManager calculates dynamic game parameters based on distance/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
// It never decreases as distance or ticks grow.
func (d *DifficultyManager) Level(distance float64, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := d.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "distance":
		progress = distance / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the scroll speed for the current difficulty level.
// Speed increases from base to base * (1 + speedMultiplier).
func (d *DifficultyManager) Speed(baseSpeed, distance float64, ticks int) float64 {
	level := d.Level(distance, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// Gap returns the spawn gap for the current difficulty level, never below floor.
func (d *DifficultyManager) Gap(baseGap, floor, distance float64, ticks int) float64 {
	level := d.Level(distance, ticks)
	return math.Max(baseGap-level*d.cfg.Scaling.GapReduction, floor)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
