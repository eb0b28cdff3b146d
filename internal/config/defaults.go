package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the default runner configuration.
// It mirrors defaults/runner.yaml and is used when the embedded file
// cannot be parsed.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Field: FieldConfig{
			Width:  900,
			Height: 600,
			Floor:  490,
		},
		Physics: PhysicsConfig{
			Gravity:          0.6,
			JumpImpulse:      13.0,
			JumpLimit:        170,
			MoveSpeed:        6.0,
			Friction:         0.5,
			MaxFallSpeed:     16.0,
			BaseSpeed:        5.0,
			FlyGravityFactor: 0.35,
		},
		Player: PlayerConfig{
			X:       100,
			Width:   30,
			Height:  30,
			MaxLife: 100,
		},
		Spawner: SpawnerConfig{
			MinGap:       140,
			ExtraGap:     220,
			MaxElevation: 120,
			Weights: SpawnerWeights{
				Standard: 30,
				Totem:    12,
				Block:    10,
				Coin:     35,
				PVPlus:   3,
				Mega:     3,
				Fly:      3,
				Slow:     2,
				Shield:   3,
			},
		},
		Bonuses: BonusConfig{
			PVPlusLife:     10,
			MegaTicks:      300,
			FlyTicks:       300,
			SlowTicks:      240,
			ShieldTicks:    360,
			ExtensionTicks: 180,
			SlowFactor:     0.6,
		},
		Zone: ZoneConfig{
			Length:           1500,
			TransitionSpeed:  10,
			SeamMargin:       100,
			BackgroundWidth:  1200,
			AlphaStep:        5,
			PixelStep:        0.009,
			FarSpeedFactor:   0.5,
			TextureSwapWidth: 5,
		},
		Score: ScoreConfig{
			CoinValue:      20,
			DoublerFactor:  2,
			DistanceFactor: 0.1,
			FlattenedBonus: 25,
		},
		Timing: TimingConfig{
			ResumeGraceTicks:  60,
			SlowlyFactor:      0.5,
			PausedTickMillis:  140,
			ReleaseAfterTicks: 8,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 6000,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.5,
				GapReduction:    120,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}
