package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// AppDirName is the per-user directory holding configs, the database and logs.
const AppDirName = ".boko-runner"

// LoadRunner loads the runner configuration.
// Search order: customPath -> ~/.boko-runner/configs/runner.yaml -> ./configs/runner.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names. A custom path that cannot be read or parsed is an error;
// the implicit locations silently fall through to the next candidate.
func LoadRunner(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := decodeRunner(data)
		if err != nil {
			return DefaultRunnerConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("runner.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := decodeRunner(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "runner.yaml")); err == nil {
		if cfg, err := decodeRunner(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := decodeRunner(defaultRunnerYAML); err == nil {
		return cfg, nil
	}
	return DefaultRunnerConfig(), nil // Fallback to hardcoded if embed fails
}

func decodeRunner(data []byte) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// AppDir returns ~/.boko-runner, or empty if home is unavailable.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, AppDirName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := AppDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// ApplyRunnerPreset modifies the config based on a difficulty preset.
// Whether progression is enabled stays as configured.
func ApplyRunnerPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)

	// Hard runs spawn denser and hit harder on speed
	switch preset {
	case DifficultyEasy:
		cfg.Spawner.ExtraGap = cfg.Spawner.ExtraGap * 1.25
		cfg.Difficulty.Scaling.SpeedMultiplier = cfg.Difficulty.Scaling.SpeedMultiplier * 0.75
	case DifficultyHard:
		cfg.Spawner.ExtraGap = cfg.Spawner.ExtraGap * 0.75
	}
}
