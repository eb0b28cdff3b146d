package profile

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/boko-runner/internal/config"
)

// Language is a UI language code.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Spanish Language = "es"
)

// Languages lists the supported languages in menu order.
var Languages = []Language{English, French, Spanish}

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	for _, l := range Languages {
		if string(l) == strings.ToLower(s) {
			return l, nil
		}
	}
	return "", fmt.Errorf("profile: unknown language %q", s)
}

// Difficulty is the persisted difficulty. The numeric values are part of
// the save format.
type Difficulty int

const (
	Easy Difficulty = 1
	Hard Difficulty = 2
)

// Difficulties lists every difficulty with a leaderboard.
var Difficulties = []Difficulty{Easy, Hard}

// String returns the difficulty name.
func (d Difficulty) String() string {
	if d == Easy {
		return "easy"
	}
	return "hard"
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	return d == Easy || d == Hard
}

// Preset returns the runner config preset for d.
func (d Difficulty) Preset() config.DifficultyPreset {
	if d == Easy {
		return config.DifficultyEasy
	}
	return config.DifficultyHard
}

// ParseDifficulty accepts "easy"/"hard" or the numeric save values.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "1":
		return Easy, nil
	case "hard", "2":
		return Hard, nil
	}
	return 0, fmt.Errorf("profile: unknown difficulty %q", s)
}

// Skin is the player appearance.
type Skin string

const (
	SkinDefault  Skin = "default"
	SkinMorphing Skin = "morphing"
	SkinPokeball Skin = "pokeball"
)

// Skins lists every skin in menu order.
var Skins = []Skin{SkinDefault, SkinMorphing, SkinPokeball}

// ParseSkin validates a skin name. "moblin" is the legacy name of the
// default skin.
func ParseSkin(s string) (Skin, error) {
	switch Skin(strings.ToLower(s)) {
	case SkinDefault, "moblin":
		return SkinDefault, nil
	case SkinMorphing:
		return SkinMorphing, nil
	case SkinPokeball:
		return SkinPokeball, nil
	}
	return "", fmt.Errorf("profile: unknown skin %q", s)
}

// Settings are the user preferences and the wallet.
type Settings struct {
	Language   Language
	Difficulty Difficulty
	Skin       Skin
	Wallet     int
	MenuMusic  bool
	GameMusic  bool
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Language:   English,
		Difficulty: Hard,
		Skin:       SkinDefault,
		Wallet:     0,
		MenuMusic:  false,
		GameMusic:  true,
	}
}

// sanitize replaces out-of-range values with defaults and reports whether
// anything was replaced.
func (s *Settings) sanitize() bool {
	def := DefaultSettings()
	fixed := false
	if _, err := ParseLanguage(string(s.Language)); err != nil {
		s.Language = def.Language
		fixed = true
	}
	if !s.Difficulty.Valid() {
		s.Difficulty = def.Difficulty
		fixed = true
	}
	if skin, err := ParseSkin(string(s.Skin)); err != nil {
		s.Skin = def.Skin
		fixed = true
	} else {
		s.Skin = skin
	}
	if s.Wallet < 0 {
		s.Wallet = 0
		fixed = true
	}
	return fixed
}
