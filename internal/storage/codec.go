package storage

import (
	"errors"
	"strconv"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

// ErrCorruptSave is returned alongside default data when persisted state
// cannot be trusted.
var ErrCorruptSave = errors.New("storage: corrupt save data")

// Setting keys shared by every backend.
const (
	keyLanguage   = "language"
	keyDifficulty = "difficulty"
	keySkin       = "player_skin"
	keyWallet     = "wallet"
	keyMenuMusic  = "menu_music"
	keyGameMusic  = "game_music"
)

// settingKeys lists the settings in save order.
var settingKeys = []string{keyLanguage, keyDifficulty, keySkin, keyWallet, keyMenuMusic, keyGameMusic}

// settingType is the type attribute written for each setting in XML.
var settingType = map[string]string{
	keyLanguage:   "string",
	keyDifficulty: "int",
	keySkin:       "string",
	keyWallet:     "unsigned int",
	keyMenuMusic:  "boolean",
	keyGameMusic:  "boolean",
}

// encodeSettings flattens settings into key/value strings.
func encodeSettings(s profile.Settings) map[string]string {
	return map[string]string{
		keyLanguage:   string(s.Language),
		keyDifficulty: strconv.Itoa(int(s.Difficulty)),
		keySkin:       string(s.Skin),
		keyWallet:     strconv.Itoa(s.Wallet),
		keyMenuMusic:  strconv.FormatBool(s.MenuMusic),
		keyGameMusic:  strconv.FormatBool(s.GameMusic),
	}
}

// decodeSettings rebuilds settings from key/value strings. Missing keys keep
// their default; malformed values keep their default and are reported.
func decodeSettings(kv map[string]string) (profile.Settings, []string) {
	s := profile.DefaultSettings()
	var bad []string
	for key, raw := range kv {
		switch key {
		case keyLanguage:
			if l, err := profile.ParseLanguage(raw); err == nil {
				s.Language = l
				continue
			}
		case keyDifficulty:
			if d, err := profile.ParseDifficulty(raw); err == nil {
				s.Difficulty = d
				continue
			}
		case keySkin:
			if sk, err := profile.ParseSkin(raw); err == nil {
				s.Skin = sk
				continue
			}
		case keyWallet:
			if n, err := parseCount(raw); err == nil {
				s.Wallet = n
				continue
			}
		case keyMenuMusic:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.MenuMusic = b
				continue
			}
		case keyGameMusic:
			if b, err := strconv.ParseBool(raw); err == nil {
				s.GameMusic = b
				continue
			}
		default:
			// Unknown keys are ignored
			continue
		}
		bad = append(bad, key)
	}
	return s, bad
}

// parseCount parses a non-negative integer.
func parseCount(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
