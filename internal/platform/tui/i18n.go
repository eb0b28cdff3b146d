package tui

import "github.com/vovakirdan/boko-runner/internal/profile"

// Text keys of the translated labels.
const (
	txtPlay        = "play"
	txtShop        = "shop"
	txtLeaderboard = "leaderboard"
	txtSettings    = "settings"
	txtStatistics  = "statistics"
	txtQuit        = "quit"
	txtLanguage    = "language"
	txtDifficulty  = "difficulty"
	txtSkin        = "skin"
	txtMenuMusic   = "menu_music"
	txtGameMusic   = "game_music"
	txtClearScores = "clear_scores"
	txtClearData   = "clear_data"
	txtWallet      = "wallet"
	txtBought      = "bought"
	txtNoScores    = "no_scores"
	txtEasy        = "easy"
	txtHard        = "hard"
	txtOn          = "on"
	txtOff         = "off"
)

var translations = map[profile.Language]map[string]string{
	profile.English: {
		txtPlay:        "Play",
		txtShop:        "Shop",
		txtLeaderboard: "Leaderboard",
		txtSettings:    "Settings",
		txtStatistics:  "Statistics",
		txtQuit:        "Quit",
		txtLanguage:    "Language",
		txtDifficulty:  "Difficulty",
		txtSkin:        "Skin",
		txtMenuMusic:   "Menu music",
		txtGameMusic:   "Game music",
		txtClearScores: "Clear leaderboard",
		txtClearData:   "Clear all data",
		txtWallet:      "Wallet",
		txtBought:      "bought",
		txtNoScores:    "No scores recorded yet.",
		txtEasy:        "Easy",
		txtHard:        "Hard",
		txtOn:          "on",
		txtOff:         "off",
	},
	profile.French: {
		txtPlay:        "Jouer",
		txtShop:        "Boutique",
		txtLeaderboard: "Classement",
		txtSettings:    "Paramètres",
		txtStatistics:  "Statistiques",
		txtQuit:        "Quitter",
		txtLanguage:    "Langue",
		txtDifficulty:  "Difficulté",
		txtSkin:        "Apparence",
		txtMenuMusic:   "Musique du menu",
		txtGameMusic:   "Musique du jeu",
		txtClearScores: "Effacer le classement",
		txtClearData:   "Effacer toutes les données",
		txtWallet:      "Porte-monnaie",
		txtBought:      "acheté",
		txtNoScores:    "Aucun score pour le moment.",
		txtEasy:        "Facile",
		txtHard:        "Difficile",
		txtOn:          "oui",
		txtOff:         "non",
	},
	profile.Spanish: {
		txtPlay:        "Jugar",
		txtShop:        "Tienda",
		txtLeaderboard: "Clasificación",
		txtSettings:    "Ajustes",
		txtStatistics:  "Estadísticas",
		txtQuit:        "Salir",
		txtLanguage:    "Idioma",
		txtDifficulty:  "Dificultad",
		txtSkin:        "Aspecto",
		txtMenuMusic:   "Música del menú",
		txtGameMusic:   "Música del juego",
		txtClearScores: "Borrar clasificación",
		txtClearData:   "Borrar todos los datos",
		txtWallet:      "Monedero",
		txtBought:      "comprado",
		txtNoScores:    "Todavía no hay puntuaciones.",
		txtEasy:        "Fácil",
		txtHard:        "Difícil",
		txtOn:          "sí",
		txtOff:         "no",
	},
}

// tr returns the label of key in lang, falling back to English and then
// to the key itself.
func tr(lang profile.Language, key string) string {
	if s, ok := translations[lang][key]; ok {
		return s
	}
	if s, ok := translations[profile.English][key]; ok {
		return s
	}
	return key
}

func difficultyLabel(lang profile.Language, d profile.Difficulty) string {
	if d == profile.Easy {
		return tr(lang, txtEasy)
	}
	return tr(lang, txtHard)
}

func onOff(lang profile.Language, v bool) string {
	if v {
		return tr(lang, txtOn)
	}
	return tr(lang, txtOff)
}
