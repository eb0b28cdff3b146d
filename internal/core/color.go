package core

// Color represents a foreground color for a screen cell.
// The platform maps each value to an ANSI 256-color style.
type Color uint8

// Palette used by the runner scene.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
	ColorDarkGray
)

// Cell is one character of the screen buffer together with its color.
type Cell struct {
	Rune  rune
	Color Color
}

// blank is the value every cell holds after Clear.
var blank = Cell{Rune: ' ', Color: ColorDefault}
