package core

// Color represents a foreground color for a screen cell.
// Rendered through lipgloss using ANSI 256-color codes.
type Color uint8

// Palette used by the game and HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorOrange
	ColorGray
)
