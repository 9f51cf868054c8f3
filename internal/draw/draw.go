// Package draw renders text frames to ANSI terminals.
package draw

import "strings"

// ANSI styles. Combine by concatenation.
const (
	ColorReset      = "\033[0m"
	ColorBold       = "\033[1m"
	ColorDim        = "\033[2m"
	ColorReverse    = "\033[7m"
	ColorRed        = "\033[31m"
	ColorGreen      = "\033[32m"
	ColorYellow     = "\033[33m"
	ColorMagenta    = "\033[35m"
	ColorCyan       = "\033[36m"
	ColorBrightRed  = "\033[91m"
	ColorBrightCyan = "\033[96m"
)

// Block characters for drawing.
const (
	BlockFull  = '█'
	BlockLight = '░'
	BlockEmpty = ' '
	HeartFull  = '♥'
	HeartEmpty = '♡'
)

// Bar renders value out of total as a width-cell gauge.
func Bar(value, total, width int) string {
	if width <= 0 {
		return ""
	}
	filled := 0
	if total > 0 {
		filled = min(max(value*width/total, 0), width)
	}
	return strings.Repeat(string(BlockFull), filled) + strings.Repeat(string(BlockLight), width-filled)
}

// Hearts renders hit points as full and empty hearts.
func Hearts(hp, maxHP int) string {
	hp = min(max(hp, 0), maxHP)
	return strings.Repeat(string(HeartFull), hp) + strings.Repeat(string(HeartEmpty), maxHP-hp)
}
