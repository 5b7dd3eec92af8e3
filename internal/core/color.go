package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
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
	ColorBrightBlue
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDim
)

var colorTags = map[string]Color{
	"red":           ColorRed,
	"green":         ColorGreen,
	"yellow":        ColorYellow,
	"blue":          ColorBlue,
	"magenta":       ColorMagenta,
	"cyan":          ColorCyan,
	"white":         ColorWhite,
	"bright_red":    ColorBrightRed,
	"bright_green":  ColorBrightGreen,
	"bright_yellow": ColorBrightYellow,
	"bright_blue":   ColorBrightBlue,
	"bright_white":  ColorBrightWhite,
	"orange":        ColorOrange,
	"gray":          ColorGray,
}

// ColorForTag maps a visual tag from the archetype table or sprite sheet to
// a terminal color. Unknown tags fall back to ColorDefault.
func ColorForTag(tag string) Color {
	if c, ok := colorTags[tag]; ok {
		return c
	}
	return ColorDefault
}
