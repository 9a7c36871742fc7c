package core

// Color is a foreground color for a screen cell.
type Color uint8

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
	ColorBrightWhite
	ColorBrown
	ColorGray

	colorCount
)

// ansi256 holds the terminal palette index for each color.
// ColorDefault has none and keeps the terminal foreground.
var ansi256 = [colorCount]string{
	ColorRed:          "1",
	ColorGreen:        "2",
	ColorYellow:       "3",
	ColorCyan:         "6",
	ColorWhite:        "7",
	ColorBrightRed:    "9",
	ColorBrightGreen:  "10",
	ColorBrightYellow: "11",
	ColorBrightWhite:  "15",
	ColorBrown:        "130",
	ColorGray:         "245",
}

// ANSI returns the 256-color palette index of c, or "" for the default
// foreground and unknown values.
func (c Color) ANSI() string {
	if c >= colorCount {
		return ""
	}
	return ansi256[c]
}

// Colors lists every defined color, ColorDefault first.
func Colors() []Color {
	out := make([]Color, colorCount)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}
