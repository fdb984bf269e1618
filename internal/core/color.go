package core

// Color identifies the foreground of a screen cell. Values below tileBase are
// named terminal colors; the rest encode a tile level that the frontend
// turns into its own hue.
type Color uint8

// Named colors.
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
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

const tileBase Color = 128

// MaxTileLevel is the highest level TileLevelColor can encode.
const MaxTileLevel = int(^Color(0) - tileBase)

// TileLevelColor encodes a tile level as a color. Levels outside
// [1, MaxTileLevel] are clamped.
func TileLevelColor(level int) Color {
	level = max(1, min(level, MaxTileLevel))
	return tileBase + Color(level)
}

// TileLevel reports the level encoded by c, if any.
func (c Color) TileLevel() (int, bool) {
	if c <= tileBase {
		return 0, false
	}
	return int(c - tileBase), true
}
