// Package charmap holds custom character bitmaps for serial character LCDs.
//
// HD44780-class displays provide eight CGRAM slots of 5x8 pixel characters,
// addressed on the wire as character codes 0-7. Each Glyph is eight rows,
// top to bottom, with the five least significant bits of each row holding
// the pixels (bit 4 = leftmost column).
//
// The tables here are read-only resources: the display driver consumes them
// by value when uploading, nothing in this package has behavior beyond
// bounds-safe lookup.
package charmap

// Glyph is one 5x8 custom character, eight rows top to bottom. Only the
// low five bits of each row are visible.
type Glyph [8]byte

// Rows returns the glyph's row bytes masked to the visible five columns.
func (g Glyph) Rows() [8]byte {
	var rows [8]byte
	for i, row := range g {
		rows[i] = row & 0x1F
	}
	return rows
}

// Character codes for the builtin set once uploaded.
const (
	CodeNote      = 0
	CodeArrowUp   = 1
	CodeArrowDown = 2
	CodeBarLow    = 3
	CodeBarMid    = 4
	CodeBarHigh   = 5
	CodeBarFull   = 6
	CodeBlock     = 7
)

// Builtin is the stock front-panel set: an eighth note, scroll arrows, and
// a four-step level bar.
var Builtin = []Glyph{
	{0x06, 0x05, 0x04, 0x04, 0x0C, 0x1C, 0x18, 0x00}, // note
	{0x04, 0x0E, 0x1F, 0x04, 0x04, 0x04, 0x04, 0x00}, // arrow up
	{0x04, 0x04, 0x04, 0x04, 0x1F, 0x0E, 0x04, 0x00}, // arrow down
	{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F}, // bar low
	{0x00, 0x00, 0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F}, // bar mid
	{0x00, 0x00, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // bar high
	{0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F, 0x1F}, // bar full
	{0x1F, 0x11, 0x11, 0x11, 0x11, 0x11, 0x1F, 0x00}, // hollow block
}

// Lookup returns set[i], or a blank glyph when i is out of range.
func Lookup(set []Glyph, i int) Glyph {
	if i < 0 || i >= len(set) {
		return Glyph{}
	}
	return set[i]
}
