package serlcd

import (
	"errors"
	"fmt"

	"github.com/kleist-audio/frontpanel/charmap"
)

const (
	// NoCursor hides the cursor overlay when passed to SetCursor.
	NoCursor = 0xFF

	cmdEscape  = 0xFE // precedes a DDRAM address byte
	cmdSetting = 0x7C // precedes a settings byte (brightness)
	cmdClear   = 0x01
	cgramBase  = 0x40
)

// ErrBusy is returned by one-shot setup commands when the transport cannot
// take the whole burst right now.
var ErrBusy = errors.New("serlcd: transport busy")

// Transport is the byte-oriented output channel the driver converges
// through. Write must not block; the driver always checks Writable first.
// *txbuf.Output satisfies it.
type Transport interface {
	Writable() int
	Write(b byte)
}

// Opts is the configuration for the display.
type Opts struct {
	// Display dimensions in characters.
	W int // Columns (default: 16, must be a power of two, 2 to 64)
	H int // Rows (default: 2, must be 1 or 2)

	// BlinkPeriod is the number of ticks between blink phase flips and
	// doubles as the status overlay lifetime. Must be a power of two.
	// Defaults to 128.
	BlinkPeriod int

	// CursorGlyph is the character shown at the cursor cell during the
	// on phase. Defaults to 0xFF (the full block).
	CursorGlyph byte
}

// Dev is the device handle for the display.
//
// Dev is not safe for concurrent use: Tick and the writer calls are meant
// to be driven from one non-reentrant timer context.
type Dev struct {
	t Transport

	// Geometry. The power-of-two width makes row/column splits and the
	// scan wraparound plain masks.
	w, h     int
	colMask  int
	sizeMask int
	rowShift uint // scales the row bits into the DDRAM address

	// Character pages: what the display ought to show (desired) and
	// what it currently shows (shadow).
	desired []byte
	shadow  []byte

	scan      int
	lastWrite int

	blinkClock int
	blinkMask  int
	blink      bool

	cursor      int // linear cell index; out of range means hidden
	cursorGlyph byte
	status      byte // pending overlay glyph + 1, 0 when none
}

// New returns a driver converging through t.
// opts can be nil to use defaults (16x2, blink period 128).
func New(t Transport, opts *Opts) (*Dev, error) {
	if t == nil {
		return nil, errors.New("serlcd: transport is required")
	}
	if opts == nil {
		opts = &Opts{}
	}

	w := opts.W
	if w == 0 {
		w = 16
	}
	if w < 2 || w > 64 || w&(w-1) != 0 {
		return nil, errors.New("serlcd: width must be a power of two between 2 and 64")
	}
	h := opts.H
	if h == 0 {
		h = 2
	}
	if h < 1 || h > 2 {
		return nil, errors.New("serlcd: height must be 1 or 2")
	}
	period := opts.BlinkPeriod
	if period == 0 {
		period = 128
	}
	if period < 2 || period&(period-1) != 0 {
		return nil, errors.New("serlcd: blink period must be a power of two and at least 2")
	}
	glyph := opts.CursorGlyph
	if glyph == 0 {
		glyph = 0xFF
	}

	var shift uint
	for v := 64 / w; v > 1; v >>= 1 {
		shift++
	}

	d := &Dev{
		t:           t,
		w:           w,
		h:           h,
		colMask:     w - 1,
		sizeMask:    w*h - 1,
		rowShift:    shift,
		desired:     make([]byte, w*h),
		shadow:      make([]byte, w*h),
		lastWrite:   -1,
		blinkMask:   period - 1,
		cursor:      NoCursor,
		cursorGlyph: glyph,
	}
	for i := range d.desired {
		d.desired[i] = ' '
	}
	// A value no character can take, so the first sweep repaints
	// everything.
	for i := range d.shadow {
		d.shadow[i] = '?'
	}
	return d, nil
}

// WriteRow copies text into the desired page at the given row. It stops at
// the row width or at a NUL byte. Bytes that collide with the wire
// protocol's command escapes (0x08-0x1F, 0x7C, 0xFE) are replaced with
// blanks; bytes below 0x08 pass through as custom glyph codes. Cells past
// the end of text keep their previous content.
func (d *Dev) WriteRow(row int, text string) {
	if row < 0 || row >= d.h {
		return
	}
	dst := row * d.w
	n := len(text)
	if n > d.w {
		n = d.w
	}
	for i := 0; i < n; i++ {
		c := text[i]
		if c == 0 {
			break
		}
		if c == cmdSetting || c == cmdEscape || (c >= 0x08 && c < 0x20) {
			c = ' '
		}
		d.desired[dst+i] = c
	}
}

// SetCursor places the blinking cursor overlay at the given linear cell
// index. NoCursor (or any index outside the display) hides it.
func (d *Dev) SetCursor(pos uint8) {
	d.cursor = int(pos)
}

// SetStatus arms the one-shot status overlay. The glyph shows in the first
// row's leftmost or rightmost cell, whichever is blank in the desired page,
// and expires when the blink clock wraps. The scan jumps so the status cell
// is revisited promptly.
func (d *Dev) SetStatus(glyph byte) {
	// The cursor blink and the status lifetime share this clock on
	// purpose: one counter covers both.
	d.blinkClock = 0
	d.status = glyph + 1
	if d.desired[0] == ' ' {
		d.scan = 0
	} else {
		d.scan = d.w - 1
	}
}

// Tick performs one convergence step: advance the blink clock, examine the
// current scan cell, transmit it if the display disagrees, move on. It is a
// no-op when the transport has fewer than three free bytes, the worst case
// for one cell (escape, address, character); past that check no write can
// block.
func (d *Dev) Tick() {
	if d.t.Writable() < 3 {
		return
	}

	d.blinkClock = (d.blinkClock + 1) & d.blinkMask
	if d.blinkClock == 0 {
		d.blink = !d.blink
		d.status = 0
	}

	c := d.resolve(d.scan)

	// The cursor cell is rewritten even when it matches the shadow, so
	// the blink stays visible.
	if c != d.shadow[d.scan] || d.scan == d.cursor {
		if d.scan == d.lastWrite+1 && d.scan&d.colMask != 0 {
			// Right after the previous write on the same row: the
			// display's own cursor is already in position.
			d.t.Write(c)
		} else {
			d.t.Write(cmdEscape)
			d.t.Write(d.address(d.scan))
			d.t.Write(c)
		}
		// Safe to assume delivery: the capacity check above protects
		// the writes.
		d.shadow[d.scan] = c
		d.lastWrite = d.scan
	}
	d.scan = (d.scan + 1) & d.sizeMask
}

// resolve returns the character cell pos should show, overlays included.
func (d *Dev) resolve(pos int) byte {
	if pos == d.cursor && d.blink {
		return d.cursorGlyph
	}
	if d.status != 0 && (pos == 0 || pos == d.w-1) && d.desired[pos] == ' ' {
		return d.status - 1
	}
	return d.desired[pos]
}

// address encodes a linear cell index as a DDRAM address byte. Rows sit at
// 64-cell boundaries, so the row bits shift by log2(64/width); bit 7 is
// always set per the display command convention.
func (d *Dev) address(pos int) byte {
	return byte(0x80 | (pos&^d.colMask)<<d.rowShift | pos&d.colMask)
}

// SetBrightness sets the backlight brightness (0 to 29). It is a one-shot
// setup command, not part of the convergence path; ErrBusy means try again
// once the transport drains.
func (d *Dev) SetBrightness(level byte) error {
	if level > 29 {
		return errors.New("serlcd: brightness must be between 0 and 29")
	}
	if d.t.Writable() < 2 {
		return ErrBusy
	}
	d.t.Write(cmdSetting)
	d.t.Write(0x80 + level)
	return nil
}

// UploadGlyphs loads up to eight custom characters into the display's
// CGRAM. The upload clears the screen as a side effect, so the shadow page
// is invalidated and the next sweep repaints everything.
func (d *Dev) UploadGlyphs(set []charmap.Glyph) error {
	if len(set) > 8 {
		return errors.New("serlcd: at most 8 custom glyphs")
	}
	if d.t.Writable() < 2+12*len(set) {
		return ErrBusy
	}
	d.t.Write(cmdEscape)
	d.t.Write(cmdClear)
	for i, g := range set {
		d.t.Write(cmdEscape)
		d.t.Write(cgramBase + byte(i)*8)
		for _, row := range g.Rows() {
			// Bit 5 keeps pattern data from reading back as a
			// command byte.
			d.t.Write(0x20 | row)
		}
		d.t.Write(cmdEscape)
		d.t.Write(cmdClear)
	}
	for i := range d.shadow {
		d.shadow[i] = '?'
	}
	d.lastWrite = -1
	return nil
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("serlcd.Dev{%dx%d}", d.w, d.h)
}
