// Package serlcd drives a SparkFun-style serial character LCD with double
// buffering and incremental convergence.
//
// All writes land in an in-memory desired page. A shadow page mirrors what
// the physical display is known to show. Tick, called once per frame from
// the same timer that renders audio, examines a single cell: when the
// resolved character differs from the shadow it emits the minimal command
// sequence over the transport and updates the shadow. The scan is round
// robin, so per-tick work is constant regardless of display size and any
// cell converges within one full sweep.
//
// Tick is a no-op whenever the transport has fewer than three free bytes
// (the worst case per cell is an escape byte, an address byte and the
// character), which is the only flow-control mechanism: nothing ever
// blocks, work just waits for a later tick.
//
// A blinking cursor overlay and a transient one-character status overlay
// ride on top of the desired page. Both share one blink clock: the status
// indicator expires when the clock wraps. That coupling is deliberate, it
// keeps the state down to a single counter.
//
// # Wire protocol
//
// The display accepts bare printable bytes, appended at its internal
// cursor, and two-byte commands: 0xFE followed by a DDRAM address with bit
// 7 set (0x80 | row<<6 | column), or 0x7C followed by a settings byte such
// as backlight brightness. Bytes 0x08-0x1F, 0x7C and 0xFE inside row text
// would be eaten as commands, so WriteRow blanks them; bytes below 0x08
// pass through and select the custom glyphs uploaded with UploadGlyphs.
//
// Example:
//
//	out, _ := txbuf.New(wire, &txbuf.Opts{Size: 8})
//	dev, _ := serlcd.New(out, nil)
//	dev.WriteRow(0, "patch 12")
//	dev.SetCursor(6)
//	for {
//		dev.Tick()      // convergence, one cell per frame
//		out.DrainTick() // pace bytes onto the wire
//	}
package serlcd
