// Package txbuf provides a bounded, non-blocking transmit ring that drains
// toward a serial connection at a fixed per-tick rate.
//
// The ring decouples code running inside a realtime tick from the speed of
// the physical line: producers check Writable (or TryReserve) and then Write
// without ever blocking, while an external scheduler calls DrainTick at the
// tick rate to move bytes onto the wire.
package txbuf

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
)

// Opts is the configuration for an Output.
type Opts struct {
	// Size is the ring capacity in bytes. Must be a power of two.
	// Defaults to 16.
	Size int

	// PerTick is how many buffered bytes one DrainTick pushes to the
	// wire, pacing the buffer to the line baud rate. Defaults to 1.
	PerTick int
}

// Output is a fixed-capacity transmit ring in front of a serial connection.
//
// Write never blocks and assumes the caller checked capacity first; the
// only flow-control mechanism is deferring work to a later tick.
type Output struct {
	c       conn.Conn
	buf     []byte
	mask    int
	head    int // next byte to drain
	count   int
	perTick int
}

// New returns an Output draining into c.
// opts can be nil to use defaults (16-byte ring, 1 byte per tick).
func New(c conn.Conn, opts *Opts) (*Output, error) {
	if opts == nil {
		opts = &Opts{}
	}
	size := opts.Size
	if size == 0 {
		size = 16
	}
	if size < 2 || size&(size-1) != 0 {
		return nil, errors.New("txbuf: size must be a power of two and at least 2")
	}
	perTick := opts.PerTick
	if perTick == 0 {
		perTick = 1
	}
	if perTick < 0 {
		return nil, errors.New("txbuf: per-tick drain rate must be positive")
	}
	return &Output{
		c:       c,
		buf:     make([]byte, size),
		mask:    size - 1,
		perTick: perTick,
	}, nil
}

// Writable returns how many more bytes the ring can accept right now.
func (o *Output) Writable() int {
	return len(o.buf) - o.count
}

// Buffered returns how many bytes are queued and not yet on the wire.
func (o *Output) Buffered() int {
	return o.count
}

// TryReserve reports whether the ring can accept n more bytes.
func (o *Output) TryReserve(n int) bool {
	return n <= o.Writable()
}

// Write queues one byte. The caller must have checked capacity with
// Writable or TryReserve; a byte written to a full ring is dropped.
func (o *Output) Write(b byte) {
	if o.count == len(o.buf) {
		return
	}
	o.buf[(o.head+o.count)&o.mask] = b
	o.count++
}

// DrainTick sends up to PerTick queued bytes to the connection. Call it
// once per frame from the scheduler that owns the serial line.
func (o *Output) DrainTick() error {
	n := o.perTick
	if n > o.count {
		n = o.count
	}
	return o.send(n)
}

// Flush sends everything queued. Meant for one-shot setup sequences, not
// for use inside the realtime tick.
func (o *Output) Flush() error {
	return o.send(o.count)
}

// send transmits n queued bytes, splitting at the ring wrap point.
func (o *Output) send(n int) error {
	for n > 0 {
		run := n
		if tail := len(o.buf) - o.head; run > tail {
			run = tail
		}
		if err := o.c.Tx(o.buf[o.head:o.head+run], nil); err != nil {
			return err
		}
		o.head = (o.head + run) & o.mask
		o.count -= run
		n -= run
	}
	return nil
}

// String returns a string representation of the ring.
func (o *Output) String() string {
	return fmt.Sprintf("txbuf.Output{%d/%d}", o.count, len(o.buf))
}
