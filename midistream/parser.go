package midistream

// Parser reconstructs MIDI messages from a raw serial byte stream and
// dispatches each completed message to its sink.
//
// D is the concrete sink type; with a non-interface D every event dispatch
// is a static call. The zero Parser is not usable, create one with
// NewParser. A Parser must not be shared between goroutines: Push is meant
// to be driven from a single timer/interrupt context.
type Parser[D Sink] struct {
	device D

	// runningStatus is the last status byte seen, 0 when none is
	// established. Always 0 or a byte with the high bit set.
	runningStatus uint8
	data          [2]uint8
	dataCount     uint8
	expected      uint8
}

// NewParser returns a parser dispatching to device.
func NewParser[D Sink](device D) *Parser[D] {
	return &Parser[D]{device: device}
}

// Push feeds one byte from the wire into the parser. It runs in constant
// time, never blocks and never allocates. Out-of-protocol bytes degrade to
// Sink.UnexpectedByte events; no input is ever rejected.
func (p *Parser[D]) Push(b uint8) {
	// Realtime messages pass straight through and leave the pending
	// message state untouched: they may interleave anywhere, including
	// mid-sysex.
	if b >= 0xF8 {
		p.dispatch(b)
		return
	}
	if b >= 0x80 {
		p.dataCount = 0
		p.expected = 1
		switch b & 0xF0 {
		case 0x80, 0x90, 0xA0, 0xB0, 0xE0:
			p.expected = 2
		case 0xC0, 0xD0:
			// One data byte.
		case 0xF0:
			lo := b & 0x0F
			if lo > 0 && lo < 3 {
				p.expected = 2
			} else if lo >= 4 {
				p.expected = 0
			}
		}
		// Any non-realtime status byte terminates an open sysex run.
		if p.runningStatus == 0xF0 {
			p.device.SysExEnd()
		}
		p.runningStatus = b
		if p.runningStatus == 0xF0 {
			p.device.SysExStart()
		}
	} else if p.dataCount < uint8(len(p.data)) {
		p.data[p.dataCount] = b
		p.dataCount++
	}
	if p.dataCount >= p.expected {
		p.dispatch(p.runningStatus)
		p.dataCount = 0
		// System common messages do not carry running status; only
		// channel voice messages (and sysex data runs) retain it.
		if p.runningStatus > 0xF0 {
			p.expected = 0
			p.runningStatus = 0
		}
	}
}

// dispatch routes one complete message to the sink. status is either the
// running status owning the buffered data bytes or a lone realtime byte.
func (p *Parser[D]) dispatch(status uint8) {
	if status == 0 {
		p.device.UnexpectedByte(p.data[0])
		return
	}
	channel := status & 0x0F
	switch status & 0xF0 {
	case 0x80:
		// Keyboards that hold running status send press/release pairs
		// under a single status with velocity 0 meaning release.
		if p.data[1] != 0 {
			p.device.NoteOn(channel, p.data[0], p.data[1])
		} else {
			p.device.NoteOff(channel, p.data[0], 0)
		}
	case 0x90:
		p.device.NoteOn(channel, p.data[0], p.data[1])
	case 0xA0:
		p.device.KeyPressure(channel, p.data[0], p.data[1])
	case 0xB0:
		switch p.data[0] {
		case 0x78:
			p.device.AllSoundOff(channel)
		case 0x79:
			p.device.ResetAllControllers(channel)
		case 0x7A:
			p.device.LocalControl(channel, p.data[1])
		case 0x7B:
			p.device.AllNotesOff(channel)
		case 0x7C:
			p.device.OmniModeOff(channel)
		case 0x7D:
			p.device.OmniModeOn(channel)
		case 0x7E:
			p.device.MonoModeOn(channel, p.data[1])
		case 0x7F:
			p.device.PolyModeOn(channel)
		default:
			p.device.ControlChange(channel, p.data[0], p.data[1])
		}
	case 0xC0:
		p.device.ProgramChange(channel, p.data[0])
	case 0xD0:
		p.device.ChannelPressure(channel, p.data[0])
	case 0xE0:
		p.device.PitchBend(channel, uint16(p.data[0])<<7|uint16(p.data[1]))
	case 0xF0:
		switch status {
		case 0xF0:
			p.device.SysExByte(p.data[0])
		case 0xF7:
			p.device.SysExEnd()
		case 0xF8:
			p.device.Clock()
		case 0xFA:
			p.device.Start()
		case 0xFB:
			p.device.Continue()
		case 0xFC:
			p.device.Stop()
		case 0xFE:
			p.device.ActiveSensing()
		case 0xFF:
			p.device.Reset()
		}
	}
}
