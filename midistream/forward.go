package midistream

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// maxSysExBytes bounds the payload a Forward will buffer for a single
// system-exclusive run. Longer runs are truncated, not split.
const maxSysExBytes = 256

// Forward is a Sink that re-encodes decoded events as gomidi messages and
// hands them to a send callback: a software MIDI thru. Unlike Parser.Push,
// Forward buffers sysex payloads (a complete sysex message cannot be built
// byte by byte), so it is not allocation-free and belongs outside the
// realtime tick.
type Forward struct {
	send  func(gomidi.Message)
	sysex []byte
	open  bool
}

// NewForward returns a Forward handing re-encoded messages to send.
func NewForward(send func(gomidi.Message)) *Forward {
	return &Forward{
		send:  send,
		sysex: make([]byte, 0, maxSysExBytes),
	}
}

func (f *Forward) NoteOn(channel, note, velocity uint8) {
	f.send(gomidi.NoteOn(channel, note, velocity))
}

func (f *Forward) NoteOff(channel, note, velocity uint8) {
	f.send(gomidi.NoteOffVelocity(channel, note, velocity))
}

func (f *Forward) KeyPressure(channel, note, pressure uint8) {
	f.send(gomidi.PolyAfterTouch(channel, note, pressure))
}

func (f *Forward) ChannelPressure(channel, pressure uint8) {
	f.send(gomidi.AfterTouch(channel, pressure))
}

func (f *Forward) ControlChange(channel, controller, value uint8) {
	f.send(gomidi.ControlChange(channel, controller, value))
}

func (f *Forward) ProgramChange(channel, program uint8) {
	f.send(gomidi.ProgramChange(channel, program))
}

func (f *Forward) PitchBend(channel uint8, bend uint16) {
	// gomidi wants the bend relative to center.
	f.send(gomidi.Pitchbend(channel, int16(bend)-8192))
}

// Channel mode messages travel as their reserved controller numbers.

func (f *Forward) AllSoundOff(channel uint8) {
	f.send(gomidi.ControlChange(channel, 120, 0))
}

func (f *Forward) ResetAllControllers(channel uint8) {
	f.send(gomidi.ControlChange(channel, 121, 0))
}

func (f *Forward) LocalControl(channel, state uint8) {
	f.send(gomidi.ControlChange(channel, 122, state))
}

func (f *Forward) AllNotesOff(channel uint8) {
	f.send(gomidi.ControlChange(channel, 123, 0))
}

func (f *Forward) OmniModeOff(channel uint8) {
	f.send(gomidi.ControlChange(channel, 124, 0))
}

func (f *Forward) OmniModeOn(channel uint8) {
	f.send(gomidi.ControlChange(channel, 125, 0))
}

func (f *Forward) MonoModeOn(channel, numChannels uint8) {
	f.send(gomidi.ControlChange(channel, 126, numChannels))
}

func (f *Forward) PolyModeOn(channel uint8) {
	f.send(gomidi.ControlChange(channel, 127, 0))
}

func (f *Forward) SysExStart() {
	f.sysex = f.sysex[:0]
	f.open = true
}

func (f *Forward) SysExByte(b uint8) {
	if f.open && len(f.sysex) < maxSysExBytes {
		f.sysex = append(f.sysex, b)
	}
}

func (f *Forward) SysExEnd() {
	if !f.open {
		return
	}
	f.open = false
	payload := make([]byte, len(f.sysex))
	copy(payload, f.sysex)
	f.send(gomidi.SysEx(payload))
}

func (f *Forward) Clock()         { f.send(gomidi.TimingClock()) }
func (f *Forward) Start()         { f.send(gomidi.Start()) }
func (f *Forward) Continue()      { f.send(gomidi.Continue()) }
func (f *Forward) Stop()          { f.send(gomidi.Stop()) }
func (f *Forward) ActiveSensing() { f.send(gomidi.Activesense()) }
func (f *Forward) Reset()         { f.send(gomidi.Reset()) }

// UnexpectedByte drops malformed input; there is nothing downstream to
// forward it to.
func (f *Forward) UnexpectedByte(b uint8) {}
