package midistream

// Common controller numbers.
const (
	ControllerModulationWheelMSB = 1
	ControllerModulationWheelLSB = 33
)

// Sink receives decoded MIDI events. One method per message variant; a
// consumer embeds NullSink and overrides the variants it cares about.
//
// All channel numbers are 0-15 and all data values are 0-127, except
// PitchBend which carries the reassembled 14-bit value (0-16383).
type Sink interface {
	// Channel voice messages.
	NoteOn(channel, note, velocity uint8)
	NoteOff(channel, note, velocity uint8)
	KeyPressure(channel, note, pressure uint8)
	ChannelPressure(channel, pressure uint8)
	ControlChange(channel, controller, value uint8)
	ProgramChange(channel, program uint8)
	PitchBend(channel uint8, bend uint16)

	// Channel mode messages (controllers 0x78-0x7F).
	AllSoundOff(channel uint8)
	ResetAllControllers(channel uint8)
	LocalControl(channel, state uint8)
	AllNotesOff(channel uint8)
	OmniModeOff(channel uint8)
	OmniModeOn(channel uint8)
	MonoModeOn(channel, numChannels uint8)
	PolyModeOn(channel uint8)

	// System exclusive framing.
	SysExStart()
	SysExByte(b uint8)
	SysExEnd()

	// System realtime messages.
	Clock()
	Start()
	Continue()
	Stop()
	ActiveSensing()
	Reset()

	// UnexpectedByte reports a data byte that arrived with no status
	// established. The stream is never rejected; this is the degraded
	// outcome for out-of-protocol input.
	UnexpectedByte(b uint8)
}

// NullSink implements Sink with no-ops. Embed it to implement only a subset
// of the interface.
type NullSink struct{}

func (NullSink) NoteOn(channel, note, velocity uint8)       {}
func (NullSink) NoteOff(channel, note, velocity uint8)      {}
func (NullSink) KeyPressure(channel, note, pressure uint8)  {}
func (NullSink) ChannelPressure(channel, pressure uint8)    {}
func (NullSink) ControlChange(channel, controller, v uint8) {}
func (NullSink) ProgramChange(channel, program uint8)       {}
func (NullSink) PitchBend(channel uint8, bend uint16)       {}
func (NullSink) AllSoundOff(channel uint8)                  {}
func (NullSink) ResetAllControllers(channel uint8)          {}
func (NullSink) LocalControl(channel, state uint8)          {}
func (NullSink) AllNotesOff(channel uint8)                  {}
func (NullSink) OmniModeOff(channel uint8)                  {}
func (NullSink) OmniModeOn(channel uint8)                   {}
func (NullSink) MonoModeOn(channel, numChannels uint8)      {}
func (NullSink) PolyModeOn(channel uint8)                   {}
func (NullSink) SysExStart()                                {}
func (NullSink) SysExByte(b uint8)                          {}
func (NullSink) SysExEnd()                                  {}
func (NullSink) Clock()                                     {}
func (NullSink) Start()                                     {}
func (NullSink) Continue()                                  {}
func (NullSink) Stop()                                      {}
func (NullSink) ActiveSensing()                             {}
func (NullSink) Reset()                                     {}
func (NullSink) UnexpectedByte(b uint8)                     {}
