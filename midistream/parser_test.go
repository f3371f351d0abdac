package midistream

import (
	"fmt"
	"reflect"
	"testing"
)

// record captures every dispatched event as a readable string so tests can
// compare whole sequences.
type record struct {
	events []string
}

func (r *record) add(format string, args ...any) {
	r.events = append(r.events, fmt.Sprintf(format, args...))
}

func (r *record) NoteOn(ch, note, vel uint8)       { r.add("NoteOn(%d,%d,%d)", ch, note, vel) }
func (r *record) NoteOff(ch, note, vel uint8)      { r.add("NoteOff(%d,%d,%d)", ch, note, vel) }
func (r *record) KeyPressure(ch, note, p uint8)    { r.add("KeyPressure(%d,%d,%d)", ch, note, p) }
func (r *record) ChannelPressure(ch, p uint8)      { r.add("ChannelPressure(%d,%d)", ch, p) }
func (r *record) ControlChange(ch, cc, v uint8)    { r.add("ControlChange(%d,%d,%d)", ch, cc, v) }
func (r *record) ProgramChange(ch, prog uint8)     { r.add("ProgramChange(%d,%d)", ch, prog) }
func (r *record) PitchBend(ch uint8, bend uint16)  { r.add("PitchBend(%d,%d)", ch, bend) }
func (r *record) AllSoundOff(ch uint8)             { r.add("AllSoundOff(%d)", ch) }
func (r *record) ResetAllControllers(ch uint8)     { r.add("ResetAllControllers(%d)", ch) }
func (r *record) LocalControl(ch, state uint8)     { r.add("LocalControl(%d,%d)", ch, state) }
func (r *record) AllNotesOff(ch uint8)             { r.add("AllNotesOff(%d)", ch) }
func (r *record) OmniModeOff(ch uint8)             { r.add("OmniModeOff(%d)", ch) }
func (r *record) OmniModeOn(ch uint8)              { r.add("OmniModeOn(%d)", ch) }
func (r *record) MonoModeOn(ch, n uint8)           { r.add("MonoModeOn(%d,%d)", ch, n) }
func (r *record) PolyModeOn(ch uint8)              { r.add("PolyModeOn(%d)", ch) }
func (r *record) SysExStart()                      { r.add("SysExStart") }
func (r *record) SysExByte(b uint8)                { r.add("SysExByte(%d)", b) }
func (r *record) SysExEnd()                        { r.add("SysExEnd") }
func (r *record) Clock()                           { r.add("Clock") }
func (r *record) Start()                           { r.add("Start") }
func (r *record) Continue()                        { r.add("Continue") }
func (r *record) Stop()                            { r.add("Stop") }
func (r *record) ActiveSensing()                   { r.add("ActiveSensing") }
func (r *record) Reset()                           { r.add("Reset") }
func (r *record) UnexpectedByte(b uint8)           { r.add("UnexpectedByte(%d)", b) }

func parse(bytes []byte) []string {
	rec := &record{}
	p := NewParser(rec)
	for _, b := range bytes {
		p.Push(b)
	}
	return rec.events
}

func TestPush(t *testing.T) {
	tests := []struct {
		name  string
		bytes []byte
		want  []string
	}{
		{
			"note on with running status",
			[]byte{0x90, 0x40, 0x7F, 0x3C, 0x00},
			[]string{"NoteOn(0,64,127)", "NoteOn(0,60,0)"},
		},
		{
			"note off status carries press and release",
			[]byte{0x80, 0x40, 0x64, 0x40, 0x00},
			[]string{"NoteOn(0,64,100)", "NoteOff(0,64,0)"},
		},
		{
			"control change",
			[]byte{0xB3, 0x01, 0x42},
			[]string{"ControlChange(3,1,66)"},
		},
		{
			"all notes off is not a generic control change",
			[]byte{0xB0, 0x7B, 0x00},
			[]string{"AllNotesOff(0)"},
		},
		{
			"all sound off",
			[]byte{0xB1, 0x78, 0x00},
			[]string{"AllSoundOff(1)"},
		},
		{
			"reset all controllers",
			[]byte{0xB0, 0x79, 0x00},
			[]string{"ResetAllControllers(0)"},
		},
		{
			"local control carries state",
			[]byte{0xB0, 0x7A, 0x7F},
			[]string{"LocalControl(0,127)"},
		},
		{
			"omni off and on",
			[]byte{0xB2, 0x7C, 0x00, 0x7D, 0x00},
			[]string{"OmniModeOff(2)", "OmniModeOn(2)"},
		},
		{
			"mono mode carries channel count",
			[]byte{0xB0, 0x7E, 0x04},
			[]string{"MonoModeOn(0,4)"},
		},
		{
			"poly mode",
			[]byte{0xB0, 0x7F, 0x00},
			[]string{"PolyModeOn(0)"},
		},
		{
			"program change with running status",
			[]byte{0xC2, 0x05, 0x06},
			[]string{"ProgramChange(2,5)", "ProgramChange(2,6)"},
		},
		{
			"channel pressure",
			[]byte{0xD1, 0x33},
			[]string{"ChannelPressure(1,51)"},
		},
		{
			"poly key pressure",
			[]byte{0xA0, 0x40, 0x10},
			[]string{"KeyPressure(0,64,16)"},
		},
		{
			"pitch bend reassembles 14 bits MSB first",
			[]byte{0xE0, 0x40, 0x00},
			[]string{"PitchBend(0,8192)"},
		},
		{
			"realtime interleaved mid-message",
			[]byte{0x90, 0x40, 0xF8, 0x7F},
			[]string{"Clock", "NoteOn(0,64,127)"},
		},
		{
			"realtime one-byte messages",
			[]byte{0xFA, 0xFB, 0xFC, 0xFE, 0xFF},
			[]string{"Start", "Continue", "Stop", "ActiveSensing", "Reset"},
		},
		{
			"sysex framing with explicit terminator",
			[]byte{0xF0, 0x01, 0x02, 0xF7},
			[]string{"SysExStart", "SysExByte(1)", "SysExByte(2)", "SysExEnd", "SysExEnd"},
		},
		{
			"sysex implicitly ended by a new status",
			[]byte{0xF0, 0x01, 0x90, 0x40, 0x7F},
			[]string{"SysExStart", "SysExByte(1)", "SysExEnd", "NoteOn(0,64,127)"},
		},
		{
			"realtime inside sysex",
			[]byte{0xF0, 0xF8, 0x01},
			[]string{"SysExStart", "Clock", "SysExByte(1)"},
		},
		{
			"data byte with no status established",
			[]byte{0x40},
			[]string{"UnexpectedByte(64)"},
		},
		{
			"system common clears running status",
			[]byte{0xF2, 0x01, 0x02, 0x40},
			[]string{"UnexpectedByte(64)"},
		},
		{
			"tune request clears running status",
			[]byte{0xF6, 0x40},
			[]string{"UnexpectedByte(64)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parse(tt.bytes)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("events = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPushChunkIndependence(t *testing.T) {
	// A busy stream: running status, realtime interleaving, sysex,
	// malformed bytes.
	stream := []byte{
		0x90, 0x40, 0x7F, 0xF8, 0x3C, 0x00,
		0xB0, 0x7B, 0x00, 0x01, 0x02,
		0xF0, 0x7E, 0xF8, 0x06, 0xF7,
		0x44, 0xE1, 0x00, 0x40,
	}

	whole := parse(stream)
	for _, chunk := range []int{1, 2, 3, 5, 7} {
		rec := &record{}
		p := NewParser(rec)
		for start := 0; start < len(stream); start += chunk {
			end := start + chunk
			if end > len(stream) {
				end = len(stream)
			}
			for _, b := range stream[start:end] {
				p.Push(b)
			}
		}
		if !reflect.DeepEqual(rec.events, whole) {
			t.Errorf("chunk size %d: events = %v, want %v", chunk, rec.events, whole)
		}
	}
}

func TestPushRunningStatusReused(t *testing.T) {
	got := parse([]byte{0x91, 0x40, 0x50, 0x41, 0x51})
	want := []string{"NoteOn(1,64,80)", "NoteOn(1,65,81)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestPushNeverAllocates(t *testing.T) {
	p := NewParser(NullSink{})
	avg := testing.AllocsPerRun(100, func() {
		for _, b := range []byte{0x90, 0x40, 0x7F, 0xF8, 0xF0, 0x01, 0xF7, 0x33} {
			p.Push(b)
		}
	})
	if avg != 0 {
		t.Errorf("Push allocated %v times per run, want 0", avg)
	}
}
