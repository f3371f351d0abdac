// Package midistream decodes a raw MIDI serial byte stream into structured
// events, one byte at a time.
//
// The parser is built for use inside a periodic interrupt shared with audio
// rendering: Push is O(1), never blocks, and never allocates. Decoded events
// are dispatched through a Sink type parameter, so with a concrete sink type
// the compiler resolves every dispatch statically.
//
// The decoder implements running status (a channel-voice status byte is
// reused for subsequent data-only messages), realtime interleaving (bytes
// 0xF8-0xFF may legally appear in the middle of any other message, including
// inside a system-exclusive run), and system-exclusive framing (any
// non-realtime status byte implicitly terminates an open sysex run).
//
// Example:
//
//	type noteSink struct{ midistream.NullSink }
//
//	func (noteSink) NoteOn(channel, note, velocity uint8) {
//		// react to the note
//	}
//
//	p := midistream.NewParser(noteSink{})
//	for _, b := range incoming {
//		p.Push(b)
//	}
//
// Malformed input never fails: data bytes arriving with no established
// status are surfaced through Sink.UnexpectedByte and the stream keeps
// going.
package midistream
