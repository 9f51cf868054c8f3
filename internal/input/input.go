// Package input turns raw terminal bytes into key events and edits the
// line the player is typing.
package input

import (
	"bufio"
	"unicode/utf8"
)

// KeyKind identifies a key event.
type KeyKind int

const (
	KeyRune      KeyKind = iota // Printable character in Key.Rune
	KeyEnter                    // Enter or Return
	KeyBackspace                // Backspace or Delete
	KeyEscape                   // Lone Escape
	KeyTab                      // Tab
	KeyUp                       // Arrow up
	KeyDown                     // Arrow down
	KeyLeft                     // Arrow left
	KeyRight                    // Arrow right
	KeyClearLine                // Ctrl+U
	KeyInterrupt                // Ctrl+C
)

// Key is a single key press.
type Key struct {
	Kind KeyKind
	Rune rune
}

// Input holds the keys received since the previous frame.
type Input struct {
	Keys   []Key
	Closed bool // The underlying reader is exhausted
}

// Any reports whether any key arrived.
func (in Input) Any() bool {
	return len(in.Keys) > 0
}

// Stream delivers input bytes via a channel and keeps partial sequences
// between frames.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them into keys. An escape sequence cut off at the end of a read is
// kept for the next call; if nothing new arrives by then, a lone ESC is
// reported as KeyEscape.
func ReadInput(s *Stream) Input {
	buf := s.pending
	received := false
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
			received = true
		default:
			break drain
		}
	}

	keys, rest := Parse(buf)
	if len(rest) > 0 && (!received || s.closed) {
		if len(rest) == 1 && rest[0] == '\x1b' {
			keys = append(keys, Key{Kind: KeyEscape})
		}
		rest = nil
	}
	s.pending = append(s.pending[:0], rest...)
	return Input{Keys: keys, Closed: s.closed}
}

// Reset drops buffered bytes, e.g. after a screen change.
func Reset(s *Stream) {
	s.pending = s.pending[:0]
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}

// Parse decodes buf into keys. Incomplete input at the end of buf, a
// partial UTF-8 rune or an unterminated escape sequence, is returned as
// rest so the caller can complete it with the next read.
func Parse(buf []byte) (keys []Key, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]
		switch {
		case b == '\x1b':
			n, key, ok := parseEscape(buf[i:])
			if n == 0 {
				return keys, buf[i:]
			}
			if ok {
				keys = append(keys, key)
			}
			i += n
		case b == '\r' || b == '\n':
			keys = append(keys, Key{Kind: KeyEnter})
			// Treat CR LF as a single Enter.
			if b == '\r' && i+1 < len(buf) && buf[i+1] == '\n' {
				i++
			}
			i++
		case b == '\b' || b == '\x7f':
			keys = append(keys, Key{Kind: KeyBackspace})
			i++
		case b == '\t':
			keys = append(keys, Key{Kind: KeyTab})
			i++
		case b == '\x03':
			keys = append(keys, Key{Kind: KeyInterrupt})
			i++
		case b == '\x15':
			keys = append(keys, Key{Kind: KeyClearLine})
			i++
		case b < 0x20:
			i++
		case b < utf8.RuneSelf:
			keys = append(keys, Key{Kind: KeyRune, Rune: rune(b)})
			i++
		default:
			if !utf8.FullRune(buf[i:]) {
				return keys, buf[i:]
			}
			r, size := utf8.DecodeRune(buf[i:])
			if r != utf8.RuneError {
				keys = append(keys, Key{Kind: KeyRune, Rune: r})
			}
			i += size
		}
	}
	return keys, nil
}

// parseEscape decodes an escape sequence at the start of buf. It returns
// the bytes consumed and whether they produced a key. n is zero when the
// sequence is incomplete.
func parseEscape(buf []byte) (n int, key Key, ok bool) {
	if len(buf) == 1 {
		return 0, Key{}, false
	}
	if buf[1] != '[' && buf[1] != 'O' {
		return 1, Key{Kind: KeyEscape}, true
	}

	// CSI or SS3: ESC [ params final  /  ESC O final
	for j := 2; j < len(buf); j++ {
		c := buf[j]
		if c < 0x40 || c > 0x7e {
			continue
		}
		switch c {
		case 'A':
			return j + 1, Key{Kind: KeyUp}, true
		case 'B':
			return j + 1, Key{Kind: KeyDown}, true
		case 'C':
			return j + 1, Key{Kind: KeyRight}, true
		case 'D':
			return j + 1, Key{Kind: KeyLeft}, true
		case '~':
			if j == 3 && buf[2] == '3' {
				return j + 1, Key{Kind: KeyBackspace}, true
			}
		}
		return j + 1, Key{}, false
	}
	return 0, Key{}, false
}
