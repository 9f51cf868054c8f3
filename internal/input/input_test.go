package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func kinds(keys []Key) []KeyKind {
	out := make([]KeyKind, len(keys))
	for i, k := range keys {
		out[i] = k.Kind
	}
	return out
}

func TestParseControlKeys(t *testing.T) {
	keys, rest := Parse([]byte("a\r\n\x7f\t\x03\x15\x1b[A\x1b[D\x1bOB\x1b[3~"))
	if len(rest) != 0 {
		t.Fatalf("rest = %q", rest)
	}
	want := []KeyKind{KeyRune, KeyEnter, KeyBackspace, KeyTab, KeyInterrupt, KeyClearLine, KeyUp, KeyLeft, KeyDown, KeyBackspace}
	got := kinds(keys)
	if len(got) != len(want) {
		t.Fatalf("kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParseLoneEscape(t *testing.T) {
	keys, rest := Parse([]byte("a\x1b"))
	if len(keys) != 1 || string(rest) != "\x1b" {
		t.Fatalf("keys = %+v rest = %q", keys, rest)
	}
	keys, _ = Parse([]byte("\x1bx"))
	if len(keys) != 2 || keys[0].Kind != KeyEscape || keys[1].Rune != 'x' {
		t.Fatalf("keys = %+v", keys)
	}
	_, rest = Parse([]byte("\x1b[1;"))
	if string(rest) != "\x1b[1;" {
		t.Fatalf("unterminated sequence rest = %q", rest)
	}
}

func TestReadInputSplitEscape(t *testing.T) {
	s := &Stream{ch: make(chan byte, 8)}

	s.ch <- '\x1b'
	if in := ReadInput(s); len(in.Keys) != 0 {
		t.Fatalf("partial sequence produced %+v", in.Keys)
	}
	s.ch <- '['
	s.ch <- 'A'
	in := ReadInput(s)
	if len(in.Keys) != 1 || in.Keys[0].Kind != KeyUp {
		t.Fatalf("keys = %+v, want up", in.Keys)
	}

	s.ch <- '\x1b'
	ReadInput(s)
	in = ReadInput(s)
	if len(in.Keys) != 1 || in.Keys[0].Kind != KeyEscape {
		t.Fatalf("keys = %+v, want escape", in.Keys)
	}
}

func TestParseSkipsUnknownSequences(t *testing.T) {
	keys, _ := Parse([]byte("\x1b[1;5Hq\x1b[200~"))
	if len(keys) != 1 || keys[0].Rune != 'q' {
		t.Fatalf("keys = %+v", keys)
	}
}

func TestParseUTF8(t *testing.T) {
	word := []byte("좀비")
	keys, rest := Parse(word[:4])
	if len(keys) != 1 || keys[0].Rune != '좀' {
		t.Fatalf("keys = %+v", keys)
	}
	if len(rest) != 1 {
		t.Fatalf("rest = %q, want the partial rune", rest)
	}
	keys, rest = Parse(append(rest, word[4:]...))
	if len(keys) != 1 || keys[0].Rune != '비' || len(rest) != 0 {
		t.Fatalf("keys = %+v rest = %q", keys, rest)
	}
}

func TestStreamReadInput(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("hi\r")))

	var keys []Key
	deadline := time.Now().Add(2 * time.Second)
	for {
		in := ReadInput(s)
		keys = append(keys, in.Keys...)
		if in.Closed {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("stream never closed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	line := NewLine(0)
	var got string
	var ok bool
	for _, k := range keys {
		if text, done := line.Apply(k); done {
			got, ok = text, true
		}
	}
	if !ok || got != "hi" {
		t.Errorf("submitted %q %v, want hi", got, ok)
	}
}

func TestLineEditing(t *testing.T) {
	l := NewLine(3)
	for _, r := range "abcd" {
		l.Apply(Key{Kind: KeyRune, Rune: r})
	}
	if l.String() != "abc" {
		t.Fatalf("limit not applied: %q", l.String())
	}

	l.Apply(Key{Kind: KeyBackspace})
	if l.String() != "ab" {
		t.Errorf("after backspace = %q", l.String())
	}

	l.Apply(Key{Kind: KeyClearLine})
	if l.Len() != 0 {
		t.Errorf("after clear = %q", l.String())
	}

	l.Apply(Key{Kind: KeyRune, Rune: ' '})
	l.Apply(Key{Kind: KeyRune, Rune: 'x'})
	if l.Trimmed() != "x" {
		t.Errorf("Trimmed = %q", l.Trimmed())
	}
	text, ok := l.Apply(Key{Kind: KeyEnter})
	if !ok || text != " x" || l.Len() != 0 {
		t.Errorf("Enter = %q %v, len %d", text, ok, l.Len())
	}
}

func TestLineBackspaceOnEmpty(t *testing.T) {
	l := NewLine(0)
	l.Apply(Key{Kind: KeyBackspace})
	if text, ok := l.Apply(Key{Kind: KeyEnter}); !ok || text != "" {
		t.Errorf("Enter = %q %v", text, ok)
	}
}
