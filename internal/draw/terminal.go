package draw

import (
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"golang.org/x/term"
)

// Terminal control sequences.
const (
	SeqClearScreen = "\033[H\033[2J"
	SeqHideCursor  = "\033[?25l"
	SeqShowCursor  = "\033[?25h"
)

// maxChunkSize keeps each write under a typical MTU so SSH clients
// receive a frame as a few full packets.
const maxChunkSize = 1400

// Emit writes control sequences straight to w, bypassing any frame buffer.
func Emit(w io.Writer, seqs ...string) {
	for _, s := range seqs {
		_, _ = io.WriteString(w, s)
	}
}

// Viewport is the part of the terminal the game draws into. Col and Row
// are the zero-based offsets of its top-left corner.
type Viewport struct {
	Width, Height int
	Col, Row      int
}

// Fit centers a render area of at most maxWidth x maxHeight in the terminal.
func Fit(termWidth, termHeight, maxWidth, maxHeight int) Viewport {
	v := Viewport{
		Width:  min(termWidth, maxWidth),
		Height: min(termHeight, maxHeight),
	}
	v.Col = (termWidth - v.Width) / 2
	v.Row = (termHeight - v.Height) / 2
	return v
}

// Output collects one frame of terminal output. Coordinates given to it
// are 1-based within the viewport.
type Output struct {
	w    io.Writer
	buf  []byte
	view Viewport
}

// NewOutput creates an Output that flushes to w.
func NewOutput(w io.Writer, view Viewport) *Output {
	return &Output{w: w, buf: make([]byte, 0, 8192), view: view}
}

// SetViewport moves the drawing origin, e.g. after a resize.
func (o *Output) SetViewport(view Viewport) {
	o.view = view
}

// Clear queues a full terminal clear ahead of the frame.
func (o *Output) Clear() {
	o.buf = append(o.buf, SeqClearScreen...)
}

func (o *Output) moveTo(col, row int) {
	o.buf = append(o.buf, "\033["...)
	o.buf = strconv.AppendInt(o.buf, int64(row+o.view.Row), 10)
	o.buf = append(o.buf, ';')
	o.buf = strconv.AppendInt(o.buf, int64(col+o.view.Col), 10)
	o.buf = append(o.buf, 'H')
}

func (o *Output) text(s string) {
	o.buf = append(o.buf, s...)
}

func (o *Output) char(r rune) {
	o.buf = utf8.AppendRune(o.buf, r)
}

// Flush sends the queued output in chunks of at most maxChunkSize bytes.
func (o *Output) Flush() error {
	data := o.buf
	o.buf = o.buf[:0]
	for len(data) > 0 {
		n := min(len(data), maxChunkSize)
		if _, err := o.w.Write(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

// TermSizeFunc reports the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
