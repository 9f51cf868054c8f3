package input

import (
	"strings"
	"unicode"
)

// Line is a single-line text editor for the typing prompt.
type Line struct {
	runes []rune
	limit int
}

// NewLine creates an editor that accepts up to limit runes. A limit of zero
// or less means unbounded.
func NewLine(limit int) *Line {
	return &Line{limit: limit}
}

// Apply feeds a key to the editor. When Enter is pressed it returns the
// line content with submitted set and clears the buffer.
func (l *Line) Apply(k Key) (text string, submitted bool) {
	switch k.Kind {
	case KeyRune:
		if !unicode.IsPrint(k.Rune) {
			return "", false
		}
		if l.limit > 0 && len(l.runes) >= l.limit {
			return "", false
		}
		l.runes = append(l.runes, k.Rune)
	case KeyBackspace:
		if len(l.runes) > 0 {
			l.runes = l.runes[:len(l.runes)-1]
		}
	case KeyClearLine:
		l.Reset()
	case KeyEnter:
		text = string(l.runes)
		l.Reset()
		return text, true
	}
	return "", false
}

// String returns the current content.
func (l *Line) String() string {
	return string(l.runes)
}

// Trimmed returns the content without surrounding whitespace.
func (l *Line) Trimmed() string {
	return strings.TrimSpace(string(l.runes))
}

// Len returns the number of runes typed.
func (l *Line) Len() int {
	return len(l.runes)
}

// Reset clears the buffer.
func (l *Line) Reset() {
	l.runes = l.runes[:0]
}
