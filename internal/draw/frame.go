package draw

import (
	"github.com/mattn/go-runewidth"
)

// cell is one terminal column. A double-width rune occupies its head cell
// and the following tail cell.
type cell struct {
	r     rune
	style string
	tail  bool
}

var blank = cell{r: ' '}

// Frame is a character buffer the size of the render area. Render writes
// only the rows that changed since the previous Render.
type Frame struct {
	width  int
	height int
	cells  []cell
	prev   []cell
	forced bool
}

// NewFrame creates a blank frame.
func NewFrame(width, height int) *Frame {
	f := &Frame{}
	f.Resize(width, height)
	return f
}

// Resize changes the frame size. The next Render repaints everything.
func (f *Frame) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == f.width && height == f.height && f.cells != nil {
		return
	}
	f.width = width
	f.height = height
	f.cells = make([]cell, width*height)
	f.prev = make([]cell, width*height)
	f.Clear()
	f.forced = true
}

// Width returns the number of columns.
func (f *Frame) Width() int { return f.width }

// Height returns the number of rows.
func (f *Frame) Height() int { return f.height }

// ForceRedraw makes the next Render repaint every row.
func (f *Frame) ForceRedraw() {
	f.forced = true
}

// Clear blanks every cell.
func (f *Frame) Clear() {
	for i := range f.cells {
		f.cells[i] = blank
	}
}

// Set puts r at the 1-based position col,row and returns the number of
// columns it occupies. Runes that do not fit are dropped.
func (f *Frame) Set(col, row int, r rune, style string) int {
	w := runewidth.RuneWidth(r)
	if w == 0 || row < 1 || row > f.height || col < 1 || col+w-1 > f.width {
		return w
	}
	i := (row-1)*f.width + col - 1
	f.unlink(i)
	f.cells[i] = cell{r: r, style: style}
	if w == 2 {
		f.unlink(i + 1)
		f.cells[i+1] = cell{style: style, tail: true}
	}
	return w
}

// unlink breaks any wide rune that overlaps cell i.
func (f *Frame) unlink(i int) {
	rowStart := i - i%f.width
	if f.cells[i].tail && i > rowStart {
		f.cells[i-1] = blank
	}
	if !f.cells[i].tail && runewidth.RuneWidth(f.cells[i].r) == 2 && i+1 < rowStart+f.width {
		f.cells[i+1] = blank
	}
}

// Text writes s starting at col,row and returns the columns used. Text
// past the right edge is clipped.
func (f *Frame) Text(col, row int, s, style string) int {
	used := 0
	for _, r := range s {
		if col+used > f.width {
			break
		}
		used += f.Set(col+used, row, r, style)
	}
	return used
}

// Center writes s horizontally centered on row.
func (f *Frame) Center(row int, s, style string) {
	col := (f.width-StringWidth(s))/2 + 1
	f.Text(max(col, 1), row, s, style)
}

// Fill paints a rectangle with r.
func (f *Frame) Fill(col, row, width, height int, r rune, style string) {
	for y := row; y < row+height; y++ {
		for x := col; x < col+width; x++ {
			f.Set(x, y, r, style)
		}
	}
}

// Box draws a single-line border with its top-left corner at col,row.
func (f *Frame) Box(col, row, width, height int, style string) {
	if width < 2 || height < 2 {
		return
	}
	right, bottom := col+width-1, row+height-1
	for x := col + 1; x < right; x++ {
		f.Set(x, row, '─', style)
		f.Set(x, bottom, '─', style)
	}
	for y := row + 1; y < bottom; y++ {
		f.Set(col, y, '│', style)
		f.Set(right, y, '│', style)
	}
	f.Set(col, row, '┌', style)
	f.Set(right, row, '┐', style)
	f.Set(col, bottom, '└', style)
	f.Set(right, bottom, '┘', style)
}

// Row returns the plain text of a row, for tests and logs.
func (f *Frame) Row(row int) string {
	if row < 1 || row > f.height {
		return ""
	}
	out := make([]rune, 0, f.width)
	for _, c := range f.cells[(row-1)*f.width : row*f.width] {
		if !c.tail {
			out = append(out, c.r)
		}
	}
	return string(out)
}

// Render queues every changed row on o.
func (f *Frame) Render(o *Output) {
	for row := 0; row < f.height; row++ {
		start := row * f.width
		cur := f.cells[start : start+f.width]
		old := f.prev[start : start+f.width]
		if !f.forced && equalCells(cur, old) {
			continue
		}

		o.moveTo(1, row+1)
		style := ""
		for _, c := range cur {
			if c.tail {
				continue
			}
			if c.style != style {
				o.text(ColorReset)
				o.text(c.style)
				style = c.style
			}
			o.char(c.r)
		}
		if style != "" {
			o.text(ColorReset)
		}
		copy(old, cur)
	}
	f.forced = false
}

func equalCells(a, b []cell) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// StringWidth returns the number of terminal columns s occupies.
func StringWidth(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most width columns, ending with tail when cut.
func Truncate(s string, width int, tail string) string {
	return runewidth.Truncate(s, width, tail)
}
