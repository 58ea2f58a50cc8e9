package menu

import "strings"

// Frame is the character grid a screen renders into
type Frame struct {
	Columns int
	Rows    int
	lines   [][]byte
	invert  []bool
}

// NewFrame creates a blank frame of the given size
func NewFrame(columns, rows int) *Frame {
	f := &Frame{
		Columns: columns,
		Rows:    rows,
		lines:   make([][]byte, rows),
		invert:  make([]bool, rows),
	}
	for i := range f.lines {
		f.lines[i] = make([]byte, columns)
	}
	f.Clear()
	return f
}

// Clear blanks every row
func (f *Frame) Clear() {
	for i := range f.lines {
		for j := range f.lines[i] {
			f.lines[i][j] = ' '
		}
		f.invert[i] = false
	}
}

// SetLine writes text to a row, truncated or space padded to the width
func (f *Frame) SetLine(row int, text string, invert bool) {
	if row < 0 || row >= f.Rows {
		return
	}
	line := f.lines[row]
	n := copy(line, text)
	for i := n; i < len(line); i++ {
		line[i] = ' '
	}
	f.invert[row] = invert
}

// Put writes text at a column without touching the rest of the row
func (f *Frame) Put(row, col int, text string) {
	if row < 0 || row >= f.Rows || col < 0 || col >= f.Columns {
		return
	}
	copy(f.lines[row][col:], text)
}

// Line returns the text of a row
func (f *Frame) Line(row int) string {
	if row < 0 || row >= f.Rows {
		return ""
	}
	return string(f.lines[row])
}

// Inverted reports whether a row is drawn highlighted
func (f *Frame) Inverted(row int) bool {
	if row < 0 || row >= f.Rows {
		return false
	}
	return f.invert[row]
}

// String returns all rows joined by newlines
func (f *Frame) String() string {
	rows := make([]string, f.Rows)
	for i := range rows {
		rows[i] = string(f.lines[i])
	}
	return strings.Join(rows, "\n")
}

// Equal reports whether two frames show the same content
func (f *Frame) Equal(o *Frame) bool {
	if o == nil || f.Columns != o.Columns || f.Rows != o.Rows {
		return false
	}
	for i := range f.lines {
		if f.invert[i] != o.invert[i] || string(f.lines[i]) != string(o.lines[i]) {
			return false
		}
	}
	return true
}

// CopyFrom replaces the frame's content with o's
func (f *Frame) CopyFrom(o *Frame) {
	if f.Columns != o.Columns || f.Rows != o.Rows {
		*f = *NewFrame(o.Columns, o.Rows)
	}
	for i := range f.lines {
		copy(f.lines[i], o.lines[i])
		f.invert[i] = o.invert[i]
	}
}

// center pads text on both sides to width
func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	pad := (width - len(text)) / 2
	return strings.Repeat(" ", pad) + text
}
