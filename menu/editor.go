package menu

import "fmt"

// Format selects how an IntEditor value is drawn
type Format uint8

const (
	FormatInt3    Format = iota // Right-aligned 3 digit integer
	FormatPercent               // 0-255 shown as 0-100%
)

// IntEditor is a bounded integer value edited with the encoder
type IntEditor struct {
	Value  int
	Min    int
	Max    int
	Format Format

	// Live editors call Set on every adjustment, not only on commit
	Live bool
	Set  func(int)
}

// Adjust moves the value by delta, clamped silently to [Min, Max]
func (e *IntEditor) Adjust(delta int) {
	v := e.Value + delta
	if v < e.Min {
		v = e.Min
	}
	if v > e.Max {
		v = e.Max
	}
	if v == e.Value {
		return
	}
	e.Value = v
	if e.Live && e.Set != nil {
		e.Set(v)
	}
}

// Commit reports the final value
func (e *IntEditor) Commit() {
	if e.Set != nil {
		e.Set(e.Value)
	}
}

// String formats the value for display
func (e *IntEditor) String() string {
	switch e.Format {
	case FormatPercent:
		return fmt.Sprintf("%3d%%", (e.Value*100+127)/255)
	}
	return fmt.Sprintf("%3d", e.Value)
}

// EditScreen adjusts an IntEditor until clicked
type EditScreen struct {
	label  string
	editor *IntEditor
}

// NewEditScreen creates an edit screen for e
func NewEditScreen(label string, e *IntEditor) *EditScreen {
	return &EditScreen{label: label, editor: e}
}

// HandleInput adjusts on encoder movement and commits on click
func (s *EditScreen) HandleInput(nav *Navigator, in Input) {
	if in.Click {
		s.editor.Commit()
		nav.Back()
		return
	}
	if in.EncoderDelta != 0 {
		s.editor.Adjust(in.EncoderDelta)
		nav.RequestRedraw()
	}
}

// Render draws the label and current value
func (s *EditScreen) Render(f *Frame) {
	DrawEditScreen(f, s.label, s.editor.String())
}

// DrawEditScreen draws "label: value" on the second row (the first on
// short displays), moving the value to the next row if it does not fit
func DrawEditScreen(f *Frame, label, value string) {
	row := 0
	if f.Rows >= 4 {
		row = 1
	}
	text := label + ":"
	f.SetLine(row, text, false)
	col := f.Columns - len(value)
	if col <= len(text) && row+1 < f.Rows {
		row++
	}
	if col < 0 {
		col = 0
	}
	f.Put(row, col, value)
}
