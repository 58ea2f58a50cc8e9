package menu

// List is a scrolling screen of items with a selection cursor
type List struct {
	items     []Item
	selection int
	top       int
}

// NewList creates a list with the cursor on the first selectable item
func NewList(items ...Item) *List {
	l := &List{items: items}
	l.SetSelection(0)
	return l
}

// Items returns the list's items
func (l *List) Items() []Item {
	return l.items
}

// Selection returns the index of the selected item
func (l *List) Selection() int {
	return l.selection
}

// SetSelection moves the cursor to i, clamped to the list and moved off
// static rows (forward first, then backward)
func (l *List) SetSelection(i int) {
	if len(l.items) == 0 {
		l.selection = 0
		return
	}
	if i < 0 {
		i = 0
	}
	if i >= len(l.items) {
		i = len(l.items) - 1
	}
	for j := i; j < len(l.items); j++ {
		if l.items[j].Selectable() {
			l.selection = j
			return
		}
	}
	for j := i - 1; j >= 0; j-- {
		if l.items[j].Selectable() {
			l.selection = j
			return
		}
	}
	l.selection = i
}

// Selected returns the selected item, nil if nothing is selectable
func (l *List) Selected() *Item {
	if l.selection >= len(l.items) || !l.items[l.selection].Selectable() {
		return nil
	}
	return &l.items[l.selection]
}

// HandleInput moves the cursor without wrapping and activates on click
func (l *List) HandleInput(nav *Navigator, in Input) {
	if in.Click {
		if it := l.Selected(); it != nil {
			it.Activate(nav)
		}
		return
	}
	if in.EncoderDelta == 0 {
		return
	}

	step, n := 1, in.EncoderDelta
	if n < 0 {
		step, n = -1, -n
	}
	for ; n > 0; n-- {
		next := l.selection + step
		for next >= 0 && next < len(l.items) && !l.items[next].Selectable() {
			next += step
		}
		if next < 0 || next >= len(l.items) {
			break
		}
		l.selection = next
	}
	nav.RequestRedraw()
}

// scroll keeps the selection inside the visible window
func (l *List) scroll(rows int) {
	if l.selection < l.top {
		l.top = l.selection
	}
	if l.selection >= l.top+rows {
		l.top = l.selection - rows + 1
	}
	// Keep leading headers visible while the cursor is on the first entry
	if l.top > 0 {
		lead := true
		for i := 0; i < l.selection; i++ {
			if l.items[i].Selectable() {
				lead = false
				break
			}
		}
		if lead && l.selection < rows {
			l.top = 0
		}
	}
}

// Render draws the visible window of items
func (l *List) Render(f *Frame) {
	l.scroll(f.Rows)
	for row := 0; row < f.Rows; row++ {
		i := l.top + row
		if i >= len(l.items) {
			break
		}
		l.renderItem(f, row, &l.items[i], i == l.selection)
	}
}

func (l *List) renderItem(f *Frame, row int, it *Item, selected bool) {
	value := it.ValueText()

	if it.Kind == KindStatic {
		label := it.Label
		if it.Style&StyleCenter != 0 && value == "" {
			label = center(label, f.Columns)
		}
		f.SetLine(row, label, it.Style&StyleInvert != 0)
		if value != "" {
			f.Put(row, f.Columns-len(value), value)
		}
		return
	}

	pre := " "
	if selected {
		pre = ">"
	}
	post := ""
	switch it.Kind {
	case KindBack:
		post = "^"
	case KindSubmenu:
		post = ">"
	}

	label := it.Label
	if it.Kind == KindEdit {
		label += ":"
	}
	f.SetLine(row, pre+label, false)
	if value != "" {
		f.Put(row, f.Columns-len(post)-len(value), value)
	}
	if post != "" {
		f.Put(row, f.Columns-1, post)
	}
}
