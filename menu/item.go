package menu

// Kind selects what an Item does when activated
type Kind uint8

const (
	KindBack Kind = iota
	KindStatic
	KindSubmenu
	KindCommand
	KindAction
	KindEdit
	KindToggle
)

// Style controls how a static item is drawn
type Style uint8

const (
	StyleDefault Style = 0
	StyleInvert  Style = 1 << 0
	StyleCenter  Style = 1 << 1
)

// CommandSink accepts G-code lines from menu items
type CommandSink interface {
	InjectCommands(gcode string)
}

// Builder constructs a screen. It runs on every entry, so a screen never
// outlives the visit that built it.
type Builder func() Screen

// Item is one row of a list screen
type Item struct {
	Kind  Kind
	Label string
	Style Style

	// Value returns right-aligned text for static and submenu rows
	Value func() string

	Builder Builder          // KindSubmenu
	GCode   string           // KindCommand, newline separated
	Action  func(*Navigator) // KindAction
	Editor  *IntEditor       // KindEdit
	On      bool             // KindToggle
	Set     func(on bool)    // KindToggle
}

// Back returns to the previous screen
func Back(label string) Item {
	return Item{Kind: KindBack, Label: label}
}

// Static is a non-selectable label
func Static(label string, style Style) Item {
	return Item{Kind: KindStatic, Label: label, Style: style}
}

// StaticValue is a non-selectable label with a right-aligned value
func StaticValue(label string, value func() string) Item {
	return Item{Kind: KindStatic, Label: label, Value: value}
}

// Submenu enters the screen made by b
func Submenu(label string, b Builder) Item {
	return Item{Kind: KindSubmenu, Label: label, Builder: b}
}

// Command sends G-code to the navigator's sink and stays on the screen
func Command(label, gcode string) Item {
	return Item{Kind: KindCommand, Label: label, GCode: gcode}
}

// Action runs fn
func Action(label string, fn func(*Navigator)) Item {
	return Item{Kind: KindAction, Label: label, Action: fn}
}

// Edit opens an edit screen for e
func Edit(label string, e *IntEditor) Item {
	return Item{Kind: KindEdit, Label: label, Editor: e}
}

// Toggle flips a boolean and reports it through set
func Toggle(label string, on bool, set func(bool)) Item {
	return Item{Kind: KindToggle, Label: label, On: on, Set: set}
}

// Selectable reports whether the cursor may rest on the item
func (it *Item) Selectable() bool {
	return it.Kind != KindStatic
}

// ValueText returns the right-aligned text drawn after the label
func (it *Item) ValueText() string {
	switch it.Kind {
	case KindEdit:
		return it.Editor.String()
	case KindToggle:
		if it.On {
			return "On"
		}
		return "Off"
	}
	if it.Value != nil {
		return it.Value()
	}
	return ""
}

// Activate performs the item's click behavior
func (it *Item) Activate(nav *Navigator) {
	switch it.Kind {
	case KindBack:
		nav.Back()
	case KindSubmenu:
		nav.Enter(it.Builder)
	case KindCommand:
		nav.Inject(it.GCode)
	case KindAction:
		it.Action(nav)
	case KindEdit:
		label, e := it.Label, it.Editor
		nav.Enter(func() Screen { return NewEditScreen(label, e) })
	case KindToggle:
		it.On = !it.On
		if it.Set != nil {
			it.Set(it.On)
		}
		nav.RequestRedraw()
	}
}
