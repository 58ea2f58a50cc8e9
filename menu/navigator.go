// Package menu is the front panel's navigation engine: screens, items, a
// bounded history stack and the character frame screens draw into.
package menu

import "gopper-panel/debug"

// MaxDepth bounds the navigation history; the oldest entry above the root
// is dropped
const MaxDepth = 6

// Screen handles input and draws itself
type Screen interface {
	HandleInput(nav *Navigator, in Input)
	Render(f *Frame)
}

// Selector is implemented by screens whose cursor survives a return visit
type Selector interface {
	Selection() int
	SetSelection(i int)
}

type historyEntry struct {
	builder   Builder
	selection int
	root      bool
}

// Navigator owns the active screen and the way back to earlier ones
type Navigator struct {
	root    Builder
	sink    CommandSink
	history []historyEntry
	screen  Screen
	redraw  bool
}

// NewNavigator creates a navigator showing root, the status screen
func NewNavigator(root Builder, sink CommandSink) *Navigator {
	n := &Navigator{
		root:    root,
		sink:    sink,
		history: make([]historyEntry, 0, MaxDepth),
	}
	n.ReturnToStatus()
	return n
}

// Screen returns the active screen
func (n *Navigator) Screen() Screen {
	return n.screen
}

// Depth returns the number of screens in the history, the active one included
func (n *Navigator) Depth() int {
	return len(n.history)
}

// Enter builds a new screen and makes it active
func (n *Navigator) Enter(b Builder) {
	if b == nil {
		return
	}
	n.saveSelection()
	n.history = append(n.history, historyEntry{builder: b})
	if len(n.history) > MaxDepth {
		copy(n.history[1:], n.history[2:])
		n.history = n.history[:MaxDepth]
	}
	n.screen = b()
	n.redraw = true
	debug.Record(debug.EvtEnter, 0xFF, int32(len(n.history)), 0)
}

// Back rebuilds the previous screen with its cursor restored. At the
// bottom of the history it does nothing.
func (n *Navigator) Back() {
	if len(n.history) <= 1 {
		return
	}
	n.history = n.history[:len(n.history)-1]
	top := n.history[len(n.history)-1]
	n.screen = top.builder()
	if s, ok := n.screen.(Selector); ok {
		s.SetSelection(top.selection)
	}
	n.redraw = true
	debug.Record(debug.EvtBack, 0xFF, int32(len(n.history)), 0)
}

// ReturnToStatus drops the history and shows the root screen
func (n *Navigator) ReturnToStatus() {
	n.history = append(n.history[:0], historyEntry{builder: n.root, root: true})
	n.screen = n.root()
	n.redraw = true
}

// AtStatus reports whether the root screen is active
func (n *Navigator) AtStatus() bool {
	return n.history[len(n.history)-1].root
}

// Handle passes input to the active screen
func (n *Navigator) Handle(in Input) {
	if in.Empty() {
		return
	}
	click := int32(0)
	if in.Click {
		click = 1
	}
	debug.Record(debug.EvtInput, 0xFF, int32(in.EncoderDelta), click)
	n.screen.HandleInput(n, in)
}

// Render draws the active screen into a cleared frame
func (n *Navigator) Render(f *Frame) {
	f.Clear()
	n.screen.Render(f)
}

// Inject sends G-code to the command sink
func (n *Navigator) Inject(gcode string) {
	if n.sink != nil {
		n.sink.InjectCommands(gcode)
	}
}

// RequestRedraw marks the display stale
func (n *Navigator) RequestRedraw() {
	n.redraw = true
}

// ConsumeRedraw reports and clears a pending redraw request
func (n *Navigator) ConsumeRedraw() bool {
	r := n.redraw
	n.redraw = false
	return r
}

func (n *Navigator) saveSelection() {
	if len(n.history) == 0 {
		return
	}
	if s, ok := n.screen.(Selector); ok {
		n.history[len(n.history)-1].selection = s.Selection()
	}
}
