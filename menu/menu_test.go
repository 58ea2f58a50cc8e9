package menu

import (
	"strings"
	"testing"
)

type recordingSink struct {
	lines []string
}

func (s *recordingSink) InjectCommands(gcode string) {
	s.lines = append(s.lines, gcode)
}

// countingBuilder returns a builder that counts how often it ran
func countingBuilder(count *int, items ...Item) Builder {
	return func() Screen {
		*count++
		return NewList(items...)
	}
}

func TestFrameLines(t *testing.T) {
	f := NewFrame(8, 2)
	f.SetLine(0, "Hello world", true)
	f.SetLine(1, "Hi", false)
	f.Put(1, 6, "OK")

	if got := f.Line(0); got != "Hello wo" {
		t.Errorf("Expected truncation, got %q", got)
	}
	if got := f.Line(1); got != "Hi    OK" {
		t.Errorf("Expected padded row, got %q", got)
	}
	if !f.Inverted(0) || f.Inverted(1) {
		t.Error("Invert flags not kept per row")
	}
	if got := f.String(); got != "Hello wo\nHi    OK" {
		t.Errorf("Unexpected String(): %q", got)
	}

	g := NewFrame(8, 2)
	g.CopyFrom(f)
	if !g.Equal(f) {
		t.Error("CopyFrom should produce an equal frame")
	}
	f.Clear()
	if g.Equal(f) {
		t.Error("Cleared frame should differ")
	}
}

func TestListSkipsStaticAndClamps(t *testing.T) {
	nav := NewNavigator(func() Screen { return NewList() }, nil)
	l := NewList(
		Static("Header", StyleInvert),
		Back("Main"),
		Static("---", StyleDefault),
		Command("Home", "G28"),
		Command("Off", "M84"),
	)

	if l.Selection() != 1 {
		t.Fatalf("Expected first selectable item, got %d", l.Selection())
	}

	tests := []struct {
		delta int
		want  int
	}{
		{1, 3}, // skips the static separator
		{1, 4},
		{5, 4},  // no wrap at the end
		{-2, 1}, // skips back over the separator
		{-9, 1}, // never lands on the header
	}
	for _, test := range tests {
		l.HandleInput(nav, Input{EncoderDelta: test.delta})
		if l.Selection() != test.want {
			t.Errorf("delta %d: expected selection %d, got %d", test.delta, test.want, l.Selection())
		}
	}
}

func TestListRender(t *testing.T) {
	f := NewFrame(20, 4)
	e := &IntEditor{Value: 200, Max: 260}
	l := NewList(
		Static("Move X", StyleInvert),
		Back("Motion"),
		Submenu("Move 10mm", nil),
		Edit("Nozzle", e),
		Toggle("Soft Endstops", true, nil),
	)
	l.Render(f)

	want := []string{
		"Move X              ",
		">Motion            ^",
		" Move 10mm         >",
		" Nozzle:         200",
	}
	for i, line := range want {
		if got := f.Line(i); got != line {
			t.Errorf("row %d: expected %q, got %q", i, line, got)
		}
	}
	if !f.Inverted(0) {
		t.Error("Header should be inverted")
	}

	// Scrolling to the last item moves the window down
	l.SetSelection(4)
	f.Clear()
	l.Render(f)
	if got := f.Line(3); got != ">Soft Endstops    On" {
		t.Errorf("Expected toggle on last row, got %q", got)
	}
}

func TestItemActivation(t *testing.T) {
	sink := &recordingSink{}
	var builds int
	nav := NewNavigator(countingBuilder(&builds, Submenu("Menu", nil)), sink)

	toggled := false
	acted := false
	var sub int
	l := NewList(
		Command("Home", "G28\nM84"),
		Action("Act", func(*Navigator) { acted = true }),
		Toggle("Flag", false, func(on bool) { toggled = on }),
		Submenu("Sub", countingBuilder(&sub, Back("Up"))),
	)

	l.HandleInput(nav, Input{Click: true})
	if len(sink.lines) != 1 || sink.lines[0] != "G28\nM84" {
		t.Errorf("Command should reach the sink, got %v", sink.lines)
	}

	l.SetSelection(1)
	l.HandleInput(nav, Input{Click: true})
	if !acted {
		t.Error("Action not invoked")
	}

	l.SetSelection(2)
	l.HandleInput(nav, Input{Click: true})
	if !toggled || !l.Items()[2].On {
		t.Error("Toggle should flip and report")
	}

	l.SetSelection(3)
	l.HandleInput(nav, Input{Click: true})
	if sub != 1 || nav.Depth() != 2 {
		t.Errorf("Submenu should be built once and entered, builds=%d depth=%d", sub, nav.Depth())
	}
}

func TestNavigatorRebuildsAndRestoresSelection(t *testing.T) {
	var rootBuilds, menuBuilds, subBuilds int
	sub := countingBuilder(&subBuilds, Back("Menu"))
	menu := countingBuilder(&menuBuilds, Back("Status"), Command("A", "M105"), Submenu("Sub", sub))
	nav := NewNavigator(countingBuilder(&rootBuilds, Submenu("Menu", menu)), nil)

	if !nav.AtStatus() || rootBuilds != 1 {
		t.Fatalf("Expected status screen built once, got %d", rootBuilds)
	}

	nav.Handle(Input{Click: true})
	nav.Handle(Input{EncoderDelta: 2})
	nav.Handle(Input{Click: true})
	if nav.Depth() != 3 || subBuilds != 1 {
		t.Fatalf("Expected to be in Sub, depth=%d", nav.Depth())
	}

	nav.Handle(Input{Click: true}) // Back item
	if menuBuilds != 2 {
		t.Errorf("Back should rebuild the menu, builds=%d", menuBuilds)
	}
	if sel := nav.Screen().(*List).Selection(); sel != 2 {
		t.Errorf("Expected selection restored to 2, got %d", sel)
	}

	nav.Back()
	nav.Back() // no-op at the root
	if !nav.AtStatus() || nav.Depth() != 1 {
		t.Errorf("Expected status at depth 1, got depth %d", nav.Depth())
	}
}

func TestNavigatorDepthBound(t *testing.T) {
	var builds int
	leaf := countingBuilder(&builds, Back("Up"))
	nav := NewNavigator(leaf, nil)

	for i := 0; i < MaxDepth+3; i++ {
		nav.Enter(leaf)
	}
	if nav.Depth() != MaxDepth {
		t.Errorf("Expected depth %d, got %d", MaxDepth, nav.Depth())
	}
	if nav.AtStatus() {
		t.Error("Leaf should be active")
	}
	for i := 0; i < MaxDepth; i++ {
		nav.Back()
	}
	if !nav.AtStatus() || nav.Depth() != 1 {
		t.Errorf("Back should still reach the root, got depth %d", nav.Depth())
	}

	nav.ReturnToStatus()
	if !nav.AtStatus() || nav.Depth() != 1 {
		t.Error("ReturnToStatus should reset the history")
	}
	if !nav.ConsumeRedraw() || nav.ConsumeRedraw() {
		t.Error("Redraw flag should be set once and cleared on consume")
	}
}

func TestIntEditor(t *testing.T) {
	var set []int
	e := &IntEditor{Value: 10, Min: 0, Max: 20, Set: func(v int) { set = append(set, v) }}

	e.Adjust(15)
	if e.Value != 20 {
		t.Errorf("Expected clamp to 20, got %d", e.Value)
	}
	e.Adjust(-50)
	if e.Value != 0 {
		t.Errorf("Expected clamp to 0, got %d", e.Value)
	}
	if len(set) != 0 {
		t.Errorf("Non-live editor should not set before commit, got %v", set)
	}
	e.Commit()
	if len(set) != 1 || set[0] != 0 {
		t.Errorf("Expected one commit of 0, got %v", set)
	}

	live := &IntEditor{Max: 255, Live: true, Format: FormatPercent, Set: func(v int) { set = append(set, v) }}
	live.Adjust(128)
	if set[len(set)-1] != 128 {
		t.Error("Live editor should set on adjust")
	}
	if got := live.String(); got != " 50%" {
		t.Errorf("Expected \" 50%%\", got %q", got)
	}
}

func TestEditScreen(t *testing.T) {
	var root int
	nav := NewNavigator(countingBuilder(&root, Back("x")), nil)

	committed := -1
	e := &IntEditor{Value: 60, Max: 115, Set: func(v int) { committed = v }}
	label := "Bed"
	nav.Enter(func() Screen { return NewEditScreen(label, e) })

	nav.Handle(Input{EncoderDelta: 5})
	f := NewFrame(20, 4)
	nav.Render(f)
	if got := f.Line(1); got != "Bed:              65" {
		t.Errorf("Unexpected edit row %q", got)
	}

	nav.Handle(Input{Click: true})
	if committed != 65 {
		t.Errorf("Expected commit of 65, got %d", committed)
	}
	if !nav.AtStatus() {
		t.Error("Click should leave the edit screen")
	}
}

func TestConfirm(t *testing.T) {
	var root int
	nav := NewNavigator(countingBuilder(&root, Back("x")), nil)

	proceeded := false
	c := &Confirm{
		Lines: []string{"Hotend too cold", "Heating..."},
		Yes:   "Proceed",
		No:    "Back",
		OnYes: func(*Navigator) { proceeded = true },
	}
	nav.Enter(func() Screen { return c })

	f := NewFrame(20, 4)
	nav.Render(f)
	if got := f.Line(3); !strings.HasSuffix(got, "[Back]") {
		t.Errorf("Back should be selected on entry, got %q", got)
	}

	nav.Handle(Input{EncoderDelta: 1})
	nav.Render(f)
	if got := f.Line(3); !strings.HasPrefix(got, "[Proceed]") {
		t.Errorf("Proceed should be selected, got %q", got)
	}

	nav.Handle(Input{EncoderDelta: -1})
	nav.Handle(Input{Click: true})
	if proceeded || !nav.AtStatus() {
		t.Error("Back choice should go back without proceeding")
	}
}
