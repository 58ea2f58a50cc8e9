package panel

import (
	"math"
	"testing"
	"time"

	"gopper-panel/menu"
	"gopper-panel/standalone"
	"gopper-panel/standalone/config"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestPanel(t *testing.T, pr *fakePrinter) *Panel {
	t.Helper()
	cfg := config.DefaultCartesianConfig()
	return New(cfg, pr, nil)
}

func TestApplyDiff(t *testing.T) {
	tests := []struct {
		name     string
		start    float64
		ticks    int
		scale    float64
		min, max float64
		want     float64
		clamped  bool
	}{
		{"within range", 50, 3, 10, 0, 220, 80, false},
		{"fine steps", 50, -4, 0.1, 0, 220, 49.6, false},
		{"clamp at max", 200, 5, 10, 0, 220, 220, true},
		{"clamp at min", 5, -1, 10, 0, 220, 0, true},
		{"zero range pins at zero", 5, 3, 10, 0, 0, 0, true},
		{"below zero range moving down", -5, -1, 10, 0, 0, 0, true},
		// Only the side the move heads toward is enforced
		{"outside min moving up", -20, 1, 1, 0, 220, -19, false},
		{"outside max moving down", 300, -1, 10, 0, 220, 290, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pr := newFakePrinter()
			pr.pos.X = test.start
			m := NewManualMove(pr, config.DefaultCartesianConfig())

			clamped := m.ApplyDiff(standalone.AxisX, float64(test.ticks)*test.scale, test.min, test.max)
			if got := m.AxisValue(standalone.AxisX); math.Abs(got-test.want) > 1e-9 {
				t.Errorf("Expected %f, got %f", test.want, got)
			}
			if clamped != test.clamped {
				t.Errorf("Expected clamped=%v, got %v", test.clamped, clamped)
			}
		})
	}
}

func TestApplyDiffNeverPassesLimits(t *testing.T) {
	for _, scale := range []float64{0.025, 0.1, 1, 10, 100} {
		for ticks := -50; ticks <= 50; ticks++ {
			pr := newFakePrinter()
			pr.pos.X = 110
			m := NewManualMove(pr, config.DefaultCartesianConfig())
			m.ApplyDiff(standalone.AxisX, float64(ticks)*scale, 0, 220)

			got := m.AxisValue(standalone.AxisX)
			if got < 0 || got > 220 {
				t.Fatalf("scale %f ticks %d: %f outside 0..220", scale, ticks, got)
			}
			want := math.Max(0, math.Min(220, 110+float64(ticks)*scale))
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("scale %f ticks %d: expected %f, got %f", scale, ticks, want, got)
			}
		}
	}
}

func TestSoonDelay(t *testing.T) {
	pr := newFakePrinter()
	m := NewManualMove(pr, config.DefaultCartesianConfig())

	m.Scale = 10
	m.ApplyDiff(standalone.AxisX, 10, 0, 220)
	m.Soon(standalone.AxisX, t0)
	m.Task(t0.Add(200 * time.Millisecond))
	if m.State() != MovePending || len(pr.moves) != 0 {
		t.Fatalf("Coarse jog should wait %v, state %s", SoonDelay, m.State())
	}
	m.Task(t0.Add(SoonDelay))
	if m.State() != MoveProcessing || len(pr.moves) != 1 {
		t.Fatalf("Expected move queued after delay, state %s", m.State())
	}
	if pr.feedrates[0] != 50 {
		t.Errorf("Expected X manual feedrate 50, got %f", pr.feedrates[0])
	}

	pr.moveDone = true
	m.Task(t0.Add(time.Second))

	m.Scale = 0.1
	m.ApplyDiff(standalone.AxisX, 0.1, 0, 220)
	m.Soon(standalone.AxisX, t0)
	m.Task(t0)
	if len(pr.moves) != 2 {
		t.Error("Fine jog should go out immediately")
	}
}

func enterJog(p *Panel, axis standalone.Axis, scale float64) {
	p.nav.Enter(p.motionMenu)
	p.nav.Enter(p.jog(axis, moveLabels[axis], scale, 0))
}

func TestNoDoubleApplicationWhileProcessing(t *testing.T) {
	pr := newFakePrinter()
	pr.pos.X = 10
	p := newTestPanel(t, pr)
	enterJog(p, standalone.AxisX, 1)

	p.Update(t0, menu.Input{EncoderDelta: 5})
	p.Update(t0.Add(SoonDelay), menu.Input{})
	if p.move.State() != MoveProcessing {
		t.Fatalf("Expected processing, got %s", p.move.State())
	}
	if len(pr.moves) != 1 || pr.moves[0].X != 15 {
		t.Fatalf("Expected one move to X15, got %+v", pr.moves)
	}

	// Dropped, not deferred
	p.Update(t0.Add(300*time.Millisecond), menu.Input{EncoderDelta: 3})
	if got := p.move.AxisValue(standalone.AxisX); got != 15 {
		t.Errorf("Delta applied while processing: %f", got)
	}

	pr.moveDone = true
	p.Update(t0.Add(400*time.Millisecond), menu.Input{})
	if p.move.State() != MoveIdle {
		t.Fatalf("Expected idle after move done, got %s", p.move.State())
	}
	p.Update(t0.Add(2*time.Second), menu.Input{})
	if len(pr.moves) != 1 {
		t.Errorf("Dropped delta must not produce a move, got %+v", pr.moves)
	}
}

func TestClickWhilePendingDiscards(t *testing.T) {
	pr := newFakePrinter()
	pr.pos.X = 10
	p := newTestPanel(t, pr)
	enterJog(p, standalone.AxisX, 10)

	p.Update(t0, menu.Input{EncoderDelta: 2})
	if p.move.State() != MovePending {
		t.Fatalf("Expected pending, got %s", p.move.State())
	}

	p.Update(t0.Add(10*time.Millisecond), menu.Input{Click: true})
	p.Update(t0.Add(time.Second), menu.Input{})
	if len(pr.moves) != 0 {
		t.Errorf("Discarded jog queued a move: %+v", pr.moves)
	}
	if got := p.move.AxisValue(standalone.AxisX); got != 10 {
		t.Errorf("Expected target restored to 10, got %f", got)
	}
	if _, ok := p.nav.Screen().(*menu.List); !ok || p.nav.Depth() != 2 {
		t.Errorf("Expected back on the previous menu, depth %d", p.nav.Depth())
	}
}

func TestRejectedMoveResyncs(t *testing.T) {
	pr := newFakePrinter()
	pr.rejectAll = true
	p := newTestPanel(t, pr)
	enterJog(p, standalone.AxisX, 0.1)

	p.Update(t0, menu.Input{EncoderDelta: 1})
	if p.move.State() != MoveIdle || p.move.Err() == nil {
		t.Errorf("Expected idle with error, state %s", p.move.State())
	}
	if got := p.move.AxisValue(standalone.AxisX); got != 0 {
		t.Errorf("Expected target resynced to 0, got %f", got)
	}
}

func TestJogDisplay(t *testing.T) {
	tests := []struct {
		name  string
		pos   float64
		scale float64
		inch  bool
		want  string
	}{
		{"inches", 12.7, 10, true, "  0.500"},
		{"coarse", 12.7, 10, false, "+012.7"},
		{"fine", 12.7, 0.025, false, " 12.700"},
		{"negative", -3.25, 1, false, "-003.3"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pr := newFakePrinter()
			pr.pos.Z = test.pos
			pr.inch = test.inch
			p := newTestPanel(t, pr)
			p.move.Scale = test.scale
			p.move.Sync()
			if got := p.jogValue(standalone.AxisZ, 0); got != test.want {
				t.Errorf("Expected %q, got %q", test.want, got)
			}
		})
	}
}

func TestJogScreenRender(t *testing.T) {
	pr := newFakePrinter()
	pr.pos.X = 12.7
	pr.inch = true
	p := newTestPanel(t, pr)
	enterJog(p, standalone.AxisX, 2.54)

	f := menu.NewFrame(20, 4)
	p.Render(f)
	if got := f.Line(1); got != "Move X:        0.500" {
		t.Errorf("Unexpected jog row %q", got)
	}
}

func TestLargeAreaDisplay(t *testing.T) {
	pr := newFakePrinter()
	pr.pos.X = 1234.5
	cfg := config.DefaultCartesianConfig()
	x := cfg.Axes["x"]
	x.MaxPosition = 1500
	cfg.Axes["x"] = x
	p := New(cfg, pr, nil)
	p.move.Scale = 100

	if got := p.jogValue(standalone.AxisX, 0); got != "+1234.5" {
		t.Errorf("Expected +1234.5, got %q", got)
	}
}

func TestDeltaRadialLimit(t *testing.T) {
	pr := newFakePrinter()
	pr.pos.Y = 60
	pr.min, pr.max = -100, 100
	p := New(config.DefaultDeltaConfig(), pr, nil)
	p.move.Sync()

	min, max := p.manualLimits(standalone.AxisX)
	if math.Abs(max-80) > 1e-9 || math.Abs(min+80) > 1e-9 {
		t.Errorf("Expected -80..80, got %f..%f", min, max)
	}
	min, max = p.manualLimits(standalone.AxisZ)
	if min != -100 || max != 100 {
		t.Errorf("Z should use motion limits, got %f..%f", min, max)
	}

	// At the edge of the printable circle X has no room left
	pr.pos = standalone.Position{Y: 100}
	p.move.Sync()
	p.nav.Enter(p.jog(standalone.AxisX, "Move X", 10, 100))
	p.Update(t0, menu.Input{EncoderDelta: 50})
	if got := p.move.AxisValue(standalone.AxisX); got != 0 {
		t.Errorf("Expected X pinned at 0, got %f", got)
	}
	p.Update(t0, menu.Input{EncoderDelta: -50})
	if got := p.move.AxisValue(standalone.AxisX); got != 0 {
		t.Errorf("Expected X pinned at 0, got %f", got)
	}
}

func TestEJogIsRelativeAndUnlimited(t *testing.T) {
	pr := newFakePrinter()
	pr.pos.E = 100
	p := newTestPanel(t, pr)
	p.nav.Enter(p.jog(standalone.AxisE, "Extruder", 10, 100))

	p.Update(t0, menu.Input{EncoderDelta: 30})
	if got := p.move.AxisValue(standalone.AxisE); got != 400 {
		t.Errorf("E should not be clamped, got %f", got)
	}
	if got := p.jogValue(standalone.AxisE, 100); got != "+300.0" {
		t.Errorf("Expected E relative to origin, got %q", got)
	}
}
