package panel

import (
	"math"

	"gopper-panel/menu"
	"gopper-panel/standalone"
	"gopper-panel/standalone/kinematics"
)

// MMPerInch converts jog scales for inch mode
const MMPerInch = 25.4

// jogScreen moves one axis with the encoder
type jogScreen struct {
	p       *Panel
	axis    standalone.Axis
	label   string
	eOrigin float64 // E shown relative to this
}

func (s *jogScreen) HandleInput(nav *menu.Navigator, in menu.Input) {
	if in.Click {
		s.p.move.Discard()
		nav.Back()
		return
	}
	if in.EncoderDelta == 0 || s.p.move.Processing() {
		return
	}

	diff := float64(in.EncoderDelta) * s.p.move.Scale
	min, max := -kinematics.NoLimit, kinematics.NoLimit
	if s.axis != standalone.AxisE {
		min, max = s.p.manualLimits(s.axis)
	}
	s.p.move.ApplyDiff(s.axis, diff, min, max)
	s.p.move.Soon(s.axis, s.p.now)
	nav.RequestRedraw()
}

func (s *jogScreen) Render(f *menu.Frame) {
	menu.DrawEditScreen(f, s.label, s.p.jogValue(s.axis, s.eOrigin))
}

// manualLimits returns the jog range of axis. Deltas bound X and Y by the
// chord of the printable circle through the other axis' offset from center.
func (p *Panel) manualLimits(axis standalone.Axis) (float64, float64) {
	pos := p.move.target
	min, max := p.printer.ManualLimits(axis, pos)
	if p.cfg.Kinematics == "delta" && (axis == standalone.AxisX || axis == standalone.AxisY) {
		other := pos.Y
		if axis == standalone.AxisY {
			other = pos.X
		}
		r := p.cfg.DeltaRadius
		max = math.Sqrt(math.Max(0, r*r-other*other))
		min = -max
	}
	return min, max
}

// jogValue formats the jog target of axis for display
func (p *Panel) jogValue(axis standalone.Axis, eOrigin float64) string {
	pos := p.move.AxisValue(axis)
	if axis == standalone.AxisE {
		return ftostr41sign(pos - eOrigin)
	}
	if p.printer.UsingInchUnits() {
		return ftostr63(pos / MMPerInch)
	}
	if p.move.Scale >= 0.1 {
		if p.cfg.LargeArea() {
			return ftostr51sign(pos)
		}
		return ftostr41sign(pos)
	}
	return ftostr63(pos)
}

// jog returns a builder for the jog screen of axis at scale mm per detent
func (p *Panel) jog(axis standalone.Axis, label string, scale, eOrigin float64) menu.Builder {
	return func() menu.Screen {
		p.move.Scale = scale
		p.move.Sync()
		return &jogScreen{p: p, axis: axis, label: label, eOrigin: eOrigin}
	}
}
