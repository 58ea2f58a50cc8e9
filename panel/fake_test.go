package panel

import (
	"errors"

	"gopper-panel/standalone"
)

var errFakeMove = errors.New("fake move rejected")

// fakePrinter records every call the panel makes
type fakePrinter struct {
	hotendTargets []float64
	hotendMax     []float64
	bed           bool
	bedTarget     float64
	bedMax        float64
	fans          []int
	active        int
	cold          bool

	pos       standalone.Position
	min, max  float64
	moves     []standalone.Position
	feedrates []float64
	moveDone  bool
	rejectAll bool
	homed     bool
	kinematic bool
	soft      bool
	inch      bool

	commands []string
}

func newFakePrinter() *fakePrinter {
	return &fakePrinter{
		hotendTargets: []float64{0},
		hotendMax:     []float64{260},
		bed:           true,
		bedMax:        115,
		fans:          []int{0},
		min:           0,
		max:           220,
		moveDone:      true,
		homed:         true,
		soft:          true,
	}
}

func (f *fakePrinter) SetTargetHotend(temp float64, e int) {
	if e >= 0 && e < len(f.hotendTargets) {
		f.hotendTargets[e] = temp
	}
}
func (f *fakePrinter) SetTargetBed(temp float64) { f.bedTarget = temp }
func (f *fakePrinter) SetFanSpeed(fan int, speed int) {
	if fan >= 0 && fan < len(f.fans) {
		f.fans[fan] = speed
	}
}
func (f *fakePrinter) DegHotend(e int) float64 { return 25 }
func (f *fakePrinter) DegTargetHotend(e int) float64 {
	if e < 0 || e >= len(f.hotendTargets) {
		return 0
	}
	return f.hotendTargets[e]
}
func (f *fakePrinter) DegBed() float64                      { return 25 }
func (f *fakePrinter) DegTargetBed() float64                { return f.bedTarget }
func (f *fakePrinter) HotendMaxTarget(e int) float64        { return f.hotendMax[e] }
func (f *fakePrinter) BedMaxTarget() float64                { return f.bedMax }
func (f *fakePrinter) FanSpeed(fan int) int                 { return f.fans[fan] }
func (f *fakePrinter) TooColdToExtrude(e int) bool          { return f.cold }
func (f *fakePrinter) Hotends() int                         { return len(f.hotendTargets) }
func (f *fakePrinter) Fans() int                            { return len(f.fans) }
func (f *fakePrinter) HasHeatedBed() bool                   { return f.bed }
func (f *fakePrinter) CurrentPosition() standalone.Position { return f.pos }
func (f *fakePrinter) MoveDone() bool                       { return f.moveDone }
func (f *fakePrinter) AllAxesHomed() bool                   { return f.homed }
func (f *fakePrinter) IsKinematic() bool                    { return f.kinematic }
func (f *fakePrinter) SoftEndstops() bool                   { return f.soft }
func (f *fakePrinter) SetSoftEndstops(on bool)              { f.soft = on }
func (f *fakePrinter) ActiveExtruder() int                  { return f.active }
func (f *fakePrinter) UsingInchUnits() bool                 { return f.inch }
func (f *fakePrinter) InjectCommands(gcode string)          { f.commands = append(f.commands, gcode) }

func (f *fakePrinter) DisableAllHeaters() {
	for i := range f.hotendTargets {
		f.hotendTargets[i] = 0
	}
	f.bedTarget = 0
}

func (f *fakePrinter) ZeroFanSpeeds() {
	for i := range f.fans {
		f.fans[i] = 0
	}
}

func (f *fakePrinter) ManualLimits(axis standalone.Axis, pos standalone.Position) (float64, float64) {
	return f.min, f.max
}

func (f *fakePrinter) QueueManualMove(target standalone.Position, axis standalone.Axis, feedrate float64) error {
	if f.rejectAll {
		return errFakeMove
	}
	f.moves = append(f.moves, target)
	f.feedrates = append(f.feedrates, feedrate)
	f.pos = target
	f.moveDone = false
	return nil
}
