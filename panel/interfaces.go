package panel

import (
	"gopper-panel/menu"
	"gopper-panel/standalone"
)

// Thermal is the temperature manager the panel drives
type Thermal interface {
	SetTargetHotend(temp float64, e int)
	SetTargetBed(temp float64)
	SetFanSpeed(fan int, speed int)
	DegHotend(e int) float64
	DegTargetHotend(e int) float64
	DegBed() float64
	DegTargetBed() float64
	HotendMaxTarget(e int) float64
	BedMaxTarget() float64
	FanSpeed(fan int) int
	DisableAllHeaters()
	ZeroFanSpeeds()
	TooColdToExtrude(e int) bool
	Hotends() int
	Fans() int
	HasHeatedBed() bool
}

// Motion is the motion subsystem the panel drives
type Motion interface {
	// CurrentPosition is the position the next move starts from
	CurrentPosition() standalone.Position
	// ManualLimits returns the soft endstop range of axis as seen from pos
	ManualLimits(axis standalone.Axis, pos standalone.Position) (min, max float64)
	QueueManualMove(target standalone.Position, axis standalone.Axis, feedrate float64) error
	MoveDone() bool
	AllAxesHomed() bool
	IsKinematic() bool
	SoftEndstops() bool
	SetSoftEndstops(on bool)
	ActiveExtruder() int
}

// Units reports the G-code parser's unit mode
type Units interface {
	UsingInchUnits() bool
}

// CommandSink accepts G-code from command items
type CommandSink = menu.CommandSink

// Printer is everything the panel talks to
type Printer interface {
	Thermal
	Motion
	Units
	CommandSink
}

// SettingsStore persists edited preheat profiles
type SettingsStore interface {
	StoreSettings(profiles []standalone.PreheatProfile) error
}
