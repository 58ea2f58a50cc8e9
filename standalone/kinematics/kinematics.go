package kinematics

import (
	"errors"
	"fmt"

	"gopper-panel/standalone"
)

// NoLimit is the travel bound reported for an axis without soft endstops
const NoLimit = 100000.0

// ErrOutOfLimits is returned by CheckLimits for moves past the travel bounds
var ErrOutOfLimits = errors.New("position out of limits")

// Kinematics defines the interface for coordinate transformations
type Kinematics interface {
	// CalcPosition converts XYZ coordinates to stepper positions
	CalcPosition(pos standalone.Position) ([]float64, error)

	// GetAxisNames returns the names of axes controlled by this kinematics
	GetAxisNames() []string

	// CheckLimits validates that a position is within configured limits
	CheckLimits(pos standalone.Position) error

	// AxisLimits returns the configured travel range of a cartesian axis
	AxisLimits(axis standalone.Axis) AxisLimits

	// ManualLimits returns the range a front panel jog of axis may reach
	// from pos. Non-cartesian geometries may couple the axes.
	ManualLimits(axis standalone.Axis, pos standalone.Position, softEndstops bool) AxisLimits

	// IsKinematic reports whether cartesian moves need a coordinate transform
	IsKinematic() bool
}

// AxisLimits represents position limits for an axis
type AxisLimits struct {
	Min float64
	Max float64
}

// Clamp limits v to the range
func (l AxisLimits) Clamp(v float64) float64 {
	if v < l.Min {
		return l.Min
	}
	if v > l.Max {
		return l.Max
	}
	return v
}

// New creates the kinematics named by the machine config
func New(config *standalone.MachineConfig) (Kinematics, error) {
	switch config.Kinematics {
	case "cartesian", "":
		return NewCartesian(config)
	case "delta":
		return NewDelta(config)
	}
	return nil, fmt.Errorf("unsupported kinematics: %s", config.Kinematics)
}

// ErrAxisNotConfigured is returned when a required axis is missing
var ErrAxisNotConfigured = errors.New("axis not configured")

func requireAxes(config *standalone.MachineConfig, axes ...standalone.Axis) error {
	for _, axis := range axes {
		if _, ok := config.Axes[axis.String()]; !ok {
			return fmt.Errorf("%c: %w", axis.Letter(), ErrAxisNotConfigured)
		}
	}
	return nil
}

// axisLimits looks up the configured range for a named axis
func axisLimits(config *standalone.MachineConfig, axis standalone.Axis) AxisLimits {
	a, ok := config.Axes[axis.String()]
	if !ok {
		return AxisLimits{Min: -NoLimit, Max: NoLimit}
	}
	return AxisLimits{Min: a.MinPosition, Max: a.MaxPosition}
}

// softEndstopLimits applies the soft endstop switch to the configured range
func softEndstopLimits(config *standalone.MachineConfig, axis standalone.Axis, enabled bool) AxisLimits {
	if !enabled || axis == standalone.AxisE {
		return AxisLimits{Min: -NoLimit, Max: NoLimit}
	}
	return axisLimits(config, axis)
}
