package kinematics

import (
	"fmt"

	"gopper-panel/standalone"
)

// Cartesian implements basic Cartesian kinematics (XYZ 1:1 mapping)
type Cartesian struct {
	config *standalone.MachineConfig
}

// NewCartesian creates cartesian kinematics; X, Y and Z must be configured
func NewCartesian(config *standalone.MachineConfig) (*Cartesian, error) {
	if err := requireAxes(config, standalone.AxisX, standalone.AxisY, standalone.AxisZ); err != nil {
		return nil, err
	}
	return &Cartesian{config: config}, nil
}

// CalcPosition maps XYZE straight to the X, Y, Z and E steppers
func (k *Cartesian) CalcPosition(pos standalone.Position) ([]float64, error) {
	return []float64{pos.X, pos.Y, pos.Z, pos.E}, nil
}

// GetAxisNames returns the axis names for Cartesian kinematics
func (k *Cartesian) GetAxisNames() []string {
	return []string{"x", "y", "z", "e"}
}

// CheckLimits validates that a position is within configured limits
func (k *Cartesian) CheckLimits(pos standalone.Position) error {
	for _, axis := range []standalone.Axis{standalone.AxisX, standalone.AxisY, standalone.AxisZ} {
		lim := axisLimits(k.config, axis)
		if v := pos.Get(axis); v < lim.Min || v > lim.Max {
			return fmt.Errorf("%c=%.3f: %w", axis.Letter(), v, ErrOutOfLimits)
		}
	}
	return nil
}

// AxisLimits returns the configured travel range of an axis
func (k *Cartesian) AxisLimits(axis standalone.Axis) AxisLimits {
	return axisLimits(k.config, axis)
}

// ManualLimits returns the soft endstop range, independent of other axes
func (k *Cartesian) ManualLimits(axis standalone.Axis, pos standalone.Position, softEndstops bool) AxisLimits {
	return softEndstopLimits(k.config, axis, softEndstops)
}

// IsKinematic is false: cartesian moves map straight to the steppers
func (k *Cartesian) IsKinematic() bool {
	return false
}
