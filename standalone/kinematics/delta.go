package kinematics

import (
	"errors"
	"fmt"
	"math"

	"gopper-panel/standalone"
)

// Delta implements linear delta kinematics limits. Tower geometry is not
// modelled; the panel only needs the printable cylinder.
type Delta struct {
	config *standalone.MachineConfig
	radius float64
}

// NewDelta creates delta kinematics from the config's printable radius
func NewDelta(config *standalone.MachineConfig) (*Delta, error) {
	if config.DeltaRadius <= 0 {
		return nil, errors.New("delta printable radius not configured")
	}
	if err := requireAxes(config, standalone.AxisZ); err != nil {
		return nil, err
	}
	return &Delta{config: config, radius: config.DeltaRadius}, nil
}

// CalcPosition returns the cartesian position; tower solving happens on the MCU
func (k *Delta) CalcPosition(pos standalone.Position) ([]float64, error) {
	if err := k.CheckLimits(pos); err != nil {
		return nil, err
	}
	return []float64{pos.X, pos.Y, pos.Z, pos.E}, nil
}

// GetAxisNames returns the axis names for delta kinematics
func (k *Delta) GetAxisNames() []string {
	return []string{"x", "y", "z", "e"}
}

// CheckLimits validates a position against the printable cylinder
func (k *Delta) CheckLimits(pos standalone.Position) error {
	if r := math.Hypot(pos.X, pos.Y); r > k.radius+1e-6 {
		return fmt.Errorf("radius %.3f: %w", r, ErrOutOfLimits)
	}
	z := axisLimits(k.config, standalone.AxisZ)
	if pos.Z < z.Min || pos.Z > z.Max {
		return fmt.Errorf("Z=%.3f: %w", pos.Z, ErrOutOfLimits)
	}
	return nil
}

// AxisLimits returns the bounding range of an axis
func (k *Delta) AxisLimits(axis standalone.Axis) AxisLimits {
	switch axis {
	case standalone.AxisX, standalone.AxisY:
		return AxisLimits{Min: -k.radius, Max: k.radius}
	}
	return axisLimits(k.config, axis)
}

// ManualLimits bounds X and Y by the chord of the printable circle through
// the other axis' current offset from the center (assumed at 0,0)
func (k *Delta) ManualLimits(axis standalone.Axis, pos standalone.Position, softEndstops bool) AxisLimits {
	var other float64
	switch axis {
	case standalone.AxisX:
		other = pos.Y
	case standalone.AxisY:
		other = pos.X
	default:
		return softEndstopLimits(k.config, axis, softEndstops)
	}
	max := math.Sqrt(math.Max(0, k.radius*k.radius-other*other))
	return AxisLimits{Min: -max, Max: max}
}

// IsKinematic is true for deltas
func (k *Delta) IsKinematic() bool {
	return true
}
