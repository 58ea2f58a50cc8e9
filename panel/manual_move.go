package panel

import (
	"fmt"
	"time"

	"gopper-panel/debug"
	"gopper-panel/standalone"
)

// SoonDelay holds back coarse jogs so a quick spin of the encoder becomes
// one move
const SoonDelay = 250 * time.Millisecond

// MoveState is the manual move lifecycle
type MoveState uint8

const (
	MoveIdle       MoveState = iota // Target follows the printer
	MovePending                     // Target changed, waiting for the start time
	MoveProcessing                  // Handed to motion, waiting for it to finish
)

func (s MoveState) String() string {
	switch s {
	case MovePending:
		return "pending"
	case MoveProcessing:
		return "processing"
	}
	return "idle"
}

// ManualMove turns jog screen deltas into single-axis moves
type ManualMove struct {
	motion Motion
	config *standalone.MachineConfig

	// Scale is the jog distance per encoder detent in mm
	Scale float64

	state  MoveState
	axis   standalone.Axis
	start  time.Time
	target standalone.Position
	err    error
}

// NewManualMove creates an idle manual move bound to motion
func NewManualMove(motion Motion, config *standalone.MachineConfig) *ManualMove {
	return &ManualMove{
		motion: motion,
		config: config,
		Scale:  1,
		axis:   standalone.NoAxis,
		target: motion.CurrentPosition(),
	}
}

// State returns the lifecycle state
func (m *ManualMove) State() MoveState {
	return m.state
}

// Processing reports whether a move is with the motion subsystem
func (m *ManualMove) Processing() bool {
	return m.state == MoveProcessing
}

// Err returns the last error from the motion subsystem
func (m *ManualMove) Err() error {
	return m.err
}

// Sync resets the target to the printer's position unless a move is underway
func (m *ManualMove) Sync() {
	if m.state == MoveIdle {
		m.target = m.motion.CurrentPosition()
	}
}

// ApplyDiff adds diff to the target of axis, clamped on the side the move
// heads toward. A range of [0,0] pins the axis at 0. It reports whether
// clamping changed the value.
func (m *ManualMove) ApplyDiff(axis standalone.Axis, diff, min, max float64) bool {
	v := m.target.Get(axis) + diff
	pre := v
	if diff < 0 {
		if v < min {
			v = min
		}
	} else if v > max {
		v = max
	}
	m.target.Set(axis, v)
	return pre != v
}

// Soon schedules the target of axis to be sent
func (m *ManualMove) Soon(axis standalone.Axis, now time.Time) {
	if m.state == MoveProcessing {
		return
	}
	m.state = MovePending
	m.axis = axis
	m.start = now
	if m.Scale >= 0.99 {
		m.start = now.Add(SoonDelay)
	}
	debug.Record(debug.EvtMoveSoon, uint8(axis), int32(m.target.Get(axis)*1000), 0)
}

// Discard drops a pending move and restores the committed position. It
// reports whether anything was dropped.
func (m *ManualMove) Discard() bool {
	if m.state != MovePending {
		return false
	}
	m.state = MoveIdle
	m.axis = standalone.NoAxis
	m.target = m.motion.CurrentPosition()
	debug.Record(debug.EvtDiscard, 0xFF, 0, 0)
	return true
}

// Task advances the lifecycle; call it once per UI tick
func (m *ManualMove) Task(now time.Time) {
	switch m.state {
	case MoveIdle:
		m.target = m.motion.CurrentPosition()

	case MovePending:
		if now.Before(m.start) {
			return
		}
		axis := m.axis
		err := m.motion.QueueManualMove(m.target, axis, m.feedrate(axis))
		if err != nil {
			m.err = err
			m.state = MoveIdle
			m.axis = standalone.NoAxis
			m.target = m.motion.CurrentPosition()
			debug.Println(fmt.Sprintf("[PANEL] manual move %s: %v", axis, err))
			return
		}
		m.err = nil
		m.state = MoveProcessing
		debug.Record(debug.EvtMoveQueue, uint8(axis), int32(m.target.Get(axis)*1000), 0)

	case MoveProcessing:
		if !m.motion.MoveDone() {
			return
		}
		debug.Record(debug.EvtMoveDone, uint8(m.axis), 0, 0)
		m.state = MoveIdle
		m.axis = standalone.NoAxis
		m.target = m.motion.CurrentPosition()
	}
}

// AxisValue returns the target coordinate of axis
func (m *ManualMove) AxisValue(axis standalone.Axis) float64 {
	return m.target.Get(axis)
}

func (m *ManualMove) feedrate(axis standalone.Axis) float64 {
	if a, ok := m.config.Axes[axis.String()]; ok && a.ManualFeedrate > 0 {
		return a.ManualFeedrate
	}
	return m.config.DefaultVelocity
}
