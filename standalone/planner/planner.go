package planner

import (
	"errors"
	"math"

	"gopper-panel/standalone"
	"gopper-panel/standalone/kinematics"
)

// QueueDepth is the number of moves the planner buffers
const QueueDepth = 16

// ErrQueueFull is returned when QueueDepth moves are already pending
var ErrQueueFull = errors.New("move queue full")

// Planner handles motion planning and execution. Step generation lives on
// the MCU; here moves complete as simulated time advances.
type Planner struct {
	config     *standalone.MachineConfig
	kinematics kinematics.Kinematics

	// Current state
	currentPos standalone.Position // Position after the last completed move
	queuedPos  standalone.Position // Position after the last queued move
	moveQueue  []*standalone.Move
	elapsed    float64 // Seconds spent on the head move
	completed  uint32  // Moves finished since start
	motorsOn   bool
}

// NewPlanner creates a new motion planner
func NewPlanner(config *standalone.MachineConfig, kin kinematics.Kinematics) *Planner {
	return &Planner{
		config:     config,
		kinematics: kin,
		currentPos: standalone.Position{},
		moveQueue:  make([]*standalone.Move, 0, QueueDepth),
	}
}

// QueueMove adds a move to the queue
func (p *Planner) QueueMove(move *standalone.Move) error {
	if len(p.moveQueue) >= QueueDepth {
		return ErrQueueFull
	}

	// Check limits
	err := p.kinematics.CheckLimits(move.End)
	if err != nil {
		return err
	}

	// Moves chain from the end of the previous queued move
	move.Start = p.queuedPos
	if move.Distance == 0 {
		move.Distance = distance(move.Start, move.End)
	}
	if move.Accel == 0 {
		move.Accel = p.config.DefaultAccel
	}
	if move.Velocity == 0 {
		move.Velocity = p.config.DefaultVelocity
	}

	// Calculate trapezoidal profile
	p.calculateTrapezoid(move)

	// Add to queue
	p.moveQueue = append(p.moveQueue, move)
	p.queuedPos = move.End
	p.motorsOn = true

	return nil
}

// calculateTrapezoid calculates the trapezoidal velocity profile for a move
func (p *Planner) calculateTrapezoid(move *standalone.Move) {
	// Limit velocity to axis maximums
	maxVel := move.Velocity
	if move.Distance > 0 {
		for _, axis := range []standalone.Axis{standalone.AxisX, standalone.AxisY, standalone.AxisZ} {
			d := math.Abs(move.End.Get(axis) - move.Start.Get(axis))
			if d == 0 {
				continue
			}
			axisVel := maxVel * d / move.Distance
			if axisConfig, ok := p.config.Axes[axis.String()]; ok {
				if axisVel > axisConfig.MaxVelocity {
					maxVel = axisConfig.MaxVelocity * move.Distance / d
				}
			}
		}
	}

	move.Velocity = maxVel

	// Extrude-only moves are timed on the filament length
	length := move.Distance
	if length == 0 {
		length = math.Abs(move.End.E - move.Start.E)
	}
	if length == 0 || maxVel <= 0 || move.Accel <= 0 {
		move.Duration = 0
		return
	}

	// Calculate acceleration/deceleration times
	// Using simplified trapezoidal profile (no lookahead for now)
	accelDist := (maxVel * maxVel) / (2.0 * move.Accel)

	if accelDist*2.0 >= length {
		// Triangle profile (can't reach full speed)
		accelDist = length / 2.0
		move.CruiseVel = math.Sqrt(2.0 * move.Accel * accelDist)

		move.AccelTime = move.CruiseVel / move.Accel
		move.CruiseTime = 0
		move.DecelTime = move.AccelTime
	} else {
		// Trapezoidal profile
		cruiseDist := length - 2.0*accelDist
		move.CruiseVel = maxVel

		move.AccelTime = maxVel / move.Accel
		move.CruiseTime = cruiseDist / maxVel
		move.DecelTime = move.AccelTime
	}
	move.Duration = move.AccelTime + move.CruiseTime + move.DecelTime
}

// Advance runs the queue forward by dt seconds, completing moves whose
// duration has elapsed. It returns the number of moves completed.
func (p *Planner) Advance(dt float64) int {
	done := 0
	p.elapsed += dt
	for len(p.moveQueue) > 0 {
		head := p.moveQueue[0]
		if p.elapsed < head.Duration {
			break
		}
		p.elapsed -= head.Duration
		p.currentPos = head.End
		p.moveQueue = p.moveQueue[1:]
		p.completed++
		done++
	}
	if len(p.moveQueue) == 0 {
		p.elapsed = 0
	}
	return done
}

// GetCurrentPosition returns the position after the last queued move, the
// coordinate new moves are planned from
func (p *Planner) GetCurrentPosition() standalone.Position {
	return p.queuedPos
}

// GetExecutedPosition returns the position after the last completed move
func (p *Planner) GetExecutedPosition() standalone.Position {
	return p.currentPos
}

// SetPosition sets the current position without moving
func (p *Planner) SetPosition(pos standalone.Position) {
	p.currentPos = pos
	p.queuedPos = pos
}

// ClearQueue clears the move queue and stops all motion
func (p *Planner) ClearQueue() {
	p.moveQueue = p.moveQueue[:0]
	p.elapsed = 0
	p.queuedPos = p.currentPos
}

// MotorsOff drops the queue and de-energizes the steppers
func (p *Planner) MotorsOff() {
	p.ClearQueue()
	p.motorsOn = false
}

// MotorsOn reports whether any stepper is energized
func (p *Planner) MotorsOn() bool {
	return p.motorsOn
}

// IsIdle returns true if no moves are queued or executing
func (p *Planner) IsIdle() bool {
	return len(p.moveQueue) == 0
}

// HasRoom reports whether another move fits in the queue
func (p *Planner) HasRoom() bool {
	return len(p.moveQueue) < QueueDepth
}

// QueueLength returns the number of pending moves
func (p *Planner) QueueLength() int {
	return len(p.moveQueue)
}

// Completed returns the number of moves finished since start
func (p *Planner) Completed() uint32 {
	return p.completed
}

func distance(a, b standalone.Position) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
