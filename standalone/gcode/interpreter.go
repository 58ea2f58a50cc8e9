package gcode

import (
	"fmt"
	"math"

	"gopper-panel/standalone"
)

// MMPerInch converts G20 coordinates to machine millimeters
const MMPerInch = 25.4

// Interpreter executes G-code commands
type Interpreter struct {
	state   *standalone.MachineState
	config  *standalone.MachineConfig
	planner Planner // Interface to motion planner
	heaters Heaters // Interface to the thermal manager

	// Reply receives "ok"-style responses (M105, M114)
	Reply func(string)
	// OnStore is called by M500
	OnStore func() error
}

// Planner interface for motion planning
type Planner interface {
	QueueMove(move *standalone.Move) error
	GetCurrentPosition() standalone.Position
	SetPosition(pos standalone.Position)
	ClearQueue()
	MotorsOff()
}

// Heaters interface for temperature and fan control
type Heaters interface {
	SetTargetHotend(temp float64, e int)
	SetTargetBed(temp float64)
	SetFanSpeed(fan int, speed int)
	DegHotend(e int) float64
	DegTargetHotend(e int) float64
	DegBed() float64
	DegTargetBed() float64
	Hotends() int
	Fans() int
}

// NewInterpreter creates a new G-code interpreter
func NewInterpreter(config *standalone.MachineConfig, planner Planner, heaters Heaters) *Interpreter {
	return &Interpreter{
		state: &standalone.MachineState{
			Position:     standalone.Position{},
			Homed:        [4]bool{false, false, false, false},
			AbsoluteMode: true,
			FeedRate:     config.DefaultVelocity,
			ExtrudeMode:  false,
			SoftEndstops: true,
		},
		config:  config,
		planner: planner,
		heaters: heaters,
	}
}

// Execute executes a parsed G-code command
func (interp *Interpreter) Execute(cmd *standalone.GCodeCommand) error {
	if cmd == nil {
		return nil
	}

	switch cmd.Type {
	case 'G':
		return interp.executeG(cmd)
	case 'M':
		return interp.executeM(cmd)
	case 'T':
		return interp.executeT(cmd)
	}

	return nil
}

// executeG handles G-codes
func (interp *Interpreter) executeG(cmd *standalone.GCodeCommand) error {
	switch cmd.Number {
	case 0, 1: // G0/G1 - Linear move
		return interp.doMove(cmd)
	case 20: // G20 - Inch units
		interp.state.InchUnits = true
	case 21: // G21 - Millimeter units
		interp.state.InchUnits = false
	case 28: // G28 - Home
		return interp.doHome(cmd)
	case 90: // G90 - Absolute positioning
		interp.state.AbsoluteMode = true
	case 91: // G91 - Relative positioning
		interp.state.AbsoluteMode = false
	case 92: // G92 - Set position
		return interp.doSetPosition(cmd)
	default:
		return fmt.Errorf("unsupported command G%d", cmd.Number)
	}

	return nil
}

// executeM handles M-codes
func (interp *Interpreter) executeM(cmd *standalone.GCodeCommand) error {
	switch cmd.Number {
	case 82: // M82 - Absolute extrusion
		interp.state.ExtrudeMode = false
	case 83: // M83 - Relative extrusion
		interp.state.ExtrudeMode = true
	case 18, 84: // M18/M84 - Disable steppers
		interp.planner.MotorsOff()
		interp.state.Homed = [4]bool{}
	case 104, 109: // M104/M109 - Set extruder temperature (no wait in standalone)
		if cmd.HasParameter('S') {
			e := int(cmd.GetParameter('T', float64(interp.state.ActiveExtruder)))
			interp.heaters.SetTargetHotend(cmd.GetParameter('S', 0), e)
		}
	case 140, 190: // M140/M190 - Set bed temperature
		if cmd.HasParameter('S') {
			interp.heaters.SetTargetBed(cmd.GetParameter('S', 0))
		}
	case 106: // M106 - Fan on
		fan := int(cmd.GetParameter('P', 0))
		interp.heaters.SetFanSpeed(fan, int(cmd.GetParameter('S', 255)))
	case 107: // M107 - Fan off
		fan := int(cmd.GetParameter('P', 0))
		interp.heaters.SetFanSpeed(fan, 0)
	case 105: // M105 - Get temperature
		interp.reply(interp.temperatureReport())
	case 114: // M114 - Get current position
		pos := interp.planner.GetCurrentPosition()
		interp.reply(fmt.Sprintf("X:%.2f Y:%.2f Z:%.2f E:%.2f", pos.X, pos.Y, pos.Z, pos.E))
	case 211: // M211 - Soft endstops
		if cmd.HasParameter('S') {
			interp.state.SoftEndstops = cmd.GetParameter('S', 1) != 0
		}
		state := "Off"
		if interp.state.SoftEndstops {
			state = "On"
		}
		interp.reply("Soft endstops: " + state)
	case 500: // M500 - Store settings
		if interp.OnStore != nil {
			return interp.OnStore()
		}
	default:
		return fmt.Errorf("unsupported command M%d", cmd.Number)
	}

	return nil
}

// executeT handles tool changes
func (interp *Interpreter) executeT(cmd *standalone.GCodeCommand) error {
	if cmd.Number < 0 || cmd.Number >= interp.heaters.Hotends() {
		return fmt.Errorf("invalid tool T%d", cmd.Number)
	}
	interp.state.ActiveExtruder = cmd.Number
	return nil
}

// toMM converts a coordinate word to millimeters under the active unit mode
func (interp *Interpreter) toMM(v float64) float64 {
	if interp.state.InchUnits {
		return v * MMPerInch
	}
	return v
}

// doMove executes a linear move (G0/G1)
func (interp *Interpreter) doMove(cmd *standalone.GCodeCommand) error {
	// Get current position
	current := interp.planner.GetCurrentPosition()
	target := current

	// Update feedrate if specified
	if cmd.HasParameter('F') {
		interp.state.FeedRate = interp.toMM(cmd.GetParameter('F', 0)) / 60.0 // Convert mm/min to mm/s
	}

	// Calculate target position
	for _, axis := range []standalone.Axis{standalone.AxisX, standalone.AxisY, standalone.AxisZ} {
		if !cmd.HasParameter(axis.Letter()) {
			continue
		}
		v := interp.toMM(cmd.GetParameter(axis.Letter(), 0))
		if interp.state.AbsoluteMode {
			target.Set(axis, v)
		} else {
			target.Set(axis, current.Get(axis)+v)
		}
	}

	// Handle extruder
	if cmd.HasParameter('E') {
		e := interp.toMM(cmd.GetParameter('E', 0))
		if interp.state.ExtrudeMode || !interp.state.AbsoluteMode {
			// Relative extrusion
			target.E = current.E + e
		} else {
			// Absolute extrusion
			target.E = e
		}
	}

	// Calculate distance
	dx := target.X - current.X
	dy := target.Y - current.Y
	dz := target.Z - current.Z
	de := target.E - current.E
	distance := math.Sqrt(dx*dx + dy*dy + dz*dz)

	// Skip if no movement
	if distance < 0.001 && math.Abs(de) < 0.001 {
		return nil
	}

	// Create move
	move := &standalone.Move{
		Start:    current,
		End:      target,
		Velocity: interp.state.FeedRate,
		Accel:    interp.config.DefaultAccel,
		Distance: distance,
	}

	// Queue move
	return interp.planner.QueueMove(move)
}

// doHome executes homing (G28). Homing itself runs on the MCU; here the
// homed axes are marked and moved to their minimum position.
func (interp *Interpreter) doHome(cmd *standalone.GCodeCommand) error {
	interp.planner.ClearQueue()
	pos := interp.planner.GetCurrentPosition()

	all := !cmd.HasParameter('X') && !cmd.HasParameter('Y') && !cmd.HasParameter('Z')
	for _, axis := range []standalone.Axis{standalone.AxisX, standalone.AxisY, standalone.AxisZ} {
		if !all && !cmd.HasParameter(axis.Letter()) {
			continue
		}
		// "O" skips axes that are already homed
		if cmd.HasParameter('O') && interp.state.Homed[axis] {
			continue
		}
		pos.Set(axis, interp.homePosition(axis))
		interp.state.Homed[axis] = true
	}

	interp.planner.SetPosition(pos)
	return nil
}

// homePosition returns where an axis sits after homing. Deltas home to the
// top of the tower at the center.
func (interp *Interpreter) homePosition(axis standalone.Axis) float64 {
	a := interp.config.Axes[axis.String()]
	if interp.config.Kinematics == "delta" {
		if axis == standalone.AxisZ {
			return a.MaxPosition
		}
		return 0
	}
	return a.MinPosition
}

// doSetPosition sets the current position (G92)
func (interp *Interpreter) doSetPosition(cmd *standalone.GCodeCommand) error {
	current := interp.planner.GetCurrentPosition()

	for _, axis := range []standalone.Axis{standalone.AxisX, standalone.AxisY, standalone.AxisZ, standalone.AxisE} {
		if cmd.HasParameter(axis.Letter()) {
			current.Set(axis, interp.toMM(cmd.GetParameter(axis.Letter(), 0)))
		}
	}

	interp.planner.SetPosition(current)
	return nil
}

func (interp *Interpreter) temperatureReport() string {
	report := ""
	for e := 0; e < interp.heaters.Hotends(); e++ {
		label := "T"
		if interp.heaters.Hotends() > 1 {
			label = fmt.Sprintf("T%d", e)
		}
		if report != "" {
			report += " "
		}
		report += fmt.Sprintf("%s:%.1f /%.1f", label, interp.heaters.DegHotend(e), interp.heaters.DegTargetHotend(e))
	}
	if interp.config.HasHeatedBed() {
		report += fmt.Sprintf(" B:%.1f /%.1f", interp.heaters.DegBed(), interp.heaters.DegTargetBed())
	}
	return report
}

func (interp *Interpreter) reply(msg string) {
	if interp.Reply != nil {
		interp.Reply(msg)
	}
}

// GetState returns the current machine state
func (interp *Interpreter) GetState() *standalone.MachineState {
	interp.state.Position = interp.planner.GetCurrentPosition()
	return interp.state
}

// AllAxesHomed reports whether X, Y and Z are homed
func (interp *Interpreter) AllAxesHomed() bool {
	return interp.state.Homed[standalone.AxisX] && interp.state.Homed[standalone.AxisY] && interp.state.Homed[standalone.AxisZ]
}
