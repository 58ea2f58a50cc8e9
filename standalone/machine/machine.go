// Package machine runs a complete printer in-process: G-code in, simulated
// motion and heaters out. The front panel drives it through the same calls
// it would make on real firmware.
package machine

import (
	"errors"
	"fmt"
	"strings"

	"gopper-panel/debug"
	"gopper-panel/standalone"
	"gopper-panel/standalone/config"
	"gopper-panel/standalone/gcode"
	"gopper-panel/standalone/kinematics"
	"gopper-panel/standalone/planner"
	"gopper-panel/standalone/thermal"
)

// ErrNotRunning is returned when input arrives before Start
var ErrNotRunning = errors.New("machine not running")

// Machine coordinates all standalone mode components
type Machine struct {
	*thermal.Manager

	config      *standalone.MachineConfig
	parser      *gcode.Parser
	interpreter *gcode.Interpreter
	planner     *planner.Planner
	kinematics  kinematics.Kinematics

	// Serial interface
	inputBuffer  []byte
	outputBuffer []byte

	// Status
	running bool
}

// New creates a machine from JSON configuration
func New(configData []byte) (*Machine, error) {
	cfg, err := config.LoadConfig(configData)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a machine with an existing config
func NewWithConfig(cfg *standalone.MachineConfig) (*Machine, error) {
	kin, err := kinematics.New(cfg)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		Manager:      thermal.NewManager(cfg),
		config:       cfg,
		parser:       gcode.NewParser(),
		kinematics:   kin,
		inputBuffer:  make([]byte, 0, 256),
		outputBuffer: make([]byte, 0, 256),
	}
	m.planner = planner.NewPlanner(cfg, kin)
	m.interpreter = gcode.NewInterpreter(cfg, m.planner, m.Manager)
	m.interpreter.Reply = func(s string) { m.SendResponse(s + "\n") }

	return m, nil
}

// Config returns the machine configuration
func (m *Machine) Config() *standalone.MachineConfig {
	return m.config
}

// SetStoreHandler installs the M500 handler
func (m *Machine) SetStoreHandler(fn func() error) {
	m.interpreter.OnStore = fn
}

// ProcessLine processes a line of G-code
func (m *Machine) ProcessLine(line string) error {
	if !m.running {
		return ErrNotRunning
	}

	cmd, err := m.parser.ParseLine(line)
	if err != nil {
		return err
	}
	if cmd == nil {
		return nil
	}
	return m.interpreter.Execute(cmd)
}

// ProcessByte processes a single byte of input (for serial streaming)
func (m *Machine) ProcessByte(b byte) error {
	if b != '\n' && b != '\r' {
		m.inputBuffer = append(m.inputBuffer, b)
		return nil
	}

	line := strings.TrimSpace(string(m.inputBuffer))
	m.inputBuffer = m.inputBuffer[:0]
	if line == "" {
		return nil
	}

	if err := m.ProcessLine(line); err != nil {
		m.SendResponse("Error:" + err.Error() + "\n")
		return err
	}
	m.SendResponse("ok\n")
	return nil
}

// InjectCommands runs newline separated G-code from the panel. Failures are
// logged and do not stop the remaining lines.
func (m *Machine) InjectCommands(gcodeLines string) {
	for _, line := range gcode.SplitLines(gcodeLines) {
		if err := m.ProcessLine(line); err != nil {
			debug.Println(fmt.Sprintf("[MACHINE] %s: %v", line, err))
		}
	}
}

// SendResponse queues a response to be sent to the host
func (m *Machine) SendResponse(response string) {
	m.outputBuffer = append(m.outputBuffer, response...)
}

// GetOutput returns any pending output and clears the buffer
func (m *Machine) GetOutput() []byte {
	if len(m.outputBuffer) == 0 {
		return nil
	}

	output := make([]byte, len(m.outputBuffer))
	copy(output, m.outputBuffer)
	m.outputBuffer = m.outputBuffer[:0]
	return output
}

// Advance runs the motion queue and heaters forward by dt seconds
func (m *Machine) Advance(dt float64) {
	m.planner.Advance(dt)
	m.Manager.Advance(dt)
}

// Start begins standalone operation
func (m *Machine) Start() {
	m.running = true
	m.SendResponse("Gopper Standalone Mode Ready\n")
}

// Stop halts all motion
func (m *Machine) Stop() {
	m.running = false
	m.planner.ClearQueue()
}

// IsRunning returns whether the machine is running
func (m *Machine) IsRunning() bool {
	return m.running
}

// GetState returns the current machine state
func (m *Machine) GetState() *standalone.MachineState {
	return m.interpreter.GetState()
}

// EmergencyStop halts motion and shuts off heaters and fans
func (m *Machine) EmergencyStop() {
	m.Stop()
	m.DisableAllHeaters()
	m.ZeroFanSpeeds()
	debug.Println("[MACHINE] emergency stop")
}

// CurrentPosition returns the position new moves start from
func (m *Machine) CurrentPosition() standalone.Position {
	return m.planner.GetCurrentPosition()
}

// ManualLimits returns the jog range for axis from pos
func (m *Machine) ManualLimits(axis standalone.Axis, pos standalone.Position) (float64, float64) {
	lim := m.kinematics.ManualLimits(axis, pos, m.interpreter.GetState().SoftEndstops)
	return lim.Min, lim.Max
}

// QueueManualMove plans a jog of one axis to target at feedrate mm/s
func (m *Machine) QueueManualMove(target standalone.Position, axis standalone.Axis, feedrate float64) error {
	if !m.running {
		return ErrNotRunning
	}
	move := &standalone.Move{
		End:      target,
		Velocity: feedrate,
		Accel:    m.config.DefaultAccel,
	}
	if err := m.planner.QueueMove(move); err != nil {
		return fmt.Errorf("manual move %s: %w", axis, err)
	}
	return nil
}

// MoveDone reports whether all queued moves have finished
func (m *Machine) MoveDone() bool {
	return m.planner.IsIdle()
}

// AllAxesHomed reports whether X, Y and Z are homed
func (m *Machine) AllAxesHomed() bool {
	return m.interpreter.AllAxesHomed()
}

// IsKinematic reports whether the machine needs a coordinate transform
func (m *Machine) IsKinematic() bool {
	return m.kinematics.IsKinematic()
}

// SoftEndstops reports whether soft endstops are enabled
func (m *Machine) SoftEndstops() bool {
	return m.interpreter.GetState().SoftEndstops
}

// SetSoftEndstops enables or disables soft endstops
func (m *Machine) SetSoftEndstops(on bool) {
	m.interpreter.GetState().SoftEndstops = on
}

// ActiveExtruder returns the selected tool
func (m *Machine) ActiveExtruder() int {
	return m.interpreter.GetState().ActiveExtruder
}

// UsingInchUnits reports whether G20 is active
func (m *Machine) UsingInchUnits() bool {
	return m.interpreter.GetState().InchUnits
}
