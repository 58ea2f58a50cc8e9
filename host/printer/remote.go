// Package printer drives a G-code printer over a serial link. The panel
// talks to Remote exactly as it talks to the in-process machine; every
// change is sent as G-code and mirrored locally so the menus can read it
// back without a round trip.
package printer

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopper-panel/debug"
	"gopper-panel/host/serial"
	"gopper-panel/standalone"
	"gopper-panel/standalone/gcode"
	"gopper-panel/standalone/kinematics"
	"gopper-panel/standalone/thermal"
)

// ErrNotConnected is returned when writing before Connect
var ErrNotConnected = errors.New("not connected to printer")

// Remote mirrors a printer reached over a serial port
type Remote struct {
	// Targets and fan speeds as last commanded
	*thermal.Manager

	config *standalone.MachineConfig
	port   io.ReadWriter
	closer io.Closer
	lines  <-chan string

	parser      *gcode.Parser
	interpreter *gcode.Interpreter
	mirror      *mirrorPlanner
	kinematics  kinematics.Kinematics

	// Readings from the last temperature report
	hotendTemps []float64
	bedTemp     float64

	// Lines written but not yet acknowledged with "ok"
	outstanding int
}

// New creates a Remote for a printer described by cfg. Call Connect or
// Attach before sending.
func New(cfg *standalone.MachineConfig) (*Remote, error) {
	kin, err := kinematics.New(cfg)
	if err != nil {
		return nil, err
	}
	r := &Remote{
		Manager:     thermal.NewManager(cfg),
		config:      cfg,
		parser:      gcode.NewParser(),
		mirror:      &mirrorPlanner{},
		kinematics:  kin,
		hotendTemps: make([]float64, len(cfg.Hotends)),
	}
	for i := range r.hotendTemps {
		r.hotendTemps[i] = thermal.Ambient
	}
	r.bedTemp = thermal.Ambient
	r.interpreter = gcode.NewInterpreter(cfg, r.mirror, r.Manager)
	return r, nil
}

// Connect opens the serial port and starts reading replies
func (r *Remote) Connect(cfg *serial.Config) error {
	port, err := serial.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open serial port: %w", err)
	}

	// Most boards reset when the port opens
	time.Sleep(2 * time.Second)
	if err := port.Flush(); err != nil {
		debug.Println("[REMOTE] flush: " + err.Error())
	}

	r.Attach(port)
	r.closer = port
	return nil
}

// Attach uses an already open link
func (r *Remote) Attach(port io.ReadWriter) {
	r.port = port
	r.lines = serial.Lines(port)
}

// Close closes the serial port
func (r *Remote) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// Config returns the machine config the mirror was built from
func (r *Remote) Config() *standalone.MachineConfig { return r.config }

// Poll consumes every reply received so far without blocking
func (r *Remote) Poll() {
	for {
		select {
		case line, ok := <-r.lines:
			if !ok {
				r.lines = nil
				return
			}
			r.handleLine(line)
		default:
			return
		}
	}
}

// RequestStatus asks for a temperature report when the link is idle
func (r *Remote) RequestStatus() {
	if r.outstanding == 0 {
		r.send("M105")
	}
}

func (r *Remote) handleLine(line string) {
	if strings.HasPrefix(line, "ok") {
		if r.outstanding > 0 {
			r.outstanding--
		}
		line = strings.TrimSpace(line[2:])
	}
	switch {
	case strings.HasPrefix(line, "T"), strings.HasPrefix(line, "B:"):
		r.parseTemperatures(line)
	case strings.HasPrefix(line, "X:"):
		if r.outstanding == 0 {
			r.parsePosition(line)
		}
	case strings.HasPrefix(line, "Error"), strings.HasPrefix(line, "!!"):
		debug.Println("[REMOTE] " + line)
	}
}

// parseTemperatures reads "T:21.0 /0.0 B:20.5 /0.0" and "T0:... T1:..." reports
func (r *Remote) parseTemperatures(line string) {
	for _, field := range strings.Fields(line) {
		key, val, ok := strings.Cut(field, ":")
		if !ok || val == "" {
			continue
		}
		temp, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		switch {
		case key == "B":
			r.bedTemp = temp
		case key == "T":
			if len(r.hotendTemps) > 0 {
				r.hotendTemps[r.interpreter.GetState().ActiveExtruder] = temp
			}
		case strings.HasPrefix(key, "T"):
			e, err := strconv.Atoi(key[1:])
			if err == nil && e >= 0 && e < len(r.hotendTemps) {
				r.hotendTemps[e] = temp
			}
		}
	}
}

// parsePosition reads an M114 "X:10.00 Y:0.00 Z:5.00 E:0.00" report
func (r *Remote) parsePosition(line string) {
	pos := r.mirror.pos
	for _, field := range strings.Fields(line) {
		if field == "Count" {
			// Stepper counts follow
			break
		}
		key, val, ok := strings.Cut(field, ":")
		if !ok || len(key) != 1 {
			continue
		}
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			continue
		}
		switch key {
		case "X":
			pos.X = v
		case "Y":
			pos.Y = v
		case "Z":
			pos.Z = v
		case "E":
			pos.E = v
		}
	}
	r.mirror.pos = pos
}

func (r *Remote) send(line string) error {
	if r.port == nil {
		return ErrNotConnected
	}
	if _, err := io.WriteString(r.port, line+"\n"); err != nil {
		return fmt.Errorf("write %q: %w", line, err)
	}
	r.outstanding++
	return nil
}

// exec applies a line to the mirror and sends it to the printer
func (r *Remote) exec(line string) error {
	cmd, err := r.parser.ParseLine(line)
	if err != nil {
		return err
	}
	if cmd != nil {
		// The printer may know commands the mirror does not
		if err := r.interpreter.Execute(cmd); err != nil {
			debug.Println("[REMOTE] mirror: " + err.Error())
		}
	}
	return r.send(line)
}

// InjectCommands sends newline separated G-code from command items
func (r *Remote) InjectCommands(gcodeLines string) {
	for _, line := range gcode.SplitLines(gcodeLines) {
		if err := r.exec(line); err != nil {
			debug.Println("[REMOTE] " + err.Error())
		}
	}
}

// Outstanding returns the number of unacknowledged lines
func (r *Remote) Outstanding() int { return r.outstanding }

// SetTargetHotend sends M104 with the target clamped to the hotend's maximum
func (r *Remote) SetTargetHotend(temp float64, e int) {
	if e < 0 || e >= r.Hotends() {
		return
	}
	if max := r.HotendMaxTarget(e); temp > max {
		temp = max
	}
	r.InjectCommands(fmt.Sprintf("M104 T%d S%d", e, int(temp)))
}

// SetTargetBed sends M140 with the target clamped to the bed's maximum
func (r *Remote) SetTargetBed(temp float64) {
	if !r.HasHeatedBed() {
		return
	}
	if max := r.BedMaxTarget(); temp > max {
		temp = max
	}
	r.InjectCommands(fmt.Sprintf("M140 S%d", int(temp)))
}

// SetFanSpeed sends M106, or M107 for zero
func (r *Remote) SetFanSpeed(fan int, speed int) {
	if fan < 0 || fan >= r.Fans() {
		return
	}
	if speed <= 0 {
		r.InjectCommands(fmt.Sprintf("M107 P%d", fan))
		return
	}
	if speed > 255 {
		speed = 255
	}
	r.InjectCommands(fmt.Sprintf("M106 P%d S%d", fan, speed))
}

// DisableAllHeaters sends a zero target to every heater
func (r *Remote) DisableAllHeaters() {
	for e := 0; e < r.Hotends(); e++ {
		r.InjectCommands(fmt.Sprintf("M104 T%d S0", e))
	}
	if r.HasHeatedBed() {
		r.InjectCommands("M140 S0")
	}
}

// ZeroFanSpeeds stops every fan
func (r *Remote) ZeroFanSpeeds() {
	for fan := 0; fan < r.Fans(); fan++ {
		r.InjectCommands(fmt.Sprintf("M107 P%d", fan))
	}
}

// DegHotend returns the last reported temperature of hotend e
func (r *Remote) DegHotend(e int) float64 {
	if e < 0 || e >= len(r.hotendTemps) {
		return 0
	}
	return r.hotendTemps[e]
}

// DegBed returns the last reported bed temperature
func (r *Remote) DegBed() float64 {
	if !r.HasHeatedBed() {
		return 0
	}
	return r.bedTemp
}

// TooColdToExtrude compares the reported temperature to the extrusion minimum
func (r *Remote) TooColdToExtrude(e int) bool {
	if r.config.MinExtrudeTemp <= 0 {
		return false
	}
	return r.DegHotend(e) < r.config.MinExtrudeTemp
}

// CurrentPosition returns the mirrored position
func (r *Remote) CurrentPosition() standalone.Position {
	return r.mirror.pos
}

// ManualLimits returns the jog range for axis from pos
func (r *Remote) ManualLimits(axis standalone.Axis, pos standalone.Position) (float64, float64) {
	lim := r.kinematics.ManualLimits(axis, pos, r.SoftEndstops())
	return lim.Min, lim.Max
}

// QueueManualMove sends an absolute G1 for one axis
func (r *Remote) QueueManualMove(target standalone.Position, axis standalone.Axis, feedrate float64) error {
	scale := 1.0
	if r.UsingInchUnits() {
		scale = 1 / gcode.MMPerInch
	}
	if !r.interpreter.GetState().AbsoluteMode {
		if err := r.exec("G90"); err != nil {
			return err
		}
	}
	v := target.Get(axis)
	if axis == standalone.AxisE && r.interpreter.GetState().ExtrudeMode {
		v -= r.mirror.pos.E
	}
	line := fmt.Sprintf("G1 %c%.3f F%d", axis.Letter(), v*scale, int(math.Round(feedrate*60*scale)))
	if err := r.exec(line); err != nil {
		return fmt.Errorf("manual move %s: %w", axis, err)
	}
	return nil
}

// MoveDone reports whether the printer has acknowledged every line
func (r *Remote) MoveDone() bool {
	return r.outstanding == 0
}

// AllAxesHomed reports whether G28 was sent for X, Y and Z since the last M84
func (r *Remote) AllAxesHomed() bool {
	return r.interpreter.AllAxesHomed()
}

// IsKinematic reports whether the printer needs a coordinate transform
func (r *Remote) IsKinematic() bool {
	return r.kinematics.IsKinematic()
}

// SoftEndstops reports the mirrored M211 state
func (r *Remote) SoftEndstops() bool {
	return r.interpreter.GetState().SoftEndstops
}

// SetSoftEndstops sends M211
func (r *Remote) SetSoftEndstops(on bool) {
	s := 0
	if on {
		s = 1
	}
	r.InjectCommands(fmt.Sprintf("M211 S%d", s))
}

// ActiveExtruder returns the last selected tool
func (r *Remote) ActiveExtruder() int {
	return r.interpreter.GetState().ActiveExtruder
}

// UsingInchUnits reports whether G20 was the last unit command sent
func (r *Remote) UsingInchUnits() bool {
	return r.interpreter.GetState().InchUnits
}

// mirrorPlanner completes every move at once; the real queue lives on the printer
type mirrorPlanner struct {
	pos standalone.Position
}

func (p *mirrorPlanner) QueueMove(move *standalone.Move) error {
	p.pos = move.End
	return nil
}

func (p *mirrorPlanner) GetCurrentPosition() standalone.Position { return p.pos }
func (p *mirrorPlanner) SetPosition(pos standalone.Position)     { p.pos = pos }
func (p *mirrorPlanner) ClearQueue()                             {}
func (p *mirrorPlanner) MotorsOff()                              {}
