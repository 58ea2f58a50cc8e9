package standalone

// Axis identifies a machine axis
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisE
	NumAxes
)

// NoAxis marks "no axis selected"
const NoAxis Axis = 0xFF

var axisNames = [NumAxes]string{"x", "y", "z", "e"}

// String returns the lower-case config name of the axis ("x", "y", ...)
func (a Axis) String() string {
	if a < NumAxes {
		return axisNames[a]
	}
	return "none"
}

// Letter returns the G-code letter of the axis
func (a Axis) Letter() byte {
	if a < NumAxes {
		return axisNames[a][0] - ('a' - 'A')
	}
	return '?'
}

// Position represents a position in machine coordinates
type Position struct {
	X float64
	Y float64
	Z float64
	E float64 // Extruder
}

// Get returns the coordinate for an axis
func (p Position) Get(axis Axis) float64 {
	switch axis {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	case AxisZ:
		return p.Z
	case AxisE:
		return p.E
	}
	return 0
}

// Set updates the coordinate for an axis
func (p *Position) Set(axis Axis, v float64) {
	switch axis {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	case AxisZ:
		p.Z = v
	case AxisE:
		p.E = v
	}
}

// Move represents a planned move with timing information
type Move struct {
	Start    Position
	End      Position
	Velocity float64 // Max velocity (mm/s)
	Accel    float64 // Acceleration (mm/s^2)
	Distance float64 // Total distance (mm)
	Duration float64 // Duration in seconds

	// Trapezoidal profile parameters
	AccelTime  float64 // Time spent accelerating (s)
	CruiseTime float64 // Time spent at cruise velocity (s)
	DecelTime  float64 // Time spent decelerating (s)
	CruiseVel  float64 // Actual cruise velocity reached
}

// AxisConfig represents configuration for a single axis
type AxisConfig struct {
	StepsPerMM     float64 // Steps per millimeter
	MaxVelocity    float64 // Maximum velocity (mm/s)
	MaxAccel       float64 // Maximum acceleration (mm/s^2)
	HomingVel      float64 // Homing velocity (mm/s)
	ManualFeedrate float64 // Feedrate for front panel jogging (mm/s)
	MinPosition    float64 // Minimum position (mm)
	MaxPosition    float64 // Maximum position (mm)
}

// HeaterConfig represents configuration for a heater
type HeaterConfig struct {
	MinTemp   float64 // Minimum safe temperature
	MaxTemp   float64 // Maximum safe temperature
	Overshoot float64 // Headroom kept between the highest target and MaxTemp
	HeatRate  float64 // Simulated heating rate (degC/s at full power)
}

// PreheatProfile is a named bundle of targets recalled from the panel
type PreheatProfile struct {
	Name   string `json:"name"`
	Hotend int    `json:"hotend"` // degC, 0 leaves the hotend untouched
	Bed    int    `json:"bed"`    // degC, 0 leaves the bed untouched
	Fan    int    `json:"fan"`    // 0-255
}

// LCDConfig describes the front panel and which optional menu items it shows
type LCDConfig struct {
	Columns int
	Rows    int

	// Fine Z jog step in mm; 0 disables the item
	FineMove float64

	SoftEndstopsItem     bool // Show the soft endstop toggle in Move Axis
	IndividualAxisHoming bool // Show G28X/G28Y/G28Z in a Homing submenu
	PreheatShortcut      bool // Add a "Preheat" entry to the main menu
	SlimMenus            bool // Drop the preheat settings submenus
	PreventColdExtrusion bool // Confirm before jogging E while cold
	NoMotionBeforeHoming bool // Hide axis jogging until all axes are homed
}

// MachineConfig represents the complete machine configuration
type MachineConfig struct {
	Mode       string                  // "standalone" or "klipper"
	Kinematics string                  // "cartesian", "delta"
	Axes       map[string]AxisConfig   // "x", "y", "z", "e"
	Hotends    []HeaterConfig          // one entry per hotend
	Heaters    map[string]HeaterConfig // "bed" (and anything else keyed by name)
	Fans       int                     // Number of part cooling fans
	Preheat    []PreheatProfile        // Material presets
	LCD        LCDConfig

	// Delta geometry
	DeltaRadius          float64 // Printable radius (mm)
	DeltaClipStartHeight float64 // Above this Z, XY jogging is replaced by "Free XY"

	// Extrusion guard
	MinExtrudeTemp float64

	// Global motion parameters
	DefaultVelocity   float64 // Default feedrate (mm/s)
	DefaultAccel      float64 // Default acceleration (mm/s^2)
	JunctionDeviation float64 // Junction deviation for cornering (mm)
}

// HasHeatedBed reports whether a bed heater is configured
func (c *MachineConfig) HasHeatedBed() bool {
	_, ok := c.Heaters["bed"]
	return ok
}

// LargeArea reports whether any axis spans 1000mm or more, which
// changes the jog distance choices and the position display width
func (c *MachineConfig) LargeArea() bool {
	for _, name := range []string{"x", "y", "z"} {
		a, ok := c.Axes[name]
		if !ok {
			continue
		}
		if a.MaxPosition-a.MinPosition >= 1000 || a.MaxPosition >= 1000 {
			return true
		}
	}
	return false
}

// MachineState represents the current machine state
type MachineState struct {
	Position       Position // Current position
	Homed          [4]bool  // Homing status [X, Y, Z, E]
	AbsoluteMode   bool     // Absolute (G90) vs relative (G91) positioning
	FeedRate       float64  // Current feedrate (mm/s)
	ExtrudeMode    bool     // Relative (M83) vs absolute (M82) extrusion
	InchUnits      bool     // G20 active
	ActiveExtruder int      // Selected tool
	SoftEndstops   bool     // M211 state
}

// GCodeCommand represents a parsed G-code command
type GCodeCommand struct {
	Type       byte             // 'G', 'M', 'T'
	Number     int              // Command number (e.g., 0 for G0, 28 for G28)
	Parameters map[byte]float64 // Parameters (X, Y, Z, E, F, S, etc.)
	Comment    string           // Comment text
}

// HasParameter checks if a parameter exists in the command
func (cmd *GCodeCommand) HasParameter(param byte) bool {
	_, ok := cmd.Parameters[param]
	return ok
}

// GetParameter gets a parameter value, or returns the default if not present
func (cmd *GCodeCommand) GetParameter(param byte, defaultValue float64) float64 {
	if val, ok := cmd.Parameters[param]; ok {
		return val
	}
	return defaultValue
}
