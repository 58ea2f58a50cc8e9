package config

import (
	"encoding/json"
	"errors"
	"fmt"

	"gopper-panel/standalone"
)

var (
	ErrNoHotend          = errors.New("at least one hotend must be configured")
	ErrUnknownKinematics = errors.New("unsupported kinematics")
)

// LoadConfig parses a JSON configuration string and returns a MachineConfig
func LoadConfig(jsonData []byte) (*standalone.MachineConfig, error) {
	var config standalone.MachineConfig

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse machine config: %w", err)
	}

	// Apply defaults
	applyDefaults(&config)

	if err := Validate(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks the parts of the config the panel depends on
func Validate(config *standalone.MachineConfig) error {
	switch config.Kinematics {
	case "cartesian":
	case "delta":
		if config.DeltaRadius <= 0 {
			return errors.New("delta kinematics requires DeltaRadius")
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKinematics, config.Kinematics)
	}

	if len(config.Hotends) == 0 {
		return ErrNoHotend
	}

	for _, name := range []string{"x", "y", "z"} {
		if _, ok := config.Axes[name]; !ok {
			return fmt.Errorf("%s axis not configured", name)
		}
	}

	for i, p := range config.Preheat {
		if p.Fan < 0 || p.Fan > 255 {
			return fmt.Errorf("preheat %d (%s): fan speed %d out of range", i, p.Name, p.Fan)
		}
		if p.Hotend < 0 || p.Bed < 0 {
			return fmt.Errorf("preheat %d (%s): negative temperature", i, p.Name)
		}
	}

	return nil
}

// applyDefaults fills in missing configuration values with sensible defaults
func applyDefaults(config *standalone.MachineConfig) {
	// Default mode
	if config.Mode == "" {
		config.Mode = "standalone"
	}

	// Default kinematics
	if config.Kinematics == "" {
		config.Kinematics = "cartesian"
	}

	// Default motion parameters
	if config.DefaultVelocity == 0 {
		config.DefaultVelocity = 50.0 // 50 mm/s
	}
	if config.DefaultAccel == 0 {
		config.DefaultAccel = 500.0 // 500 mm/s^2
	}
	if config.JunctionDeviation == 0 {
		config.JunctionDeviation = 0.05 // 0.05mm
	}
	if config.MinExtrudeTemp == 0 {
		config.MinExtrudeTemp = 170.0
	}
	if config.Fans == 0 {
		config.Fans = 1
	}

	// Apply defaults to each axis
	for name, axis := range config.Axes {
		if axis.MaxVelocity == 0 {
			axis.MaxVelocity = 300.0
		}
		if axis.MaxAccel == 0 {
			axis.MaxAccel = 1000.0
		}
		if axis.HomingVel == 0 {
			axis.HomingVel = 5.0
		}
		if axis.StepsPerMM == 0 {
			axis.StepsPerMM = 80.0 // Common value
		}
		if axis.ManualFeedrate == 0 {
			axis.ManualFeedrate = defaultManualFeedrate(name)
		}
		config.Axes[name] = axis
	}

	// Apply defaults to heaters
	for i := range config.Hotends {
		applyHeaterDefaults(&config.Hotends[i], 300.0, 15.0)
	}
	for name, heater := range config.Heaters {
		applyHeaterDefaults(&heater, 150.0, 10.0)
		config.Heaters[name] = heater
	}

	// Front panel
	if config.LCD.Columns == 0 {
		config.LCD.Columns = 20
	}
	if config.LCD.Rows == 0 {
		config.LCD.Rows = 4
	}

	for i := range config.Preheat {
		if config.Preheat[i].Name == "" {
			config.Preheat[i].Name = fmt.Sprintf("Preset %d", i+1)
		}
	}
}

func applyHeaterDefaults(heater *standalone.HeaterConfig, maxTemp, overshoot float64) {
	if heater.MaxTemp == 0 {
		heater.MaxTemp = maxTemp
	}
	if heater.Overshoot == 0 {
		heater.Overshoot = overshoot
	}
	if heater.HeatRate == 0 {
		heater.HeatRate = 2.0
	}
}

// defaultManualFeedrate mirrors the usual front panel jog speeds:
// 50mm/s for XY, 4mm/s for Z, 2mm/s for E
func defaultManualFeedrate(axis string) float64 {
	switch axis {
	case "z":
		return 4.0
	case "e":
		return 2.0
	default:
		return 50.0
	}
}

// DefaultPreheat returns the stock PLA/ABS material presets
func DefaultPreheat() []standalone.PreheatProfile {
	return []standalone.PreheatProfile{
		{Name: "PLA", Hotend: 200, Bed: 60, Fan: 255},
		{Name: "ABS", Hotend: 240, Bed: 110, Fan: 0},
	}
}

// DefaultCartesianConfig returns a default configuration for a Cartesian printer
func DefaultCartesianConfig() *standalone.MachineConfig {
	cfg := &standalone.MachineConfig{
		Mode:       "standalone",
		Kinematics: "cartesian",
		Axes: map[string]standalone.AxisConfig{
			"x": {
				StepsPerMM:  80.0,
				MaxVelocity: 300.0,
				MaxAccel:    3000.0,
				HomingVel:   50.0,
				MinPosition: 0.0,
				MaxPosition: 220.0,
			},
			"y": {
				StepsPerMM:  80.0,
				MaxVelocity: 300.0,
				MaxAccel:    3000.0,
				HomingVel:   50.0,
				MinPosition: 0.0,
				MaxPosition: 220.0,
			},
			"z": {
				StepsPerMM:  400.0,
				MaxVelocity: 10.0,
				MaxAccel:    100.0,
				HomingVel:   5.0,
				MinPosition: 0.0,
				MaxPosition: 250.0,
			},
			"e": {
				StepsPerMM:  96.0,
				MaxVelocity: 50.0,
				MaxAccel:    5000.0,
				MinPosition: -10000.0,
				MaxPosition: 10000.0,
			},
		},
		Hotends: []standalone.HeaterConfig{
			{MinTemp: 0.0, MaxTemp: 275.0},
		},
		Heaters: map[string]standalone.HeaterConfig{
			"bed": {MinTemp: 0.0, MaxTemp: 125.0},
		},
		Fans:    1,
		Preheat: DefaultPreheat(),
		LCD: standalone.LCDConfig{
			Columns:              20,
			Rows:                 4,
			FineMove:             0.025,
			SoftEndstopsItem:     true,
			IndividualAxisHoming: true,
			PreheatShortcut:      true,
			PreventColdExtrusion: true,
		},
		DefaultVelocity:   50.0,
		DefaultAccel:      500.0,
		JunctionDeviation: 0.05,
	}
	applyDefaults(cfg)
	return cfg
}

// DefaultDeltaConfig returns a default configuration for a linear delta printer
func DefaultDeltaConfig() *standalone.MachineConfig {
	cfg := DefaultCartesianConfig()
	cfg.Kinematics = "delta"
	cfg.DeltaRadius = 100.0
	cfg.DeltaClipStartHeight = 250.0
	for _, name := range []string{"x", "y"} {
		a := cfg.Axes[name]
		a.MinPosition = -100.0
		a.MaxPosition = 100.0
		cfg.Axes[name] = a
	}
	z := cfg.Axes["z"]
	z.MaxPosition = 300.0
	z.MaxVelocity = 300.0
	cfg.Axes["z"] = z
	cfg.LCD.NoMotionBeforeHoming = true
	return cfg
}
