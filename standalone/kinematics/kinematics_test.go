package kinematics

import (
	"errors"
	"math"
	"testing"

	"gopper-panel/standalone"
	"gopper-panel/standalone/config"
)

func TestCartesianManualLimits(t *testing.T) {
	kin, err := NewCartesian(config.DefaultCartesianConfig())
	if err != nil {
		t.Fatalf("NewCartesian failed: %v", err)
	}

	tests := []struct {
		axis    standalone.Axis
		enabled bool
		want    AxisLimits
	}{
		{standalone.AxisX, true, AxisLimits{0, 220}},
		{standalone.AxisZ, true, AxisLimits{0, 250}},
		{standalone.AxisX, false, AxisLimits{-NoLimit, NoLimit}},
		{standalone.AxisE, true, AxisLimits{-NoLimit, NoLimit}},
	}

	for _, test := range tests {
		got := kin.ManualLimits(test.axis, standalone.Position{X: 50, Y: 80}, test.enabled)
		if got != test.want {
			t.Errorf("%s soft=%v: expected %+v, got %+v", test.axis, test.enabled, test.want, got)
		}
	}
}

func TestCartesianCheckLimits(t *testing.T) {
	kin, _ := NewCartesian(config.DefaultCartesianConfig())

	if err := kin.CheckLimits(standalone.Position{X: 10, Y: 10, Z: 10}); err != nil {
		t.Errorf("Expected in-range position to pass: %v", err)
	}
	err := kin.CheckLimits(standalone.Position{X: 300})
	if !errors.Is(err, ErrOutOfLimits) {
		t.Errorf("Expected ErrOutOfLimits, got %v", err)
	}
}

func TestDeltaManualLimitsDependOnOtherAxis(t *testing.T) {
	kin, err := NewDelta(config.DefaultDeltaConfig())
	if err != nil {
		t.Fatalf("NewDelta failed: %v", err)
	}

	tests := []struct {
		axis standalone.Axis
		pos  standalone.Position
		max  float64
	}{
		{standalone.AxisX, standalone.Position{}, 100},
		{standalone.AxisX, standalone.Position{Y: 60}, 80},
		{standalone.AxisY, standalone.Position{X: 80}, 60},
		{standalone.AxisY, standalone.Position{X: 150}, 0},
	}

	for _, test := range tests {
		got := kin.ManualLimits(test.axis, test.pos, true)
		if math.Abs(got.Max-test.max) > 1e-9 || math.Abs(got.Min+test.max) > 1e-9 {
			t.Errorf("%s at %+v: expected +/-%f, got %+v", test.axis, test.pos, test.max, got)
		}
	}

	z := kin.ManualLimits(standalone.AxisZ, standalone.Position{X: 90}, true)
	if z.Min != 0 || z.Max != 300 {
		t.Errorf("Z limits should come from the config, got %+v", z)
	}
}

func TestDeltaCheckLimits(t *testing.T) {
	kin, _ := NewDelta(config.DefaultDeltaConfig())
	if err := kin.CheckLimits(standalone.Position{X: 60, Y: 60, Z: 5}); err != nil {
		t.Errorf("Expected point inside the cylinder to pass: %v", err)
	}
	if err := kin.CheckLimits(standalone.Position{X: 80, Y: 80}); !errors.Is(err, ErrOutOfLimits) {
		t.Errorf("Expected ErrOutOfLimits outside the cylinder, got %v", err)
	}
}

func TestNewSelectsKinematics(t *testing.T) {
	kin, err := New(config.DefaultDeltaConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !kin.IsKinematic() {
		t.Error("Expected delta to be kinematic")
	}

	cfg := config.DefaultCartesianConfig()
	cfg.Kinematics = "scara"
	if _, err := New(cfg); err == nil {
		t.Error("Expected error for unsupported kinematics")
	}
}
