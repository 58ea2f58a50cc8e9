package machine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"gopper-panel/standalone"
	"gopper-panel/standalone/config"
)

func newTestMachine(t *testing.T) *Machine {
	t.Helper()
	m, err := NewWithConfig(config.DefaultCartesianConfig())
	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	m.Start()
	m.GetOutput()
	return m
}

func TestProcessByteRepliesOK(t *testing.T) {
	m := newTestMachine(t)

	for _, b := range []byte("G28\nM114\n") {
		if err := m.ProcessByte(b); err != nil {
			t.Fatalf("ProcessByte failed: %v", err)
		}
	}

	out := string(m.GetOutput())
	want := "ok\nX:0.00 Y:0.00 Z:0.00 E:0.00\nok\n"
	if out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}
	if m.GetOutput() != nil {
		t.Error("Output should be cleared after read")
	}
}

func TestProcessByteReportsErrors(t *testing.T) {
	m := newTestMachine(t)

	var err error
	for _, b := range []byte("M999\n") {
		err = m.ProcessByte(b)
	}
	if err == nil {
		t.Fatal("Expected error for unsupported command")
	}
	if out := string(m.GetOutput()); !strings.HasPrefix(out, "Error:") {
		t.Errorf("Expected error reply, got %q", out)
	}
}

func TestNotRunning(t *testing.T) {
	m, err := NewWithConfig(config.DefaultCartesianConfig())
	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	if err := m.ProcessLine("G28"); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Expected ErrNotRunning, got %v", err)
	}
}

func TestManualMoveLifecycle(t *testing.T) {
	m := newTestMachine(t)
	m.InjectCommands("G28")

	target := m.CurrentPosition()
	target.X = 10
	if err := m.QueueManualMove(target, standalone.AxisX, 50); err != nil {
		t.Fatalf("QueueManualMove failed: %v", err)
	}
	if m.MoveDone() {
		t.Fatal("Move should be in flight")
	}

	m.Advance(5)
	if !m.MoveDone() {
		t.Fatal("Move should finish after 5s")
	}
	if got := m.CurrentPosition().X; got != 10 {
		t.Errorf("Expected X10, got %f", got)
	}

	target.X = 500
	if err := m.QueueManualMove(target, standalone.AxisX, 50); err == nil {
		t.Error("Expected move past the bed to fail")
	}
}

func TestManualLimitsFollowSoftEndstops(t *testing.T) {
	m := newTestMachine(t)

	min, max := m.ManualLimits(standalone.AxisX, m.CurrentPosition())
	if min != 0 || max != 220 {
		t.Errorf("Expected 0..220, got %f..%f", min, max)
	}

	m.InjectCommands("M211 S0")
	if m.SoftEndstops() {
		t.Fatal("Soft endstops should be off")
	}
	min, max = m.ManualLimits(standalone.AxisX, m.CurrentPosition())
	if min != -100000 || max != 100000 {
		t.Errorf("Expected unlimited range, got %f..%f", min, max)
	}

	m.SetSoftEndstops(true)
	if !m.SoftEndstops() {
		t.Error("SetSoftEndstops(true) should re-enable")
	}
}

func TestDeltaManualLimits(t *testing.T) {
	m, err := NewWithConfig(config.DefaultDeltaConfig())
	if err != nil {
		t.Fatalf("NewWithConfig failed: %v", err)
	}
	if !m.IsKinematic() {
		t.Error("Delta should be kinematic")
	}

	min, max := m.ManualLimits(standalone.AxisX, standalone.Position{Y: 60})
	if math.Abs(max-80) > 1e-9 || math.Abs(min+80) > 1e-9 {
		t.Errorf("Expected -80..80, got %f..%f", min, max)
	}
}

func TestInjectCommandsAndUnits(t *testing.T) {
	m := newTestMachine(t)

	m.InjectCommands("G28\nG20\nM104 S200\nM999\nM140 S60")
	if !m.AllAxesHomed() {
		t.Error("Expected homed")
	}
	if !m.UsingInchUnits() {
		t.Error("Expected inch units")
	}
	if m.DegTargetHotend(0) != 200 || m.DegTargetBed() != 60 {
		t.Error("Lines after a failing command should still run")
	}
}

func TestEmergencyStop(t *testing.T) {
	m := newTestMachine(t)
	m.InjectCommands("M104 S200\nM106 S255")

	m.EmergencyStop()
	if m.IsRunning() {
		t.Error("Machine should stop")
	}
	if m.DegTargetHotend(0) != 0 || m.FanSpeed(0) != 0 {
		t.Error("Emergency stop should turn off heaters and fans")
	}
}
