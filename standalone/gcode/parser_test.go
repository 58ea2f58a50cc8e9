package gcode

import (
	"testing"
)

func TestParsePanelCommands(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		input   string
		cmdType byte
		cmdNum  int
		params  map[byte]float64
	}{
		{"G1 X12.700 F3000", 'G', 1, map[byte]float64{'X': 12.7, 'F': 3000}},
		{"G1 E-2.5 F120", 'G', 1, map[byte]float64{'E': -2.5, 'F': 120}},
		{"g1 z0.025 f240", 'G', 1, map[byte]float64{'Z': 0.025, 'F': 240}},
		{"M104 T1 S205", 'M', 104, map[byte]float64{'T': 1, 'S': 205}},
		{"M140 S60", 'M', 140, map[byte]float64{'S': 60}},
		{"M106 P0 S255", 'M', 106, map[byte]float64{'P': 0, 'S': 255}},
		{"M211 S0", 'M', 211, map[byte]float64{'S': 0}},
		{"M84", 'M', 84, map[byte]float64{}},
		{"T1", 'T', 1, map[byte]float64{}},
	}

	for _, test := range tests {
		cmd, err := parser.ParseLine(test.input)
		if err != nil {
			t.Errorf("Failed to parse '%s': %v", test.input, err)
			continue
		}
		if cmd == nil {
			t.Errorf("Got nil command for '%s'", test.input)
			continue
		}
		if cmd.Type != test.cmdType || cmd.Number != test.cmdNum {
			t.Errorf("Expected %c%d, got %c%d for '%s'", test.cmdType, test.cmdNum, cmd.Type, cmd.Number, test.input)
		}
		for param, value := range test.params {
			if !cmd.HasParameter(param) {
				t.Errorf("Missing parameter %c in '%s'", param, test.input)
			} else if got := cmd.GetParameter(param, 0); got != value {
				t.Errorf("Expected %c=%f, got %f in '%s'", param, value, got, test.input)
			}
		}
	}
}

func TestParseComments(t *testing.T) {
	parser := NewParser()

	tests := []string{
		"; This is a comment",
		"G0 X10 ; Move to X10",
		"(This is a comment)",
	}

	for _, test := range tests {
		cmd, err := parser.ParseLine(test)
		if err != nil {
			t.Errorf("Failed to parse '%s': %v", test, err)
		}

		if cmd == nil {
			t.Errorf("Got nil command for '%s'", test)
		}
	}
}

func TestParseEmptyLine(t *testing.T) {
	parser := NewParser()

	cmd, err := parser.ParseLine("")
	if err != nil {
		t.Errorf("Empty line should not error: %v", err)
	}

	if cmd != nil {
		t.Errorf("Empty line should return nil command")
	}
}

func TestParseFlagsAndLineNumbers(t *testing.T) {
	parser := NewParser()

	cmd, err := parser.ParseLine("N42 G28 X Y*71")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if cmd.Type != 'G' || cmd.Number != 28 {
		t.Fatalf("Expected G28, got %c%d", cmd.Type, cmd.Number)
	}
	if !cmd.HasParameter('X') || !cmd.HasParameter('Y') || cmd.HasParameter('Z') {
		t.Errorf("Expected X and Y flags only, got %v", cmd.Parameters)
	}
	if parser.LastLineNumber() != 42 {
		t.Errorf("Expected line number 42, got %d", parser.LastLineNumber())
	}

	cmd, err = parser.ParseLine("G28X")
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if !cmd.HasParameter('X') {
		t.Errorf("Expected X flag in G28X, got %v", cmd.Parameters)
	}

	if _, err := parser.ParseLine("M S100"); err == nil {
		t.Error("Expected error for M without a number")
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("G28O\nM48 P10\r\n\n  M84  ")
	want := []string{"G28O", "M48 P10", "M84"}
	if len(got) != len(want) {
		t.Fatalf("Expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}
