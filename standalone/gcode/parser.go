package gcode

import (
	"errors"
	"fmt"

	"gopper-panel/standalone"
)

// Parser handles G-code parsing
type Parser struct {
	lastLine int // Last N line number seen, for M110-style resync
}

// NewParser creates a new G-code parser
func NewParser() *Parser {
	return &Parser{}
}

// LastLineNumber returns the last N word seen
func (p *Parser) LastLineNumber() int {
	return p.lastLine
}

// SplitLines splits a multi-command string (as queued by menu items such as
// "G28\nM84") into trimmed, non-empty lines
func SplitLines(gcode string) []string {
	var lines []string
	start := 0
	for i := 0; i <= len(gcode); i++ {
		if i < len(gcode) && gcode[i] != '\n' && gcode[i] != '\r' {
			continue
		}
		line := trimSpace(gcode[start:i])
		if len(line) > 0 {
			lines = append(lines, line)
		}
		start = i + 1
	}
	return lines
}

// ParseLine parses a single line of G-code
func (p *Parser) ParseLine(line string) (*standalone.GCodeCommand, error) {
	line = stripChecksum(line)
	if len(line) == 0 {
		return nil, nil
	}

	cmd := &standalone.GCodeCommand{
		Parameters: make(map[byte]float64),
	}

	i := skipSpace(line, 0)
	if i >= len(line) {
		return nil, nil
	}

	// Line number prefix (N123)
	if line[i] == 'N' || line[i] == 'n' {
		num, newPos := parseInt(line, i+1)
		if newPos <= i+1 {
			return nil, errors.New("malformed line number")
		}
		p.lastLine = num
		i = skipSpace(line, newPos)
		if i >= len(line) {
			return nil, nil
		}
	}

	// Check for comment
	if line[i] == ';' || line[i] == '(' {
		cmd.Comment = line[i:]
		return cmd, nil
	}

	// Parse command type (G, M, T)
	if c := toUpper(line[i]); c == 'G' || c == 'M' || c == 'T' {
		cmd.Type = c
		i++

		// Parse command number
		num, newPos := parseInt(line, i)
		if newPos > i {
			cmd.Number = num
			i = newPos
		} else if c != 'T' {
			return nil, fmt.Errorf("missing number after %c", c)
		}
	}

	// Parse parameters
	for i < len(line) {
		i = skipSpace(line, i)
		if i >= len(line) {
			break
		}

		// Check for comment
		if line[i] == ';' || line[i] == '(' {
			cmd.Comment = line[i:]
			break
		}

		if !isLetter(line[i]) {
			i++
			continue
		}

		letter := toUpper(line[i])
		i++

		// A bare letter is a flag (G28 X); record it with value 0
		value, newPos := parseFloat(line, i)
		if newPos > i {
			i = newPos
		} else {
			value = 0
		}
		cmd.Parameters[letter] = value
	}

	return cmd, nil
}

// stripChecksum removes a trailing "*NN" host checksum
func stripChecksum(line string) string {
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case ';':
			return line
		case '*':
			return line[:i]
		}
	}
	return line
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func trimSpace(s string) string {
	start := skipSpace(s, 0)
	end := len(s)
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}
	return s[start:end]
}

// parseInt parses an integer from the string starting at pos
func parseInt(s string, pos int) (int, int) {
	if pos >= len(s) {
		return 0, pos
	}

	negative := false
	if s[pos] == '-' {
		negative = true
		pos++
	} else if s[pos] == '+' {
		pos++
	}

	start := pos
	value := 0

	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		value = value*10 + int(s[pos]-'0')
		pos++
	}

	if pos == start {
		return 0, start - 1 // No digits found
	}

	if negative {
		value = -value
	}

	return value, pos
}

// parseFloat parses a floating-point number from the string starting at pos
func parseFloat(s string, pos int) (float64, int) {
	if pos >= len(s) {
		return 0, pos
	}

	negative := false
	if s[pos] == '-' {
		negative = true
		pos++
	} else if s[pos] == '+' {
		pos++
	}

	start := pos
	intPart := 0
	fracPart := 0.0
	fracDigits := 0

	// Parse integer part
	for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
		intPart = intPart*10 + int(s[pos]-'0')
		pos++
	}

	// Parse fractional part
	if pos < len(s) && s[pos] == '.' {
		pos++
		fracStart := pos
		for pos < len(s) && s[pos] >= '0' && s[pos] <= '9' {
			fracPart = fracPart*10.0 + float64(s[pos]-'0')
			pos++
		}
		fracDigits = pos - fracStart
	}

	if pos == start || (pos == start+1 && s[start] == '.') {
		return 0, start - 1 // No valid number found
	}

	// Combine integer and fractional parts
	value := float64(intPart)
	if fracDigits > 0 {
		divisor := 1.0
		for i := 0; i < fracDigits; i++ {
			divisor *= 10.0
		}
		value += fracPart / divisor
	}

	if negative {
		value = -value
	}

	return value, pos
}

// isLetter checks if a byte is a letter
func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// toUpper converts a byte to uppercase
func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
