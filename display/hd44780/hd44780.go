// Package hd44780 shows panel frames on an HD44780 character LCD behind a
// PCF8574 I2C backpack.
package hd44780

import (
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/hd44780i2c"

	"gopper-panel/menu"
)

// DefaultAddress is the usual PCF8574 backpack address
const DefaultAddress = 0x27

// LCD is the part of the display driver the writer uses
type LCD interface {
	SetCursor(x, y uint8)
	Print(data []byte)
}

// Writer sends frames to an LCD, redrawing only rows that changed
type Writer struct {
	lcd  LCD
	last *menu.Frame
}

// Open configures a display on bus and returns a writer for it
func Open(bus drivers.I2C, addr uint8, columns, rows int) (*Writer, error) {
	dev := hd44780i2c.New(bus, addr)
	err := dev.Configure(hd44780i2c.Config{
		Width:  uint8(columns),
		Height: uint8(rows),
	})
	if err != nil {
		return nil, err
	}
	dev.ClearDisplay()
	return NewWriter(&dev), nil
}

// NewWriter wraps an already configured display
func NewWriter(lcd LCD) *Writer {
	return &Writer{lcd: lcd}
}

// Write draws f and returns the number of rows sent to the display.
// Character LCDs cannot invert a row; inverted rows get '>' and '<' markers
// in their outer columns when those are blank.
func (w *Writer) Write(f *menu.Frame) int {
	if w.last == nil || w.last.Columns != f.Columns || w.last.Rows != f.Rows {
		w.last = nil
	}
	sent := 0
	for row := 0; row < f.Rows; row++ {
		if w.last != nil && w.last.Line(row) == f.Line(row) && w.last.Inverted(row) == f.Inverted(row) {
			continue
		}
		w.lcd.SetCursor(0, uint8(row))
		w.lcd.Print(rowBytes(f, row))
		sent++
	}
	if w.last == nil {
		w.last = menu.NewFrame(f.Columns, f.Rows)
	}
	w.last.CopyFrom(f)
	return sent
}

// Invalidate forces the next Write to redraw every row
func (w *Writer) Invalidate() {
	w.last = nil
}

func rowBytes(f *menu.Frame, row int) []byte {
	line := []byte(f.Line(row))
	if f.Inverted(row) && len(line) > 1 {
		if line[0] == ' ' {
			line[0] = '>'
		}
		if line[len(line)-1] == ' ' {
			line[len(line)-1] = '<'
		}
	}
	return line
}
