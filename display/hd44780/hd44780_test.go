package hd44780

import (
	"testing"

	"gopper-panel/menu"
)

type fakeLCD struct {
	rows map[uint8]string
	y    uint8
	n    int
}

func (l *fakeLCD) SetCursor(x, y uint8) { l.y = y }

func (l *fakeLCD) Print(data []byte) {
	l.rows[l.y] = string(data)
	l.n++
}

func TestWriterRedrawsChangedRows(t *testing.T) {
	lcd := &fakeLCD{rows: map[uint8]string{}}
	w := NewWriter(lcd)
	f := menu.NewFrame(16, 2)
	f.SetLine(0, "Temperature", false)
	f.SetLine(1, ">Nozzle:     200", false)

	if sent := w.Write(f); sent != 2 {
		t.Errorf("Expected full redraw, sent %d rows", sent)
	}
	if sent := w.Write(f); sent != 0 {
		t.Errorf("Expected no redraw, sent %d rows", sent)
	}

	f.SetLine(1, ">Nozzle:     205", false)
	if sent := w.Write(f); sent != 1 {
		t.Errorf("Expected one row, sent %d", sent)
	}
	if lcd.rows[1] != ">Nozzle:     205" {
		t.Errorf("Unexpected row %q", lcd.rows[1])
	}

	w.Invalidate()
	if sent := w.Write(f); sent != 2 {
		t.Errorf("Expected redraw after Invalidate, sent %d", sent)
	}
}

func TestInvertedRowMarkers(t *testing.T) {
	lcd := &fakeLCD{rows: map[uint8]string{}}
	w := NewWriter(lcd)
	f := menu.NewFrame(12, 1)
	f.SetLine(0, " Move Axis", true)
	w.Write(f)
	if lcd.rows[0] != ">Move Axis <" {
		t.Errorf("Unexpected row %q", lcd.rows[0])
	}
}
