// Package encoder turns raw rotary encoder and button pin levels into panel
// input.
package encoder

import (
	"time"

	"gopper-panel/menu"
)

const (
	// PulsesPerStep is the number of quadrature transitions per detent
	PulsesPerStep = 4
	// Debounce is how long the button must stay pressed to count as a click
	Debounce = 20 * time.Millisecond
)

// transitions maps (previous<<2 | current) AB states to a direction.
// Invalid double transitions count as no movement.
var transitions = [16]int8{
	0, -1, 1, 0,
	1, 0, 0, -1,
	-1, 0, 0, 1,
	0, 1, -1, 0,
}

// Decoder accumulates encoder pulses between panel ticks. Pins are sampled
// far more often than the panel updates.
type Decoder struct {
	// Reverse flips the direction for encoders wired the other way
	Reverse bool

	state  uint8
	pulses int

	pressed      bool
	pressedSince time.Time
	clicked      bool
	held         bool
}

// Sample records the current A and B pin levels
func (d *Decoder) Sample(a, b bool) {
	cur := uint8(0)
	if a {
		cur |= 2
	}
	if b {
		cur |= 1
	}
	dir := transitions[d.state<<2|cur]
	d.state = cur
	if d.Reverse {
		dir = -dir
	}
	d.pulses += int(dir)
}

// Button records the button level at now; pressed is true while held down.
// A press counts as one click once it has lasted Debounce.
func (d *Decoder) Button(pressed bool, now time.Time) {
	if !pressed {
		d.pressed = false
		d.held = false
		return
	}
	if !d.pressed {
		d.pressed = true
		d.pressedSince = now
		return
	}
	if !d.held && now.Sub(d.pressedSince) >= Debounce {
		d.held = true
		d.clicked = true
	}
}

// Take returns the input since the last call. Partial detents carry over.
func (d *Decoder) Take() menu.Input {
	in := menu.Input{
		EncoderDelta: d.pulses / PulsesPerStep,
		Click:        d.clicked,
	}
	d.pulses -= in.EncoderDelta * PulsesPerStep
	d.clicked = false
	return in
}
