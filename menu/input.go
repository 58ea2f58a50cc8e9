package menu

// Input is one UI tick's worth of encoder movement and button state
type Input struct {
	EncoderDelta int  // Detents turned since the last tick, negative counter-clockwise
	Click        bool // Button pressed since the last tick
}

// Empty reports whether the input carries nothing to handle
func (in Input) Empty() bool {
	return in.EncoderDelta == 0 && !in.Click
}
