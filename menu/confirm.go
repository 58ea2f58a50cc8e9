package menu

// Confirm asks a yes/no question. The encoder picks a side and the click
// runs it; "no" is selected on entry.
type Confirm struct {
	Lines []string
	Yes   string
	No    string
	OnYes func(*Navigator)
	OnNo  func(*Navigator)

	yes bool
}

// Selected reports whether the "yes" choice is highlighted
func (c *Confirm) Selected() bool {
	return c.yes
}

// HandleInput moves between choices and runs the chosen one on click
func (c *Confirm) HandleInput(nav *Navigator, in Input) {
	if in.Click {
		if c.yes {
			if c.OnYes != nil {
				c.OnYes(nav)
			}
		} else if c.OnNo != nil {
			c.OnNo(nav)
		} else {
			nav.Back()
		}
		return
	}
	if in.EncoderDelta != 0 {
		c.yes = in.EncoderDelta > 0
		nav.RequestRedraw()
	}
}

// Render draws the message lines with the choices on the last row
func (c *Confirm) Render(f *Frame) {
	for i, line := range c.Lines {
		if i >= f.Rows-1 {
			break
		}
		f.SetLine(i, center(line, f.Columns), false)
	}
	yes, no := " "+c.Yes+" ", " "+c.No+" "
	if c.yes {
		yes = "[" + c.Yes + "]"
	} else {
		no = "[" + c.No + "]"
	}
	f.SetLine(f.Rows-1, yes, false)
	f.Put(f.Rows-1, f.Columns-len(no), no)
}
