package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"gopper-panel/menu"
	"gopper-panel/panel"
)

// stepInterval is the simulated time one scripted step takes
const stepInterval = 50 * time.Millisecond

// session drives a panel without a terminal
type session struct {
	panel   *panel.Panel
	frame   *menu.Frame
	advance func(dt time.Duration)
	sink    menu.CommandSink
	now     time.Time
	out     io.Writer
}

func newSession(p *panel.Panel, columns, rows int, advance func(dt time.Duration), sink menu.CommandSink, out io.Writer) *session {
	s := &session{
		panel:   p,
		frame:   menu.NewFrame(columns, rows),
		advance: advance,
		sink:    sink,
		now:     time.Unix(0, 0),
		out:     out,
	}
	p.Render(s.frame)
	return s
}

func (s *session) step(in menu.Input) {
	s.now = s.now.Add(stepInterval)
	if s.advance != nil {
		s.advance(stepInterval)
	}
	s.panel.Update(s.now, in)
	s.panel.Render(s.frame)
}

// Run executes a script of panel steps:
//
//	click            press the encoder button
//	cw, ccw          turn one detent
//	turn=N           turn N detents (negative is counter-clockwise)
//	wait=DURATION    let simulated time pass
//	gcode="G28 X"    send G-code to the printer
//	print            write the LCD to the output
//
// Words follow shell quoting; '#' starts a comment.
func (s *session) Run(script string) error {
	words, err := shlex.Split(script)
	if err != nil {
		return fmt.Errorf("parse script: %w", err)
	}
	for _, word := range words {
		key, val, _ := strings.Cut(word, "=")
		switch key {
		case "click":
			s.step(menu.Input{Click: true})
		case "cw":
			s.step(menu.Input{EncoderDelta: 1})
		case "ccw":
			s.step(menu.Input{EncoderDelta: -1})
		case "turn":
			n, err := strconv.Atoi(val)
			if err != nil {
				return fmt.Errorf("turn: %w", err)
			}
			s.step(menu.Input{EncoderDelta: n})
		case "wait":
			d, err := time.ParseDuration(val)
			if err != nil {
				return fmt.Errorf("wait: %w", err)
			}
			for elapsed := time.Duration(0); elapsed < d; elapsed += stepInterval {
				s.step(menu.Input{})
			}
		case "gcode":
			if s.sink == nil {
				return fmt.Errorf("gcode: no printer")
			}
			s.sink.InjectCommands(val)
			s.step(menu.Input{})
		case "print":
			fmt.Fprintln(s.out, s.frame.String())
			fmt.Fprintln(s.out)
		default:
			return fmt.Errorf("unknown step %q", word)
		}
	}
	return nil
}
