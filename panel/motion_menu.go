package panel

import (
	"fmt"
	"math"

	"gopper-panel/debug"
	"gopper-panel/menu"
	"gopper-panel/standalone"
)

// ColdExtrudeHeatTemp is the target set when jogging E is confirmed on a
// cold hotend
const ColdExtrudeHeatTemp = 200

// motionMenu is "Main > Motion"
func (p *Panel) motionMenu() menu.Screen {
	items := []menu.Item{menu.Back("Main")}

	if p.cfg.LCD.IndividualAxisHoming {
		items = append(items, menu.Submenu("Homing", p.homingMenu))
	} else {
		items = append(items, menu.Command("Auto Home", "G28"))
	}

	// Kinematic machines can't jog until they know where they are
	if !p.printer.IsKinematic() || p.printer.AllAxesHomed() {
		items = append(items, menu.Submenu("Move Axis", p.moveAxisMenu))
	}

	for m := range p.profiles {
		items = append(items, p.preheatEntry(m))
	}

	items = append(items, menu.Command("Disable Steppers", "M84"))
	return menu.NewList(items...)
}

// homingMenu is "Motion > Homing"
func (p *Panel) homingMenu() menu.Screen {
	return menu.NewList(
		menu.Back("Motion"),
		menu.Command("Auto Home", "G28"),
		menu.Command("Home X", "G28X"),
		menu.Command("Home Y", "G28Y"),
		menu.Command("Home Z", "G28Z"),
	)
}

// moveAxisMenu is "Motion > Move Axis"
func (p *Panel) moveAxisMenu() menu.Screen {
	items := []menu.Item{menu.Back("Motion")}
	pr := p.printer

	if p.cfg.LCD.SoftEndstopsItem {
		items = append(items, menu.Toggle("Soft Endstops", pr.SoftEndstops(), pr.SetSoftEndstops))
	}

	unlocked := !(pr.IsKinematic() || p.cfg.LCD.NoMotionBeforeHoming) || pr.AllAxesHomed()
	if unlocked {
		if p.cfg.Kinematics != "delta" || pr.CurrentPosition().Z <= p.cfg.DeltaClipStartHeight {
			items = append(items,
				menu.Submenu("Move X", p.moveDistanceMenu(standalone.AxisX)),
				menu.Submenu("Move Y", p.moveDistanceMenu(standalone.AxisY)),
			)
		} else {
			items = append(items, menu.Action("Free XY", p.freeXY))
		}
		items = append(items, menu.Submenu("Move Z", p.moveDistanceMenu(standalone.AxisZ)))
	} else {
		items = append(items, menu.Command("Auto Home", "G28"))
	}

	items = append(items, menu.Action("Move E", p.moveE))
	return menu.NewList(items...)
}

// freeXY lowers a delta effector to the clip height so XY jogging opens up
func (p *Panel) freeXY(nav *menu.Navigator) {
	target := p.printer.CurrentPosition()
	target.Z = p.cfg.DeltaClipStartHeight
	if err := p.printer.QueueManualMove(target, standalone.AxisZ, p.move.feedrate(standalone.AxisZ)); err != nil {
		debug.Println(fmt.Sprintf("[PANEL] free XY: %v", err))
	}
	nav.RequestRedraw()
}

// moveE enters the E distance menu, or asks first when the hotend is cold
func (p *Panel) moveE(nav *menu.Navigator) {
	e := p.printer.ActiveExtruder()
	if p.cfg.LCD.PreventColdExtrusion && p.printer.TooColdToExtrude(e) {
		nav.Enter(p.coldExtrudeConfirm())
		return
	}
	nav.Enter(p.moveDistanceMenu(standalone.AxisE))
}

// coldExtrudeConfirm offers to heat hotend 0, whichever extruder is active
func (p *Panel) coldExtrudeConfirm() menu.Builder {
	return func() menu.Screen {
		return &menu.Confirm{
			Lines: []string{"Hotend too cold", "Heating...!"},
			Yes:   "Proceed",
			No:    "Back",
			OnYes: func(nav *menu.Navigator) {
				p.printer.SetTargetHotend(ColdExtrudeHeatTemp, 0)
				nav.ReturnToStatus()
			},
			OnNo: func(nav *menu.Navigator) { nav.Back() },
		}
	}
}

var moveLabels = [standalone.NumAxes]string{"Move X", "Move Y", "Move Z", "Extruder"}

// moveDistanceMenu is "Move Axis > Move X" etc: one entry per jog step
func (p *Panel) moveDistanceMenu(axis standalone.Axis) menu.Builder {
	return func() menu.Screen {
		label := moveLabels[axis]
		var items []menu.Item
		if p.cfg.LCD.Rows >= 4 {
			items = append(items, menu.Static(label, menu.StyleInvert))
		}
		items = append(items, menu.Back("Move Axis"))

		// E is shown relative to where it was when this menu opened
		eOrigin := p.printer.CurrentPosition().E
		step := func(name string, scale float64) menu.Item {
			return menu.Submenu(name, p.jog(axis, label, scale, eOrigin))
		}

		large := p.cfg.LargeArea()
		if p.printer.UsingInchUnits() {
			if large {
				items = append(items, step("Move 1in", 1.0*MMPerInch))
			}
			items = append(items,
				step("Move 0.1in", 0.1*MMPerInch),
				step("Move 0.01in", 0.01*MMPerInch),
				step("Move 0.001in", 0.001*MMPerInch),
			)
		} else {
			if large {
				items = append(items, step("Move 100mm", 100))
			}
			items = append(items,
				step("Move 10mm", 10),
				step("Move 1mm", 1),
				step("Move 0.1mm", 0.1),
			)
			if fine := p.cfg.LCD.FineMove; axis == standalone.AxisZ && fine > 0 && fine < 0.1 {
				items = append(items, step("Move "+fineLabel(fine)+"mm", fine))
			}
		}
		return menu.NewList(items...)
	}
}

// fineLabel prints a fine step with just enough decimals (2 to 4)
func fineLabel(v float64) string {
	digits := 2
	if frac(v*1000) > 1e-6 {
		digits = 4
	} else if frac(v*100) > 1e-6 {
		digits = 3
	}
	return fmt.Sprintf("%.*f", digits, v)
}

func frac(v float64) float64 {
	return math.Abs(v - math.Round(v))
}
