package panel

import (
	"fmt"

	"gopper-panel/menu"
	"gopper-panel/standalone"
)

// statusScreen is the root "info" screen: temperatures, position and the
// status message. A click opens the main menu.
type statusScreen struct {
	p *Panel
}

func (p *Panel) statusScreen() menu.Screen {
	return &statusScreen{p: p}
}

func (s *statusScreen) HandleInput(nav *menu.Navigator, in menu.Input) {
	if in.Click {
		nav.Enter(s.p.mainMenu)
	}
}

func (s *statusScreen) Render(f *menu.Frame) {
	pr := s.p.printer
	e := pr.ActiveExtruder()

	row := 0
	heat := fmt.Sprintf("H%s/%-3d", temp(pr.DegHotend(e)), int(pr.DegTargetHotend(e)))
	if pr.HasHeatedBed() {
		heat += fmt.Sprintf(" B%s/%-3d", temp(pr.DegBed()), int(pr.DegTargetBed()))
	}
	f.SetLine(row, heat, false)
	row++

	if f.Rows >= 4 {
		var line string
		if pr.Fans() > 0 {
			line = fmt.Sprintf("Fan%4d%%", percent(pr.FanSpeed(0)))
		}
		if pr.Hotends() > 1 {
			line += fmt.Sprintf(" T%d", e)
		}
		f.SetLine(row, line, false)
		row++
	}

	pos := pr.CurrentPosition()
	f.SetLine(row, s.p.positionLine(pos), false)
	row++

	f.SetLine(f.Rows-1, s.p.message, false)
}

// positionLine shows XYZ with '?' marking unhomed machines
func (p *Panel) positionLine(pos standalone.Position) string {
	mark := " "
	if !p.printer.AllAxesHomed() {
		mark = "?"
	}
	return fmt.Sprintf("X%5.1f Y%5.1f%sZ%5.1f", pos.X, pos.Y, mark, pos.Z)
}

// mainMenu is the top-level menu under the status screen
func (p *Panel) mainMenu() menu.Screen {
	items := []menu.Item{menu.Back("Info Screen")}
	if p.cfg.LCD.PreheatShortcut && len(p.profiles) > 0 {
		items = append(items, menu.Submenu("Preheat", p.preheatOnlyMenu))
	}
	items = append(items,
		menu.Submenu("Motion", p.motionMenu),
		menu.Submenu("Temperature", p.temperatureMenu),
	)
	return menu.NewList(items...)
}
