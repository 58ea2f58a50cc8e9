package panel

import (
	"fmt"
	"math"

	"gopper-panel/debug"
	"gopper-panel/menu"
)

// temperatureMenu is "Main > Temperature"
func (p *Panel) temperatureMenu() menu.Screen {
	pr := p.printer
	items := []menu.Item{menu.Back("Main")}
	hasHeat := false

	hotends := pr.Hotends()
	for e := 0; e < hotends; e++ {
		e := e
		label := "Nozzle"
		if hotends > 1 {
			label = fmt.Sprintf("Nozzle %d", e+1)
		}
		if pr.DegTargetHotend(e) != 0 {
			hasHeat = true
		}
		items = append(items, menu.Edit(label, &menu.IntEditor{
			Value: int(pr.DegTargetHotend(e)),
			Max:   int(pr.HotendMaxTarget(e)),
			Live:  true,
			Set:   func(v int) { pr.SetTargetHotend(float64(v), e) },
		}))
	}

	if pr.HasHeatedBed() {
		if pr.DegTargetBed() != 0 {
			hasHeat = true
		}
		items = append(items, menu.Edit("Bed", &menu.IntEditor{
			Value: int(pr.DegTargetBed()),
			Max:   int(pr.BedMaxTarget()),
			Live:  true,
			Set:   func(v int) { pr.SetTargetBed(float64(v)) },
		}))
	}

	fans := pr.Fans()
	for f := 0; f < fans; f++ {
		f := f
		label := "Fan Speed"
		if fans > 1 {
			label = fmt.Sprintf("Fan Speed %d", f+1)
		}
		items = append(items, menu.Edit(label, &menu.IntEditor{
			Value:  pr.FanSpeed(f),
			Max:    255,
			Format: menu.FormatPercent,
			Live:   true,
			Set:    func(v int) { pr.SetFanSpeed(f, v) },
		}))
	}

	if hasHeat {
		items = append(items, menu.Action("Cooldown", func(*menu.Navigator) { p.Cooldown() }))
	}

	if !p.cfg.LCD.SlimMenus {
		for m := range p.profiles {
			items = append(items, menu.Submenu(p.profiles[m].Name+" Settings", p.preheatSettingsMenu(m)))
		}
	}

	return menu.NewList(items...)
}

// preheatSettingsMenu edits profile m
func (p *Panel) preheatSettingsMenu(m int) menu.Builder {
	return func() menu.Screen {
		prof := &p.profiles[m]
		items := []menu.Item{
			menu.Static(prof.Name, menu.StyleInvert),
			menu.Back("Temperature"),
		}

		if p.printer.Fans() > 0 {
			items = append(items, menu.Edit("Fan Speed", &menu.IntEditor{
				Value:  prof.Fan,
				Max:    255,
				Format: menu.FormatPercent,
				Set:    func(v int) { p.profiles[m].Fan = v },
			}))
		}

		minTemp, maxTemp := p.hotendEditRange()
		items = append(items, menu.Edit("Nozzle", &menu.IntEditor{
			Value: prof.Hotend,
			Min:   minTemp,
			Max:   maxTemp,
			Set:   func(v int) { p.profiles[m].Hotend = v },
		}))

		if p.printer.HasHeatedBed() {
			items = append(items, menu.Edit("Bed", &menu.IntEditor{
				Value: prof.Bed,
				Min:   int(p.cfg.Heaters["bed"].MinTemp),
				Max:   int(p.printer.BedMaxTarget()),
				Set:   func(v int) { p.profiles[m].Bed = v },
			}))
		}

		if p.store != nil {
			items = append(items, menu.Action("Store Settings", func(nav *menu.Navigator) {
				if err := p.StoreSettings(); err != nil {
					debug.Println(fmt.Sprintf("[PANEL] store settings: %v", err))
					p.message = "Store failed"
				} else {
					p.message = "Settings Stored"
				}
				nav.RequestRedraw()
			}))
		}
		return menu.NewList(items...)
	}
}

// hotendEditRange spans the lowest min temp and highest max target of all hotends
func (p *Panel) hotendEditRange() (int, int) {
	lo, hi := math.Inf(1), 0.0
	for e, h := range p.cfg.Hotends {
		lo = math.Min(lo, h.MinTemp)
		hi = math.Max(hi, p.printer.HotendMaxTarget(e))
	}
	if math.IsInf(lo, 1) {
		lo = 0
	}
	return int(lo), int(hi)
}
