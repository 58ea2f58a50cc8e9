package panel

import (
	"fmt"
	"math"

	"gopper-panel/debug"
	"gopper-panel/menu"
)

// Targets selects which heaters a preheat touches
type Targets uint8

const (
	TargetHotend Targets = 1 << iota
	TargetBed
)

// TargetBoth preheats the hotend and the bed
const TargetBoth = TargetHotend | TargetBed

// ApplyPreheat sets hotend e and/or the bed from profile m, then returns to
// the status screen. Profile fields of 0 leave that heater alone; the
// hotend is clamped to its max target. Targeting the hotend also sets the
// active extruder's fan (fan 0 if there is no such fan) when the profile
// has a fan speed.
func (p *Panel) ApplyPreheat(m, e int, targets Targets) {
	if m < 0 || m >= len(p.profiles) {
		p.nav.ReturnToStatus()
		return
	}
	prof := p.profiles[m]
	th := p.printer

	if targets&TargetHotend != 0 && prof.Hotend > 0 {
		th.SetTargetHotend(math.Min(float64(prof.Hotend), th.HotendMaxTarget(e)), e)
	}
	if targets&TargetBed != 0 && prof.Bed > 0 {
		th.SetTargetBed(float64(prof.Bed))
	}
	if targets&TargetHotend != 0 && prof.Fan > 0 && th.Fans() > 0 {
		fan := th.ActiveExtruder()
		if fan < 0 || fan >= th.Fans() {
			fan = 0
		}
		th.SetFanSpeed(fan, prof.Fan)
	}

	debug.Record(debug.EvtPreheat, 0xFF, int32(m), int32(targets))
	p.nav.ReturnToStatus()
}

// PreheatAllHotends sets every hotend from profile m, then preheats the bed
// (which returns to status) or returns to status directly
func (p *Panel) PreheatAllHotends(m int) {
	if m < 0 || m >= len(p.profiles) {
		p.nav.ReturnToStatus()
		return
	}
	prof := p.profiles[m]
	if prof.Hotend > 0 {
		for e := 0; e < p.printer.Hotends(); e++ {
			p.printer.SetTargetHotend(math.Min(float64(prof.Hotend), p.printer.HotendMaxTarget(e)), e)
		}
	}
	if p.printer.HasHeatedBed() {
		p.ApplyPreheat(m, 0, TargetBed)
		return
	}
	p.nav.ReturnToStatus()
}

// Cooldown stops every fan and heater and returns to status
func (p *Panel) Cooldown() {
	p.printer.ZeroFanSpeeds()
	p.printer.DisableAllHeaters()
	debug.Record(debug.EvtCooldown, 0xFF, 0, 0)
	p.nav.ReturnToStatus()
}

// preheatEntry is the "Preheat <name>" row for profile m: a submenu when
// there is a choice of heaters, a direct action otherwise
func (p *Panel) preheatEntry(m int) menu.Item {
	label := "Preheat " + p.profiles[m].Name
	if p.printer.Hotends() > 1 || p.printer.HasHeatedBed() {
		return menu.Submenu(label, p.preheatMaterialMenu(m))
	}
	return menu.Action(label, func(*menu.Navigator) { p.ApplyPreheat(m, 0, TargetHotend) })
}

// preheatMaterialMenu lists the heater choices for profile m. The index is
// bound here, so nested menus never share it.
func (p *Panel) preheatMaterialMenu(m int) menu.Builder {
	return func() menu.Screen {
		name := p.profiles[m].Name
		bed := p.printer.HasHeatedBed()
		items := []menu.Item{menu.Back("Temperature")}

		action := func(label string, fn func()) menu.Item {
			return menu.Action(label, func(*menu.Navigator) { fn() })
		}

		if hotends := p.printer.Hotends(); hotends == 1 {
			if bed {
				items = append(items,
					action("Preheat "+name, func() { p.ApplyPreheat(m, 0, TargetBoth) }),
					action("Preheat "+name+" End", func() { p.ApplyPreheat(m, 0, TargetHotend) }),
				)
			} else {
				items = append(items, action("Preheat "+name, func() { p.ApplyPreheat(m, 0, TargetHotend) }))
			}
		} else {
			for e := 0; e < hotends; e++ {
				e := e
				if bed {
					items = append(items,
						action(fmt.Sprintf("Preheat %s H%d", name, e+1), func() { p.ApplyPreheat(m, e, TargetBoth) }),
						action(fmt.Sprintf("Preheat %s End %d", name, e+1), func() { p.ApplyPreheat(m, e, TargetHotend) }),
					)
				} else {
					items = append(items, action(fmt.Sprintf("Preheat %s H%d", name, e+1), func() { p.ApplyPreheat(m, e, TargetHotend) }))
				}
			}
			items = append(items, action("Preheat "+name+" All", func() { p.PreheatAllHotends(m) }))
		}

		if bed {
			items = append(items, action("Preheat "+name+" Bed", func() { p.ApplyPreheat(m, 0, TargetBed) }))
		}
		return menu.NewList(items...)
	}
}

// preheatOnlyMenu is the "Main > Preheat" shortcut
func (p *Panel) preheatOnlyMenu() menu.Screen {
	items := []menu.Item{menu.Back("Main")}
	for m := range p.profiles {
		items = append(items, p.preheatEntry(m))
	}
	return menu.NewList(items...)
}
