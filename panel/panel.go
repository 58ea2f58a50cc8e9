// Package panel is the printer front panel: status screen, motion and
// temperature menus, preheat profiles and manual jogging on top of the
// menu engine.
package panel

import (
	"time"

	"gopper-panel/debug"
	"gopper-panel/menu"
	"gopper-panel/standalone"
)

// Panel owns the menu state of one front panel
type Panel struct {
	cfg      *standalone.MachineConfig
	printer  Printer
	store    SettingsStore
	profiles []standalone.PreheatProfile

	nav     *menu.Navigator
	move    *ManualMove
	now     time.Time
	message string
}

// New creates a panel showing the status screen. store may be nil, which
// hides "Store Settings".
func New(cfg *standalone.MachineConfig, printer Printer, store SettingsStore) *Panel {
	p := &Panel{
		cfg:      cfg,
		printer:  printer,
		store:    store,
		profiles: append([]standalone.PreheatProfile(nil), cfg.Preheat...),
		message:  "Printer ready",
	}
	p.move = NewManualMove(printer, cfg)
	p.nav = menu.NewNavigator(p.statusScreen, printer)
	return p
}

// Update runs one UI tick: input first, then the manual move task
func (p *Panel) Update(now time.Time, in menu.Input) {
	p.now = now
	debug.Tick()
	p.nav.Handle(in)
	p.move.Task(now)
}

// Render draws the active screen
func (p *Panel) Render(f *menu.Frame) {
	p.nav.Render(f)
}

// Navigator returns the panel's navigator
func (p *Panel) Navigator() *menu.Navigator {
	return p.nav
}

// ManualMove returns the jog state machine
func (p *Panel) ManualMove() *ManualMove {
	return p.move
}

// Profiles returns a copy of the preheat profiles
func (p *Panel) Profiles() []standalone.PreheatProfile {
	return append([]standalone.PreheatProfile(nil), p.profiles...)
}

// SetProfiles replaces the preheat profiles
func (p *Panel) SetProfiles(profiles []standalone.PreheatProfile) {
	p.profiles = append(p.profiles[:0], profiles...)
	p.nav.RequestRedraw()
}

// SetMessage sets the status screen's bottom line
func (p *Panel) SetMessage(msg string) {
	p.message = msg
	p.nav.RequestRedraw()
}

// StoreSettings saves the preheat profiles
func (p *Panel) StoreSettings() error {
	if p.store == nil {
		return nil
	}
	return p.store.StoreSettings(p.Profiles())
}
