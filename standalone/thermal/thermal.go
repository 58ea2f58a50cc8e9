// Package thermal keeps heater targets and fan speeds for standalone mode.
//
// Closed-loop control runs elsewhere; Advance moves each simulated
// temperature toward its target so the panel has live readings to show.
package thermal

import (
	"gopper-panel/standalone"
)

// Ambient is the temperature heaters cool down to
const Ambient = 25.0

// Heater tracks one heater's target and simulated reading
type Heater struct {
	config  standalone.HeaterConfig
	target  float64
	current float64
}

// Target returns the heater's target temperature
func (h *Heater) Target() float64 { return h.target }

// Current returns the heater's simulated temperature
func (h *Heater) Current() float64 { return h.current }

// MaxTarget is the highest target allowed, keeping Overshoot headroom below MaxTemp
func (h *Heater) MaxTarget() float64 {
	return h.config.MaxTemp - h.config.Overshoot
}

func (h *Heater) setTarget(t float64) {
	if t < 0 {
		t = 0
	}
	if max := h.MaxTarget(); t > max {
		t = max
	}
	h.target = t
}

func (h *Heater) advance(dt float64) {
	goal := h.target
	if goal < Ambient {
		goal = Ambient
	}
	step := h.config.HeatRate * dt
	switch {
	case h.current < goal:
		h.current += step
		if h.current > goal {
			h.current = goal
		}
	case h.current > goal:
		// Passive cooling is slower than heating
		h.current -= step / 2
		if h.current < goal {
			h.current = goal
		}
	}
}

// Manager owns all heaters and fans of the machine
type Manager struct {
	hotends        []*Heater
	bed            *Heater
	fans           []uint8
	minExtrudeTemp float64
}

// NewManager creates heaters and fans from the machine config
func NewManager(config *standalone.MachineConfig) *Manager {
	m := &Manager{
		fans:           make([]uint8, config.Fans),
		minExtrudeTemp: config.MinExtrudeTemp,
	}
	for _, hc := range config.Hotends {
		m.hotends = append(m.hotends, &Heater{config: hc, current: Ambient})
	}
	if bc, ok := config.Heaters["bed"]; ok {
		m.bed = &Heater{config: bc, current: Ambient}
	}
	return m
}

// Hotends returns the number of hotends
func (m *Manager) Hotends() int { return len(m.hotends) }

// Fans returns the number of fans
func (m *Manager) Fans() int { return len(m.fans) }

// HasHeatedBed reports whether a bed heater exists
func (m *Manager) HasHeatedBed() bool { return m.bed != nil }

// SetTargetHotend sets hotend e's target, clamped to its max target
func (m *Manager) SetTargetHotend(temp float64, e int) {
	if e < 0 || e >= len(m.hotends) {
		return
	}
	m.hotends[e].setTarget(temp)
}

// SetTargetBed sets the bed target, clamped to its max target
func (m *Manager) SetTargetBed(temp float64) {
	if m.bed != nil {
		m.bed.setTarget(temp)
	}
}

// DegTargetHotend returns hotend e's target
func (m *Manager) DegTargetHotend(e int) float64 {
	if e < 0 || e >= len(m.hotends) {
		return 0
	}
	return m.hotends[e].target
}

// DegHotend returns hotend e's current temperature
func (m *Manager) DegHotend(e int) float64 {
	if e < 0 || e >= len(m.hotends) {
		return 0
	}
	return m.hotends[e].current
}

// DegTargetBed returns the bed target
func (m *Manager) DegTargetBed() float64 {
	if m.bed == nil {
		return 0
	}
	return m.bed.target
}

// DegBed returns the bed's current temperature
func (m *Manager) DegBed() float64 {
	if m.bed == nil {
		return 0
	}
	return m.bed.current
}

// HotendMaxTarget returns the highest target hotend e accepts
func (m *Manager) HotendMaxTarget(e int) float64 {
	if e < 0 || e >= len(m.hotends) {
		return 0
	}
	return m.hotends[e].MaxTarget()
}

// BedMaxTarget returns the highest target the bed accepts
func (m *Manager) BedMaxTarget() float64 {
	if m.bed == nil {
		return 0
	}
	return m.bed.MaxTarget()
}

// SetFanSpeed sets fan speed 0-255; out of range fans are ignored
func (m *Manager) SetFanSpeed(fan int, speed int) {
	if fan < 0 || fan >= len(m.fans) {
		return
	}
	if speed < 0 {
		speed = 0
	}
	if speed > 255 {
		speed = 255
	}
	m.fans[fan] = uint8(speed)
}

// FanSpeed returns fan speed 0-255
func (m *Manager) FanSpeed(fan int) int {
	if fan < 0 || fan >= len(m.fans) {
		return 0
	}
	return int(m.fans[fan])
}

// ZeroFanSpeeds stops every fan
func (m *Manager) ZeroFanSpeeds() {
	for i := range m.fans {
		m.fans[i] = 0
	}
}

// DisableAllHeaters sets every target to 0
func (m *Manager) DisableAllHeaters() {
	for _, h := range m.hotends {
		h.target = 0
	}
	if m.bed != nil {
		m.bed.target = 0
	}
}

// TooColdToExtrude reports whether hotend e is below the extrusion minimum
func (m *Manager) TooColdToExtrude(e int) bool {
	if m.minExtrudeTemp <= 0 {
		return false
	}
	return m.DegHotend(e) < m.minExtrudeTemp
}

// Advance moves every heater's reading toward its target by dt seconds
func (m *Manager) Advance(dt float64) {
	for _, h := range m.hotends {
		h.advance(dt)
	}
	if m.bed != nil {
		m.bed.advance(dt)
	}
}
