//go:build rp2040

// Firmware for an RP2040 printer board with a 20x4 character LCD and a
// click encoder. G-code arrives over USB; the panel runs on the same loop.
package main

import (
	"machine"
	"time"

	"gopper-panel/debug"
	"gopper-panel/display/hd44780"
	"gopper-panel/encoder"
	"gopper-panel/menu"
	"gopper-panel/panel"
	"gopper-panel/standalone/config"
	standalonemachine "gopper-panel/standalone/machine"
)

// Encoder wiring
const (
	encA      = machine.GPIO10
	encB      = machine.GPIO11
	encButton = machine.GPIO12
)

// panelInterval is the UI tick
const panelInterval = 50 * time.Millisecond

var (
	// Debug counters
	msgerrors uint32
)

func main() {
	// Disable watchdog on boot to clear any previous state
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})

	InitUSB()
	debug.SetWriter(USBWriteString)

	cfg := config.DefaultCartesianConfig()
	printer, err := standalonemachine.NewWithConfig(cfg)
	if err != nil {
		blinkForever(100 * time.Millisecond)
	}

	bus, err := ConfigureLCDBus()
	if err != nil {
		blinkForever(100 * time.Millisecond)
	}
	lcd, err := hd44780.Open(bus, hd44780.DefaultAddress, cfg.LCD.Columns, cfg.LCD.Rows)
	if err != nil {
		blinkForever(250 * time.Millisecond)
	}

	for _, pin := range []machine.Pin{encA, encB, encButton} {
		pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	}
	var dec encoder.Decoder

	// No settings storage on the board; edited profiles last until reset
	p := panel.New(cfg, printer, nil)
	frame := menu.NewFrame(cfg.LCD.Columns, cfg.LCD.Rows)
	printer.Start()

	last := Now()
	for {
		func() {
			// Recover from panics in the main loop to prevent a firmware crash
			defer func() {
				if r := recover(); r != nil {
					msgerrors++
				}
			}()

			// Process USB input
			for USBAvailable() > 0 {
				b, err := USBRead()
				if err != nil {
					break
				}
				printer.ProcessByte(b)
			}
			if output := printer.GetOutput(); len(output) > 0 {
				USBWriteBytes(output)
			}

			// Pins are active low
			now := Now()
			dec.Sample(!encA.Get(), !encB.Get())
			dec.Button(!encButton.Get(), now)

			if dt := now.Sub(last); dt >= panelInterval {
				last = now
				printer.Advance(dt.Seconds())
				p.Update(now, dec.Take())
				p.Render(frame)
				lcd.Write(frame)
			}
		}()

		// Yield to other goroutines
		time.Sleep(10 * time.Microsecond)
	}
}

// blinkForever flashes the LED to report a fatal init error
func blinkForever(period time.Duration) {
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for {
		led.High()
		time.Sleep(period)
		led.Low()
		time.Sleep(period)
	}
}
