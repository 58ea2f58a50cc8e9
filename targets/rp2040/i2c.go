//go:build rp2040

package main

import (
	"machine"
)

// LCD backpack wiring
const (
	lcdFrequency = 100 * machine.KHz
	lcdSDA       = machine.GPIO4
	lcdSCL       = machine.GPIO5
)

// ConfigureLCDBus sets up I2C0 for the character LCD backpack
func ConfigureLCDBus() (*machine.I2C, error) {
	i2c := machine.I2C0
	err := i2c.Configure(machine.I2CConfig{
		Frequency: lcdFrequency,
		SDA:       lcdSDA,
		SCL:       lcdSCL,
	})
	if err != nil {
		return nil, err
	}
	return i2c, nil
}
