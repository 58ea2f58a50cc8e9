package panel

import (
	"fmt"
	"math"
)

// roundTenths rounds half away from zero to a count of 0.1 steps
func roundTenths(f float64) int64 {
	return int64(math.Round(f * 10))
}

func signOf(i int64) (byte, int64) {
	if i < 0 {
		return '-', -i
	}
	return '+', i
}

// ftostr41sign formats f as "+123.4"
func ftostr41sign(f float64) string {
	sign, i := signOf(roundTenths(f))
	return fmt.Sprintf("%c%03d.%d", sign, (i/10)%1000, i%10)
}

// ftostr51sign formats f as "+1234.5"
func ftostr51sign(f float64) string {
	sign, i := signOf(roundTenths(f))
	return fmt.Sprintf("%c%04d.%d", sign, (i/10)%10000, i%10)
}

// ftostr63 formats f as "123.456", the leading digit replaced by '-' for
// negative values
func ftostr63(f float64) string {
	i := int64(math.Round(f * 1000))
	neg := i < 0
	if neg {
		i = -i
	}
	s := fmt.Sprintf("%3d.%03d", (i/1000)%1000, i%1000)
	if neg {
		s = "-" + s[1:]
	}
	return s
}

// temp formats a temperature as a right-aligned integer
func temp(t float64) string {
	return fmt.Sprintf("%3d", int(math.Round(t)))
}

// percent converts a 0-255 fan speed to 0-100
func percent(speed int) int {
	return (speed*100 + 127) / 255
}
