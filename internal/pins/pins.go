// Package pins allocates controller pins to newly placed components.
package pins

import (
	"strconv"
	"strings"
)

// Digital pin range available for allocation
const (
	FirstDigital = 2
	LastDigital  = 13
)

// NextFreePin returns the lowest digital pin in [2,13] not in used. It
// returns false when every pin in the range is taken.
func NextFreePin(used map[string]bool) (string, bool) {
	for n := FirstDigital; n <= LastDigital; n++ {
		pin := strconv.Itoa(n)
		if !used[pin] {
			return pin, true
		}
	}
	return "", false
}

// Assign tries preferred first and falls back to NextFreePin. An empty
// preferred pin goes straight to the scan.
func Assign(preferred string, used map[string]bool) (string, bool) {
	if preferred != "" && !used[preferred] {
		return preferred, true
	}
	return NextFreePin(used)
}

// Available lists the digital pins a component could be moved to: every
// unused pin plus the component's current one.
func Available(current string, used map[string]bool) []string {
	var out []string
	for n := FirstDigital; n <= LastDigital; n++ {
		pin := strconv.Itoa(n)
		if !used[pin] || pin == current {
			out = append(out, pin)
		}
	}
	return out
}

// Digital returns the label of digital pin n
func Digital(n int) string {
	return strconv.Itoa(n)
}

// DigitalNumber parses a digital pin label
func DigitalNumber(pin string) (int, bool) {
	n, err := strconv.Atoi(pin)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IsDigital reports whether pin is a digital label in the allocatable range
func IsDigital(pin string) bool {
	n, ok := DigitalNumber(pin)
	return ok && n >= FirstDigital && n <= LastDigital
}

// IsAnalog reports whether pin is one of A0..A5
func IsAnalog(pin string) bool {
	if len(pin) != 2 || !strings.HasPrefix(pin, "A") {
		return false
	}
	return pin[1] >= '0' && pin[1] <= '5'
}

// Valid reports whether pin is a label a component can be bound to
func Valid(pin string) bool {
	return IsDigital(pin) || IsAnalog(pin)
}

// Less orders digital pins numerically before analog pins
func Less(a, b string) bool {
	na, da := DigitalNumber(a)
	nb, db := DigitalNumber(b)
	switch {
	case da && db:
		return na < nb
	case da:
		return true
	case db:
		return false
	}
	return a < b
}
