// Package firmware renders an illustrative sketch listing for a circuit.
//
// The listing is assembled from fixed text fragments per component bucket.
// It is meant to be read, not compiled: nothing checks pin conflicts or that
// the result builds.
package firmware

import (
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"

	"pinboard/internal/domain"
)

// Placeholder is returned when no component contributes code
const Placeholder = `// Arduino Simulator
// =====================
// Add components to generate code
//
// Default Pin Mapping:
// - LED → Digital Pin 10
// - Push Button → Digital Pin 2
// - MPU6050 → SDA (A4), SCL (A5)
// - OLED Display → SDA (A4), SCL (A5)
// - LCD 16x2 (I2C) → SDA (A4), SCL (A5)
// - HC-SR04 → TRIG (D9), ECHO (D10)
// - Servo → PWM (D9)`

const header = `// Auto-generated Arduino Code
// ===========================

`

// plan is the component list partitioned into buckets
type plan struct {
	leds        []domain.Component
	buttons     []domain.Component
	mpus        []domain.Component
	oleds       []domain.Component
	ultrasonics []domain.Component
	servos      []domain.Component
	lcds        []domain.Component

	wireIncluded bool
}

func newPlan(components []domain.Component) *plan {
	return &plan{
		leds:        domain.PinnedOfType(components, domain.TypeLED),
		buttons:     domain.PinnedOfType(components, domain.TypePushbutton),
		mpus:        domain.OfType(components, domain.TypeMPU6050),
		oleds:       domain.OfType(components, domain.TypeSSD1306),
		ultrasonics: domain.OfType(components, domain.TypeHCSR04),
		servos:      domain.OfType(components, domain.TypeServo),
		lcds:        domain.OfType(components, domain.TypeLCD1602),
	}
}

// empty reports whether no bucket produces a program. A lone OLED display
// does not count.
func (p *plan) empty() bool {
	return len(p.leds) == 0 && len(p.buttons) == 0 && len(p.mpus) == 0 &&
		len(p.lcds) == 0 && len(p.ultrasonics) == 0 && len(p.servos) == 0
}

// Generate returns the sketch for components. The output depends only on the
// order, types and pins of the components.
func Generate(components []domain.Component) string {
	p := newPlan(components)
	if p.empty() {
		return Placeholder
	}

	var b strings.Builder
	b.WriteString(header)

	for _, k := range declareOrder {
		if f := fragments[k].declare; f != nil && fragments[k].active(p) {
			f(&b, p)
		}
	}

	b.WriteString("// Pin Definitions\n")
	for _, k := range pinOrder {
		if f := fragments[k].pins; f != nil && fragments[k].active(p) {
			f(&b, p)
		}
	}

	b.WriteString("\nvoid setup() {\n")
	b.WriteString("  Serial.begin(9600);\n")
	for _, k := range setupOrder {
		if f := fragments[k].setup; f != nil && fragments[k].active(p) {
			f(&b, p)
		}
	}
	b.WriteString("}\n\n")

	b.WriteString("void loop() {\n")
	for _, k := range loopOrder {
		if f := fragments[k].loop; f != nil && fragments[k].active(p) {
			f(&b, p)
		}
	}
	b.WriteString("}\n")

	return b.String()
}

// Digest returns the BLAKE2b-256 hex digest of a listing
func Digest(listing string) string {
	sum := blake2b.Sum256([]byte(listing))
	return hex.EncodeToString(sum[:])
}

// suffix numbers the second and later instances of a bucket: "", "2", "3"...
func suffix(i int) string {
	if i == 0 {
		return ""
	}
	return strconv.Itoa(i + 1)
}
