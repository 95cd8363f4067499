package wiring

import (
	"fmt"
	"strconv"
	"strings"

	"pinboard/internal/domain"
)

// Wire colors
const (
	colorPower  = "#ff4444"
	colorGround = "#333333"
	colorTeal   = "#4ecdc4"
	colorRed    = "#ff6b6b"
	colorOrange = "#FF9800"
	colorBlue   = "#2196F3"
	colorPurple = "#9b59b6"
	colorGreen  = "#4CAF50"
	colorYellow = "#FFeb3b"
	colorLime   = "#22c55e"
	colorSky    = "#3b82f6"
)

// Controller power rails
const (
	railPower  = "5V"
	railGround = "GND1"
)

// pinFunc picks the controller pin a lead lands on
type pinFunc func(c domain.Component) string

func fixed(pin string) pinFunc {
	return func(domain.Component) string { return pin }
}

func own(fallback string) pinFunc {
	return func(c domain.Component) string { return c.PinOr(fallback) }
}

// nextAfter lands one digital pin above the component's pin
func nextAfter(fallback string) pinFunc {
	return func(c domain.Component) string {
		if c.Pin == "" {
			return fallback
		}
		n, err := strconv.Atoi(c.Pin)
		if err != nil {
			return fallback
		}
		return strconv.Itoa(n + 1)
	}
}

// lead is one physical connection of a component type
type lead struct {
	// Lead names the offset in the catalog entry
	Lead  string
	Role  domain.WireRole
	Pin   pinFunc
	Color string
	// Label is a format with one %s verb for the controller pin
	Label string
	// Name overrides the wire ID suffix, which defaults to the lowercased label
	Name string
}

func (l lead) controllerPin(c domain.Component) string {
	switch l.Role {
	case domain.WirePower:
		return railPower
	case domain.WireGround:
		return railGround
	}
	return l.Pin(c)
}

func (l lead) label(pin string) string {
	if strings.Contains(l.Label, "%s") {
		return fmt.Sprintf(l.Label, pin)
	}
	return l.Label
}

func (l lead) name(label string) string {
	if l.Name != "" {
		return l.Name
	}
	return strings.ToLower(label)
}

func power(name string) lead {
	return lead{Lead: name, Role: domain.WirePower, Color: colorPower, Label: "5V", Name: "vcc"}
}

func ground(name string) lead {
	return lead{Lead: name, Role: domain.WireGround, Color: colorGround, Label: "GND", Name: "gnd"}
}

func signal(name string, pin pinFunc, color, label string) lead {
	return lead{Lead: name, Role: domain.WireSignal, Pin: pin, Color: color, Label: label}
}

func bus(name, pin, color, label string) lead {
	return lead{Lead: name, Role: domain.WireBus, Pin: fixed(pin), Color: color, Label: label}
}

// fan is the set of leads drawn for one component type
type fan struct {
	Leads []lead
	// RequiresPin types draw nothing unless their own pin has a header offset
	RequiresPin bool
}

// fans is the per-type wiring table
var fans = map[domain.ComponentType]fan{
	domain.TypePIRMotion: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("OUT", own("7"), colorTeal, "OUT(D%s)"),
	}},
	domain.TypeTiltSwitch: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("OUT", own("4"), colorTeal, "OUT(D%s)"),
	}},
	domain.TypeHeartBeat: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("OUT", own("3"), colorRed, "OUT(D%s)"),
	}},
	domain.TypeFlameSensor: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("AOUT", own("A1"), colorOrange, "AO(%s)"),
	}},
	domain.TypeNTCTemperature: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("OUT", own("A2"), colorOrange, "OUT(%s)"),
	}},
	domain.TypePotentiometer: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("SIG", own("A0"), colorOrange, "SIG(%s)"),
	}},
	domain.TypeSlidePot: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("SIG", own("A1"), colorOrange, "SIG(%s)"),
	}},
	domain.TypePhotoresistor: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("AO", own("A3"), colorOrange, "AO(%s)"),
	}},
	domain.TypeGasSensor: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("AOUT", own("A0"), colorOrange, "AO(%s)"),
	}},
	domain.TypeBuzzer: {Leads: []lead{
		{Lead: "P1", Role: domain.WireSignal, Pin: own("8"), Color: colorPurple, Label: "D%s", Name: "sig"},
		ground("P2"),
	}},
	domain.TypeRGBLED: {Leads: []lead{
		ground("COM"),
		signal("R", own("3"), colorPower, "R(D%s)"),
		signal("G", fixed("5"), colorLime, "G(D%s)"),
		signal("B", fixed("6"), colorSky, "B(D%s)"),
	}},
	domain.TypeNeopixel: {Leads: []lead{
		power("VDD"), ground("VSS"),
		signal("DIN", own("5"), colorPurple, "DIN(D%s)"),
	}},
	domain.TypeDHT22: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("SDA", own("2"), colorTeal, "DATA(D%s)"),
	}},
	domain.TypeIRReceiver: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("DAT", own("11"), colorPurple, "DAT(D%s)"),
	}},
	domain.TypeKY040: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("CLK", own("2"), colorBlue, "CLK(D%s)"),
		signal("DT", fixed("3"), colorOrange, "DT(D%s)"),
		signal("SW", fixed("4"), colorTeal, "SW(D%s)"),
	}},
	domain.TypeAnalogJoystick: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("VERT", fixed("A0"), colorOrange, "VERT(%s)"),
		signal("HORZ", fixed("A1"), colorBlue, "HORZ(%s)"),
		signal("SEL", own("4"), colorTeal, "SEL(D%s)"),
	}},
	domain.TypeRealTimeClock: {Leads: []lead{
		ground("GND"), power("V5"),
		bus("SDA", "A4", colorBlue, "SDA(A4)"),
		bus("SCL", "A5", colorOrange, "SCL(A5)"),
	}},
	domain.TypeServo: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("PWM", own("9"), colorOrange, "PWM(D%s)"),
	}},
	domain.TypeHCSR04: {Leads: []lead{
		power("VCC"), ground("GND"),
		signal("TRIG", own("9"), colorBlue, "TRIG(D%s)"),
		signal("ECHO", nextAfter("10"), colorOrange, "ECHO(D%s)"),
	}},
	domain.TypeLCD1602: {Leads: []lead{
		power("VCC"), ground("GND"),
		bus("SDA", "A4", colorGreen, "SDA(A4)"),
		bus("SCL", "A5", colorYellow, "SCL(A5)"),
	}},
	domain.TypeSSD1306: {Leads: []lead{
		power("VCC"), ground("GND"),
		bus("SDA", "A4", colorGreen, "SDA(A4)"),
		bus("SCL", "A5", colorYellow, "SCL(A5)"),
	}},
	domain.TypeMPU6050: {Leads: []lead{
		power("VCC"), ground("GND"),
		bus("SDA", "A4", colorGreen, "SDA(A4)"),
		bus("SCL", "A5", colorYellow, "SCL(A5)"),
	}},
	domain.TypeLED: {RequiresPin: true, Leads: []lead{
		signal("anode", own(""), colorRed, "D%s"),
		ground("cathode"),
	}},
	domain.TypePushbutton: {RequiresPin: true, Leads: []lead{
		signal("signal1", own(""), colorTeal, "D%s"),
		ground("gnd1"),
	}},
}

// AlwaysWired reports whether a type is drawn even without an assigned pin
func AlwaysWired(t domain.ComponentType) bool {
	f, ok := fans[t]
	return ok && !f.RequiresPin
}

// WiredTypes returns every type that has a wiring entry
func WiredTypes() []domain.ComponentType {
	out := make([]domain.ComponentType, 0, len(fans))
	for t := range fans {
		out = append(out, t)
	}
	return out
}
