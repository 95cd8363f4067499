package domain

// ComponentType is the catalog tag of a placeable circuit element
type ComponentType string

// Boards. Only ControllerType takes part in wiring and code generation; the
// other boards are placeable but inert.
const (
	ControllerType        ComponentType = "arduino-uno"
	TypeArduinoMega       ComponentType = "arduino-mega"
	TypeArduinoNano       ComponentType = "arduino-nano"
	TypeESP32DevKit       ComponentType = "esp32-devkit-v1"
	TypePiPico            ComponentType = "pi-pico"
	TypeFranzininho       ComponentType = "franzininho"
	TypeNanoRP2040Connect ComponentType = "nano-rp2040-connect"
)

// Sensors and inputs
const (
	TypeLED              ComponentType = "led"
	TypePushbutton       ComponentType = "pushbutton"
	TypeMPU6050          ComponentType = "mpu6050"
	TypeDHT22            ComponentType = "dht22"
	TypeHCSR04           ComponentType = "hc-sr04"
	TypePotentiometer    ComponentType = "potentiometer"
	TypeSlidePot         ComponentType = "slide-potentiometer"
	TypeSlideSwitch      ComponentType = "slide-switch"
	TypeDIPSwitch8       ComponentType = "dip-switch-8"
	TypeMembraneKeypad   ComponentType = "membrane-keypad"
	TypeKY040            ComponentType = "ky-040"
	TypePhotoresistor    ComponentType = "photoresistor-sensor"
	TypePIRMotion        ComponentType = "pir-motion-sensor"
	TypeGasSensor        ComponentType = "gas-sensor"
	TypeNTCTemperature   ComponentType = "ntc-temperature-sensor"
	TypeHeartBeat        ComponentType = "heart-beat-sensor"
	TypeTiltSwitch       ComponentType = "tilt-switch"
	TypeFlameSensor      ComponentType = "flame-sensor"
	TypeIRReceiver       ComponentType = "ir-receiver"
	TypeIRRemote         ComponentType = "ir-remote"
	TypeAnalogJoystick   ComponentType = "analog-joystick"
	TypeRotaryDialer     ComponentType = "rotary-dialer"
	TypeRealTimeClock    ComponentType = "ds1307"
)

// Outputs
const (
	TypeSSD1306        ComponentType = "ssd1306"
	TypeSevenSegment   ComponentType = "7segment"
	TypeLCD1602        ComponentType = "lcd1602"
	TypeLCD2004        ComponentType = "lcd2004"
	TypeNeopixel       ComponentType = "neopixel"
	TypeNeopixelMatrix ComponentType = "neopixel-matrix"
	TypeServo          ComponentType = "servo"
	TypeBuzzer         ComponentType = "buzzer"
	TypeRGBLED         ComponentType = "rgb-led"
	TypeLEDRing        ComponentType = "led-ring"
	TypeLEDBarGraph    ComponentType = "led-bar-graph"
	TypeStepperMotor   ComponentType = "stepper-motor"
	TypeBiaxialStepper ComponentType = "biaxial-stepper"
	TypeILI9341        ComponentType = "ili9341"
)

// Helpers
const (
	TypeResistor      ComponentType = "resistor"
	TypeCapacitor     ComponentType = "capacitor"
	TypeRelayModule   ComponentType = "relay-module"
	TypeLogicAnalyzer ComponentType = "logic-analyzer"
)

// Component is a placed circuit element
type Component struct {
	ID       string        `json:"id" yaml:"id"`
	Type     ComponentType `json:"type" yaml:"type"`
	Position Position      `json:"position" yaml:"position"`
	// Pin is a digital label "2".."13", an analog label "A0".."A5", or empty
	// when the component is not bound to a controller pin.
	Pin string `json:"pin,omitempty" yaml:"pin,omitempty"`
}

// IsController reports whether the component is the controller board
func (c Component) IsController() bool {
	return c.Type == ControllerType
}

// HasPin reports whether the component is bound to a controller pin
func (c Component) HasPin() bool {
	return c.Pin != ""
}

// PinOr returns the assigned pin, or fallback when the component is unbound
func (c Component) PinOr(fallback string) string {
	if c.Pin != "" {
		return c.Pin
	}
	return fallback
}

// FindController returns the controller board in components, if any
func FindController(components []Component) (Component, bool) {
	for _, c := range components {
		if c.IsController() {
			return c, true
		}
	}
	return Component{}, false
}

// OfType returns the components of type t, in list order
func OfType(components []Component, t ComponentType) []Component {
	var out []Component
	for _, c := range components {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// PinnedOfType returns the components of type t that have a pin assigned
func PinnedOfType(components []Component, t ComponentType) []Component {
	var out []Component
	for _, c := range components {
		if c.Type == t && c.Pin != "" {
			out = append(out, c)
		}
	}
	return out
}

// UsedPins returns the set of pins assigned to any component
func UsedPins(components []Component) map[string]bool {
	used := make(map[string]bool)
	for _, c := range components {
		if c.Pin != "" {
			used[c.Pin] = true
		}
	}
	return used
}

// ButtonState maps a pushbutton component ID to whether it is currently held
type ButtonState map[string]bool

// Clone returns an independent copy
func (b ButtonState) Clone() ButtonState {
	out := make(ButtonState, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// PinValues maps a pin label to its logic level. It is derived state,
// recomputed every simulation tick.
type PinValues map[string]bool
