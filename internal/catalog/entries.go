package catalog

import "pinboard/internal/domain"

type leads = map[string]domain.Position

func pt(x, y float64) domain.Position { return domain.Position{X: x, Y: y} }

// controllerPins are the controller board's pin offsets
var controllerPins = map[string]domain.Position{
	"2":    pt(243, 12),
	"3":    pt(233, 12),
	"4":    pt(223, 12),
	"5":    pt(213, 12),
	"6":    pt(203, 12),
	"7":    pt(193, 12),
	"8":    pt(178, 12),
	"9":    pt(168, 12),
	"10":   pt(158, 12),
	"11":   pt(148, 12),
	"12":   pt(138, 12),
	"13":   pt(128, 12),
	"GND1": pt(175, 195),
	"GND2": pt(185, 195),
	"5V":   pt(165, 195),
	"3.3V": pt(155, 195),
	"A4":   pt(251, 195),
	"A5":   pt(261, 195),
}

// ControllerPinOffset returns the offset of a controller pin from the board's
// top-left corner. Analog inputs other than the I2C pair have no header offset.
func ControllerPinOffset(pin string) (domain.Position, bool) {
	p, ok := controllerPins[pin]
	return p, ok
}

func builtinEntries() []Entry {
	return []Entry{
		{Type: domain.ControllerType, Label: "Arduino Uno", Category: CategoryBoard, Element: "wokwi-arduino-uno"},
		{Type: domain.TypeLED, Label: "LED", Category: CategoryOutput, Element: "wokwi-led",
			PinBound: true, PreferredPin: "10",
			Leads: leads{"anode": pt(15, 55), "cathode": pt(25, 55)}},
		{Type: domain.TypePushbutton, Label: "Push Button", Category: CategoryInput, Element: "wokwi-pushbutton",
			PinBound: true, PreferredPin: "2",
			Leads: leads{"signal1": pt(8, 40), "signal2": pt(32, 40), "gnd1": pt(8, 8), "gnd2": pt(32, 8)}},
		{Type: domain.TypeMPU6050, Label: "MPU6050", Category: CategoryInput, Element: "wokwi-mpu6050",
			Leads: leads{"VCC": pt(78.4, 9.78), "GND": pt(68.8, 9.78), "SCL": pt(59.2, 9.78), "SDA": pt(49.6, 9.78)}},
		{Type: domain.TypeSSD1306, Label: "OLED Display", Category: CategoryOutput, Element: "wokwi-ssd1306",
			Leads: leads{"SDA": pt(40.5, 16.5), "SCL": pt(49.5, 16.5), "DC": pt(58.5, 16.5), "RST": pt(68.5, 16.5),
				"CS": pt(78.5, 16.5), "VCC": pt(97.5, 16.5), "GND": pt(107.5, 16)}},

		{Type: domain.TypeArduinoMega, Label: "Arduino Mega", Category: CategoryBoard, Element: "wokwi-arduino-mega"},
		{Type: domain.TypeArduinoNano, Label: "Arduino Nano", Category: CategoryBoard, Element: "wokwi-arduino-nano"},
		{Type: domain.TypeESP32DevKit, Label: "ESP32", Category: CategoryBoard, Element: "wokwi-esp32-devkit-v1"},
		{Type: domain.TypePiPico, Label: "Pi Pico", Category: CategoryBoard, Element: "wokwi-pi-pico"},
		{Type: domain.TypeFranzininho, Label: "Franzininho", Category: CategoryBoard, Element: "wokwi-franzininho"},
		{Type: domain.TypeNanoRP2040Connect, Label: "RP2040 Connect", Category: CategoryBoard, Element: "wokwi-nano-rp2040-connect"},

		{Type: domain.TypeDHT22, Label: "DHT22", Category: CategoryInput, Element: "wokwi-dht22",
			Leads: leads{"VCC": pt(19, 118.9), "SDA": pt(28.5, 118.9), "GND": pt(47.8, 118.9)}},
		{Type: domain.TypeHCSR04, Label: "Ultrasonic", Category: CategoryInput, Element: "wokwi-hc-sr04",
			Leads: leads{"VCC": pt(75.3, 98.5), "TRIG": pt(85.3, 98.5), "ECHO": pt(95.3, 98.5), "GND": pt(105.3, 98.5)}},
		{Type: domain.TypePotentiometer, Label: "Potentiometer", Category: CategoryInput, Element: "wokwi-potentiometer",
			Leads: leads{"GND": pt(33, 72.5), "SIG": pt(43, 72.5), "VCC": pt(53, 72.5)}},
		{Type: domain.TypeSlidePot, Label: "Slide Pot", Category: CategoryInput, Element: "wokwi-slide-potentiometer",
			Leads: leads{"GND": pt(33, 72.5), "SIG": pt(43, 72.5), "VCC": pt(53, 72.5)}},
		{Type: domain.TypeSlideSwitch, Label: "Slide Switch", Category: CategoryInput, Element: "wokwi-slide-switch"},
		{Type: domain.TypeDIPSwitch8, Label: "DIP Switch 8", Category: CategoryInput, Element: "wokwi-dip-switch-8"},
		{Type: domain.TypeMembraneKeypad, Label: "Keypad", Category: CategoryInput, Element: "wokwi-membrane-keypad"},
		{Type: domain.TypeKY040, Label: "Rotary Encoder", Category: CategoryInput, Element: "wokwi-ky-040",
			Leads: leads{"CLK": pt(120, 11.9), "DT": pt(120, 21.4), "SW": pt(120, 31), "VCC": pt(120, 40.3), "GND": pt(120, 49.5)}},
		{Type: domain.TypePhotoresistor, Label: "Photoresistor", Category: CategoryInput, Element: "wokwi-photoresistor-sensor",
			Leads: leads{"VCC": pt(176, 20), "GND": pt(176, 30), "DO": pt(176, 39.8), "AO": pt(176, 49.5)}},
		{Type: domain.TypePIRMotion, Label: "Motion Sensor", Category: CategoryInput, Element: "wokwi-pir-motion-sensor",
			Leads: leads{"VCC": pt(40.2, 96), "OUT": pt(49.9, 96), "GND": pt(59.6, 96)}},
		{Type: domain.TypeGasSensor, Label: "Gas Sensor", Category: CategoryInput, Element: "wokwi-gas-sensor",
			Leads: leads{"AOUT": pt(141, 20.5), "DOUT": pt(141, 30.4), "GND": pt(141, 40.5), "VCC": pt(141, 50.2)}},
		{Type: domain.TypeNTCTemperature, Label: "NTC Temp", Category: CategoryInput, Element: "wokwi-ntc-temperature-sensor",
			Leads: leads{"GND": pt(139, 30.2), "VCC": pt(139, 39.8), "OUT": pt(139, 49.5)}},
		{Type: domain.TypeHeartBeat, Label: "Heart Beat", Category: CategoryInput, Element: "wokwi-heart-beat-sensor",
			Leads: leads{"GND": pt(91, 21.8), "VCC": pt(91, 31.5), "OUT": pt(91, 41.5)}},
		{Type: domain.TypeTiltSwitch, Label: "Tilt Switch", Category: CategoryInput, Element: "wokwi-tilt-switch",
			Leads: leads{"GND": pt(92, 22), "VCC": pt(92, 31.8), "OUT": pt(92, 41.5)}},
		{Type: domain.TypeIRReceiver, Label: "IR Receiver", Category: CategoryInput, Element: "wokwi-ir-receiver",
			Leads: leads{"GND": pt(25, 91.75), "VCC": pt(34.6, 91.75), "DAT": pt(44.2, 91.75)}},
		{Type: domain.TypeIRRemote, Label: "IR Remote", Category: CategoryInput, Element: "wokwi-ir-remote"},
		{Type: domain.TypeAnalogJoystick, Label: "Joystick", Category: CategoryInput, Element: "wokwi-analog-joystick",
			Leads: leads{"VCC": pt(37, 119.8), "VERT": pt(46.6, 119.8), "HORZ": pt(56.2, 119.8), "SEL": pt(65.8, 119.8), "GND": pt(75.4, 119.8)}},
		{Type: domain.TypeRotaryDialer, Label: "Rotary Dialer", Category: CategoryInput, Element: "wokwi-rotary-dialer"},

		{Type: domain.TypeSevenSegment, Label: "7-Segment", Category: CategoryOutput, Element: "wokwi-7segment"},
		{Type: domain.TypeLCD1602, Label: "LCD 16x2", Category: CategoryOutput, Element: "wokwi-lcd1602",
			Leads: leads{"GND": pt(8, 36), "VCC": pt(8, 45.5), "SDA": pt(8, 55), "SCL": pt(8, 64.5)}},
		{Type: domain.TypeLCD2004, Label: "LCD 20x4", Category: CategoryOutput, Element: "wokwi-lcd2004"},
		{Type: domain.TypeNeopixel, Label: "NeoPixel", Category: CategoryOutput, Element: "wokwi-neopixel",
			Leads: leads{"VDD": pt(5, 7.5), "DOUT": pt(5, 18), "VSS": pt(25, 18), "DIN": pt(25, 7.5)}},
		{Type: domain.TypeNeopixelMatrix, Label: "NeoPixel Matrix", Category: CategoryOutput, Element: "wokwi-neopixel-matrix"},
		{Type: domain.TypeServo, Label: "Servo", Category: CategoryOutput, Element: "wokwi-servo",
			Leads: leads{"GND": pt(4, 54), "VCC": pt(4, 63.5), "PWM": pt(4, 73)}},
		{Type: domain.TypeBuzzer, Label: "Buzzer", Category: CategoryOutput, Element: "wokwi-buzzer",
			Leads: leads{"P1": pt(31, 88), "P2": pt(41, 88)}},
		{Type: domain.TypeLEDRing, Label: "LED Ring", Category: CategoryOutput, Element: "wokwi-neopixel-ring"},
		{Type: domain.TypeLEDBarGraph, Label: "Bar Graph", Category: CategoryOutput, Element: "wokwi-led-bar-graph"},
		{Type: domain.TypeStepperMotor, Label: "Stepper", Category: CategoryOutput, Element: "wokwi-stepper-motor"},
		{Type: domain.TypeBiaxialStepper, Label: "Biaxial Stepper", Category: CategoryOutput, Element: "wokwi-biaxial-stepper"},
		{Type: domain.TypeILI9341, Label: "TFT Display", Category: CategoryOutput, Element: "wokwi-ili9341"},

		{Type: domain.TypeResistor, Label: "Resistor", Category: CategoryHelper, Element: "wokwi-resistor"},
		{Type: domain.TypeCapacitor, Label: "Capacitor", Category: CategoryHelper, Element: "wokwi-capacitor"},
		{Type: domain.TypeRelayModule, Label: "Relay", Category: CategoryHelper, Element: "wokwi-ks2e-m-dc5"},
		{Type: domain.TypeLogicAnalyzer, Label: "Logic Analyzer", Category: CategoryHelper, Element: "wokwi-logic-analyzer"},

		// Wired types that the palette does not offer
		{Type: domain.TypeFlameSensor, Label: "Flame Sensor", Category: CategoryInput, Element: "wokwi-flame-sensor", Hidden: true,
			Leads: leads{"VCC": pt(203, 18.6), "GND": pt(203, 28.3), "DOUT": pt(203, 38), "AOUT": pt(203, 47.7)}},
		{Type: domain.TypeRGBLED, Label: "RGB LED", Category: CategoryOutput, Element: "wokwi-rgb-led", Hidden: true,
			Leads: leads{"R": pt(12.5, 48), "COM": pt(22, 58), "G": pt(30.4, 48), "B": pt(39.7, 48)}},
		{Type: domain.TypeRealTimeClock, Label: "RTC DS1307", Category: CategoryInput, Element: "wokwi-ds1307", Hidden: true,
			Leads: leads{"GND": pt(13.5, 19), "V5": pt(13.5, 29), "SDA": pt(13.5, 38.5), "SCL": pt(13.5, 48)}},
	}
}
