package firmware

import (
	"fmt"
	"strconv"
	"strings"
)

// bucket names one group of same-type components, or a behavior that spans
// several groups
type bucket int

const (
	bucketMPU bucket = iota
	bucketOLED
	bucketUltrasonic
	bucketServo
	bucketLCD
	bucketLED
	bucketButton
	bucketIndicator
	bucketLCDCounter
)

type emitFunc func(b *strings.Builder, p *plan)

// fragment is the code a bucket contributes to each section
type fragment struct {
	active  func(p *plan) bool
	declare emitFunc
	pins    emitFunc
	setup   emitFunc
	loop    emitFunc
}

// Section orders
var (
	declareOrder = []bucket{bucketMPU, bucketOLED, bucketUltrasonic, bucketServo, bucketLCD}
	pinOrder     = []bucket{bucketLED, bucketButton}
	setupOrder   = []bucket{bucketMPU, bucketOLED, bucketUltrasonic, bucketServo, bucketLCD, bucketLED, bucketButton}
	loopOrder    = []bucket{bucketMPU, bucketUltrasonic, bucketServo, bucketIndicator, bucketLCDCounter}
)

var fragments = map[bucket]fragment{
	bucketMPU: {
		active:  func(p *plan) bool { return len(p.mpus) > 0 },
		declare: declareMPU,
		setup:   setupMPU,
		loop:    loopMPU,
	},
	bucketOLED: {
		active:  func(p *plan) bool { return len(p.oleds) > 0 },
		declare: declareOLED,
		setup:   setupOLED,
	},
	bucketUltrasonic: {
		active:  func(p *plan) bool { return len(p.ultrasonics) > 0 },
		declare: declareUltrasonic,
		setup:   setupUltrasonic,
		loop:    loopUltrasonic,
	},
	bucketServo: {
		active:  func(p *plan) bool { return len(p.servos) > 0 },
		declare: declareServo,
		setup:   setupServo,
		loop:    loopServo,
	},
	bucketLCD: {
		active:  func(p *plan) bool { return len(p.lcds) > 0 },
		declare: declareLCD,
		setup:   setupLCD,
	},
	bucketLED: {
		active: func(p *plan) bool { return len(p.leds) > 0 },
		pins:   pinsLED,
		setup:  setupLED,
	},
	bucketButton: {
		active: func(p *plan) bool { return len(p.buttons) > 0 },
		pins:   pinsButton,
		setup:  setupButton,
	},
	bucketIndicator: {
		active: func(p *plan) bool { return len(p.leds) > 0 },
		loop:   loopIndicator,
	},
	bucketLCDCounter: {
		active: func(p *plan) bool { return len(p.lcds) > 0 && len(p.mpus) == 0 },
		loop:   loopLCDCounter,
	},
}

func includeWire(b *strings.Builder, p *plan) {
	if !p.wireIncluded {
		b.WriteString("#include <Wire.h>\n")
		p.wireIncluded = true
	}
}

// Declarations

func declareMPU(b *strings.Builder, p *plan) {
	includeWire(b, p)
	b.WriteString("#include <MPU6050.h>\n\n")
	b.WriteString("MPU6050 mpu;\n\n")
}

func declareOLED(b *strings.Builder, p *plan) {
	includeWire(b, p)
	b.WriteString("#include <Adafruit_GFX.h>\n")
	b.WriteString("#include <Adafruit_SSD1306.h>\n\n")
	b.WriteString("#define SCREEN_WIDTH 128\n")
	b.WriteString("#define SCREEN_HEIGHT 64\n")
	b.WriteString("#define OLED_RESET    -1\n")
	b.WriteString("Adafruit_SSD1306 display(SCREEN_WIDTH, SCREEN_HEIGHT, &Wire, OLED_RESET);\n\n")
}

func declareUltrasonic(b *strings.Builder, p *plan) {
	b.WriteString("// Ultrasonic Sensor Pins\n")
	for i, us := range p.ultrasonics {
		trig := us.PinOr("9")
		fmt.Fprintf(b, "const int trigPin%s = %s;\n", suffix(i), trig)
		fmt.Fprintf(b, "const int echoPin%s = %s;\n", suffix(i), echoFor(trig))
	}
	b.WriteString("long duration;\nint distance;\n\n")
}

// echoFor places the echo pin one above trig
func echoFor(trig string) string {
	n, err := strconv.Atoi(trig)
	if err != nil {
		return "10"
	}
	return strconv.Itoa(n + 1)
}

func declareServo(b *strings.Builder, p *plan) {
	b.WriteString("#include <Servo.h>\n")
	for i := range p.servos {
		fmt.Fprintf(b, "Servo myServo%s;\n", suffix(i))
	}
	b.WriteString("int servoAngle = 0;\nint servoDir = 1;\n\n")
}

func declareLCD(b *strings.Builder, p *plan) {
	includeWire(b, p)
	b.WriteString("#include <LiquidCrystal_I2C.h>\n\n")
	b.WriteString("LiquidCrystal_I2C lcd(0x27, 16, 2);  // I2C address 0x27, 16 cols, 2 rows\n\n")
}

// Pin constants

func pinsLED(b *strings.Builder, p *plan) {
	for i, led := range p.leds {
		fmt.Fprintf(b, "const int ledPin%s = %s;  // LED\n", suffix(i), led.Pin)
	}
}

func pinsButton(b *strings.Builder, p *plan) {
	for i, btn := range p.buttons {
		fmt.Fprintf(b, "const int buttonPin%s = %s;  // Push Button\n", suffix(i), btn.Pin)
	}
}

// setup()

func setupMPU(b *strings.Builder, p *plan) {
	b.WriteString("  Wire.begin();\n")
	b.WriteString("  mpu.initialize();\n")
	b.WriteString("  Serial.println(\"MPU6050 Initialized\");\n")
}

func setupOLED(b *strings.Builder, p *plan) {
	if len(p.mpus) == 0 && len(p.lcds) == 0 {
		b.WriteString("  Wire.begin();\n")
	}
	b.WriteString("  if(!display.begin(SSD1306_SWITCHCAPVCC, 0x3C)) {\n")
	b.WriteString("    Serial.println(F(\"SSD1306 allocation failed\"));\n")
	b.WriteString("    for(;;);\n")
	b.WriteString("  }\n")
	b.WriteString("  display.display();\n")
	b.WriteString("  delay(2000);\n")
	b.WriteString("  display.clearDisplay();\n")
	b.WriteString("  display.setTextSize(1);\n")
	b.WriteString("  display.setTextColor(SSD1306_WHITE);\n")
	b.WriteString("  display.setCursor(0, 0);\n")
	b.WriteString("  display.println(\"Hello, World!\");\n")
	b.WriteString("  display.display();\n")
}

func setupUltrasonic(b *strings.Builder, p *plan) {
	for i := range p.ultrasonics {
		fmt.Fprintf(b, "  pinMode(trigPin%s, OUTPUT);\n", suffix(i))
		fmt.Fprintf(b, "  pinMode(echoPin%s, INPUT);\n", suffix(i))
	}
}

func setupServo(b *strings.Builder, p *plan) {
	for i, s := range p.servos {
		fmt.Fprintf(b, "  myServo%s.attach(%s);\n", suffix(i), s.PinOr("9"))
	}
}

func setupLCD(b *strings.Builder, p *plan) {
	if len(p.mpus) == 0 && len(p.oleds) == 0 {
		b.WriteString("  Wire.begin();\n")
	}
	b.WriteString("  lcd.init();\n")
	b.WriteString("  lcd.backlight();\n")
	b.WriteString("  lcd.setCursor(0, 0);\n")
	b.WriteString("  lcd.print(\"Hello World!\");\n")
	b.WriteString("  lcd.setCursor(0, 1);\n")
	b.WriteString("  lcd.print(\"Arduino Sim\");\n")
}

func setupLED(b *strings.Builder, p *plan) {
	for i := range p.leds {
		fmt.Fprintf(b, "  pinMode(ledPin%s, OUTPUT);\n", suffix(i))
	}
}

func setupButton(b *strings.Builder, p *plan) {
	for i := range p.buttons {
		fmt.Fprintf(b, "  pinMode(buttonPin%s, INPUT);\n", suffix(i))
	}
}

// loop()

func loopMPU(b *strings.Builder, p *plan) {
	b.WriteString("  // MPU6050 Read\n")
	b.WriteString("  int16_t ax, ay, az;\n")
	b.WriteString("  int16_t gx, gy, gz;\n")
	b.WriteString("  mpu.getMotion6(&ax, &ay, &az, &gx, &gy, &gz);\n")
	b.WriteString("  Serial.print(\"AX: \"); Serial.print(ax);\n")
	b.WriteString("  Serial.print(\" AY: \"); Serial.print(ay);\n")
	b.WriteString("  Serial.print(\" AZ: \"); Serial.println(az);\n\n")

	if len(p.oleds) > 0 {
		b.WriteString("  // Display on OLED\n")
		b.WriteString("  display.clearDisplay();\n")
		b.WriteString("  display.setCursor(0, 0);\n")
		b.WriteString("  display.println(\"MPU6050 Data\");\n")
		b.WriteString("  display.print(\"AX: \"); display.println(ax);\n")
		b.WriteString("  display.print(\"AY: \"); display.println(ay);\n")
		b.WriteString("  display.print(\"AZ: \"); display.println(az);\n")
		b.WriteString("  display.display();\n")
	}

	if len(p.lcds) > 0 {
		b.WriteString("  // Display MPU data on LCD\n")
		b.WriteString("  lcd.clear();\n")
		b.WriteString("  lcd.setCursor(0, 0);\n")
		b.WriteString("  lcd.print(\"AX:\"); lcd.print(ax);\n")
		b.WriteString("  lcd.setCursor(8, 0);\n")
		b.WriteString("  lcd.print(\"AY:\"); lcd.print(ay);\n")
		b.WriteString("  lcd.setCursor(0, 1);\n")
		b.WriteString("  lcd.print(\"AZ:\"); lcd.print(az);\n")
	}
	b.WriteString("  delay(100);\n\n")
}

func loopUltrasonic(b *strings.Builder, p *plan) {
	b.WriteString("  // Ultrasonic Distance Measurement\n")
	b.WriteString("  digitalWrite(trigPin, LOW);\n")
	b.WriteString("  delayMicroseconds(2);\n")
	b.WriteString("  digitalWrite(trigPin, HIGH);\n")
	b.WriteString("  delayMicroseconds(10);\n")
	b.WriteString("  digitalWrite(trigPin, LOW);\n")
	b.WriteString("  duration = pulseIn(echoPin, HIGH);\n")
	b.WriteString("  distance = duration * 0.034 / 2;\n")
	b.WriteString("  Serial.print(\"Distance: \");\n")
	b.WriteString("  Serial.print(distance);\n")
	b.WriteString("  Serial.println(\" cm\");\n")
	if len(p.lcds) > 0 {
		b.WriteString("  lcd.setCursor(0, 1);\n")
		b.WriteString("  lcd.print(\"Dist: \");\n")
		b.WriteString("  lcd.print(distance);\n")
		b.WriteString("  lcd.print(\" cm   \");\n")
	}
	if len(p.oleds) > 0 {
		b.WriteString("  display.clearDisplay();\n")
		b.WriteString("  display.setCursor(0, 0);\n")
		b.WriteString("  display.println(\"Ultrasonic\");\n")
		b.WriteString("  display.print(\"Dist: \");\n")
		b.WriteString("  display.print(distance);\n")
		b.WriteString("  display.println(\" cm\");\n")
		b.WriteString("  display.display();\n")
	}
	b.WriteString("  delay(100);\n")
}

func loopServo(b *strings.Builder, p *plan) {
	b.WriteString("  // Servo Sweep\n")
	b.WriteString("  myServo.write(servoAngle);\n")
	b.WriteString("  servoAngle += servoDir;\n")
	b.WriteString("  if (servoAngle >= 180 || servoAngle <= 0) servoDir = -servoDir;\n")
	b.WriteString("  Serial.print(\"Servo Angle: \");\n")
	b.WriteString("  Serial.println(servoAngle);\n")
	b.WriteString("  delay(15);\n")
}

// loopIndicator drives the LEDs from the buttons, or blinks them when there
// are no buttons
func loopIndicator(b *strings.Builder, p *plan) {
	if len(p.buttons) == 0 {
		b.WriteString("  // Blink LED\n")
		writeLEDs(b, p, "  ", "HIGH")
		b.WriteString("  delay(1000);\n")
		writeLEDs(b, p, "  ", "LOW")
		b.WriteString("  delay(1000);\n")
		return
	}

	b.WriteString("  // Read button states\n")
	conds := make([]string, len(p.buttons))
	for i := range p.buttons {
		fmt.Fprintf(b, "  int buttonState%s = digitalRead(buttonPin%s);\n", suffix(i), suffix(i))
		conds[i] = "buttonState" + suffix(i) + " == HIGH"
	}
	b.WriteString("\n")

	b.WriteString("  // Control LED based on button(s)\n")
	fmt.Fprintf(b, "  if (%s) {\n", strings.Join(conds, " || "))
	writeLEDs(b, p, "    ", "HIGH")
	b.WriteString("  } else {\n")
	writeLEDs(b, p, "    ", "LOW")
	b.WriteString("  }\n")
}

func writeLEDs(b *strings.Builder, p *plan, indent, level string) {
	for i := range p.leds {
		fmt.Fprintf(b, "%sdigitalWrite(ledPin%s, %s);\n", indent, suffix(i), level)
	}
}

func loopLCDCounter(b *strings.Builder, p *plan) {
	b.WriteString("  // LCD Counter Demo\n")
	b.WriteString("  static unsigned long lastUpdate = 0;\n")
	b.WriteString("  static int counter = 0;\n")
	b.WriteString("  if (millis() - lastUpdate > 1000) {\n")
	b.WriteString("    lastUpdate = millis();\n")
	b.WriteString("    counter++;\n")
	b.WriteString("    lcd.setCursor(0, 1);\n")
	b.WriteString("    lcd.print(\"Count: \");\n")
	b.WriteString("    lcd.print(counter);\n")
	b.WriteString("    lcd.print(\"   \");\n")
	b.WriteString("  }\n")
}
