package simulation

import (
	"fmt"
	"reflect"
	"testing"
	"unicode/utf8"

	"pinboard/internal/domain"
)

func TestStepButtonDrivesLEDs(t *testing.T) {
	components := []domain.Component{
		{ID: "b1", Type: domain.TypePushbutton, Pin: "2"},
		{ID: "b2", Type: domain.TypePushbutton, Pin: "3"},
		{ID: "l1", Type: domain.TypeLED, Pin: "10"},
		{ID: "l2", Type: domain.TypeLED, Pin: "11"},
	}

	tests := []struct {
		name    string
		buttons domain.ButtonState
		want    domain.PinValues
	}{
		{"released", nil, domain.PinValues{"10": false, "11": false}},
		{"first held", domain.ButtonState{"b1": true}, domain.PinValues{"2": true, "10": true, "11": true}},
		{"second held only", domain.ButtonState{"b2": true}, domain.PinValues{"3": true, "10": false, "11": false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Step(components, tt.buttons, 1)
			if !reflect.DeepEqual(res.PinValues, tt.want) {
				t.Errorf("pins = %v, want %v", res.PinValues, tt.want)
			}
		})
	}
}

func TestStepBlink(t *testing.T) {
	components := []domain.Component{{ID: "l1", Type: domain.TypeLED, Pin: "10"}}
	want := []bool{true, false, false, true, true, false, false, true}
	for i, w := range want {
		n := i + 1
		if got := Step(components, nil, n).PinValues["10"]; got != w {
			t.Errorf("step %d: led = %v, want %v", n, got, w)
		}
	}
}

func TestStepUnboundIgnored(t *testing.T) {
	components := []domain.Component{
		{ID: "b1", Type: domain.TypePushbutton},
		{ID: "l1", Type: domain.TypeLED},
	}
	res := Step(components, domain.ButtonState{"b1": true}, 1)
	if len(res.PinValues) != 0 {
		t.Errorf("expected no pin values, got %v", res.PinValues)
	}
}

func TestStepMPUReading(t *testing.T) {
	components := []domain.Component{{ID: "m", Type: domain.TypeMPU6050}}
	res := Step(components, nil, 10)
	if len(res.Readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(res.Readings))
	}
	r := res.Readings[0]
	if r.ComponentID != "m" || r.Type != domain.TypeMPU6050 {
		t.Errorf("reading not attributed: %+v", r)
	}
	want := "MPU6050: AX=13464 AY=14041 AZ=3179"
	if len(res.Serial) != 1 || res.Serial[0] != want {
		t.Errorf("serial = %v, want [%s]", res.Serial, want)
	}
}

func TestStepSerialStride(t *testing.T) {
	components := []domain.Component{
		{ID: "m", Type: domain.TypeMPU6050},
		{ID: "d", Type: domain.TypeDHT22},
	}
	for n := 1; n <= 20; n++ {
		res := Step(components, nil, n)
		logged := len(res.Serial) > 0
		if logged != (n%SerialEvery == 0) {
			t.Errorf("step %d: logged = %v", n, logged)
		}
		if logged && len(res.Serial) != 2 {
			t.Errorf("step %d: expected a line per sensor, got %v", n, res.Serial)
		}
	}
}

func TestStepDisplay(t *testing.T) {
	tests := []struct {
		name       string
		components []domain.Component
		oled       []string
		lcd        []string
	}{
		{
			name:       "no displays",
			components: []domain.Component{{ID: "m", Type: domain.TypeMPU6050}},
		},
		{
			name:       "oled idle",
			components: []domain.Component{{ID: "o", Type: domain.TypeSSD1306}},
			oled:       []string{"Hello, World!", "Arduino Simulator"},
		},
		{
			name: "oled and lcd with mpu",
			components: []domain.Component{
				{ID: "o", Type: domain.TypeSSD1306},
				{ID: "d", Type: domain.TypeLCD1602},
				{ID: "m", Type: domain.TypeMPU6050},
			},
			oled: []string{"MPU6050 Data", "AX: 13464", "AY: 14041", "AZ: 3179"},
			lcd:  []string{"MPU6050 Data", "AX: 13464"},
		},
		{
			name:       "lcd idle",
			components: []domain.Component{{ID: "d", Type: domain.TypeLCD1602}},
			lcd:        []string{"Hello World!", "Arduino Sim"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Step(tt.components, nil, 10).Display
			if !reflect.DeepEqual(d.OLED, tt.oled) {
				t.Errorf("oled = %q, want %q", d.OLED, tt.oled)
			}
			if !reflect.DeepEqual(d.LCD, tt.lcd) {
				t.Errorf("lcd = %q, want %q", d.LCD, tt.lcd)
			}
		})
	}
}

func TestStepDoesNotModifyInput(t *testing.T) {
	components := []domain.Component{
		{ID: "b1", Type: domain.TypePushbutton, Pin: "2"},
		{ID: "l1", Type: domain.TypeLED, Pin: "10"},
	}
	buttons := domain.ButtonState{"b1": true}
	before := append([]domain.Component(nil), components...)

	Step(components, buttons, 3)

	if !reflect.DeepEqual(components, before) {
		t.Error("components modified")
	}
	if len(buttons) != 1 || !buttons["b1"] {
		t.Error("button state modified")
	}
}

func TestClipLCD(t *testing.T) {
	got := clipLCD([]string{"0123456789abcdefXYZ", "row two", "row three"})
	want := []string{"0123456789abcdef", "row two"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("clipLCD = %q, want %q", got, want)
	}

	got = clipLCD([]string{"Temp: 24.5 °C and more"})
	if len([]rune(got[0])) != LCDColumns || !utf8.ValidString(got[0]) {
		t.Errorf("clipLCD split a rune: %q", got[0])
	}
	if got[0] != "Temp: 24.5 °C an" {
		t.Errorf("clipLCD = %q", got[0])
	}
}

func TestAppendSerialBounded(t *testing.T) {
	var log []string
	for i := 0; i < 60; i++ {
		log = appendSerial(log, []string{fmt.Sprint(i)})
	}
	if len(log) != SerialLimit {
		t.Fatalf("len = %d, want %d", len(log), SerialLimit)
	}
	if log[0] != "10" || log[len(log)-1] != "59" {
		t.Errorf("kept %s..%s, want 10..59", log[0], log[len(log)-1])
	}
}

func TestHasModel(t *testing.T) {
	if !HasModel(domain.TypeMPU6050) || !HasModel(domain.TypeHCSR04) {
		t.Error("expected models for mpu6050 and hc-sr04")
	}
	if HasModel(domain.TypeLED) {
		t.Error("led has no sensor model")
	}
}
