package simulation

import (
	"image"
	"image/png"
	"io"

	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"pinboard/internal/domain"
)

// OLED panel geometry
const (
	OLEDWidth  = 128
	OLEDHeight = 64

	oledBaseline   = 10
	oledLineHeight = 12
)

// LCD character geometry
const (
	LCDColumns = 16
	LCDRows    = 2
)

var (
	oledIdle = []string{"Hello, World!", "Arduino Simulator"}
	lcdIdle  = []string{"Hello World!", "Arduino Sim"}
)

// Display is the text shown on the circuit's displays. A field is empty when
// the circuit has no display of that kind.
type Display struct {
	OLED []string `json:"oled,omitempty"`
	LCD  []string `json:"lcd,omitempty"`
}

// displayFor picks display text: the first sensor reading, or a greeting
func displayFor(components []domain.Component, readings []Reading) Display {
	var d Display
	hasOLED := len(domain.OfType(components, domain.TypeSSD1306)) > 0
	hasLCD := len(domain.OfType(components, domain.TypeLCD1602)) > 0

	if hasOLED {
		d.OLED = oledIdle
		if len(readings) > 0 {
			d.OLED = readings[0].Lines
		}
	}
	if hasLCD {
		d.LCD = clipLCD(lcdIdle)
		if len(readings) > 0 {
			d.LCD = clipLCD(readings[0].Lines)
		}
	}
	return d
}

func clipLCD(lines []string) []string {
	out := make([]string, 0, LCDRows)
	for i := 0; i < len(lines) && i < LCDRows; i++ {
		l := lines[i]
		if r := []rune(l); len(r) > LCDColumns {
			l = string(r[:LCDColumns])
		}
		out = append(out, l)
	}
	return out
}

// Raster draws the OLED text into a monochrome 128x64 buffer, white on
// black. Text past the right edge is clipped.
func (d Display) Raster() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, OLEDWidth, OLEDHeight))
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: basicfont.Face7x13,
	}
	for i, line := range d.OLED {
		drawer.Dot = fixed.P(0, oledBaseline+i*oledLineHeight)
		drawer.DrawString(line)
	}
	return img
}

// WritePNG encodes the OLED raster as PNG
func (d Display) WritePNG(w io.Writer) error {
	if err := png.Encode(w, d.Raster()); err != nil {
		return errors.Wrap(err, "encode display png")
	}
	return nil
}
