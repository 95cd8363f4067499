package simulation

import (
	"pinboard/internal/domain"
)

const (
	// TickSeconds is the simulated time one step advances
	TickSeconds = 0.1
	// SerialEvery is the step stride between serial log writes
	SerialEvery = 5
	// SerialLimit bounds the serial log to its most recent lines
	SerialLimit = 50
)

// Result is the outcome of a single step
type Result struct {
	PinValues domain.PinValues
	Readings  []Reading
	Display   Display
	// Serial holds the lines this step appends to the serial log
	Serial []string
}

// TimeAt returns the simulated time after n steps
func TimeAt(n int) float64 {
	return float64(n) * TickSeconds
}

// Step computes step n (n >= 1) for a circuit. It reads but never modifies
// its arguments.
//
// Held buttons drive their pin high. When the circuit has both LEDs and
// buttons, every LED follows the first button; LEDs without buttons blink
// with a 0.4 s period.
func Step(components []domain.Component, buttons domain.ButtonState, n int) Result {
	t := TimeAt(n)
	res := Result{PinValues: make(domain.PinValues)}

	btns := domain.PinnedOfType(components, domain.TypePushbutton)
	leds := domain.PinnedOfType(components, domain.TypeLED)

	for _, b := range btns {
		if buttons[b.ID] {
			res.PinValues[b.Pin] = true
		}
	}

	switch {
	case len(btns) > 0 && len(leds) > 0:
		signal := res.PinValues[btns[0].Pin]
		for _, l := range leds {
			res.PinValues[l.Pin] = signal
		}
	case len(leds) > 0:
		// floor(t*5) is n/2 for whole steps
		blink := (n/2)%2 == 0
		for _, l := range leds {
			res.PinValues[l.Pin] = blink
		}
	}

	for _, c := range components {
		model, ok := sensorModels[c.Type]
		if !ok {
			continue
		}
		r := model(t)
		r.ComponentID = c.ID
		r.Type = c.Type
		res.Readings = append(res.Readings, r)
	}

	if n%SerialEvery == 0 {
		for _, r := range res.Readings {
			res.Serial = append(res.Serial, r.Serial)
		}
	}

	res.Display = displayFor(components, res.Readings)
	return res
}

// appendSerial adds lines to log, keeping at most SerialLimit entries
func appendSerial(log, lines []string) []string {
	log = append(log, lines...)
	if len(log) > SerialLimit {
		log = append([]string(nil), log[len(log)-SerialLimit:]...)
	}
	return log
}
