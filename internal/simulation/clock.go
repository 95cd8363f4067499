// Package simulation animates a placed circuit on a fixed tick.
//
// Each tick reads the circuit from its source, computes pin values and mock
// sensor readings with Step, and hands the resulting Frame to a sink. The
// clock never writes to the circuit.
package simulation

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"pinboard/internal/domain"
	"pinboard/internal/store"
)

// DefaultInterval is the wall-clock period between ticks
const DefaultInterval = 50 * time.Millisecond

// Source supplies the circuit to animate
type Source interface {
	Snapshot() store.Snapshot
}

// Frame is the observable state of the clock after a tick
type Frame struct {
	Running   bool             `json:"running"`
	Step      int              `json:"step"`
	Time      float64          `json:"time"`
	PinValues domain.PinValues `json:"pin_values"`
	Readings  []Reading        `json:"readings,omitempty"`
	Serial    []string         `json:"serial"`
	Display   Display          `json:"display"`
}

// Clock drives the simulation. It starts Stopped.
type Clock struct {
	source   Source
	interval time.Duration
	sink     func(Frame)
	logger   *log.Logger

	mu       sync.Mutex
	running  bool
	step     int
	pins     domain.PinValues
	readings []Reading
	serial   []string
	display  Display
	cancel   context.CancelFunc
	done     chan struct{}
}

// Option configures a Clock
type Option func(*Clock)

// WithInterval sets the tick period
func WithInterval(d time.Duration) Option {
	return func(c *Clock) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithSink sets the function that receives every frame. The sink runs on the
// ticking goroutine and must not call Stop.
func WithSink(fn func(Frame)) Option {
	return func(c *Clock) {
		c.sink = fn
	}
}

// WithLogger sets the logger
func WithLogger(l *log.Logger) Option {
	return func(c *Clock) {
		c.logger = l
	}
}

// NewClock creates a stopped clock over source
func NewClock(source Source, opts ...Option) *Clock {
	c := &Clock{
		source:   source,
		interval: DefaultInterval,
		logger:   log.Default(),
		pins:     make(domain.PinValues),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Running reports whether the clock is ticking
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Start clears the pin values and serial log and begins ticking until Stop
// is called or ctx ends. It returns false if the clock was already running.
func (c *Clock) Start(ctx context.Context) bool {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return false
	}
	c.running = true
	c.step = 0
	c.pins = make(domain.PinValues)
	c.readings = nil
	c.serial = nil
	c.display = Display{}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done
	c.mu.Unlock()

	c.logger.Info("simulation started", "interval", c.interval)
	go c.run(runCtx, done)
	return true
}

// Stop halts ticking and clears the pin values. The serial log is kept. It
// returns false if the clock was not running. No frame is delivered after
// Stop returns.
func (c *Clock) Stop() bool {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return false
	}
	c.halt()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	cancel()
	<-done
	c.logger.Info("simulation stopped")
	return true
}

// halt moves to Stopped. Callers hold mu.
func (c *Clock) halt() {
	c.running = false
	c.pins = make(domain.PinValues)
}

// Tick advances the simulation by one step and delivers the frame. It does
// nothing and returns false while stopped.
func (c *Clock) Tick() (Frame, bool) {
	snap := c.source.Snapshot()

	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return Frame{}, false
	}
	c.step++
	res := Step(snap.Components, snap.Buttons, c.step)
	c.pins = res.PinValues
	c.readings = res.Readings
	c.display = res.Display
	c.serial = appendSerial(c.serial, res.Serial)
	f := c.frameLocked()
	c.mu.Unlock()

	if c.sink != nil {
		c.sink(f)
	}
	return f, true
}

// Frame returns the current state without advancing
func (c *Clock) Frame() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frameLocked()
}

func (c *Clock) frameLocked() Frame {
	pins := make(domain.PinValues, len(c.pins))
	for k, v := range c.pins {
		pins[k] = v
	}
	return Frame{
		Running:   c.running,
		Step:      c.step,
		Time:      TimeAt(c.step),
		PinValues: pins,
		Readings:  append([]Reading(nil), c.readings...),
		Serial:    append([]string(nil), c.serial...),
		Display:   c.display,
	}
}

func (c *Clock) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.mu.Lock()
			// Stop clears done before cancelling; a parent cancellation
			// leaves it set and must halt here.
			if c.done == done {
				c.halt()
				c.cancel()
				c.cancel, c.done = nil, nil
				c.logger.Debug("simulation context ended", "err", ctx.Err())
			}
			c.mu.Unlock()
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}
