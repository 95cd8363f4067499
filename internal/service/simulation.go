package service

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"pinboard/internal/domain"
	"pinboard/internal/simulation"
	"pinboard/internal/store"
)

// SimulationService runs the simulation clock over the circuit store and
// publishes its frames
type SimulationService struct {
	ctx      context.Context
	store    *store.Store
	clock    *simulation.Clock
	eventBus *EventBus
	logger   *log.Logger
}

// NewSimulationService creates a stopped simulation. Runs end when ctx does.
func NewSimulationService(ctx context.Context, st *store.Store, eventBus *EventBus, logger *log.Logger, opts ...simulation.Option) *SimulationService {
	if logger == nil {
		logger = log.Default()
	}
	s := &SimulationService{
		ctx:      ctx,
		store:    st,
		eventBus: eventBus,
		logger:   logger,
	}
	opts = append(opts, simulation.WithSink(s.publishFrame), simulation.WithLogger(logger))
	s.clock = simulation.NewClock(st, opts...)
	return s
}

func (s *SimulationService) publishFrame(f simulation.Frame) {
	s.eventBus.Publish(Event{Type: EventSimulationFrame, Payload: f})
}

// Start begins a run. Starting a running simulation changes nothing.
func (s *SimulationService) Start() simulation.Frame {
	if s.clock.Start(s.ctx) {
		s.eventBus.Publish(Event{Type: EventSimulationStarted, Payload: s.clock.Frame()})
	}
	return s.clock.Frame()
}

// Stop ends the run and clears pin values
func (s *SimulationService) Stop() simulation.Frame {
	if s.clock.Stop() {
		s.eventBus.Publish(Event{Type: EventSimulationStopped, Payload: s.clock.Frame()})
	}
	return s.clock.Frame()
}

// Frame returns the latest frame
func (s *SimulationService) Frame() simulation.Frame {
	return s.clock.Frame()
}

// Running reports whether the simulation is running
func (s *SimulationService) Running() bool {
	return s.clock.Running()
}

// PinValues returns the latest pin values
func (s *SimulationService) PinValues() domain.PinValues {
	return s.clock.Frame().PinValues
}

// SetButton records whether pushbutton id is held. The state is read on the
// next tick while running.
func (s *SimulationService) SetButton(id string, held bool) error {
	comp, ok := s.store.Get(id)
	if !ok {
		return errors.Wrapf(ErrNotFound, "component %s", id)
	}
	if comp.Type != domain.TypePushbutton {
		return errors.Wrapf(ErrInvalid, "component %s is not a pushbutton", id)
	}
	s.store.SetButtonHeld(id, held)
	return nil
}

// WriteDisplayPNG renders the OLED panel of the latest frame
func (s *SimulationService) WriteDisplayPNG(w io.Writer) error {
	return s.clock.Frame().Display.WritePNG(w)
}
