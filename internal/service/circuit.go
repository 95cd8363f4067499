package service

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"

	"pinboard/internal/catalog"
	"pinboard/internal/codec"
	"pinboard/internal/domain"
	"pinboard/internal/firmware"
	"pinboard/internal/pins"
	"pinboard/internal/repository"
	"pinboard/internal/store"
	"pinboard/internal/wiring"
)

// workspaceKey is the metadata key of the autosaved working circuit
const workspaceKey = "workspace"

// Import strategies
const (
	StrategyReplace = "replace"
	StrategyMerge   = "merge"
)

// PinValueSource reports live pin values while a simulation runs
type PinValueSource interface {
	Running() bool
	PinValues() domain.PinValues
}

// CircuitService coordinates the circuit store with its derived views,
// persistence and event publishing
type CircuitService struct {
	store    *store.Store
	catalog  *catalog.Catalog
	resolver *wiring.Resolver
	repo     repository.Repository
	eventBus *EventBus
	live     PinValueSource
	logger   *log.Logger
}

// NewCircuitService creates a new circuit service
func NewCircuitService(st *store.Store, cat *catalog.Catalog, repo repository.Repository, eventBus *EventBus, logger *log.Logger) *CircuitService {
	if logger == nil {
		logger = log.Default()
	}
	return &CircuitService{
		store:    st,
		catalog:  cat,
		resolver: wiring.NewResolver(cat),
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// SetPinValueSource attaches the simulation whose pin values the view reports
func (s *CircuitService) SetPinValueSource(live PinValueSource) {
	s.live = live
}

// CircuitView is everything the front end renders for the circuit
type CircuitView struct {
	Components     []domain.Component `json:"components"`
	SelectedID     string             `json:"selected_id,omitempty"`
	AvailablePins  []string           `json:"available_pins,omitempty"`
	Running        bool               `json:"running"`
	PinValues      domain.PinValues   `json:"pin_values"`
	Wires          []domain.Wire      `json:"wires"`
	Firmware       string             `json:"firmware"`
	FirmwareDigest string             `json:"firmware_digest"`
	Conflicts      []wiring.Conflict  `json:"conflicts,omitempty"`
}

// Catalog lists palette entries, filtered by query when it is non-empty
func (s *CircuitService) Catalog(query string) []catalog.Entry {
	if query == "" {
		return s.catalog.List()
	}
	return s.catalog.Search(query)
}

// View derives the full circuit view from one snapshot
func (s *CircuitService) View() CircuitView {
	snap := s.store.Snapshot()
	listing := firmware.Generate(snap.Components)

	v := CircuitView{
		Components:     snap.Components,
		SelectedID:     snap.SelectedID,
		PinValues:      domain.PinValues{},
		Wires:          s.resolver.Resolve(snap.Components),
		Firmware:       listing,
		FirmwareDigest: firmware.Digest(listing),
		Conflicts:      wiring.Conflicts(snap.Components),
	}
	if v.Wires == nil {
		v.Wires = []domain.Wire{}
	}
	for _, c := range snap.Components {
		if c.ID == snap.SelectedID && (c.HasPin() || s.catalog.PinBound(c.Type)) {
			v.AvailablePins = pins.Available(c.Pin, domain.UsedPins(snap.Components))
		}
	}
	if s.live != nil && s.live.Running() {
		v.Running = true
		v.PinValues = s.live.PinValues()
	}
	return v
}

// Wires returns the wires of the current circuit
func (s *CircuitService) Wires() []domain.Wire {
	wires := s.resolver.Resolve(s.store.Components())
	if wires == nil {
		return []domain.Wire{}
	}
	return wires
}

// Firmware returns the generated listing and its digest
func (s *CircuitService) Firmware() (string, string) {
	listing := firmware.Generate(s.store.Components())
	return listing, firmware.Digest(listing)
}

// Drop applies a drag-and-drop gesture: a palette drop places a new
// component, a canvas drop moves an existing one.
func (s *CircuitService) Drop(payload domain.DropPayload) (domain.Component, error) {
	if err := payload.Validate(); err != nil {
		return domain.Component{}, errors.Wrap(ErrInvalid, err.Error())
	}
	if payload.Source == domain.DropFromCatalog {
		return s.Place(payload.Type, payload.Target())
	}
	return s.Move(payload.ComponentID, payload.Target())
}

// Place adds a component of type t at pos
func (s *CircuitService) Place(t domain.ComponentType, pos domain.Position) (domain.Component, error) {
	if !s.catalog.Has(t) {
		return domain.Component{}, errors.Wrapf(ErrInvalid, "unknown component type %q", t)
	}
	comp, ok := s.store.Place(t, pos)
	if !ok {
		return domain.Component{}, errors.Wrap(ErrInvalid, "a controller is already placed")
	}

	s.logger.Debug("component placed", "id", comp.ID, "type", comp.Type, "pin", comp.Pin)
	s.eventBus.Publish(Event{Type: EventComponentPlaced, Payload: comp})
	s.eventBus.Publish(Event{Type: EventSelectionChanged, Payload: map[string]string{"selected_id": comp.ID}})
	return comp, nil
}

// Move repositions component id
func (s *CircuitService) Move(id string, pos domain.Position) (domain.Component, error) {
	if !s.store.Move(id, pos) {
		return domain.Component{}, errors.Wrapf(ErrNotFound, "component %s", id)
	}
	comp, _ := s.store.Get(id)
	s.eventBus.Publish(Event{Type: EventComponentMoved, Payload: comp})
	return comp, nil
}

// SetPin binds component id to pin, or unbinds it when pin is empty. Pins
// already used elsewhere are accepted; the view reports the conflict.
func (s *CircuitService) SetPin(id, pin string) (domain.Component, error) {
	if pin != "" && !pins.Valid(pin) {
		return domain.Component{}, errors.Wrapf(ErrInvalid, "invalid pin %q", pin)
	}
	if !s.store.SetPin(id, pin) {
		return domain.Component{}, errors.Wrapf(ErrNotFound, "component %s", id)
	}
	comp, _ := s.store.Get(id)
	s.eventBus.Publish(Event{Type: EventPinChanged, Payload: comp})
	return comp, nil
}

// Remove deletes component id
func (s *CircuitService) Remove(id string) error {
	wasSelected := s.store.Snapshot().SelectedID == id
	if !s.store.Remove(id) {
		return errors.Wrapf(ErrNotFound, "component %s", id)
	}

	s.eventBus.Publish(Event{Type: EventComponentRemoved, Payload: map[string]string{"id": id}})
	if wasSelected {
		s.eventBus.Publish(Event{Type: EventSelectionChanged, Payload: map[string]string{"selected_id": ""}})
	}
	return nil
}

// Select changes the selection. An unknown or empty id clears it.
func (s *CircuitService) Select(id string) string {
	s.store.Select(id)
	selected := ""
	if comp, ok := s.store.Selected(); ok {
		selected = comp.ID
	}
	s.eventBus.Publish(Event{Type: EventSelectionChanged, Payload: map[string]string{"selected_id": selected}})
	return selected
}

// Clear removes every component
func (s *CircuitService) Clear() {
	s.store.Clear()
	s.eventBus.Publish(Event{Type: EventCircuitReplaced, Payload: map[string]int{"components": 0}})
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Parsed   int    `json:"parsed"`
	Kept     int    `json:"kept"`
	Strategy string `json:"strategy"`
}

// Import reads a circuit with importer and loads it. The replace strategy
// swaps the circuit out; merge appends to it. Either way unknown types and
// extra controllers are dropped.
func (s *CircuitService) Import(importer codec.Importer, r io.Reader, strategy string) (*ImportResult, error) {
	if strategy == "" {
		strategy = StrategyReplace
	}
	if strategy != StrategyReplace && strategy != StrategyMerge {
		return nil, errors.Wrapf(ErrInvalid, "invalid strategy %s, must be 'replace' or 'merge'", strategy)
	}

	circuit, err := importer.Parse(r)
	if err != nil {
		return nil, errors.Wrapf(ErrInvalid, "failed to parse %s: %v", importer.Format(), err)
	}

	components := circuit.Components
	if strategy == StrategyMerge {
		components = append(s.store.Components(), components...)
	}
	kept := s.replace(components)

	return &ImportResult{Parsed: len(circuit.Components), Kept: kept, Strategy: strategy}, nil
}

// Export writes the current circuit with exporter
func (s *CircuitService) Export(exporter codec.Exporter, name string, w io.Writer) error {
	circuit := domain.NewCircuit(name, s.store.Components())
	if err := exporter.Export(circuit, w); err != nil {
		return errors.Wrapf(err, "failed to export %s", exporter.Format())
	}
	return nil
}

// ReplaceCircuit loads circuit as the working circuit
func (s *CircuitService) ReplaceCircuit(circuit *domain.Circuit) int {
	return s.replace(circuit.Components)
}

func (s *CircuitService) replace(components []domain.Component) int {
	kept := s.store.Replace(components)
	if dropped := len(components) - kept; dropped > 0 {
		s.logger.Warn("dropped components while loading circuit", "dropped", dropped)
	}
	s.eventBus.Publish(Event{Type: EventCircuitReplaced, Payload: map[string]int{"components": kept}})
	return kept
}

// SaveCircuit stores the working circuit under name
func (s *CircuitService) SaveCircuit(ctx context.Context, name string) (*domain.SavedCircuit, error) {
	if name == "" {
		return nil, errors.Wrap(ErrInvalid, "circuit name is required")
	}
	components := s.store.Components()
	saved := &domain.SavedCircuit{
		Name:           name,
		Components:     components,
		FirmwareDigest: firmware.Digest(firmware.Generate(components)),
	}
	if err := s.repo.SaveCircuit(ctx, saved); err != nil {
		return nil, err
	}

	s.logger.Info("circuit saved", "name", name, "components", saved.ComponentCount)
	s.eventBus.Publish(Event{Type: EventCircuitSaved, Payload: map[string]string{"name": name}})
	return saved, nil
}

// LoadCircuit replaces the working circuit with the one saved under name
func (s *CircuitService) LoadCircuit(ctx context.Context, name string) (*domain.SavedCircuit, error) {
	saved, err := s.repo.GetCircuit(ctx, name)
	if err != nil {
		return nil, err
	}
	s.replace(saved.Components)
	return saved, nil
}

// ListCircuits returns the saved circuits, newest first
func (s *CircuitService) ListCircuits(ctx context.Context) ([]domain.CircuitSummary, error) {
	list, err := s.repo.ListCircuits(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	for i := range list {
		list[i].SavedAgo = humanize.RelTime(list[i].SavedAt, now, "ago", "from now")
	}
	return list, nil
}

// DeleteCircuit removes the circuit saved under name
func (s *CircuitService) DeleteCircuit(ctx context.Context, name string) error {
	if err := s.repo.DeleteCircuit(ctx, name); err != nil {
		return err
	}
	s.eventBus.Publish(Event{Type: EventCircuitDeleted, Payload: map[string]string{"name": name}})
	return nil
}

// SaveWorkspace autosaves the working circuit
func (s *CircuitService) SaveWorkspace(ctx context.Context) error {
	return s.repo.SetMeta(ctx, workspaceKey, s.store.Components())
}

// RestoreWorkspace loads the autosaved working circuit, if any
func (s *CircuitService) RestoreWorkspace(ctx context.Context) (int, error) {
	var components []domain.Component
	err := s.repo.GetMeta(ctx, workspaceKey, &components)
	if IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return s.store.Replace(components), nil
}
