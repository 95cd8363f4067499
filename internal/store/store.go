// Package store holds the circuit being edited: the ordered component list,
// the current selection and the held state of pushbuttons.
//
// Every mutation is a silent no-op when its target does not exist. Callers
// learn whether anything changed from the boolean result.
package store

import (
	"sync"

	"github.com/google/uuid"

	"pinboard/internal/catalog"
	"pinboard/internal/domain"
	"pinboard/internal/pins"
)

// Snapshot is an independent copy of the store's state
type Snapshot struct {
	Components []domain.Component `json:"components"`
	SelectedID string             `json:"selected_id,omitempty"`
	Buttons    domain.ButtonState `json:"buttons"`
}

// Store is the circuit state store. It is safe for concurrent use.
type Store struct {
	mu         sync.RWMutex
	catalog    *catalog.Catalog
	components []domain.Component
	selectedID string
	buttons    domain.ButtonState
	newID      func() string
}

// Option configures a Store
type Option func(*Store)

// WithIDGenerator replaces the UUID generator
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// New creates an empty store backed by the given catalog
func New(cat *catalog.Catalog, opts ...Option) *Store {
	s := &Store{
		catalog: cat,
		buttons: make(domain.ButtonState),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place adds a component of type t at pos and selects it. It does nothing
// for an unknown type or for a second controller.
func (s *Store) Place(t domain.ComponentType, pos domain.Position) (domain.Component, bool) {
	entry, ok := s.catalog.Lookup(t)
	if !ok {
		return domain.Component{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if t == domain.ControllerType {
		if _, exists := domain.FindController(s.components); exists {
			return domain.Component{}, false
		}
	}

	comp := domain.Component{
		ID:       s.newID(),
		Type:     t,
		Position: pos.ClampNonNegative(),
	}
	if entry.PinBound {
		// Left unbound when every pin is taken
		if pin, ok := pins.Assign(entry.PreferredPin, domain.UsedPins(s.components)); ok {
			comp.Pin = pin
		}
	}

	s.components = append(s.components, comp)
	s.selectedID = comp.ID
	return comp, true
}

// Move replaces the position of component id
func (s *Store) Move(id string, pos domain.Position) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.components[i].Position = pos.ClampNonNegative()
	return true
}

// SetPin overwrites the pin of component id. An empty pin unbinds it. No
// uniqueness check is made against other components.
func (s *Store) SetPin(id, pin string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.components[i].Pin = pin
	return true
}

// Remove deletes component id, clearing the selection if it was selected
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.components = append(s.components[:i], s.components[i+1:]...)
	delete(s.buttons, id)
	if s.selectedID == id {
		s.selectedID = ""
	}
	return true
}

// Select makes id the selected component. An unknown or empty id clears the
// selection.
func (s *Store) Select(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexOf(id) < 0 {
		s.selectedID = ""
		return
	}
	s.selectedID = id
}

// Selected returns the selected component
func (s *Store) Selected() (domain.Component, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(s.selectedID)
	if i < 0 {
		return domain.Component{}, false
	}
	return s.components[i], true
}

// SetButtonHeld records whether pushbutton id is held down
func (s *Store) SetButtonHeld(id string, held bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 || s.components[i].Type != domain.TypePushbutton {
		return false
	}
	s.buttons[id] = held
	return true
}

// Get returns component id
func (s *Store) Get(id string) (domain.Component, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return domain.Component{}, false
	}
	return s.components[i], true
}

// Components returns a copy of the component list
func (s *Store) Components() []domain.Component {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Component(nil), s.components...)
}

// UsedPins returns the set of pins currently assigned
func (s *Store) UsedPins() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.UsedPins(s.components)
}

// Snapshot returns a copy of the full state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{
		Components: append([]domain.Component(nil), s.components...),
		SelectedID: s.selectedID,
		Buttons:    s.buttons.Clone(),
	}
}

// Replace swaps in a whole circuit, as when loading a saved one. Unknown
// types and controllers after the first are dropped; components without an ID
// get a fresh one and pins that are not controller labels are cleared.
// Selection and button state are reset. It returns the
// number of components kept.
func (s *Store) Replace(components []domain.Component) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]domain.Component, 0, len(components))
	seen := make(map[string]bool, len(components))
	haveController := false
	for _, c := range components {
		if !s.catalog.Has(c.Type) {
			continue
		}
		if c.IsController() {
			if haveController {
				continue
			}
			haveController = true
		}
		if c.ID == "" || seen[c.ID] {
			c.ID = s.newID()
		}
		seen[c.ID] = true
		c.Position = c.Position.ClampNonNegative()
		if c.Pin != "" && !pins.Valid(c.Pin) {
			c.Pin = ""
		}
		kept = append(kept, c)
	}

	s.components = kept
	s.selectedID = ""
	s.buttons = make(domain.ButtonState)
	return len(kept)
}

// Clear removes every component
func (s *Store) Clear() {
	s.Replace(nil)
}

// Len returns the number of placed components
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.components)
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range s.components {
		if c.ID == id {
			return i
		}
	}
	return -1
}
