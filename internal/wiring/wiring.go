// Package wiring derives the cosmetic wires drawn between placed components
// and the controller board. Everything here is a pure function of the
// component list; nothing is validated electrically.
package wiring

import (
	"sort"
	"strconv"

	"pinboard/internal/catalog"
	"pinboard/internal/domain"
	"pinboard/internal/pins"
)

// Resolver computes wire geometry from catalog lead offsets
type Resolver struct {
	catalog *catalog.Catalog
}

// NewResolver creates a resolver over cat
func NewResolver(cat *catalog.Catalog) *Resolver {
	return &Resolver{catalog: cat}
}

// Resolve returns the wires for components. It returns nil when no controller
// is placed.
func (r *Resolver) Resolve(components []domain.Component) []domain.Wire {
	ctrl, ok := domain.FindController(components)
	if !ok {
		return nil
	}
	return r.ResolveAt(components, ctrl.Position)
}

// ResolveAt returns the wires for components against a controller whose
// top-left corner is at origin
func (r *Resolver) ResolveAt(components []domain.Component, origin domain.Position) []domain.Wire {
	var wires []domain.Wire
	for _, c := range components {
		if c.IsController() {
			continue
		}
		wires = append(wires, r.componentWires(c, origin)...)
	}
	return wires
}

func (r *Resolver) componentWires(c domain.Component, origin domain.Position) []domain.Wire {
	f, ok := fans[c.Type]
	if !ok {
		return nil
	}
	if f.RequiresPin {
		if _, ok := catalog.ControllerPinOffset(c.Pin); !ok {
			return nil
		}
	}
	entry, ok := r.catalog.Lookup(c.Type)
	if !ok {
		return nil
	}

	var wires []domain.Wire
	for _, l := range f.Leads {
		local, ok := entry.Lead(l.Lead)
		if !ok {
			continue
		}
		pin := l.controllerPin(c)
		off, ok := catalog.ControllerPinOffset(pin)
		if !ok {
			// Pins without a header offset (A0..A3) are not drawn
			continue
		}
		label := l.label(pin)
		wires = append(wires, newWire(
			c.ID+"-"+l.name(label),
			origin.Add(off),
			c.Position.Add(local),
			l.Color, label, l.Role,
			pin, c.ID,
		))
	}
	return wires
}

func newWire(id string, from, to domain.Position, color, label string, role domain.WireRole, pin, compID string) domain.Wire {
	return domain.Wire{
		ID:            id,
		Path:          curvePath(from, to),
		Color:         color,
		Label:         label,
		LabelPos:      from.Midpoint(to),
		Role:          role,
		ControllerPin: pin,
		ComponentID:   compID,
	}
}

// curvePath is a cubic curve leaving and entering vertically
func curvePath(from, to domain.Position) string {
	midY := (from.Y + to.Y) / 2
	return "M " + num(from.X) + " " + num(from.Y) +
		" C " + num(from.X) + " " + num(midY) +
		", " + num(to.X) + " " + num(midY) +
		", " + num(to.X) + " " + num(to.Y)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Conflict is a controller pin claimed by leads of more than one component
type Conflict struct {
	Pin          string   `json:"pin"`
	ComponentIDs []string `json:"component_ids"`
}

// Conflicts reports signal pins shared between components. Power, ground and
// I2C bus lines are meant to be shared and are not reported. The report is
// advisory; nothing rejects a conflicting circuit.
func Conflicts(components []domain.Component) []Conflict {
	claims := make(map[string][]string)
	for _, c := range components {
		if c.IsController() {
			continue
		}
		for _, pin := range signalPins(c) {
			ids := claims[pin]
			if len(ids) > 0 && ids[len(ids)-1] == c.ID {
				continue
			}
			claims[pin] = append(ids, c.ID)
		}
	}

	var out []Conflict
	for pin, ids := range claims {
		if len(ids) > 1 {
			out = append(out, Conflict{Pin: pin, ComponentIDs: ids})
		}
	}
	sort.Slice(out, func(i, j int) bool { return pins.Less(out[i].Pin, out[j].Pin) })
	return out
}

// signalPins lists the controller pins a component drives or reads
func signalPins(c domain.Component) []string {
	f, ok := fans[c.Type]
	if !ok {
		if c.HasPin() {
			return []string{c.Pin}
		}
		return nil
	}
	if f.RequiresPin && !c.HasPin() {
		return nil
	}
	var out []string
	for _, l := range f.Leads {
		if l.Role != domain.WireSignal {
			continue
		}
		out = append(out, l.Pin(c))
	}
	return out
}
