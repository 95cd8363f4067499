// Package catalog is the static registry of placeable component types.
//
// The registry is built once per process and never mutated. Each entry maps a
// type tag to its palette label, the external widget that previews it, and the
// pixel offsets of its leads relative to the component's top-left corner.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"pinboard/internal/domain"
)

// Category groups palette entries
type Category string

const (
	CategoryBoard  Category = "board"
	CategoryInput  Category = "input"
	CategoryOutput Category = "output"
	CategoryHelper Category = "helper"
)

// Entry describes one component type
type Entry struct {
	Type     domain.ComponentType `json:"type"`
	Label    string               `json:"label"`
	Category Category             `json:"category"`
	// Element is the pre-built widget that renders the type's preview
	Element string `json:"element"`
	// PinBound types receive a controller pin when placed
	PinBound bool `json:"pin_bound"`
	// PreferredPin is tried before scanning for the lowest free pin
	PreferredPin string `json:"preferred_pin,omitempty"`
	// Leads are lead offsets keyed by lead name
	Leads map[string]domain.Position `json:"leads,omitempty"`
	// Hidden entries can be placed but are not listed in the palette
	Hidden bool `json:"hidden,omitempty"`
}

// Lead returns the offset of the named lead
func (e Entry) Lead(name string) (domain.Position, bool) {
	p, ok := e.Leads[name]
	return p, ok
}

// Catalog is an immutable, ordered set of entries
type Catalog struct {
	entries []Entry
	byType  map[domain.ComponentType]int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(builtinEntries())
	})
	return defaultCatalog
}

// New builds a catalog from entries. Later duplicates of a type are ignored.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: make([]Entry, 0, len(entries)),
		byType:  make(map[domain.ComponentType]int, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.byType[e.Type]; dup {
			continue
		}
		c.byType[e.Type] = len(c.entries)
		c.entries = append(c.entries, e)
	}
	return c
}

// Lookup returns the entry for a type tag
func (c *Catalog) Lookup(t domain.ComponentType) (Entry, bool) {
	i, ok := c.byType[t]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Has reports whether the type tag is known
func (c *Catalog) Has(t domain.ComponentType) bool {
	_, ok := c.byType[t]
	return ok
}

// List returns the palette entries in palette order
func (c *Catalog) List() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		if !e.Hidden {
			out = append(out, e)
		}
	}
	return out
}

// Search filters the palette by a case-insensitive match on label or tag
func (c *Catalog) Search(query string) []Entry {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.List()
	}
	var out []Entry
	for _, e := range c.List() {
		if strings.Contains(strings.ToLower(e.Label), q) || strings.Contains(string(e.Type), q) {
			out = append(out, e)
		}
	}
	return out
}

// Categories returns the palette grouped by category
func (c *Catalog) Categories() map[Category][]Entry {
	out := make(map[Category][]Entry)
	for _, e := range c.List() {
		out[e.Category] = append(out[e.Category], e)
	}
	return out
}

// PinBound reports whether the type receives a pin on placement
func (c *Catalog) PinBound(t domain.ComponentType) bool {
	e, ok := c.Lookup(t)
	return ok && e.PinBound
}

// Types returns every known tag, sorted
func (c *Catalog) Types() []domain.ComponentType {
	out := make([]domain.ComponentType, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e.Type)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
