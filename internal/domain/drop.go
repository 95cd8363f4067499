package domain

import "fmt"

// DropSource tells a drop handler where the dragged item came from
type DropSource string

const (
	DropFromCatalog DropSource = "catalog"
	DropFromCanvas  DropSource = "canvas"
)

// DropPayload is the value carried by a drag gesture. A catalog drop carries
// the component type to place; a canvas drop carries the ID of the component
// being moved and the point inside it where it was grabbed.
type DropPayload struct {
	Source      DropSource    `json:"source"`
	Type        ComponentType `json:"type,omitempty"`
	ComponentID string        `json:"component_id,omitempty"`
	// Position is the drop point on the canvas
	Position Position `json:"position"`
	// Offset is the grab point relative to the component's top-left corner
	Offset Position `json:"offset,omitempty"`
}

// Target returns where the component's top-left corner should land
func (d DropPayload) Target() Position {
	if d.Source == DropFromCanvas {
		return d.Position.Sub(d.Offset)
	}
	return d.Position
}

// Validate checks that the payload carries what its source requires
func (d DropPayload) Validate() error {
	switch d.Source {
	case DropFromCatalog:
		if d.Type == "" {
			return fmt.Errorf("catalog drop requires a component type")
		}
	case DropFromCanvas:
		if d.ComponentID == "" {
			return fmt.Errorf("canvas drop requires a component_id")
		}
	default:
		return fmt.Errorf("unknown drop source %q", d.Source)
	}
	return nil
}
