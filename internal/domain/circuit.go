package domain

import "time"

// Circuit is a named component list, the unit of save, load, import and
// export
type Circuit struct {
	Name       string      `json:"name,omitempty" yaml:"name,omitempty"`
	Components []Component `json:"components" yaml:"components"`
}

// NewCircuit creates a circuit with a copy of components
func NewCircuit(name string, components []Component) *Circuit {
	return &Circuit{
		Name:       name,
		Components: append([]Component{}, components...),
	}
}

// SavedCircuit is a circuit stored under a name together with derived facts
// recorded at save time
type SavedCircuit struct {
	Name           string      `json:"name"`
	Components     []Component `json:"components"`
	FirmwareDigest string      `json:"firmware_digest"`
	ComponentCount int         `json:"component_count"`
	SavedAt        time.Time   `json:"saved_at"`
}

// CircuitSummary describes a saved circuit without its components
type CircuitSummary struct {
	Name           string    `json:"name"`
	FirmwareDigest string    `json:"firmware_digest"`
	ComponentCount int       `json:"component_count"`
	SavedAt        time.Time `json:"saved_at"`
	// SavedAgo is SavedAt relative to the time of listing, e.g. "3 minutes ago"
	SavedAgo string `json:"saved_ago,omitempty"`
}
