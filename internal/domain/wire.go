package domain

// WireRole is the electrical role a wire is drawn for
type WireRole string

const (
	WireSignal WireRole = "signal"
	WireGround WireRole = "ground"
	WirePower  WireRole = "power"
	WireBus    WireRole = "bus"
)

// Wire is a cosmetic connection between a component lead and a controller pin.
// Wires are derived on demand and never stored.
type Wire struct {
	ID       string   `json:"id"`
	Path     string   `json:"path"`
	Color    string   `json:"color"`
	Label    string   `json:"label"`
	LabelPos Position `json:"label_pos"`
	Role     WireRole `json:"role"`
	// ControllerPin is the controller pin label the wire lands on
	ControllerPin string `json:"controller_pin"`
	ComponentID   string `json:"component_id"`
}
