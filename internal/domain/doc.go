// Package domain defines the core types of the circuit builder.
//
// # Core Types
//
// Component is an element placed on the canvas: a catalog type, a top-left
// Position and an optional controller pin label ("2".."13" or "A0".."A5").
// At most one component is the controller board (ControllerType).
//
// Circuit is a named component list, the unit of save, load, import and
// export. SavedCircuit adds the facts recorded when it was stored.
//
// Wire is a cosmetic connection drawn from a component lead to the
// controller. Wires are derived from the component list and never stored.
//
// # Drag and Drop
//
// DropPayload carries either a catalog type to place or the ID of a placed
// component being moved, together with the drop point and grab offset.
//
// # Simulation State
//
// ButtonState records which pushbuttons are held. PinValues holds the logic
// level of each driven pin and is recomputed every simulation tick.
//
// The package has no dependencies outside the standard library.
package domain
