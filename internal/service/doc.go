// Package service implements the application logic behind the HTTP API.
//
// CircuitService wraps the circuit store: it validates requests the store
// would silently ignore, derives the circuit view (wires, firmware listing,
// pin conflicts), handles import/export through the codec package and saves
// circuits to the repository.
//
// SimulationService owns the simulation clock and turns its frames into
// events.
//
// # Event System
//
// Every change is published on the EventBus. The SSE hub and the optional
// MQTT bridge subscribe to it. Publishing never blocks; slow subscribers
// miss events.
package service
