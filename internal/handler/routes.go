package handler

import "net/http"

// Routes registers the API on mux. events serves the SSE stream.
func Routes(mux *http.ServeMux, circuits *CircuitHandler, sim *SimulationHandler, events http.Handler) {
	// Palette
	mux.HandleFunc("GET /api/catalog", circuits.GetCatalog)

	// Working circuit
	mux.HandleFunc("GET /api/circuit", circuits.GetCircuit)
	mux.HandleFunc("DELETE /api/circuit", circuits.ClearCircuit)
	mux.HandleFunc("POST /api/circuit/drop", circuits.Drop)

	// Component endpoints
	mux.HandleFunc("POST /api/components", circuits.PlaceComponent)
	mux.HandleFunc("PUT /api/components/{id}/position", circuits.MoveComponent)
	mux.HandleFunc("PUT /api/components/{id}/pin", circuits.SetPin)
	mux.HandleFunc("DELETE /api/components/{id}", circuits.RemoveComponent)
	mux.HandleFunc("PUT /api/selection", circuits.Select)

	// Derived views
	mux.HandleFunc("GET /api/wires", circuits.GetWires)
	mux.HandleFunc("GET /api/firmware", circuits.GetFirmware)

	// Simulation endpoints
	mux.HandleFunc("GET /api/simulation", sim.GetState)
	mux.HandleFunc("POST /api/simulation/start", sim.Start)
	mux.HandleFunc("POST /api/simulation/stop", sim.Stop)
	mux.HandleFunc("PUT /api/simulation/buttons/{id}", sim.SetButton)
	mux.HandleFunc("GET /api/simulation/display.png", sim.GetDisplay)

	// Saved circuits
	mux.HandleFunc("GET /api/circuits", circuits.ListCircuits)
	mux.HandleFunc("POST /api/circuits", circuits.SaveCircuit)
	mux.HandleFunc("POST /api/circuits/{name}/load", circuits.LoadCircuit)
	mux.HandleFunc("DELETE /api/circuits/{name}", circuits.DeleteCircuit)

	// Import/export endpoints
	mux.HandleFunc("POST /api/import/{format}", circuits.Import)
	mux.HandleFunc("GET /api/export/{format}", circuits.Export)

	// SSE events endpoint
	mux.Handle("GET /events", events)
}
