package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"

	"pinboard/internal/codec"
	"pinboard/internal/domain"
	"pinboard/internal/service"
)

// maxBodyBytes bounds request bodies, imports included
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// CircuitHandler handles circuit editing, persistence and import/export
type CircuitHandler struct {
	svc       *service.CircuitService
	logger    *log.Logger
	importers map[string]codec.Importer
	exporters map[string]codec.Exporter
}

// NewCircuitHandler creates a new circuit handler
func NewCircuitHandler(svc *service.CircuitService, logger *log.Logger) *CircuitHandler {
	if logger == nil {
		logger = log.Default()
	}
	yamlCodec := codec.NewYAMLCodec()
	jsonCodec := codec.NewJSONCodec()
	sketch := codec.NewSketchExporter()
	return &CircuitHandler{
		svc:    svc,
		logger: logger,
		importers: map[string]codec.Importer{
			yamlCodec.Format(): yamlCodec,
			jsonCodec.Format(): jsonCodec,
		},
		exporters: map[string]codec.Exporter{
			yamlCodec.Format(): yamlCodec,
			jsonCodec.Format(): jsonCodec,
			sketch.Format():    sketch,
		},
	}
}

// GetCatalog lists the component palette, filtered by ?q=
func (h *CircuitHandler) GetCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, h.svc.Catalog(r.URL.Query().Get("q")), http.StatusOK)
}

// GetCircuit returns the full circuit view
func (h *CircuitHandler) GetCircuit(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, h.svc.View(), http.StatusOK)
}

// ClearCircuit removes every component
func (h *CircuitHandler) ClearCircuit(w http.ResponseWriter, r *http.Request) {
	h.svc.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// Drop applies a drag-and-drop payload
func (h *CircuitHandler) Drop(w http.ResponseWriter, r *http.Request) {
	var payload domain.DropPayload
	if !h.decode(w, r, &payload) {
		return
	}

	comp, err := h.svc.Drop(payload)
	if err != nil {
		h.fail(w, "Drop rejected", err)
		return
	}

	status := http.StatusOK
	if payload.Source == domain.DropFromCatalog {
		status = http.StatusCreated
	}
	writeJSON(h.logger, w, comp, status)
}

// PlaceRequest is the body of POST /api/components
type PlaceRequest struct {
	Type     domain.ComponentType `json:"type"`
	Position domain.Position      `json:"position"`
}

// PlaceComponent adds a component
func (h *CircuitHandler) PlaceComponent(w http.ResponseWriter, r *http.Request) {
	var req PlaceRequest
	if !h.decode(w, r, &req) {
		return
	}

	comp, err := h.svc.Place(req.Type, req.Position)
	if err != nil {
		h.fail(w, "Failed to place component", err)
		return
	}
	writeJSON(h.logger, w, comp, http.StatusCreated)
}

// MoveComponent sets a component's position
func (h *CircuitHandler) MoveComponent(w http.ResponseWriter, r *http.Request) {
	var pos domain.Position
	if !h.decode(w, r, &pos) {
		return
	}

	comp, err := h.svc.Move(r.PathValue("id"), pos)
	if err != nil {
		h.fail(w, "Failed to move component", err)
		return
	}
	writeJSON(h.logger, w, comp, http.StatusOK)
}

// PinRequest is the body of PUT /api/components/{id}/pin
type PinRequest struct {
	Pin string `json:"pin"`
}

// SetPin binds a component to a controller pin
func (h *CircuitHandler) SetPin(w http.ResponseWriter, r *http.Request) {
	var req PinRequest
	if !h.decode(w, r, &req) {
		return
	}

	comp, err := h.svc.SetPin(r.PathValue("id"), req.Pin)
	if err != nil {
		h.fail(w, "Failed to set pin", err)
		return
	}
	writeJSON(h.logger, w, comp, http.StatusOK)
}

// RemoveComponent deletes a component
func (h *CircuitHandler) RemoveComponent(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Remove(r.PathValue("id")); err != nil {
		h.fail(w, "Failed to remove component", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SelectionRequest is the body of PUT /api/selection
type SelectionRequest struct {
	ID string `json:"id"`
}

// Select changes the selected component
func (h *CircuitHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req SelectionRequest
	if !h.decode(w, r, &req) {
		return
	}
	writeJSON(h.logger, w, map[string]string{"selected_id": h.svc.Select(req.ID)}, http.StatusOK)
}

// GetWires returns the derived wires
func (h *CircuitHandler) GetWires(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, h.svc.Wires(), http.StatusOK)
}

// GetFirmware returns the generated listing as text. The digest doubles as
// an ETag.
func (h *CircuitHandler) GetFirmware(w http.ResponseWriter, r *http.Request) {
	listing, digest := h.svc.Firmware()
	etag := `"` + digest + `"`

	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, listing)
}

// SaveRequest is the body of POST /api/circuits
type SaveRequest struct {
	Name string `json:"name"`
}

// ListCircuits lists saved circuits
func (h *CircuitHandler) ListCircuits(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListCircuits(r.Context())
	if err != nil {
		h.fail(w, "Failed to list circuits", err)
		return
	}
	writeJSON(h.logger, w, list, http.StatusOK)
}

// SaveCircuit saves the working circuit under a name
func (h *CircuitHandler) SaveCircuit(w http.ResponseWriter, r *http.Request) {
	var req SaveRequest
	if !h.decode(w, r, &req) {
		return
	}

	saved, err := h.svc.SaveCircuit(r.Context(), req.Name)
	if err != nil {
		h.fail(w, "Failed to save circuit", err)
		return
	}
	writeJSON(h.logger, w, saved, http.StatusCreated)
}

// LoadCircuit replaces the working circuit with a saved one
func (h *CircuitHandler) LoadCircuit(w http.ResponseWriter, r *http.Request) {
	if _, err := h.svc.LoadCircuit(r.Context(), r.PathValue("name")); err != nil {
		h.fail(w, "Failed to load circuit", err)
		return
	}
	writeJSON(h.logger, w, h.svc.View(), http.StatusOK)
}

// DeleteCircuit removes a saved circuit
func (h *CircuitHandler) DeleteCircuit(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCircuit(r.Context(), r.PathValue("name")); err != nil {
		h.fail(w, "Failed to delete circuit", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Import loads a circuit document in the {format} of the path
func (h *CircuitHandler) Import(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	importer, ok := h.importers[format]
	if !ok {
		writeError(h.logger, w, "Unsupported import format", format, http.StatusBadRequest)
		return
	}

	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	result, err := h.svc.Import(importer, body, r.URL.Query().Get("strategy"))
	if err != nil {
		h.fail(w, "Failed to import circuit", err)
		return
	}
	writeJSON(h.logger, w, result, http.StatusOK)
}

// Export writes the working circuit in the {format} of the path
func (h *CircuitHandler) Export(w http.ResponseWriter, r *http.Request) {
	format := r.PathValue("format")
	exporter, ok := h.exporters[format]
	if !ok {
		writeError(h.logger, w, "Unsupported export format", format, http.StatusBadRequest)
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		name = "circuit"
	}
	w.Header().Set("Content-Type", exporter.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+name+"."+exporter.Format())

	if err := h.svc.Export(exporter, name, w); err != nil {
		// Can't write error response as we already started the body
		h.logger.Error("failed to export circuit", "format", format, "err", err)
	}
}

// decode reads a JSON body into v, replying 400 on failure
func (h *CircuitHandler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	return decodeBody(h.logger, w, r, v)
}

func (h *CircuitHandler) fail(w http.ResponseWriter, msg string, err error) {
	failWith(h.logger, w, msg, err)
}

// Helper functions

func decodeBody(logger *log.Logger, w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(logger, w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

// failWith maps a service error to its status code
func failWith(logger *log.Logger, w http.ResponseWriter, msg string, err error) {
	status := http.StatusInternalServerError
	switch {
	case service.IsNotFound(err):
		status = http.StatusNotFound
	case service.IsInvalid(err):
		status = http.StatusBadRequest
	default:
		logger.Error(msg, "err", err)
	}
	writeError(logger, w, msg, err.Error(), status)
}

func writeJSON(logger *log.Logger, w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON", "err", err)
	}
}

func writeError(logger *log.Logger, w http.ResponseWriter, error, details string, statusCode int) {
	writeJSON(logger, w, ErrorResponse{Error: error, Details: details}, statusCode)
}
