package handler

import (
	"bytes"
	"net/http"

	"github.com/charmbracelet/log"

	"pinboard/internal/service"
)

// SimulationHandler handles the simulation clock endpoints
type SimulationHandler struct {
	svc    *service.SimulationService
	logger *log.Logger
}

// NewSimulationHandler creates a new simulation handler
func NewSimulationHandler(svc *service.SimulationService, logger *log.Logger) *SimulationHandler {
	if logger == nil {
		logger = log.Default()
	}
	return &SimulationHandler{svc: svc, logger: logger}
}

// GetState returns the latest frame
func (h *SimulationHandler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, h.svc.Frame(), http.StatusOK)
}

// Start starts the clock
func (h *SimulationHandler) Start(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, h.svc.Start(), http.StatusOK)
}

// Stop stops the clock
func (h *SimulationHandler) Stop(w http.ResponseWriter, r *http.Request) {
	writeJSON(h.logger, w, h.svc.Stop(), http.StatusOK)
}

// ButtonRequest is the body of PUT /api/simulation/buttons/{id}
type ButtonRequest struct {
	Held bool `json:"held"`
}

// SetButton presses or releases a pushbutton
func (h *SimulationHandler) SetButton(w http.ResponseWriter, r *http.Request) {
	var req ButtonRequest
	if !decodeBody(h.logger, w, r, &req) {
		return
	}

	id := r.PathValue("id")
	if err := h.svc.SetButton(id, req.Held); err != nil {
		failWith(h.logger, w, "Failed to set button", err)
		return
	}
	writeJSON(h.logger, w, map[string]interface{}{"id": id, "held": req.Held}, http.StatusOK)
}

// GetDisplay renders the OLED panel as PNG
func (h *SimulationHandler) GetDisplay(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.svc.WriteDisplayPNG(&buf); err != nil {
		failWith(h.logger, w, "Failed to render display", err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
