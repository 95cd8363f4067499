// Package handler implements the HTTP API of the circuit builder.
//
// CircuitHandler serves the palette, the working circuit and its derived
// views (wires, firmware listing), saved circuits and import/export.
// SimulationHandler drives the simulation clock and serves the OLED raster.
// Routes wires both onto a ServeMux together with the SSE stream.
//
// Success responses are JSON, except the firmware listing (text/plain with
// an ETag) and the display (image/png). Errors are JSON ErrorResponse values:
// 400 for malformed or rejected requests, 404 for unknown components or
// circuits, 500 otherwise.
//
// Middleware provides panic recovery, CORS and access logging.
package handler
