package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"pinboard/internal/catalog"
	"pinboard/internal/domain"
	"pinboard/internal/firmware"
	"pinboard/internal/repository/sqlite"
	"pinboard/internal/service"
	"pinboard/internal/simulation"
	"pinboard/internal/store"
)

// newTestServer wires the API over an in-memory database
func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	repo, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	logger := log.New(io.Discard)
	cat := catalog.Default()
	st := store.New(cat)
	bus := service.NewEventBus()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	circuits := service.NewCircuitService(st, cat, repo, bus, logger)
	sim := service.NewSimulationService(ctx, st, bus, logger, simulation.WithInterval(time.Hour))
	t.Cleanup(func() { sim.Stop() })
	circuits.SetPinValueSource(sim)

	mux := http.NewServeMux()
	Routes(mux, NewCircuitHandler(circuits, logger), NewSimulationHandler(sim, logger), http.NotFoundHandler())
	return Chain(mux, Recover(logger), CORS, Logger(logger))
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to decode %q: %v", rec.Body.String(), err)
	}
}

func place(t *testing.T, h http.Handler, typ domain.ComponentType) domain.Component {
	t.Helper()
	rec := do(t, h, "POST", "/api/components", `{"type":"`+string(typ)+`","position":{"x":10,"y":20}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("place %s: status %d: %s", typ, rec.Code, rec.Body.String())
	}
	var comp domain.Component
	decodeJSON(t, rec, &comp)
	return comp
}

func TestGetCatalog(t *testing.T) {
	h := newTestServer(t)

	var all, filtered []catalog.Entry
	decodeJSON(t, do(t, h, "GET", "/api/catalog", ""), &all)
	decodeJSON(t, do(t, h, "GET", "/api/catalog?q=servo", ""), &filtered)

	if len(all) == 0 || len(filtered) == 0 || len(filtered) >= len(all) {
		t.Errorf("catalog sizes: all=%d filtered=%d", len(all), len(filtered))
	}
}

func TestPlaceAndView(t *testing.T) {
	h := newTestServer(t)
	place(t, h, domain.ControllerType)
	led := place(t, h, domain.TypeLED)
	if led.Pin != "10" {
		t.Errorf("led pin = %q, want 10", led.Pin)
	}

	var view service.CircuitView
	decodeJSON(t, do(t, h, "GET", "/api/circuit", ""), &view)
	if len(view.Components) != 2 || view.SelectedID != led.ID || len(view.Wires) != 2 {
		t.Errorf("unexpected view %+v", view)
	}

	rec := do(t, h, "POST", "/api/components", `{"type":"arduino-uno"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("second controller: status %d", rec.Code)
	}
	var errResp ErrorResponse
	decodeJSON(t, rec, &errResp)
	if errResp.Error == "" || errResp.Details == "" {
		t.Errorf("unexpected error body %+v", errResp)
	}
}

func TestDrop(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, "POST", "/api/circuit/drop", `{"source":"catalog","type":"pushbutton","position":{"x":5,"y":5}}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("catalog drop: status %d: %s", rec.Code, rec.Body.String())
	}
	var btn domain.Component
	decodeJSON(t, rec, &btn)

	rec = do(t, h, "POST", "/api/circuit/drop",
		`{"source":"canvas","component_id":"`+btn.ID+`","position":{"x":50,"y":50},"offset":{"x":60,"y":0}}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("canvas drop: status %d", rec.Code)
	}
	var moved domain.Component
	decodeJSON(t, rec, &moved)
	if moved.Position != (domain.Position{X: 0, Y: 50}) {
		t.Errorf("expected clamped position, got %+v", moved.Position)
	}

	if rec := do(t, h, "POST", "/api/circuit/drop", `{"source":"canvas"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("invalid payload: status %d", rec.Code)
	}
	if rec := do(t, h, "POST", "/api/circuit/drop", `not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad json: status %d", rec.Code)
	}
}

func TestComponentEndpoints(t *testing.T) {
	h := newTestServer(t)
	led := place(t, h, domain.TypeLED)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"move", "PUT", "/api/components/" + led.ID + "/position", `{"x":1,"y":2}`, http.StatusOK},
		{"move unknown", "PUT", "/api/components/nope/position", `{"x":1,"y":2}`, http.StatusNotFound},
		{"set pin", "PUT", "/api/components/" + led.ID + "/pin", `{"pin":"7"}`, http.StatusOK},
		{"set bad pin", "PUT", "/api/components/" + led.ID + "/pin", `{"pin":"99"}`, http.StatusBadRequest},
		{"select", "PUT", "/api/selection", `{"id":"` + led.ID + `"}`, http.StatusOK},
		{"remove", "DELETE", "/api/components/" + led.ID, "", http.StatusNoContent},
		{"remove again", "DELETE", "/api/components/" + led.ID, "", http.StatusNotFound},
		{"wrong method", "PATCH", "/api/components/" + led.ID, "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(t, h, tt.method, tt.path, tt.body); rec.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestGetFirmwareETag(t *testing.T) {
	h := newTestServer(t)

	rec := do(t, h, "GET", "/api/firmware", "")
	if rec.Body.String() != firmware.Placeholder {
		t.Errorf("expected placeholder, got %q", rec.Body.String())
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	req := httptest.NewRequest("GET", "/api/firmware", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified {
		t.Errorf("status = %d, want 304", rec.Code)
	}

	place(t, h, domain.TypeLED)
	if rec := do(t, h, "GET", "/api/firmware", ""); rec.Header().Get("ETag") == etag {
		t.Error("ETag should change with the circuit")
	}
}

func TestSimulationEndpoints(t *testing.T) {
	h := newTestServer(t)
	btn := place(t, h, domain.TypePushbutton)
	led := place(t, h, domain.TypeLED)

	var frame simulation.Frame
	decodeJSON(t, do(t, h, "POST", "/api/simulation/start", ""), &frame)
	if !frame.Running {
		t.Fatal("expected running")
	}

	if rec := do(t, h, "PUT", "/api/simulation/buttons/"+btn.ID, `{"held":true}`); rec.Code != http.StatusOK {
		t.Errorf("press: status %d", rec.Code)
	}
	if rec := do(t, h, "PUT", "/api/simulation/buttons/"+led.ID, `{"held":true}`); rec.Code != http.StatusBadRequest {
		t.Errorf("press led: status %d", rec.Code)
	}
	if rec := do(t, h, "PUT", "/api/simulation/buttons/missing", `{"held":true}`); rec.Code != http.StatusNotFound {
		t.Errorf("press missing: status %d", rec.Code)
	}

	rec := do(t, h, "GET", "/api/simulation/display.png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Errorf("display: status %d type %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	decodeJSON(t, do(t, h, "POST", "/api/simulation/stop", ""), &frame)
	if frame.Running || len(frame.PinValues) != 0 {
		t.Errorf("unexpected stopped frame %+v", frame)
	}
}

func TestSavedCircuits(t *testing.T) {
	h := newTestServer(t)
	place(t, h, domain.TypeLED)

	if rec := do(t, h, "POST", "/api/circuits", `{"name":"one"}`); rec.Code != http.StatusCreated {
		t.Fatalf("save: status %d: %s", rec.Code, rec.Body.String())
	}
	if rec := do(t, h, "POST", "/api/circuits", `{"name":""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("save without name: status %d", rec.Code)
	}

	var list []domain.CircuitSummary
	decodeJSON(t, do(t, h, "GET", "/api/circuits", ""), &list)
	if len(list) != 1 || list[0].ComponentCount != 1 {
		t.Errorf("unexpected list %+v", list)
	}

	do(t, h, "DELETE", "/api/circuit", "")
	var view service.CircuitView
	rec := do(t, h, "POST", "/api/circuits/one/load", "")
	decodeJSON(t, rec, &view)
	if len(view.Components) != 1 {
		t.Errorf("expected 1 component after load, got %d", len(view.Components))
	}

	if rec := do(t, h, "POST", "/api/circuits/none/load", ""); rec.Code != http.StatusNotFound {
		t.Errorf("load missing: status %d", rec.Code)
	}
	if rec := do(t, h, "DELETE", "/api/circuits/one", ""); rec.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", rec.Code)
	}
}

func TestImportExport(t *testing.T) {
	h := newTestServer(t)
	place(t, h, domain.ControllerType)
	place(t, h, domain.TypeLED)

	rec := do(t, h, "GET", "/api/export/yaml?name=blink", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Disposition"), "blink.yaml") {
		t.Fatalf("export: status %d, headers %v", rec.Code, rec.Header())
	}
	doc := rec.Body.String()

	rec = do(t, h, "GET", "/api/export/ino", "")
	if !strings.Contains(rec.Body.String(), "const int ledPin = 10;") {
		t.Errorf("unexpected sketch export:\n%s", rec.Body.String())
	}

	if rec := do(t, h, "GET", "/api/export/xml", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown export format: status %d", rec.Code)
	}

	do(t, h, "DELETE", "/api/circuit", "")
	var result service.ImportResult
	decodeJSON(t, do(t, h, "POST", "/api/import/yaml", doc), &result)
	if result.Kept != 2 {
		t.Errorf("unexpected import result %+v", result)
	}

	if rec := do(t, h, "POST", "/api/import/yaml", "components: [\n"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad yaml: status %d", rec.Code)
	}
	if rec := do(t, h, "POST", "/api/import/ino", "x"); rec.Code != http.StatusBadRequest {
		t.Errorf("import ino: status %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t)
	rec := do(t, h, "OPTIONS", "/api/circuit", "")
	if rec.Code != http.StatusNoContent || rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Errorf("preflight: status %d headers %v", rec.Code, rec.Header())
	}
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Recover(logger))

	rec := do(t, h, "GET", "/", "")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(buf.String(), "boom") {
		t.Error("panic was not logged")
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := Chain(http.NotFoundHandler(), mw("a"), mw("b"))
	do(t, h, "GET", "/", "")
	if strings.Join(order, ",") != "a,b" {
		t.Errorf("order = %v", order)
	}
}
