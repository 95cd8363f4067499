// Package hub streams circuit events to Server-Sent Events clients.
//
// Each event goes out as one SSE message: a sequence id, the event name and a
// JSON data line. Clients may pass ?events=a,b to receive only those names.
package hub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// KeepAliveInterval is how often an idle stream gets a comment line
const KeepAliveInterval = 30 * time.Second

// DefaultEventName is used for payloads that do not name themselves
const DefaultEventName = "message"

// Named is implemented by payloads that carry their SSE event name
type Named interface {
	EventName() string
}

// message is one encoded SSE message
type message struct {
	id   uint64
	name string
	data []byte
}

func (m message) encode() []byte {
	return []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", m.id, m.name, m.data))
}

type subscriber struct {
	id     string
	only   map[string]bool
	stream chan message
}

func (s *subscriber) wants(name string) bool {
	return len(s.only) == 0 || s.only[name]
}

// Hub fans events out to connected streams
type Hub struct {
	mu       sync.RWMutex
	subs     map[string]*subscriber
	stopped  bool
	incoming chan interface{}
	seq      uint64
	logger   *log.Logger
}

// New creates a new Hub
func New(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		subs:     make(map[string]*subscriber),
		incoming: make(chan interface{}, 256),
		logger:   logger,
	}
}

// Run encodes and delivers broadcast events until done is closed, then ends
// every open stream.
func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			h.stop()
			return
		case event := <-h.incoming:
			h.deliver(event)
		}
	}
}

func (h *Hub) deliver(event interface{}) {
	data, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to marshal event", "err", err)
		return
	}
	name := DefaultEventName
	if n, ok := event.(Named); ok && n.EventName() != "" {
		name = n.EventName()
	}
	h.seq++
	msg := message{id: h.seq, name: name, data: data}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, s := range h.subs {
		if !s.wants(name) {
			continue
		}
		select {
		case s.stream <- msg:
		default:
			h.logger.Warn("SSE client is slow, skipping event", "client", s.id, "event", name)
		}
	}
}

func (h *Hub) stop() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stopped = true
	for id, s := range h.subs {
		close(s.stream)
		delete(h.subs, id)
	}
}

// Broadcast queues an event for every interested client
func (h *Hub) Broadcast(event interface{}) {
	select {
	case h.incoming <- event:
	default:
		h.logger.Warn("broadcast queue full, dropping event")
	}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *Hub) subscribe(only map[string]bool) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.stopped {
		return nil, false
	}
	s := &subscriber{id: uuid.NewString(), only: only, stream: make(chan message, 64)}
	h.subs[s.id] = s
	h.logger.Debug("SSE client connected", "client", s.id, "total", len(h.subs))
	return s, true
}

func (h *Hub) unsubscribe(s *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[s.id]; !ok {
		return
	}
	delete(h.subs, s.id)
	close(s.stream)
	h.logger.Debug("SSE client disconnected", "client", s.id, "total", len(h.subs))
}

// parseFilter reads ?events=a,b into a set; empty means everything
func parseFilter(raw string) map[string]bool {
	only := make(map[string]bool)
	for _, name := range strings.Split(raw, ",") {
		if name = strings.TrimSpace(name); name != "" {
			only[name] = true
		}
	}
	return only
}

// ServeHTTP streams events until the client leaves or the hub stops
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "SSE not supported", http.StatusInternalServerError)
		return
	}

	s, ok := h.subscribe(parseFilter(r.URL.Query().Get("events")))
	if !ok {
		http.Error(w, "event stream closed", http.StatusServiceUnavailable)
		return
	}
	defer h.unsubscribe(s)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	fmt.Fprintf(w, ": connected %s\n\n", s.id)
	flusher.Flush()

	ticker := time.NewTicker(KeepAliveInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-s.stream:
			if !ok {
				return
			}
			if _, err := w.Write(msg.encode()); err != nil {
				return
			}
			flusher.Flush()

		case <-ticker.C:
			if _, err := fmt.Fprint(w, ": keepalive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
