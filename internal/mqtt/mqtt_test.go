package mqtt

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"pinboard/internal/domain"
	"pinboard/internal/service"
	"pinboard/internal/simulation"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs []Message
}

func (p *recordingPublisher) Publish(_ context.Context, topic string, payload []byte, qos byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, Message{Topic: topic, Payload: payload, QoS: qos})
	return nil
}

func (p *recordingPublisher) messages() []Message {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Message{}, p.msgs...)
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestMessagesForFrame(t *testing.T) {
	f := NewForwarder("pinboard/sim/", nil, service.NewEventBus(), quietLogger())
	frame := simulation.Frame{
		Running:   true,
		Step:      3,
		Time:      0.3,
		PinValues: domain.PinValues{"13": true},
		Serial:    []string{},
	}

	msgs, err := f.Messages(service.Event{Type: service.EventSimulationFrame, Payload: frame})
	if err != nil {
		t.Fatalf("Messages() error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0].Topic != "pinboard/sim/frame" || msgs[1].Topic != "pinboard/sim/pins" {
		t.Errorf("topics = %s, %s", msgs[0].Topic, msgs[1].Topic)
	}

	var decoded simulation.Frame
	if err := json.Unmarshal(msgs[0].Payload, &decoded); err != nil {
		t.Fatalf("frame payload: %v", err)
	}
	if decoded.Step != 3 || !decoded.PinValues["13"] {
		t.Errorf("decoded frame = %+v", decoded)
	}
	if string(msgs[1].Payload) != `{"13":true}` {
		t.Errorf("pins payload = %s", msgs[1].Payload)
	}
}

func TestMessagesForStateChanges(t *testing.T) {
	f := NewForwarder("pinboard/simulation", nil, service.NewEventBus(), quietLogger())

	tests := []struct {
		eventType service.EventType
		want      string
	}{
		{service.EventSimulationStarted, `{"running":true,"step":0,"time":0}`},
		{service.EventSimulationStopped, `{"running":false,"step":0,"time":0}`},
	}
	for _, tt := range tests {
		msgs, err := f.Messages(service.Event{Type: tt.eventType, Payload: simulation.Frame{}})
		if err != nil {
			t.Fatalf("Messages(%s) error: %v", tt.eventType, err)
		}
		if len(msgs) != 1 {
			t.Fatalf("Messages(%s) = %d messages, want 1", tt.eventType, len(msgs))
		}
		if msgs[0].Topic != "pinboard/simulation/state" || msgs[0].QoS != 1 {
			t.Errorf("message = %s qos %d", msgs[0].Topic, msgs[0].QoS)
		}
		if string(msgs[0].Payload) != tt.want {
			t.Errorf("payload = %s, want %s", msgs[0].Payload, tt.want)
		}
	}
}

func TestMessagesIgnoresOtherEvents(t *testing.T) {
	f := NewForwarder("pinboard", nil, service.NewEventBus(), quietLogger())

	msgs, err := f.Messages(service.Event{Type: service.EventComponentPlaced, Payload: domain.Component{ID: "x"}})
	if err != nil || len(msgs) != 0 {
		t.Errorf("Messages() = %v, %v; want none", msgs, err)
	}
}

func TestRunForwardsBusEvents(t *testing.T) {
	bus := service.NewEventBus()
	pub := &recordingPublisher{}
	f := NewForwarder("pinboard", pub, bus, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.Run(ctx)
		close(done)
	}()

	// Run subscribes asynchronously; republish until something arrives
	deadline := time.Now().Add(2 * time.Second)
	for len(pub.messages()) == 0 && time.Now().Before(deadline) {
		bus.Publish(service.Event{Type: service.EventSimulationStarted, Payload: simulation.Frame{Running: true}})
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	<-done

	msgs := pub.messages()
	if len(msgs) == 0 {
		t.Fatal("no messages forwarded")
	}
	if msgs[0].Topic != "pinboard/state" {
		t.Errorf("topic = %s, want pinboard/state", msgs[0].Topic)
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, broker := range []string{"localhost", "::bad", ""} {
		if _, err := NewClient(broker, "pinboard", quietLogger()); err == nil {
			t.Errorf("NewClient(%q) should fail", broker)
		}
	}
	if _, err := NewClient("mqtt://localhost:1883", "pinboard", quietLogger()); err != nil {
		t.Errorf("NewClient() error: %v", err)
	}
}

func TestPublishBeforeConnect(t *testing.T) {
	c, err := NewClient("mqtt://localhost:1883", "pinboard", quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Publish(context.Background(), "t", []byte("x"), 0); err == nil {
		t.Error("Publish() before Connect should fail")
	}
	if err := c.Disconnect(context.Background()); err != nil {
		t.Errorf("Disconnect() before Connect = %v, want nil", err)
	}
}
