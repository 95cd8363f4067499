package mqtt

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"pinboard/internal/service"
	"pinboard/internal/simulation"
)

// Topic suffixes under the configured base topic
const (
	FrameTopic = "frame"
	StateTopic = "state"
	PinsTopic  = "pins"
)

// Message is a single publish
type Message struct {
	Topic   string
	Payload []byte
	QoS     byte
}

// stateMessage reports a running/stopped transition
type stateMessage struct {
	Running bool    `json:"running"`
	Step    int     `json:"step"`
	Time    float64 `json:"time"`
}

// Forwarder publishes simulation events from the event bus
type Forwarder struct {
	base      string
	publisher Publisher
	eventBus  *service.EventBus
	logger    *log.Logger
}

// NewForwarder creates a forwarder publishing under base, e.g.
// "pinboard/simulation"
func NewForwarder(base string, publisher Publisher, eventBus *service.EventBus, logger *log.Logger) *Forwarder {
	if logger == nil {
		logger = log.Default()
	}
	return &Forwarder{
		base:      strings.TrimSuffix(base, "/"),
		publisher: publisher,
		eventBus:  eventBus,
		logger:    logger,
	}
}

// Run forwards events until ctx ends
func (f *Forwarder) Run(ctx context.Context) {
	events := make(chan service.Event, 100)
	f.eventBus.Subscribe(events)
	defer f.eventBus.Unsubscribe(events)

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-events:
			msgs, err := f.Messages(event)
			if err != nil {
				f.logger.Warn("failed to encode mqtt message", "event", event.Type, "err", err)
				continue
			}
			for _, m := range msgs {
				if err := f.publisher.Publish(ctx, m.Topic, m.Payload, m.QoS); err != nil {
					f.logger.Warn("mqtt publish failed", "topic", m.Topic, "err", err)
				}
			}
		}
	}
}

// Messages maps an event to the publishes it causes. Events unrelated to
// the simulation map to none.
func (f *Forwarder) Messages(event service.Event) ([]Message, error) {
	frame, ok := event.Payload.(simulation.Frame)
	if !ok {
		return nil, nil
	}

	switch event.Type {
	case service.EventSimulationFrame:
		body, err := json.Marshal(frame)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode frame")
		}
		pins, err := json.Marshal(frame.PinValues)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode pin values")
		}
		// Frames arrive many times a second; dropping one is harmless
		return []Message{
			{Topic: f.topic(FrameTopic), Payload: body, QoS: 0},
			{Topic: f.topic(PinsTopic), Payload: pins, QoS: 0},
		}, nil

	case service.EventSimulationStarted, service.EventSimulationStopped:
		body, err := json.Marshal(stateMessage{
			Running: event.Type == service.EventSimulationStarted,
			Step:    frame.Step,
			Time:    frame.Time,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode state")
		}
		return []Message{{Topic: f.topic(StateTopic), Payload: body, QoS: 1}}, nil
	}
	return nil, nil
}

func (f *Forwarder) topic(suffix string) string {
	return f.base + "/" + suffix
}
