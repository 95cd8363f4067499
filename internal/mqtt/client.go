// Package mqtt mirrors simulation state to an MQTT broker.
package mqtt

import (
	"context"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/eclipse/paho.golang/autopaho"
	"github.com/eclipse/paho.golang/paho"
	"github.com/pkg/errors"
)

const (
	connectionTimeout = 5 * time.Second
	publishTimeout    = 4 * time.Second
)

// Publisher sends a payload to a topic
type Publisher interface {
	Publish(ctx context.Context, topic string, payload []byte, qos byte) error
}

// Client is a reconnecting MQTT publisher
type Client struct {
	config autopaho.ClientConfig
	conn   *autopaho.ConnectionManager
	logger *log.Logger
}

// NewClient prepares a client for broker, e.g. "mqtt://localhost:1883".
// Nothing is dialled until Connect.
func NewClient(broker, clientID string, logger *log.Logger) (*Client, error) {
	addr, err := url.Parse(broker)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid broker url %q", broker)
	}
	if addr.Scheme == "" || addr.Host == "" {
		return nil, errors.Errorf("invalid broker url %q: want scheme://host:port", broker)
	}
	if logger == nil {
		logger = log.Default()
	}

	c := &Client{logger: logger}
	c.config = autopaho.ClientConfig{
		ServerUrls:            []*url.URL{addr},
		KeepAlive:             20,
		SessionExpiryInterval: 60,
		OnConnectionUp:        c.onConnUp,
		OnConnectError:        c.onConnError,
		ClientConfig: paho.ClientConfig{
			ClientID:           clientID,
			OnClientError:      c.onConnError,
			OnServerDisconnect: c.onSrvDisconnect,
		},
	}
	return c, nil
}

func (c *Client) onConnUp(_ *autopaho.ConnectionManager, _ *paho.Connack) {
	c.logger.Info("connected to mqtt broker")
}

func (c *Client) onConnError(err error) {
	c.logger.Error("mqtt connection error", "err", err)
}

func (c *Client) onSrvDisconnect(d *paho.Disconnect) {
	c.logger.Info("disconnected from mqtt broker", "reason", d.ReasonCode)
}

// Connect starts the connection manager and waits briefly for the first
// connection. The manager keeps reconnecting in the background until ctx
// ends, so a broker that is down at startup is not fatal.
func (c *Client) Connect(ctx context.Context) error {
	cm, err := autopaho.NewConnection(ctx, c.config)
	if err != nil {
		return errors.Wrap(err, "failed to start mqtt connection")
	}
	c.conn = cm

	waitCtx, cancel := context.WithTimeout(ctx, connectionTimeout)
	defer cancel()
	if err := cm.AwaitConnection(waitCtx); err != nil {
		c.logger.Warn("mqtt broker not reachable yet, retrying in background", "err", err)
	}
	return nil
}

// Publish sends payload to topic
func (c *Client) Publish(ctx context.Context, topic string, payload []byte, qos byte) error {
	if c.conn == nil {
		return errors.New("mqtt client is not connected")
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	_, err := c.conn.Publish(ctx, &paho.Publish{
		Topic:   topic,
		QoS:     qos,
		Payload: payload,
	})
	return err
}

// Disconnect closes the connection
func (c *Client) Disconnect(ctx context.Context) error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Disconnect(ctx)
}
