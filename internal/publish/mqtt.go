package publish

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/sirupsen/logrus"

	"github.com/d21d3q/gobeacon/internal/beacon"
	"github.com/d21d3q/gobeacon/internal/config"
)

const publishTimeout = 5 * time.Second

var (
	ErrNotConnected = errors.New("mqtt client not connected")
	ErrNotBeacon    = errors.New("reading carries no beacon")
)

// Client publishes decoded readings to an MQTT broker.
type Client struct {
	client mqtt.Client
	cfg    config.MQTTConfig
	logger logrus.FieldLogger
}

// Message is the JSON document published for each reading.
type Message struct {
	Format    string         `json:"format"`
	RawHex    string         `json:"raw_hex"`
	Timestamp time.Time      `json:"timestamp"`
	Fields    map[string]any `json:"fields"`
}

func NewClient(cfg config.MQTTConfig, logger logrus.FieldLogger) *Client {
	c := &Client{
		cfg:    cfg,
		logger: logger.WithField("component", "mqtt"),
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", cfg.Broker, cfg.Port))
	opts.SetClientID(cfg.ClientID)
	opts.SetCleanSession(true)
	opts.SetKeepAlive(30 * time.Second)
	opts.SetPingTimeout(10 * time.Second)
	opts.SetConnectTimeout(cfg.ConnectTimeout)

	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		c.logger.WithFields(logrus.Fields{"broker": cfg.Broker, "port": cfg.Port}).Info("mqtt connected")
	})
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		c.logger.WithError(err).Warn("mqtt connection lost")
	})

	c.client = mqtt.NewClient(opts)
	return c
}

// Connect waits for the broker to acknowledge the connection. The client is
// ready to publish as soon as Connect returns nil.
func (c *Client) Connect(ctx context.Context) error {
	if c.IsConnected() {
		return nil
	}

	token := c.client.Connect()
	const poll = 200 * time.Millisecond
	for {
		if token.WaitTimeout(poll) {
			if err := token.Error(); err != nil {
				return fmt.Errorf("mqtt connect: %w", err)
			}
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}
}

// Publish sends reading to <topic>/<format>.
func (c *Client) Publish(reading beacon.Reading, rawHex string) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	msg, err := NewMessage(reading, rawHex, time.Now())
	if err != nil {
		return err
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal reading: %w", err)
	}

	topic := Topic(c.cfg.Topic, reading.Kind())
	token := c.client.Publish(topic, c.cfg.QoS, false, data)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish timeout for topic %s", topic)
	}
	if err := token.Error(); err != nil {
		c.logger.WithError(err).WithField("topic", topic).Error("failed to publish reading")
		return fmt.Errorf("publish reading: %w", err)
	}
	c.logger.WithField("topic", topic).Debug("published reading")
	return nil
}

// IsConnected reports whether the broker connection is up.
func (c *Client) IsConnected() bool {
	return c.client.IsConnectionOpen()
}

// Disconnect closes the broker connection. Safe to call more than once.
func (c *Client) Disconnect() {
	if c.IsConnected() {
		c.client.Disconnect(250)
	}
	c.logger.Info("mqtt disconnected")
}

// Topic joins the configured base topic with the reading format.
func Topic(base string, kind beacon.Kind) string {
	base = strings.TrimRight(base, "/")
	if base == "" {
		return kind.String()
	}
	return base + "/" + kind.String()
}

// NewMessage builds the published document for a valid reading.
func NewMessage(reading beacon.Reading, rawHex string, now time.Time) (Message, error) {
	if !reading.Valid() {
		return Message{}, ErrNotBeacon
	}
	fields := reading.Fields()
	delete(fields, "type")
	return Message{
		Format:    reading.Kind().String(),
		RawHex:    rawHex,
		Timestamp: now.UTC(),
		Fields:    fields,
	}, nil
}
