// Package telemetry publishes every decided tick of the control loop on MQTT.
package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/oblq/fancontrol/internal/control"
)

const DefaultTopic = "fancontrol/status"

type client interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
}

// Message is the JSON payload published for every tick.
type Message struct {
	RunID string    `json:"run_id"`
	Time  time.Time `json:"time"`
	control.Report
}

// Publisher is a control.Observer sending tick reports to a broker.
type Publisher struct {
	client client
	topic  string
	runID  string
	logger *slog.Logger
	now    func() time.Time
}

// Dial connects to broker, eg.: `tcp://127.0.0.1:1883`.
func Dial(broker, clientID, topic, runID string, logger *slog.Logger) (*Publisher, error) {
	brokerURL, err := url.Parse(broker)
	if err != nil {
		return nil, fmt.Errorf("invalid mqtt broker: %w", err)
	}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL.String()).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	c := mqtt.NewClient(opts)
	if token := c.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("unable to connect to %s: %w", brokerURL.Redacted(), token.Error())
	}
	logger.Info("connected to mqtt broker", "broker", brokerURL.Redacted(), "client_id", clientID, "topic", topic)

	return newPublisher(c, topic, runID, logger), nil
}

func newPublisher(c client, topic, runID string, logger *slog.Logger) *Publisher {
	if topic == "" {
		topic = DefaultTopic
	}
	return &Publisher{client: c, topic: topic, runID: runID, logger: logger, now: time.Now}
}

// Observe publishes r without waiting for the broker acknowledgement.
func (p *Publisher) Observe(r control.Report) {
	payload, err := json.Marshal(Message{RunID: p.runID, Time: p.now().UTC(), Report: r})
	if err != nil {
		p.logger.Warn("unable to encode telemetry", "err", err)
		return
	}
	p.client.Publish(p.topic, 0, true, payload)
}

func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
