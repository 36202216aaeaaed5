package publish

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/blakelange123/vibelux-stressindex/services/watcher/internal/models"
)

const alertQoS = 1

type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

// AlertPublisher sends severe and critical results to <topic>/<zone_id>.
type AlertPublisher struct {
	client  tokenPublisher
	topic   string
	timeout time.Duration
	close   func()
}

// NewAlertPublisher connects to the MQTT broker and returns a publisher for
// the given topic prefix.
func NewAlertPublisher(brokerURL, clientID, topic string, timeout time.Duration) (*AlertPublisher, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("alert topic must not be empty")
	}
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetConnectTimeout(timeout).
		SetAutoReconnect(false)
	client := mqtt.NewClient(opts)

	token := client.Connect()
	if !token.WaitTimeout(timeout) {
		return nil, fmt.Errorf("connect to %s: timed out after %s", brokerURL, timeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", brokerURL, err)
	}

	p := newAlertPublisher(client, topic, timeout)
	p.close = func() { client.Disconnect(250) }
	return p, nil
}

func newAlertPublisher(client tokenPublisher, topic string, timeout time.Duration) *AlertPublisher {
	return &AlertPublisher{client: client, topic: strings.TrimRight(topic, "/"), timeout: timeout}
}

// Publish sends one alert per row and returns the first failure.
func (p *AlertPublisher) Publish(rows []models.EvaluationRow) error {
	for _, r := range rows {
		payload, err := json.Marshal(newAlert(r))
		if err != nil {
			return fmt.Errorf("encode alert for zone %s: %w", r.ZoneID, err)
		}

		token := p.client.Publish(p.topic+"/"+r.ZoneID, alertQoS, false, payload)
		if !token.WaitTimeout(p.timeout) {
			return fmt.Errorf("publish alert for zone %s: timed out", r.ZoneID)
		}
		if err := token.Error(); err != nil {
			return fmt.Errorf("publish alert for zone %s: %w", r.ZoneID, err)
		}
	}
	return nil
}

// Close disconnects from the broker.
func (p *AlertPublisher) Close() {
	if p.close != nil {
		p.close()
	}
}
