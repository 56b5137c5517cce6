// Package mqtt publishes events to an MQTT broker under the gohome/ prefix.
package mqtt

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/barnybug/motionnotify/pubsub"
	MQTT "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

const Prefix = "gohome/"

var Timeout = 10 * time.Second

// Publisher for mqtt
type Publisher struct {
	broker string
	client MQTT.Client
}

func clientID() string {
	hostname, _ := os.Hostname()
	return fmt.Sprintf("motion-notify/%s-%d-%d", hostname, os.Getpid(), rand.Int())
}

// NewPublisher connects to the broker, eg tcp://127.0.0.1:1883.
func NewPublisher(broker string) (*Publisher, error) {
	opts := MQTT.NewClientOptions()
	opts.AddBroker(broker)
	opts.SetClientID(clientID())
	opts.SetCleanSession(true)

	client := MQTT.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(Timeout) {
		return nil, fmt.Errorf("mqtt connect to %s timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, errors.Wrapf(err, "mqtt connect to %s", broker)
	}
	return &Publisher{broker: broker, client: client}, nil
}

// ID of Publisher
func (pub *Publisher) ID() string {
	return "mqtt: " + pub.broker
}

// Topic an event is published on.
func Topic(ev *pubsub.Event) string {
	return Prefix + ev.Topic
}

// Emit an event and wait for the broker to acknowledge it.
func (pub *Publisher) Emit(ev *pubsub.Event) error {
	token := pub.client.Publish(Topic(ev), 1, false, ev.Bytes())
	if !token.WaitTimeout(Timeout) {
		return fmt.Errorf("mqtt publish to %s timed out", Topic(ev))
	}
	return token.Error()
}

func (pub *Publisher) Close() {
	pub.client.Disconnect(250)
}
