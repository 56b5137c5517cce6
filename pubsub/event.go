package pubsub

import (
	"encoding/json"
	"time"
)

type Fields map[string]interface{}

// Event is a gohome style event: a topic, a timestamp and free form fields.
type Event struct {
	Topic     string
	Timestamp time.Time
	Fields    Fields
}

const TimeFormat = "2006-01-02 15:04:05.000000"

func NewEvent(topic string, fields Fields) *Event {
	if fields == nil {
		fields = Fields{}
	}
	return &Event{Topic: topic, Timestamp: time.Now().UTC(), Fields: fields}
}

func (event *Event) Map() map[string]interface{} {
	data := make(map[string]interface{})
	data["topic"] = event.Topic
	data["timestamp"] = event.Timestamp.Format(TimeFormat)
	for k, v := range event.Fields {
		data[k] = v
	}
	return data
}

func (event *Event) Bytes() []byte {
	v, _ := json.Marshal(event.Map())
	return v
}

func (event *Event) String() string {
	return string(event.Bytes())
}

func (event *Event) StringField(name string) string {
	ret, _ := event.Fields[name].(string)
	return ret
}

func (event *Event) Device() string {
	return event.StringField("device")
}

func (event *Event) Command() string {
	return event.StringField("command")
}
