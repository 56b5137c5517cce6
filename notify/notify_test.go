package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/barnybug/motionnotify/config"
	"github.com/stretchr/testify/assert"
)

type recorder struct {
	id       string
	err      error
	messages []Message
}

func (r *recorder) ID() string {
	return r.id
}

func (r *recorder) Notify(ctx context.Context, m Message) error {
	r.messages = append(r.messages, m)
	return r.err
}

func TestMultiFanOut(t *testing.T) {
	a := &recorder{id: "a"}
	b := &recorder{id: "b", err: errors.New("offline")}
	c := &recorder{id: "c"}
	multi := Multi{a, b, c}
	assert.Equal(t, "a,b,c", multi.ID())

	m := Message{Title: "Motion - Hall", Body: "Motion detected"}
	err := multi.Notify(context.Background(), m)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "b: offline")
	// a failure does not stop the others
	assert.Equal(t, []Message{m}, a.messages)
	assert.Equal(t, []Message{m}, c.messages)
}

func TestMultiEmpty(t *testing.T) {
	var multi Multi
	assert.NoError(t, multi.Notify(context.Background(), Message{}))
}

func TestMessage(t *testing.T) {
	m := Message{Title: "T", Body: "B", Attachment: "/tmp/01.JPG"}
	assert.Equal(t, "T: B", m.String())
	assert.True(t, m.IsImage())
	m.Attachment = "/tmp/01.avi"
	assert.False(t, m.IsImage())
}

func TestNewFromConfig(t *testing.T) {
	conf := config.Defaults()
	ns, err := New(conf)
	assert.NoError(t, err)
	assert.Empty(t, ns)

	conf.Pushbullet.Enabled = true
	conf.Pushbullet.Apikey = "o.key"
	conf.Slack.Token = "xoxb"
	conf.Email.Server = "localhost:25"
	ns, err = New(conf)
	assert.NoError(t, err)
	assert.Equal(t, "pushbullet,slack,email", ns.ID())
}
