package notify

import (
	"context"
	"log"
	"net/http"

	"github.com/mitsuse/pushbullet-go"
	"github.com/mitsuse/pushbullet-go/requests"
	"github.com/pkg/errors"
)

type Pushbullet struct {
	pb *pushbullet.Pushbullet
}

// NewPushbullet creates a client for the API key. A nil httpClient uses
// http.DefaultClient.
func NewPushbullet(token string, httpClient *http.Client) *Pushbullet {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	log.Println("initialized pushbullet client")
	return &Pushbullet{pb: pushbullet.NewClient(token, httpClient)}
}

func (self *Pushbullet) ID() string {
	return "pushbullet"
}

func (self *Pushbullet) Notify(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := requests.NewNote()
	n.Title = m.Title
	n.Body = m.Body
	if _, err := self.pb.PostPushesNote(n); err != nil {
		return errors.Wrap(err, "pushbullet note")
	}
	return nil
}
