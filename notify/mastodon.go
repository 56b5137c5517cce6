package notify

import (
	"context"
	"log"
	"time"

	"github.com/barnybug/motionnotify/config"
	"github.com/mattn/go-mastodon"
)

type tooter interface {
	PostStatus(ctx context.Context, toot *mastodon.Toot) (*mastodon.Status, error)
}

type Mastodon struct {
	client  tooter
	retries int
	delay   time.Duration
}

func NewMastodon(m config.MastodonConf) *Mastodon {
	client := mastodon.NewClient(&mastodon.Config{
		Server:       m.Server,
		ClientID:     m.Client_Id,
		ClientSecret: m.Client_Secret,
		AccessToken:  m.Access_Token,
	})
	return &Mastodon{client: client, retries: 3, delay: time.Second}
}

func (self *Mastodon) ID() string {
	return "mastodon"
}

// Notify posts a private toot, retrying a couple of times.
func (self *Mastodon) Notify(ctx context.Context, m Message) error {
	toot := mastodon.Toot{
		Status:     m.String(),
		Visibility: "private",
	}
	var err error
	for retry := 0; retry < self.retries; retry++ {
		var status *mastodon.Status
		status, err = self.client.PostStatus(ctx, &toot)
		if err == nil {
			log.Printf("Sent: %s", status.URL)
			return nil
		}
		log.Printf("Could not send toot: %v", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(self.delay):
		}
	}
	return err
}
