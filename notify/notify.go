// Package notify sends motion alerts to phones and chat services.
//
// Pushbullet is the primary channel; Telegram, Slack, Mastodon, Jabber and
// email are used when their sections are configured.
package notify

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/barnybug/motionnotify/config"
	"github.com/hashicorp/go-multierror"
)

type Message struct {
	Title string
	Body  string
	// Link to where the media can be viewed, if any.
	Link string
	// Attachment is a local media file some backends can send inline.
	Attachment string
}

func (m Message) String() string {
	return fmt.Sprintf("%s: %s", m.Title, m.Body)
}

// IsImage reports whether the attachment is a still picture.
func (m Message) IsImage() bool {
	switch strings.ToLower(filepath.Ext(m.Attachment)) {
	case ".jpg", ".jpeg", ".png", ".gif":
		return true
	}
	return false
}

type Notifier interface {
	ID() string
	Notify(ctx context.Context, m Message) error
}

// Multi sends to every notifier, carrying on past failures.
type Multi []Notifier

func (self Multi) ID() string {
	ids := make([]string, len(self))
	for i, n := range self {
		ids[i] = n.ID()
	}
	return strings.Join(ids, ",")
}

func (self Multi) Notify(ctx context.Context, m Message) error {
	var result *multierror.Error
	for _, n := range self {
		log.Printf("Sending %s notification: %s", n.ID(), m)
		if err := n.Notify(ctx, m); err != nil {
			log.Printf("%s error: %s", n.ID(), err)
			result = multierror.Append(result, fmt.Errorf("%s: %w", n.ID(), err))
		}
	}
	return result.ErrorOrNil()
}

// New builds a Multi from every configured backend. Pushbullet is only
// included when enabled.
func New(conf *config.Config) (Multi, error) {
	var ns Multi
	if conf.Pushbullet.Enabled {
		ns = append(ns, NewPushbullet(conf.Pushbullet.Apikey, nil))
	}
	if conf.Telegram.Token != "" {
		t, err := NewTelegram(conf.Telegram.Token, conf.Telegram.Chat_Id)
		if err != nil {
			return nil, err
		}
		ns = append(ns, t)
	}
	if conf.Slack.Token != "" {
		ns = append(ns, NewSlack(conf.Slack.Token, conf.Slack.Channel))
	}
	if conf.Mastodon.Access_Token != "" {
		ns = append(ns, NewMastodon(conf.Mastodon))
	}
	if conf.Jabber.Jid != "" {
		ns = append(ns, NewJabber(conf.Jabber))
	}
	if conf.Email.Server != "" {
		ns = append(ns, NewEmail(conf.Email))
	}
	return ns, nil
}
