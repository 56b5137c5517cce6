package notify

import (
	"context"

	"github.com/barnybug/motionnotify/config"
	xmpp "github.com/mattn/go-xmpp"
	"github.com/pkg/errors"
)

type chatSender interface {
	Send(chat xmpp.Chat) (int, error)
	Close() error
}

var dialJabber = func(host, jid, pass string) (chatSender, error) {
	return xmpp.NewClient(host, jid, pass, false)
}

// Jabber connects for each message; the process is too short lived to keep
// a session open.
type Jabber struct {
	conf config.JabberConf
}

func NewJabber(conf config.JabberConf) *Jabber {
	if conf.Host == "" {
		conf.Host = "talk.google.com:443"
	}
	if conf.To == "" {
		conf.To = conf.Jid
	}
	return &Jabber{conf: conf}
}

func (self *Jabber) ID() string {
	return "jabber"
}

func (self *Jabber) Notify(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	talk, err := dialJabber(self.conf.Host, self.conf.Jid, self.conf.Pass)
	if err != nil {
		return errors.Wrap(err, "jabber connect")
	}
	defer talk.Close()
	_, err = talk.Send(xmpp.Chat{Remote: self.conf.To, Type: "chat", Text: m.String()})
	return errors.Wrap(err, "jabber send")
}
