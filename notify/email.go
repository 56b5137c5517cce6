package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/barnybug/motionnotify/config"
	"github.com/pkg/errors"
)

var sendMail = smtp.SendMail

type Email struct {
	conf config.EmailConf
}

func NewEmail(conf config.EmailConf) *Email {
	return &Email{conf: conf}
}

func (self *Email) ID() string {
	return "email"
}

func (self *Email) Notify(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(self.conf.To) == 0 {
		return errors.New("email: no recipients")
	}
	body := m.Body
	if m.Link != "" && !strings.Contains(body, m.Link) {
		body += "\n\n" + m.Link
	}
	msg := fmt.Sprintf("From: %s\nTo: %s\nSubject: %s\n\n%s\n",
		self.conf.From, strings.Join(self.conf.To, ", "), m.Title, body)
	err := sendMail(self.conf.Server, nil, self.conf.From, self.conf.To, []byte(msg))
	return errors.Wrap(err, "sending email")
}
