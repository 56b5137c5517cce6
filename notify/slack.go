package notify

import (
	"context"

	"github.com/nlopes/slack"
	"github.com/pkg/errors"
)

type slackPoster interface {
	PostMessage(channel, text string, params slack.PostMessageParameters) (string, string, error)
}

type Slack struct {
	api     slackPoster
	channel string
}

func NewSlack(token, channel string) *Slack {
	if channel == "" {
		channel = "#general"
	}
	return &Slack{api: slack.New(token), channel: channel}
}

func (self *Slack) ID() string {
	return "slack"
}

func (self *Slack) Notify(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := slack.NewPostMessageParameters()
	params.Username = "motion"
	if m.Link != "" {
		params.Attachments = []slack.Attachment{{
			Title:     m.Title,
			TitleLink: m.Link,
		}}
	}
	if _, _, err := self.api.PostMessage(self.channel, m.String(), params); err != nil {
		return errors.Wrap(err, "slack post")
	}
	return nil
}
