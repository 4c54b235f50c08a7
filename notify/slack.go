// Package notify posts operator notices to slack. Everything here is
// best-effort; a failed notice never affects the run.
package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/slack-go/slack"
)

type Notifier interface {
	Post(ctx context.Context, msg string) error
}

type SlackNotifier struct {
	client  *slack.Client
	channel string
	silent  bool
}

func NewSlack(channel, token string, silent bool) *SlackNotifier {
	return &SlackNotifier{client: slack.New(token), channel: channel, silent: silent}
}

func (s *SlackNotifier) Post(ctx context.Context, msg string) error {
	if s.silent {
		log.Printf("(silent mode) msg NOT posted to %s", s.channel)
		return nil
	}

	c, ts, err := s.client.PostMessageContext(
		ctx,
		s.channel,
		slack.MsgOptionText(msg, false),
	)
	if err != nil {
		return fmt.Errorf("error posting msg to slack: %w", err)
	}
	log.Printf("Msg posted to %s (%s) at %s", s.channel, c, ts)

	return nil
}
