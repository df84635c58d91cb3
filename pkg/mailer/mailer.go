// Package mailer sends plain notification mail such as new-inquiry alerts.
package mailer

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
)

var ErrNoRecipients = errors.New("mailer: no recipients")

type Message struct {
	To      []string
	ReplyTo string
	Subject string
	Text    string
	HTML    string
}

func (m Message) Validate() error {
	for _, to := range m.To {
		if strings.TrimSpace(to) != "" {
			return nil
		}
	}
	return ErrNoRecipients
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer writes messages to the log instead of delivering them. Used in
// development and tests.
type LogMailer struct {
	logger logrus.FieldLogger
}

func NewLogMailer(logger logrus.FieldLogger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	m.logger.WithFields(logrus.Fields{
		"to":       strings.Join(msg.To, ","),
		"reply-to": msg.ReplyTo,
		"subject":  msg.Subject,
	}).Info("mail (log driver)")
	return nil
}
