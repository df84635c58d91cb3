package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/sitecms/modules/website/domain/entities/inquiry"
	"github.com/iota-uz/sitecms/pkg/mailer"
)

const notifyTimeout = 30 * time.Second

// NotificationService mails the site owners about new inquiries. Delivery is
// best effort: failures are logged and never reach the visitor.
type NotificationService struct {
	mailer  mailer.Mailer
	to      []string
	baseURL string
	logger  logrus.FieldLogger
}

func NewNotificationService(m mailer.Mailer, to []string, baseURL string, logger logrus.FieldLogger) *NotificationService {
	return &NotificationService{
		mailer:  m,
		to:      to,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (s *NotificationService) Message(e *inquiry.SubmittedEvent) mailer.Message {
	i := e.Inquiry
	subject := fmt.Sprintf("New message from %s", i.Name())
	if i.Kind() == inquiry.KindApplication {
		subject = fmt.Sprintf("New application for %s from %s", e.JobTitle, i.Name())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\n", i.Name(), i.Email())
	if i.Phone() != "" {
		fmt.Fprintf(&b, "Phone: %s\n", i.Phone())
	}
	if i.Company() != "" {
		fmt.Fprintf(&b, "Company: %s\n", i.Company())
	}
	if i.ResumeKey() != "" {
		fmt.Fprintf(&b, "Resume: %s/uploads/%s\n", s.baseURL, i.ResumeKey())
	}
	if i.Message() != "" {
		fmt.Fprintf(&b, "\n%s\n", i.Message())
	}

	return mailer.Message{
		To:      s.to,
		ReplyTo: i.Email(),
		Subject: subject,
		Text:    b.String(),
	}
}

// OnSubmitted is subscribed asynchronously to inquiry.SubmittedEvent.
func (s *NotificationService) OnSubmitted(e *inquiry.SubmittedEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	logger := s.logger.WithFields(logrus.Fields{
		"inquiry-id": e.Inquiry.ID().String(),
		"kind":       string(e.Inquiry.Kind()),
	})
	if err := s.mailer.Send(ctx, s.Message(e)); err != nil {
		logger.WithError(err).Error("failed to send inquiry notification")
		return
	}
	logger.Info("inquiry notification sent")
}
