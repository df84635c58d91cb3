package mailer_test

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/pkg/mailer"
)

func TestLogMailer(t *testing.T) {
	t.Parallel()
	logger, hook := test.NewNullLogger()
	m := mailer.NewLogMailer(logger)

	require.ErrorIs(t, m.Send(context.Background(), mailer.Message{To: []string{" "}}), mailer.ErrNoRecipients)
	require.NoError(t, m.Send(context.Background(), mailer.Message{To: []string{"ops@example.com"}, Subject: "hi"}))

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "hi", entry.Data["subject"])
}
