package mailer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewPicksConsoleWithoutKey(t *testing.T) {
	m := New(Options{AppName: "SchoolHub"}, zap.NewNop())
	_, ok := m.(*Console)
	assert.True(t, ok)

	m = New(Options{APIKey: "SG.x", AppName: "SchoolHub", FromEmail: "no-reply@schoolhub.id"}, zap.NewNop())
	_, ok = m.(*sendgridMailer)
	assert.True(t, ok)
}

func TestConsoleRecordsValidMessagesOnly(t *testing.T) {
	c := NewConsole("SchoolHub", nil)
	ctx := context.Background()

	require.NoError(t, c.Send(ctx, Message{Subject: "no recipients", Text: "x"}))
	require.NoError(t, c.Send(ctx, Message{To: []Address{{Email: "a@b.id"}}, Subject: "empty"}))
	require.NoError(t, c.Send(ctx, Message{To: []Address{{Email: "a@b.id"}}, Subject: "Tugas baru", Text: "Ada tugas"}))

	sent := c.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "Tugas baru", sent[0].Subject)
}

func TestSendgridPrepare(t *testing.T) {
	s := NewSendgrid(Options{APIKey: "k", AppName: "SchoolHub", FromEmail: "no-reply@schoolhub.id"}, zap.NewNop()).(*sendgridMailer)
	m := s.prepare(Message{
		To:      []Address{{Name: "Siti", Email: "siti@sekolah.id"}},
		Subject: "Tugas baru",
		Text:    "plain",
		HTML:    "<p>html</p>",
	})
	require.Len(t, m.Personalizations, 1)
	assert.Equal(t, "[SchoolHub] Tugas baru", m.Personalizations[0].Subject)
	assert.Equal(t, "siti@sekolah.id", m.Personalizations[0].To[0].Address)
	assert.Len(t, m.Content, 2)
	assert.Equal(t, "SchoolHub", m.From.Name)
}
