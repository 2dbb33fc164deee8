package service

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/notifications/model"
	"schoolhub_backend/internals/helpers/mailer"
)

func TestBuildRowsDedupesAndDefaults(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	creator := uuid.New()
	rows := BuildRows(SendInput{
		Recipients: []Recipient{
			{ID: a},
			{ID: a, Type: model.RecipientStaff},
			{ID: b, Type: model.RecipientStudent},
			{ID: uuid.Nil},
		},
		Title:     "  Tugas baru ",
		Message:   "Kerjakan bab 3",
		Data:      map[string]any{"assignment_id": "x"},
		CreatedBy: &creator,
	})

	require.Len(t, rows, 2)
	assert.Equal(t, a, rows[0].NotificationRecipientID)
	assert.Equal(t, model.RecipientStaff, rows[0].NotificationRecipientType)
	assert.Equal(t, model.RecipientStudent, rows[1].NotificationRecipientType)
	assert.Equal(t, "Tugas baru", rows[0].NotificationTitle)
	assert.Equal(t, model.CategoryGeneral, rows[0].NotificationCategory)
	assert.Equal(t, &creator, rows[1].NotificationCreatedBy)

	var data map[string]any
	require.NoError(t, json.Unmarshal(rows[0].NotificationData, &data))
	assert.Equal(t, "x", data["assignment_id"])
}

func TestBuildRowsEmpty(t *testing.T) {
	assert.Empty(t, BuildRows(SendInput{Title: "x"}))
}

func TestBuildMessageEscapesHTML(t *testing.T) {
	link := "https://app.schoolhub.id/a?x=1&y=2"
	msg := BuildMessage(SendInput{Title: "Hai", Message: "<b>penting</b>", Link: &link},
		[]mailer.Address{{Email: "a@b.id"}})

	assert.Equal(t, "Hai", msg.Subject)
	assert.Contains(t, msg.HTML, "&lt;b&gt;penting&lt;/b&gt;")
	assert.Contains(t, msg.HTML, "x=1&amp;y=2")
	assert.Contains(t, msg.Text, link)
}
