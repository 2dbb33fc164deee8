package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/notifications/model"
	"schoolhub_backend/internals/helpers/signals"
)

func TestAssignmentInput(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	id := uuid.New()
	in := AssignmentInput(signals.AssignmentPublishedPayload{
		Kind:         "student_assignment",
		Title:        "PR Matematika",
		AssigneeIDs:  []uuid.UUID{a, b},
		AssigneeType: model.RecipientStudent,
		PublishedBy:  uuid.New(),
		Link:         "/student-assignments/" + id.String(),
	}, id)

	require.Len(t, in.Recipients, 2)
	assert.Equal(t, Recipient{ID: a, Type: model.RecipientStudent}, in.Recipients[0])
	assert.Equal(t, model.CategoryAssignment, in.Category)
	assert.Contains(t, in.Title, "PR Matematika")
	assert.False(t, in.SendEmail)
	require.NotNil(t, in.CreatedBy)
	assert.Equal(t, id.String(), in.Data["assignment_id"])

	rows := BuildRows(in)
	assert.Len(t, rows, 2)
}

func TestRegisterIgnoresEmptyAssignees(t *testing.T) {
	bus := signals.NewBus()
	(&Service{}).Register(bus)
	assert.Equal(t, 1, bus.HandlerCount(signals.AssignmentPublished))

	err := bus.Emit(context.Background(), signals.Event{
		Topic:   signals.AssignmentPublished,
		Payload: signals.AssignmentPublishedPayload{Title: "x"},
	})
	assert.NoError(t, err)

	err = bus.Emit(context.Background(), signals.Event{Topic: signals.AssignmentPublished, Payload: "bogus"})
	assert.Error(t, err)
}
