package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schoolhub_backend/internals/features/assignments/model"
	"schoolhub_backend/internals/helpers/signals"
)

func TestAuthorize(t *testing.T) {
	creator, other := uuid.New(), uuid.New()
	l := model.NewDraft(creator, time.Now())

	tests := []struct {
		act      Action
		user     uuid.UUID
		canWrite bool
		want     error
	}{
		{ActionDeleteForMe, creator, false, nil},
		{ActionDeleteForMe, other, true, ErrNotCreator},
		{ActionRestoreForMe, other, true, ErrNotCreator},
		{ActionPublish, creator, false, nil},
		{ActionPublish, other, true, nil},
		{ActionPublish, other, false, ErrForbidden},
		{ActionDeleteForEveryone, other, false, ErrForbidden},
		{ActionRestore, other, true, nil},
		{Action("nope"), creator, true, ErrUnknownAction},
	}
	for _, tt := range tests {
		t.Run(string(tt.act), func(t *testing.T) {
			assert.ErrorIs(t, Authorize(tt.act, &l, tt.user, tt.canWrite), tt.want)
		})
	}
}

func TestApplySequence(t *testing.T) {
	now := time.Now()
	l := model.NewDraft(uuid.New(), now)

	require.NoError(t, Apply(ActionPublish, &l, now))
	assert.ErrorIs(t, Apply(ActionPublish, &l, now), model.ErrAlreadyPublished)
	require.NoError(t, Apply(ActionDraft, &l, now))
	require.NoError(t, Apply(ActionDeleteForEveryone, &l, now))
	assert.ErrorIs(t, Apply(ActionPublish, &l, now), model.ErrDeletedForEveryone)
	require.NoError(t, Apply(ActionRestore, &l, now))
	assert.ErrorIs(t, Apply(ActionRestore, &l, now), model.ErrNotDeleted)
}

func TestAnnouncePublished(t *testing.T) {
	bus := signals.NewBus()
	var got signals.AssignmentPublishedPayload
	var subject uuid.UUID
	bus.Subscribe(signals.AssignmentPublished, func(_ context.Context, ev signals.Event) error {
		got = ev.Payload.(signals.AssignmentPublishedPayload)
		subject = ev.SubjectID
		return nil
	})

	staff := uuid.New()
	m := &model.StaffAssignmentModel{
		StaffAssignmentID:          uuid.New(),
		StaffAssignmentTitle:       "Rapat",
		StaffAssignmentAssigneeIDs: []string{staff.String(), "bukan-uuid"},
	}
	by := uuid.New()
	AnnouncePublished(context.Background(), bus, m, by)

	assert.Equal(t, m.StaffAssignmentID, subject)
	assert.Equal(t, "staff_assignment", got.Kind)
	assert.Equal(t, []uuid.UUID{staff}, got.AssigneeIDs)
	assert.Equal(t, "staff", got.AssigneeType)
	assert.Equal(t, by, got.PublishedBy)
	assert.Equal(t, "/staff-assignments/"+m.StaffAssignmentID.String(), got.Link)

	// nil bus aman
	AnnouncePublished(context.Background(), nil, m, by)
}
