package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/assignments/model"
	"schoolhub_backend/internals/helpers/signals"
)

type Action string

const (
	ActionPublish           Action = "publish"
	ActionDraft             Action = "draft"
	ActionDeleteForMe       Action = "delete_for_me"
	ActionRestoreForMe      Action = "restore_for_me"
	ActionDeleteForEveryone Action = "delete_for_everyone"
	ActionRestore           Action = "restore"
)

var (
	ErrNotCreator    = errors.New("only the creator can do this")
	ErrForbidden     = errors.New("not allowed")
	ErrUnknownAction = errors.New("unknown action")
)

// Authorize: delete-for-me/restore-for-me khusus pembuat; aksi lain boleh
// pembuat atau pemegang izin tulis.
func Authorize(act Action, l *model.Lifecycle, userID uuid.UUID, canWrite bool) error {
	isCreator := l.CreatedBy == userID
	switch act {
	case ActionDeleteForMe, ActionRestoreForMe:
		if !isCreator {
			return ErrNotCreator
		}
		return nil
	case ActionPublish, ActionDraft, ActionDeleteForEveryone, ActionRestore:
		if isCreator || canWrite {
			return nil
		}
		return ErrForbidden
	}
	return ErrUnknownAction
}

func Apply(act Action, l *model.Lifecycle, now time.Time) error {
	switch act {
	case ActionPublish:
		return l.Publish(now)
	case ActionDraft:
		return l.MoveToDraft(now)
	case ActionDeleteForMe:
		return l.DeleteForMe(now)
	case ActionRestoreForMe:
		return l.RestoreForMe()
	case ActionDeleteForEveryone:
		return l.DeleteForEveryone(now)
	case ActionRestore:
		return l.Restore()
	}
	return ErrUnknownAction
}

// Kind: nama jenis tugas + link yang ditaruh di notifikasi.
func Kind(a model.Assignment) (kind, link string) {
	switch a.(type) {
	case *model.StaffAssignmentModel:
		return "staff_assignment", "/staff-assignments/" + a.ID().String()
	default:
		return "student_assignment", "/student-assignments/" + a.ID().String()
	}
}

// AnnouncePublished: notifikasi penerima dibuat oleh subscriber topic ini.
func AnnouncePublished(ctx context.Context, bus *signals.Bus, a model.Assignment, by uuid.UUID) {
	kind, link := Kind(a)
	bus.Publish(ctx, signals.AssignmentPublished, a.ID(), signals.AssignmentPublishedPayload{
		Kind:         kind,
		Title:        a.Heading(),
		AssigneeIDs:  a.Assignees(),
		AssigneeType: a.AssigneeType(),
		PublishedBy:  by,
		Link:         link,
	})
}
