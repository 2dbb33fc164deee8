package dto

import (
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/assignments/model"
)

// LifecycleResponse di-embed ke response kedua jenis tugas.
type LifecycleResponse struct {
	Status               string     `json:"status"`
	IsDraft              bool       `json:"is_draft"`
	DraftAt              *time.Time `json:"draft_at,omitempty"`
	PublishedAt          *time.Time `json:"published_at,omitempty"`
	IsDeletedForMe       bool       `json:"is_deleted_for_me"`
	DeletedForMeAt       *time.Time `json:"deleted_for_me_at,omitempty"`
	IsDeletedForEveryone bool       `json:"is_deleted_for_everyone"`
	DeletedForEveryoneAt *time.Time `json:"deleted_for_everyone_at,omitempty"`
	CreatedBy            uuid.UUID  `json:"created_by"`
}

func FromLifecycle(l *model.Lifecycle) LifecycleResponse {
	return LifecycleResponse{
		Status:               l.Status,
		IsDraft:              l.IsDraft,
		DraftAt:              l.DraftAt,
		PublishedAt:          l.PublishedAt,
		IsDeletedForMe:       l.IsDeletedForMe,
		DeletedForMeAt:       l.DeletedForMeAt,
		IsDeletedForEveryone: l.IsDeletedForEveryone,
		DeletedForEveryoneAt: l.DeletedForEveryoneAt,
		CreatedBy:            l.CreatedBy,
	}
}
