package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

var (
	ErrDateOrder          = errors.New("end date must be after start date")
	ErrNoBranch           = errors.New("at least one branch must be assigned")
	ErrAlreadyPublished   = errors.New("assignment already published")
	ErrAlreadyDraft       = errors.New("assignment already a draft")
	ErrAlreadyDeleted     = errors.New("assignment already deleted")
	ErrNotDeleted         = errors.New("assignment is not deleted")
	ErrDeletedForEveryone = errors.New("assignment deleted for everyone")
)

// Lifecycle: status draft/publish + pasangan flag soft-delete. Di-embed dengan
// embeddedPrefix sehingga kolomnya mengikuti tabel induk.
type Lifecycle struct {
	Status               string     `gorm:"column:status;type:varchar(16);not null;default:'draft';index" json:"status"`
	IsDraft              bool       `gorm:"column:is_draft;not null;default:true" json:"is_draft"`
	DraftAt              *time.Time `gorm:"column:draft_at;type:timestamptz" json:"draft_at,omitempty"`
	PublishedAt          *time.Time `gorm:"column:published_at;type:timestamptz" json:"published_at,omitempty"`
	IsDeletedForMe       bool       `gorm:"column:is_deleted_for_me;not null;default:false" json:"is_deleted_for_me"`
	DeletedForMeAt       *time.Time `gorm:"column:deleted_for_me_at;type:timestamptz" json:"deleted_for_me_at,omitempty"`
	IsDeletedForEveryone bool       `gorm:"column:is_deleted_for_everyone;not null;default:false;index" json:"is_deleted_for_everyone"`
	DeletedForEveryoneAt *time.Time `gorm:"column:deleted_for_everyone_at;type:timestamptz" json:"deleted_for_everyone_at,omitempty"`
	CreatedBy            uuid.UUID  `gorm:"column:created_by;type:uuid;not null;index" json:"created_by"`
}

func NewDraft(createdBy uuid.UUID, now time.Time) Lifecycle {
	return Lifecycle{Status: StatusDraft, IsDraft: true, DraftAt: &now, CreatedBy: createdBy}
}

func (l *Lifecycle) IsPublished() bool { return l.Status == StatusPublished }

func (l *Lifecycle) Publish(now time.Time) error {
	if l.IsDeletedForEveryone {
		return ErrDeletedForEveryone
	}
	if l.IsPublished() {
		return ErrAlreadyPublished
	}
	l.Status = StatusPublished
	l.IsDraft = false
	l.PublishedAt = &now
	return nil
}

func (l *Lifecycle) MoveToDraft(now time.Time) error {
	if l.IsDeletedForEveryone {
		return ErrDeletedForEveryone
	}
	if !l.IsPublished() {
		return ErrAlreadyDraft
	}
	l.Status = StatusDraft
	l.IsDraft = true
	l.DraftAt = &now
	return nil
}

// DeleteForMe: hanya menyembunyikan dari pembuat.
func (l *Lifecycle) DeleteForMe(now time.Time) error {
	if l.IsDeletedForMe {
		return ErrAlreadyDeleted
	}
	l.IsDeletedForMe = true
	l.DeletedForMeAt = &now
	return nil
}

func (l *Lifecycle) RestoreForMe() error {
	if !l.IsDeletedForMe {
		return ErrNotDeleted
	}
	l.IsDeletedForMe = false
	l.DeletedForMeAt = nil
	return nil
}

func (l *Lifecycle) DeleteForEveryone(now time.Time) error {
	if l.IsDeletedForEveryone {
		return ErrAlreadyDeleted
	}
	l.IsDeletedForEveryone = true
	l.DeletedForEveryoneAt = &now
	return nil
}

func (l *Lifecycle) Restore() error {
	if !l.IsDeletedForEveryone {
		return ErrNotDeleted
	}
	l.IsDeletedForEveryone = false
	l.DeletedForEveryoneAt = nil
	return nil
}

// Columns: nama kolom ber-prefix → nilai, untuk Updates.
func (l *Lifecycle) Columns(prefix string) map[string]any {
	return map[string]any{
		prefix + "status":                  l.Status,
		prefix + "is_draft":                l.IsDraft,
		prefix + "draft_at":                l.DraftAt,
		prefix + "published_at":            l.PublishedAt,
		prefix + "is_deleted_for_me":       l.IsDeletedForMe,
		prefix + "deleted_for_me_at":       l.DeletedForMeAt,
		prefix + "is_deleted_for_everyone": l.IsDeletedForEveryone,
		prefix + "deleted_for_everyone_at": l.DeletedForEveryoneAt,
	}
}

// ValidateWindow: end > start.
func ValidateWindow(start, end time.Time) error {
	if !end.After(start) {
		return ErrDateOrder
	}
	return nil
}

// Assignment: kontrak bersama tugas staf & tugas siswa.
type Assignment interface {
	TableName() string
	Prefix() string
	ID() uuid.UUID
	Life() *Lifecycle
	Heading() string
	// Assignees: penerima notifikasi saat publish.
	Assignees() []uuid.UUID
	AssigneeType() string
}
