package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RecipientStaff   = "staff"
	RecipientStudent = "student"

	CategoryAssignment = "assignment"
	CategorySystem     = "system"
	CategoryStorage    = "storage"
	CategoryMood       = "mood"
	CategoryGeneral    = "general"
)

type NotificationModel struct {
	NotificationID            uuid.UUID      `gorm:"column:notification_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"notification_id"`
	NotificationRecipientID   uuid.UUID      `gorm:"column:notification_recipient_id;type:uuid;not null;index:idx_notifications_recipient_read,priority:1" json:"notification_recipient_id"`
	NotificationRecipientType string         `gorm:"column:notification_recipient_type;type:varchar(16);not null" json:"notification_recipient_type"`
	NotificationTitle         string         `gorm:"column:notification_title;type:varchar(200);not null" json:"notification_title"`
	NotificationMessage       string         `gorm:"column:notification_message;type:text;not null" json:"notification_message"`
	NotificationCategory      string         `gorm:"column:notification_category;type:varchar(24);not null;default:'general'" json:"notification_category"`
	NotificationLink          *string        `gorm:"column:notification_link;type:text" json:"notification_link,omitempty"`
	NotificationData          datatypes.JSON `gorm:"column:notification_data;type:jsonb" json:"notification_data,omitempty"`

	NotificationIsRead bool       `gorm:"column:notification_is_read;not null;default:false;index:idx_notifications_recipient_read,priority:2" json:"notification_is_read"`
	NotificationReadAt *time.Time `gorm:"column:notification_read_at;type:timestamptz" json:"notification_read_at,omitempty"`

	NotificationIsDeletedForMe       bool       `gorm:"column:notification_is_deleted_for_me;not null;default:false" json:"notification_is_deleted_for_me"`
	NotificationDeletedForMeAt       *time.Time `gorm:"column:notification_deleted_for_me_at;type:timestamptz" json:"notification_deleted_for_me_at,omitempty"`
	NotificationIsDeletedForEveryone bool       `gorm:"column:notification_is_deleted_for_everyone;not null;default:false;index" json:"notification_is_deleted_for_everyone"`
	NotificationDeletedForEveryoneAt *time.Time `gorm:"column:notification_deleted_for_everyone_at;type:timestamptz" json:"notification_deleted_for_everyone_at,omitempty"`

	NotificationCreatedBy *uuid.UUID `gorm:"column:notification_created_by;type:uuid" json:"notification_created_by,omitempty"`
	NotificationCreatedAt time.Time  `gorm:"column:notification_created_at;type:timestamptz;not null;autoCreateTime" json:"notification_created_at"`
	NotificationUpdatedAt time.Time  `gorm:"column:notification_updated_at;type:timestamptz;not null;autoUpdateTime" json:"notification_updated_at"`
}

func (NotificationModel) TableName() string { return "notifications" }
