package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/notifications/model"
	"schoolhub_backend/internals/features/notifications/service"
	helper "schoolhub_backend/internals/helpers"
)

type RecipientRequest struct {
	RecipientID   uuid.UUID `json:"recipient_id" validate:"required"`
	RecipientType string    `json:"recipient_type" validate:"required,oneof=staff student"`
}

type SendNotificationRequest struct {
	Recipients []RecipientRequest `json:"recipients" validate:"required,min=1,max=1000,dive"`
	Title      string             `json:"title" validate:"required,max=200"`
	Message    string             `json:"message" validate:"required,max=5000"`
	Category   string             `json:"category" validate:"omitempty,oneof=assignment system storage mood general"`
	Link       *string            `json:"link" validate:"omitempty,url"`
	Data       map[string]any     `json:"data"`
	SendEmail  bool               `json:"send_email"`
}

func (r *SendNotificationRequest) ToInput(createdBy *uuid.UUID) service.SendInput {
	rs := make([]service.Recipient, 0, len(r.Recipients))
	for _, it := range r.Recipients {
		rs = append(rs, service.Recipient{ID: it.RecipientID, Type: it.RecipientType})
	}
	return service.SendInput{
		Recipients: rs,
		Title:      r.Title,
		Message:    r.Message,
		Category:   r.Category,
		Link:       helper.TrimPtr(r.Link),
		Data:       r.Data,
		CreatedBy:  createdBy,
		SendEmail:  r.SendEmail,
	}
}

type ListMyQuery struct {
	UnreadOnly bool   `query:"unread_only"`
	Category   string `query:"category" validate:"omitempty,oneof=assignment system storage mood general"`
	// include_deleted: tampilkan juga yang dihapus untuk saya (untuk restore)
	IncludeDeleted bool `query:"include_deleted"`
}

type NotificationResponse struct {
	NotificationID             uuid.UUID       `json:"notification_id"`
	NotificationRecipientID    uuid.UUID       `json:"notification_recipient_id"`
	NotificationRecipientType  string          `json:"notification_recipient_type"`
	NotificationTitle          string          `json:"notification_title"`
	NotificationMessage        string          `json:"notification_message"`
	NotificationCategory       string          `json:"notification_category"`
	NotificationLink           *string         `json:"notification_link,omitempty"`
	NotificationData           json.RawMessage `json:"notification_data,omitempty"`
	NotificationIsRead         bool            `json:"notification_is_read"`
	NotificationReadAt         *time.Time      `json:"notification_read_at,omitempty"`
	NotificationIsDeletedForMe bool            `json:"notification_is_deleted_for_me"`
	NotificationCreatedAt      time.Time       `json:"notification_created_at"`
}

func FromModel(m model.NotificationModel) NotificationResponse {
	var data json.RawMessage
	if len(m.NotificationData) > 0 {
		data = json.RawMessage(m.NotificationData)
	}
	return NotificationResponse{
		NotificationID:             m.NotificationID,
		NotificationRecipientID:    m.NotificationRecipientID,
		NotificationRecipientType:  m.NotificationRecipientType,
		NotificationTitle:          m.NotificationTitle,
		NotificationMessage:        m.NotificationMessage,
		NotificationCategory:       m.NotificationCategory,
		NotificationLink:           m.NotificationLink,
		NotificationData:           data,
		NotificationIsRead:         m.NotificationIsRead,
		NotificationReadAt:         m.NotificationReadAt,
		NotificationIsDeletedForMe: m.NotificationIsDeletedForMe,
		NotificationCreatedAt:      m.NotificationCreatedAt,
	}
}

func FromModels(list []model.NotificationModel) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(list))
	for _, m := range list {
		out = append(out, FromModel(m))
	}
	return out
}
