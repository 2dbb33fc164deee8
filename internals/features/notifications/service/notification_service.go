package service

import (
	"context"
	"encoding/json"
	"html"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolhub_backend/internals/features/notifications/model"
	staffModel "schoolhub_backend/internals/features/staff/staffs/model"
	"schoolhub_backend/internals/helpers/mailer"
	"schoolhub_backend/internals/helpers/tenant"
)

type Recipient struct {
	ID   uuid.UUID
	Type string
}

type SendInput struct {
	Recipients []Recipient
	Title      string
	Message    string
	Category   string
	Link       *string
	Data       map[string]any
	CreatedBy  *uuid.UUID
	SendEmail  bool
}

type Service struct {
	DB     *gorm.DB
	Mailer mailer.Mailer
	Log    *zap.Logger
	// EmailTimeout untuk pengiriman email di background.
	EmailTimeout time.Duration
}

func NewService(db *gorm.DB, m mailer.Mailer, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{DB: db, Mailer: m, Log: log.Named("notifications"), EmailTimeout: 30 * time.Second}
}

// BuildRows: satu baris per penerima unik (recipient_id+type).
func BuildRows(in SendInput) []model.NotificationModel {
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = model.CategoryGeneral
	}
	var data datatypes.JSON
	if len(in.Data) > 0 {
		if b, err := json.Marshal(in.Data); err == nil {
			data = datatypes.JSON(b)
		}
	}

	seen := make(map[Recipient]struct{}, len(in.Recipients))
	rows := make([]model.NotificationModel, 0, len(in.Recipients))
	for _, r := range in.Recipients {
		if r.ID == uuid.Nil {
			continue
		}
		if r.Type == "" {
			r.Type = model.RecipientStaff
		}
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		rows = append(rows, model.NotificationModel{
			NotificationRecipientID:   r.ID,
			NotificationRecipientType: r.Type,
			NotificationTitle:         strings.TrimSpace(in.Title),
			NotificationMessage:       strings.TrimSpace(in.Message),
			NotificationCategory:      category,
			NotificationLink:          in.Link,
			NotificationData:          data,
			NotificationCreatedBy:     in.CreatedBy,
		})
	}
	return rows
}

// Send menyimpan notifikasi untuk semua penerima; email (opsional) dikirim
// di background ke penerima staf yang punya alamat email.
func (s *Service) Send(ctx context.Context, in SendInput) ([]model.NotificationModel, error) {
	rows := BuildRows(in)
	if len(rows) == 0 {
		return rows, nil
	}
	q, err := tenant.Scoped(ctx, s.DB, model.NotificationModel{})
	if err != nil {
		return nil, err
	}
	if err := q.CreateInBatches(&rows, 500).Error; err != nil {
		return nil, err
	}

	if in.SendEmail && s.Mailer != nil {
		s.dispatchEmail(ctx, in, rows)
	}
	return rows, nil
}

func (s *Service) dispatchEmail(ctx context.Context, in SendInput, rows []model.NotificationModel) {
	staffIDs := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		if r.NotificationRecipientType == model.RecipientStaff {
			staffIDs = append(staffIDs, r.NotificationRecipientID)
		}
	}
	to, err := s.staffAddresses(ctx, staffIDs)
	if err != nil {
		s.Log.Warn("resolve recipient emails failed", zap.Error(err))
		return
	}
	if len(to) == 0 {
		return
	}
	msg := BuildMessage(in, to)

	bg := context.WithoutCancel(ctx)
	go func() {
		sendCtx, cancel := context.WithTimeout(bg, s.EmailTimeout)
		defer cancel()
		if err := s.Mailer.Send(sendCtx, msg); err != nil {
			s.Log.Warn("notification email failed", zap.Int("recipients", len(to)), zap.Error(err))
		}
	}()
}

func (s *Service) staffAddresses(ctx context.Context, ids []uuid.UUID) ([]mailer.Address, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	q, err := tenant.Scoped(ctx, s.DB, staffModel.StaffModel{})
	if err != nil {
		return nil, err
	}
	var staffs []staffModel.StaffModel
	if err := q.Select("staff_id", "staff_full_name", "staff_email").
		Where("staff_id IN ? AND staff_deleted_at IS NULL AND staff_email IS NOT NULL", ids).
		Find(&staffs).Error; err != nil {
		return nil, err
	}
	out := make([]mailer.Address, 0, len(staffs))
	for _, st := range staffs {
		if st.StaffEmail != nil && *st.StaffEmail != "" {
			out = append(out, mailer.Address{Name: st.StaffFullName, Email: *st.StaffEmail})
		}
	}
	return out, nil
}

func BuildMessage(in SendInput, to []mailer.Address) mailer.Message {
	text := in.Message
	body := "<p>" + html.EscapeString(in.Message) + "</p>"
	if in.Link != nil && *in.Link != "" {
		text += "\n\n" + *in.Link
		body += `<p><a href="` + html.EscapeString(*in.Link) + `">Buka</a></p>`
	}
	return mailer.Message{To: to, Subject: in.Title, Text: text, HTML: body}
}

// Purge menghapus permanen notifikasi yang sudah dihapus untuk semua lebih lama dari retention.
func (s *Service) Purge(ctx context.Context, retention time.Duration) (int64, error) {
	q, err := tenant.Scoped(ctx, s.DB, model.NotificationModel{})
	if err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-retention)
	res := q.Where("notification_is_deleted_for_everyone = TRUE AND notification_deleted_for_everyone_at < ?", cutoff).
		Delete(&model.NotificationModel{})
	return res.RowsAffected, res.Error
}
