package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

type StaffAssignmentModel struct {
	StaffAssignmentID            uuid.UUID      `gorm:"column:staff_assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"staff_assignment_id"`
	StaffAssignmentTitle         string         `gorm:"column:staff_assignment_title;type:varchar(200);not null" json:"staff_assignment_title"`
	StaffAssignmentDescription   *string        `gorm:"column:staff_assignment_description;type:text" json:"staff_assignment_description,omitempty"`
	StaffAssignmentBranchIDs     pq.StringArray `gorm:"column:staff_assignment_branch_ids;type:text[];not null;default:'{}'" json:"staff_assignment_branch_ids"`
	StaffAssignmentAssigneeIDs   pq.StringArray `gorm:"column:staff_assignment_assignee_ids;type:text[];not null;default:'{}'" json:"staff_assignment_assignee_ids"`
	StaffAssignmentPriority      string         `gorm:"column:staff_assignment_priority;type:varchar(8);not null;default:'normal'" json:"staff_assignment_priority"`
	StaffAssignmentStartDate     time.Time      `gorm:"column:staff_assignment_start_date;type:timestamptz;not null" json:"staff_assignment_start_date"`
	StaffAssignmentEndDate       time.Time      `gorm:"column:staff_assignment_end_date;type:timestamptz;not null" json:"staff_assignment_end_date"`
	StaffAssignmentAttachmentIDs pq.StringArray `gorm:"column:staff_assignment_attachment_ids;type:text[];not null;default:'{}'" json:"staff_assignment_attachment_ids"`

	Lifecycle `gorm:"embedded;embeddedPrefix:staff_assignment_"`

	StaffAssignmentCreatedAt time.Time `gorm:"column:staff_assignment_created_at;type:timestamptz;not null;autoCreateTime" json:"staff_assignment_created_at"`
	StaffAssignmentUpdatedAt time.Time `gorm:"column:staff_assignment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"staff_assignment_updated_at"`
}

func (StaffAssignmentModel) TableName() string { return "staff_assignments" }

func (*StaffAssignmentModel) Prefix() string       { return "staff_assignment_" }
func (m *StaffAssignmentModel) ID() uuid.UUID      { return m.StaffAssignmentID }
func (m *StaffAssignmentModel) Life() *Lifecycle   { return &m.Lifecycle }
func (m *StaffAssignmentModel) Heading() string    { return m.StaffAssignmentTitle }
func (*StaffAssignmentModel) AssigneeType() string { return "staff" }
func (m *StaffAssignmentModel) Assignees() []uuid.UUID {
	return parseIDs(m.StaffAssignmentAssigneeIDs)
}

func (m *StaffAssignmentModel) Validate() error {
	if err := ValidateWindow(m.StaffAssignmentStartDate, m.StaffAssignmentEndDate); err != nil {
		return err
	}
	if len(parseIDs(m.StaffAssignmentBranchIDs)) == 0 {
		return ErrNoBranch
	}
	return nil
}

func (m *StaffAssignmentModel) BeforeSave(*gorm.DB) error { return m.Validate() }

func parseIDs(ss []string) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ss))
	for _, s := range ss {
		if id, err := uuid.Parse(s); err == nil {
			out = append(out, id)
		}
	}
	return out
}
