package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type StudentAssignmentModel struct {
	StudentAssignmentID            uuid.UUID      `gorm:"column:student_assignment_id;type:uuid;primaryKey;default:gen_random_uuid()" json:"student_assignment_id"`
	StudentAssignmentTitle         string         `gorm:"column:student_assignment_title;type:varchar(200);not null" json:"student_assignment_title"`
	StudentAssignmentInstructions  *string        `gorm:"column:student_assignment_instructions;type:text" json:"student_assignment_instructions,omitempty"`
	StudentAssignmentClassID       uuid.UUID      `gorm:"column:student_assignment_class_id;type:uuid;not null;index" json:"student_assignment_class_id"`
	StudentAssignmentSubject       string         `gorm:"column:student_assignment_subject;type:varchar(120);not null" json:"student_assignment_subject"`
	StudentAssignmentStudentIDs    pq.StringArray `gorm:"column:student_assignment_student_ids;type:text[];not null;default:'{}'" json:"student_assignment_student_ids"`
	StudentAssignmentMaxScore      *int           `gorm:"column:student_assignment_max_score" json:"student_assignment_max_score,omitempty"`
	StudentAssignmentStartDate     time.Time      `gorm:"column:student_assignment_start_date;type:timestamptz;not null" json:"student_assignment_start_date"`
	StudentAssignmentEndDate       time.Time      `gorm:"column:student_assignment_end_date;type:timestamptz;not null" json:"student_assignment_end_date"`
	StudentAssignmentAttachmentIDs pq.StringArray `gorm:"column:student_assignment_attachment_ids;type:text[];not null;default:'{}'" json:"student_assignment_attachment_ids"`

	Lifecycle `gorm:"embedded;embeddedPrefix:student_assignment_"`

	StudentAssignmentCreatedAt time.Time `gorm:"column:student_assignment_created_at;type:timestamptz;not null;autoCreateTime" json:"student_assignment_created_at"`
	StudentAssignmentUpdatedAt time.Time `gorm:"column:student_assignment_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_assignment_updated_at"`
}

func (StudentAssignmentModel) TableName() string { return "student_assignments" }

func (*StudentAssignmentModel) Prefix() string       { return "student_assignment_" }
func (m *StudentAssignmentModel) ID() uuid.UUID      { return m.StudentAssignmentID }
func (m *StudentAssignmentModel) Life() *Lifecycle   { return &m.Lifecycle }
func (m *StudentAssignmentModel) Heading() string    { return m.StudentAssignmentTitle }
func (*StudentAssignmentModel) AssigneeType() string { return "student" }
func (m *StudentAssignmentModel) Assignees() []uuid.UUID {
	return parseIDs(m.StudentAssignmentStudentIDs)
}

func (m *StudentAssignmentModel) Validate() error {
	return ValidateWindow(m.StudentAssignmentStartDate, m.StudentAssignmentEndDate)
}

func (m *StudentAssignmentModel) BeforeSave(*gorm.DB) error { return m.Validate() }
