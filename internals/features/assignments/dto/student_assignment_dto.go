package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"schoolhub_backend/internals/features/assignments/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateStudentAssignmentRequest struct {
	StudentAssignmentTitle         string      `json:"student_assignment_title" validate:"required,min=3,max=200"`
	StudentAssignmentInstructions  *string     `json:"student_assignment_instructions" validate:"omitempty,max=10000"`
	StudentAssignmentClassID       uuid.UUID   `json:"student_assignment_class_id" validate:"required"`
	StudentAssignmentSubject       string      `json:"student_assignment_subject" validate:"required,max=120"`
	StudentAssignmentStudentIDs    []uuid.UUID `json:"student_assignment_student_ids"`
	StudentAssignmentMaxScore      *int        `json:"student_assignment_max_score" validate:"omitempty,min=1,max=1000"`
	StudentAssignmentStartDate     string      `json:"student_assignment_start_date" validate:"required"`
	StudentAssignmentEndDate       string      `json:"student_assignment_end_date" validate:"required"`
	StudentAssignmentAttachmentIDs []uuid.UUID `json:"student_assignment_attachment_ids"`
	Publish                        bool        `json:"publish"`
}

func (r *CreateStudentAssignmentRequest) ToModel(createdBy uuid.UUID, now time.Time) (model.StudentAssignmentModel, error) {
	start, err := helper.ParseDateField("student_assignment_start_date", r.StudentAssignmentStartDate)
	if err != nil {
		return model.StudentAssignmentModel{}, err
	}
	end, err := helper.ParseDateField("student_assignment_end_date", r.StudentAssignmentEndDate)
	if err != nil {
		return model.StudentAssignmentModel{}, err
	}
	m := model.StudentAssignmentModel{
		StudentAssignmentTitle:         strings.TrimSpace(r.StudentAssignmentTitle),
		StudentAssignmentInstructions:  helper.TrimPtr(r.StudentAssignmentInstructions),
		StudentAssignmentClassID:       r.StudentAssignmentClassID,
		StudentAssignmentSubject:       strings.TrimSpace(r.StudentAssignmentSubject),
		StudentAssignmentStudentIDs:    pq.StringArray(helper.UUIDStrings(r.StudentAssignmentStudentIDs)),
		StudentAssignmentMaxScore:      r.StudentAssignmentMaxScore,
		StudentAssignmentStartDate:     start,
		StudentAssignmentEndDate:       end,
		StudentAssignmentAttachmentIDs: pq.StringArray(helper.UUIDStrings(r.StudentAssignmentAttachmentIDs)),
		Lifecycle:                      model.NewDraft(createdBy, now),
	}
	if err := m.Validate(); err != nil {
		return m, helper.NewValidationError("student_assignment_end_date", err.Error())
	}
	if r.Publish {
		_ = m.Publish(now)
	}
	return m, nil
}

type UpdateStudentAssignmentRequest struct {
	StudentAssignmentTitle         *string      `json:"student_assignment_title" validate:"omitempty,min=3,max=200"`
	StudentAssignmentInstructions  *string      `json:"student_assignment_instructions" validate:"omitempty,max=10000"`
	StudentAssignmentClassID       *uuid.UUID   `json:"student_assignment_class_id"`
	StudentAssignmentSubject       *string      `json:"student_assignment_subject" validate:"omitempty,max=120"`
	StudentAssignmentStudentIDs    *[]uuid.UUID `json:"student_assignment_student_ids"`
	StudentAssignmentMaxScore      *int         `json:"student_assignment_max_score" validate:"omitempty,min=1,max=1000"`
	StudentAssignmentStartDate     *string      `json:"student_assignment_start_date"`
	StudentAssignmentEndDate       *string      `json:"student_assignment_end_date"`
	StudentAssignmentAttachmentIDs *[]uuid.UUID `json:"student_assignment_attachment_ids"`
}

func (u *UpdateStudentAssignmentRequest) Apply(m *model.StudentAssignmentModel) (map[string]any, error) {
	cols := map[string]any{}
	if u.StudentAssignmentTitle != nil {
		m.StudentAssignmentTitle = strings.TrimSpace(*u.StudentAssignmentTitle)
		cols["student_assignment_title"] = m.StudentAssignmentTitle
	}
	if u.StudentAssignmentInstructions != nil {
		m.StudentAssignmentInstructions = helper.TrimPtr(u.StudentAssignmentInstructions)
		cols["student_assignment_instructions"] = m.StudentAssignmentInstructions
	}
	if u.StudentAssignmentClassID != nil {
		m.StudentAssignmentClassID = *u.StudentAssignmentClassID
		cols["student_assignment_class_id"] = m.StudentAssignmentClassID
	}
	if u.StudentAssignmentSubject != nil {
		m.StudentAssignmentSubject = strings.TrimSpace(*u.StudentAssignmentSubject)
		cols["student_assignment_subject"] = m.StudentAssignmentSubject
	}
	if u.StudentAssignmentStudentIDs != nil {
		m.StudentAssignmentStudentIDs = pq.StringArray(helper.UUIDStrings(*u.StudentAssignmentStudentIDs))
		cols["student_assignment_student_ids"] = m.StudentAssignmentStudentIDs
	}
	if u.StudentAssignmentMaxScore != nil {
		m.StudentAssignmentMaxScore = u.StudentAssignmentMaxScore
		cols["student_assignment_max_score"] = *m.StudentAssignmentMaxScore
	}
	if u.StudentAssignmentStartDate != nil {
		t, err := helper.ParseDateField("student_assignment_start_date", *u.StudentAssignmentStartDate)
		if err != nil {
			return nil, err
		}
		m.StudentAssignmentStartDate = t
		cols["student_assignment_start_date"] = t
	}
	if u.StudentAssignmentEndDate != nil {
		t, err := helper.ParseDateField("student_assignment_end_date", *u.StudentAssignmentEndDate)
		if err != nil {
			return nil, err
		}
		m.StudentAssignmentEndDate = t
		cols["student_assignment_end_date"] = t
	}
	if u.StudentAssignmentAttachmentIDs != nil {
		m.StudentAssignmentAttachmentIDs = pq.StringArray(helper.UUIDStrings(*u.StudentAssignmentAttachmentIDs))
		cols["student_assignment_attachment_ids"] = m.StudentAssignmentAttachmentIDs
	}
	if err := m.Validate(); err != nil {
		return nil, helper.NewValidationError("student_assignment_end_date", err.Error())
	}
	return cols, nil
}

// GET /student-assignments?status=&class_id=&student_id=&subject=&from=&to=&mine=&include_deleted=
type ListStudentAssignmentQuery struct {
	Status         string `query:"status" validate:"omitempty,oneof=draft published"`
	ClassID        string `query:"class_id" validate:"omitempty,uuid"`
	StudentID      string `query:"student_id" validate:"omitempty,uuid"`
	Subject        string `query:"subject" validate:"omitempty,max=120"`
	From           string `query:"from"`
	To             string `query:"to"`
	Q              string `query:"q" validate:"omitempty,max=100"`
	Mine           bool   `query:"mine"`
	IncludeDeleted bool   `query:"include_deleted"`
}

type StudentAssignmentResponse struct {
	StudentAssignmentID            uuid.UUID   `json:"student_assignment_id"`
	StudentAssignmentTitle         string      `json:"student_assignment_title"`
	StudentAssignmentInstructions  *string     `json:"student_assignment_instructions,omitempty"`
	StudentAssignmentClassID       uuid.UUID   `json:"student_assignment_class_id"`
	StudentAssignmentSubject       string      `json:"student_assignment_subject"`
	StudentAssignmentStudentIDs    []uuid.UUID `json:"student_assignment_student_ids"`
	StudentAssignmentMaxScore      *int        `json:"student_assignment_max_score,omitempty"`
	StudentAssignmentStartDate     time.Time   `json:"student_assignment_start_date"`
	StudentAssignmentEndDate       time.Time   `json:"student_assignment_end_date"`
	StudentAssignmentAttachmentIDs []uuid.UUID `json:"student_assignment_attachment_ids"`
	LifecycleResponse
	StudentAssignmentCreatedAt time.Time `json:"student_assignment_created_at"`
	StudentAssignmentUpdatedAt time.Time `json:"student_assignment_updated_at"`
}

func FromStudentAssignment(m *model.StudentAssignmentModel) StudentAssignmentResponse {
	return StudentAssignmentResponse{
		StudentAssignmentID:            m.StudentAssignmentID,
		StudentAssignmentTitle:         m.StudentAssignmentTitle,
		StudentAssignmentInstructions:  m.StudentAssignmentInstructions,
		StudentAssignmentClassID:       m.StudentAssignmentClassID,
		StudentAssignmentSubject:       m.StudentAssignmentSubject,
		StudentAssignmentStudentIDs:    helper.ParseUUIDStrings(m.StudentAssignmentStudentIDs),
		StudentAssignmentMaxScore:      m.StudentAssignmentMaxScore,
		StudentAssignmentStartDate:     m.StudentAssignmentStartDate,
		StudentAssignmentEndDate:       m.StudentAssignmentEndDate,
		StudentAssignmentAttachmentIDs: helper.ParseUUIDStrings(m.StudentAssignmentAttachmentIDs),
		LifecycleResponse:              FromLifecycle(&m.Lifecycle),
		StudentAssignmentCreatedAt:     m.StudentAssignmentCreatedAt,
		StudentAssignmentUpdatedAt:     m.StudentAssignmentUpdatedAt,
	}
}

func FromStudentAssignments(rows []model.StudentAssignmentModel) []StudentAssignmentResponse {
	out := make([]StudentAssignmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromStudentAssignment(&rows[i]))
	}
	return out
}
