package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"schoolhub_backend/internals/features/assignments/model"
	helper "schoolhub_backend/internals/helpers"
)

type CreateStaffAssignmentRequest struct {
	StaffAssignmentTitle         string      `json:"staff_assignment_title" validate:"required,min=3,max=200"`
	StaffAssignmentDescription   *string     `json:"staff_assignment_description" validate:"omitempty,max=5000"`
	StaffAssignmentBranchIDs     []uuid.UUID `json:"staff_assignment_branch_ids" validate:"required,min=1"`
	StaffAssignmentAssigneeIDs   []uuid.UUID `json:"staff_assignment_assignee_ids"`
	StaffAssignmentPriority      string      `json:"staff_assignment_priority" validate:"omitempty,oneof=low normal high"`
	StaffAssignmentStartDate     string      `json:"staff_assignment_start_date" validate:"required"`
	StaffAssignmentEndDate       string      `json:"staff_assignment_end_date" validate:"required"`
	StaffAssignmentAttachmentIDs []uuid.UUID `json:"staff_assignment_attachment_ids"`
	Publish                      bool        `json:"publish"`
}

func (r *CreateStaffAssignmentRequest) ToModel(createdBy uuid.UUID, now time.Time) (model.StaffAssignmentModel, error) {
	start, err := helper.ParseDateField("staff_assignment_start_date", r.StaffAssignmentStartDate)
	if err != nil {
		return model.StaffAssignmentModel{}, err
	}
	end, err := helper.ParseDateField("staff_assignment_end_date", r.StaffAssignmentEndDate)
	if err != nil {
		return model.StaffAssignmentModel{}, err
	}
	priority := r.StaffAssignmentPriority
	if priority == "" {
		priority = model.PriorityNormal
	}
	m := model.StaffAssignmentModel{
		StaffAssignmentTitle:         strings.TrimSpace(r.StaffAssignmentTitle),
		StaffAssignmentDescription:   helper.TrimPtr(r.StaffAssignmentDescription),
		StaffAssignmentBranchIDs:     pq.StringArray(helper.UUIDStrings(r.StaffAssignmentBranchIDs)),
		StaffAssignmentAssigneeIDs:   pq.StringArray(helper.UUIDStrings(r.StaffAssignmentAssigneeIDs)),
		StaffAssignmentPriority:      priority,
		StaffAssignmentStartDate:     start,
		StaffAssignmentEndDate:       end,
		StaffAssignmentAttachmentIDs: pq.StringArray(helper.UUIDStrings(r.StaffAssignmentAttachmentIDs)),
		Lifecycle:                    model.NewDraft(createdBy, now),
	}
	if err := staffModelError(m.Validate()); err != nil {
		return m, err
	}
	if r.Publish {
		_ = m.Publish(now)
	}
	return m, nil
}

type UpdateStaffAssignmentRequest struct {
	StaffAssignmentTitle         *string      `json:"staff_assignment_title" validate:"omitempty,min=3,max=200"`
	StaffAssignmentDescription   *string      `json:"staff_assignment_description" validate:"omitempty,max=5000"`
	StaffAssignmentBranchIDs     *[]uuid.UUID `json:"staff_assignment_branch_ids"`
	StaffAssignmentAssigneeIDs   *[]uuid.UUID `json:"staff_assignment_assignee_ids"`
	StaffAssignmentPriority      *string      `json:"staff_assignment_priority" validate:"omitempty,oneof=low normal high"`
	StaffAssignmentStartDate     *string      `json:"staff_assignment_start_date"`
	StaffAssignmentEndDate       *string      `json:"staff_assignment_end_date"`
	StaffAssignmentAttachmentIDs *[]uuid.UUID `json:"staff_assignment_attachment_ids"`
}

// Apply mengembalikan map kolom yang berubah untuk Updates.
func (u *UpdateStaffAssignmentRequest) Apply(m *model.StaffAssignmentModel) (map[string]any, error) {
	cols := map[string]any{}
	if u.StaffAssignmentTitle != nil {
		m.StaffAssignmentTitle = strings.TrimSpace(*u.StaffAssignmentTitle)
		cols["staff_assignment_title"] = m.StaffAssignmentTitle
	}
	if u.StaffAssignmentDescription != nil {
		m.StaffAssignmentDescription = helper.TrimPtr(u.StaffAssignmentDescription)
		cols["staff_assignment_description"] = m.StaffAssignmentDescription
	}
	if u.StaffAssignmentBranchIDs != nil {
		m.StaffAssignmentBranchIDs = pq.StringArray(helper.UUIDStrings(*u.StaffAssignmentBranchIDs))
		cols["staff_assignment_branch_ids"] = m.StaffAssignmentBranchIDs
	}
	if u.StaffAssignmentAssigneeIDs != nil {
		m.StaffAssignmentAssigneeIDs = pq.StringArray(helper.UUIDStrings(*u.StaffAssignmentAssigneeIDs))
		cols["staff_assignment_assignee_ids"] = m.StaffAssignmentAssigneeIDs
	}
	if u.StaffAssignmentPriority != nil {
		m.StaffAssignmentPriority = *u.StaffAssignmentPriority
		cols["staff_assignment_priority"] = m.StaffAssignmentPriority
	}
	if u.StaffAssignmentStartDate != nil {
		t, err := helper.ParseDateField("staff_assignment_start_date", *u.StaffAssignmentStartDate)
		if err != nil {
			return nil, err
		}
		m.StaffAssignmentStartDate = t
		cols["staff_assignment_start_date"] = t
	}
	if u.StaffAssignmentEndDate != nil {
		t, err := helper.ParseDateField("staff_assignment_end_date", *u.StaffAssignmentEndDate)
		if err != nil {
			return nil, err
		}
		m.StaffAssignmentEndDate = t
		cols["staff_assignment_end_date"] = t
	}
	if u.StaffAssignmentAttachmentIDs != nil {
		m.StaffAssignmentAttachmentIDs = pq.StringArray(helper.UUIDStrings(*u.StaffAssignmentAttachmentIDs))
		cols["staff_assignment_attachment_ids"] = m.StaffAssignmentAttachmentIDs
	}
	if err := staffModelError(m.Validate()); err != nil {
		return nil, err
	}
	return cols, nil
}

func staffModelError(err error) error {
	switch err {
	case nil:
		return nil
	case model.ErrNoBranch:
		return helper.NewValidationError("staff_assignment_branch_ids", err.Error())
	default:
		return helper.NewValidationError("staff_assignment_end_date", err.Error())
	}
}

// GET /staff-assignments?status=&branch_id=&assignee_id=&from=&to=&mine=&include_deleted=
type ListStaffAssignmentQuery struct {
	Status         string `query:"status" validate:"omitempty,oneof=draft published"`
	BranchID       string `query:"branch_id" validate:"omitempty,uuid"`
	AssigneeID     string `query:"assignee_id" validate:"omitempty,uuid"`
	Priority       string `query:"priority" validate:"omitempty,oneof=low normal high"`
	From           string `query:"from"`
	To             string `query:"to"`
	Q              string `query:"q" validate:"omitempty,max=100"`
	Mine           bool   `query:"mine"`
	IncludeDeleted bool   `query:"include_deleted"`
}

type StaffAssignmentResponse struct {
	StaffAssignmentID            uuid.UUID   `json:"staff_assignment_id"`
	StaffAssignmentTitle         string      `json:"staff_assignment_title"`
	StaffAssignmentDescription   *string     `json:"staff_assignment_description,omitempty"`
	StaffAssignmentBranchIDs     []uuid.UUID `json:"staff_assignment_branch_ids"`
	StaffAssignmentAssigneeIDs   []uuid.UUID `json:"staff_assignment_assignee_ids"`
	StaffAssignmentPriority      string      `json:"staff_assignment_priority"`
	StaffAssignmentStartDate     time.Time   `json:"staff_assignment_start_date"`
	StaffAssignmentEndDate       time.Time   `json:"staff_assignment_end_date"`
	StaffAssignmentAttachmentIDs []uuid.UUID `json:"staff_assignment_attachment_ids"`
	LifecycleResponse
	StaffAssignmentCreatedAt time.Time `json:"staff_assignment_created_at"`
	StaffAssignmentUpdatedAt time.Time `json:"staff_assignment_updated_at"`
}

func FromStaffAssignment(m *model.StaffAssignmentModel) StaffAssignmentResponse {
	return StaffAssignmentResponse{
		StaffAssignmentID:            m.StaffAssignmentID,
		StaffAssignmentTitle:         m.StaffAssignmentTitle,
		StaffAssignmentDescription:   m.StaffAssignmentDescription,
		StaffAssignmentBranchIDs:     helper.ParseUUIDStrings(m.StaffAssignmentBranchIDs),
		StaffAssignmentAssigneeIDs:   helper.ParseUUIDStrings(m.StaffAssignmentAssigneeIDs),
		StaffAssignmentPriority:      m.StaffAssignmentPriority,
		StaffAssignmentStartDate:     m.StaffAssignmentStartDate,
		StaffAssignmentEndDate:       m.StaffAssignmentEndDate,
		StaffAssignmentAttachmentIDs: helper.ParseUUIDStrings(m.StaffAssignmentAttachmentIDs),
		LifecycleResponse:            FromLifecycle(&m.Lifecycle),
		StaffAssignmentCreatedAt:     m.StaffAssignmentCreatedAt,
		StaffAssignmentUpdatedAt:     m.StaffAssignmentUpdatedAt,
	}
}

func FromStaffAssignments(rows []model.StaffAssignmentModel) []StaffAssignmentResponse {
	out := make([]StaffAssignmentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromStaffAssignment(&rows[i]))
	}
	return out
}
