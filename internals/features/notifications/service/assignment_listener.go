package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"schoolhub_backend/internals/features/notifications/model"
	"schoolhub_backend/internals/helpers/signals"
)

// AssignmentInput: notifikasi "tugas baru" untuk tiap penerima tugas.
func AssignmentInput(p signals.AssignmentPublishedPayload, assignmentID uuid.UUID) SendInput {
	recipients := make([]Recipient, 0, len(p.AssigneeIDs))
	for _, id := range p.AssigneeIDs {
		recipients = append(recipients, Recipient{ID: id, Type: p.AssigneeType})
	}
	link := p.Link
	var by *uuid.UUID
	if p.PublishedBy != uuid.Nil {
		id := p.PublishedBy
		by = &id
	}
	return SendInput{
		Recipients: recipients,
		Title:      "Tugas baru: " + p.Title,
		Message:    fmt.Sprintf("Anda mendapat tugas \"%s\".", p.Title),
		Category:   model.CategoryAssignment,
		Link:       &link,
		Data:       map[string]any{"kind": p.Kind, "assignment_id": assignmentID.String()},
		CreatedBy:  by,
		SendEmail:  p.AssigneeType == model.RecipientStaff,
	}
}

// Register: subscribe AssignmentPublished.
func (s *Service) Register(bus *signals.Bus) {
	bus.Subscribe(signals.AssignmentPublished, func(ctx context.Context, ev signals.Event) error {
		p, ok := ev.Payload.(signals.AssignmentPublishedPayload)
		if !ok {
			return fmt.Errorf("unexpected payload %T", ev.Payload)
		}
		if len(p.AssigneeIDs) == 0 {
			return nil
		}
		_, err := s.Send(ctx, AssignmentInput(p, ev.SubjectID))
		return err
	})
}
