// Package signals: event bus in-process untuk sinkronisasi data turunan.
// Handler dipanggil sinkron sesuai urutan Subscribe, tanpa antrean maupun retry.
package signals

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Topic string

const (
	StaffSaved                Topic = "staff.saved"
	StaffDeleted              Topic = "staff.deleted"
	RoleUpdated               Topic = "role.updated"
	BranchUpdated             Topic = "branch.updated"
	ClassUpdated              Topic = "class.updated"
	AcademicPeriodActivated   Topic = "academic_period.activated"
	AcademicPeriodDeactivated Topic = "academic_period.deactivated"
	AssignmentPublished       Topic = "assignment.published"
)

type Event struct {
	Topic Topic
	// ID entitas sumber (staff_id, role_id, dst.)
	SubjectID uuid.UUID
	// Payload opsional, tipe tergantung topic.
	Payload any
}

// AssignmentPublishedPayload: payload topic AssignmentPublished.
type AssignmentPublishedPayload struct {
	Kind         string // "staff_assignment" | "student_assignment"
	Title        string
	AssigneeIDs  []uuid.UUID
	AssigneeType string // "staff" | "student"
	PublishedBy  uuid.UUID
	Link         string
}

type Handler func(ctx context.Context, ev Event) error

type Bus struct {
	mu       sync.RWMutex
	handlers map[Topic][]Handler
	log      *zap.Logger
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[Topic][]Handler), log: zap.NewNop()}
}

// WithLogger dipakai oleh Publish.
func (b *Bus) WithLogger(l *zap.Logger) *Bus {
	if l != nil {
		b.log = l.Named("signals")
	}
	return b
}

func (b *Bus) Subscribe(topic Topic, h Handler) {
	if h == nil {
		return
	}
	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], h)
	b.mu.Unlock()
}

// Emit menjalankan semua handler topic; handler yang gagal tidak menghentikan
// handler berikutnya. Error digabung dengan errors.Join.
func (b *Bus) Emit(ctx context.Context, ev Event) error {
	b.mu.RLock()
	hs := append([]Handler(nil), b.handlers[ev.Topic]...)
	b.mu.RUnlock()

	var errs []error
	for i, h := range hs {
		if err := safeCall(ctx, h, ev); err != nil {
			errs = append(errs, fmt.Errorf("%s handler #%d: %w", ev.Topic, i, err))
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) HandlerCount(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic])
}

func safeCall(ctx context.Context, h Handler, ev Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return h(ctx, ev)
}

// Publish: Emit tanpa mengembalikan error ke request; kegagalan handler hanya di-log.
// Aman dipanggil pada *Bus nil.
func (b *Bus) Publish(ctx context.Context, topic Topic, subject uuid.UUID, payload any) {
	if b == nil {
		return
	}
	if err := b.Emit(ctx, Event{Topic: topic, SubjectID: subject, Payload: payload}); err != nil {
		b.log.Warn("signal handler failed",
			zap.String("topic", string(topic)),
			zap.String("subject_id", subject.String()),
			zap.Error(err),
		)
	}
}
