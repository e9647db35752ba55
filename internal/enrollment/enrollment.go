// Package enrollment exposes the read side of student/section membership.
// The grading core treats enrollments as opaque references; management of
// the records themselves belongs to the surrounding system.
package enrollment

import (
	"context"
	"time"
)

type Enrollment struct {
	ID         string    `json:"id"`
	StudentID  string    `json:"student_id"`
	SectionID  string    `json:"section_id"`
	Status     string    `json:"status"`
	EnrolledAt time.Time `json:"enrolled_at"`
}

// Store is the collaborator contract consumed by the grade service.
// Save exists for seeding and tests; the core never mutates enrollments.
type Store interface {
	FindByID(ctx context.Context, id string) (Enrollment, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Save(ctx context.Context, e Enrollment) error
}
