package grade

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/apperr"
)

var maxValue = decimal.NewFromInt(10)

// EvaluationLookup and EnrollmentLookup are the referenced-entity checks
// the service needs at creation time; both are satisfied by the
// corresponding stores.
type EvaluationLookup interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type EnrollmentLookup interface {
	ExistsByID(ctx context.Context, id string) (bool, error)
}

// Input carries the fields needed to record a grade.
type Input struct {
	EvaluationID string          `json:"evaluation_id"`
	EnrollmentID string          `json:"enrollment_id"`
	Value        decimal.Decimal `json:"value"`
}

// Service owns write access to grade records.
type Service struct {
	store       Store
	evals       EvaluationLookup
	enrollments EnrollmentLookup

	// Now stamps RecordedAt on creation; override in tests.
	Now func() time.Time
}

func NewService(store Store, evals EvaluationLookup, enrollments EnrollmentLookup) *Service {
	return &Service{store: store, evals: evals, enrollments: enrollments, Now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]Record, error) {
	return s.store.FindAll(ctx)
}

func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.store.FindByID(ctx, id)
}

func (s *Service) ListByEnrollment(ctx context.Context, enrollmentID string) ([]Record, error) {
	return s.store.FindByEnrollmentID(ctx, enrollmentID)
}

func (s *Service) ListBySection(ctx context.Context, sectionID string) ([]Record, error) {
	return s.store.FindBySectionID(ctx, sectionID)
}

// Create records one grade for an (evaluation, enrollment) pair. The
// duplicate check here is a fast path; the storage layer's uniqueness
// constraint remains the authoritative guard under concurrent writers.
// The raw value is stored as given, never capped by any scoring policy.
func (s *Service) Create(ctx context.Context, in Input) (Record, error) {
	if strings.TrimSpace(in.EvaluationID) == "" {
		return Record{}, apperr.InvalidArgument("evaluation_id", "evaluation_id is required")
	}
	if strings.TrimSpace(in.EnrollmentID) == "" {
		return Record{}, apperr.InvalidArgument("enrollment_id", "enrollment_id is required")
	}

	exists, err := s.store.ExistsByEvaluationAndEnrollment(ctx, in.EvaluationID, in.EnrollmentID)
	if err != nil {
		return Record{}, err
	}
	if exists {
		return Record{}, apperr.Conflict("grade already recorded for this evaluation and enrollment")
	}

	ok, err := s.evals.ExistsByID(ctx, in.EvaluationID)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, apperr.NotFound("evaluation")
	}
	ok, err = s.enrollments.ExistsByID(ctx, in.EnrollmentID)
	if err != nil {
		return Record{}, err
	}
	if !ok {
		return Record{}, apperr.NotFound("enrollment")
	}

	if err := validateValue(in.Value); err != nil {
		return Record{}, err
	}

	r := Record{
		ID:           uuid.NewString(),
		EvaluationID: in.EvaluationID,
		EnrollmentID: in.EnrollmentID,
		Value:        in.Value,
		RecordedAt:   s.Now().UTC(),
	}
	if err := s.store.Save(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

// UpdateValue replaces the value only; RecordedAt keeps its original
// creation timestamp.
func (s *Service) UpdateValue(ctx context.Context, id string, value decimal.Decimal) (Record, error) {
	if err := validateValue(value); err != nil {
		return Record{}, err
	}
	r, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	r.Value = value
	if err := s.store.Save(ctx, r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("grade record")
	}
	return s.store.DeleteByID(ctx, id)
}

func validateValue(v decimal.Decimal) error {
	if v.IsNegative() || v.GreaterThan(maxValue) {
		return apperr.InvalidArgument("value", "value must be between 0 and 10")
	}
	return nil
}
