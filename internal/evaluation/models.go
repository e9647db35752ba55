package evaluation

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/apperr"
)

// Kind discriminates the scoring policy of an evaluation. The set is
// closed; adding a kind means adding a policy variant in policy.go.
type Kind string

const (
	KindExam          Kind = "EXAM"
	KindAssignment    Kind = "ASSIGNMENT"
	KindParticipation Kind = "PARTICIPATION"
)

// ParseKind normalizes case-insensitive input to a known Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToUpper(strings.TrimSpace(s))) {
	case KindExam:
		return KindExam, nil
	case KindAssignment:
		return KindAssignment, nil
	case KindParticipation:
		return KindParticipation, nil
	default:
		return "", apperr.InvalidEvaluationKind(s)
	}
}

// Evaluation is one graded component of a class section. The sum of
// weights over a section's evaluations never exceeds 100.
type Evaluation struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Weight    decimal.Decimal `json:"weight"`
	Kind      Kind            `json:"kind"`
	SectionID string          `json:"section_id"`

	// policy is resolved from Kind when the evaluation passes through the
	// service; never persisted.
	policy Policy
}

// FinalGrade computes the weighted contribution of a raw score using the
// attached scoring policy.
func (e Evaluation) FinalGrade(raw decimal.Decimal) (decimal.Decimal, error) {
	if e.policy == nil {
		return decimal.Zero, apperr.InvalidState("evaluation has no scoring policy attached")
	}
	return e.policy.Contribution(raw, e.Weight), nil
}
