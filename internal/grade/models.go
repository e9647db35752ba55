package grade

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one student's raw score for one evaluation. At most one
// record exists per (evaluation, enrollment) pair.
type Record struct {
	ID           string          `json:"id"`
	EvaluationID string          `json:"evaluation_id"`
	EnrollmentID string          `json:"enrollment_id"`
	Value        decimal.Decimal `json:"value"`
	RecordedAt   time.Time       `json:"recorded_at"`
}
