package grade

import "context"

// Store is the persistence contract for grade records. FindBySectionID
// joins through the owning evaluation's section. Implementations return
// apperr.NotFound("grade record") for missing ids, apperr.Conflict when
// the (evaluation, enrollment) uniqueness constraint trips, and wrap
// backend failures with apperr.Storage.
type Store interface {
	FindAll(ctx context.Context) ([]Record, error)
	FindByID(ctx context.Context, id string) (Record, error)
	FindByEnrollmentID(ctx context.Context, enrollmentID string) ([]Record, error)
	FindBySectionID(ctx context.Context, sectionID string) ([]Record, error)
	ExistsByEvaluationAndEnrollment(ctx context.Context, evaluationID, enrollmentID string) (bool, error)
	ExistsByEvaluationID(ctx context.Context, evaluationID string) (bool, error)
	Save(ctx context.Context, r Record) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}
