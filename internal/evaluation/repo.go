package evaluation

import "context"

// Store is the persistence contract for evaluations. Implementations
// return apperr.NotFound("evaluation") when an id does not exist and wrap
// backend failures with apperr.Storage.
type Store interface {
	FindAll(ctx context.Context) ([]Evaluation, error)
	FindByID(ctx context.Context, id string) (Evaluation, error)
	FindBySectionID(ctx context.Context, sectionID string) ([]Evaluation, error)
	Save(ctx context.Context, e Evaluation) error
	ExistsByID(ctx context.Context, id string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
}

// GradeRefs is the slice of the grade store the catalog service needs to
// refuse deleting an evaluation that still has recorded grades.
type GradeRefs interface {
	ExistsByEvaluationID(ctx context.Context, evaluationID string) (bool, error)
}
