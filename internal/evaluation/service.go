package evaluation

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/apperr"
)

// Input carries the writable fields of an evaluation. Create and Update
// take the same shape: updates replace all fields (full replace, not a
// partial merge), matching the catalog's single-writer contract.
type Input struct {
	Title     string          `json:"title"`
	Weight    decimal.Decimal `json:"weight"`
	Kind      string          `json:"kind"`
	SectionID string          `json:"section_id"`
}

// Service owns write access to evaluations and enforces the section
// weight ceiling: the sum of weights per section never exceeds 100.
type Service struct {
	store  Store
	grades GradeRefs

	// sections serializes the read-sum-write window per section so two
	// concurrent creates cannot both pass the ceiling check.
	mu       sync.Mutex
	sections map[string]*sync.Mutex
}

func NewService(store Store, grades GradeRefs) *Service {
	return &Service{store: store, grades: grades, sections: map[string]*sync.Mutex{}}
}

func (s *Service) sectionLock(sectionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sections[sectionID]
	if !ok {
		l = &sync.Mutex{}
		s.sections[sectionID] = l
	}
	return l
}

func (s *Service) List(ctx context.Context) ([]Evaluation, error) {
	return s.store.FindAll(ctx)
}

func (s *Service) ListBySection(ctx context.Context, sectionID string) ([]Evaluation, error) {
	return s.store.FindBySectionID(ctx, sectionID)
}

func (s *Service) Get(ctx context.Context, id string) (Evaluation, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	if p, ok := PolicyForKind(e.Kind); ok {
		e.policy = p
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, in Input) (Evaluation, error) {
	kind, policy, err := validate(in)
	if err != nil {
		return Evaluation{}, err
	}

	lock := s.sectionLock(in.SectionID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.checkWeightCeiling(ctx, in.SectionID, in.Weight, ""); err != nil {
		return Evaluation{}, err
	}

	e := Evaluation{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(in.Title),
		Weight:    in.Weight,
		Kind:      kind,
		SectionID: in.SectionID,
		policy:    policy,
	}
	if err := s.store.Save(ctx, e); err != nil {
		return Evaluation{}, err
	}
	return e, nil
}

// Update replaces title, weight and kind. The section reference is
// immutable: re-parenting an evaluation is not supported, so a differing
// section_id is rejected rather than silently overwritten.
func (s *Service) Update(ctx context.Context, id string, in Input) (Evaluation, error) {
	existing, err := s.store.FindByID(ctx, id)
	if err != nil {
		return Evaluation{}, err
	}
	kind, policy, err := validate(in)
	if err != nil {
		return Evaluation{}, err
	}
	if in.SectionID != existing.SectionID {
		return Evaluation{}, apperr.InvalidArgument("section_id", "evaluation cannot be moved to another section")
	}

	lock := s.sectionLock(existing.SectionID)
	lock.Lock()
	defer lock.Unlock()

	// The old weight is being replaced, so the record under update is
	// excluded from the section total.
	if err := s.checkWeightCeiling(ctx, existing.SectionID, in.Weight, id); err != nil {
		return Evaluation{}, err
	}

	existing.Title = strings.TrimSpace(in.Title)
	existing.Weight = in.Weight
	existing.Kind = kind
	existing.policy = policy
	if err := s.store.Save(ctx, existing); err != nil {
		return Evaluation{}, err
	}
	return existing, nil
}

// Delete removes an evaluation. It refuses with Conflict while grade
// records still reference the evaluation; cascading would silently
// destroy recorded scores.
func (s *Service) Delete(ctx context.Context, id string) error {
	ok, err := s.store.ExistsByID(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("evaluation")
	}
	if s.grades != nil {
		referenced, err := s.grades.ExistsByEvaluationID(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return apperr.Conflict("evaluation has recorded grades; delete them first")
		}
	}
	return s.store.DeleteByID(ctx, id)
}

// CalculateFinalGrade loads the evaluation and applies its scoring policy
// to the raw value.
func (s *Service) CalculateFinalGrade(ctx context.Context, id string, raw decimal.Decimal) (decimal.Decimal, error) {
	e, err := s.store.FindByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	p, ok := PolicyForKind(e.Kind)
	if !ok {
		// Kind passed validation at write time; a miss here is a logic bug.
		return decimal.Zero, apperr.InvalidState("evaluation kind has no scoring policy: " + string(e.Kind))
	}
	return p.Contribution(raw, e.Weight), nil
}

// checkWeightCeiling sums the section's weights, excluding excludeID when
// set, and rejects candidates pushing the total above 100. Exactly 100 is
// accepted; comparisons are exact decimal ordering, no rounding tolerance.
func (s *Service) checkWeightCeiling(ctx context.Context, sectionID string, candidate decimal.Decimal, excludeID string) error {
	existing, err := s.store.FindBySectionID(ctx, sectionID)
	if err != nil {
		return err
	}
	total := candidate
	for _, e := range existing {
		if e.ID == excludeID {
			continue
		}
		total = total.Add(e.Weight)
	}
	if total.GreaterThan(hundred) {
		return apperr.WeightLimitExceeded("section weight total would exceed 100, got " + total.String())
	}
	return nil
}

func validate(in Input) (Kind, Policy, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", nil, apperr.InvalidArgument("title", "title is required")
	}
	if !in.Weight.IsPositive() || in.Weight.GreaterThan(hundred) {
		return "", nil, apperr.InvalidArgument("weight", "weight must be greater than 0 and at most 100")
	}
	if strings.TrimSpace(in.Kind) == "" {
		return "", nil, apperr.InvalidArgument("kind", "kind is required")
	}
	if strings.TrimSpace(in.SectionID) == "" {
		return "", nil, apperr.InvalidArgument("section_id", "section_id is required")
	}
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return "", nil, err
	}
	policy, _ := PolicyForKind(kind)
	return kind, policy, nil
}
