package evaluation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/campusops/gradebook/internal/apperr"
	"github.com/campusops/gradebook/internal/evaluation"
)

type fakeGradeRefs struct {
	referenced map[string]bool
}

func (f *fakeGradeRefs) ExistsByEvaluationID(_ context.Context, evaluationID string) (bool, error) {
	return f.referenced[evaluationID], nil
}

func newTestService() (*evaluation.Service, *fakeGradeRefs) {
	refs := &fakeGradeRefs{referenced: map[string]bool{}}
	return evaluation.NewService(evaluation.NewMemoryStore(), refs), refs
}

func mustCreate(t *testing.T, svc *evaluation.Service, title, weight, kind, sectionID string) evaluation.Evaluation {
	t.Helper()
	e, err := svc.Create(context.Background(), evaluation.Input{
		Title: title, Weight: d(weight), Kind: kind, SectionID: sectionID,
	})
	if err != nil {
		t.Fatalf("create %s: %v", title, err)
	}
	return e
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		in    evaluation.Input
		field string
	}{
		{"blank title", evaluation.Input{Title: "  ", Weight: d("40"), Kind: "EXAM", SectionID: "s1"}, "title"},
		{"zero weight", evaluation.Input{Title: "Midterm", Weight: d("0"), Kind: "EXAM", SectionID: "s1"}, "weight"},
		{"negative weight", evaluation.Input{Title: "Midterm", Weight: d("-5"), Kind: "EXAM", SectionID: "s1"}, "weight"},
		{"weight above 100", evaluation.Input{Title: "Midterm", Weight: d("100.01"), Kind: "EXAM", SectionID: "s1"}, "weight"},
		{"blank kind", evaluation.Input{Title: "Midterm", Weight: d("40"), Kind: " ", SectionID: "s1"}, "kind"},
		{"blank section", evaluation.Input{Title: "Midterm", Weight: d("40"), Kind: "EXAM", SectionID: ""}, "section_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.in)
			var e *apperr.Error
			if !errors.As(err, &e) || e.Kind != apperr.KindInvalidArgument {
				t.Fatalf("expected invalid_argument, got %v", err)
			}
			if e.Field != tc.field {
				t.Fatalf("expected field %q, got %q", tc.field, e.Field)
			}
		})
	}

	_, err := svc.Create(ctx, evaluation.Input{Title: "Midterm", Weight: d("40"), Kind: "QUIZ", SectionID: "s1"})
	if !errors.Is(err, apperr.ErrInvalidEvaluationKind) {
		t.Fatalf("expected invalid_evaluation_kind, got %v", err)
	}
}

func TestCreateNormalizesKind(t *testing.T) {
	svc, _ := newTestService()
	e := mustCreate(t, svc, "Final", "40", "exam", "s1")
	if e.Kind != evaluation.KindExam {
		t.Fatalf("expected normalized EXAM, got %q", e.Kind)
	}
}

func TestWeightCeiling(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	mustCreate(t, svc, "Midterm", "60", "EXAM", "s1")
	// exactly the remaining headroom is accepted
	mustCreate(t, svc, "Project", "40", "ASSIGNMENT", "s1")

	_, err := svc.Create(ctx, evaluation.Input{Title: "Extra", Weight: d("0.01"), Kind: "PARTICIPATION", SectionID: "s1"})
	if !errors.Is(err, apperr.ErrWeightLimitExceeded) {
		t.Fatalf("expected weight_limit_exceeded, got %v", err)
	}

	// the rejected create left prior state unchanged
	all, err := svc.ListBySection(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 evaluations after rejection, got %d", len(all))
	}

	// other sections keep their own weight headroom
	mustCreate(t, svc, "Midterm", "100", "EXAM", "s2")
}

func TestWeightCeilingNoDrift(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	// 10 x 10.01 would drift past 100 with binary floats long before the
	// exact total does; decimals must reject only the genuine overflow.
	for i := 0; i < 9; i++ {
		mustCreate(t, svc, "Part", "10.01", "ASSIGNMENT", "s1")
	}
	// total 90.09, headroom 9.91
	mustCreate(t, svc, "Closer", "9.91", "EXAM", "s1")

	_, err := svc.Create(ctx, evaluation.Input{Title: "Over", Weight: d("0.01"), Kind: "EXAM", SectionID: "s1"})
	if !errors.Is(err, apperr.ErrWeightLimitExceeded) {
		t.Fatalf("expected weight_limit_exceeded at exact ceiling, got %v", err)
	}
}

func TestUpdateExcludesOwnWeight(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first := mustCreate(t, svc, "Midterm", "60", "EXAM", "s1")
	mustCreate(t, svc, "Project", "40", "ASSIGNMENT", "s1")

	// replacing 60 with 60 keeps the total at exactly 100
	updated, err := svc.Update(ctx, first.ID, evaluation.Input{
		Title: "Midterm v2", Weight: d("60"), Kind: "EXAM", SectionID: "s1",
	})
	if err != nil {
		t.Fatalf("update at ceiling: %v", err)
	}
	if updated.Title != "Midterm v2" || !updated.Weight.Equal(d("60")) {
		t.Fatalf("update did not replace fields: %+v", updated)
	}

	_, err = svc.Update(ctx, first.ID, evaluation.Input{
		Title: "Midterm v3", Weight: d("60.5"), Kind: "EXAM", SectionID: "s1",
	})
	if !errors.Is(err, apperr.ErrWeightLimitExceeded) {
		t.Fatalf("expected weight_limit_exceeded, got %v", err)
	}

	// rejected update left the record unchanged
	got, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Midterm v2" || !got.Weight.Equal(d("60")) {
		t.Fatalf("rejected update mutated state: %+v", got)
	}
}

func TestUpdateIsFullReplace(t *testing.T) {
	svc, _ := newTestService()
	e := mustCreate(t, svc, "Essay", "30", "ASSIGNMENT", "s1")

	updated, err := svc.Update(context.Background(), e.ID, evaluation.Input{
		Title: "Oral exam", Weight: d("25"), Kind: "participation", SectionID: "s1",
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Kind != evaluation.KindParticipation || updated.Title != "Oral exam" || !updated.Weight.Equal(d("25")) {
		t.Fatalf("expected all fields replaced, got %+v", updated)
	}
}

func TestUpdateSectionIsImmutable(t *testing.T) {
	svc, _ := newTestService()
	e := mustCreate(t, svc, "Essay", "30", "ASSIGNMENT", "s1")

	_, err := svc.Update(context.Background(), e.ID, evaluation.Input{
		Title: "Essay", Weight: d("30"), Kind: "ASSIGNMENT", SectionID: "s2",
	})
	var ae *apperr.Error
	if !errors.As(err, &ae) || ae.Kind != apperr.KindInvalidArgument || ae.Field != "section_id" {
		t.Fatalf("expected invalid_argument on section_id, got %v", err)
	}
}

func TestUpdateMissing(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Update(context.Background(), "nope", evaluation.Input{
		Title: "x", Weight: d("10"), Kind: "EXAM", SectionID: "s1",
	})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	svc, _ := newTestService()
	e := mustCreate(t, svc, "Midterm", "40", "EXAM", "s1")

	got, err := svc.Get(context.Background(), e.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != e.ID || got.Title != e.Title || !got.Weight.Equal(e.Weight) ||
		got.Kind != e.Kind || got.SectionID != e.SectionID {
		t.Fatalf("round trip mismatch: created %+v, got %+v", e, got)
	}

	// the loaded evaluation carries a usable scoring policy
	contribution, err := got.FinalGrade(d("8"))
	if err != nil {
		t.Fatal(err)
	}
	if contribution.String() != "3.2" {
		t.Fatalf("expected 3.2, got %s", contribution)
	}
}

func TestDelete(t *testing.T) {
	svc, refs := newTestService()
	ctx := context.Background()

	if err := svc.Delete(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}

	e := mustCreate(t, svc, "Midterm", "40", "EXAM", "s1")
	refs.referenced[e.ID] = true
	if err := svc.Delete(ctx, e.ID); !errors.Is(err, apperr.ErrConflict) {
		t.Fatalf("expected conflict while grades reference the evaluation, got %v", err)
	}
	if _, err := svc.Get(ctx, e.ID); err != nil {
		t.Fatalf("rejected delete removed the evaluation: %v", err)
	}

	refs.referenced[e.ID] = false
	if err := svc.Delete(ctx, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, e.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not_found after delete, got %v", err)
	}
}

func TestCalculateFinalGrade(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	exam := mustCreate(t, svc, "Final", "40", "EXAM", "s1")
	part := mustCreate(t, svc, "Engagement", "50", "PARTICIPATION", "s1")

	got, err := svc.CalculateFinalGrade(ctx, exam.ID, d("8"))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "3.2" {
		t.Fatalf("exam contribution: expected 3.2, got %s", got)
	}

	got, err = svc.CalculateFinalGrade(ctx, part.ID, d("10"))
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "4" {
		t.Fatalf("participation contribution: expected 4 (capped), got %s", got)
	}

	if _, err := svc.CalculateFinalGrade(ctx, "missing", d("5")); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}
