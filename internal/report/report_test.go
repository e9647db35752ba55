package report_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/evaluation"
	"github.com/campusops/gradebook/internal/grade"
	"github.com/campusops/gradebook/internal/report"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedBuilder(t *testing.T) *report.Builder {
	t.Helper()
	ctx := context.Background()

	evals := evaluation.NewMemoryStore()
	for _, e := range []evaluation.Evaluation{
		{ID: "eval-exam", Title: "Final", Weight: d("40"), Kind: evaluation.KindExam, SectionID: "s1"},
		{ID: "eval-part", Title: "Engagement", Weight: d("50"), Kind: evaluation.KindParticipation, SectionID: "s1"},
	} {
		if err := evals.Save(ctx, e); err != nil {
			t.Fatal(err)
		}
	}

	grades := grade.NewMemoryStore(evals)
	for _, r := range []grade.Record{
		{ID: "g1", EvaluationID: "eval-exam", EnrollmentID: "enr-a", Value: d("8")},
		{ID: "g2", EvaluationID: "eval-part", EnrollmentID: "enr-a", Value: d("10")},
		{ID: "g3", EvaluationID: "eval-exam", EnrollmentID: "enr-b", Value: d("5")},
		{ID: "g4", EvaluationID: "eval-part", EnrollmentID: "enr-b", Value: d("6")},
	} {
		if err := grades.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	return report.NewBuilder(evals, grades)
}

func TestSectionTotals(t *testing.T) {
	b := seedBuilder(t)

	totals, err := b.SectionTotals(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	// enr-a: exam 8*40/100 = 3.2, participation capped at 8 -> 8*50/100 = 4
	if got := totals["enr-a"]; !got.Equal(d("7.2")) {
		t.Fatalf("enr-a total: expected 7.2, got %s", got)
	}
	// enr-b: 5*40/100 = 2, 6*50/100 = 3
	if got := totals["enr-b"]; !got.Equal(d("5")) {
		t.Fatalf("enr-b total: expected 5, got %s", got)
	}
}

func TestStudentReport(t *testing.T) {
	b := seedBuilder(t)

	rep, err := b.Student(context.Background(), "s1", "enr-a")
	if err != nil {
		t.Fatal(err)
	}
	out := rep.Render()
	if !strings.Contains(out, "Enrollment: enr-a") || !strings.Contains(out, "Final Grade: 7.20") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestSectionReport(t *testing.T) {
	b := seedBuilder(t)

	rep, err := b.Section(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	out := rep.Render()
	// average of 7.2 and 5
	for _, want := range []string{"Section: s1", "Graded Enrollments: 2", "Average Final Grade: 6.10"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in report:\n%s", want, out)
		}
	}
}

func TestEmptySection(t *testing.T) {
	b := seedBuilder(t)

	rep, err := b.Section(context.Background(), "empty")
	if err != nil {
		t.Fatal(err)
	}
	out := rep.Render()
	if !strings.Contains(out, "Graded Enrollments: 0") || !strings.Contains(out, "Average Final Grade: 0.00") {
		t.Fatalf("unexpected empty-section report:\n%s", out)
	}
}
