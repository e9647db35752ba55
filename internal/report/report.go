// Package report renders plain-text performance summaries from recorded
// grades. A final grade is the sum of policy contributions across a
// section's evaluations.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/apperr"
	"github.com/campusops/gradebook/internal/evaluation"
	"github.com/campusops/gradebook/internal/grade"
)

type EvaluationSource interface {
	FindBySectionID(ctx context.Context, sectionID string) ([]evaluation.Evaluation, error)
}

type GradeSource interface {
	FindBySectionID(ctx context.Context, sectionID string) ([]grade.Record, error)
}

// Report is anything that can render itself for export.
type Report interface {
	Render() string
}

type StudentReport struct {
	EnrollmentID string
	FinalGrade   decimal.Decimal
}

func (r StudentReport) Render() string {
	return fmt.Sprintf(`===== Student Performance Report =====
Enrollment: %s
Final Grade: %s
--------------------------------------
`, r.EnrollmentID, r.FinalGrade.StringFixed(2))
}

type SectionReport struct {
	SectionID   string
	Enrollments int
	Average     decimal.Decimal
}

func (r SectionReport) Render() string {
	return fmt.Sprintf(`===== Section Grade Report =====
Section: %s
Graded Enrollments: %d
Average Final Grade: %s
--------------------------------
`, r.SectionID, r.Enrollments, r.Average.StringFixed(2))
}

// Builder assembles reports from the evaluation and grade stores.
type Builder struct {
	evals  EvaluationSource
	grades GradeSource
}

func NewBuilder(evals EvaluationSource, grades GradeSource) *Builder {
	return &Builder{evals: evals, grades: grades}
}

// SectionTotals computes the final grade per enrollment for one section.
// Enrollments without any recorded grade do not appear.
func (b *Builder) SectionTotals(ctx context.Context, sectionID string) (map[string]decimal.Decimal, error) {
	evals, err := b.evals.FindBySectionID(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	byEval := make(map[string]evaluation.Evaluation, len(evals))
	for _, e := range evals {
		byEval[e.ID] = e
	}

	records, err := b.grades.FindBySectionID(ctx, sectionID)
	if err != nil {
		return nil, err
	}

	totals := map[string]decimal.Decimal{}
	for _, r := range records {
		e, ok := byEval[r.EvaluationID]
		if !ok {
			continue
		}
		p, ok := evaluation.PolicyForKind(e.Kind)
		if !ok {
			return nil, apperr.InvalidState("evaluation kind has no scoring policy: " + string(e.Kind))
		}
		totals[r.EnrollmentID] = totals[r.EnrollmentID].Add(p.Contribution(r.Value, e.Weight))
	}
	return totals, nil
}

func (b *Builder) Student(ctx context.Context, sectionID, enrollmentID string) (Report, error) {
	totals, err := b.SectionTotals(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	return StudentReport{EnrollmentID: enrollmentID, FinalGrade: totals[enrollmentID]}, nil
}

func (b *Builder) Section(ctx context.Context, sectionID string) (Report, error) {
	totals, err := b.SectionTotals(ctx, sectionID)
	if err != nil {
		return nil, err
	}
	rep := SectionReport{SectionID: sectionID, Enrollments: len(totals)}
	if len(totals) > 0 {
		sum := decimal.Zero
		for _, t := range totals {
			sum = sum.Add(t)
		}
		rep.Average = sum.DivRound(decimal.NewFromInt(int64(len(totals))), 4)
	}
	return rep, nil
}
