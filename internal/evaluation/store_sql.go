package evaluation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/apperr"
)

// SQLStore persists evaluations in the evaluations table. Weights are
// stored as decimal strings so repeated sums stay exact across drivers.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindAll(ctx context.Context) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, weight, kind, section_id FROM evaluations ORDER BY id`)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	return scanEvaluations(rows)
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, weight, kind, section_id FROM evaluations WHERE id=$1`, id)
	e, err := scanEvaluation(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Evaluation{}, apperr.NotFound("evaluation")
	}
	if err != nil {
		return Evaluation{}, apperr.Storage(err)
	}
	return e, nil
}

func (s *SQLStore) FindBySectionID(ctx context.Context, sectionID string) ([]Evaluation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, weight, kind, section_id FROM evaluations WHERE section_id=$1 ORDER BY id`,
		sectionID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	return scanEvaluations(rows)
}

func (s *SQLStore) Save(ctx context.Context, e Evaluation) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, title, weight, kind, section_id)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET
		   title=EXCLUDED.title, weight=EXCLUDED.weight, kind=EXCLUDED.kind`,
		e.ID, e.Title, e.Weight.String(), string(e.Kind), e.SectionID)
	return apperr.Storage(err)
}

func (s *SQLStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM evaluations WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage(err)
	}
	return true, nil
}

func (s *SQLStore) DeleteByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM evaluations WHERE id=$1`, id)
	if err != nil {
		return apperr.Storage(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if n == 0 {
		return apperr.NotFound("evaluation")
	}
	return nil
}

func scanEvaluation(scan func(...any) error) (Evaluation, error) {
	var e Evaluation
	var weight, kind string
	if err := scan(&e.ID, &e.Title, &weight, &kind, &e.SectionID); err != nil {
		return Evaluation{}, err
	}
	w, err := decimal.NewFromString(weight)
	if err != nil {
		return Evaluation{}, fmt.Errorf("bad weight %q: %w", weight, err)
	}
	e.Weight = w
	e.Kind = Kind(kind)
	return e, nil
}

func scanEvaluations(rows *sql.Rows) ([]Evaluation, error) {
	var out []Evaluation
	for rows.Next() {
		e, err := scanEvaluation(rows.Scan)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}
