package grade

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/campusops/gradebook/internal/apperr"
)

// SQLStore persists grade records. The UNIQUE (evaluation_id,
// enrollment_id) index in the schema is the authoritative duplicate
// guard; the service-level existence check is only a fast path.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindAll(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, evaluation_id, enrollment_id, value, recorded_at FROM grade_records ORDER BY id`)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, evaluation_id, enrollment_id, value, recorded_at FROM grade_records WHERE id=$1`, id)
	r, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, apperr.NotFound("grade record")
	}
	if err != nil {
		return Record{}, apperr.Storage(err)
	}
	return r, nil
}

func (s *SQLStore) FindByEnrollmentID(ctx context.Context, enrollmentID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, evaluation_id, enrollment_id, value, recorded_at
		 FROM grade_records WHERE enrollment_id=$1 ORDER BY id`, enrollmentID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLStore) FindBySectionID(ctx context.Context, sectionID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT g.id, g.evaluation_id, g.enrollment_id, g.value, g.recorded_at
		 FROM grade_records g
		 JOIN evaluations e ON e.id = g.evaluation_id
		 WHERE e.section_id=$1 ORDER BY g.id`, sectionID)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

func (s *SQLStore) ExistsByEvaluationAndEnrollment(ctx context.Context, evaluationID, enrollmentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM grade_records WHERE evaluation_id=$1 AND enrollment_id=$2`,
		evaluationID, enrollmentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage(err)
	}
	return true, nil
}

func (s *SQLStore) ExistsByEvaluationID(ctx context.Context, evaluationID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM grade_records WHERE evaluation_id=$1 LIMIT 1`, evaluationID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage(err)
	}
	return true, nil
}

func (s *SQLStore) Save(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grade_records (id, evaluation_id, enrollment_id, value, recorded_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET value=EXCLUDED.value`,
		r.ID, r.EvaluationID, r.EnrollmentID, r.Value.String(), r.RecordedAt.Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("grade already recorded for this evaluation and enrollment")
		}
		return apperr.Storage(err)
	}
	return nil
}

func (s *SQLStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM grade_records WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage(err)
	}
	return true, nil
}

func (s *SQLStore) DeleteByID(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM grade_records WHERE id=$1`, id)
	if err != nil {
		return apperr.Storage(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperr.Storage(err)
	}
	if n == 0 {
		return apperr.NotFound("grade record")
	}
	return nil
}

// isUniqueViolation matches the duplicate-pair constraint for both
// drivers: pgx surfaces SQLSTATE 23505, modernc sqlite a "UNIQUE
// constraint failed" message.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "UNIQUE constraint failed")
}

func scanRecord(scan func(...any) error) (Record, error) {
	var r Record
	var value string
	var recordedAt int64
	if err := scan(&r.ID, &r.EvaluationID, &r.EnrollmentID, &value, &recordedAt); err != nil {
		return Record{}, err
	}
	v, err := decimal.NewFromString(value)
	if err != nil {
		return Record{}, fmt.Errorf("bad value %q: %w", value, err)
	}
	r.Value = v
	r.RecordedAt = time.Unix(recordedAt, 0).UTC()
	return r, nil
}

func scanRecords(rows *sql.Rows) ([]Record, error) {
	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, apperr.Storage(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Storage(err)
	}
	return out, nil
}
