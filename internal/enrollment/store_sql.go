package enrollment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/campusops/gradebook/internal/apperr"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FindByID(ctx context.Context, id string) (Enrollment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, student_id, section_id, status, enrolled_at FROM enrollments WHERE id=$1`, id)
	var e Enrollment
	var enrolledAt int64
	err := row.Scan(&e.ID, &e.StudentID, &e.SectionID, &e.Status, &enrolledAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Enrollment{}, apperr.NotFound("enrollment")
	}
	if err != nil {
		return Enrollment{}, apperr.Storage(err)
	}
	e.EnrolledAt = time.Unix(enrolledAt, 0).UTC()
	return e, nil
}

func (s *SQLStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM enrollments WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, apperr.Storage(err)
	}
	return true, nil
}

func (s *SQLStore) Save(ctx context.Context, e Enrollment) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enrollments (id, student_id, section_id, status, enrolled_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (id) DO UPDATE SET status=EXCLUDED.status`,
		e.ID, e.StudentID, e.SectionID, e.Status, e.EnrolledAt.Unix())
	return apperr.Storage(err)
}
