package catalog

import (
	"context"

	"course-service/internal/rowval"

	"github.com/uptrace/bun"
)

type Repository interface {
	LessonsByCourse(ctx context.Context, courseID int) ([]rowval.Row, error)
	EnrollmentsByUser(ctx context.Context, userID int) ([]rowval.Row, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LessonsByCourse(ctx context.Context, courseID int) ([]rowval.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM lessons WHERE course_id = ? ORDER BY position ASC", courseID)
	if err != nil {
		return nil, err
	}
	return rowval.ScanRows(rows)
}

func (r *repository) EnrollmentsByUser(ctx context.Context, userID int) ([]rowval.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT * FROM enrollments WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	return rowval.ScanRows(rows)
}
