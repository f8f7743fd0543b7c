package table

import (
	"context"

	"course-service/internal/rowval"

	"github.com/uptrace/bun"
)

type Repository interface {
	FetchAll(ctx context.Context, table string) ([]rowval.Row, error)
	Count(ctx context.Context, table string) (int, error)
	Ping(ctx context.Context) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FetchAll(ctx context.Context, table string) ([]rowval.Row, error) {
	if !IsExposed(table) {
		return nil, ErrNotExposed
	}

	rows, err := r.db.QueryContext(ctx, "SELECT * FROM ?", bun.Ident(table))
	if err != nil {
		return nil, err
	}
	return rowval.ScanRows(rows)
}

func (r *repository) Count(ctx context.Context, table string) (int, error) {
	if !IsExposed(table) {
		return 0, ErrNotExposed
	}
	return r.db.NewSelect().Table(table).Count(ctx)
}

func (r *repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
