package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type healthRepository struct {
	db *sqlx.DB
}

func NewHealthRepository(db *sqlx.DB) HealthRepository {
	return &healthRepository{db: db}
}

func (r *healthRepository) Ping(ctx context.Context) error {
	return wrap("ping db", r.db.PingContext(ctx))
}

// CountTables reports how many tables the public schema holds.
func (r *healthRepository) CountTables(ctx context.Context) (int, error) {
	var count int

	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
	`

	if err := r.db.GetContext(ctx, &count, query); err != nil {
		return 0, wrap("count tables", err)
	}

	return count, nil
}
