package repository

import (
	"context"

	"CoinVestAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{
		pool: pool,
	}
}

func (r *PlanRepository) Create(ctx context.Context, plan *model.Plan) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO plans (id, name, min_amount, max_amount, duration_days, roi_percent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		plan.ID, plan.Name, plan.MinAmount, plan.MaxAmount, plan.DurationDays, plan.ROIPercent, plan.CreatedAt,
	)
	return err
}

func (r *PlanRepository) List(ctx context.Context) ([]model.Plan, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, min_amount, max_amount, duration_days, roi_percent, created_at
		FROM plans ORDER BY min_amount ASC, created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]model.Plan, 0)
	for rows.Next() {
		var p model.Plan
		err := rows.Scan(&p.ID, &p.Name, &p.MinAmount, &p.MaxAmount, &p.DurationDays, &p.ROIPercent, &p.CreatedAt)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM plans WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
