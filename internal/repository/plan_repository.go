package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// PaidPlanRepository manages the pricing catalog.
type PaidPlanRepository interface {
	Create(ctx context.Context, plan *domain.PaidPlan) error
	Update(ctx context.Context, plan *domain.PaidPlan) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.PaidPlan, error)
	List(ctx context.Context, onlyActive bool) ([]domain.PaidPlan, error)
}

type paidPlanRepository struct {
	pool *pgxpool.Pool
}

// NewPaidPlanRepository instantiates the repository.
func NewPaidPlanRepository(pool *pgxpool.Pool) PaidPlanRepository {
	return &paidPlanRepository{pool: pool}
}

func (r *paidPlanRepository) Create(ctx context.Context, plan *domain.PaidPlan) error {
	const query = `
        INSERT INTO paid_plans (name, price, period, specs, sort_order, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		plan.Name,
		plan.Price,
		plan.Period,
		plan.Specs,
		plan.SortOrder,
		plan.Active,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *paidPlanRepository) Update(ctx context.Context, plan *domain.PaidPlan) error {
	const query = `
        UPDATE paid_plans
        SET name=$1, price=$2, period=$3, specs=$4, sort_order=$5, active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		plan.Name,
		plan.Price,
		plan.Period,
		plan.Specs,
		plan.SortOrder,
		plan.Active,
		plan.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paidPlanRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM paid_plans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *paidPlanRepository) GetByID(ctx context.Context, id string) (*domain.PaidPlan, error) {
	const query = `
        SELECT id, name, price, period, specs, sort_order, active, created_at, updated_at
        FROM paid_plans WHERE id=$1`
	var plan domain.PaidPlan
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Price,
		&plan.Period,
		&plan.Specs,
		&plan.SortOrder,
		&plan.Active,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *paidPlanRepository) List(ctx context.Context, onlyActive bool) ([]domain.PaidPlan, error) {
	query := `
        SELECT id, name, price, period, specs, sort_order, active, created_at, updated_at
        FROM paid_plans`
	if onlyActive {
		query += ` WHERE active=true`
	}
	query += ` ORDER BY sort_order ASC, created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PaidPlan
	for rows.Next() {
		var plan domain.PaidPlan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Price,
			&plan.Period,
			&plan.Specs,
			&plan.SortOrder,
			&plan.Active,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}

// FreePlanRepository manages the promotional plan catalog.
type FreePlanRepository interface {
	Create(ctx context.Context, plan *domain.FreePlan) error
	Update(ctx context.Context, plan *domain.FreePlan) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.FreePlan, error)
	List(ctx context.Context, onlyActive bool) ([]domain.FreePlan, error)
}

type freePlanRepository struct {
	pool *pgxpool.Pool
}

// NewFreePlanRepository instantiates the repository.
func NewFreePlanRepository(pool *pgxpool.Pool) FreePlanRepository {
	return &freePlanRepository{pool: pool}
}

func (r *freePlanRepository) Create(ctx context.Context, plan *domain.FreePlan) error {
	const query = `
        INSERT INTO free_plans (name, specs, active)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		plan.Name,
		plan.Specs,
		plan.Active,
	).Scan(&plan.ID, &plan.CreatedAt, &plan.UpdatedAt)
}

func (r *freePlanRepository) Update(ctx context.Context, plan *domain.FreePlan) error {
	const query = `
        UPDATE free_plans SET name=$1, specs=$2, active=$3, updated_at=NOW() WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, plan.Name, plan.Specs, plan.Active, plan.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *freePlanRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM free_plans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *freePlanRepository) GetByID(ctx context.Context, id string) (*domain.FreePlan, error) {
	const query = `
        SELECT id, name, specs, active, created_at, updated_at
        FROM free_plans WHERE id=$1`
	var plan domain.FreePlan
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&plan.ID,
		&plan.Name,
		&plan.Specs,
		&plan.Active,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *freePlanRepository) List(ctx context.Context, onlyActive bool) ([]domain.FreePlan, error) {
	query := `
        SELECT id, name, specs, active, created_at, updated_at
        FROM free_plans`
	if onlyActive {
		query += ` WHERE active=true`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FreePlan
	for rows.Next() {
		var plan domain.FreePlan
		if err := rows.Scan(
			&plan.ID,
			&plan.Name,
			&plan.Specs,
			&plan.Active,
			&plan.CreatedAt,
			&plan.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, plan)
	}
	return result, rows.Err()
}
