package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// SiteSettingRepository manages key/value site configuration rows.
type SiteSettingRepository interface {
	List(ctx context.Context) ([]domain.SiteSetting, error)
	Upsert(ctx context.Context, setting *domain.SiteSetting) error
}

type siteSettingRepository struct {
	pool *pgxpool.Pool
}

// NewSiteSettingRepository instantiates the repository.
func NewSiteSettingRepository(pool *pgxpool.Pool) SiteSettingRepository {
	return &siteSettingRepository{pool: pool}
}

func (r *siteSettingRepository) List(ctx context.Context) ([]domain.SiteSetting, error) {
	const query = `SELECT key, value, updated_at FROM site_settings ORDER BY key ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.SiteSetting
	for rows.Next() {
		var setting domain.SiteSetting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, setting)
	}
	return result, rows.Err()
}

func (r *siteSettingRepository) Upsert(ctx context.Context, setting *domain.SiteSetting) error {
	const query = `
        INSERT INTO site_settings (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query, setting.Key, setting.Value).Scan(&setting.UpdatedAt)
}

// AboutContentRepository manages about page sections.
type AboutContentRepository interface {
	Create(ctx context.Context, content *domain.AboutContent) error
	Update(ctx context.Context, content *domain.AboutContent) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.AboutContent, error)
}

type aboutContentRepository struct {
	pool *pgxpool.Pool
}

// NewAboutContentRepository instantiates the repository.
func NewAboutContentRepository(pool *pgxpool.Pool) AboutContentRepository {
	return &aboutContentRepository{pool: pool}
}

func (r *aboutContentRepository) Create(ctx context.Context, content *domain.AboutContent) error {
	const query = `
        INSERT INTO about_content (title, body, sort_order)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		content.Title,
		content.Body,
		content.SortOrder,
	).Scan(&content.ID, &content.CreatedAt, &content.UpdatedAt)
}

func (r *aboutContentRepository) Update(ctx context.Context, content *domain.AboutContent) error {
	const query = `
        UPDATE about_content SET title=$1, body=$2, sort_order=$3, updated_at=NOW() WHERE id=$4`
	cmd, err := r.pool.Exec(ctx, query, content.Title, content.Body, content.SortOrder, content.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *aboutContentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM about_content WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *aboutContentRepository) List(ctx context.Context) ([]domain.AboutContent, error) {
	const query = `
        SELECT id, title, body, sort_order, created_at, updated_at
        FROM about_content ORDER BY sort_order ASC, created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AboutContent
	for rows.Next() {
		var content domain.AboutContent
		if err := rows.Scan(
			&content.ID,
			&content.Title,
			&content.Body,
			&content.SortOrder,
			&content.CreatedAt,
			&content.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, content)
	}
	return result, rows.Err()
}
