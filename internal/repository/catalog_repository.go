package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// LocationRepository manages advertised server regions.
type LocationRepository interface {
	Create(ctx context.Context, loc *domain.LocationSetting) error
	Update(ctx context.Context, loc *domain.LocationSetting) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyActive bool) ([]domain.LocationSetting, error)
}

type locationRepository struct {
	pool *pgxpool.Pool
}

// NewLocationRepository instantiates the repository.
func NewLocationRepository(pool *pgxpool.Pool) LocationRepository {
	return &locationRepository{pool: pool}
}

func (r *locationRepository) Create(ctx context.Context, loc *domain.LocationSetting) error {
	const query = `
        INSERT INTO location_settings (name, country, flag, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		loc.Name,
		loc.Country,
		loc.Flag,
		loc.Active,
	).Scan(&loc.ID, &loc.CreatedAt, &loc.UpdatedAt)
}

func (r *locationRepository) Update(ctx context.Context, loc *domain.LocationSetting) error {
	const query = `
        UPDATE location_settings SET name=$1, country=$2, flag=$3, active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query, loc.Name, loc.Country, loc.Flag, loc.Active, loc.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM location_settings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *locationRepository) List(ctx context.Context, onlyActive bool) ([]domain.LocationSetting, error) {
	query := `
        SELECT id, name, country, flag, active, created_at, updated_at
        FROM location_settings`
	if onlyActive {
		query += ` WHERE active=true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.LocationSetting
	for rows.Next() {
		var loc domain.LocationSetting
		if err := rows.Scan(
			&loc.ID,
			&loc.Name,
			&loc.Country,
			&loc.Flag,
			&loc.Active,
			&loc.CreatedAt,
			&loc.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, loc)
	}
	return result, rows.Err()
}

// PartnerRepository manages featured YouTube partners.
type PartnerRepository interface {
	Create(ctx context.Context, partner *domain.YTPartner) error
	Update(ctx context.Context, partner *domain.YTPartner) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, onlyActive bool) ([]domain.YTPartner, error)
}

type partnerRepository struct {
	pool *pgxpool.Pool
}

// NewPartnerRepository instantiates the repository.
func NewPartnerRepository(pool *pgxpool.Pool) PartnerRepository {
	return &partnerRepository{pool: pool}
}

func (r *partnerRepository) Create(ctx context.Context, partner *domain.YTPartner) error {
	const query = `
        INSERT INTO yt_partners (name, channel_url, avatar, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		partner.Name,
		partner.ChannelURL,
		partner.Avatar,
		partner.Active,
	).Scan(&partner.ID, &partner.CreatedAt, &partner.UpdatedAt)
}

func (r *partnerRepository) Update(ctx context.Context, partner *domain.YTPartner) error {
	const query = `
        UPDATE yt_partners SET name=$1, channel_url=$2, avatar=$3, active=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		partner.Name,
		partner.ChannelURL,
		partner.Avatar,
		partner.Active,
		partner.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partnerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM yt_partners WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *partnerRepository) List(ctx context.Context, onlyActive bool) ([]domain.YTPartner, error) {
	query := `
        SELECT id, name, channel_url, avatar, active, created_at, updated_at
        FROM yt_partners`
	if onlyActive {
		query += ` WHERE active=true`
	}
	query += ` ORDER BY name ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.YTPartner
	for rows.Next() {
		var partner domain.YTPartner
		if err := rows.Scan(
			&partner.ID,
			&partner.Name,
			&partner.ChannelURL,
			&partner.Avatar,
			&partner.Active,
			&partner.CreatedAt,
			&partner.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, partner)
	}
	return result, rows.Err()
}
