package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/flamecloud/flamecloud-api/internal/domain"
	"github.com/flamecloud/flamecloud-api/internal/repository"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

// CatalogService serves the plan catalog, locations, partners and site
// content. Public reads return active rows only; admin writes pass through
// the repositories.
type CatalogService struct {
	paidPlans repository.PaidPlanRepository
	freePlans repository.FreePlanRepository
	locations repository.LocationRepository
	partners  repository.PartnerRepository
	settings  repository.SiteSettingRepository
	about     repository.AboutContentRepository
	users     repository.UserRepository
}

// CatalogDependencies bundles repositories for the catalog service.
type CatalogDependencies struct {
	PaidPlanRepo repository.PaidPlanRepository
	FreePlanRepo repository.FreePlanRepository
	LocationRepo repository.LocationRepository
	PartnerRepo  repository.PartnerRepository
	SettingRepo  repository.SiteSettingRepository
	AboutRepo    repository.AboutContentRepository
	UserRepo     repository.UserRepository
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	return &CatalogService{
		paidPlans: deps.PaidPlanRepo,
		freePlans: deps.FreePlanRepo,
		locations: deps.LocationRepo,
		partners:  deps.PartnerRepo,
		settings:  deps.SettingRepo,
		about:     deps.AboutRepo,
		users:     deps.UserRepo,
	}
}

// ListPaidPlans returns the public pricing catalog.
func (s *CatalogService) ListPaidPlans(ctx context.Context) ([]domain.PaidPlan, error) {
	return s.paidPlans.List(ctx, true)
}

// ListAllPaidPlans returns every plan including inactive ones for the admin panel.
func (s *CatalogService) ListAllPaidPlans(ctx context.Context) ([]domain.PaidPlan, error) {
	return s.paidPlans.List(ctx, false)
}

// SavePaidPlan creates or updates a plan depending on whether it has an id.
func (s *CatalogService) SavePaidPlan(ctx context.Context, plan *domain.PaidPlan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return apperrors.NewValidationError("plan name required", nil)
	}
	if plan.ID == "" {
		return s.paidPlans.Create(ctx, plan)
	}
	return s.paidPlans.Update(ctx, plan)
}

// DeletePaidPlan removes a plan from the catalog.
func (s *CatalogService) DeletePaidPlan(ctx context.Context, id string) error {
	return s.paidPlans.Delete(ctx, id)
}

// ListFreePlans returns active promotional plans.
func (s *CatalogService) ListFreePlans(ctx context.Context) ([]domain.FreePlan, error) {
	return s.freePlans.List(ctx, true)
}

// SaveFreePlan creates or updates a promotional plan.
func (s *CatalogService) SaveFreePlan(ctx context.Context, plan *domain.FreePlan) error {
	if strings.TrimSpace(plan.Name) == "" {
		return apperrors.NewValidationError("plan name required", nil)
	}
	if plan.ID == "" {
		return s.freePlans.Create(ctx, plan)
	}
	return s.freePlans.Update(ctx, plan)
}

// DeleteFreePlan removes a promotional plan.
func (s *CatalogService) DeleteFreePlan(ctx context.Context, id string) error {
	return s.freePlans.Delete(ctx, id)
}

// ClaimFreePlan marks the one-time promotional gate for the caller and records
// the claiming IP. A second claim fails.
func (s *CatalogService) ClaimFreePlan(ctx context.Context, user *domain.User, planID, ip string) error {
	if user.HasClaimedFreePlan {
		return apperrors.NewInvariantViolation("free plan already claimed")
	}

	plan, err := s.freePlans.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("free plan", nil)
		}
		return err
	}
	if !plan.Active {
		return apperrors.NewValidationError("plan is not available", nil)
	}

	user.HasClaimedFreePlan = true
	user.ClaimedIP = &ip
	return s.users.Update(ctx, user)
}

// ListLocations returns active server regions.
func (s *CatalogService) ListLocations(ctx context.Context) ([]domain.LocationSetting, error) {
	return s.locations.List(ctx, true)
}

// SaveLocation creates or updates a region.
func (s *CatalogService) SaveLocation(ctx context.Context, loc *domain.LocationSetting) error {
	if strings.TrimSpace(loc.Name) == "" {
		return apperrors.NewValidationError("location name required", nil)
	}
	if loc.ID == "" {
		return s.locations.Create(ctx, loc)
	}
	return s.locations.Update(ctx, loc)
}

// DeleteLocation removes a region.
func (s *CatalogService) DeleteLocation(ctx context.Context, id string) error {
	return s.locations.Delete(ctx, id)
}

// ListPartners returns active featured partners.
func (s *CatalogService) ListPartners(ctx context.Context) ([]domain.YTPartner, error) {
	return s.partners.List(ctx, true)
}

// SavePartner creates or updates a partner entry.
func (s *CatalogService) SavePartner(ctx context.Context, partner *domain.YTPartner) error {
	if strings.TrimSpace(partner.Name) == "" {
		return apperrors.NewValidationError("partner name required", nil)
	}
	if partner.ID == "" {
		return s.partners.Create(ctx, partner)
	}
	return s.partners.Update(ctx, partner)
}

// DeletePartner removes a partner entry.
func (s *CatalogService) DeletePartner(ctx context.Context, id string) error {
	return s.partners.Delete(ctx, id)
}

// ListSettings returns all site settings.
func (s *CatalogService) ListSettings(ctx context.Context) ([]domain.SiteSetting, error) {
	return s.settings.List(ctx)
}

// SaveSetting upserts one key/value row.
func (s *CatalogService) SaveSetting(ctx context.Context, setting *domain.SiteSetting) error {
	if strings.TrimSpace(setting.Key) == "" {
		return apperrors.NewValidationError("setting key required", nil)
	}
	return s.settings.Upsert(ctx, setting)
}

// ListAbout returns the about page sections in order.
func (s *CatalogService) ListAbout(ctx context.Context) ([]domain.AboutContent, error) {
	return s.about.List(ctx)
}

// SaveAbout creates or updates an about section.
func (s *CatalogService) SaveAbout(ctx context.Context, content *domain.AboutContent) error {
	if strings.TrimSpace(content.Title) == "" {
		return apperrors.NewValidationError("title required", nil)
	}
	if content.ID == "" {
		return s.about.Create(ctx, content)
	}
	return s.about.Update(ctx, content)
}

// DeleteAbout removes an about section.
func (s *CatalogService) DeleteAbout(ctx context.Context, id string) error {
	return s.about.Delete(ctx, id)
}
