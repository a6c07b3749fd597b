package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/flamecloud/flamecloud-api/internal/api/dto"
	"github.com/flamecloud/flamecloud-api/internal/auth"
	"github.com/flamecloud/flamecloud-api/internal/domain"
	"github.com/flamecloud/flamecloud-api/internal/service"
	apperrors "github.com/flamecloud/flamecloud-api/pkg/util"
)

// CatalogHandler serves public catalog/content reads and admin writes.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: catalogService}
}

// ListPaidPlans GET /api/plans.
func (h *CatalogHandler) ListPaidPlans(c *fiber.Ctx) error {
	plans, err := h.service.ListPaidPlans(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PaidPlanResponse, 0, len(plans))
	for i := range plans {
		items = append(items, dto.NewPaidPlanResponse(&plans[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListAllPaidPlans GET /api/admin/plans. Includes inactive rows.
func (h *CatalogHandler) ListAllPaidPlans(c *fiber.Ctx) error {
	plans, err := h.service.ListAllPaidPlans(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PaidPlanResponse, 0, len(plans))
	for i := range plans {
		items = append(items, dto.NewPaidPlanResponse(&plans[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreatePaidPlan POST /api/admin/plans.
func (h *CatalogHandler) CreatePaidPlan(c *fiber.Ctx) error {
	return h.savePaidPlan(c, "")
}

// UpdatePaidPlan PUT /api/admin/plans/:id.
func (h *CatalogHandler) UpdatePaidPlan(c *fiber.Ctx) error {
	return h.savePaidPlan(c, c.Params("id"))
}

func (h *CatalogHandler) savePaidPlan(c *fiber.Ctx, id string) error {
	var req dto.PaidPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	plan := &domain.PaidPlan{
		ID:        id,
		Name:      req.Name,
		Price:     req.Price,
		Period:    req.Period,
		Specs:     req.Specs,
		SortOrder: req.SortOrder,
		Active:    req.Active,
	}
	if err := h.service.SavePaidPlan(c.UserContext(), plan); err != nil {
		return err
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewPaidPlanResponse(plan)})
}

// DeletePaidPlan DELETE /api/admin/plans/:id.
func (h *CatalogHandler) DeletePaidPlan(c *fiber.Ctx) error {
	if err := h.service.DeletePaidPlan(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListFreePlans GET /api/free-plans.
func (h *CatalogHandler) ListFreePlans(c *fiber.Ctx) error {
	plans, err := h.service.ListFreePlans(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.FreePlanResponse, 0, len(plans))
	for i := range plans {
		items = append(items, dto.NewFreePlanResponse(&plans[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateFreePlan POST /api/admin/free-plans.
func (h *CatalogHandler) CreateFreePlan(c *fiber.Ctx) error {
	return h.saveFreePlan(c, "")
}

// UpdateFreePlan PUT /api/admin/free-plans/:id.
func (h *CatalogHandler) UpdateFreePlan(c *fiber.Ctx) error {
	return h.saveFreePlan(c, c.Params("id"))
}

func (h *CatalogHandler) saveFreePlan(c *fiber.Ctx, id string) error {
	var req dto.FreePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	plan := &domain.FreePlan{
		ID:     id,
		Name:   req.Name,
		Specs:  req.Specs,
		Active: req.Active,
	}
	if err := h.service.SaveFreePlan(c.UserContext(), plan); err != nil {
		return err
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewFreePlanResponse(plan)})
}

// DeleteFreePlan DELETE /api/admin/free-plans/:id.
func (h *CatalogHandler) DeleteFreePlan(c *fiber.Ctx) error {
	if err := h.service.DeleteFreePlan(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ClaimFreePlan POST /api/free-plans/claim.
func (h *CatalogHandler) ClaimFreePlan(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.ClaimFreePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.service.ClaimFreePlan(c.UserContext(), principal.User, req.PlanID, c.IP()); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"claimed": true}})
}

// ListLocations GET /api/locations.
func (h *CatalogHandler) ListLocations(c *fiber.Ctx) error {
	locations, err := h.service.ListLocations(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		items = append(items, dto.NewLocationResponse(&locations[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateLocation POST /api/admin/locations.
func (h *CatalogHandler) CreateLocation(c *fiber.Ctx) error {
	return h.saveLocation(c, "")
}

// UpdateLocation PUT /api/admin/locations/:id.
func (h *CatalogHandler) UpdateLocation(c *fiber.Ctx) error {
	return h.saveLocation(c, c.Params("id"))
}

func (h *CatalogHandler) saveLocation(c *fiber.Ctx, id string) error {
	var req dto.LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	loc := &domain.LocationSetting{
		ID:      id,
		Name:    req.Name,
		Country: req.Country,
		Flag:    req.Flag,
		Active:  req.Active,
	}
	if err := h.service.SaveLocation(c.UserContext(), loc); err != nil {
		return err
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewLocationResponse(loc)})
}

// DeleteLocation DELETE /api/admin/locations/:id.
func (h *CatalogHandler) DeleteLocation(c *fiber.Ctx) error {
	if err := h.service.DeleteLocation(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListPartners GET /api/partners.
func (h *CatalogHandler) ListPartners(c *fiber.Ctx) error {
	partners, err := h.service.ListPartners(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.PartnerResponse, 0, len(partners))
	for i := range partners {
		items = append(items, dto.NewPartnerResponse(&partners[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreatePartner POST /api/admin/partners.
func (h *CatalogHandler) CreatePartner(c *fiber.Ctx) error {
	return h.savePartner(c, "")
}

// UpdatePartner PUT /api/admin/partners/:id.
func (h *CatalogHandler) UpdatePartner(c *fiber.Ctx) error {
	return h.savePartner(c, c.Params("id"))
}

func (h *CatalogHandler) savePartner(c *fiber.Ctx, id string) error {
	var req dto.PartnerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	partner := &domain.YTPartner{
		ID:         id,
		Name:       req.Name,
		ChannelURL: req.ChannelURL,
		Avatar:     req.Avatar,
		Active:     req.Active,
	}
	if err := h.service.SavePartner(c.UserContext(), partner); err != nil {
		return err
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewPartnerResponse(partner)})
}

// DeletePartner DELETE /api/admin/partners/:id.
func (h *CatalogHandler) DeletePartner(c *fiber.Ctx) error {
	if err := h.service.DeletePartner(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListSettings GET /api/settings.
func (h *CatalogHandler) ListSettings(c *fiber.Ctx) error {
	settings, err := h.service.ListSettings(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.SettingResponse, 0, len(settings))
	for i := range settings {
		items = append(items, dto.NewSettingResponse(&settings[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SaveSetting PUT /api/admin/settings.
func (h *CatalogHandler) SaveSetting(c *fiber.Ctx) error {
	var req dto.SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	setting := &domain.SiteSetting{Key: req.Key, Value: req.Value}
	if err := h.service.SaveSetting(c.UserContext(), setting); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSettingResponse(setting)})
}

// ListAbout GET /api/about.
func (h *CatalogHandler) ListAbout(c *fiber.Ctx) error {
	sections, err := h.service.ListAbout(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.AboutResponse, 0, len(sections))
	for i := range sections {
		items = append(items, dto.NewAboutResponse(&sections[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CreateAbout POST /api/admin/about.
func (h *CatalogHandler) CreateAbout(c *fiber.Ctx) error {
	return h.saveAbout(c, "")
}

// UpdateAbout PUT /api/admin/about/:id.
func (h *CatalogHandler) UpdateAbout(c *fiber.Ctx) error {
	return h.saveAbout(c, c.Params("id"))
}

func (h *CatalogHandler) saveAbout(c *fiber.Ctx, id string) error {
	var req dto.AboutRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	content := &domain.AboutContent{
		ID:        id,
		Title:     req.Title,
		Body:      req.Body,
		SortOrder: req.SortOrder,
	}
	if err := h.service.SaveAbout(c.UserContext(), content); err != nil {
		return err
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"data": dto.NewAboutResponse(content)})
}

// DeleteAbout DELETE /api/admin/about/:id.
func (h *CatalogHandler) DeleteAbout(c *fiber.Ctx) error {
	if err := h.service.DeleteAbout(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
