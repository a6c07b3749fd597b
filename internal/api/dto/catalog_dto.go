package dto

import (
	"time"

	"github.com/flamecloud/flamecloud-api/internal/domain"
)

// PaidPlanRequest payload for plan create/update.
type PaidPlanRequest struct {
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Period    string   `json:"period"`
	Specs     []string `json:"specs"`
	SortOrder int      `json:"sort_order"`
	Active    bool     `json:"active"`
}

// PaidPlanResponse response.
type PaidPlanResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Period    string   `json:"period"`
	Specs     []string `json:"specs"`
	SortOrder int      `json:"sort_order"`
	Active    bool     `json:"active"`
}

// FreePlanRequest payload.
type FreePlanRequest struct {
	Name   string   `json:"name"`
	Specs  []string `json:"specs"`
	Active bool     `json:"active"`
}

// FreePlanResponse response.
type FreePlanResponse struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Specs  []string `json:"specs"`
	Active bool     `json:"active"`
}

// ClaimFreePlanRequest payload.
type ClaimFreePlanRequest struct {
	PlanID string `json:"plan_id"`
}

// LocationRequest payload.
type LocationRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
	Flag    string `json:"flag"`
	Active  bool   `json:"active"`
}

// LocationResponse response.
type LocationResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Flag    string `json:"flag"`
	Active  bool   `json:"active"`
}

// PartnerRequest payload.
type PartnerRequest struct {
	Name       string `json:"name"`
	ChannelURL string `json:"channel_url"`
	Avatar     string `json:"avatar"`
	Active     bool   `json:"active"`
}

// PartnerResponse response.
type PartnerResponse struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ChannelURL string `json:"channel_url"`
	Avatar     string `json:"avatar"`
	Active     bool   `json:"active"`
}

// SettingRequest upserts one key/value row.
type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// SettingResponse response.
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AboutRequest payload for about sections.
type AboutRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	SortOrder int    `json:"sort_order"`
}

// AboutResponse response.
type AboutResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	SortOrder int    `json:"sort_order"`
}

// NewPaidPlanResponse maps a domain plan.
func NewPaidPlanResponse(plan *domain.PaidPlan) PaidPlanResponse {
	return PaidPlanResponse{
		ID:        plan.ID,
		Name:      plan.Name,
		Price:     plan.Price,
		Period:    plan.Period,
		Specs:     plan.Specs,
		SortOrder: plan.SortOrder,
		Active:    plan.Active,
	}
}

// NewFreePlanResponse maps a domain free plan.
func NewFreePlanResponse(plan *domain.FreePlan) FreePlanResponse {
	return FreePlanResponse{
		ID:     plan.ID,
		Name:   plan.Name,
		Specs:  plan.Specs,
		Active: plan.Active,
	}
}

// NewLocationResponse maps a domain location.
func NewLocationResponse(loc *domain.LocationSetting) LocationResponse {
	return LocationResponse{
		ID:      loc.ID,
		Name:    loc.Name,
		Country: loc.Country,
		Flag:    loc.Flag,
		Active:  loc.Active,
	}
}

// NewPartnerResponse maps a domain partner.
func NewPartnerResponse(partner *domain.YTPartner) PartnerResponse {
	return PartnerResponse{
		ID:         partner.ID,
		Name:       partner.Name,
		ChannelURL: partner.ChannelURL,
		Avatar:     partner.Avatar,
		Active:     partner.Active,
	}
}

// NewSettingResponse maps a domain setting.
func NewSettingResponse(setting *domain.SiteSetting) SettingResponse {
	return SettingResponse{
		Key:       setting.Key,
		Value:     setting.Value,
		UpdatedAt: setting.UpdatedAt,
	}
}

// NewAboutResponse maps a domain about section.
func NewAboutResponse(content *domain.AboutContent) AboutResponse {
	return AboutResponse{
		ID:        content.ID,
		Title:     content.Title,
		Body:      content.Body,
		SortOrder: content.SortOrder,
	}
}
