package dto

import "github.com/shopspring/decimal"

// ─── Salon services ──────────────────────────────────────────────────────────

type SalonServiceRequest struct {
	Name            string          `json:"name"             validate:"required,min=2,max=150"`
	Price           decimal.Decimal `json:"price"            validate:"required,gt=0"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,min=5"`
}

type SalonServiceResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
	Active          bool            `json:"active"`
}

// ─── Products ────────────────────────────────────────────────────────────────

type ProductRequest struct {
	Name  string          `json:"name"  validate:"required,min=2,max=150"`
	Price decimal.Decimal `json:"price" validate:"required,gt=0"`
}

type ProductResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Price  decimal.Decimal `json:"price"`
	Active bool            `json:"active"`
}

// ─── Commission rates ────────────────────────────────────────────────────────

type CommissionRateRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	// ProfessionalID empty = default rate for the service.
	ProfessionalID *string         `json:"professional_id" validate:"omitempty,uuid"`
	StandardRate   decimal.Decimal `json:"standard_rate"   validate:"required,gt=0"`
	AssistantRate  decimal.Decimal `json:"assistant_rate"  validate:"required,gt=0"`
}

type CommissionRateResponse struct {
	ID             string          `json:"id"`
	ServiceID      string          `json:"service_id"`
	ProfessionalID *string         `json:"professional_id,omitempty"`
	StandardRate   decimal.Decimal `json:"standard_rate"`
	AssistantRate  decimal.Decimal `json:"assistant_rate"`
}

// ─── Price check ─────────────────────────────────────────────────────────────

// ServicePriceResponse is served by the public price check endpoint
// (cached in Redis — read-only, no side effects).
type ServicePriceResponse struct {
	Name            string          `json:"name"`
	Price           decimal.Decimal `json:"price"`
	DurationMinutes int             `json:"duration_minutes"`
}
