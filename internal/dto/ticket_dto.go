package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// TicketFilter is bound from the query string of GET /v1/tickets.
type TicketFilter struct {
	Date   string `form:"date"`                  // YYYY-MM-DD; empty = today
	Status string `form:"status,default=open"`   // open | finalized | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenTicketRequest struct {
	ClientID       string `json:"client_id"       validate:"required,uuid"`
	ProfessionalID string `json:"professional_id" validate:"required,uuid"`
}

type AddServiceLineRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,min=1"`
}

type AddProductLineRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	Quantity  int     `json:"quantity"   validate:"required,min=1"`
	SoldBy    *string `json:"sold_by"    validate:"omitempty,uuid"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TicketLineResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"` // service | product
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
	SoldBy    *string         `json:"sold_by,omitempty"`
}

type TicketResponse struct {
	ID             string               `json:"id"`
	Number         int                  `json:"number"`
	ClientID       string               `json:"client_id"`
	ClientName     string               `json:"client_name,omitempty"`
	ProfessionalID string               `json:"professional_id"`
	Status         string               `json:"status"`
	GrossTotal     decimal.Decimal      `json:"gross_total"`
	Lines          []TicketLineResponse `json:"lines"`
	OpenedAt       string               `json:"opened_at"`
}

type TicketListResponse struct {
	Data  []TicketResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
