package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	InitialCash decimal.Decimal `json:"initial_cash" validate:"min=0"`
}

type CashMovementRequest struct {
	SessionID   string          `json:"session_id"  validate:"required,uuid"`
	Type        string          `json:"type"        validate:"required,oneof=withdrawal supply"`
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"required,min=3"`
}

type CloseSessionRequest struct {
	SessionID string `json:"session_id" validate:"required,uuid"`
	// CountedCash is the physically counted drawer amount (reconciliation
	// figure). Optional — when absent only the derived balance is reported.
	CountedCash *decimal.Decimal `json:"counted_cash" validate:"omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CashMovementResponse struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   string          `json:"created_at"`
}

type CashierSessionResponse struct {
	ID            string          `json:"id"`
	ResponsibleID string          `json:"responsible_id"`
	Status        string          `json:"status"`
	InitialCash   decimal.Decimal `json:"initial_cash"`
	// CurrentCash = initial + Σsupply − Σwithdrawal, always derived.
	CurrentCash      decimal.Decimal        `json:"current_cash"`
	TotalSupplies    decimal.Decimal        `json:"total_supplies"`
	TotalWithdrawals decimal.Decimal        `json:"total_withdrawals"`
	CountedCash      *decimal.Decimal       `json:"counted_cash,omitempty"`
	Difference       *decimal.Decimal       `json:"difference,omitempty"`
	Movements        []CashMovementResponse `json:"movements"`
	OpenedAt         string                 `json:"opened_at"`
	ClosedAt         *string                `json:"closed_at,omitempty"`
}

type SessionListResponse struct {
	Data  []CashierSessionResponse `json:"data"`
	Total int64                    `json:"total"`
	Page  int                      `json:"page"`
	Limit int                      `json:"limit"`
}
