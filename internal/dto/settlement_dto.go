package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// FinalizeTicketRequest closes out a comanda. Discount semantics depend on
// DiscountMode: "percentage" (0–100) or "fixed" (currency amount).
type FinalizeTicketRequest struct {
	TicketID      string          `json:"ticket_id"      validate:"required,uuid"`
	DiscountMode  string          `json:"discount_mode"  validate:"required,oneof=percentage fixed"`
	Discount      decimal.Decimal `json:"discount"`
	CreditApplied decimal.Decimal `json:"credit_applied" validate:"min=0"`
	AmountTendered decimal.Decimal `json:"amount_tendered" validate:"min=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=cash debit credit pix transfer credit_balance"`
	Observations  *string         `json:"observations"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CommissionEntryResponse struct {
	LineKind       string          `json:"line_kind"`
	LineName       string          `json:"line_name"`
	ProfessionalID *string         `json:"professional_id,omitempty"`
	LineTotal      decimal.Decimal `json:"line_total"`
	Rate           decimal.Decimal `json:"rate"`
	Amount         decimal.Decimal `json:"amount"`
}

type SettlementResponse struct {
	ID              string                    `json:"id"`
	TicketID        string                    `json:"ticket_id"`
	TicketNumber    int                       `json:"ticket_number"`
	OriginalTotal   decimal.Decimal           `json:"original_total"`
	DiscountMode    string                    `json:"discount_mode"`
	DiscountAmount  decimal.Decimal           `json:"discount_amount"`
	CreditApplied   decimal.Decimal           `json:"credit_applied"`
	FinalAmountDue  decimal.Decimal           `json:"final_amount_due"`
	AmountTendered  decimal.Decimal           `json:"amount_tendered"`
	Change          decimal.Decimal           `json:"change"`
	PaymentMethod   string                    `json:"payment_method"`
	TotalCommission decimal.Decimal           `json:"total_commission"`
	Commissions     []CommissionEntryResponse `json:"commissions"`
	CreatedAt       string                    `json:"created_at"`
}
