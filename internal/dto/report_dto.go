package dto

import "github.com/shopspring/decimal"

// DailyReportFilter is bound from the query string of GET /v1/reports/daily.
type DailyReportFilter struct {
	Date           string `form:"date"` // YYYY-MM-DD; empty = today
	ProfessionalID string `form:"professional_id" validate:"omitempty,uuid"`
}

// ProfessionalSummary aggregates one professional's production for the day.
type ProfessionalSummary struct {
	ProfessionalID  string          `json:"professional_id"`
	Revenue         decimal.Decimal `json:"revenue"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	Settlements     int             `json:"settlements"`
}

// DailyReportResponse joins settlements by date — revenue never lives on the
// cashier ledger; it is derived here from finalized tickets.
type DailyReportResponse struct {
	Date             string                     `json:"date"`
	SettlementCount  int                        `json:"settlement_count"`
	GrossRevenue     decimal.Decimal            `json:"gross_revenue"`
	TotalDiscounts   decimal.Decimal            `json:"total_discounts"`
	TotalCommissions decimal.Decimal            `json:"total_commissions"`
	ByPaymentMethod  map[string]decimal.Decimal `json:"by_payment_method"`
	ByProfessional   []ProfessionalSummary      `json:"by_professional"`
}
