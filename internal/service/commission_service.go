package service

import (
	"context"

	"belezapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default percentages applied when no catalog record matches.
// These are policy fallbacks, not error signals: a salon with an
// incomplete commission table still settles every comanda.
var (
	fallbackServiceRate = decimal.NewFromInt(10)
	flatProductRate     = decimal.NewFromInt(15)
)

// CommissionResolver resolves the commission percentage for one line item.
// It never returns an error: every lookup failure degrades to the fixed
// fallback so settlement always completes.
type CommissionResolver interface {
	// ResolveServiceRate picks the assistant or standard percentage from
	// the best-matching CommissionRate record, or falls back to 10%.
	ResolveServiceRate(ctx context.Context, serviceID, professionalID uuid.UUID) decimal.Decimal
	// ProductRate is a flat 15% regardless of catalog state.
	ProductRate() decimal.Decimal
}

type commissionResolver struct {
	rates         repository.CommissionRateRepository
	professionals repository.ProfessionalRepository
}

func NewCommissionResolver(
	rates repository.CommissionRateRepository,
	professionals repository.ProfessionalRepository,
) CommissionResolver {
	return &commissionResolver{rates: rates, professionals: professionals}
}

func (r *commissionResolver) ResolveServiceRate(ctx context.Context, serviceID, professionalID uuid.UUID) decimal.Decimal {
	rate, err := r.rates.FindForService(ctx, serviceID, professionalID)
	if err != nil || rate == nil {
		return fallbackServiceRate
	}

	// Missing professional record reads as "not an assistant".
	isAssistant := false
	if prof, err := r.professionals.FindByID(ctx, professionalID); err == nil && prof != nil {
		isAssistant = prof.IsAssistant
	}

	if isAssistant {
		return rate.AssistantRate
	}
	return rate.StandardRate
}

func (r *commissionResolver) ProductRate() decimal.Decimal {
	return flatProductRate
}
