package service

import (
	"context"
	"sort"
	"time"

	"belezapos/internal/dto"
	"belezapos/internal/repository"

	"github.com/shopspring/decimal"
)

type ReportService interface {
	Daily(ctx context.Context, filter dto.DailyReportFilter) (*dto.DailyReportResponse, error)
}

type reportService struct {
	settlements repository.SettlementRepository
}

func NewReportService(settlements repository.SettlementRepository) ReportService {
	return &reportService{settlements: settlements}
}

// Daily aggregates the settlements of one calendar day. Revenue is derived
// here from the settlement records; the cashier ledger is never consulted.
func (s *reportService) Daily(ctx context.Context, filter dto.DailyReportFilter) (*dto.DailyReportResponse, error) {
	day := time.Now()
	if filter.Date != "" {
		parsed, err := time.Parse("2006-01-02", filter.Date)
		if err != nil {
			return nil, &ValidationError{Message: "Data inválida, use o formato YYYY-MM-DD"}
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	to := from.AddDate(0, 0, 1)

	settlements, err := s.settlements.ListByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	report := &dto.DailyReportResponse{
		Date:             from.Format("2006-01-02"),
		GrossRevenue:     decimal.Zero,
		TotalDiscounts:   decimal.Zero,
		TotalCommissions: decimal.Zero,
		ByPaymentMethod:  map[string]decimal.Decimal{},
		ByProfessional:   []dto.ProfessionalSummary{},
	}

	perProfessional := map[string]*dto.ProfessionalSummary{}
	for i := range settlements {
		st := &settlements[i]
		report.SettlementCount++
		report.GrossRevenue = report.GrossRevenue.Add(st.OriginalTotal)
		report.TotalDiscounts = report.TotalDiscounts.Add(st.DiscountAmount)
		report.TotalCommissions = report.TotalCommissions.Add(st.TotalCommission)
		report.ByPaymentMethod[st.PaymentMethod] = report.ByPaymentMethod[st.PaymentMethod].Add(st.FinalAmountDue)

		for _, e := range st.Entries {
			if e.ProfessionalID == nil {
				continue
			}
			id := e.ProfessionalID.String()
			if filter.ProfessionalID != "" && filter.ProfessionalID != id {
				continue
			}
			summary, ok := perProfessional[id]
			if !ok {
				summary = &dto.ProfessionalSummary{
					ProfessionalID:  id,
					Revenue:         decimal.Zero,
					TotalCommission: decimal.Zero,
				}
				perProfessional[id] = summary
			}
			summary.Revenue = summary.Revenue.Add(e.LineTotal)
			summary.TotalCommission = summary.TotalCommission.Add(e.Amount)
		}

		// Settlements counts the tickets a professional attended, not lines.
		if st.Ticket != nil {
			if summary, ok := perProfessional[st.Ticket.ProfessionalID.String()]; ok {
				summary.Settlements++
			}
		}
	}

	ids := make([]string, 0, len(perProfessional))
	for id := range perProfessional {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		report.ByProfessional = append(report.ByProfessional, *perProfessional[id])
	}
	return report, nil
}
