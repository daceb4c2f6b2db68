package service_test

import (
	"context"
	"testing"
	"time"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedSettlement(t *testing.T, repo *stubSettlementRepo, createdAt time.Time, method string, final, commission string, prof uuid.UUID) {
	t.Helper()
	s := &model.Settlement{
		TicketID:        uuid.New(),
		OriginalTotal:   dec(final),
		DiscountMode:    "fixed",
		DiscountValue:   dec("0"),
		DiscountAmount:  dec("0"),
		CreditApplied:   dec("0"),
		FinalAmountDue:  dec(final),
		AmountTendered:  dec(final),
		Change:          dec("0"),
		PaymentMethod:   method,
		TotalCommission: dec(commission),
		CreatedAt:       createdAt,
		Ticket:          &model.Ticket{ProfessionalID: prof},
		Entries: []model.CommissionEntry{
			{LineKind: "service", LineName: "Corte", ProfessionalID: &prof, LineTotal: dec(final), Rate: dec("10"), Amount: dec(commission)},
		},
	}
	require.NoError(t, repo.CreateTx(nil, s))
}

func TestDailyReport_Aggregation(t *testing.T) {
	repo := newStubSettlementRepo()
	svc := service.NewReportService(repo)

	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	profA := uuid.New()
	profB := uuid.New()

	seedSettlement(t, repo, day, "cash", "100.00", "10.00", profA)
	seedSettlement(t, repo, day.Add(2*time.Hour), "pix", "200.00", "20.00", profA)
	seedSettlement(t, repo, day.Add(4*time.Hour), "cash", "50.00", "5.00", profB)
	// Previous day — must not count.
	seedSettlement(t, repo, day.AddDate(0, 0, -1), "cash", "999.00", "99.00", profA)

	report, err := svc.Daily(context.Background(), dto.DailyReportFilter{Date: "2026-03-14"})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-14", report.Date)
	assert.Equal(t, 3, report.SettlementCount)
	assert.True(t, dec("350.00").Equal(report.GrossRevenue))
	assert.True(t, dec("35.00").Equal(report.TotalCommissions))
	assert.True(t, dec("150.00").Equal(report.ByPaymentMethod["cash"]))
	assert.True(t, dec("200.00").Equal(report.ByPaymentMethod["pix"]))

	require.Len(t, report.ByProfessional, 2)
	byID := map[string]dto.ProfessionalSummary{}
	for _, p := range report.ByProfessional {
		byID[p.ProfessionalID] = p
	}
	a := byID[profA.String()]
	assert.True(t, dec("300.00").Equal(a.Revenue))
	assert.True(t, dec("30.00").Equal(a.TotalCommission))
	assert.Equal(t, 2, a.Settlements)
	b := byID[profB.String()]
	assert.Equal(t, 1, b.Settlements)
}

func TestDailyReport_ProfessionalFilter(t *testing.T) {
	repo := newStubSettlementRepo()
	svc := service.NewReportService(repo)

	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	profA := uuid.New()
	profB := uuid.New()
	seedSettlement(t, repo, day, "cash", "100.00", "10.00", profA)
	seedSettlement(t, repo, day, "cash", "80.00", "8.00", profB)

	report, err := svc.Daily(context.Background(), dto.DailyReportFilter{
		Date:           "2026-03-14",
		ProfessionalID: profA.String(),
	})
	require.NoError(t, err)

	require.Len(t, report.ByProfessional, 1)
	assert.Equal(t, profA.String(), report.ByProfessional[0].ProfessionalID)
	// Day totals stay global; the filter narrows the per-professional view.
	assert.Equal(t, 2, report.SettlementCount)
}

func TestDailyReport_InvalidDate(t *testing.T) {
	svc := service.NewReportService(newStubSettlementRepo())

	_, err := svc.Daily(context.Background(), dto.DailyReportFilter{Date: "14/03/2026"})
	var ve *service.ValidationError
	assert.ErrorAs(t, err, &ve)
}

func TestDailyReport_EmptyDay(t *testing.T) {
	svc := service.NewReportService(newStubSettlementRepo())

	report, err := svc.Daily(context.Background(), dto.DailyReportFilter{Date: "2026-01-01"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.SettlementCount)
	assert.True(t, report.GrossRevenue.IsZero())
	assert.Empty(t, report.ByProfessional)
}
