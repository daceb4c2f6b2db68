package service_test

import (
	"context"
	"testing"

	"belezapos/internal/dto"
	"belezapos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCatalogService() (service.CatalogService, *stubCatalogRepo, *stubRateRepo) {
	catalog := newStubCatalogRepo()
	rates := &stubRateRepo{}
	// nil Redis client: the price cache is skipped, lookups hit the repo.
	return service.NewCatalogService(catalog, rates, nil), catalog, rates
}

func TestCreateService_DefaultDuration(t *testing.T) {
	svc, _, _ := newCatalogService()

	resp, err := svc.CreateService(context.Background(), dto.SalonServiceRequest{
		Name:  "Escova Progressiva",
		Price: dec("250.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.True(t, resp.Active)
}

func TestCreateRate_UnknownService(t *testing.T) {
	svc, _, _ := newCatalogService()

	_, err := svc.CreateRate(context.Background(), dto.CommissionRateRequest{
		ServiceID:     uuid.NewString(),
		StandardRate:  dec("30"),
		AssistantRate: dec("12"),
	})
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestCreateRate_AndList(t *testing.T) {
	svc, _, _ := newCatalogService()

	created, err := svc.CreateService(context.Background(), dto.SalonServiceRequest{
		Name:  "Coloração",
		Price: dec("300.00"),
	})
	require.NoError(t, err)

	profID := uuid.NewString()
	_, err = svc.CreateRate(context.Background(), dto.CommissionRateRequest{
		ServiceID:     created.ID,
		StandardRate:  dec("25"),
		AssistantRate: dec("10"),
	})
	require.NoError(t, err)
	_, err = svc.CreateRate(context.Background(), dto.CommissionRateRequest{
		ServiceID:      created.ID,
		ProfessionalID: &profID,
		StandardRate:   dec("35"),
		AssistantRate:  dec("14"),
	})
	require.NoError(t, err)

	rates, err := svc.ListRates(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Len(t, rates, 2)
}

func TestPriceCheck(t *testing.T) {
	svc, _, _ := newCatalogService()

	created, err := svc.CreateService(context.Background(), dto.SalonServiceRequest{
		Name:            "Manicure",
		Price:           dec("60.00"),
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	resp, err := svc.PriceCheck(context.Background(), uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, "Manicure", resp.Name)
	assert.True(t, dec("60.00").Equal(resp.Price))
	assert.Equal(t, 45, resp.DurationMinutes)
}

func TestPriceCheck_InactiveService(t *testing.T) {
	svc, _, _ := newCatalogService()

	created, err := svc.CreateService(context.Background(), dto.SalonServiceRequest{
		Name:  "Pedicure",
		Price: dec("70.00"),
	})
	require.NoError(t, err)
	require.NoError(t, svc.DeactivateService(context.Background(), uuid.MustParse(created.ID)))

	_, err = svc.PriceCheck(context.Background(), uuid.MustParse(created.ID))
	var nf *service.NotFoundError
	assert.ErrorAs(t, err, &nf)
}
