package service_test

import (
	"context"
	"testing"

	"belezapos/internal/model"
	"belezapos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestResolveServiceRate_ExactPairWinsOverDefault(t *testing.T) {
	serviceID := uuid.New()
	profID := uuid.New()

	rates := &stubRateRepo{}
	_ = rates.Create(context.Background(), &model.CommissionRate{
		ServiceID:     serviceID,
		StandardRate:  dec("20"),
		AssistantRate: dec("8"),
	})
	_ = rates.Create(context.Background(), &model.CommissionRate{
		ServiceID:      serviceID,
		ProfessionalID: &profID,
		StandardRate:   dec("35"),
		AssistantRate:  dec("12"),
	})

	pros := newStubProfessionalRepo()
	_ = pros.Create(context.Background(), &model.Professional{ID: profID, Username: "joana", Active: true})

	resolver := service.NewCommissionResolver(rates, pros)

	got := resolver.ResolveServiceRate(context.Background(), serviceID, profID)
	assert.True(t, dec("35").Equal(got), "exact pair record should win, got %s", got)
}

func TestResolveServiceRate_ServiceDefault(t *testing.T) {
	serviceID := uuid.New()

	rates := &stubRateRepo{}
	_ = rates.Create(context.Background(), &model.CommissionRate{
		ServiceID:     serviceID,
		StandardRate:  dec("22.5"),
		AssistantRate: dec("9"),
	})

	pros := newStubProfessionalRepo()
	prof := &model.Professional{Username: "carlos", Active: true}
	_ = pros.Create(context.Background(), prof)

	resolver := service.NewCommissionResolver(rates, pros)

	got := resolver.ResolveServiceRate(context.Background(), serviceID, prof.ID)
	assert.True(t, dec("22.5").Equal(got))
}

func TestResolveServiceRate_AssistantGetsAssistantRate(t *testing.T) {
	serviceID := uuid.New()

	rates := &stubRateRepo{}
	_ = rates.Create(context.Background(), &model.CommissionRate{
		ServiceID:     serviceID,
		StandardRate:  dec("30"),
		AssistantRate: dec("12"),
	})

	pros := newStubProfessionalRepo()
	assistant := &model.Professional{Username: "ana", IsAssistant: true, Active: true}
	_ = pros.Create(context.Background(), assistant)

	resolver := service.NewCommissionResolver(rates, pros)

	got := resolver.ResolveServiceRate(context.Background(), serviceID, assistant.ID)
	assert.True(t, dec("12").Equal(got))
}

func TestResolveServiceRate_FallbackWhenNoRecord(t *testing.T) {
	resolver := service.NewCommissionResolver(&stubRateRepo{}, newStubProfessionalRepo())

	got := resolver.ResolveServiceRate(context.Background(), uuid.New(), uuid.New())
	assert.True(t, dec("10").Equal(got), "missing record must degrade to the 10%% fallback")
}

func TestProductRate_Flat(t *testing.T) {
	resolver := service.NewCommissionResolver(&stubRateRepo{}, newStubProfessionalRepo())
	assert.True(t, dec("15").Equal(resolver.ProductRate()))
}
