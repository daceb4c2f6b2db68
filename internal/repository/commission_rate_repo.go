package repository

import (
	"context"

	"belezapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommissionRateRepository interface {
	Create(ctx context.Context, r *model.CommissionRate) error
	// FindForService returns the best-matching rate record for the pair:
	// an exact (service, professional) record wins over the service default
	// (professional_id IS NULL). A gorm.ErrRecordNotFound result is an
	// expected condition — the resolver falls back to the default rates.
	FindForService(ctx context.Context, serviceID, professionalID uuid.UUID) (*model.CommissionRate, error)
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]model.CommissionRate, error)
	Update(ctx context.Context, r *model.CommissionRate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type commissionRateRepo struct{ db *gorm.DB }

func NewCommissionRateRepository(db *gorm.DB) CommissionRateRepository {
	return &commissionRateRepo{db: db}
}

func (r *commissionRateRepo) Create(ctx context.Context, rate *model.CommissionRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *commissionRateRepo) FindForService(ctx context.Context, serviceID, professionalID uuid.UUID) (*model.CommissionRate, error) {
	var rate model.CommissionRate
	err := r.db.WithContext(ctx).
		Where("service_id = ? AND (professional_id = ? OR professional_id IS NULL)", serviceID, professionalID).
		Order("professional_id ASC NULLS LAST").
		First(&rate).Error
	return &rate, err
}

func (r *commissionRateRepo) ListByService(ctx context.Context, serviceID uuid.UUID) ([]model.CommissionRate, error) {
	var rates []model.CommissionRate
	err := r.db.WithContext(ctx).Where("service_id = ?", serviceID).Find(&rates).Error
	return rates, err
}

func (r *commissionRateRepo) Update(ctx context.Context, rate *model.CommissionRate) error {
	return r.db.WithContext(ctx).Save(rate).Error
}

func (r *commissionRateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.CommissionRate{}, id).Error
}
