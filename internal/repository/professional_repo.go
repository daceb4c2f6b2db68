package repository

import (
	"context"

	"belezapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProfessionalRepository interface {
	Create(ctx context.Context, p *model.Professional) error
	FindByUsername(ctx context.Context, username string) (*model.Professional, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Professional, error)
	List(ctx context.Context, includeInactive bool) ([]model.Professional, error)
	Update(ctx context.Context, p *model.Professional) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error
}

type professionalRepo struct{ db *gorm.DB }

func NewProfessionalRepository(db *gorm.DB) ProfessionalRepository { return &professionalRepo{db: db} }

func (r *professionalRepo) Create(ctx context.Context, p *model.Professional) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *professionalRepo) FindByUsername(ctx context.Context, username string) (*model.Professional, error) {
	var p model.Professional
	// Accept login by username OR email (case-insensitive email match)
	err := r.db.WithContext(ctx).
		Where("(username = ? OR LOWER(email::text) = LOWER(?)) AND active = true", username, username).
		First(&p).Error
	return &p, err
}

func (r *professionalRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	var p model.Professional
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *professionalRepo) List(ctx context.Context, includeInactive bool) ([]model.Professional, error) {
	var pros []model.Professional
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Order("name ASC").Find(&pros).Error
	return pros, err
}

func (r *professionalRepo) Update(ctx context.Context, p *model.Professional) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *professionalRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Professional{}).Where("id = ?", id).Update("active", false).Error
}

func (r *professionalRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Professional{}).Where("id = ?", id).Update("active", true).Error
}
