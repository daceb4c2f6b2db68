package repository

import (
	"context"

	"belezapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository serves the read/write contracts for the service and
// product catalog. Settlement only reads from it.
type CatalogRepository interface {
	CreateService(ctx context.Context, s *model.SalonService) error
	FindServiceByID(ctx context.Context, id uuid.UUID) (*model.SalonService, error)
	ListServices(ctx context.Context) ([]model.SalonService, error)
	UpdateService(ctx context.Context, s *model.SalonService) error
	DeactivateService(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, p *model.Product) error
	FindProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	UpdateProduct(ctx context.Context, p *model.Product) error
	DeactivateProduct(ctx context.Context, id uuid.UUID) error
}

type catalogRepo struct{ db *gorm.DB }

func NewCatalogRepository(db *gorm.DB) CatalogRepository { return &catalogRepo{db: db} }

func (r *catalogRepo) CreateService(ctx context.Context, s *model.SalonService) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *catalogRepo) FindServiceByID(ctx context.Context, id uuid.UUID) (*model.SalonService, error) {
	var s model.SalonService
	err := r.db.WithContext(ctx).First(&s, id).Error
	return &s, err
}

func (r *catalogRepo) ListServices(ctx context.Context) ([]model.SalonService, error) {
	var services []model.SalonService
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&services).Error
	return services, err
}

func (r *catalogRepo) UpdateService(ctx context.Context, s *model.SalonService) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *catalogRepo) DeactivateService(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.SalonService{}).Where("id = ?", id).Update("active", false).Error
}

func (r *catalogRepo) CreateProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *catalogRepo) FindProductByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *catalogRepo) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Where("active = true").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *catalogRepo) UpdateProduct(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *catalogRepo) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("active", false).Error
}
