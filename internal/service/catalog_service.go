package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const priceCacheTTL = 10 * time.Minute

type CatalogService interface {
	CreateService(ctx context.Context, req dto.SalonServiceRequest) (*dto.SalonServiceResponse, error)
	GetService(ctx context.Context, id uuid.UUID) (*dto.SalonServiceResponse, error)
	ListServices(ctx context.Context) ([]dto.SalonServiceResponse, error)
	UpdateService(ctx context.Context, id uuid.UUID, req dto.SalonServiceRequest) (*dto.SalonServiceResponse, error)
	DeactivateService(ctx context.Context, id uuid.UUID) error

	CreateProduct(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error)
	ListProducts(ctx context.Context) ([]dto.ProductResponse, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error)
	DeactivateProduct(ctx context.Context, id uuid.UUID) error

	CreateRate(ctx context.Context, req dto.CommissionRateRequest) (*dto.CommissionRateResponse, error)
	ListRates(ctx context.Context, serviceID uuid.UUID) ([]dto.CommissionRateResponse, error)
	DeleteRate(ctx context.Context, id uuid.UUID) error

	// PriceCheck backs the public price lookup. Read-only, served from a
	// Redis cache when warm.
	PriceCheck(ctx context.Context, serviceID uuid.UUID) (*dto.ServicePriceResponse, error)
}

type catalogService struct {
	repo  repository.CatalogRepository
	rates repository.CommissionRateRepository
	rdb   *redis.Client
}

func NewCatalogService(repo repository.CatalogRepository, rates repository.CommissionRateRepository, rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, rates: rates, rdb: rdb}
}

// ── Services ──────────────────────────────────────────────────────────────────

func (s *catalogService) CreateService(ctx context.Context, req dto.SalonServiceRequest) (*dto.SalonServiceResponse, error) {
	entry := &model.SalonService{
		Name:            req.Name,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}
	if entry.DurationMinutes == 0 {
		entry.DurationMinutes = 30
	}
	if err := s.repo.CreateService(ctx, entry); err != nil {
		return nil, err
	}
	return salonServiceToResponse(entry), nil
}

func (s *catalogService) GetService(ctx context.Context, id uuid.UUID) (*dto.SalonServiceResponse, error) {
	entry, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Serviço não encontrado"}
	}
	return salonServiceToResponse(entry), nil
}

func (s *catalogService) ListServices(ctx context.Context) ([]dto.SalonServiceResponse, error) {
	services, err := s.repo.ListServices(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SalonServiceResponse, len(services))
	for i := range services {
		resp[i] = *salonServiceToResponse(&services[i])
	}
	return resp, nil
}

func (s *catalogService) UpdateService(ctx context.Context, id uuid.UUID, req dto.SalonServiceRequest) (*dto.SalonServiceResponse, error) {
	entry, err := s.repo.FindServiceByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Serviço não encontrado"}
	}
	entry.Name = req.Name
	entry.Price = req.Price
	if req.DurationMinutes > 0 {
		entry.DurationMinutes = req.DurationMinutes
	}
	if err := s.repo.UpdateService(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidatePrice(ctx, id)
	return salonServiceToResponse(entry), nil
}

func (s *catalogService) DeactivateService(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeactivateService(ctx, id); err != nil {
		return err
	}
	s.invalidatePrice(ctx, id)
	return nil
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *catalogService) CreateProduct(ctx context.Context, req dto.ProductRequest) (*dto.ProductResponse, error) {
	entry := &model.Product{Name: req.Name, Price: req.Price, Active: true}
	if err := s.repo.CreateProduct(ctx, entry); err != nil {
		return nil, err
	}
	return productToResponse(entry), nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductResponse, len(products))
	for i := range products {
		resp[i] = *productToResponse(&products[i])
	}
	return resp, nil
}

func (s *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, req dto.ProductRequest) (*dto.ProductResponse, error) {
	entry, err := s.repo.FindProductByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Produto não encontrado"}
	}
	entry.Name = req.Name
	entry.Price = req.Price
	if err := s.repo.UpdateProduct(ctx, entry); err != nil {
		return nil, err
	}
	return productToResponse(entry), nil
}

func (s *catalogService) DeactivateProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeactivateProduct(ctx, id)
}

// ── Commission rates ──────────────────────────────────────────────────────────

func (s *catalogService) CreateRate(ctx context.Context, req dto.CommissionRateRequest) (*dto.CommissionRateResponse, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("service_id inválido: %w", err)
	}
	var professionalID *uuid.UUID
	if req.ProfessionalID != nil {
		id, err := uuid.Parse(*req.ProfessionalID)
		if err != nil {
			return nil, fmt.Errorf("professional_id inválido: %w", err)
		}
		professionalID = &id
	}
	if _, err := s.repo.FindServiceByID(ctx, serviceID); err != nil {
		return nil, &NotFoundError{Message: "Serviço não encontrado"}
	}

	rate := &model.CommissionRate{
		ServiceID:      serviceID,
		ProfessionalID: professionalID,
		StandardRate:   req.StandardRate,
		AssistantRate:  req.AssistantRate,
	}
	if err := s.rates.Create(ctx, rate); err != nil {
		return nil, err
	}
	return rateToResponse(rate), nil
}

func (s *catalogService) ListRates(ctx context.Context, serviceID uuid.UUID) ([]dto.CommissionRateResponse, error) {
	rates, err := s.rates.ListByService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CommissionRateResponse, len(rates))
	for i := range rates {
		resp[i] = *rateToResponse(&rates[i])
	}
	return resp, nil
}

func (s *catalogService) DeleteRate(ctx context.Context, id uuid.UUID) error {
	return s.rates.Delete(ctx, id)
}

// ── Price check ───────────────────────────────────────────────────────────────

func (s *catalogService) PriceCheck(ctx context.Context, serviceID uuid.UUID) (*dto.ServicePriceResponse, error) {
	key := priceKey(serviceID)
	if s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
			var cached dto.ServicePriceResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return &cached, nil
			}
		}
	}

	entry, err := s.repo.FindServiceByID(ctx, serviceID)
	if err != nil || !entry.Active {
		return nil, &NotFoundError{Message: "Serviço não encontrado"}
	}
	resp := &dto.ServicePriceResponse{
		Name:            entry.Name,
		Price:           entry.Price,
		DurationMinutes: entry.DurationMinutes,
	}
	if s.rdb != nil {
		if raw, err := json.Marshal(resp); err == nil {
			// Cache write failure is not an error for the caller.
			_ = s.rdb.Set(ctx, key, raw, priceCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *catalogService) invalidatePrice(ctx context.Context, serviceID uuid.UUID) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, priceKey(serviceID)).Err()
	}
}

func priceKey(serviceID uuid.UUID) string {
	return "price:service:" + serviceID.String()
}

// ── Mappers ───────────────────────────────────────────────────────────────────

func salonServiceToResponse(m *model.SalonService) *dto.SalonServiceResponse {
	return &dto.SalonServiceResponse{
		ID:              m.ID.String(),
		Name:            m.Name,
		Price:           m.Price,
		DurationMinutes: m.DurationMinutes,
		Active:          m.Active,
	}
}

func productToResponse(m *model.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:     m.ID.String(),
		Name:   m.Name,
		Price:  m.Price,
		Active: m.Active,
	}
}

func rateToResponse(m *model.CommissionRate) *dto.CommissionRateResponse {
	var professionalID *string
	if m.ProfessionalID != nil {
		id := m.ProfessionalID.String()
		professionalID = &id
	}
	return &dto.CommissionRateResponse{
		ID:             m.ID.String(),
		ServiceID:      m.ServiceID.String(),
		ProfessionalID: professionalID,
		StandardRate:   m.StandardRate,
		AssistantRate:  m.AssistantRate,
	}
}
