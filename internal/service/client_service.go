package service

import (
	"context"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/repository"

	"github.com/google/uuid"
)

type ClientService interface {
	Create(ctx context.Context, req dto.ClientRequest) (*dto.ClientResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error)
	List(ctx context.Context, search string) ([]dto.ClientResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.ClientRequest) (*dto.ClientResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	// AddCredit deposits a pre-payment into the client's balance. The credit
	// is consumed later at settlement; it never touches the cash drawer here.
	AddCredit(ctx context.Context, id uuid.UUID, req dto.AddCreditRequest) (*dto.ClientResponse, error)
}

type clientService struct {
	repo repository.ClientRepository
}

func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func (s *clientService) Create(ctx context.Context, req dto.ClientRequest) (*dto.ClientResponse, error) {
	client := &model.Client{
		Name:   req.Name,
		Phone:  req.Phone,
		Email:  req.Email,
		Active: true,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *clientService) Get(ctx context.Context, id uuid.UUID) (*dto.ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Cliente não encontrado"}
	}
	return clientToResponse(client), nil
}

func (s *clientService) List(ctx context.Context, search string) ([]dto.ClientResponse, error) {
	clients, err := s.repo.List(ctx, search)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ClientResponse, len(clients))
	for i := range clients {
		resp[i] = *clientToResponse(&clients[i])
	}
	return resp, nil
}

func (s *clientService) Update(ctx context.Context, id uuid.UUID, req dto.ClientRequest) (*dto.ClientResponse, error) {
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Cliente não encontrado"}
	}
	client.Name = req.Name
	client.Phone = req.Phone
	client.Email = req.Email
	if err := s.repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return clientToResponse(client), nil
}

func (s *clientService) Deactivate(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *clientService) AddCredit(ctx context.Context, id uuid.UUID, req dto.AddCreditRequest) (*dto.ClientResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, &NotFoundError{Message: "Cliente não encontrado"}
	}
	if err := s.repo.AddCredit(ctx, id, req.Amount); err != nil {
		return nil, err
	}
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return clientToResponse(client), nil
}

func clientToResponse(c *model.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		CreditBalance: c.CreditBalance,
		Active:        c.Active,
	}
}
