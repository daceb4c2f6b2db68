package service

import (
	"context"
	"fmt"
	"time"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TicketService interface {
	Open(ctx context.Context, req dto.OpenTicketRequest) (*dto.TicketResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error)
	List(ctx context.Context, filter dto.TicketFilter) (*dto.TicketListResponse, error)
	AddServiceLine(ctx context.Context, ticketID uuid.UUID, req dto.AddServiceLineRequest) (*dto.TicketResponse, error)
	AddProductLine(ctx context.Context, ticketID uuid.UUID, req dto.AddProductLineRequest) (*dto.TicketResponse, error)
	RemoveLine(ctx context.Context, ticketID, lineID uuid.UUID) (*dto.TicketResponse, error)
}

type ticketService struct {
	repo    repository.TicketRepository
	catalog repository.CatalogRepository
	clients repository.ClientRepository
}

func NewTicketService(
	repo repository.TicketRepository,
	catalog repository.CatalogRepository,
	clients repository.ClientRepository,
) TicketService {
	return &ticketService{repo: repo, catalog: catalog, clients: clients}
}

// ── Open ──────────────────────────────────────────────────────────────────────

func (s *ticketService) Open(ctx context.Context, req dto.OpenTicketRequest) (*dto.TicketResponse, error) {
	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("client_id inválido: %w", err)
	}
	professionalID, err := uuid.Parse(req.ProfessionalID)
	if err != nil {
		return nil, fmt.Errorf("professional_id inválido: %w", err)
	}
	if _, err := s.clients.FindByID(ctx, clientID); err != nil {
		return nil, &NotFoundError{Message: "Cliente não encontrado"}
	}

	number, err := s.repo.NextTicketNumber(ctx, nil)
	if err != nil {
		return nil, err
	}

	ticket := &model.Ticket{
		Number:         number,
		ClientID:       clientID,
		ProfessionalID: professionalID,
		Status:         "open",
		GrossTotal:     decimal.Zero,
		OpenedAt:       time.Now(),
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticketToResponse(ticket), nil
}

// ── Line mutations ────────────────────────────────────────────────────────────
// Prices are snapshotted from the catalog at add time; the gross total is
// recomputed from the lines inside the same transaction as the mutation.

func (s *ticketService) AddServiceLine(ctx context.Context, ticketID uuid.UUID, req dto.AddServiceLineRequest) (*dto.TicketResponse, error) {
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("service_id inválido: %w", err)
	}

	ticket, err := s.openTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	entry, err := s.catalog.FindServiceByID(ctx, serviceID)
	if err != nil {
		return nil, &NotFoundError{Message: "Serviço não encontrado"}
	}

	line := model.TicketServiceLine{
		TicketID:  ticketID,
		ServiceID: serviceID,
		Name:      entry.Name,
		UnitPrice: entry.Price,
		Quantity:  req.Quantity,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AddServiceLineTx(tx, &line); err != nil {
			return err
		}
		ticket.ServiceLines = append(ticket.ServiceLines, line)
		ticket.GrossTotal = grossTotal(ticket)
		return s.repo.UpdateGrossTotalTx(tx, ticket)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ticketToResponse(ticket), nil
}

func (s *ticketService) AddProductLine(ctx context.Context, ticketID uuid.UUID, req dto.AddProductLineRequest) (*dto.TicketResponse, error) {
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("product_id inválido: %w", err)
	}
	var soldBy *uuid.UUID
	if req.SoldBy != nil {
		id, err := uuid.Parse(*req.SoldBy)
		if err != nil {
			return nil, fmt.Errorf("sold_by inválido: %w", err)
		}
		soldBy = &id
	}

	ticket, err := s.openTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	entry, err := s.catalog.FindProductByID(ctx, productID)
	if err != nil {
		return nil, &NotFoundError{Message: "Produto não encontrado"}
	}

	line := model.TicketProductLine{
		TicketID:  ticketID,
		ProductID: productID,
		Name:      entry.Name,
		UnitPrice: entry.Price,
		Quantity:  req.Quantity,
		SoldBy:    soldBy,
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.AddProductLineTx(tx, &line); err != nil {
			return err
		}
		ticket.ProductLines = append(ticket.ProductLines, line)
		ticket.GrossTotal = grossTotal(ticket)
		return s.repo.UpdateGrossTotalTx(tx, ticket)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ticketToResponse(ticket), nil
}

func (s *ticketService) RemoveLine(ctx context.Context, ticketID, lineID uuid.UUID) (*dto.TicketResponse, error) {
	ticket, err := s.openTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		// The line id is unique across both tables; try services first.
		affected, err := s.repo.DeleteServiceLineTx(tx, ticketID, lineID)
		if err != nil {
			return err
		}
		if affected == 0 {
			affected, err = s.repo.DeleteProductLineTx(tx, ticketID, lineID)
			if err != nil {
				return err
			}
		}
		if affected == 0 {
			return &NotFoundError{Message: "Item não encontrado na comanda"}
		}
		removeLine(ticket, lineID)
		ticket.GrossTotal = grossTotal(ticket)
		return s.repo.UpdateGrossTotalTx(tx, ticket)
	})
	if txErr != nil {
		return nil, txErr
	}
	return ticketToResponse(ticket), nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *ticketService) Get(ctx context.Context, id uuid.UUID) (*dto.TicketResponse, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Comanda não encontrada"}
	}
	return ticketToResponse(ticket), nil
}

func (s *ticketService) List(ctx context.Context, filter dto.TicketFilter) (*dto.TicketListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	tickets, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, *ticketToResponse(&tickets[i]))
	}
	return &dto.TicketListResponse{Data: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

func (s *ticketService) openTicket(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, &NotFoundError{Message: "Comanda não encontrada"}
	}
	if ticket.Status != "open" {
		return nil, ErrAlreadyFinalized
	}
	return ticket, nil
}

func grossTotal(t *model.Ticket) decimal.Decimal {
	total := decimal.Zero
	for _, l := range t.ServiceLines {
		total = total.Add(l.LineTotal())
	}
	for _, l := range t.ProductLines {
		total = total.Add(l.LineTotal())
	}
	return total
}

func removeLine(t *model.Ticket, lineID uuid.UUID) {
	for i, l := range t.ServiceLines {
		if l.ID == lineID {
			t.ServiceLines = append(t.ServiceLines[:i], t.ServiceLines[i+1:]...)
			return
		}
	}
	for i, l := range t.ProductLines {
		if l.ID == lineID {
			t.ProductLines = append(t.ProductLines[:i], t.ProductLines[i+1:]...)
			return
		}
	}
}

func ticketToResponse(t *model.Ticket) *dto.TicketResponse {
	lines := make([]dto.TicketLineResponse, 0, len(t.ServiceLines)+len(t.ProductLines))
	for _, l := range t.ServiceLines {
		lines = append(lines, dto.TicketLineResponse{
			ID:        l.ID.String(),
			Kind:      "service",
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
		})
	}
	for _, l := range t.ProductLines {
		var soldBy *string
		if l.SoldBy != nil {
			id := l.SoldBy.String()
			soldBy = &id
		}
		lines = append(lines, dto.TicketLineResponse{
			ID:        l.ID.String(),
			Kind:      "product",
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: l.LineTotal(),
			SoldBy:    soldBy,
		})
	}

	clientName := ""
	if t.Client != nil {
		clientName = t.Client.Name
	}
	return &dto.TicketResponse{
		ID:             t.ID.String(),
		Number:         t.Number,
		ClientID:       t.ClientID.String(),
		ClientName:     clientName,
		ProfessionalID: t.ProfessionalID.String(),
		Status:         t.Status,
		GrossTotal:     t.GrossTotal,
		Lines:          lines,
		OpenedAt:       t.OpenedAt.Format("2006-01-02T15:04:05Z"),
	}
}
