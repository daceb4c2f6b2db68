package service

import (
	"context"
	"fmt"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/repository"
	"belezapos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var hundred = decimal.NewFromInt(100)

// paymentMethods is the fixed enumeration accepted at settlement.
var paymentMethods = map[string]bool{
	"cash":           true,
	"debit":          true,
	"credit":         true,
	"pix":            true,
	"transfer":       true,
	"credit_balance": true,
}

type SettlementService interface {
	// Finalize closes out an open comanda: computes the final amount due,
	// change and commission breakdown, and atomically marks the ticket
	// finalized while persisting the settlement. At most once per ticket.
	Finalize(ctx context.Context, req dto.FinalizeTicketRequest) (*dto.SettlementResponse, error)
	GetByTicket(ctx context.Context, ticketID uuid.UUID) (*dto.SettlementResponse, error)
}

type settlementService struct {
	tickets     repository.TicketRepository
	settlements repository.SettlementRepository
	resolver    CommissionResolver
	dispatcher  *worker.Dispatcher
}

func NewSettlementService(
	tickets repository.TicketRepository,
	settlements repository.SettlementRepository,
	resolver CommissionResolver,
	dispatcher *worker.Dispatcher,
) SettlementService {
	return &settlementService{
		tickets:     tickets,
		settlements: settlements,
		resolver:    resolver,
		dispatcher:  dispatcher,
	}
}

// ── Finalize ──────────────────────────────────────────────────────────────────
// Money pipeline:
//   discountAmount → finalAmountDue = max(0, total − discount − credit)
//   change         = max(0, tendered − finalAmountDue)
// Out-of-range discount/credit inputs are clamped at the boundary (the
// permissive policy); negative discounts and unknown modes are rejected.

func (s *settlementService) Finalize(ctx context.Context, req dto.FinalizeTicketRequest) (*dto.SettlementResponse, error) {
	ticketID, err := uuid.Parse(req.TicketID)
	if err != nil {
		return nil, fmt.Errorf("ticket_id inválido: %w", err)
	}

	ticket, err := s.tickets.FindByID(ctx, ticketID)
	if err != nil {
		return nil, &NotFoundError{Message: "Comanda não encontrada"}
	}
	if ticket.Status != "open" {
		return nil, ErrAlreadyFinalized
	}

	if req.PaymentMethod == "" || !paymentMethods[req.PaymentMethod] {
		return nil, ErrMissingPayment
	}
	if req.Discount.IsNegative() {
		return nil, ErrInvalidDiscount
	}

	total := ticket.GrossTotal

	var discountAmount decimal.Decimal
	switch req.DiscountMode {
	case "percentage":
		pct := req.Discount
		if pct.GreaterThan(hundred) {
			pct = hundred
		}
		discountAmount = total.Mul(pct).Div(hundred).Round(2)
	case "fixed":
		discountAmount = req.Discount
		if discountAmount.GreaterThan(total) {
			discountAmount = total
		}
	default:
		return nil, ErrInvalidDiscount
	}

	credit := req.CreditApplied
	if credit.IsNegative() {
		credit = decimal.Zero
	}
	if credit.GreaterThan(total) {
		credit = total
	}

	finalDue := total.Sub(discountAmount).Sub(credit)
	if finalDue.IsNegative() {
		finalDue = decimal.Zero
	}

	tendered := req.AmountTendered
	if tendered.LessThan(finalDue) {
		return nil, ErrInsufficientPayment
	}
	change := tendered.Sub(finalDue)

	// Commission breakdown — one entry per line. The resolver never fails:
	// missing catalog data degrades to the fallback percentages.
	entries := make([]model.CommissionEntry, 0, len(ticket.ServiceLines)+len(ticket.ProductLines))
	totalCommission := decimal.Zero

	for _, line := range ticket.ServiceLines {
		rate := s.resolver.ResolveServiceRate(ctx, line.ServiceID, ticket.ProfessionalID)
		amount := line.LineTotal().Mul(rate).Div(hundred).Round(2)
		profID := ticket.ProfessionalID
		entries = append(entries, model.CommissionEntry{
			LineKind:       "service",
			LineName:       line.Name,
			ProfessionalID: &profID,
			LineTotal:      line.LineTotal(),
			Rate:           rate,
			Amount:         amount,
		})
		totalCommission = totalCommission.Add(amount)
	}

	for _, line := range ticket.ProductLines {
		rate := s.resolver.ProductRate()
		amount := line.LineTotal().Mul(rate).Div(hundred).Round(2)
		entries = append(entries, model.CommissionEntry{
			LineKind:       "product",
			LineName:       line.Name,
			ProfessionalID: line.SoldBy,
			LineTotal:      line.LineTotal(),
			Rate:           rate,
			Amount:         amount,
		})
		totalCommission = totalCommission.Add(amount)
	}

	settlement := model.Settlement{
		TicketID:        ticketID,
		OriginalTotal:   total,
		DiscountMode:    req.DiscountMode,
		DiscountValue:   req.Discount,
		DiscountAmount:  discountAmount,
		CreditApplied:   credit,
		FinalAmountDue:  finalDue,
		AmountTendered:  tendered,
		Change:          change,
		PaymentMethod:   req.PaymentMethod,
		TotalCommission: totalCommission,
		Observations:    req.Observations,
		Entries:         entries,
	}

	// Atomic transition: the guarded UPDATE defeats a concurrent finalize —
	// either the status flip and the settlement row both land, or neither.
	txErr := runTx(ctx, s.tickets.DB(), func(tx *gorm.DB) error {
		affected, err := s.tickets.MarkFinalizedTx(tx, ticketID)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrAlreadyFinalized
		}
		return s.settlements.CreateTx(tx, &settlement)
	})
	if txErr != nil {
		return nil, txErr
	}

	// Receipt issuance is async and best-effort — a queue hiccup never
	// rolls back a committed settlement.
	if s.dispatcher != nil {
		payload := worker.ReceiptJobPayload{SettlementID: settlement.ID.String()}
		if ticket.Client != nil && ticket.Client.Email != nil {
			payload.ClientEmail = ticket.Client.Email
		}
		if err := s.dispatcher.EnqueueReceipt(ctx, payload); err != nil {
			log.Warn().Err(err).Str("settlement_id", settlement.ID.String()).Msg("failed to enqueue receipt job")
		}
	}

	return settlementToResponse(&settlement, ticket.Number), nil
}

func (s *settlementService) GetByTicket(ctx context.Context, ticketID uuid.UUID) (*dto.SettlementResponse, error) {
	settlement, err := s.settlements.FindByTicketID(ctx, ticketID)
	if err != nil {
		return nil, &NotFoundError{Message: "Fechamento não encontrado"}
	}
	number := 0
	if settlement.Ticket != nil {
		number = settlement.Ticket.Number
	}
	return settlementToResponse(settlement, number), nil
}

func settlementToResponse(s *model.Settlement, ticketNumber int) *dto.SettlementResponse {
	commissions := make([]dto.CommissionEntryResponse, 0, len(s.Entries))
	for _, e := range s.Entries {
		var profID *string
		if e.ProfessionalID != nil {
			id := e.ProfessionalID.String()
			profID = &id
		}
		commissions = append(commissions, dto.CommissionEntryResponse{
			LineKind:       e.LineKind,
			LineName:       e.LineName,
			ProfessionalID: profID,
			LineTotal:      e.LineTotal,
			Rate:           e.Rate,
			Amount:         e.Amount,
		})
	}
	return &dto.SettlementResponse{
		ID:              s.ID.String(),
		TicketID:        s.TicketID.String(),
		TicketNumber:    ticketNumber,
		OriginalTotal:   s.OriginalTotal,
		DiscountMode:    s.DiscountMode,
		DiscountAmount:  s.DiscountAmount,
		CreditApplied:   s.CreditApplied,
		FinalAmountDue:  s.FinalAmountDue,
		AmountTendered:  s.AmountTendered,
		Change:          s.Change,
		PaymentMethod:   s.PaymentMethod,
		TotalCommission: s.TotalCommission,
		Commissions:     commissions,
		CreatedAt:       s.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
