package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"belezapos/internal/dto"
	"belezapos/internal/model"
	"belezapos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CashierService interface {
	// Open starts a drawer session. One open session per responsible.
	Open(ctx context.Context, responsibleID uuid.UUID, req dto.OpenSessionRequest) (*dto.CashierSessionResponse, error)
	// AppendMovement records a sangria (withdrawal) or suprimento (supply).
	AppendMovement(ctx context.Context, createdBy uuid.UUID, req dto.CashMovementRequest) (*dto.CashierSessionResponse, error)
	// Close is terminal — no movements are accepted afterward.
	Close(ctx context.Context, req dto.CloseSessionRequest) (*dto.CashierSessionResponse, error)
	Active(ctx context.Context, responsibleID uuid.UUID) (*dto.CashierSessionResponse, error)
	Report(ctx context.Context, sessionID uuid.UUID) (*dto.CashierSessionResponse, error)
	History(ctx context.Context, page, limit int) (*dto.SessionListResponse, error)
}

type cashierService struct {
	repo repository.CashierRepository
}

func NewCashierService(repo repository.CashierRepository) CashierService {
	return &cashierService{repo: repo}
}

// ── Open ──────────────────────────────────────────────────────────────────────

func (s *cashierService) Open(ctx context.Context, responsibleID uuid.UUID, req dto.OpenSessionRequest) (*dto.CashierSessionResponse, error) {
	if req.InitialCash.IsNegative() {
		return nil, ErrInvalidAmount
	}

	// Uniqueness guard: one open drawer per responsible.
	if existing, err := s.repo.FindOpenByResponsible(ctx, responsibleID); err == nil && existing != nil {
		return nil, ErrSessionAlreadyOpen
	}

	session := &model.CashierSession{
		ResponsibleID: responsibleID,
		InitialCash:   req.InitialCash,
		Status:        "open",
		OpenedAt:      time.Now(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	return sessionToResponse(session), nil
}

// ── AppendMovement ────────────────────────────────────────────────────────────
// The session row is locked for the duration of the append, so two
// concurrent movements against the same drawer serialize. A rejected
// append leaves the movement list untouched.

func (s *cashierService) AppendMovement(ctx context.Context, createdBy uuid.UUID, req dto.CashMovementRequest) (*dto.CashierSessionResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session_id inválido: %w", err)
	}
	if !req.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, ErrMissingDescription
	}

	var session *model.CashierSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.repo.FindSessionForUpdateTx(tx, sessionID)
		if err != nil {
			return &NotFoundError{Message: "Sessão de caixa não encontrada"}
		}
		if locked.Status != "open" {
			return ErrSessionNotOpen
		}

		mov := &model.CashMovement{
			SessionID:   sessionID,
			Type:        req.Type,
			Amount:      req.Amount,
			Description: req.Description,
			CreatedBy:   createdBy,
		}
		if err := s.repo.CreateMovementTx(tx, mov); err != nil {
			return err
		}
		locked.Movements = append(locked.Movements, *mov)
		session = locked
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return sessionToResponse(session), nil
}

// ── Close ─────────────────────────────────────────────────────────────────────
// CountedCash stays as declared; the difference against the derived
// balance is informational and never auto-corrected.

func (s *cashierService) Close(ctx context.Context, req dto.CloseSessionRequest) (*dto.CashierSessionResponse, error) {
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("session_id inválido: %w", err)
	}

	var session *model.CashierSession
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		locked, err := s.repo.FindSessionForUpdateTx(tx, sessionID)
		if err != nil {
			return &NotFoundError{Message: "Sessão de caixa não encontrada"}
		}
		if locked.Status != "open" {
			return ErrSessionNotOpen
		}

		now := time.Now()
		locked.Status = "closed"
		locked.ClosedAt = &now
		if req.CountedCash != nil {
			counted := *req.CountedCash
			diff := counted.Sub(deriveBalance(locked))
			locked.CountedCash = &counted
			locked.Difference = &diff
		}
		if err := s.repo.UpdateSessionTx(tx, locked); err != nil {
			return err
		}
		session = locked
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return sessionToResponse(session), nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *cashierService) Active(ctx context.Context, responsibleID uuid.UUID) (*dto.CashierSessionResponse, error) {
	session, err := s.repo.FindOpenByResponsible(ctx, responsibleID)
	if err != nil || session == nil {
		return nil, nil
	}
	full, err := s.repo.FindSessionByID(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	return sessionToResponse(full), nil
}

func (s *cashierService) Report(ctx context.Context, sessionID uuid.UUID) (*dto.CashierSessionResponse, error) {
	session, err := s.repo.FindSessionByID(ctx, sessionID)
	if err != nil {
		return nil, &NotFoundError{Message: "Sessão de caixa não encontrada"}
	}
	return sessionToResponse(session), nil
}

func (s *cashierService) History(ctx context.Context, page, limit int) (*dto.SessionListResponse, error) {
	sessions, total, err := s.repo.ListSessions(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CashierSessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, *sessionToResponse(&sessions[i]))
	}
	return &dto.SessionListResponse{Data: items, Total: total, Page: page, Limit: limit}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// deriveBalance recomputes the drawer balance from scratch:
// initial + Σsupply − Σwithdrawal. Never stored — always derived.
// The balance may legitimately go negative (manual correction workflows).
func deriveBalance(s *model.CashierSession) decimal.Decimal {
	balance := s.InitialCash
	for _, m := range s.Movements {
		switch m.Type {
		case "supply":
			balance = balance.Add(m.Amount)
		case "withdrawal":
			balance = balance.Sub(m.Amount)
		}
	}
	return balance
}

func sessionToResponse(s *model.CashierSession) *dto.CashierSessionResponse {
	supplies, withdrawals := decimal.Zero, decimal.Zero
	movs := make([]dto.CashMovementResponse, 0, len(s.Movements))
	for _, m := range s.Movements {
		switch m.Type {
		case "supply":
			supplies = supplies.Add(m.Amount)
		case "withdrawal":
			withdrawals = withdrawals.Add(m.Amount)
		}
		movs = append(movs, dto.CashMovementResponse{
			ID:          m.ID.String(),
			Type:        m.Type,
			Amount:      m.Amount,
			Description: m.Description,
			CreatedBy:   m.CreatedBy.String(),
			CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}

	resp := &dto.CashierSessionResponse{
		ID:               s.ID.String(),
		ResponsibleID:    s.ResponsibleID.String(),
		Status:           s.Status,
		InitialCash:      s.InitialCash,
		CurrentCash:      s.InitialCash.Add(supplies).Sub(withdrawals),
		TotalSupplies:    supplies,
		TotalWithdrawals: withdrawals,
		CountedCash:      s.CountedCash,
		Difference:       s.Difference,
		Movements:        movs,
		OpenedAt:         s.OpenedAt.Format("2006-01-02T15:04:05Z"),
	}
	if s.ClosedAt != nil {
		t := s.ClosedAt.Format("2006-01-02T15:04:05Z")
		resp.ClosedAt = &t
	}
	return resp
}
