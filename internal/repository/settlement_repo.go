package repository

import (
	"context"
	"time"

	"belezapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SettlementRepository interface {
	// CreateTx persists the settlement and its commission entries inside
	// the finalization transaction.
	CreateTx(tx *gorm.DB, s *model.Settlement) error
	FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Settlement, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Settlement, error)
	// ListByDateRange feeds the daily reports — settlements joined by date,
	// never stored on the cashier ledger.
	ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Settlement, error)
}

type settlementRepo struct{ db *gorm.DB }

func NewSettlementRepository(db *gorm.DB) SettlementRepository { return &settlementRepo{db: db} }

func (r *settlementRepo) CreateTx(tx *gorm.DB, s *model.Settlement) error {
	return tx.Create(s).Error
}

func (r *settlementRepo) FindByTicketID(ctx context.Context, ticketID uuid.UUID) (*model.Settlement, error) {
	var s model.Settlement
	err := r.db.WithContext(ctx).
		Preload("Entries").
		Preload("Ticket").
		Where("ticket_id = ?", ticketID).
		First(&s).Error
	return &s, err
}

func (r *settlementRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Settlement, error) {
	var s model.Settlement
	err := r.db.WithContext(ctx).
		Preload("Entries").
		Preload("Ticket").
		Preload("Ticket.Client").
		First(&s, id).Error
	return &s, err
}

func (r *settlementRepo) ListByDateRange(ctx context.Context, from, to time.Time) ([]model.Settlement, error) {
	var settlements []model.Settlement
	err := r.db.WithContext(ctx).
		Preload("Entries").
		Preload("Ticket").
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Find(&settlements).Error
	return settlements, err
}
