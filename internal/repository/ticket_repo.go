package repository

import (
	"context"

	"belezapos/internal/dto"
	"belezapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TicketRepository interface {
	Create(ctx context.Context, t *model.Ticket) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	List(ctx context.Context, filter dto.TicketFilter) ([]model.Ticket, int64, error)
	NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error)

	// Line mutations + gross total recompute, all inside the caller's tx.
	AddServiceLineTx(tx *gorm.DB, line *model.TicketServiceLine) error
	AddProductLineTx(tx *gorm.DB, line *model.TicketProductLine) error
	DeleteServiceLineTx(tx *gorm.DB, ticketID, lineID uuid.UUID) (int64, error)
	DeleteProductLineTx(tx *gorm.DB, ticketID, lineID uuid.UUID) (int64, error)
	UpdateGrossTotalTx(tx *gorm.DB, t *model.Ticket) error

	// MarkFinalizedTx flips status open→finalized with a guarded UPDATE.
	// Returns the number of rows affected: 0 means the ticket was already
	// finalized (possibly by a concurrent request).
	MarkFinalizedTx(tx *gorm.DB, id uuid.UUID) (int64, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type ticketRepo struct{ db *gorm.DB }

func NewTicketRepository(db *gorm.DB) TicketRepository { return &ticketRepo{db: db} }

func (r *ticketRepo) Create(ctx context.Context, t *model.Ticket) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *ticketRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	var t model.Ticket
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("ServiceLines").
		Preload("ProductLines").
		First(&t, id).Error
	return &t, err
}

func (r *ticketRepo) List(ctx context.Context, filter dto.TicketFilter) ([]model.Ticket, int64, error) {
	var tickets []model.Ticket
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Ticket{})
	if filter.Status != "" && filter.Status != "all" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != "" {
		q = q.Where("DATE(opened_at) = ?", filter.Date)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Client").
		Preload("ServiceLines").
		Preload("ProductLines").
		Order("number DESC").
		Limit(filter.Limit).Offset(offset).
		Find(&tickets).Error
	return tickets, total, err
}

// NextTicketNumber pulls the next value from a dedicated Postgres sequence —
// gapless enough for a salon, safe under concurrency.
func (r *ticketRepo) NextTicketNumber(ctx context.Context, tx *gorm.DB) (int, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var n int
	err := db.WithContext(ctx).Raw(`SELECT nextval('ticket_number_seq')`).Scan(&n).Error
	return n, err
}

func (r *ticketRepo) AddServiceLineTx(tx *gorm.DB, line *model.TicketServiceLine) error {
	return tx.Create(line).Error
}

func (r *ticketRepo) AddProductLineTx(tx *gorm.DB, line *model.TicketProductLine) error {
	return tx.Create(line).Error
}

func (r *ticketRepo) DeleteServiceLineTx(tx *gorm.DB, ticketID, lineID uuid.UUID) (int64, error) {
	res := tx.Where("id = ? AND ticket_id = ?", lineID, ticketID).Delete(&model.TicketServiceLine{})
	return res.RowsAffected, res.Error
}

func (r *ticketRepo) DeleteProductLineTx(tx *gorm.DB, ticketID, lineID uuid.UUID) (int64, error) {
	res := tx.Where("id = ? AND ticket_id = ?", lineID, ticketID).Delete(&model.TicketProductLine{})
	return res.RowsAffected, res.Error
}

func (r *ticketRepo) UpdateGrossTotalTx(tx *gorm.DB, t *model.Ticket) error {
	return tx.Model(&model.Ticket{}).Where("id = ?", t.ID).Update("gross_total", t.GrossTotal).Error
}

func (r *ticketRepo) MarkFinalizedTx(tx *gorm.DB, id uuid.UUID) (int64, error) {
	res := tx.Model(&model.Ticket{}).
		Where("id = ? AND status = 'open'", id).
		Update("status", "finalized")
	return res.RowsAffected, res.Error
}

func (r *ticketRepo) DB() *gorm.DB { return r.db }
