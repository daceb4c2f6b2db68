package repository

import (
	"context"

	"belezapos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashierRepository interface {
	CreateSession(ctx context.Context, s *model.CashierSession) error
	FindOpenByResponsible(ctx context.Context, responsibleID uuid.UUID) (*model.CashierSession, error)
	FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashierSession, error)
	ListSessions(ctx context.Context, page, limit int) ([]model.CashierSession, int64, error)

	// FindSessionForUpdateTx takes a row lock on the session so concurrent
	// appends/closes against the same drawer serialize. Movements are
	// loaded alongside for balance derivation.
	FindSessionForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.CashierSession, error)
	CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error
	UpdateSessionTx(tx *gorm.DB, s *model.CashierSession) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type cashierRepo struct{ db *gorm.DB }

func NewCashierRepository(db *gorm.DB) CashierRepository { return &cashierRepo{db: db} }

func (r *cashierRepo) CreateSession(ctx context.Context, s *model.CashierSession) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *cashierRepo) FindOpenByResponsible(ctx context.Context, responsibleID uuid.UUID) (*model.CashierSession, error) {
	var s model.CashierSession
	err := r.db.WithContext(ctx).
		Where("responsible_id = ? AND status = 'open'", responsibleID).
		First(&s).Error
	return &s, err
}

func (r *cashierRepo) FindSessionByID(ctx context.Context, id uuid.UUID) (*model.CashierSession, error) {
	var s model.CashierSession
	err := r.db.WithContext(ctx).
		Preload("Movements", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&s, id).Error
	return &s, err
}

func (r *cashierRepo) ListSessions(ctx context.Context, page, limit int) ([]model.CashierSession, int64, error) {
	var sessions []model.CashierSession
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CashierSession{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := q.Preload("Movements").
		Order("opened_at DESC").
		Limit(limit).Offset(offset).
		Find(&sessions).Error
	return sessions, total, err
}

func (r *cashierRepo) FindSessionForUpdateTx(tx *gorm.DB, id uuid.UUID) (*model.CashierSession, error) {
	var s model.CashierSession
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error; err != nil {
		return nil, err
	}
	// Movements loaded after the lock is held — the append is strictly ordered.
	if err := tx.Where("session_id = ?", id).Order("created_at ASC").Find(&s.Movements).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *cashierRepo) CreateMovementTx(tx *gorm.DB, m *model.CashMovement) error {
	return tx.Create(m).Error
}

func (r *cashierRepo) UpdateSessionTx(tx *gorm.DB, s *model.CashierSession) error {
	return tx.Save(s).Error
}

func (r *cashierRepo) DB() *gorm.DB { return r.db }
