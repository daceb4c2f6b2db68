package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashierSession represents one drawer's operating period under a single
// responsible professional. At most one open session per responsible.
// Status: "open" | "closed"
type CashierSession struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResponsibleID uuid.UUID       `gorm:"type:uuid;not null;index"`
	InitialCash   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// CountedCash is the figure declared at close. It is informational:
	// a discrepancy against the derived balance is recorded in Difference,
	// never auto-corrected.
	CountedCash *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Difference  *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Status      string           `gorm:"type:varchar(10);not null;default:'open'"`
	OpenedAt    time.Time
	ClosedAt    *time.Time

	Responsible *Professional  `gorm:"foreignKey:ResponsibleID"`
	Movements   []CashMovement `gorm:"foreignKey:SessionID"`
}

// CashMovement is an append-only ledger entry. Amount is always positive;
// Type carries the direction. Movements are never updated or deleted.
// Type: "withdrawal" (sangria) | "supply" (suprimento)
type CashMovement struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	Type        string          `gorm:"type:varchar(15);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"not null"`
	CreatedBy   uuid.UUID       `gorm:"type:uuid;not null"`
	CreatedAt   time.Time
}
