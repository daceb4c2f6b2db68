package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Settlement is the immutable result of finalizing one ticket: the money
// math (discount, credit, change) plus the commission breakdown.
// One settlement per ticket, enforced by the unique index on TicketID.
// DiscountMode: "percentage" | "fixed"
// PaymentMethod: "cash" | "debit" | "credit" | "pix" | "transfer" | "credit_balance"
type Settlement struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID        uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	OriginalTotal   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountMode    string          `gorm:"type:varchar(12);not null"`
	DiscountValue   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreditApplied   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	FinalAmountDue  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	AmountTendered  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Change          decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMethod   string          `gorm:"type:varchar(20);not null"`
	TotalCommission decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Observations    *string
	CreatedAt       time.Time

	Ticket  *Ticket           `gorm:"foreignKey:TicketID"`
	Entries []CommissionEntry `gorm:"foreignKey:SettlementID"`
}

// CommissionEntry attributes one line's commission to a professional.
// LineKind: "service" | "product". ProfessionalID is nil for product lines
// sold without a recorded seller.
type CommissionEntry struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SettlementID   uuid.UUID  `gorm:"type:uuid;index;not null"`
	LineKind       string     `gorm:"type:varchar(10);not null"`
	LineName       string     `gorm:"not null"`
	ProfessionalID *uuid.UUID `gorm:"type:uuid;index"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Rate           decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt      time.Time
}
