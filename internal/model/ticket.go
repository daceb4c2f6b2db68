package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ticket is a "comanda": the running record of services and retail products
// for one client visit. Lines are mutable while Status is "open";
// settlement moves it to "finalized" exactly once.
// Status: "open" | "finalized"
type Ticket struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Number int       `gorm:"uniqueIndex;not null"`
	// ProfessionalID is the primary professional who attends the client;
	// service-line commissions are attributed to them.
	ClientID       uuid.UUID `gorm:"type:uuid;not null;index"`
	ProfessionalID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status         string    `gorm:"type:varchar(20);not null;default:'open'"`
	// GrossTotal is derived from the lines and recomputed on every line change.
	GrossTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	OpenedAt   time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Client       *Client             `gorm:"foreignKey:ClientID"`
	Professional *Professional       `gorm:"foreignKey:ProfessionalID"`
	ServiceLines []TicketServiceLine `gorm:"foreignKey:TicketID"`
	ProductLines []TicketProductLine `gorm:"foreignKey:TicketID"`
}

// TicketServiceLine snapshots the service name and price at the moment it
// was added, so later catalog edits never change an open comanda.
type TicketServiceLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ServiceID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null;default:1"`
	CreatedAt time.Time
}

func (l TicketServiceLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// TicketProductLine is a retail sale attached to the comanda. SoldBy records
// the professional who sold the product; nil means the sale is unattributed.
type TicketProductLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TicketID  uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Name      string          `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Quantity  int             `gorm:"not null;default:1"`
	SoldBy    *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (l TicketProductLine) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
