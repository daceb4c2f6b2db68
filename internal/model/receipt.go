package model

import (
	"time"

	"github.com/google/uuid"
)

// Receipt tracks the asynchronous issuance of a fiscal service note (NFS-e)
// and PDF for one settlement. The receipt worker transitions it through
// pending → issued, or leaves it pending with retry bookkeeping when the
// municipal emitter is down.
// Status: "pending" | "issued" | "failed"
type Receipt struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SettlementID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'"`
	// VerificationCode is returned by the NFS-e emitter on success.
	VerificationCode *string
	PDFPath          *string
	RetryCount       int `gorm:"not null;default:0"`
	NextRetryAt      *time.Time
	LastError        *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
