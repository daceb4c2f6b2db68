package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CommissionRate is the commission policy for one (service, professional)
// pair. ProfessionalID nil means "default rate for this service".
// When no record matches at settlement, the resolver falls back to the
// fixed default percentages — an absent record is not an error.
type CommissionRate struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ServiceID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_rate_service_professional"`
	ProfessionalID *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_rate_service_professional"`
	// StandardRate applies to lead professionals, AssistantRate to staff
	// flagged IsAssistant. Both are percentages (0–100).
	StandardRate  decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	AssistantRate decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
