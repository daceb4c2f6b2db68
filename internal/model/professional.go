package model

import (
	"time"

	"github.com/google/uuid"
)

// Professional is a staff member and doubles as the auth principal.
// Role: "attendant" | "manager" | "admin"
type Professional struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	Email        *string
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"type:varchar(20);not null"`
	// IsAssistant selects the assistant commission percentage on service lines.
	IsAssistant bool `gorm:"not null;default:false"`
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
