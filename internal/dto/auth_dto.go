package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type CreateProfessionalRequest struct {
	Username    string  `json:"username"     validate:"required,min=1,max=150"`
	Name        string  `json:"name"         validate:"required,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Password    string  `json:"password"     validate:"required,min=8"`
	Role        string  `json:"role"         validate:"required,oneof=attendant manager admin"`
	IsAssistant bool    `json:"is_assistant"`
}

type UpdateProfessionalRequest struct {
	Name        string  `json:"name"         validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email"        validate:"omitempty,email"`
	Role        string  `json:"role"         validate:"omitempty,oneof=attendant manager admin"`
	IsAssistant *bool   `json:"is_assistant"`
	Password    string  `json:"password"     validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProfessionalResponse struct {
	ID          string  `json:"id"`
	Username    string  `json:"username"`
	Name        string  `json:"name"`
	Email       *string `json:"email"`
	Role        string  `json:"role"`
	IsAssistant bool    `json:"is_assistant"`
	Active      bool    `json:"active"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	TokenType    string               `json:"token_type"`
	ExpiresIn    int                  `json:"expires_in"` // seconds
	User         ProfessionalResponse `json:"user"`
}
