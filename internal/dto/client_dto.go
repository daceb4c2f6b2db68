package dto

import "github.com/shopspring/decimal"

type ClientRequest struct {
	Name  string  `json:"name"  validate:"required,min=2,max=150"`
	Phone *string `json:"phone" validate:"omitempty,min=8,max=20"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// AddCreditRequest deposits a pre-payment ("sinal") into the client's
// credit balance, later applied against a ticket at settlement.
type AddCreditRequest struct {
	Amount      decimal.Decimal `json:"amount"      validate:"required,gt=0"`
	Description string          `json:"description" validate:"omitempty,max=255"`
}

type ClientResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Phone         *string         `json:"phone"`
	Email         *string         `json:"email"`
	CreditBalance decimal.Decimal `json:"credit_balance"`
	Active        bool            `json:"active"`
}
