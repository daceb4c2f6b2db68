package service

// Reason-coded errors returned by the core services. Handlers map them to
// HTTP statuses; the Code field reaches clients verbatim in the error
// envelope so front-ends can branch without parsing the message.

// ValidationError rejects malformed input before any state change.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError rejects an operation that is invalid for the entity's
// current state. No partial mutation ever occurs on a conflict.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// NotFoundError signals a missing entity.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

var (
	// Settlement
	ErrInsufficientPayment = &ValidationError{Code: "INSUFFICIENT_PAYMENT", Message: "Valor recebido é menor que o valor devido"}
	ErrInvalidDiscount     = &ValidationError{Code: "INVALID_DISCOUNT", Message: "Desconto inválido"}
	ErrMissingPayment      = &ValidationError{Code: "MISSING_PAYMENT_METHOD", Message: "Forma de pagamento obrigatória"}
	ErrAlreadyFinalized    = &ConflictError{Code: "ALREADY_FINALIZED", Message: "Comanda já finalizada"}

	// Cashier
	ErrSessionAlreadyOpen = &ConflictError{Code: "SESSION_ALREADY_OPEN", Message: "Já existe um caixa aberto para este responsável"}
	ErrSessionNotOpen     = &ConflictError{Code: "SESSION_NOT_OPEN", Message: "O caixa não está aberto"}
	ErrInvalidAmount      = &ValidationError{Code: "INVALID_AMOUNT", Message: "Valor deve ser maior que zero"}
	ErrMissingDescription = &ValidationError{Code: "INVALID_DESCRIPTION", Message: "Descrição obrigatória"}
)
