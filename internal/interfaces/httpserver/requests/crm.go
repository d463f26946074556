package requests

// CreateClientRequest registers a new client account.
type CreateClientRequest struct {
	Name    string  `json:"name" binding:"required" example:"Acme Corporation"`
	Email   string  `json:"email" binding:"required,email" example:"billing@acme.example"`
	Phone   string  `json:"phone" example:"+1-555-0100"`
	Company string  `json:"company" example:"Acme Corporation"`
	Balance float64 `json:"balance" example:"1200.50"`
}

// UpdateClientRequest is a partial update; omitted fields are untouched.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Status  *string `json:"status,omitempty" binding:"omitempty,oneof=active inactive archived"`
}

// UpdateBalanceRequest applies a signed amount to the client balance.
// Negative amounts charge the account.
type UpdateBalanceRequest struct {
	Amount *float64 `json:"amount" binding:"required" example:"-150.50"`
}
