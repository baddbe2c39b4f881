package dto

import "github.com/noah-isme/jys-academy-api/internal/models"

// LoginRequest carries the credentials posted to /login/.
type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=150"`
	Password string `json:"password" form:"password" validate:"required,max=128"`
}

// LoginResponse tells the client where to go next.
type LoginResponse struct {
	Account  AccountResponse `json:"account"`
	Role     string          `json:"role"`
	Redirect string          `json:"redirect"`
}

// AccountResponse exposes the public fields of an account.
type AccountResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

// NewAccountResponse converts an account model.
func NewAccountResponse(account models.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Email:     account.Email,
		IsAdmin:   account.IsAdmin,
	}
}

// CreateAdminRequest is used by the operator CLI to bootstrap an administrator.
type CreateAdminRequest struct {
	Username string `json:"username" validate:"required,max=150"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Password string `json:"-" validate:"required,min=8,max=128"`
}
