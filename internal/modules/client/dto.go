package client

type CreateClientRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
	CompanyName string `json:"company_name"`
	Address     string `json:"address"`
	Notes       string `json:"notes"`
}

// UpdateClientRequest is the partial shape: nil means "leave alone",
// a pointer to "" on an optional field means "clear to null".
type UpdateClientRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	CompanyName *string `json:"company_name"`
	Address     *string `json:"address"`
	Notes       *string `json:"notes"`
}
