package project

type CreateProjectRequest struct {
	ProjectName  string  `json:"project_name" validate:"required"`
	ClientID     int64   `json:"client_id" validate:"required"`
	Description  string  `json:"description"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Status       string  `json:"status" validate:"omitempty,oneof=draft active on_hold completed cancelled"`
	Priority     string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	TotalBudget  float64 `json:"total_budget" validate:"omitempty,gte=0"`
	AmountPaid   float64 `json:"amount_paid" validate:"omitempty,gte=0"`
	PaymentTerms string  `json:"payment_terms"`
}

type UpdateProjectRequest struct {
	ProjectName  *string  `json:"project_name"`
	ClientID     *int64   `json:"client_id"`
	Description  *string  `json:"description"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Status       *string  `json:"status" validate:"omitempty,oneof=draft active on_hold completed cancelled"`
	Priority     *string  `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	TotalBudget  *float64 `json:"total_budget" validate:"omitempty,gte=0"`
	AmountPaid   *float64 `json:"amount_paid" validate:"omitempty,gte=0"`
	PaymentTerms *string  `json:"payment_terms"`
}

type AddMemberRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required"`
	Role       string `json:"role"`
}
