package employee

type CreateEmployeeRequest struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"omitempty,email"`
	Phone      string   `json:"phone"`
	Position   string   `json:"position"`
	Department string   `json:"department"`
	HireDate   string   `json:"hire_date"`
	Status     string   `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
	Salary     *float64 `json:"salary" validate:"omitempty,gte=0"`
}

type UpdateEmployeeRequest struct {
	Name       *string  `json:"name"`
	Email      *string  `json:"email" validate:"omitempty,email"`
	Phone      *string  `json:"phone"`
	Position   *string  `json:"position"`
	Department *string  `json:"department"`
	HireDate   *string  `json:"hire_date"`
	Status     *string  `json:"status" validate:"omitempty,oneof=active inactive on_leave"`
	Salary     *float64 `json:"salary" validate:"omitempty,gte=0"`
}
