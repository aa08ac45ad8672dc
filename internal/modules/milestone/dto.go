package milestone

type CreateMilestoneRequest struct {
	ProjectID      int64  `json:"project_id" validate:"required"`
	Name           string `json:"name" validate:"required,min=2"`
	Description    string `json:"description"`
	DueDate        string `json:"due_date"`
	CompletionDate string `json:"completion_date"`
	Status         string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Remarks        string `json:"remarks"`
}

type UpdateMilestoneRequest struct {
	Name           *string `json:"name" validate:"omitempty,min=2"`
	Description    *string `json:"description"`
	DueDate        *string `json:"due_date"`
	CompletionDate *string `json:"completion_date"`
	Status         *string `json:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Remarks        *string `json:"remarks"`
}

type AssignEmployeeRequest struct {
	EmployeeID int64 `json:"employee_id" validate:"required"`
}
