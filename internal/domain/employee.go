package domain

import (
	"time"

	"gorm.io/gorm"
)

type EmployeeStatus string

const (
	EmployeeActive   EmployeeStatus = "active"
	EmployeeInactive EmployeeStatus = "inactive"
	EmployeeOnLeave  EmployeeStatus = "on_leave"
)

type Employee struct {
	ID         int64          `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null;index" json:"name"`
	Email      *string        `json:"email"`
	Phone      *string        `json:"phone"`
	Position   *string        `json:"position"`
	Department *string        `json:"department"`
	HireDate   *time.Time     `gorm:"column:hire_date" json:"hire_date"`
	Status     EmployeeStatus `gorm:"default:active" json:"status"`
	Salary     *float64       `json:"salary"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Employee) TableName() string { return "employees" }

// EmployeeWithStats carries the read-time derived project count
// (live projects the employee is assigned to).
type EmployeeWithStats struct {
	Employee
	ProjectCount int64 `json:"project_count"`
}
