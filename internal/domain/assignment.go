package domain

import "time"

// ProjectMember links an employee to a project. The pair is unique;
// assigning the same employee twice is a conflict. Join rows carry no
// DeletedAt: removal is a hard delete so the pair can be re-assigned.
type ProjectMember struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	ProjectID  int64     `gorm:"not null;uniqueIndex:uk_project_employee" json:"project_id"`
	EmployeeID int64     `gorm:"not null;uniqueIndex:uk_project_employee;index" json:"employee_id"`
	Role       *string   `json:"role"`
	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (ProjectMember) TableName() string { return "project_members" }

// MilestoneEmployee links an employee to a milestone.
type MilestoneEmployee struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	MilestoneID int64     `gorm:"not null;uniqueIndex:uk_milestone_employee" json:"milestone_id"`
	EmployeeID  int64     `gorm:"not null;uniqueIndex:uk_milestone_employee;index" json:"employee_id"`
	AssignedAt  time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

func (MilestoneEmployee) TableName() string { return "milestone_employees" }

// MemberDetails is a join row expanded with employee display fields for
// the nested member/assignee list endpoints.
type MemberDetails struct {
	ID         int64     `json:"id"`
	EmployeeID int64     `json:"employee_id"`
	Name       string    `json:"name"`
	Position   *string   `json:"position"`
	Role       *string   `json:"role,omitempty"`
	AssignedAt time.Time `json:"assigned_at"`
}
