package domain

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

type ProjectPriority string

const (
	PriorityLow    ProjectPriority = "low"
	PriorityMedium ProjectPriority = "medium"
	PriorityHigh   ProjectPriority = "high"
	PriorityUrgent ProjectPriority = "urgent"
)

type Project struct {
	ID           int64           `gorm:"primaryKey" json:"id"`
	ProjectName  string          `gorm:"column:project_name;not null;index" json:"project_name"`
	ClientID     int64           `gorm:"not null;index" json:"client_id"`
	Description  *string         `gorm:"type:text" json:"description"`
	StartDate    *time.Time      `gorm:"column:start_date" json:"start_date"`
	EndDate      *time.Time      `gorm:"column:end_date" json:"end_date"`
	Status       ProjectStatus   `gorm:"default:draft" json:"status"`
	Priority     ProjectPriority `gorm:"default:medium" json:"priority"`
	TotalBudget  float64         `gorm:"column:total_budget;default:0" json:"total_budget"`
	AmountPaid   float64         `gorm:"column:amount_paid;default:0" json:"amount_paid"`
	PaymentTerms *string         `gorm:"column:payment_terms" json:"payment_terms"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`

	Client *Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE" json:"client,omitempty"`
}

func (Project) TableName() string { return "projects" }

// ProjectWithClient denormalizes the client's display name onto the
// project for detail views.
type ProjectWithClient struct {
	Project
	ClientName string `json:"client_name"`
}

// ProjectProgress is one row of the dashboard's recent-projects list.
// Progress is a 0-100 percentage derived from milestone completion and
// is 0 for projects without milestones.
type ProjectProgress struct {
	ID          int64         `json:"id"`
	ProjectName string        `json:"project_name"`
	ClientName  string        `json:"client_name"`
	Status      ProjectStatus `json:"status"`
	TotalBudget float64       `json:"total_budget"`
	Progress    int           `json:"progress"`
	CreatedAt   time.Time     `json:"created_at"`
}
