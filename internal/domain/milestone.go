package domain

import (
	"time"

	"gorm.io/gorm"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "pending"
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
	MilestoneCancelled  MilestoneStatus = "cancelled"
)

type ProjectMilestone struct {
	ID             int64           `gorm:"primaryKey" json:"id"`
	ProjectID      int64           `gorm:"not null;index" json:"project_id"`
	Name           string          `gorm:"not null" json:"name"`
	Description    *string         `gorm:"type:text" json:"description"`
	DueDate        *time.Time      `gorm:"column:due_date" json:"due_date"`
	CompletionDate *time.Time      `gorm:"column:completion_date" json:"completion_date"`
	Status         MilestoneStatus `gorm:"default:pending" json:"status"`
	Remarks        *string         `gorm:"type:text" json:"remarks"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`

	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (ProjectMilestone) TableName() string { return "project_milestones" }

// MilestoneWithProject denormalizes the owning project's name.
type MilestoneWithProject struct {
	ProjectMilestone
	ProjectName string `json:"project_name"`
}
