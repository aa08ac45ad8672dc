package domain

import (
	"time"

	"gorm.io/gorm"
)

type CommunicationMode string

const (
	ModeEmail   CommunicationMode = "email"
	ModeCall    CommunicationMode = "call"
	ModeMeeting CommunicationMode = "meeting"
)

// CommunicationLog records one client touchpoint. ProjectID is set only
// when the conversation was about a specific project.
type CommunicationLog struct {
	ID               int64             `gorm:"primaryKey" json:"id"`
	ClientID         int64             `gorm:"not null;index" json:"client_id"`
	ProjectID        *int64            `gorm:"index" json:"project_id"`
	Date             time.Time         `gorm:"not null;index" json:"date"`
	Mode             CommunicationMode `gorm:"not null" json:"mode"`
	Summary          string            `gorm:"type:text;not null" json:"summary"`
	FollowUpRequired bool              `gorm:"column:follow_up_required;default:false" json:"follow_up_required"`
	FollowUpDate     *time.Time        `gorm:"column:follow_up_date" json:"follow_up_date"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`

	Client  *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Project *Project `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
}

func (CommunicationLog) TableName() string { return "communication_logs" }

// CommunicationWithRelations denormalizes client and project names.
type CommunicationWithRelations struct {
	CommunicationLog
	ClientName  string  `json:"client_name"`
	ProjectName *string `json:"project_name"`
}
