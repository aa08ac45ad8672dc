package domain

import (
	"time"

	"gorm.io/gorm"
)

// Client is a customer of the business. Only Name is required; the
// remaining contact fields are nullable and stored as NULL when the
// form submits them blank.
type Client struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Email       *string        `json:"email"`
	Phone       *string        `json:"phone"`
	CompanyName *string        `gorm:"column:company_name" json:"company_name"`
	Address     *string        `json:"address"`
	Notes       *string        `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Client) TableName() string { return "clients" }

// ClientWithStats carries the read-time derived project count.
type ClientWithStats struct {
	Client
	ProjectCount int64 `json:"project_count"`
}

// ClientValue is one row of the dashboard's top-clients ranking.
type ClientValue struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	CompanyName   *string    `json:"company_name"`
	TotalValue    float64    `json:"total_value"`
	ProjectCount  int64      `json:"project_count"`
	LastContactAt *time.Time `json:"last_contact_at"`
}
