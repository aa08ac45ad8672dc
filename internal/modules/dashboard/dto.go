package dashboard

import (
	"time"

	"bizdesk/internal/domain"
)

// Metrics is the headline-numbers block of the dashboard. Counts are
// zero, never null, when there is no matching data.
type Metrics struct {
	TotalClients         int64   `json:"total_clients"`
	ActiveProjects       int64   `json:"active_projects"`
	CompletedProjects    int64   `json:"completed_projects"`
	ActiveEmployees      int64   `json:"active_employees"`
	OpenMilestones       int64   `json:"open_milestones"`
	RecentCommunications int64   `json:"recent_communications"`
	TotalRevenue         float64 `json:"total_revenue"`
	OutstandingPayments  float64 `json:"outstanding_payments"`
}

// ActivityItem is one entry of the merged recent-activity feed.
type ActivityItem struct {
	Type      string    `json:"type"`
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Timestamp time.Time `json:"timestamp"`
}

type Data struct {
	Metrics        Metrics                  `json:"metrics"`
	RecentProjects []domain.ProjectProgress `json:"recent_projects"`
	TopClients     []domain.ClientValue     `json:"top_clients"`
	RecentActivity []ActivityItem           `json:"recent_activity"`
}
