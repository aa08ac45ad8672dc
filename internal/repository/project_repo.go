package repository

import (
	"context"
	"math"
	"time"

	"gorm.io/gorm"

	"bizdesk/internal/domain"
)

type ProjectRepository struct {
	base[domain.Project]
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{
		base: newBase[domain.Project](db, tableConfig{
			searchColumns: []string{"project_name", "description"},
			sortColumns: map[string]bool{
				"project_name": true,
				"status":       true,
				"priority":     true,
				"start_date":   true,
				"end_date":     true,
				"total_budget": true,
				"created_at":   true,
				"updated_at":   true,
			},
			defaultSort: "created_at",
		}),
	}
}

// FindByIDWithClient joins the client's display name onto the project.
func (r *ProjectRepository) FindByIDWithClient(ctx context.Context, id int64) (*domain.ProjectWithClient, error) {
	project, err := r.FindByID(ctx, id)
	if err != nil || project == nil {
		return nil, err
	}

	var clientName string
	err = r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Unscoped(). // keep client names resolvable for historical projects
		Where("id = ?", project.ClientID).
		Pluck("name", &clientName).Error
	if err != nil {
		return nil, err
	}

	return &domain.ProjectWithClient{Project: *project, ClientName: clientName}, nil
}

func (r *ProjectRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Project{}).Count(&n).Error
	return n, err
}

func (r *ProjectRepository) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}

// BudgetTotals sums total_budget and amount_paid over all live
// projects. Both sums are 0 when there are no rows.
func (r *ProjectRepository) BudgetTotals(ctx context.Context) (totalBudget, amountPaid float64, err error) {
	var row struct {
		TotalBudget float64
		AmountPaid  float64
	}
	err = r.db.WithContext(ctx).Raw(`
SELECT COALESCE(SUM(total_budget), 0) AS total_budget,
       COALESCE(SUM(amount_paid), 0)  AS amount_paid
FROM projects
WHERE deleted_at IS NULL`).Scan(&row).Error
	return row.TotalBudget, row.AmountPaid, err
}

// FindRecent returns the most recently created live projects.
func (r *ProjectRepository) FindRecent(ctx context.Context, limit int) ([]domain.Project, error) {
	projects := make([]domain.Project, 0, limit)
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FindRecentWithProgress returns the latest projects with client name
// and milestone-derived progress in a single grouped query instead of
// per-project follow-up reads. Progress is 0 for projects without
// milestones.
func (r *ProjectRepository) FindRecentWithProgress(ctx context.Context, limit int) ([]domain.ProjectProgress, error) {
	var rows []struct {
		ID             int64
		ProjectName    string
		ClientName     string
		Status         string
		TotalBudget    float64
		CreatedAt      time.Time
		MilestoneCount int64
		CompletedCount int64
	}

	err := r.db.WithContext(ctx).Raw(`
SELECT p.id,
       p.project_name,
       c.name AS client_name,
       p.status,
       p.total_budget,
       p.created_at,
       COUNT(m.id) AS milestone_count,
       COALESCE(SUM(CASE WHEN m.status = 'completed' THEN 1 ELSE 0 END), 0) AS completed_count
FROM projects p
JOIN clients c ON c.id = p.client_id
LEFT JOIN project_milestones m ON m.project_id = p.id AND m.deleted_at IS NULL
WHERE p.deleted_at IS NULL
GROUP BY p.id, p.project_name, c.name, p.status, p.total_budget, p.created_at
ORDER BY p.created_at DESC
LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.ProjectProgress, 0, len(rows))
	for _, row := range rows {
		progress := 0
		if row.MilestoneCount > 0 {
			progress = int(math.Round(100 * float64(row.CompletedCount) / float64(row.MilestoneCount)))
		}
		out = append(out, domain.ProjectProgress{
			ID:          row.ID,
			ProjectName: row.ProjectName,
			ClientName:  row.ClientName,
			Status:      domain.ProjectStatus(row.Status),
			TotalBudget: row.TotalBudget,
			Progress:    progress,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}
