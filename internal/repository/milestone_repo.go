package repository

import (
	"context"

	"gorm.io/gorm"

	"bizdesk/internal/domain"
)

type MilestoneRepository struct {
	base[domain.ProjectMilestone]
}

func NewMilestoneRepository(db *gorm.DB) *MilestoneRepository {
	return &MilestoneRepository{
		base: newBase[domain.ProjectMilestone](db, tableConfig{
			searchColumns: []string{"name", "description"},
			sortColumns: map[string]bool{
				"name":       true,
				"status":     true,
				"due_date":   true,
				"created_at": true,
				"updated_at": true,
			},
			defaultSort: "due_date",
		}),
	}
}

// FindByIDWithProject joins the owning project's name onto the
// milestone.
func (r *MilestoneRepository) FindByIDWithProject(ctx context.Context, id int64) (*domain.MilestoneWithProject, error) {
	milestone, err := r.FindByID(ctx, id)
	if err != nil || milestone == nil {
		return nil, err
	}

	var projectName string
	err = r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Unscoped().
		Where("id = ?", milestone.ProjectID).
		Pluck("project_name", &projectName).Error
	if err != nil {
		return nil, err
	}

	return &domain.MilestoneWithProject{ProjectMilestone: *milestone, ProjectName: projectName}, nil
}

// CountOpen counts live milestones still pending or in progress.
func (r *MilestoneRepository) CountOpen(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.ProjectMilestone{}).
		Where("status IN ?", []domain.MilestoneStatus{domain.MilestonePending, domain.MilestoneInProgress}).
		Count(&n).Error
	return n, err
}
