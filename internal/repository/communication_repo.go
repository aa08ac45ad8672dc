package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bizdesk/internal/domain"
)

type CommunicationRepository struct {
	base[domain.CommunicationLog]
}

func NewCommunicationRepository(db *gorm.DB) *CommunicationRepository {
	return &CommunicationRepository{
		base: newBase[domain.CommunicationLog](db, tableConfig{
			searchColumns: []string{"summary"},
			sortColumns: map[string]bool{
				"date":       true,
				"mode":       true,
				"created_at": true,
				"updated_at": true,
			},
			defaultSort: "date",
		}),
	}
}

// FindByIDWithRelations joins client and project names onto the log
// entry. Project name is nil for logs not tied to a project.
func (r *CommunicationRepository) FindByIDWithRelations(ctx context.Context, id int64) (*domain.CommunicationWithRelations, error) {
	log, err := r.FindByID(ctx, id)
	if err != nil || log == nil {
		return nil, err
	}

	out := &domain.CommunicationWithRelations{CommunicationLog: *log}

	err = r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Unscoped().
		Where("id = ?", log.ClientID).
		Pluck("name", &out.ClientName).Error
	if err != nil {
		return nil, err
	}

	if log.ProjectID != nil {
		var name string
		err = r.db.WithContext(ctx).
			Model(&domain.Project{}).
			Unscoped().
			Where("id = ?", *log.ProjectID).
			Pluck("project_name", &name).Error
		if err != nil {
			return nil, err
		}
		out.ProjectName = &name
	}

	return out, nil
}

// FindRecent returns the most recent live log entries by date.
func (r *CommunicationRepository) FindRecent(ctx context.Context, limit int) ([]domain.CommunicationLog, error) {
	logs := make([]domain.CommunicationLog, 0, limit)
	err := r.db.WithContext(ctx).
		Order("date DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// CountSince counts live log entries dated at or after t.
func (r *CommunicationRepository) CountSince(ctx context.Context, t time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.CommunicationLog{}).
		Where("date >= ?", t).
		Count(&n).Error
	return n, err
}
