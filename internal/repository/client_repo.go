package repository

import (
	"context"

	"gorm.io/gorm"

	"bizdesk/internal/domain"
)

type ClientRepository struct {
	base[domain.Client]
}

func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{
		base: newBase[domain.Client](db, tableConfig{
			searchColumns: []string{"name", "email", "company_name"},
			sortColumns: map[string]bool{
				"name":       true,
				"created_at": true,
				"updated_at": true,
			},
			defaultSort: "created_at",
		}),
	}
}

// FindByIDWithStats returns the client plus its live project count,
// derived at read time.
func (r *ClientRepository) FindByIDWithStats(ctx context.Context, id int64) (*domain.ClientWithStats, error) {
	client, err := r.FindByID(ctx, id)
	if err != nil || client == nil {
		return nil, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&domain.Project{}).
		Where("client_id = ?", id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	return &domain.ClientWithStats{Client: *client, ProjectCount: count}, nil
}

func (r *ClientRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&domain.Client{}).Count(&n).Error
	return n, err
}

// TopByProjectValue ranks live clients by the summed total_budget of
// their live projects, computed store-side so the ranking covers all
// clients rather than one fetched page. last_contact_at is the most
// recent live communication date.
func (r *ClientRepository) TopByProjectValue(ctx context.Context, limit int) ([]domain.ClientValue, error) {
	rows := make([]domain.ClientValue, 0, limit)
	err := r.db.WithContext(ctx).Raw(`
SELECT c.id,
       c.name,
       c.company_name,
       COALESCE(SUM(p.total_budget), 0) AS total_value,
       COUNT(p.id)                      AS project_count,
       (SELECT MAX(cl.date)
          FROM communication_logs cl
         WHERE cl.client_id = c.id AND cl.deleted_at IS NULL) AS last_contact_at
FROM clients c
LEFT JOIN projects p ON p.client_id = c.id AND p.deleted_at IS NULL
WHERE c.deleted_at IS NULL
GROUP BY c.id, c.name, c.company_name
ORDER BY total_value DESC
LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
