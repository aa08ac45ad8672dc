package repository

import (
	"context"

	"gorm.io/gorm"

	"bizdesk/internal/domain"
)

type EmployeeRepository struct {
	base[domain.Employee]
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{
		base: newBase[domain.Employee](db, tableConfig{
			searchColumns: []string{"name", "email", "position", "department"},
			sortColumns: map[string]bool{
				"name":       true,
				"hire_date":  true,
				"created_at": true,
				"updated_at": true,
			},
			defaultSort: "created_at",
		}),
	}
}

// FindByIDWithStats returns the employee plus the count of live
// projects they are assigned to.
func (r *EmployeeRepository) FindByIDWithStats(ctx context.Context, id int64) (*domain.EmployeeWithStats, error) {
	employee, err := r.FindByID(ctx, id)
	if err != nil || employee == nil {
		return nil, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&domain.ProjectMember{}).
		Joins("JOIN projects ON projects.id = project_members.project_id AND projects.deleted_at IS NULL").
		Where("project_members.employee_id = ?", id).
		Count(&count).Error
	if err != nil {
		return nil, err
	}

	return &domain.EmployeeWithStats{Employee: *employee, ProjectCount: count}, nil
}

func (r *EmployeeRepository) CountByStatus(ctx context.Context, status domain.EmployeeStatus) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
