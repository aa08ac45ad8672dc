package repository

import (
	"context"

	"gorm.io/gorm"

	"bizdesk/internal/domain"
)

// ProjectMemberRepository manages the project/employee join table.
// Join rows have no soft-delete column: Remove is a hard delete, and
// the composite unique index makes a duplicate Add a conflict.
type ProjectMemberRepository struct {
	db *gorm.DB
}

func NewProjectMemberRepository(db *gorm.DB) *ProjectMemberRepository {
	return &ProjectMemberRepository{db: db}
}

// ListForProject returns the project's members with employee display
// fields, newest assignment first. Soft-deleted employees stay listed
// for history.
func (r *ProjectMemberRepository) ListForProject(ctx context.Context, projectID int64) ([]domain.MemberDetails, error) {
	var rows []domain.MemberDetails
	err := r.db.WithContext(ctx).Raw(`
SELECT pm.id,
       pm.employee_id,
       e.name,
       e.position,
       pm.role,
       pm.assigned_at
FROM project_members pm
JOIN employees e ON e.id = pm.employee_id
WHERE pm.project_id = ?
ORDER BY pm.assigned_at DESC`, projectID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ProjectMemberRepository) Add(ctx context.Context, m *domain.ProjectMember) error {
	return classify(r.db.WithContext(ctx).Create(m).Error)
}

func (r *ProjectMemberRepository) Remove(ctx context.Context, projectID, employeeID int64) error {
	tx := r.db.WithContext(ctx).
		Where("project_id = ? AND employee_id = ?", projectID, employeeID).
		Delete(&domain.ProjectMember{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MilestoneEmployeeRepository manages the milestone/employee join
// table with the same semantics.
type MilestoneEmployeeRepository struct {
	db *gorm.DB
}

func NewMilestoneEmployeeRepository(db *gorm.DB) *MilestoneEmployeeRepository {
	return &MilestoneEmployeeRepository{db: db}
}

func (r *MilestoneEmployeeRepository) ListForMilestone(ctx context.Context, milestoneID int64) ([]domain.MemberDetails, error) {
	var rows []domain.MemberDetails
	err := r.db.WithContext(ctx).Raw(`
SELECT me.id,
       me.employee_id,
       e.name,
       e.position,
       me.assigned_at
FROM milestone_employees me
JOIN employees e ON e.id = me.employee_id
WHERE me.milestone_id = ?
ORDER BY me.assigned_at DESC`, milestoneID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MilestoneEmployeeRepository) Add(ctx context.Context, m *domain.MilestoneEmployee) error {
	return classify(r.db.WithContext(ctx).Create(m).Error)
}

func (r *MilestoneEmployeeRepository) Remove(ctx context.Context, milestoneID, employeeID int64) error {
	tx := r.db.WithContext(ctx).
		Where("milestone_id = ? AND employee_id = ?", milestoneID, employeeID).
		Delete(&domain.MilestoneEmployee{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
