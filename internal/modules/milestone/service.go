package milestone

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizdesk/internal/domain"
	"bizdesk/internal/pkg/validator"
	"bizdesk/internal/repository"
)

type MilestoneRepository interface {
	FindAllPaginated(ctx context.Context, params repository.ListParams) (*repository.Page[domain.ProjectMilestone], error)
	FindByIDWithProject(ctx context.Context, id int64) (*domain.MilestoneWithProject, error)
	Create(ctx context.Context, m *domain.ProjectMilestone) error
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.ProjectMilestone, error)
	SoftDelete(ctx context.Context, id int64) error
}

type AssigneeRepository interface {
	ListForMilestone(ctx context.Context, milestoneID int64) ([]domain.MemberDetails, error)
	Add(ctx context.Context, m *domain.MilestoneEmployee) error
	Remove(ctx context.Context, milestoneID, employeeID int64) error
}

type Service struct {
	repo      MilestoneRepository
	assignees AssigneeRepository
	logger    *zap.Logger
}

func NewService(repo MilestoneRepository, assignees AssigneeRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, assignees: assignees, logger: logger}
}

func (s *Service) List(ctx context.Context, params repository.ListParams) (*repository.Page[domain.ProjectMilestone], error) {
	page, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		s.logger.Error("milestone list query failed", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.MilestoneWithProject, error) {
	m, err := s.repo.FindByIDWithProject(ctx, id)
	if err != nil {
		s.logger.Error("milestone lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if m == nil {
		return nil, ErrNotFound
	}
	return m, nil
}

func (s *Service) Create(ctx context.Context, req CreateMilestoneRequest) (*domain.ProjectMilestone, error) {
	req.Name = strings.TrimSpace(req.Name)
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, validator.NewError("due_date must be a valid date (YYYY-MM-DD)")
	}
	completionDate, err := parseDate(req.CompletionDate)
	if err != nil {
		return nil, validator.NewError("completion_date must be a valid date (YYYY-MM-DD)")
	}

	status := domain.MilestonePending
	if req.Status != "" {
		status = domain.MilestoneStatus(req.Status)
	}

	m := &domain.ProjectMilestone{
		ProjectID:      req.ProjectID,
		Name:           req.Name,
		Description:    nilIfBlank(req.Description),
		DueDate:        dueDate,
		CompletionDate: completionDate,
		Status:         status,
		Remarks:        nilIfBlank(req.Remarks),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		if err == repository.ErrForeignKey {
			return nil, ErrBadReference
		}
		s.logger.Error("milestone create failed", zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateMilestoneRequest) (*domain.ProjectMilestone, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	fields := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, validator.NewError("name is required")
		}
		fields["name"] = *req.Name
	}
	setOptional(fields, "description", req.Description)
	if req.DueDate != nil {
		d, err := parseDate(*req.DueDate)
		if err != nil {
			return nil, validator.NewError("due_date must be a valid date (YYYY-MM-DD)")
		}
		fields["due_date"] = d
	}
	if req.CompletionDate != nil {
		d, err := parseDate(*req.CompletionDate)
		if err != nil {
			return nil, validator.NewError("completion_date must be a valid date (YYYY-MM-DD)")
		}
		fields["completion_date"] = d
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	setOptional(fields, "remarks", req.Remarks)

	m, err := s.repo.Update(ctx, id, fields)
	if err == repository.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("milestone update failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.SoftDelete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.logger.Error("milestone delete failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) ListAssignees(ctx context.Context, milestoneID int64) ([]domain.MemberDetails, error) {
	if _, err := s.Get(ctx, milestoneID); err != nil {
		return nil, err
	}
	return s.assignees.ListForMilestone(ctx, milestoneID)
}

func (s *Service) AssignEmployee(ctx context.Context, milestoneID int64, req AssignEmployeeRequest) (*domain.MilestoneEmployee, error) {
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}
	if _, err := s.Get(ctx, milestoneID); err != nil {
		return nil, err
	}

	m := &domain.MilestoneEmployee{
		MilestoneID: milestoneID,
		EmployeeID:  req.EmployeeID,
	}
	if err := s.assignees.Add(ctx, m); err != nil {
		switch err {
		case repository.ErrDuplicate:
			return nil, ErrAlreadyAssigned
		case repository.ErrForeignKey:
			return nil, ErrBadReference
		}
		s.logger.Error("milestone assignee add failed",
			zap.Int64("milestone_id", milestoneID),
			zap.Int64("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return m, nil
}

func (s *Service) UnassignEmployee(ctx context.Context, milestoneID, employeeID int64) error {
	err := s.assignees.Remove(ctx, milestoneID, employeeID)
	if err == repository.ErrNotFound {
		return ErrAssigneeNotFound
	}
	if err != nil {
		s.logger.Error("milestone assignee remove failed",
			zap.Int64("milestone_id", milestoneID),
			zap.Int64("employee_id", employeeID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func setOptional(fields map[string]any, column string, v *string) {
	if v == nil {
		return
	}
	if trimmed := strings.TrimSpace(*v); trimmed != "" {
		fields[column] = trimmed
	} else {
		fields[column] = nil
	}
}

func parseDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
