package project

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizdesk/internal/domain"
	"bizdesk/internal/pkg/validator"
	"bizdesk/internal/repository"
)

type ProjectRepository interface {
	FindAllPaginated(ctx context.Context, params repository.ListParams) (*repository.Page[domain.Project], error)
	FindByIDWithClient(ctx context.Context, id int64) (*domain.ProjectWithClient, error)
	Create(ctx context.Context, p *domain.Project) error
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.Project, error)
	SoftDelete(ctx context.Context, id int64) error
}

type MemberRepository interface {
	ListForProject(ctx context.Context, projectID int64) ([]domain.MemberDetails, error)
	Add(ctx context.Context, m *domain.ProjectMember) error
	Remove(ctx context.Context, projectID, employeeID int64) error
}

type Service struct {
	repo    ProjectRepository
	members MemberRepository
	logger  *zap.Logger
}

func NewService(repo ProjectRepository, members MemberRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, members: members, logger: logger}
}

func (s *Service) List(ctx context.Context, params repository.ListParams) (*repository.Page[domain.Project], error) {
	page, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		s.logger.Error("project list query failed", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ProjectWithClient, error) {
	p, err := s.repo.FindByIDWithClient(ctx, id)
	if err != nil {
		s.logger.Error("project lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, req CreateProjectRequest) (*domain.Project, error) {
	req.ProjectName = strings.TrimSpace(req.ProjectName)
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, validator.NewError("start_date must be a valid date (YYYY-MM-DD)")
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, validator.NewError("end_date must be a valid date (YYYY-MM-DD)")
	}

	status := domain.ProjectDraft
	if req.Status != "" {
		status = domain.ProjectStatus(req.Status)
	}
	priority := domain.PriorityMedium
	if req.Priority != "" {
		priority = domain.ProjectPriority(req.Priority)
	}

	p := &domain.Project{
		ProjectName:  req.ProjectName,
		ClientID:     req.ClientID,
		Description:  nilIfBlank(req.Description),
		StartDate:    startDate,
		EndDate:      endDate,
		Status:       status,
		Priority:     priority,
		TotalBudget:  req.TotalBudget,
		AmountPaid:   req.AmountPaid,
		PaymentTerms: nilIfBlank(req.PaymentTerms),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if err == repository.ErrForeignKey {
			return nil, ErrBadReference
		}
		s.logger.Error("project create failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateProjectRequest) (*domain.Project, error) {
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	fields := map[string]any{}
	if req.ProjectName != nil {
		name := strings.TrimSpace(*req.ProjectName)
		if name == "" {
			return nil, validator.NewError("project_name is required")
		}
		fields["project_name"] = name
	}
	if req.ClientID != nil {
		if *req.ClientID == 0 {
			return nil, validator.NewError("client_id is required")
		}
		fields["client_id"] = *req.ClientID
	}
	setOptional(fields, "description", req.Description)
	if req.StartDate != nil {
		d, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, validator.NewError("start_date must be a valid date (YYYY-MM-DD)")
		}
		fields["start_date"] = d
	}
	if req.EndDate != nil {
		d, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, validator.NewError("end_date must be a valid date (YYYY-MM-DD)")
		}
		fields["end_date"] = d
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Priority != nil {
		fields["priority"] = *req.Priority
	}
	if req.TotalBudget != nil {
		fields["total_budget"] = *req.TotalBudget
	}
	if req.AmountPaid != nil {
		fields["amount_paid"] = *req.AmountPaid
	}
	setOptional(fields, "payment_terms", req.PaymentTerms)

	p, err := s.repo.Update(ctx, id, fields)
	if err == repository.ErrNotFound {
		return nil, ErrNotFound
	}
	if err == repository.ErrForeignKey {
		return nil, ErrBadReference
	}
	if err != nil {
		s.logger.Error("project update failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.SoftDelete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.logger.Error("project delete failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ListMembers returns the project's team, verifying the project is
// live first.
func (s *Service) ListMembers(ctx context.Context, projectID int64) ([]domain.MemberDetails, error) {
	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, err
	}
	return s.members.ListForProject(ctx, projectID)
}

// AddMember assigns an employee to the project. A second assignment of
// the same employee is a conflict, not an upsert.
func (s *Service) AddMember(ctx context.Context, projectID int64, req AddMemberRequest) (*domain.ProjectMember, error) {
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}
	if _, err := s.Get(ctx, projectID); err != nil {
		return nil, err
	}

	m := &domain.ProjectMember{
		ProjectID:  projectID,
		EmployeeID: req.EmployeeID,
		Role:       nilIfBlank(req.Role),
	}
	if err := s.members.Add(ctx, m); err != nil {
		switch err {
		case repository.ErrDuplicate:
			return nil, ErrAlreadyAssigned
		case repository.ErrForeignKey:
			return nil, ErrBadReference
		}
		s.logger.Error("project member add failed",
			zap.Int64("project_id", projectID),
			zap.Int64("employee_id", req.EmployeeID),
			zap.Error(err),
		)
		return nil, err
	}
	return m, nil
}

func (s *Service) RemoveMember(ctx context.Context, projectID, employeeID int64) error {
	err := s.members.Remove(ctx, projectID, employeeID)
	if err == repository.ErrNotFound {
		return ErrMemberNotFound
	}
	if err != nil {
		s.logger.Error("project member remove failed",
			zap.Int64("project_id", projectID),
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
