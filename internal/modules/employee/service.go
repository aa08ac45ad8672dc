package employee

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizdesk/internal/domain"
	"bizdesk/internal/pkg/validator"
	"bizdesk/internal/repository"
)

type EmployeeRepository interface {
	FindAllPaginated(ctx context.Context, params repository.ListParams) (*repository.Page[domain.Employee], error)
	FindByIDWithStats(ctx context.Context, id int64) (*domain.EmployeeWithStats, error)
	Create(ctx context.Context, e *domain.Employee) error
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.Employee, error)
	SoftDelete(ctx context.Context, id int64) error
}

type Service struct {
	repo   EmployeeRepository
	logger *zap.Logger
}

func NewService(repo EmployeeRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, params repository.ListParams) (*repository.Page[domain.Employee], error) {
	page, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		s.logger.Error("employee list query failed", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.EmployeeWithStats, error) {
	e, err := s.repo.FindByIDWithStats(ctx, id)
	if err != nil {
		s.logger.Error("employee lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if e == nil {
		return nil, ErrNotFound
	}
	return e, nil
}

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*domain.Employee, error) {
	req.Name = strings.TrimSpace(req.Name)
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	hireDate, err := parseDate(req.HireDate)
	if err != nil {
		return nil, validator.NewError("hire_date must be a valid date (YYYY-MM-DD)")
	}

	status := domain.EmployeeActive
	if req.Status != "" {
		status = domain.EmployeeStatus(req.Status)
	}

	e := &domain.Employee{
		Name:       req.Name,
		Email:      nilIfBlank(req.Email),
		Phone:      nilIfBlank(req.Phone),
		Position:   nilIfBlank(req.Position),
		Department: nilIfBlank(req.Department),
		HireDate:   hireDate,
		Status:     status,
		Salary:     req.Salary,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("employee create failed", zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateEmployeeRequest) (*domain.Employee, error) {
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, validator.NewError("name is required")
		}
		fields["name"] = name
	}
	setOptional(fields, "email", req.Email)
	setOptional(fields, "phone", req.Phone)
	setOptional(fields, "position", req.Position)
	setOptional(fields, "department", req.Department)
	if req.HireDate != nil {
		d, err := parseDate(*req.HireDate)
		if err != nil {
			return nil, validator.NewError("hire_date must be a valid date (YYYY-MM-DD)")
		}
		fields["hire_date"] = d
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Salary != nil {
		fields["salary"] = *req.Salary
	}

	e, err := s.repo.Update(ctx, id, fields)
	if err == repository.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("employee update failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.SoftDelete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.logger.Error("employee delete failed", zap.Int64("id", id), zap.Error(err))
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

// parseDate accepts a blank string as "no date".
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
