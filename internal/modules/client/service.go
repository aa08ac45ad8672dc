package client

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"bizdesk/internal/domain"
	"bizdesk/internal/pkg/validator"
	"bizdesk/internal/repository"
)

// ClientRepository is the data-access surface the service needs;
// satisfied by repository.ClientRepository.
type ClientRepository interface {
	FindAllPaginated(ctx context.Context, params repository.ListParams) (*repository.Page[domain.Client], error)
	FindByIDWithStats(ctx context.Context, id int64) (*domain.ClientWithStats, error)
	Create(ctx context.Context, c *domain.Client) error
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.Client, error)
	SoftDelete(ctx context.Context, id int64) error
}

type Service struct {
	repo   ClientRepository
	logger *zap.Logger
}

func NewService(repo ClientRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, params repository.ListParams) (*repository.Page[domain.Client], error) {
	page, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		s.logger.Error("client list query failed", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.ClientWithStats, error) {
	c, err := s.repo.FindByIDWithStats(ctx, id)
	if err != nil {
		s.logger.Error("client lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*domain.Client, error) {
	req.Name = strings.TrimSpace(req.Name)
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	c := &domain.Client{
		Name:        req.Name,
		Email:       nilIfBlank(req.Email),
		Phone:       nilIfBlank(req.Phone),
		CompanyName: nilIfBlank(req.CompanyName),
		Address:     nilIfBlank(req.Address),
		Notes:       nilIfBlank(req.Notes),
	}

	if err := s.repo.Create(ctx, c); err != nil {
		s.logger.Error("client create failed", zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*domain.Client, error) {
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
	setOptional(fields, "company_name", req.CompanyName)
	setOptional(fields, "address", req.Address)
	setOptional(fields, "notes", req.Notes)

	c, err := s.repo.Update(ctx, id, fields)
	if err == repository.ErrNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		s.logger.Error("client update failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.SoftDelete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.logger.Error("client delete failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
}

// nilIfBlank normalizes the form layer's "no value" (empty string) to
// the data model's NULL. Applying it to an already-blank value yields
// the same nil, so the transform is idempotent.
func nilIfBlank(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// setOptional records an update for an optional text column: absent
// pointer means untouched, blank value means clear to NULL.
func setOptional(fields map[string]any, column string, v *string) {
	if v == nil {
		return
	}
	fields[column] = nilIfBlank(*v)
}
