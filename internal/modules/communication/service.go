package communication

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"bizdesk/internal/domain"
	"bizdesk/internal/pkg/validator"
	"bizdesk/internal/repository"
)

type CommunicationRepository interface {
	FindAllPaginated(ctx context.Context, params repository.ListParams) (*repository.Page[domain.CommunicationLog], error)
	FindByIDWithRelations(ctx context.Context, id int64) (*domain.CommunicationWithRelations, error)
	Create(ctx context.Context, log *domain.CommunicationLog) error
	Update(ctx context.Context, id int64, fields map[string]any) (*domain.CommunicationLog, error)
	SoftDelete(ctx context.Context, id int64) error
}

type Service struct {
	repo   CommunicationRepository
	logger *zap.Logger
}

func NewService(repo CommunicationRepository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) List(ctx context.Context, params repository.ListParams) (*repository.Page[domain.CommunicationLog], error) {
	page, err := s.repo.FindAllPaginated(ctx, params)
	if err != nil {
		s.logger.Error("communication list query failed", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.CommunicationWithRelations, error) {
	log, err := s.repo.FindByIDWithRelations(ctx, id)
	if err != nil {
		s.logger.Error("communication lookup failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	if log == nil {
		return nil, ErrNotFound
	}
	return log, nil
}

func (s *Service) Create(ctx context.Context, req CreateCommunicationRequest) (*domain.CommunicationLog, error) {
	req.Summary = strings.TrimSpace(req.Summary)
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, validator.NewError("date must be a valid date (YYYY-MM-DD)")
	}
	followUpDate, err := parseDate(req.FollowUpDate)
	if err != nil {
		return nil, validator.NewError("follow_up_date must be a valid date (YYYY-MM-DD)")
	}

	log := &domain.CommunicationLog{
		ClientID:         req.ClientID,
		ProjectID:        req.ProjectID,
		Date:             date,
		Mode:             domain.CommunicationMode(req.Mode),
		Summary:          req.Summary,
		FollowUpRequired: req.FollowUpRequired,
		FollowUpDate:     followUpDate,
	}

	if err := s.repo.Create(ctx, log); err != nil {
		if err == repository.ErrForeignKey {
			return nil, ErrBadReference
		}
		s.logger.Error("communication create failed", zap.Error(err))
		return nil, err
	}
	return log, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCommunicationRequest) (*domain.CommunicationLog, error) {
	if req.Summary != nil {
		trimmed := strings.TrimSpace(*req.Summary)
		req.Summary = &trimmed
	}
	if msg := validator.First(&req); msg != "" {
		return nil, validator.NewError(msg)
	}

	fields := map[string]any{}
	if req.ClientID != nil {
		fields["client_id"] = *req.ClientID
	}
	if req.ProjectID != nil {
		fields["project_id"] = *req.ProjectID
	}
	if req.Date != nil {
		d, err := time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, validator.NewError("date must be a valid date (YYYY-MM-DD)")
		}
		fields["date"] = d
	}
	if req.Mode != nil {
		fields["mode"] = *req.Mode
	}
	if req.Summary != nil {
		if *req.Summary == "" {
			return nil, validator.NewError("summary is required")
		}
		fields["summary"] = *req.Summary
	}
	if req.FollowUpRequired != nil {
		fields["follow_up_required"] = *req.FollowUpRequired
	}
	if req.FollowUpDate != nil {
		d, err := parseDate(*req.FollowUpDate)
		if err != nil {
			return nil, validator.NewError("follow_up_date must be a valid date (YYYY-MM-DD)")
		}
		fields["follow_up_date"] = d
	}

	log, err := s.repo.Update(ctx, id, fields)
	if err == repository.ErrNotFound {
		return nil, ErrNotFound
	}
	if err == repository.ErrForeignKey {
		return nil, ErrBadReference
	}
	if err != nil {
		s.logger.Error("communication update failed", zap.Int64("id", id), zap.Error(err))
		return nil, err
	}
	return log, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.SoftDelete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrNotFound
	}
	if err != nil {
		s.logger.Error("communication delete failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	return nil
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
