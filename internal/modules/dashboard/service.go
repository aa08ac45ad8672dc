package dashboard

import (
	"context"
	"sort"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"bizdesk/internal/domain"
)

const (
	recentProjectsLimit = 5
	topClientsLimit     = 5
	activityLimit       = 10
	activityPerSource   = 3
	summaryMaxLen       = 100
	recentWindow        = 7 * 24 * time.Hour
)

type ClientRepository interface {
	Count(ctx context.Context) (int64, error)
	TopByProjectValue(ctx context.Context, limit int) ([]domain.ClientValue, error)
}

type ProjectRepository interface {
	CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error)
	BudgetTotals(ctx context.Context) (totalBudget, amountPaid float64, err error)
	FindRecent(ctx context.Context, limit int) ([]domain.Project, error)
	FindRecentWithProgress(ctx context.Context, limit int) ([]domain.ProjectProgress, error)
}

type EmployeeRepository interface {
	CountByStatus(ctx context.Context, status domain.EmployeeStatus) (int64, error)
}

type MilestoneRepository interface {
	CountOpen(ctx context.Context) (int64, error)
}

type CommunicationRepository interface {
	FindRecent(ctx context.Context, limit int) ([]domain.CommunicationLog, error)
	CountSince(ctx context.Context, t time.Time) (int64, error)
}

type Service struct {
	clients        ClientRepository
	projects       ProjectRepository
	employees      EmployeeRepository
	milestones     MilestoneRepository
	communications CommunicationRepository
	logger         *zap.Logger
}

func NewService(
	clients ClientRepository,
	projects ProjectRepository,
	employees EmployeeRepository,
	milestones MilestoneRepository,
	communications CommunicationRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		clients:        clients,
		projects:       projects,
		employees:      employees,
		milestones:     milestones,
		communications: communications,
		logger:         logger,
	}
}

// GetDashboardData assembles the four dashboard blocks concurrently.
// A failure in any block fails the whole aggregate.
func (s *Service) GetDashboardData(ctx context.Context) (*Data, error) {
	var data Data

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		m, err := s.getMetrics(gctx)
		if err != nil {
			return err
		}
		data.Metrics = *m
		return nil
	})
	g.Go(func() error {
		projects, err := s.projects.FindRecentWithProgress(gctx, recentProjectsLimit)
		if err != nil {
			return err
		}
		data.RecentProjects = projects
		return nil
	})
	g.Go(func() error {
		clients, err := s.clients.TopByProjectValue(gctx, topClientsLimit)
		if err != nil {
			return err
		}
		data.TopClients = clients
		return nil
	})
	g.Go(func() error {
		activity, err := s.getRecentActivity(gctx, activityLimit)
		if err != nil {
			return err
		}
		data.RecentActivity = activity
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Error("dashboard aggregation failed", zap.Error(err))
		return nil, err
	}
	return &data, nil
}

func (s *Service) getMetrics(ctx context.Context) (*Metrics, error) {
	var m Metrics

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		m.TotalClients, err = s.clients.Count(gctx)
		return
	})
	g.Go(func() (err error) {
		m.ActiveProjects, err = s.projects.CountByStatus(gctx, domain.ProjectActive)
		return
	})
	g.Go(func() (err error) {
		m.CompletedProjects, err = s.projects.CountByStatus(gctx, domain.ProjectCompleted)
		return
	})
	g.Go(func() (err error) {
		m.ActiveEmployees, err = s.employees.CountByStatus(gctx, domain.EmployeeActive)
		return
	})
	g.Go(func() (err error) {
		m.OpenMilestones, err = s.milestones.CountOpen(gctx)
		return
	})
	g.Go(func() (err error) {
		m.RecentCommunications, err = s.communications.CountSince(gctx, time.Now().Add(-recentWindow))
		return
	})
	g.Go(func() error {
		totalBudget, amountPaid, err := s.projects.BudgetTotals(gctx)
		if err != nil {
			return err
		}
		m.TotalRevenue = totalBudget
		m.OutstandingPayments = totalBudget - amountPaid
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Service) getRecentActivity(ctx context.Context, limit int) ([]ActivityItem, error) {
	projects, err := s.projects.FindRecent(ctx, activityPerSource)
	if err != nil {
		return nil, err
	}
	logs, err := s.communications.FindRecent(ctx, activityPerSource)
	if err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(projects)+len(logs))
	for _, p := range projects {
		items = append(items, ActivityItem{
			Type:      "project",
			ID:        p.ID,
			Title:     p.ProjectName,
			Timestamp: p.CreatedAt,
		})
	}
	for _, l := range logs {
		items = append(items, ActivityItem{
			Type:      "communication",
			ID:        l.ID,
			Title:     truncate(l.Summary, summaryMaxLen),
			Timestamp: l.Date,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}
