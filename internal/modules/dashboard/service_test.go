package dashboard

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizdesk/internal/domain"
)

type mockClients struct{ mock.Mock }

func (m *mockClients) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClients) TopByProjectValue(ctx context.Context, limit int) ([]domain.ClientValue, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]domain.ClientValue), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockProjects struct{ mock.Mock }

func (m *mockProjects) CountByStatus(ctx context.Context, status domain.ProjectStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockProjects) BudgetTotals(ctx context.Context) (float64, float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

func (m *mockProjects) FindRecent(ctx context.Context, limit int) ([]domain.Project, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]domain.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockProjects) FindRecentWithProgress(ctx context.Context, limit int) ([]domain.ProjectProgress, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]domain.ProjectProgress), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockEmployees struct{ mock.Mock }

func (m *mockEmployees) CountByStatus(ctx context.Context, status domain.EmployeeStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockMilestones struct{ mock.Mock }

func (m *mockMilestones) CountOpen(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type mockCommunications struct{ mock.Mock }

func (m *mockCommunications) FindRecent(ctx context.Context, limit int) ([]domain.CommunicationLog, error) {
	args := m.Called(ctx, limit)
	if v := args.Get(0); v != nil {
		return v.([]domain.CommunicationLog), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCommunications) CountSince(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

type fixtures struct {
	clients        *mockClients
	projects       *mockProjects
	employees      *mockEmployees
	milestones     *mockMilestones
	communications *mockCommunications
	svc            *Service
}

func newFixtures() *fixtures {
	f := &fixtures{
		clients:        new(mockClients),
		projects:       new(mockProjects),
		employees:      new(mockEmployees),
		milestones:     new(mockMilestones),
		communications: new(mockCommunications),
	}
	f.svc = NewService(f.clients, f.projects, f.employees, f.milestones, f.communications, zap.NewNop())
	return f
}

func (f *fixtures) stubHappyPath() {
	f.clients.On("Count", mock.Anything).Return(int64(4), nil)
	f.clients.On("TopByProjectValue", mock.Anything, topClientsLimit).Return([]domain.ClientValue{}, nil)
	f.projects.On("CountByStatus", mock.Anything, domain.ProjectActive).Return(int64(3), nil)
	f.projects.On("CountByStatus", mock.Anything, domain.ProjectCompleted).Return(int64(2), nil)
	f.projects.On("BudgetTotals", mock.Anything).Return(float64(3000), float64(2500), nil)
	f.projects.On("FindRecent", mock.Anything, activityPerSource).Return([]domain.Project{}, nil)
	f.projects.On("FindRecentWithProgress", mock.Anything, recentProjectsLimit).Return([]domain.ProjectProgress{}, nil)
	f.employees.On("CountByStatus", mock.Anything, domain.EmployeeActive).Return(int64(5), nil)
	f.milestones.On("CountOpen", mock.Anything).Return(int64(7), nil)
	f.communications.On("CountSince", mock.Anything, mock.Anything).Return(int64(1), nil)
	f.communications.On("FindRecent", mock.Anything, activityPerSource).Return([]domain.CommunicationLog{}, nil)
}

func TestGetDashboardData_MetricsAssembled(t *testing.T) {
	f := newFixtures()
	f.stubHappyPath()

	data, err := f.svc.GetDashboardData(context.Background())
	require.NoError(t, err)

	m := data.Metrics
	assert.Equal(t, int64(4), m.TotalClients)
	assert.Equal(t, int64(3), m.ActiveProjects)
	assert.Equal(t, int64(2), m.CompletedProjects)
	assert.Equal(t, int64(5), m.ActiveEmployees)
	assert.Equal(t, int64(7), m.OpenMilestones)
	assert.Equal(t, int64(1), m.RecentCommunications)
	assert.Equal(t, float64(3000), m.TotalRevenue)
	// Budgets [1000, 2000], paid [500, 2000] leaves 500 outstanding.
	assert.Equal(t, float64(500), m.OutstandingPayments)
}

func TestGetDashboardData_SubFetchFailureAbortsWhole(t *testing.T) {
	f := newFixtures()
	f.stubHappyPath()

	// Rebuild with a failing top-clients fetch.
	failing := new(mockClients)
	failing.On("Count", mock.Anything).Return(int64(0), nil)
	failing.On("TopByProjectValue", mock.Anything, mock.Anything).
		Return(nil, errors.New("store unavailable"))
	f.svc = NewService(failing, f.projects, f.employees, f.milestones, f.communications, zap.NewNop())

	_, err := f.svc.GetDashboardData(context.Background())
	assert.Error(t, err)
}

func TestRecentActivity_MergedSortedAndCapped(t *testing.T) {
	f := newFixtures()

	now := time.Now()
	f.projects.On("FindRecent", mock.Anything, activityPerSource).Return([]domain.Project{
		{ID: 1, ProjectName: "Newest project", CreatedAt: now},
		{ID: 2, ProjectName: "Older project", CreatedAt: now.Add(-3 * time.Hour)},
	}, nil)
	f.communications.On("FindRecent", mock.Anything, activityPerSource).Return([]domain.CommunicationLog{
		{ID: 10, Summary: "Between the two projects", Date: now.Add(-1 * time.Hour)},
	}, nil)

	items, err := f.svc.getRecentActivity(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, items, 3)
	assert.Equal(t, "project", items[0].Type)
	assert.Equal(t, int64(1), items[0].ID)
	assert.Equal(t, "communication", items[1].Type)
	assert.Equal(t, "project", items[2].Type)
	assert.Equal(t, int64(2), items[2].ID)
}

func TestRecentActivity_TruncatesToLimit(t *testing.T) {
	f := newFixtures()

	now := time.Now()
	projects := make([]domain.Project, 3)
	for i := range projects {
		projects[i] = domain.Project{ID: int64(i + 1), ProjectName: "p", CreatedAt: now}
	}
	logs := make([]domain.CommunicationLog, 3)
	for i := range logs {
		logs[i] = domain.CommunicationLog{ID: int64(i + 10), Summary: "brief note about a call", Date: now}
	}
	f.projects.On("FindRecent", mock.Anything, activityPerSource).Return(projects, nil)
	f.communications.On("FindRecent", mock.Anything, activityPerSource).Return(logs, nil)

	items, err := f.svc.getRecentActivity(context.Background(), 4)
	require.NoError(t, err)
	assert.Len(t, items, 4)
}

func TestRecentActivity_LongSummariesTruncated(t *testing.T) {
	f := newFixtures()

	long := strings.Repeat("x", 150)
	f.projects.On("FindRecent", mock.Anything, activityPerSource).Return([]domain.Project{}, nil)
	f.communications.On("FindRecent", mock.Anything, activityPerSource).Return([]domain.CommunicationLog{
		{ID: 1, Summary: long, Date: time.Now()},
	}, nil)

	items, err := f.svc.getRecentActivity(context.Background(), 10)
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, strings.Repeat("x", 100)+"…", items[0].Title)
}

func TestTruncate_ShortStringUntouched(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 100))

	exact := strings.Repeat("a", 100)
	assert.Equal(t, exact, truncate(exact, 100))
}
