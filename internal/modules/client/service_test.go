package client

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bizdesk/internal/domain"
	"bizdesk/internal/pkg/validator"
	"bizdesk/internal/repository"
)

type mockClientRepo struct {
	mock.Mock
}

func (m *mockClientRepo) FindAllPaginated(ctx context.Context, params repository.ListParams) (*repository.Page[domain.Client], error) {
	args := m.Called(ctx, params)
	if page := args.Get(0); page != nil {
		return page.(*repository.Page[domain.Client]), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepo) FindByIDWithStats(ctx context.Context, id int64) (*domain.ClientWithStats, error) {
	args := m.Called(ctx, id)
	if c := args.Get(0); c != nil {
		return c.(*domain.ClientWithStats), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepo) Create(ctx context.Context, c *domain.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *mockClientRepo) Update(ctx context.Context, id int64, fields map[string]any) (*domain.Client, error) {
	args := m.Called(ctx, id, fields)
	if c := args.Get(0); c != nil {
		return c.(*domain.Client), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockClientRepo) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo ClientRepository) *Service {
	return NewService(repo, zap.NewNop())
}

func TestCreate_ValidationStopsAtFirstViolation(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	// Both name and email are invalid; only the first rule surfaces.
	_, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "   ",
		Email: "not-an-email",
	})

	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name is required", ve.Message)
	repo.AssertNotCalled(t, "Create")
}

func TestCreate_BlankOptionalsBecomeNil(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Name == "Acme" && c.Email == nil && c.Phone == nil && c.CompanyName == nil
	})).Return(nil)

	created, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "  Acme  ",
		Email: "",
		Phone: "   ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme", created.Name)
	assert.Nil(t, created.Email)
	repo.AssertExpectations(t)
}

func TestCreate_NonBlankOptionalKept(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Client) bool {
		return c.Email != nil && *c.Email == "ops@acme.io"
	})).Return(nil)

	created, err := svc.Create(context.Background(), CreateClientRequest{
		Name:  "Acme",
		Email: "ops@acme.io",
	})
	require.NoError(t, err)
	require.NotNil(t, created.Email)
	assert.Equal(t, "ops@acme.io", *created.Email)
}

func TestCreate_RepoErrorPassedThrough(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	boom := errors.New("store unavailable")
	repo.On("Create", mock.Anything, mock.Anything).Return(boom)

	_, err := svc.Create(context.Background(), CreateClientRequest{Name: "Acme"})
	assert.ErrorIs(t, err, boom)
}

func TestGet_AbsentRowBecomesNotFound(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	repo.On("FindByIDWithStats", mock.Anything, int64(7)).Return(nil, nil)

	_, err := svc.Get(context.Background(), 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_PartialFieldsOnly(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	updated := &domain.Client{ID: 3, Name: "Acme"}
	repo.On("Update", mock.Anything, int64(3), map[string]any{
		"name":  "Acme",
		"phone": (*string)(nil),
	}).Return(updated, nil)

	name := " Acme "
	blank := ""
	got, err := svc.Update(context.Background(), 3, UpdateClientRequest{
		Name:  &name,
		Phone: &blank, // explicit blank clears to null
	})
	require.NoError(t, err)
	assert.Equal(t, updated, got)
	repo.AssertExpectations(t)
}

func TestUpdate_BlankNameRejected(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	blank := "   "
	_, err := svc.Update(context.Background(), 3, UpdateClientRequest{Name: &blank})

	var ve *validator.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "name is required", ve.Message)
	repo.AssertNotCalled(t, "Update")
}

func TestUpdate_MissingRowBecomesNotFound(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	repo.On("Update", mock.Anything, int64(99), mock.Anything).Return(nil, repository.ErrNotFound)

	name := "X"
	_, err := svc.Update(context.Background(), 99, UpdateClientRequest{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete_MissingRowBecomesNotFound(t *testing.T) {
	repo := new(mockClientRepo)
	svc := newTestService(repo)

	repo.On("SoftDelete", mock.Anything, int64(12)).Return(repository.ErrNotFound)

	err := svc.Delete(context.Background(), 12)
	assert.ErrorIs(t, err, ErrNotFound)
}
