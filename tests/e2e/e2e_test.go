package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bizdesk/internal/database"
	"bizdesk/internal/domain"
	"bizdesk/internal/middleware"
	"bizdesk/internal/modules/auth"
	"bizdesk/internal/modules/client"
	"bizdesk/internal/modules/communication"
	"bizdesk/internal/modules/dashboard"
	"bizdesk/internal/modules/employee"
	"bizdesk/internal/modules/milestone"
	"bizdesk/internal/modules/project"
	jwtsvc "bizdesk/internal/pkg/jwt"
	"bizdesk/internal/repository"
)

type testSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	adminToken string
	staffToken string
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *errorDetail    `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func setupSuite(t *testing.T) *testSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	zl := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	communicationRepo := repository.NewCommunicationRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	assigneeRepo := repository.NewMilestoneEmployeeRepository(db)

	j := jwtsvc.New("test-secret", time.Hour)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j, zl))
	clientHandler := client.NewHandler(client.NewService(clientRepo, zl))
	employeeHandler := employee.NewHandler(employee.NewService(employeeRepo, zl))
	projectHandler := project.NewHandler(project.NewService(projectRepo, memberRepo, zl))
	milestoneHandler := milestone.NewHandler(milestone.NewService(milestoneRepo, assigneeRepo, zl))
	communicationHandler := communication.NewHandler(communication.NewService(communicationRepo, zl))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(
		clientRepo, projectRepo, employeeRepo, milestoneRepo, communicationRepo, zl,
	))

	r := gin.New()
	v1 := r.Group("/api/v1")
	authHandler.RegisterPublicRoutes(v1)

	protected := v1.Group("/")
	protected.Use(middleware.JWTAuth(j))
	admin := middleware.AdminOnly()
	authHandler.RegisterProtectedRoutes(protected)
	clientHandler.RegisterRoutes(protected, admin)
	employeeHandler.RegisterRoutes(protected, admin)
	projectHandler.RegisterRoutes(protected, admin)
	milestoneHandler.RegisterRoutes(protected, admin)
	communicationHandler.RegisterRoutes(protected, admin)
	dashboardHandler.RegisterRoutes(protected)

	// Seed one admin directly; staff registers through the API.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&domain.User{
		Name:         "Admin",
		Email:        "admin@test.local",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}).Error)

	adminToken, err := j.GenerateToken(1, domain.RoleAdmin)
	require.NoError(t, err)

	s := &testSuite{router: r, db: db, adminToken: adminToken}

	status, env := s.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
		"name":     "Staff User",
		"email":    "staff@test.local",
		"password": "password123",
	})
	require.Equal(t, http.StatusCreated, status)

	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	s.staffToken = reg.Token

	return s
}

func (s *testSuite) request(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestAuthFlow(t *testing.T) {
	s := setupSuite(t)

	t.Run("login with valid credentials", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "staff@test.local",
			"password": "password123",
		})
		assert.Equal(t, http.StatusOK, status)

		var res struct {
			Token string `json:"token"`
			User  struct {
				Role string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &res))
		assert.NotEmpty(t, res.Token)
		assert.Equal(t, "staff", res.User.Role)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
			"email":    "staff@test.local",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
	})

	t.Run("register with taken email", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]any{
			"name":     "Dup",
			"email":    "staff@test.local",
			"password": "password123",
		})
		assert.Equal(t, http.StatusConflict, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("me returns profile", func(t *testing.T) {
		status, env := s.request(t, http.MethodGet, "/api/v1/auth/me", s.staffToken, nil)
		assert.Equal(t, http.StatusOK, status)

		var me struct {
			Email string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &me))
		assert.Equal(t, "staff@test.local", me.Email)
	})

	t.Run("protected route without token", func(t *testing.T) {
		status, env := s.request(t, http.MethodGet, "/api/v1/clients", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "Authentication required", env.Error.Message)
	})
}

func TestClientLifecycle(t *testing.T) {
	s := setupSuite(t)

	var clientID int64

	t.Run("create with blank optional email", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/clients", s.staffToken, map[string]any{
			"name":  "Acme",
			"email": "",
		})
		require.Equal(t, http.StatusCreated, status)

		var created struct {
			ID    int64   `json:"id"`
			Name  string  `json:"name"`
			Email *string `json:"email"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.Equal(t, "Acme", created.Name)
		assert.Nil(t, created.Email, "blank email must be stored as null")
		clientID = created.ID
	})

	t.Run("create without name fails", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/clients", s.staffToken, map[string]any{
			"email": "x@y.z",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "name is required", env.Error.Message)
	})

	t.Run("case-insensitive search finds it", func(t *testing.T) {
		status, env := s.request(t, http.MethodGet, "/api/v1/clients?search=aCm", s.staffToken, nil)
		require.Equal(t, http.StatusOK, status)

		var page struct {
			Items []json.RawMessage `json:"items"`
			Total int64             `json:"total"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("explicit zero page size clamps to one", func(t *testing.T) {
		status, env := s.request(t, http.MethodGet, "/api/v1/clients?pageSize=0", s.staffToken, nil)
		require.Equal(t, http.StatusOK, status)

		var page struct {
			PageSize int `json:"page_size"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &page))
		assert.Equal(t, 1, page.PageSize)
	})

	t.Run("partial update clears a field", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/clients/%d", clientID)
		status, _ := s.request(t, http.MethodPut, path, s.staffToken, map[string]any{
			"phone": "555-0100",
		})
		require.Equal(t, http.StatusOK, status)

		status, env := s.request(t, http.MethodPut, path, s.staffToken, map[string]any{
			"phone": "",
		})
		require.Equal(t, http.StatusOK, status)

		var updated struct {
			Phone *string `json:"phone"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &updated))
		assert.Nil(t, updated.Phone)
	})

	t.Run("staff cannot delete", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/clients/%d", clientID)
		status, env := s.request(t, http.MethodDelete, path, s.staffToken, nil)
		assert.Equal(t, http.StatusForbidden, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("admin delete hides the client", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/clients/%d", clientID)
		status, _ := s.request(t, http.MethodDelete, path, s.adminToken, nil)
		require.Equal(t, http.StatusOK, status)

		status, env := s.request(t, http.MethodGet, path, s.staffToken, nil)
		assert.Equal(t, http.StatusNotFound, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "NOT_FOUND", env.Error.Code)
	})
}

func TestProjectMembers(t *testing.T) {
	s := setupSuite(t)

	status, env := s.request(t, http.MethodPost, "/api/v1/clients", s.staffToken, map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, status)
	var c struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &c))

	status, env = s.request(t, http.MethodPost, "/api/v1/employees", s.staffToken, map[string]any{"name": "Dev"})
	require.Equal(t, http.StatusCreated, status)
	var e struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &e))

	status, env = s.request(t, http.MethodPost, "/api/v1/projects", s.staffToken, map[string]any{
		"project_name": "Build",
		"client_id":    c.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	var p struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))

	membersPath := fmt.Sprintf("/api/v1/projects/%d/members", p.ID)

	t.Run("add member", func(t *testing.T) {
		status, _ := s.request(t, http.MethodPost, membersPath, s.staffToken, map[string]any{
			"employee_id": e.ID,
		})
		assert.Equal(t, http.StatusCreated, status)
	})

	t.Run("duplicate member conflicts", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, membersPath, s.staffToken, map[string]any{
			"employee_id": e.ID,
		})
		assert.Equal(t, http.StatusConflict, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("list members", func(t *testing.T) {
		status, env := s.request(t, http.MethodGet, membersPath, s.staffToken, nil)
		require.Equal(t, http.StatusOK, status)

		var members []struct {
			EmployeeID int64  `json:"employee_id"`
			Name       string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &members))
		require.Len(t, members, 1)
		assert.Equal(t, "Dev", members[0].Name)
	})

	t.Run("remove then re-add", func(t *testing.T) {
		path := fmt.Sprintf("%s/%d", membersPath, e.ID)
		status, _ := s.request(t, http.MethodDelete, path, s.staffToken, nil)
		require.Equal(t, http.StatusOK, status)

		status, _ = s.request(t, http.MethodPost, membersPath, s.staffToken, map[string]any{
			"employee_id": e.ID,
		})
		assert.Equal(t, http.StatusCreated, status)
	})
}

func TestDashboard(t *testing.T) {
	s := setupSuite(t)

	// Minimal dataset: one client, one project with budget 1000 / paid 400.
	status, env := s.request(t, http.MethodPost, "/api/v1/clients", s.staffToken, map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, status)
	var c struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &c))

	status, _ = s.request(t, http.MethodPost, "/api/v1/projects", s.staffToken, map[string]any{
		"project_name": "Build",
		"client_id":    c.ID,
		"status":       "active",
		"total_budget": 1000,
		"amount_paid":  400,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = s.request(t, http.MethodGet, "/api/v1/dashboard", s.staffToken, nil)
	require.Equal(t, http.StatusOK, status)

	var data struct {
		Metrics struct {
			TotalClients        int64   `json:"total_clients"`
			ActiveProjects      int64   `json:"active_projects"`
			TotalRevenue        float64 `json:"total_revenue"`
			OutstandingPayments float64 `json:"outstanding_payments"`
		} `json:"metrics"`
		RecentProjects []struct {
			ProjectName string `json:"project_name"`
			Progress    int    `json:"progress"`
		} `json:"recent_projects"`
		TopClients []struct {
			Name       string  `json:"name"`
			TotalValue float64 `json:"total_value"`
		} `json:"top_clients"`
		RecentActivity []struct {
			Type string `json:"type"`
		} `json:"recent_activity"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))

	assert.Equal(t, int64(1), data.Metrics.TotalClients)
	assert.Equal(t, int64(1), data.Metrics.ActiveProjects)
	assert.Equal(t, float64(1000), data.Metrics.TotalRevenue)
	assert.Equal(t, float64(600), data.Metrics.OutstandingPayments)

	require.Len(t, data.RecentProjects, 1)
	assert.Equal(t, 0, data.RecentProjects[0].Progress, "no milestones means zero progress")

	require.Len(t, data.TopClients, 1)
	assert.Equal(t, float64(1000), data.TopClients[0].TotalValue)

	require.Len(t, data.RecentActivity, 1)
	assert.Equal(t, "project", data.RecentActivity[0].Type)
}

func TestMilestoneAssignees(t *testing.T) {
	s := setupSuite(t)

	status, env := s.request(t, http.MethodPost, "/api/v1/clients", s.staffToken, map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, status)
	var c struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &c))

	status, env = s.request(t, http.MethodPost, "/api/v1/projects", s.staffToken, map[string]any{
		"project_name": "Build",
		"client_id":    c.ID,
	})
	require.Equal(t, http.StatusCreated, status)
	var p struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &p))

	status, env = s.request(t, http.MethodPost, "/api/v1/milestones", s.staffToken, map[string]any{
		"project_id": p.ID,
		"name":       "Phase 1",
		"due_date":   "2026-10-01",
	})
	require.Equal(t, http.StatusCreated, status)
	var m struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &m))

	status, env = s.request(t, http.MethodPost, "/api/v1/employees", s.staffToken, map[string]any{"name": "Dev"})
	require.Equal(t, http.StatusCreated, status)
	var e struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &e))

	assigneesPath := fmt.Sprintf("/api/v1/milestones/%d/employees", m.ID)

	status, _ = s.request(t, http.MethodPost, assigneesPath, s.staffToken, map[string]any{
		"employee_id": e.ID,
	})
	require.Equal(t, http.StatusCreated, status)

	status, env = s.request(t, http.MethodPost, assigneesPath, s.staffToken, map[string]any{
		"employee_id": e.ID,
	})
	assert.Equal(t, http.StatusConflict, status)
	require.NotNil(t, env.Error)

	status, env = s.request(t, http.MethodGet, assigneesPath, s.staffToken, nil)
	require.Equal(t, http.StatusOK, status)
	var assignees []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &assignees))
	require.Len(t, assignees, 1)
}

func TestCommunicationValidation(t *testing.T) {
	s := setupSuite(t)

	status, env := s.request(t, http.MethodPost, "/api/v1/clients", s.staffToken, map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, status)
	var c struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &c))

	t.Run("short summary rejected", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/communications", s.staffToken, map[string]any{
			"client_id": c.ID,
			"date":      "2026-08-01",
			"mode":      "email",
			"summary":   "too short",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "summary must be at least 10 characters", env.Error.Message)
	})

	t.Run("invalid mode rejected", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/communications", s.staffToken, map[string]any{
			"client_id": c.ID,
			"date":      "2026-08-01",
			"mode":      "carrier pigeon",
			"summary":   "a sufficiently long call summary",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, env.Error)
		assert.Equal(t, "mode must be one of: email, call, meeting", env.Error.Message)
	})

	t.Run("valid entry accepted", func(t *testing.T) {
		status, env := s.request(t, http.MethodPost, "/api/v1/communications", s.staffToken, map[string]any{
			"client_id":          c.ID,
			"date":               "2026-08-01",
			"mode":               "call",
			"summary":            "a sufficiently long call summary",
			"follow_up_required": true,
			"follow_up_date":     "2026-08-15",
		})
		require.Equal(t, http.StatusCreated, status)

		var created struct {
			FollowUpRequired bool    `json:"follow_up_required"`
			FollowUpDate     *string `json:"follow_up_date"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &created))
		assert.True(t, created.FollowUpRequired)
		assert.NotNil(t, created.FollowUpDate)
	})
}
