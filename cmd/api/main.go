package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"bizdesk/internal/config"
	"bizdesk/internal/database"
	"bizdesk/internal/middleware"
	"bizdesk/internal/modules/auth"
	"bizdesk/internal/modules/client"
	"bizdesk/internal/modules/communication"
	"bizdesk/internal/modules/dashboard"
	"bizdesk/internal/modules/employee"
	"bizdesk/internal/modules/milestone"
	"bizdesk/internal/modules/project"
	jwtsvc "bizdesk/internal/pkg/jwt"
	"bizdesk/internal/pkg/logger"
	"bizdesk/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	db, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zl.Fatal("database migration failed", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	clientRepo := repository.NewClientRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	communicationRepo := repository.NewCommunicationRepository(db)
	memberRepo := repository.NewProjectMemberRepository(db)
	assigneeRepo := repository.NewMilestoneEmployeeRepository(db)

	j := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j, zl))
	clientHandler := client.NewHandler(client.NewService(clientRepo, zl))
	employeeHandler := employee.NewHandler(employee.NewService(employeeRepo, zl))
	projectHandler := project.NewHandler(project.NewService(projectRepo, memberRepo, zl))
	milestoneHandler := milestone.NewHandler(milestone.NewService(milestoneRepo, assigneeRepo, zl))
	communicationHandler := communication.NewHandler(communication.NewService(communicationRepo, zl))
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(
		clientRepo,
		projectRepo,
		employeeRepo,
		milestoneRepo,
		communicationRepo,
		zl,
	))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestLogger(zl))
	r.Use(middleware.CORS(os.Getenv("CORS_ALLOWED_ORIGINS")))
	r.Use(middleware.Metrics())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(j))
		{
			admin := middleware.AdminOnly()

			authHandler.RegisterProtectedRoutes(protected)
			clientHandler.RegisterRoutes(protected, admin)
			employeeHandler.RegisterRoutes(protected, admin)
			projectHandler.RegisterRoutes(protected, admin)
			milestoneHandler.RegisterRoutes(protected, admin)
			communicationHandler.RegisterRoutes(protected, admin)
			dashboardHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zl.Info("server starting", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("shutdown failed", zap.Error(err))
	}
}
