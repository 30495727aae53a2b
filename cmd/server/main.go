package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mithilesh71320/nextera-code/internal/config"
	"github.com/Mithilesh71320/nextera-code/internal/database"
	"github.com/Mithilesh71320/nextera-code/internal/logger"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
	"github.com/Mithilesh71320/nextera-code/internal/server"
	"github.com/Mithilesh71320/nextera-code/internal/service"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	defer func() { _ = log.Sync() }()

	// 2. Initialize JWT utilities with config
	utils.InitJWT(cfg.JWT.AccessSecret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	// 3. Initialize database connection
	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("database unavailable", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}

	// 4. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	nurseRepo := repository.NewNurseRepo(db)
	requestRepo := repository.NewRequestRepo(db)

	// 5. Initialize services
	dashboardService := service.NewDashboardService(nurseRepo, requestRepo)
	services := server.Services{
		Auth:       service.NewAuthService(userRepo, auditRepo, log),
		Nurses:     service.NewNurseService(nurseRepo, auditRepo, log),
		Requests:   service.NewRequestService(requestRepo, auditRepo, log),
		Assignment: service.NewAssignmentService(requestRepo, nurseRepo, auditRepo, log, cfg.Assignment.MaxAttempts),
		Dashboard:  dashboardService,
	}
	workerService := service.NewWorkerService(userRepo, dashboardService, log, cfg.Worker.Interval)

	// 6. Start background worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go workerService.Start(ctx)

	// 7. Setup router
	gin.SetMode(cfg.Server.GinMode)
	router := server.NewRouter(services, server.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		SecureCookies:  cfg.IsRelease(),
		Logger:         log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}
	log.Info("server exited")
}
