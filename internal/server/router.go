// Package server wires handlers, middleware and the metrics endpoint into a gin engine.
package server

import (
	"github.com/Mithilesh71320/nextera-code/internal/handler"
	"github.com/Mithilesh71320/nextera-code/internal/logger"
	"github.com/Mithilesh71320/nextera-code/internal/middleware"
	"github.com/Mithilesh71320/nextera-code/internal/service"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const serviceName = "nurse-staffing"

// Services are the dependencies the HTTP surface calls into
type Services struct {
	Auth       *service.AuthService
	Nurses     *service.NurseService
	Requests   *service.RequestService
	Assignment *service.AssignmentService
	Dashboard  *service.DashboardService
}

type Options struct {
	AllowedOrigins []string
	SecureCookies  bool
	Logger         *zap.Logger
}

// NewRouter builds the engine with every route registered
func NewRouter(svc Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if opts.Logger != nil {
		r.Use(logger.GinMiddleware(opts.Logger))
	}
	r.Use(middleware.CORS(opts.AllowedOrigins))

	authHandler := handler.NewAuthHandler(svc.Auth, opts.SecureCookies)
	nurseHandler := handler.NewNurseHandler(svc.Nurses)
	requestHandler := handler.NewRequestHandler(svc.Requests, svc.Assignment)
	dashboardHandler := handler.NewDashboardHandler(svc.Dashboard)

	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, gin.H{
			"status":  "healthy",
			"service": serviceName,
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Hospitals submit without signing in
	r.POST("/hospital/requests", requestHandler.SubmitRequest)

	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("/session", authHandler.Session)
		admin.GET("/dashboard", dashboardHandler.Overview)

		admin.GET("/nurses", nurseHandler.ListNurses)
		admin.POST("/nurses", nurseHandler.CreateNurse)
		admin.GET("/nurses/departments", nurseHandler.ListDepartments)
		admin.DELETE("/nurses/:id", nurseHandler.DeactivateNurse)

		admin.GET("/requests", requestHandler.ListRequests)
		admin.GET("/requests/:id", requestHandler.GetRequest)
		admin.GET("/requests/:id/candidates", requestHandler.ListCandidates)
		admin.GET("/requests/:id/assignments", requestHandler.ListAssignments)
		admin.POST("/requests/:id/assign", requestHandler.AssignNurses)
	}

	return r
}
