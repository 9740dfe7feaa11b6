package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/sponsor-digest/internal/adapter/dto/common"
	httpmw "github.com/johnquangdev/sponsor-digest/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/sponsor-digest/pkg/config"
)

// HealthCheck reports whether a backing component is reachable
type HealthCheck func(ctx context.Context) error

// Router holds all handlers
type Router struct {
	cfg                *config.Config
	sponsorshipHandler *Sponsorship
	checks             map[string]HealthCheck
}

// NewRouter creates a new router with all handlers. checks are optional
// component probes reported by /health.
func NewRouter(cfg *config.Config, sponsorshipHandler *Sponsorship, checks map[string]HealthCheck) *Router {
	return &Router{
		cfg:                cfg,
		sponsorshipHandler: sponsorshipHandler,
		checks:             checks,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	apiKey := ""
	if rt.cfg != nil {
		apiKey = rt.cfg.Server.APIKey
	}
	v1 := e.Group("/v1", httpmw.RequireAPIKey(apiKey))

	rt.setupSponsorshipRoutes(v1)
}

// setupSponsorshipRoutes configures sponsorship analysis routes
func (rt *Router) setupSponsorshipRoutes(g *echo.Group) {
	group := g.Group("/sponsorships")

	if rt.sponsorshipHandler != nil {
		group.POST("/video", rt.sponsorshipHandler.AnalyzeVideo)
		group.POST("/channel", rt.sponsorshipHandler.AnalyzeChannel)
		group.GET("/reports/:videoId", rt.sponsorshipHandler.GetReport)
		group.DELETE("/reports/:videoId", rt.sponsorshipHandler.DeleteReport)
		group.GET("/runs", rt.sponsorshipHandler.ListRuns)
		group.GET("/runs/:id", rt.sponsorshipHandler.GetRun)
	} else {
		// Placeholder routes when handler is not initialized
		group.POST("/video", rt.notImplemented)
		group.POST("/channel", rt.notImplemented)
		group.GET("/reports/:videoId", rt.notImplemented)
		group.DELETE("/reports/:videoId", rt.notImplemented)
		group.GET("/runs", rt.notImplemented)
		group.GET("/runs/:id", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":   "This endpoint is not yet implemented",
		"path":    c.Request().URL.Path,
		"method":  c.Request().Method,
		"message": "Please initialize the required handler in main.go",
	})
}

// healthCheck returns health status. A failing component degrades the
// status but keeps the endpoint at 200 unless every check fails.
func (rt *Router) healthCheck(c echo.Context) error {
	env := ""
	if rt.cfg != nil {
		env = rt.cfg.Server.Environment
	}

	resp := common.HealthResponse{Status: "ok", Environment: env}
	if len(rt.checks) == 0 {
		return c.JSON(http.StatusOK, resp)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	resp.Components = make(map[string]string, len(rt.checks))
	failed := 0
	for name, check := range rt.checks {
		if err := check(ctx); err != nil {
			resp.Components[name] = err.Error()
			failed++
			continue
		}
		resp.Components[name] = "ok"
	}

	status := http.StatusOK
	switch {
	case failed == len(rt.checks):
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case failed > 0:
		resp.Status = "degraded"
	}
	return c.JSON(status, resp)
}
