package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/strivefit/mcu-crossref/internal/cache"
	"github.com/strivefit/mcu-crossref/internal/config"
	"github.com/strivefit/mcu-crossref/internal/crossref"
	"github.com/strivefit/mcu-crossref/internal/database"
	"github.com/strivefit/mcu-crossref/internal/errors"
	"github.com/strivefit/mcu-crossref/internal/middleware"
	"github.com/strivefit/mcu-crossref/internal/monitoring"
	"github.com/strivefit/mcu-crossref/internal/security"
	"github.com/strivefit/mcu-crossref/internal/types"
)

// Server owns the HTTP surface over the scoring service.
type Server struct {
	cfg      *config.Config
	service  *crossref.Service
	metrics  *monitoring.Metrics
	logger   *monitoring.Logger
	security *security.SecurityMiddleware
	cache    *cache.Cache
}

// NewServer creates an HTTP server over the given service.
func NewServer(cfg *config.Config, service *crossref.Service) *Server {
	securityConfig := security.DefaultSecurityConfig()
	securityConfig.AllowedOrigins = cfg.Server.AllowedOrigins
	securityConfig.MaxRequestsPerMin = cfg.Server.MaxRequestsPerMin
	securityConfig.RequestTimeout = cfg.Server.RequestTimeout()

	return &Server{
		cfg:      cfg,
		service:  service,
		metrics:  monitoring.NewMetrics(),
		logger:   monitoring.NewLogger(),
		security: security.NewSecurityMiddleware(securityConfig),
	}
}

// Router builds the gin engine with the full middleware chain and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()

	// Compression sits outermost so the response cache below always sees
	// uncompressed bodies.
	compression := middleware.NewCompressionMiddleware(middleware.DefaultCompressionConfig())
	r.Use(compression.Handler())

	r.Use(monitoring.MonitoringMiddleware(s.metrics, s.logger))

	r.Use(errors.ErrorHandler())
	r.Use(errors.RecoveryHandler())

	r.Use(s.security.SecurityHeaders)
	r.Use(s.security.RequestTimeout)
	r.Use(s.security.ValidateContentType)
	r.Use(s.security.RateLimitByIP)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = s.cfg.Server.AllowedOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	if s.cfg.Server.CacheTTLSec > 0 {
		s.cache = cache.NewCache(s.cfg.Server.CacheTTL())
		r.Use(s.cache.Middleware(s.metrics))
	}

	s.registerRoutes(r)
	return r
}

func (s *Server) registerRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
			"metrics":   s.metrics.GetStats(),
		})
	})

	r.GET("/companies", func(c *gin.Context) {
		companies, err := s.service.Companies(c.Query("search"))
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, companies)
	})

	r.POST("/companies", func(c *gin.Context) {
		var req struct {
			Name string `json:"name" binding:"required"`
		}
		if err := c.BindJSON(&req); err != nil {
			abortWithError(c, errors.NewValidationError("company name is required"))
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if err := s.security.ValidateInput(req.Name); err != nil {
			abortWithError(c, errors.NewValidationError(err.Error()))
			return
		}
		id, err := s.service.AddCompany(req.Name)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id, "name": req.Name})
	})

	r.GET("/companies/:id/mcus", func(c *gin.Context) {
		companyID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			abortWithError(c, errors.NewValidationError("invalid company id"))
			return
		}

		mcus, err := s.service.MCUs(companyID)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, mcus)
	})

	r.POST("/companies/:id/mcus", func(c *gin.Context) {
		companyID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			abortWithError(c, errors.NewValidationError("invalid company id"))
			return
		}

		var attrs map[string]any
		if err := c.BindJSON(&attrs); err != nil {
			abortWithError(c, errors.NewValidationError("invalid part payload"))
			return
		}

		id, err := s.service.AddMCU(companyID, attrs)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"id": id})
	})

	r.POST("/compare", func(c *gin.Context) {
		var req types.CompareRequest
		if err := c.BindJSON(&req); err != nil {
			abortWithError(c, errors.NewValidationError("competitor_id and candidate_id are required"))
			return
		}

		start := time.Now()
		resp, err := s.service.Compare(req.CompetitorID, req.CandidateID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		s.metrics.IncrementCompare()
		s.logger.MatchLogger(resp.CompetitorName, resp.CandidateName,
			resp.Percentage, resp.Category, time.Since(start), false)
		c.JSON(http.StatusOK, resp)
	})

	r.POST("/best-match", func(c *gin.Context) {
		var req types.BestMatchRequest
		if err := c.BindJSON(&req); err != nil {
			abortWithError(c, errors.NewValidationError("competitor_id is required"))
			return
		}

		start := time.Now()
		resp, err := s.service.BestMatch(req.CompetitorID)
		if err != nil {
			abortWithError(c, err)
			return
		}

		s.metrics.IncrementBestMatch()
		s.logger.MatchLogger(resp.CompetitorName, resp.CandidateName,
			resp.Percentage, resp.Category, time.Since(start), false)
		c.JSON(http.StatusOK, resp)
	})

	r.POST("/import", func(c *gin.Context) {
		var req struct {
			Path    string `json:"path" binding:"required"`
			Company string `json:"company"`
		}
		if err := c.BindJSON(&req); err != nil {
			abortWithError(c, errors.NewValidationError("sheet path is required"))
			return
		}

		start := time.Now()
		summary, err := s.service.ImportParts(req.Path, req.Company)
		if err != nil {
			abortWithError(c, err)
			return
		}

		s.metrics.IncrementImport()
		s.logger.ImportLogger(req.Path, req.Company, summary.Imported, summary.Skipped, time.Since(start))
		c.JSON(http.StatusOK, summary)
	})

	r.GET("/history", func(c *gin.Context) {
		limit := 20
		if l := c.Query("limit"); l != "" {
			parsed, err := strconv.Atoi(l)
			if err != nil || parsed < 1 {
				abortWithError(c, errors.NewValidationError("limit must be a positive integer"))
				return
			}
			limit = parsed
		}

		var comparisons []database.Comparison
		var err error
		if cid := c.Query("competitor_id"); cid != "" {
			competitorID, convErr := strconv.Atoi(cid)
			if convErr != nil {
				abortWithError(c, errors.NewValidationError("competitor_id must be an integer"))
				return
			}
			comparisons, err = s.service.ForCompetitor(competitorID, limit)
		} else {
			comparisons, err = s.service.Recent(limit)
		}
		if err != nil {
			abortWithError(c, err)
			return
		}
		if comparisons == nil {
			comparisons = []database.Comparison{}
		}
		c.JSON(http.StatusOK, comparisons)
	})
}

// abortWithError converts, logs and writes an error response.
func abortWithError(c *gin.Context, err error) {
	appErr := errors.ToAppError(err)
	errors.LogError(c, appErr)
	c.JSON(appErr.HTTPStatus, appErr)
	c.Abort()
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.Router(),
	}

	go func() {
		slog.Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return err
	}

	if s.cache != nil {
		s.cache.Stop()
	}

	slog.Info("Server exited")
	return nil
}
