// Package http serves the JSON API and the server rendered dashboard
// views. Handlers stay thin: they bind input, call a use case, and map
// domain errors onto status codes.
package http

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"agripass/internal/config"
	"agripass/internal/domain"
	"agripass/internal/infra/db"
	"agripass/internal/infra/i18n"
	"agripass/internal/infra/policy"
	"agripass/internal/infra/ratelimit"
	"agripass/internal/usecase"
	"agripass/web"

	"github.com/gin-gonic/gin"
)

// Authorizer decides whether a principal may perform an action.
type Authorizer interface {
	Allow(ctx context.Context, principal domain.Principal, action string) (bool, error)
}

type Server struct {
	cfg    config.Config
	store  *db.Store
	r      *gin.Engine
	logger *slog.Logger

	batches     *usecase.BatchService
	inspections *usecase.InspectionService
	issuer      *usecase.CertificateIssuer
	passports   *usecase.PassportQuery
	verifyUC    *usecase.VerifyCertificate
	audit       *usecase.AuditTrail
	actors      usecase.ActorRepository

	authorizer Authorizer
	sessions   *sessionManager

	rateLimiter       domain.RateLimiter
	rateLimitRequests int
	rateLimitWindow   time.Duration

	catalog   *i18n.Catalog
	templates map[string]*template.Template
	metrics   *serverMetrics
}

func NewServer(cfg config.Config, store *db.Store, logger *slog.Logger) (*Server, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{cfg: cfg, store: store, r: r, logger: logger}
	if err := s.initDeps(); err != nil {
		return nil, err
	}
	if err := s.initCommon(); err != nil {
		return nil, err
	}
	s.routes()
	return s, nil
}

type ServerDeps struct {
	Batches     *usecase.BatchService
	Inspections *usecase.InspectionService
	Issuer      *usecase.CertificateIssuer
	Passports   *usecase.PassportQuery
	Verify      *usecase.VerifyCertificate
	Audit       *usecase.AuditTrail
	Actors      usecase.ActorRepository
	Authorizer  Authorizer
	RateLimiter domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) (*Server, error) {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:         cfg,
		r:           r,
		logger:      slog.Default(),
		batches:     deps.Batches,
		inspections: deps.Inspections,
		issuer:      deps.Issuer,
		passports:   deps.Passports,
		verifyUC:    deps.Verify,
		audit:       deps.Audit,
		actors:      deps.Actors,
		authorizer:  deps.Authorizer,
		rateLimiter: deps.RateLimiter,
	}
	if s.authorizer == nil {
		engine, err := policy.NewEngine(context.Background())
		if err != nil {
			return nil, err
		}
		s.authorizer = engine
	}
	if err := s.initCommon(); err != nil {
		return nil, err
	}
	s.routes()
	return s, nil
}

func (s *Server) initDeps() error {
	audit := &usecase.AuditTrail{Logger: s.logger}
	if s.store != nil && s.store.DB != nil {
		auditRepo := db.NewAuditEventRepository(s.store.DB)
		batchRepo := db.NewBatchRepository(s.store.DB)
		inspectionRepo := db.NewInspectionRepository(s.store.DB)
		certRepo := db.NewCertificateRepository(s.store.DB)
		credRepo := db.NewCredentialRepository(s.store.DB)
		actorRepo := db.NewActorRepository(s.store.DB)

		audit.Events = auditRepo
		s.audit = audit
		s.batches = &usecase.BatchService{Batches: batchRepo, Audit: audit}
		s.inspections = &usecase.InspectionService{
			Batches:     batchRepo,
			Inspections: inspectionRepo,
			Audit:       audit,
		}
		s.issuer = &usecase.CertificateIssuer{
			Batches:      batchRepo,
			Certificates: certRepo,
			Credentials:  credRepo,
			Audit:        audit,
			BaseURL:      s.cfg.PublicBaseURL,
			Validity:     s.cfg.CertValidity(),
		}
		s.passports = &usecase.PassportQuery{Batches: batchRepo}
		s.verifyUC = &usecase.VerifyCertificate{
			Certificates: certRepo,
			Credentials:  credRepo,
			Batches:      batchRepo,
			Inspections:  inspectionRepo,
			Actors:       actorRepo,
			BaseURL:      s.cfg.PublicBaseURL,
		}
		s.actors = actorRepo
	} else {
		s.audit = audit
	}

	engine, err := policy.NewEngine(context.Background())
	if err != nil {
		return fmt.Errorf("policy engine: %w", err)
	}
	s.authorizer = engine

	if s.cfg.RateLimitRequests > 0 {
		if s.cfg.RedisAddr != "" {
			limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil)
			if err != nil {
				return fmt.Errorf("redis rate limiter: %w", err)
			}
			s.rateLimiter = limiter
		} else {
			s.rateLimiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{})
		}
	}
	return nil
}

// initCommon wires the pieces both constructors share: sessions, locale
// catalog, templates, metrics, rate limit settings.
func (s *Server) initCommon() error {
	if s.logger == nil {
		s.logger = slog.Default()
	}
	sessions, err := newSessionManager(s.cfg.SessionSecret, s.cfg.SessionTTL())
	if err != nil {
		return err
	}
	s.sessions = sessions

	catalog, err := i18n.LoadCatalog()
	if err != nil {
		return err
	}
	s.catalog = catalog

	templates, err := parseTemplates(web.TemplatesFS, catalog)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	s.templates = templates

	s.metrics = newServerMetrics()
	s.rateLimitRequests = s.cfg.RateLimitRequests
	s.rateLimitWindow = time.Duration(s.cfg.RateLimitWindowSeconds) * time.Second
	if s.rateLimitWindow <= 0 {
		s.rateLimitWindow = time.Minute
	}

	s.r.Use(s.requestLog(), s.metrics.middleware())
	return nil
}

func (s *Server) routes() {
	s.r.GET("/healthz", func(c *gin.Context) {
		dbMode := "no-db"
		if s.store != nil && s.store.DB != nil {
			dbMode = "db"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "mode": dbMode})
	})
	s.r.GET("/metrics", gin.WrapH(s.metrics.handler()))
	if staticFS, err := fs.Sub(web.StaticFS, "static"); err == nil {
		s.r.StaticFS("/static", http.FS(staticFS))
	}

	api := s.r.Group("/api")
	{
		api.POST("/session", s.handleOpenSession)
		api.GET("/verify/:certId", s.rateLimit(), s.handleVerifyCertificate)

		authed := api.Group("", s.requireSession())
		authed.GET("/batches", s.authorize("batch:list"), s.handleListBatches)
		authed.POST("/batches", s.authorize("batch:create"), s.handleCreateBatch)
		authed.GET("/inspections/pending", s.authorize("inspection:list"), s.handlePendingInspections)
		authed.POST("/inspections/approve", s.authorize("inspection:record"), s.handleApproveInspection)
		authed.GET("/passports", s.authorize("passport:list"), s.handleListPassports)
		authed.GET("/digital-passports", s.authorize("passport:list"), s.handleListPassports)
		authed.POST("/certificates", s.authorize("certificate:issue"), s.handleIssueCertificate)
		authed.GET("/audit", s.authorize("audit:list"), s.handleListAudit)
	}

	for _, locale := range i18n.SupportedLocales {
		prefix := ""
		if locale != i18n.DefaultLocale {
			prefix = "/" + locale
		}
		s.pageRoutes(s.r.Group(prefix), locale)
	}

	s.r.NoRoute(s.handleNoRoute)
}

func (s *Server) pageRoutes(g *gin.RouterGroup, locale string) {
	g.GET("/", s.pageRoot(locale))
	g.GET("/login", s.pageLogin(locale))
	g.POST("/login", s.pageLoginSubmit(locale))
	g.GET("/logout", s.pageLogout(locale))
	g.GET("/verify/:certId", s.rateLimit(), s.pageVerify(locale))
	for _, view := range []domain.View{
		domain.ViewDashboard,
		domain.ViewBatchSubmission,
		domain.ViewInspectionRequests,
		domain.ViewDigitalPassports,
		domain.ViewAuditLogs,
		domain.ViewInjiVerify,
	} {
		g.GET("/"+string(view), s.pageView(locale, view))
	}
}

func (s *Server) Run() error {
	s.logger.Info("http server listening", "addr", s.cfg.HTTPAddr)
	return s.r.Run(s.cfg.HTTPAddr)
}

// Handler exposes the router for tests.
func (s *Server) Handler() *gin.Engine {
	return s.r
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
