package http

import (
	"errors"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"agripass/internal/domain"
	"agripass/internal/infra/i18n"
	"agripass/internal/usecase"

	"github.com/gin-gonic/gin"
)

// pageData carries everything the templates can reach. Only the fields a
// given view needs are populated.
type pageData struct {
	Locale    string
	Principal *domain.Principal
	View      string
	Stats     usecase.BatchStats
	Rows      []usecase.BatchRow
	Batches   []batchResponse
	Passports []usecase.Passport
	Events    []auditEventResponse
	Report    *domain.VerificationReport
	NotFound  bool
	Error     string
	Tests     []string
	Roles     []string
}

// parseTemplates builds one template set per locale so the translation
// function can be bound as a plain template func.
func parseTemplates(fsys fs.FS, catalog *i18n.Catalog) (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(i18n.SupportedLocales))
	for _, locale := range i18n.SupportedLocales {
		loc := locale
		funcs := template.FuncMap{
			"t": catalog.Func(loc),
			"path": func(p string) string {
				if loc == i18n.DefaultLocale {
					return p
				}
				return "/" + loc + p
			},
			"fmtDate": func(t time.Time) string {
				return i18n.FormatDate(loc, t)
			},
			"fmtNumber": func(v float64) string {
				return i18n.FormatNumber(loc, v)
			},
			"fmtMoney": func(v float64) string {
				return i18n.FormatMoney(loc, v)
			},
			"deref": func(v *float64) float64 {
				if v == nil {
					return 0
				}
				return *v
			},
		}
		tmpl, err := template.New("").Funcs(funcs).ParseFS(fsys, "templates/*.html")
		if err != nil {
			return nil, err
		}
		templates[loc] = tmpl
	}
	return templates, nil
}

func (s *Server) render(c *gin.Context, status int, locale, name string, data pageData) {
	data.Locale = locale
	tmpl, ok := s.templates[locale]
	if !ok {
		tmpl = s.templates[i18n.DefaultLocale]
	}
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(c.Writer, name, data); err != nil {
		s.logger.Error("render failed", "template", name, "err", err)
	}
}

func localePrefix(locale string) string {
	if locale == i18n.DefaultLocale {
		return ""
	}
	return "/" + locale
}

func (s *Server) pageRoot(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := s.principalFrom(c)
		if err != nil {
			c.Redirect(http.StatusFound, localePrefix(locale)+"/login")
			return
		}
		c.Redirect(http.StatusFound, localePrefix(locale)+"/"+string(domain.DefaultView(principal.Role)))
	}
}

func (s *Server) pageLogin(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.render(c, http.StatusOK, locale, "login.html", pageData{
			Roles: []string{
				string(domain.RoleExporter),
				string(domain.RoleQAAgency),
				string(domain.RoleImporter),
				string(domain.RoleAdmin),
			},
		})
	}
}

func (s *Server) pageLoginSubmit(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := s.openSession(c, openSessionRequest{
			Name:         c.PostForm("name"),
			Email:        c.PostForm("email"),
			Organization: c.PostForm("organization"),
			Role:         c.PostForm("role"),
		})
		if err != nil {
			s.render(c, http.StatusBadRequest, locale, "login.html", pageData{
				Error: "login.invalid",
				Roles: []string{
					string(domain.RoleExporter),
					string(domain.RoleQAAgency),
					string(domain.RoleImporter),
					string(domain.RoleAdmin),
				},
			})
			return
		}
		s.setSessionCookie(c, resp.Token)
		c.Redirect(http.StatusFound, localePrefix(locale)+"/"+resp.DefaultView)
	}
}

func (s *Server) pageLogout(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.clearSessionCookie(c)
		c.Redirect(http.StatusFound, localePrefix(locale)+"/login")
	}
}

func (s *Server) pageVerify(locale string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.verifyUC == nil {
			s.render(c, http.StatusNotFound, locale, "verify.html", pageData{NotFound: true})
			return
		}
		report, err := s.verifyUC.Execute(c.Request.Context(), c.Param("certId"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				s.render(c, http.StatusNotFound, locale, "verify.html", pageData{NotFound: true})
				return
			}
			s.logger.Error("verification page failed", "cert_id", c.Param("certId"), "err", err)
			s.render(c, http.StatusInternalServerError, locale, "verify.html", pageData{NotFound: true})
			return
		}
		s.render(c, http.StatusOK, locale, "verify.html", pageData{Report: &report})
	}
}

func (s *Server) pageView(locale string, view domain.View) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := s.principalFrom(c)
		if err != nil {
			c.Redirect(http.StatusFound, localePrefix(locale)+"/login")
			return
		}
		allowed, err := s.authorizer.Allow(c.Request.Context(), principal, "view:"+string(view))
		if err != nil {
			s.logger.Error("authorization failed", "view", view, "err", err)
			c.Redirect(http.StatusFound, localePrefix(locale)+"/login")
			return
		}
		if !allowed {
			c.Redirect(http.StatusFound, localePrefix(locale)+"/"+string(domain.DefaultView(principal.Role)))
			return
		}
		data := pageData{Principal: &principal, View: string(view)}
		status := http.StatusOK
		switch view {
		case domain.ViewDashboard:
			if s.batches != nil {
				batches, err := s.batches.List(c.Request.Context())
				if err != nil {
					status = http.StatusInternalServerError
					data.Error = "dashboard.loadFailed"
					break
				}
				data.Stats, data.Rows = usecase.ProjectBatches(batches, usecase.DefaultProjectionRows, time.Now(), func(t time.Time) string {
					return i18n.FormatDate(locale, t)
				})
			}
		case domain.ViewBatchSubmission:
			data.Tests = []string{
				domain.TestMoisture,
				domain.TestPesticide,
				domain.TestHeavyMetals,
				domain.TestAflatoxin,
				domain.TestMicrobialLoad,
				domain.TestOrganic,
			}
		case domain.ViewInspectionRequests:
			if s.inspections != nil {
				pending, err := s.inspections.Pending(c.Request.Context())
				if err != nil {
					status = http.StatusInternalServerError
					data.Error = "inspection.loadFailed"
					break
				}
				for _, batch := range pending {
					data.Batches = append(data.Batches, buildBatchResponse(batch))
				}
			}
		case domain.ViewDigitalPassports:
			if s.passports != nil {
				passports, err := s.passports.List(c.Request.Context(), principal)
				if err != nil {
					status = http.StatusInternalServerError
					data.Error = "passport.loadFailed"
					break
				}
				data.Passports = passports
			}
		case domain.ViewAuditLogs:
			if s.audit != nil {
				events, err := s.audit.Recent(c.Request.Context(), usecase.DefaultAuditPageSize)
				if err != nil {
					status = http.StatusInternalServerError
					data.Error = "audit.loadFailed"
					break
				}
				for _, event := range events {
					data.Events = append(data.Events, auditEventResponse{
						ID:         event.ID,
						EntityType: event.EntityType,
						EntityID:   event.EntityID,
						Action:     event.Action,
						ActorRole:  event.ActorRole,
						ActorName:  event.ActorName,
						Details:    event.Details,
						CreatedAt:  event.CreatedAt.UTC().Format(time.RFC3339),
					})
				}
			}
		}
		s.render(c, status, locale, string(view)+".html", data)
	}
}
