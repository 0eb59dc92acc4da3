package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"agripass/internal/domain"
	"agripass/internal/infra/i18n"
	"agripass/internal/usecase"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Error mirrors Message for clients that read a flat error field.
	Error string `json:"error,omitempty"`
}

type createBatchRequest struct {
	CropType           string   `json:"cropType"`
	Variety            string   `json:"variety"`
	Quantity           float64  `json:"quantity"`
	Unit               string   `json:"unit"`
	Location           string   `json:"location"`
	PinCode            string   `json:"pinCode"`
	DestinationCountry string   `json:"destinationCountry"`
	HarvestDate        string   `json:"harvestDate"`
	Tests              []string `json:"tests"`
}

type batchResponse struct {
	ID                 string   `json:"id"`
	BatchNumber        string   `json:"batchNumber"`
	ExporterName       string   `json:"exporterName"`
	CropType           string   `json:"cropType"`
	Variety            string   `json:"variety,omitempty"`
	Quantity           float64  `json:"quantity"`
	Unit               string   `json:"unit"`
	Location           string   `json:"location"`
	PinCode            string   `json:"pinCode"`
	DestinationCountry string   `json:"destinationCountry"`
	HarvestDate        string   `json:"harvestDate"`
	Tests              []string `json:"tests"`
	Status             string   `json:"status"`
	SubmittedAt        string   `json:"submittedAt"`
}

type listBatchesResponse struct {
	Stats    usecase.BatchStats `json:"stats"`
	Rows     []usecase.BatchRow `json:"rows"`
	Activity []activityItem     `json:"activity"`
}

// activityItem is one line of the dashboard's recent-activity feed.
type activityItem struct {
	Action    string `json:"action"`
	EntityID  string `json:"entityId"`
	ActorName string `json:"actorName"`
	At        string `json:"at"`
}

const activityFeedSize = 10

type approveInspectionRequest struct {
	BatchID       string   `json:"batchId"`
	InspectorName string   `json:"inspectorName"`
	Moisture      *float64 `json:"moisture"`
	Pesticide     *float64 `json:"pesticide"`
	HeavyMetals   *float64 `json:"heavyMetals"`
	Aflatoxin     *float64 `json:"aflatoxin"`
	MicrobialLoad *string  `json:"microbialLoad"`
	Organic       bool     `json:"organic"`
	Grade         string   `json:"grade"`
	Notes         string   `json:"notes"`
}

type issueCertificateRequest struct {
	BatchID string `json:"batchId"`
}

type auditEventResponse struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entityType"`
	EntityID   string         `json:"entityId"`
	Action     string         `json:"action"`
	ActorRole  string         `json:"actorRole"`
	ActorName  string         `json:"actorName"`
	Details    map[string]any `json:"details,omitempty"`
	CreatedAt  string         `json:"createdAt"`
}

func (s *Server) handleListBatches(c *gin.Context) {
	if s.batches == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	batches, err := s.batches.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	locale := c.DefaultQuery("locale", i18n.DefaultLocale)
	stats, rows := usecase.ProjectBatches(batches, usecase.DefaultProjectionRows, time.Now(), func(t time.Time) string {
		return i18n.FormatDate(locale, t)
	})
	c.JSON(http.StatusOK, listBatchesResponse{Stats: stats, Rows: rows, Activity: s.recentActivity(c)})
}

// recentActivity drops to an empty feed when the audit trail is unavailable;
// the dashboard must keep working without it.
func (s *Server) recentActivity(c *gin.Context) []activityItem {
	feed := make([]activityItem, 0, activityFeedSize)
	if s.audit == nil {
		return feed
	}
	events, err := s.audit.Recent(c.Request.Context(), activityFeedSize)
	if err != nil {
		s.logger.Error("activity feed lookup failed", "err", err)
		return feed
	}
	for _, event := range events {
		feed = append(feed, activityItem{
			Action:    event.Action,
			EntityID:  event.EntityID,
			ActorName: event.ActorName,
			At:        event.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return feed
}

func (s *Server) handleCreateBatch(c *gin.Context) {
	if s.batches == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	var req createBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	batch, err := s.batches.Create(c.Request.Context(), currentPrincipal(c), usecase.CreateBatchRequest{
		CropType:           req.CropType,
		Variety:            req.Variety,
		Quantity:           req.Quantity,
		Unit:               req.Unit,
		Location:           req.Location,
		PinCode:            req.PinCode,
		HarvestDate:        req.HarvestDate,
		DestinationCountry: req.DestinationCountry,
		Tests:              req.Tests,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, buildBatchResponse(batch))
}

func (s *Server) handlePendingInspections(c *gin.Context) {
	if s.inspections == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	batches, err := s.inspections.Pending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]batchResponse, 0, len(batches))
	for _, batch := range batches {
		out = append(out, buildBatchResponse(batch))
	}
	c.JSON(http.StatusOK, gin.H{"batches": out})
}

func (s *Server) handleApproveInspection(c *gin.Context) {
	if s.inspections == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	var req approveInspectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	principal := currentPrincipal(c)
	inspection, err := s.inspections.Submit(c.Request.Context(), principal, usecase.SubmitInspectionRequest{
		BatchID:       req.BatchID,
		InspectorName: req.InspectorName,
		InspectorOrg:  principal.Organization,
		Moisture:      req.Moisture,
		Pesticide:     req.Pesticide,
		HeavyMetals:   req.HeavyMetals,
		Aflatoxin:     req.Aflatoxin,
		MicrobialLoad: req.MicrobialLoad,
		Organic:       req.Organic,
		Grade:         req.Grade,
		Notes:         req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"batchId":     inspection.BatchID,
		"grade":       inspection.Grade,
		"inspectedAt": inspection.InspectedAt.UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleListPassports(c *gin.Context) {
	if s.passports == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	passports, err := s.passports.List(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"passports": passports})
}

func (s *Server) handleIssueCertificate(c *gin.Context) {
	if s.issuer == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	var req issueCertificateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	cert, err := s.issuer.Issue(c.Request.Context(), currentPrincipal(c), req.BatchID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"certificateId": cert.ID,
		"batchId":       cert.BatchID,
		"issuedAt":      cert.IssuedAt.UTC().Format(time.RFC3339),
		"expiresAt":     cert.ExpiresAt.UTC().Format(time.RFC3339),
		"verifyUrl":     s.cfg.PublicBaseURL + "/api/verify/" + cert.ID,
	})
}

func (s *Server) handleListAudit(c *gin.Context) {
	if s.audit == nil {
		writeError(c, domain.ErrNotFound)
		return
	}
	events, err := s.audit.Recent(c.Request.Context(), usecase.DefaultAuditPageSize)
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]auditEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, auditEventResponse{
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
	c.JSON(http.StatusOK, gin.H{"events": out})
}

// handleVerifyCertificate is the public verification endpoint. Its error
// body carries a status field so scanning apps can branch without reading
// HTTP status codes.
func (s *Server) handleVerifyCertificate(c *gin.Context) {
	if s.verifyUC == nil {
		c.JSON(http.StatusNotFound, gin.H{"status": "NOT_FOUND", "message": "Certificate not found"})
		return
	}
	report, err := s.verifyUC.Execute(c.Request.Context(), c.Param("certId"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.metrics.verifications.WithLabelValues("not_found").Inc()
			c.JSON(http.StatusNotFound, gin.H{"status": "NOT_FOUND", "message": "Certificate not found"})
			return
		}
		s.metrics.verifications.WithLabelValues("error").Inc()
		s.logger.Error("verification failed", "cert_id", c.Param("certId"), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"status": "ERROR", "message": "Verification failed"})
		return
	}
	s.metrics.verifications.WithLabelValues(strings.ToLower(string(report.Status))).Inc()
	c.JSON(http.StatusOK, report)
}

func (s *Server) rateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.rateLimiter == nil || s.rateLimitRequests <= 0 {
			c.Next()
			return
		}
		decision, err := s.rateLimiter.Allow(c.Request.Context(), c.ClientIP(), s.rateLimitRequests, s.rateLimitWindow)
		if err != nil {
			// fail open: throttling must not take verification down
			s.logger.Error("rate limiter failed", "err", err)
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
		if !decision.Allowed {
			retry := int(time.Until(decision.ResetAt).Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, errorResponse{
				Code:    "RATE_LIMITED",
				Message: "too many requests",
			})
			return
		}
		c.Next()
	}
}

func buildBatchResponse(batch domain.Batch) batchResponse {
	return batchResponse{
		ID:                 batch.ID,
		BatchNumber:        batch.BatchNumber,
		ExporterName:       batch.ExporterName,
		CropType:           batch.CropType,
		Variety:            batch.Variety,
		Quantity:           batch.Quantity,
		Unit:               batch.Unit,
		Location:           batch.Location,
		PinCode:            batch.PinCode,
		DestinationCountry: batch.DestinationCountry,
		HarvestDate:        batch.HarvestDate.Format("2006-01-02"),
		Tests:              batch.Tests,
		Status:             string(batch.Status),
		SubmittedAt:        batch.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

// handleNoRoute canonicalizes locale-prefixed paths the router does not
// know, so "/hi-IN/dashboard" and "/en/login" land on their served forms.
func (s *Server) handleNoRoute(c *gin.Context) {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/api/") {
		writeError(c, domain.ErrNotFound)
		return
	}
	locale, rest := i18n.Resolve(path)
	canonical := localePrefix(locale) + rest
	if canonical != path {
		c.Redirect(http.StatusMovedPermanently, canonical)
		return
	}
	writeError(c, domain.ErrNotFound)
}

func writeError(c *gin.Context, err error) {
	status, code, message := http.StatusInternalServerError, "INTERNAL", "internal error"
	switch {
	case errors.Is(err, domain.ErrValidation):
		status, code, message = http.StatusBadRequest, "VALIDATION", err.Error()
	case errors.Is(err, domain.ErrNotFound):
		status, code, message = http.StatusNotFound, "NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, code, message = http.StatusUnauthorized, "UNAUTHORIZED", err.Error()
	case errors.Is(err, domain.ErrForbidden):
		status, code, message = http.StatusForbidden, "FORBIDDEN", err.Error()
	case errors.Is(err, domain.ErrConflict):
		status, code, message = http.StatusConflict, "CONFLICT", err.Error()
	}
	writeErrorCode(c, status, code, message)
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
		Error:   message,
	})
}
