package http

import (
	"crypto/rand"
	"errors"
	"net/http"
	"strings"
	"time"

	"agripass/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie   = "agripass_session"
	principalCtxKey = "principal"
	sessionIssuer   = "agripass"
)

type sessionClaims struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"org,omitempty"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

type sessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// newSessionManager falls back to an ephemeral random secret when none is
// configured, so development sessions work but do not survive restarts.
func newSessionManager(secret string, ttl time.Duration) (*sessionManager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	}
	return &sessionManager{secret: key, ttl: ttl, now: time.Now}, nil
}

func (m *sessionManager) Issue(principal domain.Principal) (string, error) {
	now := m.now()
	claims := sessionClaims{
		Name:         principal.Name,
		Email:        principal.Email,
		Organization: principal.Organization,
		Role:         string(principal.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   principal.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *sessionManager) Parse(raw string) (domain.Principal, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithTimeFunc(m.now))
	if err != nil || !token.Valid {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	role, ok := domain.ParseRole(claims.Role)
	if !ok {
		return domain.Principal{}, domain.ErrUnauthorized
	}
	return domain.Principal{
		Subject:      claims.Subject,
		Name:         claims.Name,
		Email:        claims.Email,
		Organization: claims.Organization,
		Role:         role,
	}, nil
}

type openSessionRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization"`
	Role         string `json:"role"`
}

type openSessionResponse struct {
	Token       string `json:"token"`
	Role        string `json:"role"`
	DefaultView string `json:"defaultView"`
}

// actorID derives a stable identity from the email address so repeat
// sign-ins keep one actor row.
func actorID(email string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+strings.ToLower(email))).String()
}

func (s *Server) openSession(c *gin.Context, req openSessionRequest) (openSessionResponse, error) {
	role, ok := domain.ParseRole(req.Role)
	if !ok || req.Name == "" || req.Email == "" {
		return openSessionResponse{}, domain.ErrValidation
	}
	principal := domain.Principal{
		Subject:      actorID(req.Email),
		Name:         req.Name,
		Email:        req.Email,
		Organization: req.Organization,
		Role:         role,
	}
	if s.actors != nil {
		actor := domain.Actor{
			ID:           principal.Subject,
			Name:         principal.Name,
			Email:        principal.Email,
			Organization: principal.Organization,
			Role:         principal.Role,
		}
		if _, err := s.actors.Upsert(c.Request.Context(), actor); err != nil {
			return openSessionResponse{}, err
		}
	}
	token, err := s.sessions.Issue(principal)
	if err != nil {
		return openSessionResponse{}, err
	}
	if s.audit != nil {
		s.audit.Record(c.Request.Context(), domain.AuditEvent{
			EntityType: "actor",
			EntityID:   principal.Subject,
			Action:     domain.AuditActionSessionOpened,
			ActorRole:  string(principal.Role),
			ActorName:  principal.Name,
		})
	}
	return openSessionResponse{
		Token:       token,
		Role:        string(principal.Role),
		DefaultView: string(domain.DefaultView(principal.Role)),
	}, nil
}

func (s *Server) handleOpenSession(c *gin.Context) {
	var req openSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErrorCode(c, http.StatusBadRequest, "INVALID_JSON", "invalid json")
		return
	}
	resp, err := s.openSession(c, req)
	if err != nil {
		writeError(c, err)
		return
	}
	s.setSessionCookie(c, resp.Token)
	c.JSON(http.StatusOK, resp)
}

func (s *Server) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(s.cfg.SessionTTL().Seconds()), "/", "", false, true)
}

func (s *Server) clearSessionCookie(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// principalFrom resolves the caller from a bearer token or the session
// cookie. API clients use the header, browser pages the cookie.
func (s *Server) principalFrom(c *gin.Context) (domain.Principal, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return domain.Principal{}, domain.ErrUnauthorized
		}
		return s.sessions.Parse(raw)
	}
	if raw, err := c.Cookie(sessionCookie); err == nil && raw != "" {
		return s.sessions.Parse(raw)
	}
	return domain.Principal{}, domain.ErrUnauthorized
}

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := s.principalFrom(c)
		if err != nil {
			writeError(c, domain.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Set(principalCtxKey, principal)
		c.Next()
	}
}

func (s *Server) authorize(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := currentPrincipal(c)
		allowed, err := s.authorizer.Allow(c.Request.Context(), principal, action)
		if err != nil {
			s.logger.Error("authorization failed", "action", action, "err", err)
			writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
			c.Abort()
			return
		}
		if !allowed {
			writeError(c, domain.ErrForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) domain.Principal {
	value, ok := c.Get(principalCtxKey)
	if !ok {
		return domain.Principal{}
	}
	principal, _ := value.(domain.Principal)
	return principal
}
