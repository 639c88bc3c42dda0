package server

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"sync"

	"ClubLedger/internal/model"
	"ClubLedger/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/logger"
)

const sessionCookie = "ledger_session"

// HTTPHandler holds the dependencies for the HTTP handlers.
type HTTPHandler struct {
	tracker       *service.Tracker
	adminPassword string
	guestPassword string

	mu       sync.Mutex
	sessions map[string]model.Role
}

// NewHTTPHandler creates a new HTTPHandler.
func NewHTTPHandler(tracker *service.Tracker, adminPassword, guestPassword string) *HTTPHandler {
	return &HTTPHandler{
		tracker:       tracker,
		adminPassword: adminPassword,
		guestPassword: guestPassword,
		sessions:      make(map[string]model.Role),
	}
}

// RegisterRoutes registers all application routes.
func (h *HTTPHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/login", h.Login)

	authed := router.Group("/api")
	authed.Use(h.AuthMiddleware())
	authed.POST("/logout", h.Logout)
	authed.GET("/seasons", h.GetSeasons)
	authed.GET("/views", h.GetViews)
	authed.GET("/matches", h.GetOpenMatches)

	admin := authed.Group("/")
	admin.Use(h.AdminMiddleware())
	admin.POST("/submissions", h.SubmitDraws)
	admin.PUT("/rates", h.ReplaceRates)
	admin.PUT("/members", h.ReplaceMembers)
}

// Login checks the submitted password against the two shared secrets and
// opens a session with the matching role. The role travels with the
// session from here on; nothing downstream re-reads global state.
func (h *HTTPHandler) Login(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var role model.Role
	switch req.Password {
	case h.adminPassword:
		role = model.RoleAdmin
	case h.guestPassword:
		role = model.RoleGuest
	default:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong password"})
		return
	}

	token := newToken()
	h.mu.Lock()
	h.sessions[token] = role
	h.mu.Unlock()

	c.SetCookie(sessionCookie, token, 12*3600, "/", "", false, true)
	logger.Infof("login as %s", role)
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// Logout drops the current session.
func (h *HTTPHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(sessionCookie); err == nil {
		h.mu.Lock()
		delete(h.sessions, token)
		h.mu.Unlock()
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// AuthMiddleware resolves the session cookie to a role and stores it in
// the request context.
func (h *HTTPHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "login required"})
			return
		}
		h.mu.Lock()
		role, ok := h.sessions[token]
		h.mu.Unlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "session expired"})
			return
		}
		c.Set("role", role)
		c.Next()
	}
}

// AdminMiddleware rejects requests whose session role cannot edit.
func (h *HTTPHandler) AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if r, ok := role.(model.Role); !ok || !r.CanEdit() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only"})
			return
		}
		c.Next()
	}
}

// GetSeasons returns the selectable seasons including "ALL".
func (h *HTTPHandler) GetSeasons(c *gin.Context) {
	seasons, err := h.tracker.Seasons()
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"seasons": seasons})
}

// GetViews returns every derived view for the selected season.
func (h *HTTPHandler) GetViews(c *gin.Context) {
	views, err := h.tracker.Views(c.Query("season"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// GetOpenMatches returns the home games open for input plus the active
// members shown on the form.
func (h *HTTPHandler) GetOpenMatches(c *gin.Context) {
	matches, err := h.tracker.OpenMatches(c.Query("season"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	members, err := h.tracker.InputMembers()
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "members": members})
}

// SubmitDraws records one match's drawn numbers as new ledger rows.
func (h *HTTPHandler) SubmitDraws(c *gin.Context) {
	var req struct {
		Season  string         `json:"season"`
		MatchID string         `json:"match_id"`
		Date    string         `json:"date"`
		Draws   []service.Draw `json:"draws"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	txs, err := h.tracker.SubmitDraws(req.Season, req.MatchID, req.Date, req.Draws)
	if err != nil {
		if errors.Is(err, service.ErrInvalidSubmission) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appended": len(txs), "transactions": txs})
}

// ReplaceRates swaps the whole rate table.
func (h *HTTPHandler) ReplaceRates(c *gin.Context) {
	var entries []model.RateEntry
	if err := c.ShouldBindJSON(&entries); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.tracker.ReplaceRates(entries); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": len(entries)})
}

// ReplaceMembers swaps the whole member table.
func (h *HTTPHandler) ReplaceMembers(c *gin.Context) {
	var members []model.Member
	if err := c.ShouldBindJSON(&members); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.tracker.ReplaceMembers(members); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": len(members)})
}

func (h *HTTPHandler) storeError(c *gin.Context, err error) {
	logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

func newToken() string {
	b := make([]byte, 16)
	rand.Read(b)
	return hex.EncodeToString(b)
}
