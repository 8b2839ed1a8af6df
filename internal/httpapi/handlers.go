package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"loadboard/internal/audit"
	"loadboard/internal/auth"
	"loadboard/internal/loads"
	"loadboard/internal/reporting"
	"loadboard/pkg/logger"
	"loadboard/pkg/utils"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.
type Handlers struct {
	Loads     *loads.Service
	Reporting *reporting.Service
	Audit     *audit.Service
	Auth      *auth.Manager

	// StatsCache is optional (nil when Redis is not configured).
	StatsCache *utils.ResponseCache
}

// --- Health ---

func (h Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Auth ---

// IssueToken exchanges a valid API key (already checked by the middleware) for
// a short-lived bearer token.
func (h Handlers) IssueToken(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "token exchange not configured"})
		return
	}
	token, exp, err := h.Auth.Issue(time.Now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_at":   exp.UTC().Format(time.RFC3339),
	})
}

// --- Shipments ---

func (h Handlers) CreateShipment(c *gin.Context) {
	var req loads.CreateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l, err := h.Loads.Create(c.Request.Context(), req, loads.ChannelURLAPI)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.StatsCache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, l)
}

func (h Handlers) ListShipments(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	out, err := h.Loads.List(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h Handlers) GetShipmentStats(c *gin.Context) {
	f, err := parseFilters(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	cacheKey := c.Request.URL.RawQuery
	if body, ok := h.StatsCache.Get(c.Request.Context(), cacheKey); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return
	}

	stats, err := h.Reporting.AssignmentSummary(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	body, err := json.Marshal(stats)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.StatsCache.Set(c.Request.Context(), cacheKey, body)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

func (h Handlers) GetRandomShipment(c *gin.Context) {
	l, err := h.Loads.Random(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h Handlers) GetShipment(c *gin.Context) {
	l, err := h.Loads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

// UpdateShipment is the generic update path; it marks the load as assigned via
// the API channel.
func (h Handlers) UpdateShipment(c *gin.Context) {
	h.updateShipment(c, loads.ChannelURLAPI)
}

// UpdateShipmentManual is the manual UI update path.
func (h Handlers) UpdateShipmentManual(c *gin.Context) {
	h.updateShipment(c, loads.ChannelManual)
}

func (h Handlers) updateShipment(c *gin.Context, ch loads.Channel) {
	var req loads.UpdateLoadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	l, err := h.Loads.Update(c.Request.Context(), c.Param("id"), req, ch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.StatsCache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, l)
}

func (h Handlers) DeleteShipment(c *gin.Context) {
	if err := h.Loads.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	h.StatsCache.Invalidate(c.Request.Context())
	c.Status(http.StatusNoContent)
}

// --- Phone calls ---

func (h Handlers) CreatePhoneCall(c *gin.Context) {
	var req loads.PhoneCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	call, err := h.Loads.AddPhoneCall(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.StatsCache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, call)
}

func (h Handlers) ListShipmentPhoneCalls(c *gin.Context) {
	calls, err := h.Loads.ListPhoneCalls(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, calls)
}

func (h Handlers) DeleteShipmentPhoneCalls(c *gin.Context) {
	n, err := h.Loads.ClearPhoneCalls(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	h.StatsCache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h Handlers) ListPhoneCalls(c *gin.Context) {
	f, err := parseCallFilters(c)
	if err != nil {
		h.writeError(c, err)
		return
	}
	calls, err := h.Loads.ListAllPhoneCalls(c.Request.Context(), f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, calls)
}

// --- Audit ---

func (h Handlers) ListAuditEvents(c *gin.Context) {
	if h.Audit == nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "audit not configured"})
		return
	}
	events, err := h.Audit.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

// writeError maps domain errors to HTTP. Unexpected errors are logged with the
// request-scoped logger and surfaced as a plain 500.
func (h Handlers) writeError(c *gin.Context, err error) {
	var ve *loads.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
	case errors.Is(err, loads.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "shipment not found"})
	case errors.Is(err, loads.ErrDuplicateLoadID):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "load_id already exists"})
	case errors.Is(err, loads.ErrInvalidArgument):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.FromGin(c).Error("request failed", "err", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
