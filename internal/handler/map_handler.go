package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sylar-lab/sharks-backend-go/internal/middleware"
	"github.com/sylar-lab/sharks-backend-go/internal/overlay"
	"github.com/sylar-lab/sharks-backend-go/internal/service"
	"github.com/sylar-lab/sharks-backend-go/internal/session"
	"github.com/sylar-lab/sharks-backend-go/internal/spatial"
	"github.com/sylar-lab/sharks-backend-go/pkg/response"
)

// RefreshRequest carries the map's tunable parameters. Bounds mirror
// the dashboard sliders; omitted fields fall back to the slider
// defaults.
type RefreshRequest struct {
	LatRes     int `json:"lat_res" binding:"omitempty,min=10,max=100"`
	LonRes     int `json:"lon_res" binding:"omitempty,min=20,max=200"`
	NumSamples int `json:"num_samples" binding:"omitempty,min=100,max=2000"`
}

// Slider defaults
const (
	DefaultLatRes     = 40
	DefaultLonRes     = 80
	DefaultNumSamples = 500
)

// MapHandler handles HTTP requests for the map dashboard
type MapHandler struct {
	service *service.MapService
}

// NewMapHandler creates a new map handler
func NewMapHandler(service *service.MapService) *MapHandler {
	return &MapHandler{service: service}
}

// sessionState pulls the authenticated session's state off the context
func sessionState(c *gin.Context) *overlay.State {
	return c.MustGet(middleware.SessionKey).(*session.Session).State
}

// Refresh handles POST /api/v1/map/refresh
func (h *MapHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(c, "Invalid refresh parameters", err)
		return
	}
	if req.LatRes == 0 {
		req.LatRes = DefaultLatRes
	}
	if req.LonRes == 0 {
		req.LonRes = DefaultLonRes
	}
	if req.NumSamples == 0 {
		req.NumSamples = DefaultNumSamples
	}

	result, err := h.service.Refresh(sessionState(c), overlay.RefreshParams{
		LatRes:      req.LatRes,
		LonRes:      req.LonRes,
		SampleCount: req.NumSamples,
	})
	if err != nil {
		var specErr *spatial.InvalidGridSpecError
		if errors.As(err, &specErr) {
			response.BadRequest(c, "Invalid grid resolution", err)
			return
		}
		response.InternalError(c, "Refresh failed", err)
		return
	}

	response.Success(c, result)
}

// GetOverlay handles GET /api/v1/map/overlay
func (h *MapHandler) GetOverlay(c *gin.Context) {
	ov, ok := h.service.Overlay(sessionState(c))
	if !ok {
		response.NotFound(c, "No overlay available; trigger a refresh first")
		return
	}
	response.Success(c, ov)
}

// GetOverlayStats handles GET /api/v1/map/overlay/stats
func (h *MapHandler) GetOverlayStats(c *gin.Context) {
	stats, ok := h.service.Stats(sessionState(c))
	if !ok {
		response.NotFound(c, "No overlay available; trigger a refresh first")
		return
	}
	response.Success(c, stats)
}

// GetMarkers handles GET /api/v1/map/markers
func (h *MapHandler) GetMarkers(c *gin.Context) {
	limit := service.MaxMarkers
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.BadRequest(c, "Invalid limit", err)
			return
		}
		limit = parsed
	}

	state := sessionState(c)
	markers := h.service.Markers(state, limit)
	response.Success(c, gin.H{
		"markers": markers,
		"count":   len(markers),
		"dataset": h.service.DatasetSummary(state),
	})
}

// GetProductivity handles GET /api/v1/map/productivity
func (h *MapHandler) GetProductivity(c *gin.Context) {
	points := h.service.Productivity(sessionState(c))
	response.Success(c, gin.H{"points": points, "count": len(points)})
}
