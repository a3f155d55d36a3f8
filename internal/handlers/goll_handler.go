package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"playerslog-backend/internal/models"
	"playerslog-backend/internal/services"
)

type GollHandler struct {
	gollService *services.GollService
}

func NewGollHandler(gollService *services.GollService) *GollHandler {
	return &GollHandler{
		gollService: gollService,
	}
}

// ListGolls retrieves golls, optionally filtered by report status or a
// title/author search term
// GET /api/golls?reportStatus=reported&search=두산
func (h *GollHandler) ListGolls(c *gin.Context) {
	reportStatus := models.ReportStatus(c.Query("reportStatus"))
	search := c.Query("search")

	golls, err := h.gollService.ListGolls(c.Request.Context(), reportStatus, search)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get golls"})
		return
	}

	c.JSON(http.StatusOK, golls)
}

// GetGoll retrieves a goll by ID
// GET /api/golls/:id
func (h *GollHandler) GetGoll(c *gin.Context) {
	gollID, ok := parseID(c)
	if !ok {
		return
	}

	goll, err := h.gollService.GetGoll(c.Request.Context(), gollID)
	if err != nil {
		if errors.Is(err, services.ErrGollNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get goll"})
		return
	}

	c.JSON(http.StatusOK, goll)
}

// UpdateGollStatus hides or unhides a goll
// PATCH /api/golls/:id/status
func (h *GollHandler) UpdateGollStatus(c *gin.Context) {
	gollID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status models.GollStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gollService.UpdateStatus(c.Request.Context(), gollID, req.Status); err != nil {
		if errors.Is(err, services.ErrGollNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// ListReports retrieves abuse reports with the derived same-team flag
// GET /api/golls/reports?status=pending
func (h *GollHandler) ListReports(c *gin.Context) {
	status := models.GollReportStatus(c.Query("status"))

	reports, err := h.gollService.ListReports(c.Request.Context(), status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// ResolveReport marks a report resolved or dismissed
// PATCH /api/golls/reports/:id
func (h *GollHandler) ResolveReport(c *gin.Context) {
	reportID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status models.GollReportStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gollService.ResolveReport(c.Request.Context(), reportID, req.Status); err != nil {
		if errors.Is(err, services.ErrReportNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}
