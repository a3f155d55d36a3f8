package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"playerslog-backend/internal/auth"
	"playerslog-backend/internal/models"
	"playerslog-backend/internal/services"
)

type SettlementHandler struct {
	settlementService *services.SettlementService
}

func NewSettlementHandler(settlementService *services.SettlementService) *SettlementHandler {
	return &SettlementHandler{
		settlementService: settlementService,
	}
}

// settlementErrorStatus maps service errors to HTTP statuses. ErrConflict
// means the at-most-once guard fired inside the ledger, which should be
// unreachable; it surfaces as a 500 so it gets looked at.
func settlementErrorStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrGameNotFound), errors.Is(err, services.ErrNotSettled):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadySettled):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidState), errors.Is(err, services.ErrInvalidResult):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseGameID(c *gin.Context) (uint, bool) {
	gameID, err := strconv.ParseUint(c.Param("gameId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return 0, false
	}
	return uint(gameID), true
}

// performedBy identifies the acting admin for the settlement audit trail
func performedBy(c *gin.Context) string {
	if email, ok := auth.GetAdminEmail(c); ok {
		return email
	}
	if id, ok := auth.GetAdminID(c); ok {
		return id
	}
	return "unknown"
}

// ProcessSettlement runs point settlement for a finished game
// POST /api/settlements/:gameId/process
func (h *SettlementHandler) ProcessSettlement(c *gin.Context) {
	gameID, ok := parseGameID(c)
	if !ok {
		return
	}

	result, err := h.settlementService.Process(c.Request.Context(), gameID, performedBy(c))
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// CancelSettlement reverses a game's settlement
// DELETE /api/settlements/:gameId
func (h *SettlementHandler) CancelSettlement(c *gin.Context) {
	gameID, ok := parseGameID(c)
	if !ok {
		return
	}

	var req struct {
		Reason *string `json:"reason"`
	}
	// Body is optional; a missing or empty body means no reason given.
	_ = c.ShouldBindJSON(&req)

	result, err := h.settlementService.Cancel(c.Request.Context(), gameID, performedBy(c), req.Reason)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSettlementDetail returns the settlement record, ledger and audit trail
// GET /api/settlements/:gameId
func (h *SettlementHandler) GetSettlementDetail(c *gin.Context) {
	gameID, ok := parseGameID(c)
	if !ok {
		return
	}

	detail, err := h.settlementService.GetDetail(c.Request.Context(), gameID)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, detail)
}

// ConfirmResult records a game's confirmed outcome
// PUT /api/settlements/:gameId/result
func (h *SettlementHandler) ConfirmResult(c *gin.Context) {
	gameID, ok := parseGameID(c)
	if !ok {
		return
	}

	var req models.ConfirmResultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.settlementService.ConfirmResult(c.Request.Context(), gameID, &req)
	if err != nil {
		c.JSON(settlementErrorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, game)
}
