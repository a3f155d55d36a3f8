package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"playerslog-backend/internal/models"
	"playerslog-backend/internal/services"
)

type GameHandler struct {
	gameService *services.GameService
}

func NewGameHandler(gameService *services.GameService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return uint(id), true
}

// ListGames retrieves games, optionally filtered by date and status
// GET /api/games?date=2026-08-15&status=FINISHED
func (h *GameHandler) ListGames(c *gin.Context) {
	date := c.Query("date")
	status := models.GameStatus(c.Query("status"))

	games, err := h.gameService.ListGames(c.Request.Context(), date, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get games"})
		return
	}

	c.JSON(http.StatusOK, games)
}

// GetGame retrieves a game by ID
// GET /api/games/:id
func (h *GameHandler) GetGame(c *gin.Context) {
	gameID, ok := parseID(c)
	if !ok {
		return
	}

	game, err := h.gameService.GetGame(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get game"})
		return
	}

	c.JSON(http.StatusOK, game)
}

// CreateGame registers a new game
// POST /api/games
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req models.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.CreateGame(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, game)
}

// BulkCreateGames registers a batch of games
// POST /api/games/bulk
func (h *GameHandler) BulkCreateGames(c *gin.Context) {
	var reqs []models.CreateGameRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	games, err := h.gameService.BulkCreateGames(c.Request.Context(), reqs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, games)
}

// UpdateGameStatus changes a game's lifecycle status
// PATCH /api/games/:id/status
func (h *GameHandler) UpdateGameStatus(c *gin.Context) {
	gameID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		Status             models.GameStatus `json:"status" binding:"required"`
		CancellationReason *string           `json:"cancellationReason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), gameID, &models.UpdateGameRequest{
		Status:             &req.Status,
		CancellationReason: req.CancellationReason,
	})
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, game)
}

// UpdateGameScore updates a game's live score
// PATCH /api/games/:id/score
func (h *GameHandler) UpdateGameScore(c *gin.Context) {
	gameID, ok := parseID(c)
	if !ok {
		return
	}

	var req struct {
		HomeScore *int `json:"homeScore" binding:"required"`
		AwayScore *int `json:"awayScore" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.UpdateScore(c.Request.Context(), gameID, *req.HomeScore, *req.AwayScore)
	if err != nil {
		if errors.Is(err, services.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, game)
}

// UpdateGame applies a partial update to a game
// PUT /api/games/:id
func (h *GameHandler) UpdateGame(c *gin.Context) {
	gameID, ok := parseID(c)
	if !ok {
		return
	}

	var req models.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.UpdateGame(c.Request.Context(), gameID, &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAlreadySettled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, game)
}

// DeleteGame removes a game
// DELETE /api/games/:id
func (h *GameHandler) DeleteGame(c *gin.Context) {
	gameID, ok := parseID(c)
	if !ok {
		return
	}

	err := h.gameService.DeleteGame(c.Request.Context(), gameID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrAlreadySettled):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete game"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ListGameHistories retrieves the schedule-change history
// GET /api/games/histories
func (h *GameHandler) ListGameHistories(c *gin.Context) {
	histories, err := h.gameService.ListHistories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get histories"})
		return
	}

	c.JSON(http.StatusOK, histories)
}
