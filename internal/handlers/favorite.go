package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
)

type FavoriteHandler struct {
	log             *logger.Logger
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(log *logger.Logger, favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		log:             log.With("handler", "FavoriteHandler"),
		favoriteService: favoriteService,
	}
}

// POST /favorites
func (h *FavoriteHandler) Add(c *gin.Context) {
	var in services.AddFavoriteInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid favorite payload", err)
		return
	}

	favorite, err := h.favoriteService.Add(c.Request.Context(), in)
	if err != nil {
		RespondServiceError(c, "Failed to save favorite", err)
		return
	}
	RespondOK(c, "Favorite saved successfully", gin.H{"favorite": favorite})
}

// GET /favorites?email=
func (h *FavoriteHandler) List(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		RespondError(c, http.StatusBadRequest, "email query parameter is required", nil)
		return
	}

	favorites, err := h.favoriteService.ListByUser(c.Request.Context(), email)
	if err != nil {
		h.log.Error("List favorites failed", "error", err, "email", email)
		RespondServiceError(c, "Failed to retrieve favorites", err)
		return
	}
	RespondOK(c, "Favorites retrieved successfully", gin.H{"favorites": favorites})
}

// DELETE /favorites/:id
func (h *FavoriteHandler) Remove(c *gin.Context) {
	favoriteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid favorite id", err)
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), favoriteID); err != nil {
		RespondServiceError(c, "Failed to delete favorite", err)
		return
	}
	RespondOK(c, "Favorite deleted successfully", nil)
}

// GET /lessons/most-saved
func (h *FavoriteHandler) MostSaved(c *gin.Context) {
	counts, err := h.favoriteService.MostSaved(c.Request.Context())
	if err != nil {
		h.log.Error("Most saved failed", "error", err)
		RespondServiceError(c, "Failed to retrieve most saved lessons", err)
		return
	}
	RespondOK(c, "Most saved lessons retrieved successfully", gin.H{"lessons": counts})
}
