package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
)

type LessonHandler struct {
	log           *logger.Logger
	lessonService services.LessonService
}

func NewLessonHandler(log *logger.Logger, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{
		log:           log.With("handler", "LessonHandler"),
		lessonService: lessonService,
	}
}

func parseLessonID(c *gin.Context) (uuid.UUID, bool) {
	lessonID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid lesson id", err)
		return uuid.Nil, false
	}
	return lessonID, true
}

// POST /lessons
func (h *LessonHandler) Create(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid lesson payload", err)
		return
	}

	lesson, err := h.lessonService.Create(c.Request.Context(), payload)
	if err != nil {
		h.log.Error("Create lesson failed", "error", err)
		RespondServiceError(c, "Failed to insert lesson data", err)
		return
	}
	RespondOK(c, "Lesson data inserted successfully", gin.H{"lesson": lesson})
}

// GET /lessons
func (h *LessonHandler) ListPublic(c *gin.Context) {
	lessons, err := h.lessonService.ListPublic(c.Request.Context())
	if err != nil {
		h.log.Error("List public lessons failed", "error", err)
		RespondServiceError(c, "Failed to retrieve lessons data", err)
		return
	}
	RespondOK(c, "Lessons data retrieved successfully", gin.H{"lessons": lessons})
}

// GET /all-lessons
func (h *LessonHandler) ListAll(c *gin.Context) {
	lessons, err := h.lessonService.ListAll(c.Request.Context())
	if err != nil {
		h.log.Error("List all lessons failed", "error", err)
		RespondServiceError(c, "Failed to retrieve lessons data", err)
		return
	}
	RespondOK(c, "Lessons data retrieved successfully", gin.H{"lessons": lessons})
}

// GET /lessons/:id
func (h *LessonHandler) GetByID(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}
	lesson, err := h.lessonService.GetByID(c.Request.Context(), lessonID)
	if err != nil {
		RespondServiceError(c, "Lesson not found", err)
		return
	}
	RespondOK(c, "Lesson retrieved successfully", gin.H{"lesson": lesson})
}

// GET /lessons/user/:email
func (h *LessonHandler) ListByCreator(c *gin.Context) {
	lessons, err := h.lessonService.ListByCreator(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondServiceError(c, "Failed to retrieve lessons data", err)
		return
	}
	RespondOK(c, "Lessons data retrieved successfully", gin.H{"lessons": lessons})
}

// GET /lessons/public/:email
func (h *LessonHandler) ListPublicByCreator(c *gin.Context) {
	lessons, err := h.lessonService.ListPublicByCreator(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondServiceError(c, "Failed to retrieve lessons data", err)
		return
	}
	RespondOK(c, "Lessons data retrieved successfully", gin.H{"lessons": lessons})
}

// GET /lessons/recent/:email
func (h *LessonHandler) ListRecentByCreator(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))
	lessons, err := h.lessonService.ListRecentByCreator(c.Request.Context(), c.Param("email"), limit)
	if err != nil {
		RespondServiceError(c, "Failed to retrieve lessons data", err)
		return
	}
	RespondOK(c, "Lessons data retrieved successfully", gin.H{"lessons": lessons})
}

// GET /lessons/count/:email
func (h *LessonHandler) CountByCreator(c *gin.Context) {
	count, err := h.lessonService.CountByCreator(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondServiceError(c, "Failed to count lessons", err)
		return
	}
	RespondOK(c, "", gin.H{"count": count})
}

// GET /lessons/featured
func (h *LessonHandler) ListFeatured(c *gin.Context) {
	lessons, err := h.lessonService.ListFeatured(c.Request.Context())
	if err != nil {
		RespondServiceError(c, "Failed to retrieve featured lessons", err)
		return
	}
	RespondOK(c, "Featured lessons retrieved successfully", gin.H{"lessons": lessons})
}

// GET /lessons/recommended/:id
func (h *LessonHandler) Recommended(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}
	lessons, err := h.lessonService.Recommended(c.Request.Context(), lessonID)
	if err != nil {
		RespondServiceError(c, "Failed to retrieve recommended lessons", err)
		return
	}
	RespondOK(c, "Recommended lessons retrieved successfully", gin.H{"lessons": lessons})
}

// PATCH /lessons/:id
func (h *LessonHandler) Update(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid lesson payload", err)
		return
	}

	if err := h.lessonService.Update(c.Request.Context(), lessonID, payload); err != nil {
		RespondServiceError(c, "Failed to update lesson", err)
		return
	}
	RespondOK(c, "Lesson updated successfully", nil)
}

// PUT /lessons/visibility/:id
func (h *LessonHandler) SetVisibility(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}
	var body struct {
		Privacy string `json:"privacy"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid visibility payload", err)
		return
	}

	if err := h.lessonService.SetVisibility(c.Request.Context(), lessonID, body.Privacy); err != nil {
		RespondServiceError(c, "Failed to update lesson visibility", err)
		return
	}
	RespondOK(c, "Lesson visibility updated successfully", nil)
}

// PUT /lessons/access/:id
func (h *LessonHandler) SetAccessLevel(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}
	var body struct {
		AccessLevel string `json:"accessLevel"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid access payload", err)
		return
	}

	if err := h.lessonService.SetAccessLevel(c.Request.Context(), lessonID, body.AccessLevel); err != nil {
		RespondServiceError(c, "Failed to update lesson access level", err)
		return
	}
	RespondOK(c, "Lesson access level updated successfully", nil)
}

// PUT /lessons/featured/:id
func (h *LessonHandler) SetFeatured(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}
	var body struct {
		IsFeatured bool `json:"isFeatured"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid featured payload", err)
		return
	}

	if err := h.lessonService.SetFeatured(c.Request.Context(), lessonID, body.IsFeatured); err != nil {
		RespondServiceError(c, "Failed to update featured flag", err)
		return
	}
	RespondOK(c, "Featured flag updated successfully", nil)
}

// DELETE /lessons/:id
func (h *LessonHandler) Delete(c *gin.Context) {
	lessonID, ok := parseLessonID(c)
	if !ok {
		return
	}
	if err := h.lessonService.Delete(c.Request.Context(), lessonID); err != nil {
		RespondServiceError(c, "Failed to delete lesson", err)
		return
	}
	RespondOK(c, "Lesson deleted successfully", nil)
}

// GET /lessons/analytics/today
func (h *LessonHandler) AnalyticsToday(c *gin.Context) {
	count, err := h.lessonService.CreatedToday(c.Request.Context())
	if err != nil {
		h.log.Error("Analytics today failed", "error", err)
		RespondServiceError(c, "Failed to count today's lessons", err)
		return
	}
	RespondOK(c, "", gin.H{"count": count})
}

// GET /lessons/analytics/contributors
func (h *LessonHandler) AnalyticsContributors(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	contributors, err := h.lessonService.TopContributors(c.Request.Context(), limit)
	if err != nil {
		h.log.Error("Analytics contributors failed", "error", err)
		RespondServiceError(c, "Failed to retrieve top contributors", err)
		return
	}
	RespondOK(c, "", gin.H{"contributors": contributors})
}

// GET /lessons/analytics/summary
func (h *LessonHandler) AnalyticsSummary(c *gin.Context) {
	summary, err := h.lessonService.AnalyticsSummary(c.Request.Context())
	if err != nil {
		h.log.Error("Analytics summary failed", "error", err)
		RespondServiceError(c, "Failed to build analytics summary", err)
		return
	}
	RespondOK(c, "", gin.H{"summary": summary})
}
