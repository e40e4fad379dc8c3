package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/logger"
	"github.com/mdhasanmahamud-dev/Digital-Life-Lessons-Backend/internal/services"
)

type UserHandler struct {
	log         *logger.Logger
	userService services.UserService
}

func NewUserHandler(log *logger.Logger, userService services.UserService) *UserHandler {
	return &UserHandler{
		log:         log.With("handler", "UserHandler"),
		userService: userService,
	}
}

// POST /user
func (h *UserHandler) Save(c *gin.Context) {
	var in services.SaveUserInput
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid user payload", err)
		return
	}

	user, err := h.userService.SaveOnLogin(c.Request.Context(), in)
	if err != nil {
		h.log.Error("Save user failed", "error", err)
		RespondServiceError(c, "Failed to save user data", err)
		return
	}
	RespondOK(c, "User data saved successfully", gin.H{"user": user})
}

// GET /user
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.GetAll(c.Request.Context())
	if err != nil {
		h.log.Error("List users failed", "error", err)
		RespondServiceError(c, "Failed to retrieve users", err)
		return
	}
	RespondOK(c, "Users retrieved successfully", gin.H{"users": users})
}

// GET /user/:email
func (h *UserHandler) GetByEmail(c *gin.Context) {
	user, err := h.userService.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondServiceError(c, "User not found", err)
		return
	}
	RespondOK(c, "User retrieved successfully", gin.H{"user": user})
}

// GET /user/role/:email
func (h *UserHandler) GetRole(c *gin.Context) {
	role, err := h.userService.GetRole(c.Request.Context(), c.Param("email"))
	if err != nil {
		RespondServiceError(c, "User not found", err)
		return
	}
	RespondOK(c, "", gin.H{"role": role})
}

// PATCH /user/role/:id
func (h *UserHandler) UpdateRole(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}
	var body struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "Invalid role payload", err)
		return
	}

	if err := h.userService.UpdateRole(c.Request.Context(), userID, body.Role); err != nil {
		RespondServiceError(c, "Failed to update role", err)
		return
	}
	RespondOK(c, "Role updated successfully", nil)
}

// GET /user/count
func (h *UserHandler) Count(c *gin.Context) {
	count, err := h.userService.Count(c.Request.Context())
	if err != nil {
		h.log.Error("Count users failed", "error", err)
		RespondServiceError(c, "Failed to count users", err)
		return
	}
	RespondOK(c, "", gin.H{"count": count})
}
